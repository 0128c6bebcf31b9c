package engine

// State holds the mutable values, errors and pending-submission flag of one
// form session. Only the Engine that created it mutates it.
type State struct {
	values  map[string]string
	errors  map[string]string
	pending bool
}

func newState(values map[string]string) *State {
	return &State{
		values: cloneStrings(values),
		errors: make(map[string]string),
	}
}

func (s *State) cloneValues() map[string]string {
	return cloneStrings(s.values)
}

func (s *State) value(name string) string {
	return s.values[name]
}

// setError records msg for name, or clears the entry when msg is empty.
func (s *State) setError(name, msg string) {
	if msg == "" {
		delete(s.errors, name)
		return
	}
	s.errors[name] = msg
}

func (s *State) replaceErrors(errs map[string]string) {
	if errs == nil {
		errs = make(map[string]string)
	}
	s.errors = errs
}

func (s *State) replaceValues(values map[string]string) {
	s.values = cloneStrings(values)
}

func cloneStrings(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
