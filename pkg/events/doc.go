// Package events replays scripted user interactions against an engine. A
// script is a JSON or YAML list of change, blur, submit, reset, toggleTheme
// and patch events; patch events carry RFC 6902 operations over the value
// object.
package events
