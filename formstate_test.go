package formstate

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-formstate/pkg/renderers/html"
)

func TestAssetsFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), html.StylesheetName)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), "fvw-") {
		t.Fatalf("expected stylesheet to style fvw- classes")
	}
}

func TestEmbeddedDefinitionsIncludeRegistration(t *testing.T) {
	if _, err := fs.Stat(EmbeddedDefinitions(), "registration.yaml"); err != nil {
		t.Fatalf("expected bundled registration form: %v", err)
	}
}

func TestGenerateHTML(t *testing.T) {
	out, err := GenerateHTML(context.Background(), Request{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `name="email"`) {
		t.Fatalf("expected email control in output")
	}
}
