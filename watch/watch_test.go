//go:build !i18nops_runtime_only

package watch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dakusan/i18nops/execute"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestMessageFileLocale(t *testing.T) {
	tests := []struct {
		fName  string
		locale string
		ok     bool
	}{
		{"en-US.yaml", "en-US", true},
		{"fr.JSON", "fr", true},
		{"notes.txt", "", false},
		{".yaml", "", false},
		{"README", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.fName, func(t *testing.T) {
			locale, ok := messageFileLocale(tt.fName)
			if locale != tt.locale || ok != tt.ok {
				t.Errorf("messageFileLocale(%q) = (%q, %v), want (%q, %v)", tt.fName, locale, ok, tt.locale, tt.ok)
			}
		})
	}
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"en-US.yaml", "fr.yaml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("Blocks:\n  MSG_A: {Message: a, Index: 0, StartIndex: 1}\n"), 0644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}
	settings := &execute.ProcessSettings{DefaultLocale: "en-US", InputPath: dir}

	//The default locale reprocesses the whole directory
	got := processFile("en-US", "en-US.yaml", settings)
	if got.Type != WR_ProcessedDirectory || got.Err != nil {
		t.Errorf("processFile(default) = %v, %v", got.Type, got.Err)
	}

	//Other locales are processed with the default one
	got = processFile("fr", "fr.yaml", settings)
	if got.Type != WR_ProcessedFile || got.Err != nil || got.Message != "fr.yaml" {
		t.Errorf("processFile(fr) = %v, %v, %q", got.Type, got.Err, got.Message)
	}
	locales := make([]string, 0, len(got.Files))
	for locale := range got.Files {
		locales = append(locales, locale)
	}
	if diff := cmp.Diff([]string{"en-US", "fr"}, locales, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("Processed locales mismatch (-want +got):\n%s", diff)
	}
}
