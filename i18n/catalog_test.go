//go:build !i18nops_runtime_only

package i18n

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestCatalogSaveLoad(t *testing.T) {
	//Create the catalog
	cat := &Catalog{LocaleIdentifier: "fr-FR"}
	for i, msg := range []string{`Bonjour �0�!`, icuMessage, nestedIcuMessage} {
		b, err := CompileRootMessage(msg, i, 10)
		if err != nil {
			t.Fatalf("CompileRootMessage() error = %v", err)
		}
		b.Warnings = nil
		cat.Blocks = append(cat.Blocks, NamedBlock{Name: "MSG_" + string(rune('C'-i)), Block: b})
	}
	ab, err := CompileAttributes(0, "title", "Titre �0�", "lang", "fr")
	if err != nil {
		t.Fatalf("CompileAttributes() error = %v", err)
	}
	cat.Attributes = append(cat.Attributes, NamedAttributeBlock{"ATTR_TITLE", ab})

	for _, compress := range []bool{false, true} {
		t.Run(cond(compress, "compressed", "uncompressed"), func(t *testing.T) {
			var buf bytes.Buffer
			if err := cat.Save(&buf, compress); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := LoadCatalog(&buf, compress)
			if err != nil {
				t.Fatalf("LoadCatalog() error = %v", err)
			}
			if diff := cmp.Diff(cat, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}

	//Declaration order is kept
	if diff := cmp.Diff([]string{"MSG_C", "MSG_B", "MSG_A", "ATTR_TITLE"}, cat.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if cat.Block("MSG_B") != cat.Blocks[1].Block || cat.Block("MSG_Z") != nil {
		t.Errorf("Block() lookup failed")
	}
	if cat.AttributeBlock("ATTR_TITLE") != ab || cat.AttributeBlock("MSG_A") != nil {
		t.Errorf("AttributeBlock() lookup failed")
	}
}

func TestLoadCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		want string
	}{
		{"not JSON", `{`, "Error parsing the file"},
		{"wrong type", `{"type":"GTR","version":1}`, "is not a compiled catalog"},
		{"wrong version", `{"type":"I18N","version":99}`, "version 99 is not supported"},
		{"bad block", `{"type":"I18N","version":1,"blocks":{"A":{"create":[true]}}}`, "Block “A”"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(strings.NewReader(tt.file), false)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadCatalog() error = %v, want it to contain %q", err, tt.want)
			}
		})
	}

	if _, err := LoadCatalog(strings.NewReader(`{}`), true); err == nil {
		t.Errorf("LoadCatalog() of an uncompressed file as compressed succeeded")
	}
}
