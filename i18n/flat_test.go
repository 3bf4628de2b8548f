//go:build !i18nops_runtime_only

package i18n

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/valyala/fastjson"
)

func TestBlockJSONRoundTrip(t *testing.T) {
	for _, msg := range []string{`Hello �#2��0��/#2�!`, icuMessage, nestedIcuMessage} {
		t.Run(msg, func(t *testing.T) {
			b, err := CompileRootMessage(msg, 1, 3)
			if err != nil {
				t.Fatalf("CompileRootMessage() error = %v", err)
			}
			b.Warnings = nil

			//Encode through text to exercise the parser too
			var a fastjson.Arena
			encoded := b.AppendJSON(&a).String()
			v, err := fastjson.Parse(encoded)
			if err != nil {
				t.Fatalf("fastjson.Parse() error = %v", err)
			}
			got, err := BlockFromJSON(v)
			if err != nil {
				t.Fatalf("BlockFromJSON() error = %v", err)
			}

			if diff := cmp.Diff(b, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAttributeBlockJSONRoundTrip(t *testing.T) {
	ab, err := CompileAttributes(3, "title", "Hello �0�!", "lang", "fr")
	if err != nil {
		t.Fatalf("CompileAttributes() error = %v", err)
	}

	var a fastjson.Arena
	got, err := AttributeBlockFromJSON(ab.AppendJSON(&a))
	if err != nil {
		t.Fatalf("AttributeBlockFromJSON() error = %v", err)
	}
	if diff := cmp.Diff(ab, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnflattenMutateOps(t *testing.T) {
	flat := []any{
		FM_Comment, "nested ICU 0", 3, appendTo(1),
		FM_Element, "b", 4, appendTo(1), attr(4), "title", "none",
		"x", 5, appendTo(4), elEnd(4),
		rmIcu(0), rm(3),
	}
	want := MutateOps{
		{Code: MO_Comment, Ref: 3, Name: "nested ICU 0"},
		{Code: MO_AppendChild, Ref: 1},
		{Code: MO_Element, Ref: 4, Name: "b"},
		{Code: MO_AppendChild, Ref: 1},
		{Code: MO_Attr, Ref: 4, Name: "title", Value: "none"},
		{Code: MO_Text, Ref: 5, Name: "x"},
		{Code: MO_AppendChild, Ref: 4},
		{Code: MO_ElementEnd, Ref: 4},
		{Code: MO_RemoveNestedIcu, Ref: 0, Anchor: 3},
		{Code: MO_Remove, Ref: 3},
	}

	got, err := UnflattenMutateOps(flat)
	if err != nil {
		t.Fatalf("UnflattenMutateOps() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("UnflattenMutateOps() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(flat, got.Flatten()); diff != "" {
		t.Errorf("Flatten() mismatch (-want +got):\n%s", diff)
	}
}

func TestUnflattenDesync(t *testing.T) {
	mutateTests := []struct {
		name string
		flat []any
	}{
		{"text without index", []any{"x"}},
		{"attr without value", []any{attr(2), "title"}},
		{"nested ICU without anchor", []any{rmIcu(0)}},
		{"unknown opcode", []any{2<<MutateShiftRef | 0b111}},
		{"unknown marker", []any{FlatMarker("other"), "x", 2}},
	}
	for _, tt := range mutateTests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnflattenMutateOps(tt.flat); !errors.Is(err, ErrDesyncOpcode) {
				t.Errorf("UnflattenMutateOps() error = %v, want %v", err, ErrDesyncOpcode)
			}
		})
	}

	updateTests := []struct {
		name string
		flat []any
	}{
		{"skip too small", []any{0b1, 2, "Hello ", -1, upd(2, UO_Text)}},
		{"skip too large", []any{0b1, 5, "Hello ", -1, upd(2, UO_Text)}},
		{"missing operation", []any{0b1, 2, "Hello ", -1}},
		{"missing ICU index", []any{0b1, 2, -1, upd(2, UO_IcuSwitch)}},
	}
	for _, tt := range updateTests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnflattenUpdateOps(tt.flat); !errors.Is(err, ErrDesyncOpcode) {
				t.Errorf("UnflattenUpdateOps() error = %v, want %v", err, ErrDesyncOpcode)
			}
		})
	}
}
