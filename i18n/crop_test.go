//go:build !i18nops_runtime_only

package i18n

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCrop(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		subTemplate int
		want        string
	}{
		{"simple text", `simple text`, NoSubTemplate, `simple text`},
		{"binding", `Hello �0�!`, NoSubTemplate, `Hello �0�!`},
		{"element", `Hello �#2��0��/#2�!`, NoSubTemplate, `Hello �#2��0��/#2�!`},

		{"embedded root", `�0� is rendered as: �*2:1�before�*1:2�middle�/*1:2�after�/*2:1�!`, NoSubTemplate, `�0� is rendered as: �*2:1��/*2:1�!`},
		{"embedded 1", `�0� is rendered as: �*2:1�before�*1:2�middle�/*1:2�after�/*2:1�!`, 1, `before�*1:2��/*1:2�after`},
		{"embedded 2", `�0� is rendered as: �*2:1�before�*1:2�middle�/*1:2�after�/*2:1�!`, 2, `middle`},

		{"siblings root", `�0� is rendered as: �*2:1�before�*1:2�middle�/*1:2�after�/*2:1� and also �*4:3�before�*1:4�middle�/*1:4�after�/*4:3�!`, NoSubTemplate, `�0� is rendered as: �*2:1��/*2:1� and also �*4:3��/*4:3�!`},
		{"siblings 1", `�0� is rendered as: �*2:1�before�*1:2�middle�/*1:2�after�/*2:1� and also �*4:3�before�*1:4�middle�/*1:4�after�/*4:3�!`, 1, `before�*1:2��/*1:2�after`},
		{"siblings 2", `�0� is rendered as: �*2:1�before�*1:2�middle�/*1:2�after�/*2:1� and also �*4:3�before�*1:4�middle�/*1:4�after�/*4:3�!`, 2, `middle`},
		{"siblings 3", `�0� is rendered as: �*2:1�before�*1:2�middle�/*1:2�after�/*2:1� and also �*4:3�before�*1:4�middle�/*1:4�after�/*4:3�!`, 3, `before�*1:4��/*1:4�after`},
		{"siblings 4", `�0� is rendered as: �*2:1�before�*1:2�middle�/*1:2�after�/*2:1� and also �*4:3�before�*1:4�middle�/*1:4�after�/*4:3�!`, 4, `middle`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Crop(tt.message, tt.subTemplate)
			if err != nil {
				t.Fatalf("Crop() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Crop() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Every character outside the template markers belongs to exactly one of the cropped views
func TestCropPartition(t *testing.T) {
	message := `�0� is rendered as: �*2:1�before�*1:2�middle�/*1:2�after�/*2:1� and also �*4:3�x�*1:4�y�/*1:4�z�/*4:3�!`
	var all strings.Builder
	for _, sub := range []int{NoSubTemplate, 1, 2, 3, 4} {
		cropped, err := Crop(message, sub)
		if err != nil {
			t.Fatalf("Crop(%d) error = %v", sub, err)
		}
		all.WriteString(templateMarkerRegex.ReplaceAllString(cropped, ""))
	}

	want := templateMarkerRegex.ReplaceAllString(message, "")
	sortRunes := func(s string) string {
		r := []rune(s)
		for i := 1; i < len(r); i++ {
			for j := i; j > 0 && r[j] < r[j-1]; j-- {
				r[j], r[j-1] = r[j-1], r[j]
			}
		}
		return string(r)
	}
	if diff := cmp.Diff(sortRunes(want), sortRunes(all.String())); diff != "" {
		t.Errorf("Cropped views mismatch (-want +got):\n%s", diff)
	}
}

func TestCropErrors(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		subTemplate int
	}{
		{"unclosed", `�*2:1�message!`, NoSubTemplate},
		{"unopened", `message!�/*2:1�`, NoSubTemplate},
		{"crossed", `�*2:1��*3:2�a�/*2:1��/*3:2�`, NoSubTemplate},
		{"unknown sub-template", `�*2:1�a�/*2:1�`, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Crop(tt.message, tt.subTemplate)
			if !errors.Is(err, ErrMalformedMessage) {
				t.Fatalf("Crop() error = %v, want %v", err, ErrMalformedMessage)
			}
			if tt.subTemplate == NoSubTemplate && !strings.Contains(err.Error(), "Tag mismatch") {
				t.Errorf("Crop() error = %q, want it to contain “Tag mismatch”", err.Error())
			}
		})
	}
}
