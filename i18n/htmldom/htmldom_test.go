package htmldom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRenderer(t *testing.T) {
	r := New()
	div, span := r.CreateElement("div"), r.CreateElement("span")
	hello, world := r.CreateText("Hello "), r.CreateText("world")
	anchor := r.CreateComment("ICU 1")

	r.AppendChild(r.Body(), div)
	r.AppendChild(div, anchor)
	r.InsertBefore(div, hello, anchor)
	r.AppendChild(span, world)
	r.InsertBefore(div, span, anchor)
	r.SetAttribute(span, "title", "first")
	r.SetAttribute(span, "lang", "fr")
	r.SetAttribute(span, "title", "second")

	check := func(want string) {
		t.Helper()
		if diff := cmp.Diff(want, r.HTML(r.Body())); diff != "" {
			t.Errorf("HTML mismatch (-want +got):\n%s", diff)
		}
	}
	check(`<div>Hello <span title="second" lang="fr">world</span><!--ICU 1--></div>`)

	//Moving nodes detaches them from their previous parent
	r.AppendChild(div, hello)
	check(`<div><span title="second" lang="fr">world</span><!--ICU 1-->Hello </div>`)
	r.InsertBefore(div, anchor, anchor)
	r.InsertBefore(div, hello, span)
	check(`<div>Hello <span title="second" lang="fr">world</span><!--ICU 1--></div>`)

	r.SetText(world, "<universe>")
	r.Remove(anchor)
	r.Remove(anchor)
	check(`<div>Hello <span title="second" lang="fr">&lt;universe&gt;</span></div>`)

	if r.Parent(anchor) != nil {
		t.Errorf("Parent() of a removed node is not nil")
	}
	if r.Parent(span) != div {
		t.Errorf("Parent() of the span is not the div")
	}
	if got := r.HTML(nil); got != "" {
		t.Errorf("HTML(nil) = %q, want empty", got)
	}
}
