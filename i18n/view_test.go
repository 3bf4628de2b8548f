//go:build !i18nops_runtime_only

package i18n_test

import (
	"errors"
	"testing"

	"github.com/dakusan/i18nops/i18n"
	"github.com/dakusan/i18nops/i18n/htmldom"
	"github.com/google/go-cmp/cmp"
)

// countingRenderer counts the node creations and writes that reach the renderer
type countingRenderer struct {
	*htmldom.Renderer
	creates int
	writes  int
}

func (c *countingRenderer) CreateText(value string) i18n.NativeNode {
	c.creates++
	return c.Renderer.CreateText(value)
}
func (c *countingRenderer) CreateElement(tag string) i18n.NativeNode {
	c.creates++
	return c.Renderer.CreateElement(tag)
}
func (c *countingRenderer) CreateComment(value string) i18n.NativeNode {
	c.creates++
	return c.Renderer.CreateComment(value)
}
func (c *countingRenderer) SetText(node i18n.NativeNode, value string) {
	c.writes++
	c.Renderer.SetText(node, value)
}
func (c *countingRenderer) SetAttribute(node i18n.NativeNode, name, value string) {
	c.writes++
	c.Renderer.SetAttribute(node, name, value)
}

type fixture struct {
	t *testing.T
	r *countingRenderer
	v *i18n.View
}

func newFixture(t *testing.T) *fixture {
	r := &countingRenderer{Renderer: htmldom.New()}
	return &fixture{t, r, i18n.NewView(r, r.Body(), nil)}
}

func (f *fixture) html() string {
	return f.r.HTML(f.r.Body())
}

func (f *fixture) check(want string) {
	f.t.Helper()
	if diff := cmp.Diff(want, f.html()); diff != "" {
		f.t.Errorf("HTML mismatch (-want +got):\n%s", diff)
	}
}

func (f *fixture) must(err error) {
	f.t.Helper()
	if err != nil {
		f.t.Fatalf("Unexpected error: %v", err)
	}
}

func (f *fixture) compile(message string, opts i18n.BlockOptions) *i18n.Block {
	f.t.Helper()
	b, err := i18n.CompileMessage(message, opts)
	f.must(err)
	return b
}

func (f *fixture) update(b i18n.Updater, values ...any) {
	f.t.Helper()
	f.v.BeginUpdate()
	for _, v := range values {
		f.v.RecordExpression(v)
	}
	f.must(f.v.ApplyUpdate(b))
}

// Options of a block declared inside the element at parent
func inElement(index, startIndex, parent int, expected ...int) i18n.BlockOptions {
	return i18n.BlockOptions{
		Index:         index,
		StartIndex:    startIndex,
		ParentIndex:   parent,
		PreviousIndex: i18n.NoNode,
		SubTemplate:   i18n.NoSubTemplate,
		Expected:      expected,
	}
}

const icuMessage = `{�0�, plural,
        =0 {no <b title="none">emails</b>!}
        =1 {one <i>email</i>}
        other {�0� <span title="�1�">emails</span>}
      }`

const twoIcuMessage = icuMessage + ` - {�0�, select,
        other {(�0�)}
      }`

const nestedIcuMessage = `{�0�, plural,
        =0 {zero}
        other {�0� {�1�, select,
                       cat {cats}
                       dog {dogs}
                       other {animals}
                     }!}
      }`

func TestApplyCreate(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		f.must(f.v.ApplyCreate(f.compile(`simple text`, inElement(1, 2, 0))))
		f.check(`<div>simple text</div>`)
	})

	t.Run("bindings", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		f.must(f.v.ApplyCreate(f.compile(`Hello �0�!`, inElement(1, 2, 0))))
		f.check(`<div></div>`)
		if n, ok := f.v.Node(2); !ok || n.Kind != i18n.NK_Text {
			t.Errorf("Node 2 = %+v, want a text node", n)
		}
	})

	t.Run("elements", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		f.must(f.v.DeclareElement(2, "div", 0))
		f.must(f.v.DeclareElement(3, "span", 0))
		f.must(f.v.ApplyCreate(f.compile(`Hello �#3�world�/#3� and �#2�universe�/#2�!`, inElement(1, 4, 0, 2, 3))))
		f.check(`<div>Hello <span>world</span> and <div>universe</div>!</div>`)
	})

	t.Run("first node", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.ApplyCreate(f.compile(`Hello world`, i18n.RootBlockOptions(0, 1))))
		f.check(`Hello world`)
	})

	t.Run("after a text node", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareText(0, "Hello", i18n.NoNode))
		opts := i18n.RootBlockOptions(1, 2)
		opts.PreviousIndex = 0
		f.must(f.v.ApplyCreate(f.compile(` world`, opts)))
		f.check(`Hello world`)
		if diff := cmp.Diff([]int{0, 2}, f.v.Children(i18n.NoNode)); diff != "" {
			t.Errorf("Children() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("after an element", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		f.must(f.v.DeclareText(1, "Hello", 0))
		opts := i18n.RootBlockOptions(2, 3)
		opts.PreviousIndex = 0
		f.must(f.v.ApplyCreate(f.compile(` world`, opts)))
		f.check(`<div>Hello</div> world`)
	})

	t.Run("after an existing child", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		f.must(f.v.DeclareText(1, "Hello", 0))
		f.must(f.v.ApplyCreate(f.compile(` world`, inElement(2, 3, 0))))
		f.check(`<div>Hello world</div>`)
		if diff := cmp.Diff([]int{1, 3}, f.v.Children(0)); diff != "" {
			t.Errorf("Children() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("before a node", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.ApplyCreate(f.compile(`Hello `, i18n.RootBlockOptions(0, 2))))
		f.must(f.v.DeclareText(1, "world", i18n.NoNode))
		f.check(`Hello world`)
	})

	t.Run("deleted placeholders", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		f.must(f.v.DeclareElement(2, "div", 0))
		f.must(f.v.DeclareElement(3, "span", 0))
		f.must(f.v.ApplyCreate(f.compile(`Hello �#3�world�/#3�`, inElement(1, 6, 0, 2, 3))))
		f.must(f.v.DeclareElement(4, "div", i18n.NoNode))
		f.must(f.v.DeclareText(5, "!", 4))
		f.check(`<div>Hello <span>world</span></div><div>!</div>`)
		if n, _ := f.v.Node(2); !n.Detached {
			t.Errorf("Node 2 is not detached")
		}
	})

	t.Run("ICU anchors", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		f.must(f.v.ApplyCreate(f.compile(icuMessage, inElement(1, 2, 0))))
		f.check(`<div><!--ICU 2--></div>`)
	})

	t.Run("multiple ICU anchors", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		f.must(f.v.ApplyCreate(f.compile(twoIcuMessage, inElement(1, 2, 0))))
		f.check(`<div><!--ICU 2--> - <!--ICU 8--></div>`)
	})

	t.Run("ICU anchors inside elements", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		f.must(f.v.DeclareElement(2, "span", 0))
		f.must(f.v.DeclareElement(3, "span", 0))
		msg := `�#2�{�0�, plural,
        =0 {no <b title="none">emails</b>!}
        =1 {one <i>email</i>}
        other {�0� <span title="�1�">emails</span>}
      }�/#2��#3�{�0�, select,
        other {(�0�)}
      }�/#3�`
		f.must(f.v.ApplyCreate(f.compile(msg, inElement(1, 4, 0, 2, 3))))
		f.check(`<div><span><!--ICU 4--></span><span><!--ICU 9--></span></div>`)
	})

	t.Run("nested ICU anchor", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		f.must(f.v.ApplyCreate(f.compile(nestedIcuMessage, inElement(1, 2, 0))))
		f.check(`<div><!--ICU 2--></div>`)
	})

	t.Run("unknown placeholder node", func(t *testing.T) {
		f := newFixture(t)
		err := f.v.ApplyCreate(f.compile(`�#2�x�/#2�`, i18n.RootBlockOptions(0, 3)))
		if !errors.Is(err, i18n.ErrUnknownNode) {
			t.Errorf("ApplyCreate() error = %v, want %v", err, i18n.ErrUnknownNode)
		}
	})
}

func TestRelink(t *testing.T) {
	f := newFixture(t)
	f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
	for i := 2; i <= 8; i++ {
		f.must(f.v.DeclareElement(i, "div"+string(rune('0'+i)), 0))
	}
	msg := `�#2��/#2��#8��/#8��#4��/#4��#5��/#5�Hello World�#3��/#3��#7��/#7�`
	f.must(f.v.ApplyCreate(f.compile(msg, inElement(1, 9, 0, 2, 3, 4, 5, 6, 7, 8))))

	f.check(`<div><div2></div2><div8></div8><div4></div4><div5></div5>Hello World<div3></div3><div7></div7></div>`)
	if diff := cmp.Diff([]int{2, 8, 4, 5, 9, 3, 7}, f.v.Children(0)); diff != "" {
		t.Errorf("Children() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0}, f.v.Children(i18n.NoNode)); diff != "" {
		t.Errorf("Host children mismatch (-want +got):\n%s", diff)
	}
}

func TestEmbeddedViews(t *testing.T) {
	const msg = `Content: �*2:1��#1:1�before�*2:2��#1:2�middle�/#1:2��/*2:2�after�/#1:1��/*2:1�!`
	f := newFixture(t)

	//Root view
	f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
	f.must(f.v.DeclareTemplate(2, 0))
	f.must(f.v.ApplyCreate(f.compile(msg, inElement(1, 3, 0, 2))))

	//First sub-template
	v1, err := f.v.EmbeddedView(2)
	f.must(err)
	f.must(v1.DeclareElement(1, "div", i18n.NoNode))
	f.must(v1.DeclareTemplate(2, 1))
	opts := i18n.RootBlockOptions(0, 3)
	opts.SubTemplate, opts.Expected = 1, []int{1, 2}
	f.must(v1.ApplyCreate(f.compile(msg, opts)))

	//Second sub-template
	v2, err := v1.EmbeddedView(2)
	f.must(err)
	f.must(v2.DeclareElement(1, "span", i18n.NoNode))
	opts = i18n.RootBlockOptions(0, 2)
	opts.SubTemplate, opts.Expected = 2, []int{1}
	f.must(v2.ApplyCreate(f.compile(msg, opts)))

	f.check(`<div>Content: <div>before<span>middle</span><!--container-->after</div><!--container-->!</div>`)

	if _, err := f.v.EmbeddedView(0); !errors.Is(err, i18n.ErrUnknownNode) {
		t.Errorf("EmbeddedView() error = %v, want %v", err, i18n.ErrUnknownNode)
	}
}

func TestApplyUpdate(t *testing.T) {
	t.Run("text bindings", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		b := f.compile(`Hello �0�!`, inElement(1, 2, 0))
		f.must(f.v.ApplyCreate(b))
		f.update(b, "world")
		f.check(`<div>Hello world!</div>`)
	})

	t.Run("attribute bindings", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		ab, err := i18n.CompileAttributes(0, "title", `Hello �0�!`)
		f.must(err)
		f.must(f.v.ApplyAttributes(ab))
		f.update(ab, "world")
		f.check(`<div title="Hello world!"></div>`)
		f.update(ab, "world")
		f.check(`<div title="Hello world!"></div>`)
		f.update(ab, "universe")
		f.check(`<div title="Hello universe!"></div>`)
	})

	t.Run("attributes without bindings", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		ab, err := i18n.CompileAttributeMessage(0, "title", `Hello world!`)
		f.must(err)
		f.must(f.v.ApplyAttributes(ab))
		f.update(ab)
		f.check(`<div title="Hello world!"></div>`)
	})

	t.Run("multiple attribute bindings", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		ab, err := i18n.CompileAttributes(0, "title", `Hello �0� and �1�, again �0�!`)
		f.must(err)
		f.update(ab, "world", "universe")
		f.check(`<div title="Hello world and universe, again world!"></div>`)
		f.update(ab, "earth", "universe")
		f.check(`<div title="Hello earth and universe, again earth!"></div>`)
		f.update(ab, "earthlings", "martians")
		f.check(`<div title="Hello earthlings and martians, again earthlings!"></div>`)
	})

	t.Run("bindings of multiple attributes", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		ab, err := i18n.CompileAttributes(0, "title", `Hello �0�!`, "aria-label", `Hello �0�!`)
		f.must(err)
		f.update(ab, "world")
		f.check(`<div title="Hello world!" aria-label="Hello world!"></div>`)
		f.update(ab, "universe")
		f.check(`<div title="Hello universe!" aria-label="Hello universe!"></div>`)
	})

	t.Run("attributes on removed elements", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		attrs, err := i18n.CompileAttributes(0, "title", `start �1� middle �0� end`)
		f.must(err)
		f.must(f.v.DeclareElement(3, "b", 0))
		removedAttrs, err := i18n.CompileAttributes(3, "title", `start �1� middle �0� end`)
		f.must(err)
		b := f.compile(`trad �0�`, inElement(2, 5, 0, 3))
		f.must(f.v.ApplyCreate(b))

		f.v.BeginUpdate()
		f.v.RecordExpression("1")
		f.v.RecordExpression("2")
		f.must(f.v.ApplyUpdate(attrs))
		f.v.RecordExpression("1")
		f.must(f.v.ApplyUpdate(b))
		f.v.RecordExpression("1")
		f.v.RecordExpression("2")
		f.must(f.v.ApplyUpdate(removedAttrs))
		f.check(`<div title="start 2 middle 1 end">trad 1</div>`)
	})

	t.Run("no recorded expressions", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		b := f.compile(`Hello �0�!`, inElement(1, 2, 0))
		f.must(f.v.ApplyCreate(b))
		f.v.BeginUpdate()
		f.must(f.v.ApplyUpdate(b))
		f.check(`<div></div>`)
	})

	t.Run("missing binding", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		b := f.compile(`Hello �0� �1�!`, inElement(1, 2, 0))
		f.must(f.v.ApplyCreate(b))
		f.v.BeginUpdate()
		f.v.RecordExpression("a")
		if err := f.v.ApplyUpdate(b); !errors.Is(err, i18n.ErrDesyncOpcode) {
			t.Errorf("ApplyUpdate() error = %v, want %v", err, i18n.ErrDesyncOpcode)
		}
	})

	t.Run("no change", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		b := f.compile(`�0� and �1�`, inElement(1, 2, 0))
		f.must(f.v.ApplyCreate(b))
		f.update(b, "a", "b")
		f.update(b, i18n.NoChange, "c")
		f.check(`<div>a and c</div>`)

		writes := f.r.writes
		f.update(b, i18n.NoChange, i18n.NoChange)
		if f.r.writes != writes {
			t.Errorf("NoChange wrote %d times", f.r.writes-writes)
		}
	})
}

func TestIcuUpdates(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		b := f.compile(icuMessage, inElement(1, 4, 0))
		f.must(f.v.ApplyCreate(b))

		f.update(b, 0, "emails label")
		f.check(`<div>no <b title="none">emails</b>!<!--ICU 4--></div>`)
		f.update(b, 0, "emails label")
		f.check(`<div>no <b title="none">emails</b>!<!--ICU 4--></div>`)
		f.update(b, 1, "emails label")
		f.check(`<div>one <i>email</i><!--ICU 4--></div>`)
		f.update(b, 10, "emails label")
		f.check(`<div>10 <span title="emails label">emails</span><!--ICU 4--></div>`)
		f.update(b, 10, "10 emails")
		f.check(`<div>10 <span title="10 emails">emails</span><!--ICU 4--></div>`)
		f.update(b, 0, "10 emails")
		f.check(`<div>no <b title="none">emails</b>!<!--ICU 4--></div>`)
	})

	t.Run("multiple", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		b := f.compile(twoIcuMessage, inElement(1, 4, 0))
		f.must(f.v.ApplyCreate(b))

		f.update(b, 0, "emails label")
		f.check(`<div>no <b title="none">emails</b>!<!--ICU 4--> - (0)<!--ICU 10--></div>`)
		f.update(b, 0, "emails label")
		f.check(`<div>no <b title="none">emails</b>!<!--ICU 4--> - (0)<!--ICU 10--></div>`)
		f.update(b, 1, "emails label")
		f.check(`<div>one <i>email</i><!--ICU 4--> - (1)<!--ICU 10--></div>`)
		f.update(b, 10, "emails label")
		f.check(`<div>10 <span title="emails label">emails</span><!--ICU 4--> - (10)<!--ICU 10--></div>`)
		f.update(b, 10, "10 emails")
		f.check(`<div>10 <span title="10 emails">emails</span><!--ICU 4--> - (10)<!--ICU 10--></div>`)
		f.update(b, 0, "10 emails")
		f.check(`<div>no <b title="none">emails</b>!<!--ICU 4--> - (0)<!--ICU 10--></div>`)
	})

	t.Run("inside elements", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		f.must(f.v.DeclareElement(2, "span", 0))
		f.must(f.v.DeclareElement(3, "span", 0))
		msg := `�#2�` + icuMessage + `�/#2��#3�{�0�, select,
        other {(�0�)}
      }�/#3�`
		b := f.compile(msg, inElement(1, 6, 0, 2, 3))
		f.must(f.v.ApplyCreate(b))

		f.update(b, 0, "emails label")
		f.check(`<div><span>no <b title="none">emails</b>!<!--ICU 6--></span><span>(0)<!--ICU 11--></span></div>`)
		f.update(b, 1, "emails label")
		f.check(`<div><span>one <i>email</i><!--ICU 6--></span><span>(1)<!--ICU 11--></span></div>`)
		f.update(b, 10, "10 emails")
		f.check(`<div><span>10 <span title="10 emails">emails</span><!--ICU 6--></span><span>(10)<!--ICU 11--></span></div>`)
	})

	t.Run("nested", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		b := f.compile(nestedIcuMessage, inElement(1, 4, 0))
		f.must(f.v.ApplyCreate(b))

		f.update(b, 0, "cat")
		f.check(`<div>zero<!--ICU 4--></div>`)
		f.update(b, 0, "cat")
		f.check(`<div>zero<!--ICU 4--></div>`)
		f.update(b, 10, "cat")
		f.check(`<div>10 cats<!--nested ICU 0-->!<!--ICU 4--></div>`)
		f.update(b, 10, "squirrel")
		f.check(`<div>10 animals<!--nested ICU 0-->!<!--ICU 4--></div>`)
		f.update(b, 0, "squirrel")
		f.check(`<div>zero<!--ICU 4--></div>`)

		//Every node of the nested case is gone from the arena chains too
		if diff := cmp.Diff([]int{5}, f.v.Children(4)); diff != "" {
			t.Errorf("Children() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("plural categories", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		b := f.compile(`{�0�, plural, =0 {none} one {one item} other {�0� items}}`, inElement(1, 2, 0))
		f.must(f.v.ApplyCreate(b))

		f.update(b, 0)
		f.check(`<div>none<!--ICU 2--></div>`)
		f.update(b, 1)
		f.check(`<div>one item<!--ICU 2--></div>`)
		f.update(b, 5)
		f.check(`<div>5 items<!--ICU 2--></div>`)
		f.update(b, "many")
		f.check(`<div>many items<!--ICU 2--></div>`)
	})

	t.Run("plural categories of the view locale", func(t *testing.T) {
		r := &countingRenderer{Renderer: htmldom.New()}
		fr, err := i18n.NewLocale("fr", nil)
		if err != nil {
			t.Fatalf("NewLocale() error = %v", err)
		}
		f := &fixture{t, r, i18n.NewView(r, r.Body(), fr)}
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		b := f.compile(`{�0�, plural, one {un} other {plusieurs}}`, inElement(1, 2, 0))
		f.must(f.v.ApplyCreate(b))

		f.update(b, 0)
		f.check(`<div>un<!--ICU 2--></div>`)
		f.update(b, 2)
		f.check(`<div>plusieurs<!--ICU 2--></div>`)
	})

	t.Run("switching away and back recreates the same content", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		b := f.compile(`{�0�, select, a {<b>A</b>} other {x�0�y}}`, inElement(1, 2, 0))
		f.must(f.v.ApplyCreate(b))

		f.update(b, "z")
		first := f.html()
		f.update(b, "a")
		f.check(`<div><b>A</b><!--ICU 2--></div>`)
		f.update(b, "z")
		f.check(first)
		f.update(b, "a")
		f.update(b, "z")
		f.check(first)
	})

	t.Run("unchanged values do not touch the renderer", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		b := f.compile(icuMessage, inElement(1, 4, 0))
		f.must(f.v.ApplyCreate(b))
		f.update(b, 10, "label")

		creates, writes := f.r.creates, f.r.writes
		for i := 0; i < 3; i++ {
			f.update(b, 10, "label")
		}
		if f.r.creates != creates || f.r.writes != writes {
			t.Errorf("Renderer touched: %d creates and %d writes", f.r.creates-creates, f.r.writes-writes)
		}
	})

	t.Run("sanitized attributes", func(t *testing.T) {
		f := newFixture(t)
		f.must(f.v.DeclareElement(0, "div", i18n.NoNode))
		b := f.compile(`{�0�, select, other {<a href="�1�">link</a>}}`, inElement(1, 2, 0))
		f.must(f.v.ApplyCreate(b))

		f.update(b, "x", "javascript:alert(1)")
		f.check(`<div><a href="unsafe:javascript:alert(1)">link</a><!--ICU 2--></div>`)
		f.update(b, "x", "https://example.com/")
		f.check(`<div><a href="https://example.com/">link</a><!--ICU 2--></div>`)
	})
}
