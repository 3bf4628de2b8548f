//View arena holding the live nodes of one view instance

package i18n

// NativeNode is a node owned by the Renderer (ex a DOM node)
type NativeNode any

// Renderer creates and modifies native nodes
type Renderer interface {
	CreateText(value string) NativeNode
	CreateElement(tag string) NativeNode
	CreateComment(value string) NativeNode
	AppendChild(parent, child NativeNode) //Moves child if it is already attached
	InsertBefore(parent, child, ref NativeNode)
	Remove(node NativeNode)
	Parent(node NativeNode) NativeNode //nil when the node is detached
	SetAttribute(node NativeNode, name, value string)
	SetText(node NativeNode, value string)
}

// NodeKind is the type of a TreeNode
type NodeKind uint8

//goland:noinspection GoSnakeCaseUsage
const (
	NK_Element NodeKind = iota
	NK_Text
	NK_Template     //Anchor comment of a sub-template
	NK_IcuContainer //Anchor comment of an ICU expression
)

// TreeNode is the entry of a node in the View arena. Links are node indexes.
type TreeNode struct {
	Index      int
	Kind       NodeKind
	Native     NativeNode
	Parent     int //NoNode when attached to the view host
	Child      int //First child
	Next       int //Next sibling
	Detached   bool
	ActiveCase int //NK_IcuContainer only
}

// View holds the nodes and binding values of one view instance. A View is not safe for concurrent use.
type View struct {
	renderer   Renderer
	locale     *Locale
	host       NativeNode
	hostAnchor NativeNode //When set, host level nodes are inserted before it
	nodes      []*TreeNode
	firstChild int //First host level node

	//Binding state
	bindings     []any
	bindingIndex int
	shifts       int //Expressions recorded since the last ApplyUpdate
	changeMask   uint32
}

// NewView creates an empty view whose host level nodes are attached to host. A nil locale uses DefaultLocale().
func NewView(renderer Renderer, host NativeNode, locale *Locale) *View {
	return &View{
		renderer:   renderer,
		locale:     cond(locale == nil, DefaultLocale(), locale),
		host:       host,
		firstChild: NoNode,
	}
}

// EmbeddedView creates the view of a sub-template. Its host level nodes are inserted before the template anchor.
func (v *View) EmbeddedView(templateIndex int) (*View, error) {
	t, err := v.node(templateIndex)
	if err != nil {
		return nil, err
	} else if t.Kind != NK_Template {
		return nil, newErr(ErrUnknownNode, "", "Node %d is not a template", templateIndex)
	}

	ret := NewView(v.renderer, v.renderer.Parent(t.Native), v.locale)
	ret.hostAnchor = t.Native
	return ret, nil
}

// Locale returns the locale the view renders binding values with
func (v *View) Locale() *Locale {
	return v.locale
}

// Node returns the arena entry at index
func (v *View) Node(index int) (*TreeNode, bool) {
	n, err := v.node(index)
	return n, err == nil
}

// Native returns the native node at index, or nil
func (v *View) Native(index int) NativeNode {
	if n, err := v.node(index); err == nil {
		return n.Native
	}
	return nil
}

// Children returns the attached children of a node in sibling order. NoNode returns the host level nodes.
func (v *View) Children(parent int) []int {
	var ret []int
	for i := v.firstChildOf(parent); i != NoNode; i = v.nodes[i].Next {
		ret = append(ret, i)
	}
	return ret
}

func (v *View) node(index int) (*TreeNode, error) {
	if index < 0 || index >= len(v.nodes) || v.nodes[index] == nil {
		return nil, newErr(ErrUnknownNode, "", "No node exists at index %d", index)
	}
	return v.nodes[index], nil
}

// DeclareElement creates an element outside any i18n block and appends it to parent (NoNode for the host)
func (v *View) DeclareElement(index int, tag string, parent int) error {
	return v.declare(index, NK_Element, v.renderer.CreateElement(tag), parent)
}

// DeclareText creates a text node outside any i18n block and appends it to parent (NoNode for the host)
func (v *View) DeclareText(index int, value string, parent int) error {
	return v.declare(index, NK_Text, v.renderer.CreateText(value), parent)
}

// DeclareTemplate creates the anchor of a sub-template and appends it to parent (NoNode for the host)
func (v *View) DeclareTemplate(index int, parent int) error {
	return v.declare(index, NK_Template, v.renderer.CreateComment("container"), parent)
}

func (v *View) declare(index int, kind NodeKind, native NativeNode, parent int) error {
	if parent != NoNode {
		if _, err := v.node(parent); err != nil {
			return err
		}
	}
	n := v.createNode(index, kind, native)
	v.linkAfter(n, parent, v.lastChildOf(parent))
	v.attachNative(parent, native)
	return nil
}

// Creates (or replaces) the arena entry at index. The node is not linked anywhere yet.
func (v *View) createNode(index int, kind NodeKind, native NativeNode) *TreeNode {
	for len(v.nodes) <= index {
		v.nodes = append(v.nodes, nil)
	}
	n := &TreeNode{
		Index:      index,
		Kind:       kind,
		Native:     native,
		Parent:     NoNode,
		Child:      NoNode,
		Next:       NoNode,
		Detached:   true,
		ActiveCase: NoCase,
	}
	v.nodes[index] = n
	return n
}

// Attaches a native node at the end of the render parent of the node at parent
func (v *View) attachNative(parent int, native NativeNode) {
	//Host level
	if parent == NoNode {
		if v.host == nil {
			return
		} else if v.hostAnchor != nil {
			v.renderer.InsertBefore(v.host, native, v.hostAnchor)
		} else {
			v.renderer.AppendChild(v.host, native)
		}
		return
	}

	//ICU cases render in front of their anchor
	p := v.nodes[parent]
	if p.Kind == NK_IcuContainer {
		if renderParent := v.renderer.Parent(p.Native); renderParent != nil {
			v.renderer.InsertBefore(renderParent, native, p.Native)
		}
		return
	}

	v.renderer.AppendChild(p.Native, native)
}

// Removes a node from the renderer and from its sibling chain
func (v *View) removeNode(index int) error {
	n, err := v.node(index)
	if err != nil {
		return err
	}
	v.renderer.Remove(n.Native)
	v.unlink(n)
	n.Detached = true
	return nil
}
