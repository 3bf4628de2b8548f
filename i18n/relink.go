//Sibling chain maintenance for the View arena

package i18n

func (v *View) firstChildOf(parent int) int {
	if parent == NoNode {
		return v.firstChild
	}
	return v.nodes[parent].Child
}

func (v *View) setFirstChildOf(parent, child int) {
	if parent == NoNode {
		v.firstChild = child
	} else {
		v.nodes[parent].Child = child
	}
}

func (v *View) lastChildOf(parent int) int {
	last := NoNode
	for i := v.firstChildOf(parent); i != NoNode; i = v.nodes[i].Next {
		last = i
	}
	return last
}

// Removes a node from the sibling chain of its parent. Nodes that are not linked are left alone.
func (v *View) unlink(n *TreeNode) {
	if n.Detached {
		return
	}
	defer func() {
		n.Next = NoNode
		n.Detached = true
	}()

	first := v.firstChildOf(n.Parent)
	if first == n.Index {
		v.setFirstChildOf(n.Parent, n.Next)
		return
	}
	for i := first; i != NoNode; i = v.nodes[i].Next {
		if v.nodes[i].Next == n.Index {
			v.nodes[i].Next = n.Next
			return
		}
	}
}

// Links a node into the chain of parent right after prev, or first when prev is NoNode
func (v *View) linkAfter(n *TreeNode, parent, prev int) {
	n.Parent = parent
	n.Detached = false
	if prev == NoNode {
		n.Next = v.firstChildOf(parent)
		v.setFirstChildOf(parent, n.Index)
	} else {
		n.Next = v.nodes[prev].Next
		v.nodes[prev].Next = n.Index
	}
}

// relinker tracks, per parent, the last node placed by a create stream so each AppendChild lands after it
type relinker struct {
	v        *View
	previous map[int]int
}

func newRelinker(v *View) *relinker {
	return &relinker{v, make(map[int]int)}
}

// seed makes node the one the following content of its parent is placed after
func (r *relinker) seed(node int) {
	n := r.v.nodes[node]
	if !n.Detached {
		r.previous[n.Parent] = node
	}
}

// append moves node into the chain of parent after the previously placed node, and attaches it natively.
// Without a previously placed node it goes last, where the renderer appends it.
func (r *relinker) append(node, parent int) {
	n := r.v.nodes[node]
	r.v.unlink(n)
	prev, ok := r.previous[parent]
	if !ok {
		prev = r.v.lastChildOf(parent)
	}
	r.v.linkAfter(n, parent, prev)
	r.previous[parent] = node
	r.v.attachNative(parent, n.Native)
}
