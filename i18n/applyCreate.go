//Create opcode interpreter

package i18n

// ApplyCreate runs the create opcodes of a block once, after the placeholder nodes it references have been declared.
//
// An AppendChild to the block index attaches to the view host.
func (v *View) ApplyCreate(b *Block) error {
	return v.runCreate(b.Create, b.Index)
}

// ApplyAttributes sets the static attributes of an attribute block. Bound attributes are set by ApplyUpdate.
func (v *View) ApplyAttributes(a *AttributeBlock) error {
	n, err := v.node(a.Index)
	if err != nil {
		return err
	}
	for _, attr := range a.Static {
		v.renderer.SetAttribute(n.Native, attr.Name, attr.Value)
	}
	return nil
}

// Runs a create stream. ICU cases pass NoNode as hostIndex as they never attach to the host.
func (v *View) runCreate(ops MutateOps, hostIndex int) error {
	r := newRelinker(v)
	current := NoNode
	for i, op := range ops {
		switch op.Code {
		case MO_Text:
			current = v.createNode(op.Ref, NK_Text, v.renderer.CreateText(op.Name)).Index
		case MO_Comment:
			current = v.createNode(op.Ref, NK_IcuContainer, v.renderer.CreateComment(op.Name)).Index
		case MO_Element:
			current = v.createNode(op.Ref, NK_Element, v.renderer.CreateElement(op.Name)).Index
		case MO_Select, MO_ElementEnd:
			if _, err := v.node(op.Ref); err != nil {
				return err
			}
			current = op.Ref

			//A leading select marks the node the content follows
			if op.Code == MO_Select && (i+1 == len(ops) || ops[i+1].Code != MO_AppendChild) {
				r.seed(op.Ref)
			}
		case MO_AppendChild:
			if current == NoNode {
				return newErr(ErrDesyncOpcode, "", "AppendChild %d has no current node", op.Ref)
			}
			parent := op.Ref
			if parent == hostIndex {
				parent = NoNode
			} else if _, err := v.node(parent); err != nil {
				return err
			}
			r.append(current, parent)
		case MO_Attr:
			n, err := v.node(op.Ref)
			if err != nil {
				return err
			}
			v.renderer.SetAttribute(n.Native, op.Name, op.Value)
		case MO_Remove:
			if err := v.removeNode(op.Ref); err != nil {
				return err
			}
		default:
			return newErr(ErrDesyncOpcode, "", "Unexpected create opcode “%s”", op.String())
		}
	}
	return nil
}
