//ICU case selection and teardown

package i18n

// Returns the ICU table entry and its anchor node
func (v *View) icuAnchor(icus []*Icu, icuIndex, anchorIndex int) (*Icu, *TreeNode, error) {
	if icuIndex < 0 || icuIndex >= len(icus) {
		return nil, nil, newErr(ErrDesyncOpcode, "", "ICU %d does not exist", icuIndex)
	}
	anchor, err := v.node(anchorIndex)
	if err != nil {
		return nil, nil, err
	} else if anchor.Kind != NK_IcuContainer {
		return nil, nil, newErr(ErrDesyncOpcode, "", "Node %d is not an ICU anchor", anchorIndex)
	}
	return icus[icuIndex], anchor, nil
}

// Tears down the active case of an ICU and creates the case selected by value
func (v *View) icuSwitch(icus []*Icu, icuIndex, anchorIndex int, value string) error {
	icu, anchor, err := v.icuAnchor(icus, icuIndex, anchorIndex)
	if err != nil {
		return err
	}

	if anchor.ActiveCase != NoCase {
		active := anchor.ActiveCase
		anchor.ActiveCase = NoCase
		if err := v.runRemove(icu.Remove[active], icus); err != nil {
			return err
		}
	}

	anchor.ActiveCase = v.selectCase(icu, value)
	if anchor.ActiveCase == NoCase {
		return nil
	}
	return v.runCreate(icu.Create[anchor.ActiveCase], NoNode)
}

// Returns the case matching value exactly, then the case of its plural category, then “other”
func (v *View) selectCase(icu *Icu, value string) int {
	if i := icu.caseIndex(value); i != NoCase {
		return i
	}
	if icu.Type == IT_Plural {
		if i := icu.caseIndex(string(v.locale.PluralCase(value))); i != NoCase {
			return i
		}
	}
	return icu.caseIndex(string(PC_Other))
}

// Runs a case remove stream. Nested ICUs have their own active case removed first.
func (v *View) runRemove(ops MutateOps, icus []*Icu) error {
	for _, op := range ops {
		switch op.Code {
		case MO_Remove:
			if err := v.removeNode(op.Ref); err != nil {
				return err
			}
		case MO_RemoveNestedIcu:
			nested, anchor, err := v.icuAnchor(icus, op.Ref, op.Anchor)
			if err != nil {
				return err
			} else if anchor.ActiveCase == NoCase {
				continue
			}
			active := anchor.ActiveCase
			anchor.ActiveCase = NoCase
			if err := v.runRemove(nested.Remove[active], icus); err != nil {
				return err
			}
		default:
			return newErr(ErrDesyncOpcode, "", "Unexpected remove opcode “%s”", op.String())
		}
	}
	return nil
}
