//Binding recorder and update opcode interpreter

package i18n

import (
	"reflect"
	"strconv"
	"strings"
)

type noChange struct{}
type unsetBinding struct{}

// NoChange may be passed to RecordExpression for a binding the caller knows did not change
var NoChange any = noChange{}

// BeginUpdate starts an update pass. Every binding of the view must then be recorded in order with RecordExpression.
func (v *View) BeginUpdate() {
	v.bindingIndex = 0
	v.shifts = 0
	v.changeMask = 0
}

// RecordExpression records the next binding value of the pending block and marks it changed when it differs from the
// value recorded in the previous pass
func (v *View) RecordExpression(value any) {
	for len(v.bindings) <= v.bindingIndex {
		v.bindings = append(v.bindings, unsetBinding{})
	}
	if _, ok := value.(noChange); !ok && !reflect.DeepEqual(v.bindings[v.bindingIndex], value) {
		v.bindings[v.bindingIndex] = value
		v.changeMask |= maskBit(v.shifts)
	}
	v.bindingIndex++
	v.shifts++
}

// ApplyUpdate runs the update opcodes of a block against the expressions recorded since the previous ApplyUpdate.
// Nothing runs when no expression was recorded.
func (v *View) ApplyUpdate(u Updater) error {
	if v.shifts == 0 {
		return nil
	}
	start, mask := v.bindingIndex-v.shifts, v.changeMask
	v.shifts, v.changeMask = 0, 0
	return v.runUpdate(u.updateOps(), u.icuTable(), start, mask, false)
}

// Runs an update stream. With bypass set every guarded block runs regardless of the change mask.
func (v *View) runUpdate(ops UpdateOps, icus []*Icu, bindingsStart int, changeMask uint32, bypass bool) error {
	//Once a case is (re)created every block of the ICU update has to run
	caseCreated := false

	for _, b := range ops {
		if !bypass && b.Mask&changeMask == 0 {
			continue
		}

		value, err := v.partsValue(b.Parts, bindingsStart)
		if err != nil {
			return err
		}

		switch b.Code {
		case UO_Text:
			n, err := v.node(b.Ref)
			if err != nil {
				return err
			}
			v.renderer.SetText(n.Native, value)
		case UO_Attr:
			n, err := v.node(b.Ref)
			if err != nil {
				return err
			}
			v.renderer.SetAttribute(n.Native, b.AttrName, b.Sanitizer.apply(value))
		case UO_IcuSwitch:
			if err := v.icuSwitch(icus, b.IcuIndex, b.Ref, value); err != nil {
				return err
			}
			caseCreated = true //Every later ICU update of this stream then rewrites all of its bindings
		case UO_IcuUpdate:
			icu, anchor, err := v.icuAnchor(icus, b.IcuIndex, b.Ref)
			if err != nil {
				return err
			} else if anchor.ActiveCase == NoCase {
				continue
			}
			if err := v.runUpdate(icu.Update[anchor.ActiveCase], icus, bindingsStart, changeMask, caseCreated); err != nil {
				return err
			}
		default:
			return newErr(ErrDesyncOpcode, "", "Unknown update opcode %d", b.Code)
		}
	}

	return nil
}

// Concatenates the parts of a guarded block, resolving bindings relative to bindingsStart
func (v *View) partsValue(parts []UpdatePart, bindingsStart int) (string, error) {
	var b strings.Builder
	for _, p := range parts {
		if p.Binding == NoBinding {
			b.WriteString(p.Text)
			continue
		}

		index := bindingsStart + p.Binding
		if p.Binding < 0 || index >= v.bindingIndex {
			return "", newErr(ErrDesyncOpcode, Marker+strconv.Itoa(p.Binding)+Marker, "Binding was not recorded")
		}
		if _, unset := v.bindings[index].(unsetBinding); !unset {
			b.WriteString(v.locale.Stringify(v.bindings[index]))
		}
	}
	return b.String(), nil
}
