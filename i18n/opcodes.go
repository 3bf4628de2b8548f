//Create (mutate) and update opcode definitions

package i18n

import (
	"fmt"
	"strconv"
	"strings"
)

// MutateOpCode is the operation tag of a MutateOp. The packed values match the flat encoding.
type MutateOpCode uint8

//goland:noinspection GoSnakeCaseUsage
const (
	MO_Select          MutateOpCode = 0b000 //Make the existing node Ref the current node
	MO_AppendChild     MutateOpCode = 0b001 //Append the current node to the parent Ref
	MO_Remove          MutateOpCode = 0b011 //Remove the node Ref
	MO_Attr            MutateOpCode = 0b100 //Set attribute Name=Value on the element Ref
	MO_ElementEnd      MutateOpCode = 0b101 //Close the element Ref
	MO_RemoveNestedIcu MutateOpCode = 0b110 //Tear down the active case of ICU table entry Ref, whose anchor is Anchor

	//Not packed into numbers by the flat encoding
	MO_Text    MutateOpCode = 8  //Create text node Ref with content Name
	MO_Comment MutateOpCode = 9  //Create ICU anchor comment node Ref with content Name
	MO_Element MutateOpCode = 10 //Create element node Ref with tag Name
)

//goland:noinspection GoSnakeCaseUsage
const (
	MutateShiftRef    = 3
	MutateShiftParent = 17
	MutateMaskOpCode  = 0b111
	MaxNodeIndex      = 1<<(32-MutateShiftParent) - 1 //Largest node index the flat encoding can address

	UpdateShiftRef   = 2
	UpdateMaskOpCode = 0b11
)

// MutateOp is a single create opcode
type MutateOp struct {
	Code   MutateOpCode
	Ref    int //Node index, parent node index (AppendChild) or ICU table index (RemoveNestedIcu)
	Anchor int //RemoveNestedIcu only
	Name   string
	Value  string
}

// MutateOps is a create opcode stream
type MutateOps []MutateOp

// Debug returns one human readable line per opcode
func (ops MutateOps) Debug() []string {
	ret := make([]string, len(ops))
	for i, op := range ops {
		ret[i] = op.String()
	}
	return ret
}

func (op MutateOp) String() string {
	switch op.Code {
	case MO_Select:
		return fmt.Sprintf("Select %d", op.Ref)
	case MO_AppendChild:
		return fmt.Sprintf("AppendChild %d", op.Ref)
	case MO_Remove:
		return fmt.Sprintf("Remove %d", op.Ref)
	case MO_Attr:
		return fmt.Sprintf("Attr %d %s=%s", op.Ref, op.Name, strconv.Quote(op.Value))
	case MO_ElementEnd:
		return fmt.Sprintf("ElementEnd %d", op.Ref)
	case MO_RemoveNestedIcu:
		return fmt.Sprintf("RemoveNestedIcu %d (anchor %d)", op.Ref, op.Anchor)
	case MO_Text:
		return fmt.Sprintf("Create Text Node %d %s", op.Ref, strconv.Quote(op.Name))
	case MO_Comment:
		return fmt.Sprintf("Create Comment Node %d %s", op.Ref, strconv.Quote(op.Name))
	case MO_Element:
		return fmt.Sprintf("Create Element Node %d <%s>", op.Ref, op.Name)
	default:
		return fmt.Sprintf("Unknown mutate opcode %d", op.Code)
	}
}

// UpdateOpCode is the operation tag terminating an UpdateBlock. The values match the flat encoding.
type UpdateOpCode uint8

//goland:noinspection GoSnakeCaseUsage
const (
	UO_Text      UpdateOpCode = 0b00
	UO_Attr      UpdateOpCode = 0b01
	UO_IcuSwitch UpdateOpCode = 0b10
	UO_IcuUpdate UpdateOpCode = 0b11
)

// UpdatePart is a literal string or a binding ordinal
type UpdatePart struct {
	Text    string
	Binding int //NoBinding for literals
}

// SanitizerKind selects the sanitizer applied to an attribute value before it is set
type SanitizerKind uint8

//goland:noinspection GoSnakeCaseUsage
const (
	SK_None SanitizerKind = iota
	SK_URL
	SK_Srcset
)

// UpdateBlock is a guarded block of the update stream. It only runs when one of the bindings in Mask changed.
type UpdateBlock struct {
	Mask      uint32
	Parts     []UpdatePart //Concatenated into the value passed to the operation
	Code      UpdateOpCode
	Ref       int           //Node index
	AttrName  string        //UO_Attr only
	Sanitizer SanitizerKind //UO_Attr only
	IcuIndex  int           //UO_IcuSwitch and UO_IcuUpdate only
}

// UpdateOps is an update opcode stream
type UpdateOps []UpdateBlock

// maskBit returns the change mask bit of a binding ordinal. Ordinals past 31 share the last bit.
func maskBit(binding int) uint32 {
	return 1 << min(binding, 31)
}

// Debug returns one human readable line per guarded block
func (ops UpdateOps) Debug() []string {
	ret := make([]string, len(ops))
	for i, b := range ops {
		ret[i] = b.String()
	}
	return ret
}

func (b UpdateBlock) String() string {
	var text strings.Builder
	for _, p := range b.Parts {
		if p.Binding == NoBinding {
			text.WriteString(p.Text)
		} else {
			text.WriteString(Marker + strconv.Itoa(p.Binding) + Marker)
		}
	}

	prefix := fmt.Sprintf("[checkBit %b] ", b.Mask)
	switch b.Code {
	case UO_Text:
		return prefix + fmt.Sprintf("Text %d %s", b.Ref, strconv.Quote(text.String()))
	case UO_Attr:
		return prefix + fmt.Sprintf("Attr %d %s=%s", b.Ref, b.AttrName, strconv.Quote(text.String()))
	case UO_IcuSwitch:
		return prefix + fmt.Sprintf("IcuSwitch %d icu=%d mainBinding=%s", b.Ref, b.IcuIndex, strconv.Quote(text.String()))
	case UO_IcuUpdate:
		return prefix + fmt.Sprintf("IcuUpdate %d icu=%d", b.Ref, b.IcuIndex)
	default:
		return prefix + fmt.Sprintf("Unknown update opcode %d", b.Code)
	}
}
