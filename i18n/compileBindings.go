//Update-opcode emitter
//go:build !i18nops_runtime_only

package i18n

import (
	"strconv"
)

// splitBindings splits a string on its expression placeholders and returns the parts and the mask of the bindings used
func splitBindings(str string) (parts []UpdatePart, mask uint32) {
	pos := 0
	for _, loc := range bindingRegex.FindAllStringSubmatchIndex(str, -1) {
		if loc[0] > pos {
			parts = append(parts, UpdatePart{str[pos:loc[0]], NoBinding})
		}
		binding, _ := strconv.Atoi(str[loc[2]:loc[3]])
		parts = append(parts, UpdatePart{Binding: binding})
		mask |= maskBit(binding)
		pos = loc[1]
	}
	if pos < len(str) {
		parts = append(parts, UpdatePart{str[pos:], NoBinding})
	}

	return
}

// Creates the guarded block that writes str (with its bindings resolved) to a text node or attribute
func bindingUpdateBlock(str string, node int, code UpdateOpCode, attrName string, sanitizer SanitizerKind) UpdateBlock {
	parts, mask := splitBindings(str)
	return UpdateBlock{
		Mask:      mask,
		Parts:     parts,
		Code:      code,
		Ref:       node,
		AttrName:  attrName,
		Sanitizer: sanitizer,
	}
}

// Creates the 2 guarded blocks of an ICU anchor: the case switch (main binding only) and the case update (all bindings)
func icuUpdateBlocks(expr *IcuExpression, anchor, icuIndex int) []UpdateBlock {
	return []UpdateBlock{
		{
			Mask:     maskBit(expr.MainBinding),
			Parts:    []UpdatePart{{Binding: expr.MainBinding}},
			Code:     UO_IcuSwitch,
			Ref:      anchor,
			IcuIndex: icuIndex,
		},
		{
			Mask:     expr.bindingMask(),
			Code:     UO_IcuUpdate,
			Ref:      anchor,
			IcuIndex: icuIndex,
		},
	}
}

// CompileAttributeMessage compiles a single translated attribute of the element at nodeIndex
func CompileAttributeMessage(nodeIndex int, attrName, message string) (*AttributeBlock, error) {
	return CompileAttributes(nodeIndex, attrName, message)
}

// CompileAttributes compiles translated attributes of the element at nodeIndex. nameMessages is a list of name/message pairs.
//
// Attributes without bindings are returned in AttributeBlock.Static. The others get update blocks.
func CompileAttributes(nodeIndex int, nameMessages ...string) (*AttributeBlock, error) {
	if len(nameMessages)&1 != 0 {
		return nil, newErr(ErrMalformedMessage, nameMessages[len(nameMessages)-1], "Attribute is missing its message")
	}
	if err := checkNodeIndex(nodeIndex); err != nil {
		return nil, err
	}

	ret := &AttributeBlock{Index: nodeIndex}
	for i := 0; i < len(nameMessages); i += 2 {
		attrName, message := nameMessages[i], nameMessages[i+1]

		//ICU expressions are not allowed
		parts, err := extractParts(message)
		if err != nil {
			return nil, err
		}
		for _, p := range parts {
			if p.Icu != nil {
				return nil, newErr(ErrIcuInAttribute, attrName, "Attribute “%s” contains an ICU expression", attrName)
			}
		}

		if message == "" {
			continue
		} else if bindingRegex.MatchString(message) {
			ret.Update = append(ret.Update, bindingUpdateBlock(message, nodeIndex, UO_Attr, attrName, SK_None))
		} else {
			ret.Static = append(ret.Static, StaticAttribute{attrName, message})
		}
	}

	return ret, nil
}
