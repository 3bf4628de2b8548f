//Flat (serializable) encoding of compiled blocks

package i18n

import (
	"fmt"

	"github.com/valyala/fastjson"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FlatMarker tags the create-node entries of a flat create stream that are not text nodes
type FlatMarker string

//goland:noinspection GoSnakeCaseUsage
const (
	FM_Comment FlatMarker = "comment"
	FM_Element FlatMarker = "element"
)

func checkNodeIndex(index int) error {
	if index > MaxNodeIndex {
		return newErr(ErrNodeIndexOverflow, "", "%s", message.NewPrinter(language.English).Sprintf("Node index %d cannot be larger than %d", index, MaxNodeIndex))
	}
	return nil
}

// Flatten encodes the stream as a flat list of strings, ints and FlatMarkers
//
//	Text:               text, index
//	Comment:            FM_Comment, value, index
//	Element:            FM_Element, tag, index
//	AppendChild:        parent<<MutateShiftParent | MO_AppendChild
//	Attr:               index<<MutateShiftRef | MO_Attr, name, value
//	Other:              index<<MutateShiftRef | code
func (ops MutateOps) Flatten() []any {
	ret := make([]any, 0, len(ops)*2)
	for _, op := range ops {
		switch op.Code {
		case MO_Text:
			ret = append(ret, op.Name, op.Ref)
		case MO_Comment:
			ret = append(ret, FM_Comment, op.Name, op.Ref)
		case MO_Element:
			ret = append(ret, FM_Element, op.Name, op.Ref)
		case MO_AppendChild:
			ret = append(ret, op.Ref<<MutateShiftParent|int(op.Code))
		case MO_Attr:
			ret = append(ret, op.Ref<<MutateShiftRef|int(op.Code), op.Name, op.Value)
		default:
			ret = append(ret, op.Ref<<MutateShiftRef|int(op.Code))
		}
	}
	return ret
}

// UnflattenMutateOps decodes a stream created by MutateOps.Flatten
func UnflattenMutateOps(flat []any) (MutateOps, error) {
	var ret MutateOps
	r := flatReader{flat: flat}
	for !r.done() {
		switch v := r.next().(type) {
		case string:
			index, err := r.int()
			if err != nil {
				return nil, err
			}
			ret = append(ret, MutateOp{Code: MO_Text, Ref: index, Name: v})
		case FlatMarker:
			name, err := r.string()
			if err != nil {
				return nil, err
			}
			index, err := r.int()
			if err != nil {
				return nil, err
			}
			switch v {
			case FM_Comment:
				ret = append(ret, MutateOp{Code: MO_Comment, Ref: index, Name: name})
			case FM_Element:
				ret = append(ret, MutateOp{Code: MO_Element, Ref: index, Name: name})
			default:
				return nil, newErr(ErrDesyncOpcode, string(v), "Unknown marker at position %d", r.pos-3)
			}
		case int:
			code := MutateOpCode(v & MutateMaskOpCode)
			switch code {
			case MO_AppendChild:
				ret = append(ret, MutateOp{Code: code, Ref: v >> MutateShiftParent})
			case MO_Attr:
				name, err := r.string()
				if err != nil {
					return nil, err
				}
				value, err := r.string()
				if err != nil {
					return nil, err
				}
				ret = append(ret, MutateOp{Code: code, Ref: v >> MutateShiftRef, Name: name, Value: value})
			case MO_RemoveNestedIcu:
				//The anchor is the node of the Remove that follows
				if anchor, ok := r.peek().(int); !ok || MutateOpCode(anchor&MutateMaskOpCode) != MO_Remove {
					return nil, newErr(ErrDesyncOpcode, "", "RemoveNestedIcu at position %d is not followed by a Remove", r.pos-1)
				} else {
					ret = append(ret, MutateOp{Code: code, Ref: v >> MutateShiftRef, Anchor: anchor >> MutateShiftRef})
				}
			case MO_Select, MO_Remove, MO_ElementEnd:
				ret = append(ret, MutateOp{Code: code, Ref: v >> MutateShiftRef})
			default:
				return nil, newErr(ErrDesyncOpcode, "", "Unknown create opcode %d at position %d", code, r.pos-1)
			}
		default:
			return nil, newErr(ErrDesyncOpcode, "", "Unexpected %T at position %d", v, r.pos-1)
		}
	}
	return ret, nil
}

// Flatten encodes the stream as a flat list of guarded blocks
//
//	mask, skip, parts..., index<<UpdateShiftRef | code, args...
//
// Literal parts are strings and binding k is encoded as -1-k. Skip counts the entries after itself.
// Attr args are the name and the SanitizerKind. Icu args are the ICU table index.
func (ops UpdateOps) Flatten() []any {
	var ret []any
	for _, b := range ops {
		ret = append(ret, int(b.Mask), 0)
		skipPos := len(ret) - 1
		for _, p := range b.Parts {
			if p.Binding == NoBinding {
				ret = append(ret, p.Text)
			} else {
				ret = append(ret, -1-p.Binding)
			}
		}
		ret = append(ret, b.Ref<<UpdateShiftRef|int(b.Code))
		switch b.Code {
		case UO_Attr:
			ret = append(ret, b.AttrName, int(b.Sanitizer))
		case UO_IcuSwitch, UO_IcuUpdate:
			ret = append(ret, b.IcuIndex)
		}
		ret[skipPos] = len(ret) - skipPos - 1
	}
	return ret
}

// UnflattenUpdateOps decodes a stream created by UpdateOps.Flatten
func UnflattenUpdateOps(flat []any) (UpdateOps, error) {
	var ret UpdateOps
	r := flatReader{flat: flat}
	for !r.done() {
		mask, err := r.int()
		if err != nil {
			return nil, err
		}
		skip, err := r.int()
		if err != nil {
			return nil, err
		}
		blockStart := r.pos

		//Parts end at the first non-negative number
		b := UpdateBlock{Mask: uint32(mask)}
		var op int
	PartsLoop:
		for {
			if r.done() {
				return nil, newErr(ErrDesyncOpcode, "", "Update block at position %d has no operation", blockStart)
			}
			switch v := r.next().(type) {
			case string:
				b.Parts = append(b.Parts, UpdatePart{v, NoBinding})
			case int:
				if v >= 0 {
					op = v
					break PartsLoop
				}
				b.Parts = append(b.Parts, UpdatePart{Binding: -1 - v})
			default:
				return nil, newErr(ErrDesyncOpcode, "", "Unexpected %T at position %d", v, r.pos-1)
			}
		}

		b.Code, b.Ref = UpdateOpCode(op&UpdateMaskOpCode), op>>UpdateShiftRef
		switch b.Code {
		case UO_Attr:
			if b.AttrName, err = r.string(); err != nil {
				return nil, err
			}
			sanitizer, err := r.int()
			if err != nil {
				return nil, err
			}
			b.Sanitizer = SanitizerKind(sanitizer)
		case UO_IcuSwitch, UO_IcuUpdate:
			if b.IcuIndex, err = r.int(); err != nil {
				return nil, err
			}
		}

		if r.pos-blockStart != skip {
			return nil, newErr(ErrDesyncOpcode, "", "Update block at position %d skips %d entries but holds %d", blockStart-2, skip, r.pos-blockStart)
		}
		ret = append(ret, b)
	}
	return ret, nil
}

type flatReader struct {
	flat []any
	pos  int
}

func (r *flatReader) done() bool {
	return r.pos >= len(r.flat)
}

func (r *flatReader) next() any {
	r.pos++
	return r.flat[r.pos-1]
}

func (r *flatReader) peek() any {
	if r.done() {
		return nil
	}
	return r.flat[r.pos]
}

func (r *flatReader) int() (int, error) {
	if r.done() {
		return 0, newErr(ErrDesyncOpcode, "", "Stream ended while reading a number")
	} else if v, ok := r.next().(int); !ok {
		return 0, newErr(ErrDesyncOpcode, "", "Expected a number at position %d", r.pos-1)
	} else {
		return v, nil
	}
}

func (r *flatReader) string() (string, error) {
	if r.done() {
		return "", newErr(ErrDesyncOpcode, "", "Stream ended while reading a string")
	} else if v, ok := r.next().(string); !ok {
		return "", newErr(ErrDesyncOpcode, "", "Expected a string at position %d", r.pos-1)
	} else {
		return v, nil
	}
}

//-----------------------------------JSON-----------------------------------

func flatToJSON(a *fastjson.Arena, flat []any) *fastjson.Value {
	ret := a.NewArray()
	for i, item := range flat {
		var v *fastjson.Value
		switch val := item.(type) {
		case string:
			v = a.NewString(val)
		case int:
			v = a.NewNumberInt(val)
		case FlatMarker:
			v = a.NewObject()
			v.Set("marker", a.NewString(string(val)))
		default:
			v = a.NewNull()
		}
		ret.SetArrayItem(i, v)
	}
	return ret
}

func flatFromJSON(v *fastjson.Value) ([]any, error) {
	if v == nil {
		return nil, nil
	}
	arr, err := v.Array()
	if err != nil {
		return nil, err
	}

	ret := make([]any, len(arr))
	for i, item := range arr {
		switch item.Type() {
		case fastjson.TypeString:
			ret[i] = string(item.GetStringBytes())
		case fastjson.TypeNumber:
			if ret[i], err = item.Int(); err != nil {
				return nil, err
			}
		case fastjson.TypeObject:
			ret[i] = FlatMarker(item.GetStringBytes("marker"))
		default:
			return nil, fmt.Errorf("Invalid flat opcode entry at position %d: %s", i, item.Type().String())
		}
	}
	return ret, nil
}

func intsToJSON(a *fastjson.Arena, ints []int) *fastjson.Value {
	ret := a.NewArray()
	for i, n := range ints {
		ret.SetArrayItem(i, a.NewNumberInt(n))
	}
	return ret
}

func intsFromJSON(v *fastjson.Value) ([]int, error) {
	arr, err := v.Array()
	if err != nil {
		return nil, err
	}
	ret := make([]int, len(arr))
	for i, item := range arr {
		if ret[i], err = item.Int(); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func mutateOpsFromJSON(v *fastjson.Value) (MutateOps, error) {
	if flat, err := flatFromJSON(v); err != nil {
		return nil, err
	} else {
		return UnflattenMutateOps(flat)
	}
}

func updateOpsFromJSON(v *fastjson.Value) (UpdateOps, error) {
	if flat, err := flatFromJSON(v); err != nil {
		return nil, err
	} else {
		return UnflattenUpdateOps(flat)
	}
}

// AppendJSON encodes the block (without its warnings) as a JSON object allocated from a
func (b *Block) AppendJSON(a *fastjson.Arena) *fastjson.Value {
	ret := a.NewObject()
	ret.Set("index", a.NewNumberInt(b.Index))
	ret.Set("vars", a.NewNumberInt(b.Vars))
	ret.Set("create", flatToJSON(a, b.Create.Flatten()))
	ret.Set("update", flatToJSON(a, b.Update.Flatten()))

	icus := a.NewArray()
	for i, icu := range b.Icus {
		o := a.NewObject()
		o.Set("type", a.NewNumberInt(int(icu.Type)))
		o.Set("mainBinding", a.NewNumberInt(icu.MainBinding))
		cases := a.NewArray()
		for j, c := range icu.Cases {
			cases.SetArrayItem(j, a.NewString(c))
		}
		o.Set("cases", cases)
		o.Set("vars", intsToJSON(a, icu.Vars))

		childIcus, create, remove, update := a.NewArray(), a.NewArray(), a.NewArray(), a.NewArray()
		for j := range icu.Cases {
			childIcus.SetArrayItem(j, intsToJSON(a, icu.ChildIcus[j]))
			create.SetArrayItem(j, flatToJSON(a, icu.Create[j].Flatten()))
			remove.SetArrayItem(j, flatToJSON(a, icu.Remove[j].Flatten()))
			update.SetArrayItem(j, flatToJSON(a, icu.Update[j].Flatten()))
		}
		o.Set("childIcus", childIcus)
		o.Set("create", create)
		o.Set("remove", remove)
		o.Set("update", update)
		icus.SetArrayItem(i, o)
	}
	ret.Set("icus", icus)

	return ret
}

// BlockFromJSON decodes a block encoded by Block.AppendJSON
func BlockFromJSON(v *fastjson.Value) (*Block, error) {
	ret := &Block{
		Index: v.GetInt("index"),
		Vars:  v.GetInt("vars"),
	}
	var err error
	if ret.Create, err = mutateOpsFromJSON(v.Get("create")); err != nil {
		return nil, fmt.Errorf("Invalid create stream: %w", err)
	}
	if ret.Update, err = updateOpsFromJSON(v.Get("update")); err != nil {
		return nil, fmt.Errorf("Invalid update stream: %w", err)
	}

	for i, o := range v.GetArray("icus") {
		icu := &Icu{
			Type:        IcuType(o.GetInt("type")),
			MainBinding: o.GetInt("mainBinding"),
		}
		for _, c := range o.GetArray("cases") {
			icu.Cases = append(icu.Cases, string(c.GetStringBytes()))
		}
		if icu.Vars, err = intsFromJSON(o.Get("vars")); err != nil {
			return nil, fmt.Errorf("Invalid vars of ICU %d: %w", i, err)
		}

		childIcus, create, remove, update := o.GetArray("childIcus"), o.GetArray("create"), o.GetArray("remove"), o.GetArray("update")
		if len(icu.Vars) != len(icu.Cases) || len(childIcus) != len(icu.Cases) || len(create) != len(icu.Cases) || len(remove) != len(icu.Cases) || len(update) != len(icu.Cases) {
			return nil, newErr(ErrDesyncOpcode, "", "ICU %d does not have a stream for every case", i)
		}
		for j := range icu.Cases {
			var children []int
			var c, r MutateOps
			var u UpdateOps
			if children, err = intsFromJSON(childIcus[j]); err != nil {
				return nil, fmt.Errorf("Invalid child ICUs of ICU %d case %d: %w", i, j, err)
			} else if c, err = mutateOpsFromJSON(create[j]); err != nil {
				return nil, fmt.Errorf("Invalid create stream of ICU %d case %d: %w", i, j, err)
			} else if r, err = mutateOpsFromJSON(remove[j]); err != nil {
				return nil, fmt.Errorf("Invalid remove stream of ICU %d case %d: %w", i, j, err)
			} else if u, err = updateOpsFromJSON(update[j]); err != nil {
				return nil, fmt.Errorf("Invalid update stream of ICU %d case %d: %w", i, j, err)
			}
			icu.ChildIcus = append(icu.ChildIcus, children)
			icu.Create = append(icu.Create, c)
			icu.Remove = append(icu.Remove, r)
			icu.Update = append(icu.Update, u)
		}
		ret.Icus = append(ret.Icus, icu)
	}

	return ret, nil
}

// AppendJSON encodes the attribute block as a JSON object allocated from a
func (ab *AttributeBlock) AppendJSON(a *fastjson.Arena) *fastjson.Value {
	ret := a.NewObject()
	ret.Set("index", a.NewNumberInt(ab.Index))
	static := a.NewArray()
	for i, s := range ab.Static {
		pair := a.NewArray()
		pair.SetArrayItem(0, a.NewString(s.Name))
		pair.SetArrayItem(1, a.NewString(s.Value))
		static.SetArrayItem(i, pair)
	}
	ret.Set("static", static)
	ret.Set("update", flatToJSON(a, ab.Update.Flatten()))
	return ret
}

// AttributeBlockFromJSON decodes an attribute block encoded by AttributeBlock.AppendJSON
func AttributeBlockFromJSON(v *fastjson.Value) (*AttributeBlock, error) {
	ret := &AttributeBlock{Index: v.GetInt("index")}
	for i, pair := range v.GetArray("static") {
		items := pair.GetArray()
		if len(items) != 2 {
			return nil, fmt.Errorf("Static attribute %d is not a name/value pair", i)
		}
		ret.Static = append(ret.Static, StaticAttribute{string(items[0].GetStringBytes()), string(items[1].GetStringBytes())})
	}

	var err error
	if ret.Update, err = updateOpsFromJSON(v.Get("update")); err != nil {
		return nil, fmt.Errorf("Invalid update stream: %w", err)
	}
	return ret, nil
}
