//Compiled block types shared by the compiler and the interpreter

/*
Package i18n compiles translated messages into opcode streams and interprets those streams against a View.

A message is a translated string holding placeholders delimited by Marker:

	�0�        Expression (binding ordinal 0)
	�#2�       Open element at node index 2 (�/#2� closes it)
	�*2:1�     Sub-template 1 anchored at node index 2 (�/*2:1� closes it)
	�!1�       Projection at node index 1
	�#1:1�     Element at node index 1 of sub-template 1

Messages may also hold ICU expressions such as “{�0�, plural, =0 {none} other {�0� items}}”.

Compiling produces a Block holding the create opcodes (run once by View.ApplyCreate), the update opcodes (run on
every View.ApplyUpdate) and the ICU table the update opcodes refer to.
*/
package i18n

//goland:noinspection GoSnakeCaseUsage
const (
	Marker        = "\uFFFD" //Delimits placeholders inside a message
	NoSubTemplate = -1       //Sub-template index that selects the root view of a message
	NoNode        = -1       //Node index meaning “no node”
	NoCase        = -1       //Active case of an ICU whose case has not been selected yet
	NoBinding     = -1       //UpdatePart.Binding of a literal part

	ngsp = "\uE500" //Non-collapsible space placeholder
)

// IcuType is the selector kind of an ICU expression
type IcuType uint8

//goland:noinspection GoSnakeCaseUsage
const (
	IT_Select IcuType = iota
	IT_Plural
)

func (t IcuType) String() string {
	if t == IT_Plural {
		return "plural"
	}
	return "select"
}

// Icu is a compiled ICU expression. Each case has its own create, remove and update streams.
//
// Nested ICUs are stored in the same Block.Icus table as their parent and referenced through ChildIcus.
type Icu struct {
	Type        IcuType
	MainBinding int         //Binding ordinal that selects the case
	Cases       []string    //Case keys (plural keys have their “=” removed)
	Vars        []int       //Number of node slots each case allocates, including nested ICUs
	ChildIcus   [][]int     //Indexes into Block.Icus of the ICUs nested directly inside each case
	Create      []MutateOps //Per case
	Remove      []MutateOps //Per case
	Update      []UpdateOps //Per case
}

// caseIndex returns the index of the case with the given key, or NoCase
func (icu *Icu) caseIndex(key string) int {
	for i, c := range icu.Cases {
		if c == key {
			return i
		}
	}
	return NoCase
}

// maxVars is the number of node slots the ICU needs for its largest case
func (icu *Icu) maxVars() int {
	ret := 0
	for _, v := range icu.Vars {
		ret = max(ret, v)
	}
	return ret
}

// Block is a compiled i18n message
type Block struct {
	Index  int //Slot index of the block. An AppendChild to this index targets the view host.
	Vars   int //Number of node slots allocated for nodes created by the block (starting at BlockOptions.StartIndex)
	Create MutateOps
	Update UpdateOps
	Icus   []*Icu

	Warnings []string //Compile warnings. Not part of the flat encoding.
}

// StaticAttribute is an attribute with no bindings, set once on creation
type StaticAttribute struct {
	Name  string
	Value string
}

// AttributeBlock is a compiled set of translated attributes for a single element
type AttributeBlock struct {
	Index  int //Node index of the element
	Static []StaticAttribute
	Update UpdateOps
}

// Updater is a compiled block whose update opcodes can be applied through View.ApplyUpdate
type Updater interface {
	updateOps() UpdateOps
	icuTable() []*Icu
}

func (b *Block) updateOps() UpdateOps { return b.Update }
func (b *Block) icuTable() []*Icu     { return b.Icus }

func (a *AttributeBlock) updateOps() UpdateOps { return a.Update }
func (a *AttributeBlock) icuTable() []*Icu     { return nil }
