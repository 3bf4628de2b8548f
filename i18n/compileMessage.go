//Create-opcode emitter
//go:build !i18nops_runtime_only

package i18n

import (
	"fmt"
	"strings"
)

// BlockOptions describe where a message sits in the view that declares it
type BlockOptions struct {
	Index         int   //Slot index of the block. An AppendChild to this index targets the view host.
	StartIndex    int   //First node index free for nodes created by the block
	ParentIndex   int   //Element the block is declared in, or Index when it is declared at the view root
	PreviousIndex int   //Node the block content follows inside its parent, or NoNode
	SubTemplate   int   //Sub-template to compile, or NoSubTemplate for the root view
	Expected      []int //Placeholder node indexes declared inside the block. Those the translation drops are removed.
}

// RootBlockOptions returns the options of a block declared at the view root with nothing before it
func RootBlockOptions(index, startIndex int) BlockOptions {
	return BlockOptions{
		Index:         index,
		StartIndex:    startIndex,
		ParentIndex:   index,
		PreviousIndex: NoNode,
		SubTemplate:   NoSubTemplate,
	}
}

// CompileRootMessage compiles the root view of a message declared at the view root
func CompileRootMessage(message string, index, startIndex int) (*Block, error) {
	return CompileMessage(message, RootBlockOptions(index, startIndex))
}

type blockCompiler struct {
	opts     BlockOptions
	create   MutateOps
	update   UpdateOps
	icus     []*Icu
	warnings []string
	vars     int
	parents  []int            //Stack of open elements
	visited  map[int]struct{} //Placeholder nodes the translation referenced
}

// CompileMessage compiles the part of a message selected by opts.SubTemplate into a Block
func CompileMessage(msg string, opts BlockOptions) (*Block, error) {
	for _, i := range []int{opts.Index, opts.StartIndex, opts.ParentIndex, opts.PreviousIndex} {
		if err := checkNodeIndex(i); err != nil {
			return nil, err
		}
	}

	//Parse the message
	var tokens []Token
	if cropped, err := Crop(msg, opts.SubTemplate); err != nil {
		return nil, err
	} else if _tokens, err := TokenizeMessage(cropped); err != nil {
		return nil, err
	} else {
		tokens = _tokens
	}

	//Content that follows an existing node starts by selecting it
	c := blockCompiler{
		opts:    opts,
		parents: []int{opts.ParentIndex},
		visited: make(map[int]struct{}),
	}
	if opts.PreviousIndex != NoNode {
		c.create = append(c.create, MutateOp{Code: MO_Select, Ref: opts.PreviousIndex})
	}

	//Emit the opcodes
	for _, t := range tokens {
		var err error
		switch t.Kind {
		case TK_Placeholder:
			err = c.placeholder(t.Placeholder)
		case TK_Text:
			c.text(t.Text)
		case TK_Icu:
			err = c.icu(t.Icu)
		}
		if err != nil {
			return nil, err
		}
	}

	//Remove the placeholders the translation dropped
	for _, index := range opts.Expected {
		if _, ok := c.visited[index]; !ok {
			c.create = append(c.create, MutateOp{Code: MO_Remove, Ref: index})
		}
	}

	if c.vars != 0 {
		if err := checkNodeIndex(opts.StartIndex + c.vars - 1); err != nil {
			return nil, err
		}
	}
	return &Block{
		Index:    opts.Index,
		Vars:     c.vars,
		Create:   c.create,
		Update:   c.update,
		Icus:     c.icus,
		Warnings: c.warnings,
	}, nil
}

func (c *blockCompiler) parent() int {
	return c.parents[len(c.parents)-1]
}

// Allocates the next node slot
func (c *blockCompiler) allocate() int {
	c.vars++
	return c.opts.StartIndex + c.vars - 1
}

func (c *blockCompiler) placeholder(ph Placeholder) error {
	switch ph.Kind {
	case PH_ElementClose:
		c.parents = c.parents[:len(c.parents)-1]
		c.create = append(c.create, MutateOp{Code: MO_ElementEnd, Ref: ph.Index})
	case PH_TemplateClose, PH_ProjectionClose:
	case PH_Element, PH_Template, PH_Projection:
		if err := checkNodeIndex(ph.Index); err != nil {
			return err
		}
		c.visited[ph.Index] = struct{}{}
		c.create = append(c.create,
			MutateOp{Code: MO_Select, Ref: ph.Index},
			MutateOp{Code: MO_AppendChild, Ref: c.parent()},
		)
		if ph.Kind == PH_Element {
			c.parents = append(c.parents, ph.Index)
		}
	}
	return nil
}

func (c *blockCompiler) text(text string) {
	text = strings.ReplaceAll(text, ngsp, " ")
	index := c.allocate()
	hasBinding := bindingRegex.MatchString(text)
	c.create = append(c.create,
		MutateOp{Code: MO_Text, Ref: index, Name: cond(hasBinding, "", text)},
		MutateOp{Code: MO_AppendChild, Ref: c.parent()},
	)
	if hasBinding {
		c.update = append(c.update, bindingUpdateBlock(text, index, UO_Text, "", SK_None))
	}
}

func (c *blockCompiler) icu(expr *IcuExpression) error {
	anchor := c.allocate()
	c.create = append(c.create,
		MutateOp{Code: MO_Comment, Ref: anchor, Name: fmt.Sprintf("ICU %d", anchor)},
		MutateOp{Code: MO_AppendChild, Ref: c.parent()},
	)

	icuIndex, err := compileIcu(&c.icus, &c.warnings, expr, anchor, anchor)
	if err != nil {
		return err
	}
	c.vars += c.icus[icuIndex].maxVars()
	c.update = append(c.update, icuUpdateBlocks(expr, anchor, icuIndex)...)
	return nil
}
