//Compile ICU expressions and their HTML cases into opcodes
//go:build !i18nops_runtime_only

package i18n

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Comment content that stands in for the nth nested ICU of a case
var nestedIcuRegex = regexp.MustCompile(`^` + Marker + `(\d+)` + Marker + `$`)

// compileIcu compiles expr into the icus table and returns its index. Nested ICUs are added before their parent.
//
// Case nodes are allocated after expandoStart and are attached under anchor.
func compileIcu(icus *[]*Icu, warnings *[]string, expr *IcuExpression, anchor, expandoStart int) (int, error) {
	icu := &Icu{
		Type:        expr.Type,
		MainBinding: expr.MainBinding,
		Cases:       slices.Clone(expr.Cases),
	}

	for _, values := range expr.Values {
		//Nested ICU expressions are replaced by comments which become their anchors
		var caseHTML strings.Builder
		var nested []*IcuExpression
		for _, v := range values {
			if v.Icu != nil {
				_, _ = fmt.Fprintf(&caseHTML, "<!--%s%d%s-->", Marker, len(nested), Marker)
				nested = append(nested, v.Icu)
			} else {
				caseHTML.WriteString(v.Text)
			}
		}

		c := icuCaseCompiler{
			icus:         icus,
			warnings:     warnings,
			nested:       nested,
			expandoStart: expandoStart,
		}
		if err := c.compile(caseHTML.String(), anchor); err != nil {
			return 0, err
		}
		icu.Vars = append(icu.Vars, c.vars)
		icu.ChildIcus = append(icu.ChildIcus, c.childIcus)
		icu.Create = append(icu.Create, c.create)
		icu.Remove = append(icu.Remove, c.remove)
		icu.Update = append(icu.Update, c.update)
	}

	*icus = append(*icus, icu)
	return len(*icus) - 1, nil
}

type icuCaseCompiler struct {
	icus         *[]*Icu
	warnings     *[]string
	nested       []*IcuExpression
	expandoStart int
	vars         int
	create       MutateOps
	remove       MutateOps
	update       UpdateOps
	childIcus    []int
}

func (c *icuCaseCompiler) allocate() int {
	c.vars++
	return c.expandoStart + c.vars
}

func (c *icuCaseCompiler) warn(format string, args ...any) {
	*c.warnings = append(*c.warnings, fmt.Sprintf(format, args...))
}

func (c *icuCaseCompiler) compile(caseHTML string, parent int) error {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(caseHTML), body)
	if err != nil {
		return newErr(ErrMalformedMessage, "", "Unable to parse ICU case “%s”: %s", caseHTML, err.Error())
	}
	return c.nodes(nodes, parent)
}

func (c *icuCaseCompiler) nodes(nodes []*html.Node, parent int) error {
	type nestedIcu struct {
		expr   *IcuExpression
		anchor int
	}
	var nestedToCreate []nestedIcu

	for _, n := range nodes {
		switch n.Type {
		case html.ElementNode:
			tag := strings.ToLower(n.Data)
			if !validElements[tag] {
				c.warn("Ignoring element <%s> inside an ICU case", tag)
				continue
			}
			index := c.allocate()
			if err := checkNodeIndex(index); err != nil {
				return err
			}
			c.create = append(c.create,
				MutateOp{Code: MO_Element, Ref: index, Name: tag},
				MutateOp{Code: MO_AppendChild, Ref: parent},
			)

			//Attributes with bindings are only allowed when their name is known to be safe
			for _, a := range n.Attr {
				name := cond(a.Namespace == "", a.Key, a.Namespace+":"+a.Key)
				lowerName := strings.ToLower(name)
				switch {
				case !bindingRegex.MatchString(a.Val):
					c.create = append(c.create, MutateOp{Code: MO_Attr, Ref: index, Name: name, Value: a.Val})
				case validAttrs[lowerName]:
					c.update = append(c.update, bindingUpdateBlock(a.Val, index, UO_Attr, name, attrSanitizer(lowerName)))
				default:
					c.warn("Ignoring unsafe attribute value %s on element %s", lowerName, tag)
				}
			}

			//Children are removed before their parent
			var children []*html.Node
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				children = append(children, child)
			}
			if err := c.nodes(children, index); err != nil {
				return err
			}
			c.remove = append(c.remove, MutateOp{Code: MO_Remove, Ref: index})
		case html.TextNode:
			index := c.allocate()
			if err := checkNodeIndex(index); err != nil {
				return err
			}
			text := strings.ReplaceAll(n.Data, ngsp, " ")
			hasBinding := bindingRegex.MatchString(text)
			c.create = append(c.create,
				MutateOp{Code: MO_Text, Ref: index, Name: cond(hasBinding, "", text)},
				MutateOp{Code: MO_AppendChild, Ref: parent},
			)
			c.remove = append(c.remove, MutateOp{Code: MO_Remove, Ref: index})
			if hasBinding {
				c.update = append(c.update, bindingUpdateBlock(text, index, UO_Text, "", SK_None))
			}
		case html.CommentNode:
			m := nestedIcuRegex.FindStringSubmatch(n.Data)
			if m == nil {
				continue
			}
			nestedIndex, _ := strconv.Atoi(m[1])
			if nestedIndex >= len(c.nested) {
				continue
			}
			index := c.allocate()
			if err := checkNodeIndex(index); err != nil {
				return err
			}
			c.create = append(c.create,
				MutateOp{Code: MO_Comment, Ref: index, Name: fmt.Sprintf("nested ICU %d", nestedIndex)},
				MutateOp{Code: MO_AppendChild, Ref: parent},
			)
			nestedToCreate = append(nestedToCreate, nestedIcu{c.nested[nestedIndex], index})
		}
	}

	//Nested ICUs allocate their case nodes after every node of this level
	for _, n := range nestedToCreate {
		icuIndex, err := compileIcu(c.icus, c.warnings, n.expr, n.anchor, c.expandoStart+c.vars)
		if err != nil {
			return err
		}
		c.vars += (*c.icus)[icuIndex].maxVars()
		c.childIcus = append(c.childIcus, icuIndex)
		c.update = append(c.update, icuUpdateBlocks(n.expr, n.anchor, icuIndex)...)
		c.remove = append(c.remove,
			MutateOp{Code: MO_RemoveNestedIcu, Ref: icuIndex, Anchor: n.anchor},
			MutateOp{Code: MO_Remove, Ref: n.anchor},
		)
	}

	return nil
}
