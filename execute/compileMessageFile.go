//Compile message (YAML or JSON) files into catalogs
//go:build !i18nops_runtime_only

package execute

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/dakusan/i18nops/i18n"
)

// -------------------Interface to access text processing maps-------------------
type tpMap interface {
	getValue(string) (val tpItem, ok bool)
	toOrdered() []tpItem
}
type tpItem interface {
	getName() string
	getObject() (val tpMap, ok bool)
	getList() (val []tpItem, ok bool)
	getString() (val string, ok bool)
}

// Block names become Go constants
var blockNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func compileMessageFile(topItem tpItem, fileLocale string) (cat *i18n.Catalog, errors, warnings []string) {
	//Handle errors and warnings
	//Returns nil+errors+warnings so call to this can be used as return in parent
	addErrStr := func(err string, args ...any) (*i18n.Catalog, []string, []string) {
		errors = append(errors, fmt.Sprintf(err, args...))
		return nil, errors, warnings
	}
	addWarnStr := func(warn string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(warn, args...))
	}

	//Get the top level object
	var topObj tpMap
	if _topObj, ok := topItem.getObject(); !ok {
		return addErrStr("Top level item is not an object")
	} else {
		topObj = _topObj
	}
	cat = &i18n.Catalog{LocaleIdentifier: fileLocale}

	//Read the settings object
	if settingsItem, ok := topObj.getValue("Settings"); !ok {
		//Settings are optional
	} else if settingsObj, ok := settingsItem.getObject(); !ok {
		addErrStr("Settings is invalid type")
	} else if identItem, ok := settingsObj.getValue("LocaleIdentifier"); !ok {
		//The identifier defaults to the file name
	} else if ident, ok := identItem.getString(); !ok || len(ident) == 0 {
		addErrStr("Settings.LocaleIdentifier is not a string")
	} else if _, err := i18n.NewLocale(ident, nil); err != nil {
		addErrStr("Settings.LocaleIdentifier is not valid: %s", err.Error())
	} else {
		cat.LocaleIdentifier = ident
	}

	//Names must be unique over blocks and attributes
	namesFound := make(map[string]struct{})
	checkName := func(name string) bool {
		if !blockNameRegex.MatchString(name) {
			addErrStr("Name “%s” is not a valid identifier", name)
			return false
		} else if _, ok := namesFound[name]; ok {
			addErrStr("Name “%s” is used more than once", name)
			return false
		}
		namesFound[name] = struct{}{}
		return true
	}

	//Read the sections
	for _, section := range topObj.toOrdered() {
		sectionName := section.getName()
		if sectionName == "Settings" {
			continue
		} else if sectionName != "Blocks" && sectionName != "Attributes" {
			addWarnStr("Unknown section “%s” was ignored", sectionName)
			continue
		}

		var sectionObj tpMap
		if _sectionObj, ok := section.getObject(); !ok {
			addErrStr("%s is invalid type", sectionName)
			continue
		} else {
			sectionObj = _sectionObj
		}

		for _, item := range sectionObj.toOrdered() {
			name := item.getName()
			if !checkName(name) {
				continue
			}

			if sectionName == "Blocks" {
				if b, blockWarnings, err := compileBlockItem(item); err != nil {
					addErrStr("Block “%s”: %s", name, err.Error())
				} else {
					cat.Blocks = append(cat.Blocks, b)
					for _, w := range blockWarnings {
						addWarnStr("Block “%s”: %s", name, w)
					}
				}
			} else {
				if b, attrWarnings, err := compileAttributesItem(item); err != nil {
					addErrStr("Attributes “%s”: %s", name, err.Error())
				} else {
					cat.Attributes = append(cat.Attributes, i18n.NamedAttributeBlock{Name: name, Block: b})
					for _, w := range attrWarnings {
						addWarnStr("Attributes “%s”: %s", name, w)
					}
				}
			}
		}
	}

	if len(errors) != 0 {
		return nil, errors, warnings
	}
	return cat, nil, warnings
}

func compileBlockItem(item tpItem) (ret i18n.NamedBlock, warnings []string, err error) {
	ret.Name = item.getName()
	var obj tpMap
	if _obj, ok := item.getObject(); !ok {
		return ret, nil, fmt.Errorf("Is not an object")
	} else {
		obj = _obj
	}
	warnings = unknownFieldWarnings(obj, "Message", "Index", "StartIndex", "ParentIndex", "PreviousIndex", "SubTemplate", "Expected", "Replacements")

	//The message
	var message string
	if msgItem, ok := obj.getValue("Message"); !ok {
		return ret, warnings, fmt.Errorf("Message is missing")
	} else if _message, ok := msgItem.getString(); !ok {
		return ret, warnings, fmt.Errorf("Message is not a string")
	} else {
		message = _message
	}

	//The options
	var opts i18n.BlockOptions
	if opts.Index, err = getIntField(obj, "Index", 0, true); err != nil {
		return
	} else if opts.StartIndex, err = getIntField(obj, "StartIndex", 0, true); err != nil {
		return
	} else if opts.ParentIndex, err = getIntField(obj, "ParentIndex", opts.Index, false); err != nil {
		return
	} else if opts.PreviousIndex, err = getIntField(obj, "PreviousIndex", i18n.NoNode, false); err != nil {
		return
	} else if opts.SubTemplate, err = getIntField(obj, "SubTemplate", i18n.NoSubTemplate, false); err != nil {
		return
	}
	if expectedItem, ok := obj.getValue("Expected"); ok {
		list, ok := expectedItem.getList()
		if !ok {
			return ret, warnings, fmt.Errorf("Expected is not a list")
		}
		for i, v := range list {
			if n, err := itemToInt(v, fmt.Sprintf("Expected[%d]", i)); err != nil {
				return ret, warnings, err
			} else {
				opts.Expected = append(opts.Expected, n)
			}
		}
	}

	//Resolve the generated placeholders
	var replacements map[string][]string
	if replacementsItem, ok := obj.getValue("Replacements"); ok {
		if replacements, err = getReplacements(replacementsItem); err != nil {
			return
		}
	}
	if ret.Message, err = i18n.Postprocess(message, replacements); err != nil {
		return
	}

	//Compile
	if ret.Block, err = i18n.CompileMessage(ret.Message, opts); err != nil {
		return
	}
	warnings = append(warnings, ret.Block.Warnings...)
	return
}

func compileAttributesItem(item tpItem) (ret *i18n.AttributeBlock, warnings []string, err error) {
	var obj tpMap
	if _obj, ok := item.getObject(); !ok {
		return nil, nil, fmt.Errorf("Is not an object")
	} else {
		obj = _obj
	}
	warnings = unknownFieldWarnings(obj, "Index", "Values")

	index, err := getIntField(obj, "Index", 0, true)
	if err != nil {
		return nil, warnings, err
	}

	//Name/message pairs in declaration order
	var nameMessages []string
	if valuesItem, ok := obj.getValue("Values"); !ok {
		return nil, warnings, fmt.Errorf("Values is missing")
	} else if valuesObj, ok := valuesItem.getObject(); !ok {
		return nil, warnings, fmt.Errorf("Values is not an object")
	} else {
		for _, v := range valuesObj.toOrdered() {
			if msg, ok := v.getString(); !ok {
				return nil, warnings, fmt.Errorf("Values.%s is not a string", v.getName())
			} else {
				nameMessages = append(nameMessages, v.getName(), msg)
			}
		}
	}

	ret, err = i18n.CompileAttributes(index, nameMessages...)
	return ret, warnings, err
}

// ----------------------------Other helper functions----------------------------

// Returns a warning for each field of obj that is not in knownFields
func unknownFieldWarnings(obj tpMap, knownFields ...string) (warnings []string) {
	known := make(map[string]struct{}, len(knownFields))
	for _, f := range knownFields {
		known[f] = struct{}{}
	}
	for _, item := range obj.toOrdered() {
		if _, ok := known[item.getName()]; !ok {
			warnings = append(warnings, fmt.Sprintf("Unknown field “%s” was ignored", item.getName()))
		}
	}
	return
}

// Reads an integer field. def is returned when the field is missing and not required.
func getIntField(obj tpMap, fieldName string, def int, required bool) (int, error) {
	if item, ok := obj.getValue(fieldName); ok {
		return itemToInt(item, fieldName)
	} else if required {
		return 0, fmt.Errorf("%s is missing", fieldName)
	}
	return def, nil
}

func itemToInt(item tpItem, fieldName string) (int, error) {
	if str, ok := item.getString(); !ok {
		return 0, fmt.Errorf("%s is not a number", fieldName)
	} else if n, err := strconv.Atoi(str); err != nil {
		return 0, fmt.Errorf("%s “%s” is not an integer", fieldName, str)
	} else {
		return n, nil
	}
}

// Replacements map a key to a list of values, or to a single value
func getReplacements(item tpItem) (map[string][]string, error) {
	obj, ok := item.getObject()
	if !ok {
		return nil, fmt.Errorf("Replacements is not an object")
	}

	ret := make(map[string][]string)
	for _, r := range obj.toOrdered() {
		key := r.getName()
		if str, ok := r.getString(); ok {
			ret[key] = []string{str}
			continue
		}
		list, ok := r.getList()
		if !ok {
			return nil, fmt.Errorf("Replacements.%s is not a string or a list", key)
		}
		for i, v := range list {
			if str, ok := v.getString(); !ok {
				return nil, fmt.Errorf("Replacements.%s[%d] is not a string", key, i)
			} else {
				ret[key] = append(ret[key], str)
			}
		}
	}
	return ret, nil
}
