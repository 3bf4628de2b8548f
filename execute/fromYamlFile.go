//Read YAML message files
//go:build !i18nops_runtime_only

package execute

import (
	"errors"
	"strconv"
	"unicode/utf8"

	"gopkg.in/yaml.v2"
)

// Nested mappings decode into the same type as the top level one, so they keep their order too
type yamlMapSlice yaml.MapSlice
type yamlItem yaml.MapItem

func (ms *yamlMapSlice) getValue(paramName string) (val tpItem, ok bool) {
	for _, v := range *ms {
		if name, _ := yamlValToStr(v.Key); name == paramName {
			return yamlItem(v), true
		}
	}
	return nil, false
}

func (ms *yamlMapSlice) toOrdered() []tpItem {
	ret := make([]tpItem, len(*ms))
	for i, v := range *ms {
		ret[i] = yamlItem(v)
	}
	return ret
}

func (i yamlItem) getName() string {
	name, _ := yamlValToStr(i.Key)
	return name
}

func (i yamlItem) getObject() (val tpMap, ok bool) {
	if _val, ok := i.Value.(yamlMapSlice); !ok {
		return nil, false
	} else {
		return &_val, true
	}
}

func (i yamlItem) getList() (val []tpItem, ok bool) {
	list, ok := i.Value.([]interface{})
	if !ok {
		return nil, false
	}
	val = make([]tpItem, len(list))
	for index, v := range list {
		val[index] = yamlItem{Key: index, Value: v}
	}
	return val, true
}

func (i yamlItem) getString() (val string, ok bool) {
	return yamlValToStr(i.Value)
}

func yamlValToStr(i interface{}) (val string, ok bool) {
	switch v := i.(type) {
	case string:
		return v, true
	case int:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'g', 15, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case nil:
		return "", true
	default:
		return "", false
	}
}

func fromYamlFile(textStr []byte) (yamlItem, error) {
	//Check for valid utf8
	if !utf8.Valid(textStr) {
		return yamlItem{}, errors.New("File is not utf8 valid")
	}

	ms := yamlMapSlice{}
	if err := yaml.Unmarshal(textStr, &ms); err != nil {
		return yamlItem{}, errors.New("Error parsing YAML File: " + err.Error())
	}

	return yamlItem{Key: "TOP", Value: ms}, nil
}
