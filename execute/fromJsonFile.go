//Read JSON message files
//go:build !i18nops_runtime_only

package execute

import (
	"errors"
	"regexp"
	"unicode/utf8"

	"github.com/valyala/fastjson"
)

var jsonTrailingCommaRegex = regexp.MustCompile(`,\s*?\n\s*([}\]])`)

type jsonMapSlice struct {
	obj *fastjson.Object
}
type jsonItem struct {
	name  string
	value *fastjson.Value
}

func (ms jsonMapSlice) getValue(paramName string) (val tpItem, ok bool) {
	if v := ms.obj.Get(paramName); v != nil {
		return jsonItem{paramName, v}, true
	}
	return nil, false
}

func (ms jsonMapSlice) toOrdered() []tpItem {
	ret := make([]tpItem, 0, ms.obj.Len())
	ms.obj.Visit(func(key []byte, v *fastjson.Value) {
		ret = append(ret, jsonItem{string(key), v})
	})
	return ret
}

func (i jsonItem) getName() string {
	return i.name
}

func (i jsonItem) getObject() (val tpMap, ok bool) {
	if getObj, err := i.value.Object(); err != nil {
		return nil, false
	} else {
		return jsonMapSlice{getObj}, true
	}
}

func (i jsonItem) getList() (val []tpItem, ok bool) {
	arr, err := i.value.Array()
	if err != nil {
		return nil, false
	}
	val = make([]tpItem, len(arr))
	for index, v := range arr {
		val[index] = jsonItem{i.name, v}
	}
	return val, true
}

func (i jsonItem) getString() (val string, ok bool) {
	switch i.value.Type() {
	case fastjson.TypeString:
		return string(i.value.GetStringBytes()), true
	case fastjson.TypeNumber, fastjson.TypeTrue, fastjson.TypeFalse:
		return i.value.String(), true
	case fastjson.TypeNull:
		return "", true
	default:
		return "", false
	}
}

func fromJsonFile(textStr []byte, allowJSONTrailingComma bool) (jsonItem, error) {
	//Check for valid utf8
	if !utf8.Valid(textStr) {
		return jsonItem{}, errors.New("File is not utf8 valid")
	}

	//Remove trailing commas if requested
	if allowJSONTrailingComma {
		textStr = jsonTrailingCommaRegex.ReplaceAll(textStr, []byte("$1"))
	}

	if ret, err := (&fastjson.Parser{}).ParseBytes(textStr); err != nil {
		return jsonItem{}, errors.New("Error parsing JSON File: " + err.Error())
	} else {
		return jsonItem{"TOP", ret}, nil
	}
}
