package tript

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// TypeField is the key carrying the kind tag in the serialized form.
const TypeField = "_type"

// DecodeError reports a malformed serialized node.
type DecodeError struct {
	Path    string
	Message string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error at %s: %s", e.Path, e.Message)
}

// Decode parses the JSON form of a tript AST, e.g.
//
//	{"_type": "And", "children": [{"_type": "Reference", "name": "x"}]}
//
// Unknown kind tags decode to *Unrecognized.
func Decode(data []byte) (Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, &DecodeError{Path: "$", Message: "invalid JSON"}
	}
	return decodeNode(gjson.ParseBytes(data), "$")
}

// DecodeYAML parses the YAML form of a tript AST. The document must have the
// same shape as the JSON form.
func DecodeYAML(data []byte) (Node, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML document: %w", err)
	}
	return Decode(js)
}

func decodeNode(r gjson.Result, path string) (Node, error) {
	if !r.IsObject() {
		return nil, &DecodeError{Path: path, Message: "expected an object"}
	}

	tag := r.Get(TypeField)
	if tag.Type != gjson.String || tag.Str == "" {
		return nil, &DecodeError{Path: path, Message: "missing " + TypeField}
	}

	switch kind := Kind(tag.Str); kind {
	case KindLiteralBoolean:
		v := r.Get("value")
		if v.Type != gjson.True && v.Type != gjson.False {
			return nil, &DecodeError{Path: path + ".value", Message: "expected a boolean"}
		}
		return &LiteralBoolean{Value: v.Bool()}, nil

	case KindLiteralNumber:
		v := r.Get("value")
		if v.Type != gjson.Number {
			return nil, &DecodeError{Path: path + ".value", Message: "expected a number"}
		}
		return &LiteralNumber{Value: v.Float()}, nil

	case KindReference:
		name, err := decodeString(r, "name", path)
		if err != nil {
			return nil, err
		}
		return &Reference{Name: name}, nil

	case KindAnd, KindOr, KindSum, KindEqual:
		children, err := decodeChildren(r.Get("children"), path+".children")
		if err != nil {
			return nil, err
		}
		switch kind {
		case KindAnd:
			return &And{Children: children}, nil
		case KindOr:
			return &Or{Children: children}, nil
		case KindSum:
			return &Sum{Children: children}, nil
		default:
			return &Equal{Children: children}, nil
		}

	case KindFunction:
		return decodeFunction(r, path)

	default:
		return &Unrecognized{Tag: kind, Raw: r.Raw}, nil
	}
}

func decodeChildren(r gjson.Result, path string) ([]Node, error) {
	if !r.Exists() || r.Type == gjson.Null {
		return []Node{}, nil
	}
	if !r.IsArray() {
		return nil, &DecodeError{Path: path, Message: "expected an array"}
	}

	items := r.Array()
	children := make([]Node, 0, len(items))
	for i, item := range items {
		child, err := decodeNode(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func decodeFunction(r gjson.Result, path string) (Node, error) {
	name, err := decodeString(r, "name", path)
	if err != nil {
		return nil, err
	}

	params := []Parameter{}
	if p := r.Get("parameters"); p.Exists() && p.Type != gjson.Null {
		if !p.IsArray() {
			return nil, &DecodeError{Path: path + ".parameters", Message: "expected an array"}
		}
		for i, item := range p.Array() {
			ppath := fmt.Sprintf("%s.parameters[%d]", path, i)
			if !item.IsObject() {
				return nil, &DecodeError{Path: ppath, Message: "expected an object"}
			}
			if tag := item.Get(TypeField); tag.Exists() && Kind(tag.String()) != KindParameter {
				return nil, &DecodeError{Path: ppath, Message: fmt.Sprintf("expected %s, got %q", KindParameter, tag.String())}
			}
			pname, err := decodeString(item, "name", ppath)
			if err != nil {
				return nil, err
			}
			params = append(params, Parameter{Name: pname, Type: item.Get("type").String()})
		}
	}

	bodyResult := r.Get("body")
	if !bodyResult.Exists() {
		return nil, &DecodeError{Path: path, Message: "missing body"}
	}
	body, err := decodeNode(bodyResult, path+".body")
	if err != nil {
		return nil, err
	}

	return &Function{Name: name, Parameters: params, Body: body}, nil
}

func decodeString(r gjson.Result, field, path string) (string, error) {
	v := r.Get(field)
	if v.Type != gjson.String {
		return "", &DecodeError{Path: path + "." + field, Message: "expected a string"}
	}
	return v.Str, nil
}
