package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ParseJSON decodes one JSON document into a Node tree, preserving
// object field order.  encoding/json's map decoding would lose it, so
// the token stream is consumed directly.
func ParseJSON(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	root, err := parseValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", ErrParse)
	}
	return root, nil
}

func parseValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return parseToken(dec, tok)
}

func parseToken(dec *json.Decoder, tok json.Token) (*Node, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(t), nil
	case string:
		return FromString(t), nil
	case json.Number:
		return &Node{Type: NumberType, Number: t.String()}, nil
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		}
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func parseObject(dec *json.Decoder) (*Node, error) {
	res := NewObject()
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return res, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", tok)
		}
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		res.Set(key, val)
	}
}

func parseArray(dec *json.Decoder) (*Node, error) {
	res := &Node{Type: ArrayType}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return res, nil
		}
		val, err := parseToken(dec, tok)
		if err != nil {
			return nil, err
		}
		res.Append(val)
	}
}

// EncodeJSON writes the tree as JSON with the given indent unit,
// keeping object field order.
func EncodeJSON(y *Node, w io.Writer, indent string) error {
	buf := &bytes.Buffer{}
	if err := encodeJSON(y, buf, indent, 0); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

// MarshalJSON makes Node trees usable directly with encoding/json.
func (y *Node) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := encodeJSON(y, buf, "", 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (y *Node) UnmarshalJSON(data []byte) error {
	n, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*y = *n
	return nil
}

func encodeJSON(y *Node, buf *bytes.Buffer, indent string, depth int) error {
	switch y.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		if y.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case NumberType:
		if y.Number == "" {
			buf.WriteString("0")
		} else {
			buf.WriteString(y.Number)
		}
	case StringType:
		d, err := json.Marshal(y.String)
		if err != nil {
			return err
		}
		buf.Write(d)
	case ArrayType:
		if len(y.Values) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, v := range y.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeIndent(buf, indent, depth+1)
			if err := encodeJSON(v, buf, indent, depth+1); err != nil {
				return err
			}
		}
		writeIndent(buf, indent, depth)
		buf.WriteByte(']')
	case ObjectType:
		if len(y.Fields) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		for i := range y.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeIndent(buf, indent, depth+1)
			key, err := json.Marshal(y.Fields[i].String)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if indent != "" {
				buf.WriteByte(' ')
			}
			if err := encodeJSON(y.Values[i], buf, indent, depth+1); err != nil {
				return err
			}
		}
		writeIndent(buf, indent, depth)
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: cannot encode type %s", errInternal, y.Type)
	}
	return nil
}

func writeIndent(buf *bytes.Buffer, indent string, depth int) {
	if indent == "" {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(indent, depth))
}
