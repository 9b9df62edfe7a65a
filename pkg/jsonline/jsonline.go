// Package jsonline turns one JSONL record into its canonical single-line form.
//
// The canonical form keeps object keys in input order, keeps number literals
// as written, separates items with ", " and keys from values with ": ", and
// writes non-ASCII text unescaped. Only quotes, backslashes and control
// characters are escaped.
package jsonline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
)

// ErrInvalid is returned for input that is not exactly one JSON value.
var ErrInvalid = errors.New("jsonline: invalid JSON")

const hex = "0123456789abcdef"

// Canonicalize validates line and re-emits it in canonical form.
func Canonicalize(line []byte) (string, error) {
	if !utf8.Valid(line) {
		return "", fmt.Errorf("%w: not UTF-8", ErrInvalid)
	}
	if !json.Valid(line) {
		return "", ErrInvalid
	}

	// The trailing space ends a top-level number before the buffer does.
	buf := make([]byte, len(line)+1)
	copy(buf, line)
	buf[len(line)] = ' '

	iter := jsoniter.ParseBytes(jsoniter.ConfigDefault, buf)
	var b strings.Builder
	b.Grow(len(line) + len(line)/8)
	writeValue(iter, &b)
	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return "", fmt.Errorf("%w: %v", ErrInvalid, iter.Error)
	}
	return b.String(), nil
}

func writeValue(iter *jsoniter.Iterator, b *strings.Builder) {
	switch iter.WhatIsNext() {
	case jsoniter.StringValue:
		writeString(b, iter.ReadString())
	case jsoniter.NumberValue:
		b.WriteString(string(iter.ReadNumber()))
	case jsoniter.BoolValue:
		if iter.ReadBool() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case jsoniter.NilValue:
		iter.ReadNil()
		b.WriteString("null")
	case jsoniter.ArrayValue:
		b.WriteByte('[')
		first := true
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			if !first {
				b.WriteString(", ")
			}
			first = false
			writeValue(it, b)
			return it.Error == nil
		})
		b.WriteByte(']')
	case jsoniter.ObjectValue:
		writeObject(iter, b)
	default:
		iter.ReportError("writeValue", "unexpected value")
	}
}

type member struct {
	key   string
	value string
}

// writeObject keeps the first position and the last value of a repeated key.
func writeObject(iter *jsoniter.Iterator, b *strings.Builder) {
	var members []member
	index := map[string]int{}
	iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
		var vb strings.Builder
		writeValue(it, &vb)
		if i, ok := index[field]; ok {
			members[i].value = vb.String()
		} else {
			index[field] = len(members)
			members = append(members, member{key: field, value: vb.String()})
		}
		return it.Error == nil
	})

	b.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			b.WriteString(", ")
		}
		writeString(b, m.key)
		b.WriteString(": ")
		b.WriteString(m.value)
	}
	b.WriteByte('}')
}

func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if c < 0x20 {
				b.WriteString(`\u00`)
				b.WriteByte(hex[c>>4])
				b.WriteByte(hex[c&0xf])
				continue
			}
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
}
