package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type rawKind int

const (
	rawAbsent rawKind = iota
	rawText
	rawStructured
)

// RawValue is the unvalidated result of a single source lookup. It is a
// tagged variant: text (a string from the environment store), structured
// (a JSON value already parsed out of the mappings file), or absent
// (the zero value).
type RawValue struct {
	kind       rawKind
	text       string
	structured json.RawMessage
}

func textValue(s string) RawValue { return RawValue{kind: rawText, text: s} }

func structuredValue(raw json.RawMessage) RawValue {
	return RawValue{kind: rawStructured, structured: raw}
}

// Absent reports whether no source yielded a value for the lookup.
func (v RawValue) Absent() bool { return v.kind == rawAbsent }

// received renders the literal payload for use in error messages.
func (v RawValue) received() string {
	if v.kind == rawText {
		return v.text
	}
	return string(v.structured)
}

// decodeMapping normalizes either RawValue form into a single JSON object,
// preserving the document order of its keys. A structured value that is
// itself a JSON string literal is unwrapped and re-parsed, so a mappings
// file may hold either {"ROLES": {...}} or {"ROLES": "{...}"}.
//
// Key order matters: the rank-order index derived from ROLES follows the
// order the roles were written in.
func decodeMapping(v RawValue) ([]string, map[string]json.RawMessage, error) {
	var text string
	switch v.kind {
	case rawText:
		text = v.text
	case rawStructured:
		var s string
		if err := json.Unmarshal(v.structured, &s); err == nil {
			text = s
		} else {
			text = string(v.structured)
		}
	default:
		return nil, nil, errors.New("no value to decode")
	}

	dec := json.NewDecoder(strings.NewReader(text))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	var keys []string
	values := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected an object key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, err
		}

		if _, dup := values[key]; !dup {
			keys = append(keys, key)
		}
		values[key] = raw
	}
	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, nil, errors.New("unexpected trailing data after JSON object")
	}

	return keys, values, nil
}

// coerceInt64 converts a JSON value to int64, accepting both a JSON number
// and a numeric string, so {"A": 7} and {"A": "7"} resolve identically
// regardless of which source the mapping came from.
func coerceInt64(raw json.RawMessage) (int64, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	}

	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, err
	}
	return n, nil
}
