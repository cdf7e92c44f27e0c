package neural

import (
	"fmt"
	"strings"
)

// Parse reads a NeuralType literal:
//
//	type     = [ axes ":" ] element [ "?" ]
//	axes     = "*" | "(" [ axis { "," axis } ] ")" | axis { "," axis }
//	axis     = kind [ "=" size ] | "[" kind [ "=" size ] "]"
//	element  = name [ "(" key "=" value { "," key "=" value } ")" ]
//
// Omitted or "*" axes mean no axis constraint, "()" a scalar. A trailing
// "?" marks the type optional. The single literal "*" is the unconstrained
// type.
//
// Examples: "B,T,D:Logits", "(B):Labels?", "*:AudioSignal(freq=16000)".
func Parse(literal string) (NeuralType, error) {
	s := strings.TrimSpace(literal)
	var opts []Option
	if rest, ok := strings.CutSuffix(s, "?"); ok {
		s = strings.TrimSpace(rest)
		opts = append(opts, Optional())
	}
	if s == "*" {
		return New(nil, Void(), opts...), nil
	}

	var axes []AxisType
	elemPart := s
	if axesPart, rest, ok := strings.Cut(s, ":"); ok {
		elemPart = rest
		var err error
		if axes, err = parseAxesLiteral(strings.TrimSpace(axesPart)); err != nil {
			return NeuralType{}, fmt.Errorf("parse %q: %w", literal, err)
		}
	}

	elem, err := parseElementLiteral(strings.TrimSpace(elemPart))
	if err != nil {
		return NeuralType{}, fmt.Errorf("parse %q: %w", literal, err)
	}
	return New(axes, elem, opts...), nil
}

// MustParse is like Parse but panics on error. Intended for package-level
// port declarations.
func MustParse(literal string) NeuralType {
	t, err := Parse(literal)
	if err != nil {
		panic(err)
	}
	return t
}

func parseAxesLiteral(s string) ([]AxisType, error) {
	if s == "*" {
		return nil, nil
	}
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" {
		return []AxisType{}, nil
	}
	return ParseAxes(strings.Split(s, ",")...)
}

func parseElementLiteral(s string) (ElementType, error) {
	name, args, hasArgs := strings.Cut(s, "(")
	kind, ok := LookupElementKind(name)
	if !ok {
		return ElementType{}, fmt.Errorf("unknown element type %q", strings.TrimSpace(name))
	}
	if !hasArgs {
		return ElementType{kind: kind}, nil
	}

	args, ok = strings.CutSuffix(strings.TrimSpace(args), ")")
	if !ok {
		return ElementType{}, fmt.Errorf("element %q: missing closing parenthesis", s)
	}
	fields := map[string]string{}
	for _, kv := range strings.Split(args, ",") {
		if strings.TrimSpace(kv) == "" {
			continue
		}
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return ElementType{}, fmt.Errorf("element %q: field %q is not key=value", s, kv)
		}
		fields[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	if len(fields) == 0 {
		fields = nil
	}
	return ElementType{kind: kind, fields: fields}, nil
}
