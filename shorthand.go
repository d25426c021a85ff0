package fieldcheck

import (
	"sort"
	"strings"
)

// ParseShorthand parses a single shorthand rule into a Binding.
// Format: "rule", "rule:opt", "rule:opt1,opt2" or "rule:opt1,opt2:message".
// The token is split on ':' into at most three parts, so the message may
// itself contain ':'. Options are not trimmed and cannot escape ',' or ':'.
func ParseShorthand(shorthand string) Binding {
	b := Binding{Options: []Option{}}

	if !strings.Contains(shorthand, ":") {
		b.Rule = shorthand
		return b
	}

	for i, part := range strings.SplitN(shorthand, ":", 3) {
		switch i {
		case 0:
			b.Rule = part
		case 1:
			if strings.Contains(part, ",") {
				b.Options = Options(strings.Split(part, ",")...)
			} else if part != "" {
				b.Options = []Option{StringOption(part)}
			}
		case 2:
			b.Message = part
		}
	}

	return b
}

// SplitRules splits a pipe-delimited rule string into shorthand tokens.
func SplitRules(rules string) []string {
	return strings.Split(rules, "|")
}

// FieldSpec declares a field for MakeFromShorthand. Rules holds either a
// pipe-delimited string or a list of shorthand strings.
type FieldSpec struct {
	Title string
	Rules any
}

// Specs maps field names to one of: a pipe-delimited shorthand string,
// a list of shorthand strings ([]string, or []any holding strings),
// a FieldSpec, or a map with optional "title" and a "rules" entry.
type Specs map[string]any

// FromShorthand builds a validator with New from shorthand field specs.
func FromShorthand(data *Record, fields Specs, opts ...ValidatorOption) (*Validator, error) {
	return MakeFromShorthand(func(data *Record) *Validator {
		return New(data, opts...)
	}, data, fields)
}

// MakeFromShorthand builds a validator using factory and registers every
// field in fields, in sorted name order. Entries whose value has none of
// the shapes described by Specs are skipped.
func MakeFromShorthand(factory Factory, data *Record, fields Specs) (*Validator, error) {
	v := factory(data)

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, field := range names {
		title, tokens, ok := expandSpec(field, fields[field])
		if !ok {
			continue
		}

		if err := v.addField(field, title, nil); err != nil {
			return nil, err
		}

		for _, token := range tokens {
			b := ParseShorthand(token)
			if err := v.AddRule(field, b.Rule, b.Message, b.Options...); err != nil {
				return nil, err
			}
		}
	}

	return v, nil
}

// expandSpec normalises a field spec into a title and shorthand tokens.
// The title defaults to the field name; a map spec's explicit "title" is
// kept even when empty.
func expandSpec(field string, spec any) (string, []string, bool) {
	title := field
	var rules any

	switch s := spec.(type) {
	case string, []string, []any:
		tokens, ok := ruleTokens(s)
		if !ok {
			return "", nil, false
		}
		return title, tokens, true
	case FieldSpec:
		if s.Title != "" {
			title = s.Title
		}
		rules = s.Rules
	case *FieldSpec:
		if s == nil {
			return "", nil, false
		}
		if s.Title != "" {
			title = s.Title
		}
		rules = s.Rules
	case map[string]any:
		if t, ok := s["title"]; ok && t != nil {
			title = toString(t)
		}
		rules = s["rules"]
	default:
		return "", nil, false
	}

	tokens, _ := ruleTokens(rules)
	return title, tokens, true
}

// ruleTokens converts a rules entry into shorthand tokens. A nested rules
// entry of any other shape leaves its field registered without rules.
func ruleTokens(rules any) ([]string, bool) {
	switch r := rules.(type) {
	case string:
		return SplitRules(r), true
	case []string:
		return r, true
	case []any:
		tokens := make([]string, 0, len(r))
		for _, item := range r {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			tokens = append(tokens, s)
		}
		return tokens, true
	default:
		return nil, false
	}
}
