package fieldcheck

import (
	"fmt"
	"regexp"
	"strconv"
)

// tokenPattern matches "{token}" placeholders in message templates.
var tokenPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// FormatMessage renders the message for a failing binding on field.
// The template is the binding's own message, or the rule's default from
// the message table. Tokens: {field}, {title}, and {0}, {1}, ... for the
// binding's options. Unknown tokens are left as they are.
func (v *Validator) FormatMessage(field string, b Binding) (string, error) {
	message := b.Message
	if message == "" {
		message = v.messages[b.Rule]
	}

	if message == "" {
		return "", &MessageError{Field: field, Rule: b.Rule}
	}

	tokens := map[string]string{
		"field": field,
		"title": v.fields[field],
	}
	for i, opt := range b.Options {
		tokens[strconv.Itoa(i)] = opt.String()
	}

	return insertTokens(message, tokens), nil
}

// insertTokens replaces every {key} in tmpl with tokens[key] in one pass.
func insertTokens(tmpl string, tokens map[string]string) string {
	return tokenPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		key := match[1 : len(match)-1]
		if value, ok := tokens[key]; ok {
			return value
		}
		return match
	})
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
