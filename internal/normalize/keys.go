// Package normalize turns raw source keys into record field names.
package normalize

import "strings"

// EnvKey converts an environment variable name into a field name.
// Double underscores (__) separate levels and become dots; the result is
// lowercased. Single underscores are kept.
//   - "FOO__BAR" → "foo.bar"
//   - "DB_MAX_CONNECTIONS" → "db_max_connections"
func EnvKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, "__", "."))
}

// StripPrefix removes prefix from key. It reports false when key does not
// carry the prefix or nothing is left after stripping it.
func StripPrefix(key, prefix string, caseSensitive bool) (string, bool) {
	if prefix == "" {
		return key, key != ""
	}

	var hasPrefix bool
	if caseSensitive {
		hasPrefix = strings.HasPrefix(key, prefix)
	} else {
		hasPrefix = strings.HasPrefix(strings.ToUpper(key), strings.ToUpper(prefix))
	}
	if !hasPrefix {
		return "", false
	}

	rest := key[len(prefix):]
	return rest, rest != ""
}

// JoinPath joins a parent path and a key with a dot. Empty parts are dropped.
//   - JoinPath("user", "email") → "user.email"
//   - JoinPath("", "email") → "email"
func JoinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	if key == "" {
		return parent
	}
	return parent + "." + key
}
