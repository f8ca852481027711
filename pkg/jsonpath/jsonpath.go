// Package jsonpath extracts values from JSON documents with a practical
// subset of JSONPath: dotted members, bracketed members, array indexes and
// the [*] wildcard.
//
//	$                  the whole document
//	$.user.name        member access
//	$['first name']    quoted member, may contain dots or spaces
//	$.items[0].id      array index
//	$.items[*].id      every element, returned as a JSON array
package jsonpath

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Extract returns the value at path as a string. Strings are returned
// unquoted, null as "null", objects and arrays as raw JSON.
func Extract(json string, path string) (string, error) {
	if json == "" {
		return "", fmt.Errorf("empty JSON string")
	}

	gpath, err := toGJSONPath(path)
	if err != nil {
		return "", err
	}

	result := gjson.Get(json, gpath)
	if !result.Exists() {
		return "", fmt.Errorf("path not found: %s", path)
	}

	if result.Type == gjson.Null {
		return "null", nil
	}

	return result.String(), nil
}

// ExtractAll evaluates every named path. Values that resolve are returned
// even when others fail; the error lists each failure.
func ExtractAll(json string, paths map[string]string) (map[string]string, error) {
	if json == "" {
		return nil, fmt.Errorf("empty JSON string")
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no JSONPath expressions provided")
	}

	results := make(map[string]string, len(paths))
	var failures []string

	for name, path := range paths {
		value, err := Extract(json, path)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		results[name] = value
	}

	if len(failures) > 0 {
		return results, fmt.Errorf("extraction errors: %s", strings.Join(failures, "; "))
	}

	return results, nil
}

// toGJSONPath translates a JSONPath expression into gjson path syntax.
func toGJSONPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty JSONPath expression")
	}

	rest := strings.TrimPrefix(path, "$")
	var parts []string

	for i := 0; i < len(rest); {
		switch rest[i] {
		case '[':
			end := strings.IndexByte(rest[i:], ']')
			if end < 0 {
				return "", fmt.Errorf("unterminated bracket in %q", path)
			}
			inner := rest[i+1 : i+end]
			i += end + 1

			if inner == "*" {
				parts = append(parts, "#")
				continue
			}
			inner = unquote(inner)
			if inner == "" {
				return "", fmt.Errorf("empty bracket in %q", path)
			}
			parts = append(parts, escapeKey(inner))
		default:
			if rest[i] == '.' {
				i++
			}
			j := i
			for j < len(rest) && rest[j] != '.' && rest[j] != '[' {
				j++
			}
			if j == i {
				return "", fmt.Errorf("empty segment in %q", path)
			}
			if seg := rest[i:j]; seg == "*" {
				parts = append(parts, "#")
			} else {
				parts = append(parts, escapeKey(seg))
			}
			i = j
		}
	}

	// a trailing wildcard selects the elements themselves, not gjson's count
	if n := len(parts); n > 0 && parts[n-1] == "#" {
		parts = parts[:n-1]
	}

	if len(parts) == 0 {
		return "@this", nil
	}
	return strings.Join(parts, "."), nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// escapeKey backslash-escapes characters gjson treats as path syntax.
func escapeKey(key string) string {
	if !strings.ContainsAny(key, `\.*?|#@`) {
		return key
	}
	var b strings.Builder
	for _, r := range key {
		if strings.ContainsRune(`\.*?|#@`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
