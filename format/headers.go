package format

import (
	"fmt"
	"strings"
)

// ParseHeaders reads one "Name: value" pair per line. Blank lines are skipped;
// a line without a colon is an error. Later lines overwrite earlier ones.
func ParseHeaders(text string) (map[string]string, error) {
	headers := make(map[string]string)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid header format: %q", line)
		}
		headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}

	return headers, nil
}
