package fabrik

import (
	"encoding/json"
	"strings"

	"github.com/piwi3910/GraphiDesk/internal/model"
)

// SpliceParams adds one "<name>ActionPath" key per action to raw, which is
// treated as object literal text rather than parsed:
//
//   - empty text or an empty object yields a new object holding only the
//     action keys;
//   - text ending in "}" has its closing brace replaced by the action keys
//     and a new closing brace, so caller keys come first;
//   - anything else is returned unchanged and ok is false. The resulting
//     script then receives no action paths.
func SpliceParams(raw string, actions model.ActionPathSet) (merged string, ok bool) {
	trimmed := strings.TrimSpace(raw)

	if isEmptyObject(trimmed) {
		var b strings.Builder
		b.WriteString("{")
		for i, a := range actions {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString("\n    ")
			writePair(&b, a)
		}
		b.WriteString("\n}")
		return b.String(), true
	}

	if !strings.HasSuffix(trimmed, "}") {
		return raw, false
	}

	var b strings.Builder
	b.WriteString(trimmed[:len(trimmed)-1])
	for _, a := range actions {
		b.WriteString(",\n    ")
		writePair(&b, a)
	}
	b.WriteString("\n}")
	return b.String(), true
}

func isEmptyObject(s string) bool {
	if s == "" {
		return true
	}
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") || len(s) < 2 {
		return false
	}
	return strings.TrimSpace(s[1:len(s)-1]) == ""
}

func writePair(b *strings.Builder, a model.ActionPath) {
	b.WriteString(quote(a.Key()))
	b.WriteString(": ")
	b.WriteString(quote(a.Path))
}

// quote renders s as a JSON string literal, which is also a valid
// ExtendScript string literal.
func quote(s string) string {
	data, err := json.Marshal(s)
	if err != nil {
		return `"` + s + `"`
	}
	return string(data)
}
