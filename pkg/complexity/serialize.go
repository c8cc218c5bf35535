package complexity

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// TextLength returns the length of a value's canonical textual serialization.
// Serializable values render as JSON with ", " and ": " separators and sorted
// object keys, which keeps the measurement stable across runs; anything the
// JSON encoder rejects falls back to its %v string form.
func TextLength(value any) int {
	return len(canonicalText(value))
}

// canonicalText renders the canonical serialization used for length
// measurement.
func canonicalText(value any) string {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}

	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return string(raw)
	}

	var b strings.Builder
	writeCanonical(&b, tree)
	return b.String()
}

func writeCanonical(b *strings.Builder, v any) {
	switch x := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			writeScalar(b, k)
			b.WriteString(": ")
			writeCanonical(b, x[k])
		}
		b.WriteByte('}')
	case []any:
		b.WriteByte('[')
		for i, item := range x {
			if i > 0 {
				b.WriteString(", ")
			}
			writeCanonical(b, item)
		}
		b.WriteByte(']')
	default:
		writeScalar(b, x)
	}
}

func writeScalar(b *strings.Builder, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(b, "%v", v)
		return
	}
	b.Write(raw)
}
