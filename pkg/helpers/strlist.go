package helpers

import "strings"

// NormalizeList turns a free-text comma list into an ordered string set:
// segments are trimmed, empties dropped, and duplicates removed keeping the
// first occurrence. The operation is idempotent over its own output joined
// back with commas.
func NormalizeList(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// joinList is the inverse of NormalizeList, used to check that normalization
// is idempotent over its own joined output.
func joinList(values []string) string {
	return strings.Join(values, ", ")
}
