package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"single", "Go", []string{"Go"}},
		{"trims and drops empties", "  Go , , SQL ,", []string{"Go", "SQL"}},
		{"dedupes keeping first", "NCS, 포트폴리오, NCS", []string{"NCS", "포트폴리오"}},
		{"only separators", " , ,, ", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeList(tt.input))
		})
	}
}

func TestNormalizeListIdempotent(t *testing.T) {
	first := NormalizeList("a, b , a,, c")
	second := NormalizeList(joinList(first))
	assert.Equal(t, first, second)
}
