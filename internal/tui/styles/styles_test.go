package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"empty", "", 20, "N/A"},
		{"blank", "   ", 20, "N/A"},
		{"short", "Water Lilies", 20, "Water Lilies"},
		{"exact", "12345678901234567890", 20, "12345678901234567890"},
		{"long", "A Sunday on La Grande Jatte", 20, "A Sunday on La Grand..."},
		{"wide runes", "葛飾北斎の神奈川沖浪裏", 6, "葛飾北..."},
		{"no limit", "A Sunday on La Grande Jatte", 0, "A Sunday on La Grande Jatte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.width))
		})
	}
}

func TestCheckbox(t *testing.T) {
	assert.Equal(t, CheckedChar, Checkbox(true))
	assert.Equal(t, UncheckedChar, Checkbox(false))
}
