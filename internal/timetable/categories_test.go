package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddCategory(t *testing.T) {
	tests := []struct {
		name      string
		category  string
		color     string
		wantAdded bool
		wantColor string
	}{
		{"new", "Lab", "#123456", true, "#123456"},
		{"duplicate different case", "exam", "#000000", false, "#ef4444"},
		{"no color", "Reading", "", true, FallbackColor},
		{"blank", "  ", "#000000", false, FallbackColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			before := len(s.Categories())

			assert.Equal(t, tt.wantAdded, s.AddCategory(tt.category, tt.color))
			assert.Equal(t, tt.wantColor, s.ColorFor(tt.category))

			want := before
			if tt.wantAdded {
				want++
			}
			assert.Len(t, s.Categories(), want)
		})
	}
}

func TestWithCategories(t *testing.T) {
	s, _ := newTestStore(t, WithCategories(
		Category{Name: "Lab", Color: "#111111"},
		Category{Name: "class", Color: "#222222"},
	))

	assert.Len(t, s.Categories(), len(DefaultCategories())+1)
	assert.Equal(t, "#111111", s.ColorFor("LAB"))
	assert.Equal(t, "#3b82f6", s.ColorFor("Class"))
	assert.Equal(t, FallbackColor, s.ColorFor("unknown"))
}
