package timetable

import (
	"strings"
)

// Category is a named group of entries with a display color.
type Category struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// FallbackColor is used for entries whose category is unknown.
const FallbackColor = "#6b7280"

// DefaultCategories returns the categories every timetable starts with.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Class", Color: "#3b82f6"},
		{Name: "Exam", Color: "#ef4444"},
		{Name: "Study", Color: "#10b981"},
		{Name: "Assignment", Color: "#f59e0b"},
		{Name: "Other", Color: FallbackColor},
	}
}

// Categories returns the registered categories in insertion order.
func (s *Store) Categories() []Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Category(nil), s.categories...)
}

// AddCategory registers a category. Names are unique regardless of case;
// adding an existing name changes nothing and returns false.
func (s *Store) AddCategory(name, color string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addCategory(name, color)
}

func (s *Store) addCategory(name, color string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	for _, c := range s.categories {
		if strings.EqualFold(c.Name, name) {
			return false
		}
	}
	if color == "" {
		color = FallbackColor
	}
	s.categories = append(s.categories, Category{Name: name, Color: color})
	return true
}

// ColorFor returns the color of category, or FallbackColor when it is not
// registered.
func (s *Store) ColorFor(category string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if strings.EqualFold(c.Name, category) {
			return c.Color
		}
	}
	return FallbackColor
}
