package domain

import "time"

// User represents a bot user
type User struct {
	UserID     int64
	Authorized bool
	CreatedAt  time.Time
}

// Preferences are the last direction and mode a user played with
type Preferences struct {
	Direction Direction
	Mode      Mode
}

// DefaultPreferences are used until a user changes direction or mode
func DefaultPreferences() Preferences {
	return Preferences{Direction: DirectionKorean, Mode: ModeEndless}
}

// Selection is what the user picked on the setup screen
type Selection struct {
	Bin        Bin
	Categories []string
	Direction  Direction
	Mode       Mode
}

// HasCategory reports whether the category is selected
func (s *Selection) HasCategory(name string) bool {
	for _, c := range s.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// ToggleCategory adds the category or removes it when already selected
func (s *Selection) ToggleCategory(name string) {
	for i, c := range s.Categories {
		if c == name {
			s.Categories = append(s.Categories[:i:i], s.Categories[i+1:]...)
			return
		}
	}
	s.Categories = append(s.Categories, name)
}

// SelectAll replaces the selection with every available category
func (s *Selection) SelectAll(available []string) {
	s.Categories = append([]string(nil), available...)
}

// Clear drops every selected category
func (s *Selection) Clear() {
	s.Categories = nil
}

// Validate checks that a game can start from this selection
func (s *Selection) Validate() error {
	if s.Bin == "" {
		return &ValidationError{Field: "bin", Reason: "select a content type (Alphabet, Words, or Phrases) before starting"}
	}
	if len(s.Categories) == 0 {
		return &ValidationError{Field: "categories", Reason: "select at least one category before starting"}
	}
	return nil
}
