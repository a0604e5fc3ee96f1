package generator

import (
	"fmt"
	"strings"
)

// Style selects one of the fixed prompt templates.
type Style int

const (
	StyleProfessional Style = iota
	StyleCreative
	StyleAudienceFocused
)

// Styles lists every style in menu order.
func Styles() []Style {
	return []Style{StyleProfessional, StyleCreative, StyleAudienceFocused}
}

func (s Style) String() string {
	switch s {
	case StyleProfessional:
		return "professional"
	case StyleCreative:
		return "creative"
	case StyleAudienceFocused:
		return "audience_focused"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// Label is the human-readable name used in console headings.
func (s Style) Label() string {
	switch s {
	case StyleCreative:
		return "Creative"
	case StyleAudienceFocused:
		return "Audience-Focused"
	default:
		return "Professional"
	}
}

// DefaultTone is used when a request leaves Tone empty.
func (s Style) DefaultTone() string {
	switch s {
	case StyleCreative:
		return "bold"
	case StyleAudienceFocused:
		return "friendly"
	default:
		return "professional"
	}
}

// ParseStyle accepts the style name, a few aliases, or the menu number.
func ParseStyle(v string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "professional", "1":
		return StyleProfessional, nil
	case "creative", "2":
		return StyleCreative, nil
	case "audience_focused", "audience-focused", "audience", "3":
		return StyleAudienceFocused, nil
	default:
		return StyleProfessional, fmt.Errorf("unknown style %q (use professional, creative or audience_focused)", v)
	}
}

// MarshalText lets Style appear as its name in JSON.
func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Style) UnmarshalText(b []byte) error {
	parsed, err := ParseStyle(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// SloganRequest carries the template variables for one generation.
type SloganRequest struct {
	ProductName    string `json:"product_name"`
	TargetAudience string `json:"target_audience"`
	Tone           string `json:"tone"`
	Style          Style  `json:"style"`
}

// Result is one rendered prompt and what the completion service made of it.
// Text is always displayable: the completion, or a sentinel error string.
type Result struct {
	ID     string
	Style  Style
	Prompt string
	Text   string
	Err    error
}
