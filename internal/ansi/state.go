package ansi

import (
	"strconv"
	"strings"
)

// CSS declarations for text attributes
const (
	DeclBold      = "font-weight: bold"
	DeclDim       = "opacity: 0.7"
	DeclItalic    = "font-style: italic"
	DeclUnderline = "text-decoration: underline"
)

// StyleState holds the text attributes in effect at a point of the input.
// Foreground and Background carry the raw SGR code, 0 meaning unset.
type StyleState struct {
	Foreground int
	Background int
	Bold       bool
	Dim        bool
	Italic     bool
	Underline  bool
}

// IsZero reports whether no attribute is active.
func (s StyleState) IsZero() bool {
	return s == StyleState{}
}

// Declarations returns the inline style declarations for the state in a fixed order.
func (s StyleState) Declarations() []string {
	var decls []string
	if s.Foreground != 0 {
		if c, ok := ForegroundColor(s.Foreground); ok {
			decls = append(decls, "color: "+c)
		}
	}
	if s.Background != 0 {
		if c, ok := BackgroundColor(s.Background); ok {
			decls = append(decls, "background-color: "+c)
		}
	}
	if s.Bold {
		decls = append(decls, DeclBold)
	}
	if s.Dim {
		decls = append(decls, DeclDim)
	}
	if s.Italic {
		decls = append(decls, DeclItalic)
	}
	if s.Underline {
		decls = append(decls, DeclUnderline)
	}
	return decls
}

// CSS returns the declarations joined into one style attribute value.
func (s StyleState) CSS() string {
	return strings.Join(s.Declarations(), "; ")
}

// applyParams applies the parameter list of one escape sequence.
func (s StyleState) applyParams(params string) StyleState {
	if params == "" {
		return StyleState{}
	}
	for _, token := range strings.Split(params, ";") {
		code, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		s = s.apply(code)
	}
	return s
}

func (s StyleState) apply(code int) StyleState {
	switch {
	case code == CodeReset:
		return StyleState{}
	case code == CodeBold:
		s.Bold = true
	case code == CodeDim:
		s.Dim = true
	case code == CodeItalic:
		s.Italic = true
	case code == CodeUnderline:
		s.Underline = true
	case code == CodeNotBoldDim:
		s.Bold = false
		s.Dim = false
	case code == CodeNotItalic:
		s.Italic = false
	case code == CodeNotUnderline:
		s.Underline = false
	case isForeground(code):
		s.Foreground = code
	case code == CodeDefaultFG:
		s.Foreground = 0
	case isBackground(code):
		s.Background = code
	case code == CodeDefaultBG:
		s.Background = 0
	}
	return s
}
