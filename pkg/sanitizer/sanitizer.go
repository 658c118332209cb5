package sanitizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func dropControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// NormalizeGuestName composes accents (NFC) so "Nu\u0301n\u0303ez" and "Núñez"
// are stored and searched identically.
func NormalizeGuestName(name string) string {
	return Pipeline{dropControl, TrimAndNormalize, norm.NFC.String}.Apply(name)
}

func NormalizeRoomType(roomType string) string {
	return Pipeline{dropControl, TrimAndNormalize}.Apply(roomType)
}

func NormalizeQuery(query string) string {
	return Pipeline{strings.TrimSpace, norm.NFC.String, Fold}.Apply(query)
}

// Fold applies Unicode case folding for case-insensitive comparisons.
func Fold(s string) string {
	return cases.Fold().String(s)
}
