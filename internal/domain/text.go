package domain

import (
	"regexp"
	"unicode/utf8"
)

var wordPattern = regexp.MustCompile(`\w+`)

// WordCount counts runs of word characters, so "re-use it" is three words.
func WordCount(s string) int {
	return len(wordPattern.FindAllStringIndex(s, -1))
}

// CharCount counts characters, not bytes.
func CharCount(s string) int {
	return utf8.RuneCountInString(s)
}

type LimitUnit string

const (
	LimitChars LimitUnit = "chars"
	LimitWords LimitUnit = "words"
)

// TextLimit caps free text. A zero Max disables the limit.
type TextLimit struct {
	Max  int
	Unit LimitUnit
}

// Default limits taken from the marketplace's form constraints.
var (
	GigDescriptionLimit         = TextLimit{Max: 2000, Unit: LimitChars}
	RoleDescriptionLimit        = TextLimit{Max: 730, Unit: LimitChars}
	DeliverableDescriptionLimit = TextLimit{Max: 2000, Unit: LimitChars}
)

// Exceeded reports whether s is over the limit.
func (l TextLimit) Exceeded(s string) bool {
	if l.Max <= 0 {
		return false
	}
	if l.Unit == LimitWords {
		return WordCount(s) > l.Max
	}
	return CharCount(s) > l.Max
}

// Truncate cuts s back to the limit. Over-long text is trimmed rather than
// rejected, matching how the editor drops excess keystrokes.
func (l TextLimit) Truncate(s string) string {
	if !l.Exceeded(s) {
		return s
	}
	if l.Unit == LimitWords {
		return truncateWords(s, l.Max)
	}
	return truncateChars(s, l.Max)
}

func truncateChars(s string, max int) string {
	i := 0
	for pos := range s {
		if i == max {
			return s[:pos]
		}
		i++
	}
	return s
}

// truncateWords keeps the first max words and the text between them, dropping
// everything from the end of the last kept word onwards.
func truncateWords(s string, max int) string {
	locs := wordPattern.FindAllStringIndex(s, max)
	if len(locs) < max {
		return s
	}
	return s[:locs[max-1][1]]
}
