// Package wrap breaks text into lines of at most a given number of characters.
package wrap

import (
	"strings"
	"unicode/utf8"
)

// Lines greedily packs the words of text into lines of at most maxChars
// runes. Text that already fits is returned as is. A word longer than
// maxChars is never split and ends up on its own line.
func Lines(text string, maxChars int) []string {
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= maxChars {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		test := word
		if current != "" {
			test = current + " " + word
		}
		if utf8.RuneCountInString(test) <= maxChars {
			current = test
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
