package promptsplit

import (
	"strconv"
	"strings"
	"text/template"
	"unicode/utf8"
)

// defaultFuncMap returns the template.FuncMap used for TextTemplate rendering.
func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"join":           strings.Join,
		"numbered":       numbered,
		"quote":          strconv.Quote,
		"truncate_chars": truncateChars,
	}
}

// numbered renders texts as a 1-based list, one per line: "1. a\n2. b".
func numbered(texts []string) string {
	var sb strings.Builder
	for i, t := range texts {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(". ")
		sb.WriteString(t)
	}
	return sb.String()
}

// truncateChars truncates text to at most maxChars runes.
// Uses RuneCountInString for early exit to avoid allocating []rune when no truncation is needed.
func truncateChars(text string, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxChars])
}
