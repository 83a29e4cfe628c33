package content

import "strings"

// WordsPerMinute is the reading speed used for estimates.
const WordsPerMinute = 200

// WordCount counts whitespace-delimited words. Markup is counted as-is.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// ReadingTime returns ceil(words/WordsPerMinute) minutes, never less than one.
func ReadingTime(content string) int {
	minutes := (WordCount(content) + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
