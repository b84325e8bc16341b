package domain

import "strings"

// lineSeparator is appended to every surviving line.
const lineSeparator = " "

// commentMarkers are the line prefixes treated as comment or divider lines.
var commentMarkers = []string{"#", "/*", "*", "//", "/", "|", "-", ".-", "'-"}

// SplitLines splits raw content on \n, \r\n and \r line endings.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.TrimSuffix(content, "\n")

	return strings.Split(content, "\n")
}

// StripLines trims every line and drops comment, divider and blank lines.
// Surviving lines carry a trailing separator.
func StripLines(lines []string) []string {
	stripped := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || isCommentLine(line) {
			continue
		}

		stripped = append(stripped, line+lineSeparator)
	}

	return stripped
}

// JoinStream joins stripped lines into the single stream used for renaming.
func JoinStream(lines []string) string {
	return strings.Join(lines, lineSeparator)
}

func isCommentLine(line string) bool {
	for _, marker := range commentMarkers {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}

	return false
}
