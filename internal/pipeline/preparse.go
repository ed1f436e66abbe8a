package pipeline

import (
	"bytes"
	"strings"
)

// ExtractTitleLine applies the lone-first-line title rule to the raw source:
// if the first line is non-empty, the second line is empty (a source with a
// single line counts), and the first line contains no colon, the first line
// becomes the title with leading '#' and space characters stripped, and both
// lines are removed from the buffer before parsing.
//
// The colon check keeps metadata-block lines ("Key: value") and front matter
// from being mistaken for a title. When the rule does not apply, the source
// is returned unchanged and the title is empty.
func ExtractTitleLine(source []byte) (string, []byte) {
	parts := bytes.SplitN(source, []byte("\n"), 3)

	first := strings.TrimSuffix(string(parts[0]), "\r")
	second := ""
	if len(parts) > 1 {
		second = strings.TrimSuffix(string(parts[1]), "\r")
	}

	if first == "" || second != "" || strings.Contains(first, ":") {
		return "", source
	}

	rest := []byte(nil)
	if len(parts) == 3 {
		rest = parts[2]
	}
	return strings.TrimLeft(first, "# "), rest
}
