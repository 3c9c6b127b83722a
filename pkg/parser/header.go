package parser

import (
	"bytes"
	"regexp"
	"strings"
)

// idHeaderRe matches header tokens that name a person identifier column.
var idHeaderRe = regexp.MustCompile(`(?i)\b(employee id|person id|person number|badge id)\b`)

// DetectTitleLine reports how many leading lines to skip so that parsing starts
// at the real header row. Hours-summary reports sometimes carry a title line
// above the header; when the second line holds an identifier-like header token,
// exactly one line is skipped, otherwise none.
func DetectTitleLine(name string, data []byte) int {
	second, ok := secondLine(name, data)
	if ok && idHeaderRe.MatchString(second) {
		return 1
	}
	return 0
}

func secondLine(name string, data []byte) (string, bool) {
	if IsWorkbook(name) {
		rows, err := readFirstSheet(data)
		if err != nil || len(rows) < 2 {
			return "", false
		}
		return strings.Join(rows[1], ","), true
	}

	decoded, _, err := DetectAndDecode(data)
	if err != nil {
		return "", false
	}
	i := bytes.IndexByte(decoded, '\n')
	if i < 0 {
		return "", false
	}
	rest := decoded[i+1:]
	if j := bytes.IndexByte(rest, '\n'); j >= 0 {
		rest = rest[:j]
	}
	return string(rest), true
}
