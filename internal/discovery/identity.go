package discovery

import (
	"regexp"
	"strings"
)

// Date token patterns recognized in path segments. Sequencer run folders
// commonly start with a compact date (20240113_1012_...); hand-organized
// trees sometimes use ISO dates instead.
var (
	compactDateRe = regexp.MustCompile(`(?:^|[^0-9])([0-9]{8})(?:[^0-9]|$)`)
	isoDateRe     = regexp.MustCompile(`[0-9]{4}-[0-9]{2}-[0-9]{2}`)
)

// Identify maps a unit path relative to the input root to its identity
// tuple. It is pure and total: no I/O, and every input produces a value.
//
// libraryCode is the first segment and sampleName the last. batchCode is
// the first date-like token found scanning the segments in order; when no
// date token exists it falls back to the second segment verbatim, and when
// no second segment exists either it is empty (a permitted value).
func Identify(relPath string) (libraryCode, batchCode, sampleName string) {
	segs := splitSegments(relPath)
	if len(segs) == 0 {
		return "", "", ""
	}
	libraryCode = segs[0]
	sampleName = segs[len(segs)-1]

	for _, seg := range segs {
		if m := compactDateRe.FindStringSubmatch(seg); m != nil {
			return libraryCode, m[1], sampleName
		}
		if m := isoDateRe.FindString(seg); m != "" {
			return libraryCode, m, sampleName
		}
	}
	if len(segs) >= 2 {
		batchCode = segs[1]
	}
	return libraryCode, batchCode, sampleName
}

// splitSegments splits a relative path on both separator styles and drops
// empty segments and ".".
func splitSegments(relPath string) []string {
	raw := strings.FieldsFunc(relPath, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	segs := raw[:0]
	for _, s := range raw {
		if s != "" && s != "." {
			segs = append(segs, s)
		}
	}
	return segs
}
