package judge

import (
	"bytes"
	"strings"
)

// Compare reports whether actual matches expected after normalization:
// CRLF becomes LF, trailing spaces and tabs are dropped from every line, and
// trailing blank lines are dropped. Everything else must match byte for
// byte; there is no numeric tolerance.
func Compare(expected, actual []byte) bool {
	return bytes.Equal(normalize(expected), normalize(actual))
}

// Diff returns the first normalized line where actual departs from
// expected, numbered from 1. ok is false when the outputs match.
func Diff(expected, actual []byte) (line int, want, got string, ok bool) {
	w := splitLines(normalize(expected))
	g := splitLines(normalize(actual))
	for i := 0; i < max(len(w), len(g)); i++ {
		var wl, gl string
		if i < len(w) {
			wl = w[i]
		}
		if i < len(g) {
			gl = g[i]
		}
		if i >= len(w) || i >= len(g) || wl != gl {
			return i + 1, wl, gl, true
		}
	}
	return 0, "", "", false
}

func normalize(b []byte) []byte {
	lines := bytes.Split(bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n")), []byte("\n"))
	for i, l := range lines {
		lines[i] = bytes.TrimRight(l, " \t\r")
	}
	end := len(lines)
	for end > 0 && len(lines[end-1]) == 0 {
		end--
	}
	return bytes.Join(lines[:end], []byte("\n"))
}

func splitLines(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	return strings.Split(string(b), "\n")
}
