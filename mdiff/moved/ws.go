package moved

import "fmt"

// WsMode selects how line content is normalized before fingerprinting.
//
// Normalization is a pure function of the line bytes and the mode: equal
// inputs always produce equal outputs, which is what fingerprint equality
// relies on.
type WsMode int

const (
	WsNone         WsMode = iota // no normalization
	WsIgnoreAll                  // drop every whitespace byte
	WsIgnoreChange               // collapse whitespace runs to a single space
	WsIgnoreAtEOL                // strip trailing whitespace only
)

// ParseWsMode maps a --moved-ws keyword to its mode.
func ParseWsMode(s string) (WsMode, error) {
	switch s {
	case "ignore-all":
		return WsIgnoreAll, nil
	case "ignore-change":
		return WsIgnoreChange, nil
	case "ignore-at-eol":
		return WsIgnoreAtEOL, nil
	}
	return WsNone, fmt.Errorf("invalid moved-ws mode: %s", s)
}

func (m WsMode) String() string {
	switch m {
	case WsNone:
		return "none"
	case WsIgnoreAll:
		return "ignore-all"
	case WsIgnoreChange:
		return "ignore-change"
	case WsIgnoreAtEOL:
		return "ignore-at-eol"
	}
	return "unknown"
}

func normalize(line []byte, m WsMode) []byte {
	switch m {
	case WsIgnoreAll:
		out := make([]byte, 0, len(line))
		for _, c := range line {
			if !isSpace(c) {
				out = append(out, c)
			}
		}
		return out
	case WsIgnoreChange:
		out := make([]byte, 0, len(line))
		inRun := false
		for _, c := range line {
			if isSpace(c) {
				if !inRun {
					out = append(out, ' ')
					inRun = true
				}
				continue
			}
			out = append(out, c)
			inRun = false
		}
		return out
	case WsIgnoreAtEOL:
		end := len(line)
		for end > 0 && isSpace(line[end-1]) {
			end--
		}
		return line[:end]
	}
	return line
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
