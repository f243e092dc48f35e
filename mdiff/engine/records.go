package engine

import "bytes"

// A Record is a read-only view of one input line without its trailing
// newline. Records alias the input buffer and must not be modified.
type Record []byte

// Split resolves data into line records. A trailing newline does not
// produce an empty final record.
func Split(data []byte) []Record {
	var recs []Record
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			recs = append(recs, Record(data))
			break
		}
		recs = append(recs, Record(data[:i]))
		data = data[i+1:]
	}
	return recs
}

func (r Record) blank() bool {
	for _, c := range r {
		if !isSpace(c) {
			return false
		}
	}
	return true
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// stripSpace returns r with every whitespace byte removed.
func stripSpace(r Record) []byte {
	out := make([]byte, 0, len(r))
	for _, c := range r {
		if !isSpace(c) {
			out = append(out, c)
		}
	}
	return out
}

// collapseSpace returns r with every run of whitespace bytes replaced by a
// single space.
func collapseSpace(r Record) []byte {
	out := make([]byte, 0, len(r))
	inRun := false
	for _, c := range r {
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
}
