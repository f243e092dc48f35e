// Package engine computes the line-level change script between two inputs.
// The alignment itself is delegated to znkr.io/diff; this package adapts it
// to a change-script shape (ordered hunks of deleted and inserted line
// ranges) and layers the patience and histogram alignment strategies on
// top of it.
package engine

import "znkr.io/diff"

// Algorithm selects the alignment strategy.
type Algorithm int

const (
	Default Algorithm = iota
	Patience
	Histogram
)

// Options configure a change-script computation.
type Options struct {
	IgnoreAllSpace    bool // compare lines with all whitespace removed
	IgnoreSpaceChange bool // compare lines with whitespace runs collapsed
	IgnoreBlankLines  bool // mark hunks consisting of blank lines as ignored
	Minimal           bool // spend extra effort to find a minimal script
	Algorithm         Algorithm
}

// Hunk is one entry of the change script: a maximal run of non-matching
// lines. Positions are 0-based; either count may be zero.
type Hunk struct {
	OldPos, OldLines int
	NewPos, NewLines int

	// Ignore marks hunks excluded by the blank-line policy. Ignored hunks
	// are rendered as context and do not count as differences.
	Ignore bool
}

// Script is the result of a change-script computation: the resolved line
// records of both sides and the ordered hunks between them.
type Script struct {
	Old, New []Record
	Hunks    []Hunk
}

// ChangeScript aligns the lines of a against the lines of b and returns
// the resulting change script. The script is deterministic for fixed
// inputs and options.
func ChangeScript(a, b []byte, opts Options) (*Script, error) {
	x, y := Split(a), Split(b)
	al := &aligner{
		xs: canon(x, opts),
		ys: canon(y, opts),
		rx: make([]bool, len(x)),
		ry: make([]bool, len(y)),
	}
	if opts.Minimal {
		al.dopts = append(al.dopts, diff.Minimal())
	}
	switch opts.Algorithm {
	case Patience:
		al.patience(0, len(x), 0, len(y))
	case Histogram:
		al.histogram(0, len(x), 0, len(y))
	default:
		al.fallback(0, len(x), 0, len(y))
	}
	return &Script{Old: x, New: y, Hunks: buildHunks(x, y, al.rx, al.ry, opts)}, nil
}

// canon maps records to the strings the alignment compares. The whitespace
// flags are implemented here: two lines that canonicalize identically are
// treated as matching.
func canon(recs []Record, opts Options) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		switch {
		case opts.IgnoreAllSpace:
			out[i] = string(stripSpace(r))
		case opts.IgnoreSpaceChange:
			out[i] = string(collapseSpace(r))
		default:
			out[i] = string(r)
		}
	}
	return out
}

// aligner accumulates per-line change flags: rx[i] is true iff old line i
// is deleted, ry[j] iff new line j is inserted. All strategies fill the
// same vectors so hunk building is shared.
type aligner struct {
	xs, ys []string
	rx, ry []bool
	dopts  []diff.Option
}

// fallback aligns xs[x0:x1] against ys[y0:y1] with the underlying engine.
func (a *aligner) fallback(x0, x1, y0, y1 int) {
	edits := diff.Edits(a.xs[x0:x1], a.ys[y0:y1], a.dopts...)
	s, t := x0, y0
	for _, e := range edits {
		switch e.Op {
		case diff.Match:
			s++
			t++
		case diff.Delete:
			a.rx[s] = true
			s++
		case diff.Insert:
			a.ry[t] = true
			t++
		}
	}
}

func (a *aligner) deleteAll(x0, x1 int) {
	for i := x0; i < x1; i++ {
		a.rx[i] = true
	}
}

func (a *aligner) insertAll(y0, y1 int) {
	for j := y0; j < y1; j++ {
		a.ry[j] = true
	}
}

// buildHunks groups the change vectors into maximal runs of changed lines,
// the same shape the classic xdiff change script has.
func buildHunks(x, y []Record, rx, ry []bool, opts Options) []Hunk {
	var hunks []Hunk
	s, t := 0, 0
	for s < len(x) || t < len(y) {
		if (s < len(x) && rx[s]) || (t < len(y) && ry[t]) {
			h := Hunk{OldPos: s, NewPos: t}
			for s < len(x) && rx[s] {
				s++
			}
			for t < len(y) && ry[t] {
				t++
			}
			h.OldLines = s - h.OldPos
			h.NewLines = t - h.NewPos
			if opts.IgnoreBlankLines {
				h.Ignore = allBlank(x[h.OldPos:h.OldPos+h.OldLines]) &&
					allBlank(y[h.NewPos:h.NewPos+h.NewLines])
			}
			hunks = append(hunks, h)
			continue
		}
		s++
		t++
	}
	return hunks
}

func allBlank(recs []Record) bool {
	for _, r := range recs {
		if !r.blank() {
			return false
		}
	}
	return true
}
