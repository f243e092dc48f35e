package engine

// Patience alignment: anchor on lines that occur exactly once on both
// sides, keep the longest sequence of anchors that appear in the same
// order on both sides (patience sorting), and recurse between them. Ranges
// without any unique common line fall back to the underlying engine.

type anchor struct {
	x, y int
}

func (a *aligner) patience(x0, x1, y0, y1 int) {
	for x0 < x1 && y0 < y1 && a.xs[x0] == a.ys[y0] {
		x0++
		y0++
	}
	for x0 < x1 && y0 < y1 && a.xs[x1-1] == a.ys[y1-1] {
		x1--
		y1--
	}
	switch {
	case x0 == x1:
		a.insertAll(y0, y1)
		return
	case y0 == y1:
		a.deleteAll(x0, x1)
		return
	}

	anchors := uniqueAnchors(a.xs[x0:x1], a.ys[y0:y1])
	if len(anchors) == 0 {
		a.fallback(x0, x1, y0, y1)
		return
	}
	ps, pt := x0, y0
	for _, an := range anchors {
		a.patience(ps, x0+an.x, pt, y0+an.y)
		ps, pt = x0+an.x+1, y0+an.y+1
	}
	a.patience(ps, x1, pt, y1)
}

// uniqueAnchors returns the longest in-order chain of lines unique to both
// xs and ys, as (x, y) index pairs increasing on both coordinates.
func uniqueAnchors(xs, ys []string) []anchor {
	xCount := make(map[string]int, len(xs))
	for _, s := range xs {
		xCount[s]++
	}
	yCount := make(map[string]int, len(ys))
	yPos := make(map[string]int, len(ys))
	for j, s := range ys {
		yCount[s]++
		if yCount[s] == 1 {
			yPos[s] = j
		}
	}

	var cands []anchor
	for i, s := range xs {
		if xCount[s] == 1 && yCount[s] == 1 {
			cands = append(cands, anchor{i, yPos[s]})
		}
	}
	return longestChain(cands)
}

// longestChain selects the longest subsequence of cands with strictly
// increasing y. The candidates are already increasing in x. This is
// patience sorting in its compact form: pileTops[k] is the candidate on
// top of pile k, back links each candidate to the top of the previous pile
// at insertion time.
func longestChain(cands []anchor) []anchor {
	if len(cands) == 0 {
		return nil
	}
	pileTops := make([]int, 0, len(cands))
	back := make([]int, len(cands))
	for i, c := range cands {
		lo, hi := 0, len(pileTops)
		for lo < hi {
			mid := (lo + hi) / 2
			if cands[pileTops[mid]].y < c.y {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			back[i] = pileTops[lo-1]
		} else {
			back[i] = -1
		}
		if lo == len(pileTops) {
			pileTops = append(pileTops, i)
		} else {
			pileTops[lo] = i
		}
	}

	chain := make([]anchor, len(pileTops))
	for k, i := len(pileTops)-1, pileTops[len(pileTops)-1]; k >= 0; k-- {
		chain[k] = cands[i]
		i = back[i]
	}
	return chain
}
