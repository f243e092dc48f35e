package engine

// Histogram alignment: split on the lowest-occurrence line present on both
// sides and recurse around it. Low-frequency lines make good anchors;
// lines more frequent than maxChainLength are never used as one. Ranges
// without a usable anchor fall back to the underlying engine.

// Maximum old-side occurrence count for a line to serve as an anchor.
const maxChainLength = 64

func (a *aligner) histogram(x0, x1, y0, y1 int) {
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

	xCount := make(map[string]int, x1-x0)
	for i := x0; i < x1; i++ {
		xCount[a.xs[i]]++
	}
	yCount := make(map[string]int, y1-y0)
	yPos := make(map[string]int, y1-y0)
	for j := y0; j < y1; j++ {
		s := a.ys[j]
		yCount[s]++
		if yCount[s] == 1 {
			yPos[s] = j
		}
	}

	// First occurrence of the rarest common line wins ties.
	bestX, bestY, bestCount := -1, -1, 0
	for i := x0; i < x1; i++ {
		s := a.xs[i]
		cx, cy := xCount[s], yCount[s]
		if cy == 0 || cx > maxChainLength {
			continue
		}
		if bestX == -1 || cx+cy < bestCount {
			bestX, bestY, bestCount = i, yPos[s], cx+cy
		}
		xCount[s] = maxChainLength + 1 // consider each line once
	}
	if bestX < 0 {
		a.fallback(x0, x1, y0, y1)
		return
	}

	a.histogram(x0, bestX, y0, bestY)
	a.histogram(bestX+1, x1, bestY+1, y1)
}
