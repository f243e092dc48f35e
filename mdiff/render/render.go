// Package render emits the unified diff output of a change script,
// marking moved lines when a detection context is supplied. Moved lines
// replace their -/+ prefix with < and > and, when color is enabled, are
// styled per detection mode.
package render

import (
	"bufio"
	"fmt"
	"io"

	"mdiff.dev/mdiff/engine"
	"mdiff.dev/mdiff/moved"
)

// Renderer streams one diff invocation to Out.
type Renderer struct {
	Out              io.Writer
	OldName, NewName string
	Context          int  // context lines around each hunk
	Brief            bool // report only whether the inputs differ
	Color            bool

	// Moved is consulted per emitted line; nil disables move marking.
	Moved *moved.Context
}

// Run computes the change script for presentation and emits it. It
// reports whether the inputs differ, ignoring hunks excluded by the
// blank-line policy.
//
// This is a second, independent engine invocation: move detection already
// ran one to collect its blocks. The two passes are deliberately not
// unified.
func (r *Renderer) Run(a, b []byte, opts engine.Options) (bool, error) {
	script, err := engine.ChangeScript(a, b, opts)
	if err != nil {
		return false, fmt.Errorf("computing diff: %v", err)
	}

	var changes []engine.Hunk
	for _, h := range script.Hunks {
		if !h.Ignore {
			changes = append(changes, h)
		}
	}
	if len(changes) == 0 {
		return false, nil
	}
	if r.Brief {
		return true, nil
	}

	w := bufio.NewWriter(r.Out)
	fmt.Fprintf(w, "--- %s\n+++ %s\n", r.OldName, r.NewName)
	for i := 0; i < len(changes); {
		j := i + 1
		for j < len(changes) && changes[j].OldPos-(changes[j-1].OldPos+changes[j-1].OldLines) <= 2*r.Context {
			j++
		}
		r.emitHunk(w, script, changes[i:j])
		i = j
	}
	return true, w.Flush()
}

// emitHunk writes one display hunk: the seed hunks plus up to Context
// lines of surrounding context. Ignored hunks never seed a display hunk,
// but any that fall inside the window are emitted like regular changes;
// the two sides are only in lockstep on matched lines, so the new-side
// counter is resynced from every hunk's own coordinates.
func (r *Renderer) emitHunk(w io.Writer, s *engine.Script, seeds []engine.Hunk) {
	first, last := seeds[0], seeds[len(seeds)-1]
	oldBegin := max(0, first.OldPos-r.Context)
	oldEnd := min(len(s.Old), last.OldPos+last.OldLines+r.Context)

	// Hunks are emitted whole or not at all: when a window edge lands
	// inside an ignored hunk, shrink the context past it.
	for _, h := range s.Hunks {
		if h.OldPos < oldBegin && oldBegin < h.OldPos+h.OldLines {
			oldBegin = h.OldPos + h.OldLines
		}
		if h.OldPos < oldEnd && oldEnd < h.OldPos+h.OldLines {
			oldEnd = h.OldPos
		}
	}
	var window []engine.Hunk
	for _, h := range s.Hunks {
		if h.OldPos >= oldBegin && h.OldPos+h.OldLines <= oldEnd {
			window = append(window, h)
		}
	}

	newBegin := window[0].NewPos - (window[0].OldPos - oldBegin)
	newEnd := newBegin + (oldEnd - oldBegin)
	for _, h := range window {
		newEnd += h.NewLines - h.OldLines
	}

	header := fmt.Sprintf("@@ -%s +%s @@", span(oldBegin, oldEnd-oldBegin), span(newBegin, newEnd-newBegin))
	if r.Color {
		header = hunkStyle.Render(header)
	}
	fmt.Fprintln(w, header)

	oldLine := oldBegin
	for _, h := range window {
		for oldLine < h.OldPos {
			r.emit(w, ' ', s.Old[oldLine], 0, moved.Deleted)
			oldLine++
		}
		for range h.OldLines {
			r.emit(w, '-', s.Old[oldLine], oldLine+1, moved.Deleted)
			oldLine++
		}
		for i := range h.NewLines {
			r.emit(w, '+', s.New[h.NewPos+i], h.NewPos+i+1, moved.Inserted)
		}
	}
	for oldLine < oldEnd {
		r.emit(w, ' ', s.Old[oldLine], 0, moved.Deleted)
		oldLine++
	}
}

// span renders one side of a hunk header; a zero count names the line
// before the range, a count of one is left implicit.
func span(begin, count int) string {
	pos := begin + 1
	if count == 0 {
		pos = begin
	}
	if count == 1 {
		return fmt.Sprintf("%d", pos)
	}
	return fmt.Sprintf("%d,%d", pos, count)
}

func (r *Renderer) emit(w io.Writer, prefix byte, rec engine.Record, pos int, side moved.Side) {
	mark := " "
	style := plainStyle
	switch prefix {
	case '-':
		mark, style = "-", deletedStyle
	case '+':
		mark, style = "+", insertedStyle
	}
	if prefix != ' ' && r.Moved != nil && r.Moved.IsMoved(pos, side) {
		if prefix == '-' {
			mark = "<"
		} else {
			mark = ">"
		}
		style = r.movedStyle(pos, side)
	}
	line := mark + string(rec)
	if r.Color {
		line = style.Render(line)
	}
	fmt.Fprintln(w, line)
}
