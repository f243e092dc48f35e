// Package moved detects blocks of lines that a diff reports as deleted in
// one place and inserted in another, similar to git's --color-moved. It
// consumes the change script produced by the engine package and answers
// per-line queries for the presentation layer.
//
// Matching is by fingerprint equality alone. A hash collision, or several
// byte-identical copies of the same block, pair with the first candidate
// in collection order rather than the nearest or the "right" one. This is
// a known approximation; adding byte-level verification would change
// which candidate gets paired and is deliberately avoided.
package moved

import (
	"fmt"

	"mdiff.dev/mdiff/engine"
)

// Mode selects how much of the detection pipeline runs.
type Mode int

const (
	ModeNo          Mode = iota // detection disabled
	ModePlain                   // match only
	ModeBlocks                  // match + size filter
	ModeZebra                   // match + size filter + group indices
	ModeDimmedZebra             // ModeZebra + interior-line dimming
)

// ParseMode maps a --moved keyword to its mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "no":
		return ModeNo, nil
	case "plain":
		return ModePlain, nil
	case "blocks":
		return ModeBlocks, nil
	case "zebra":
		return ModeZebra, nil
	case "dimmed-zebra":
		return ModeDimmedZebra, nil
	}
	return ModeNo, fmt.Errorf("invalid moved mode: %s", s)
}

func (m Mode) String() string {
	switch m {
	case ModeNo:
		return "no"
	case ModePlain:
		return "plain"
	case ModeBlocks:
		return "blocks"
	case ModeZebra:
		return "zebra"
	case ModeDimmedZebra:
		return "dimmed-zebra"
	}
	return "unknown"
}

// Side identifies which input a line position refers to.
type Side int

const (
	Deleted  Side = iota // old side
	Inserted             // new side
)

// Minimum alphanumeric bytes a matched pair must span on the deleted side
// to survive filtering in blocks and zebra modes.
const minBlockSize = 20

// Block is a maximal run of deleted or inserted lines within one hunk.
type Block struct {
	Start, End  int // 1-based, inclusive
	Fingerprint uint64

	Matched      bool
	PartnerStart int // start of the matched block on the opposite side
	Group        int // zebra group index, -1 until assigned
}

func (b Block) contains(line int) bool {
	return b.Start <= line && line <= b.End
}

// Context holds the move-detection state of a single diff invocation. It
// is populated by Collect, then queried read-only; it is not safe for
// concurrent mutation and is not reused across invocations.
type Context struct {
	mode     Mode
	wsMode   WsMode
	deleted  []Block
	inserted []Block
	groups   int
}

func NewContext(mode Mode, ws WsMode) *Context {
	return &Context{mode: mode, wsMode: ws}
}

// Mode reports the detection mode the context was created with.
func (c *Context) Mode() Mode { return c.mode }

// Collect runs the engine over the inputs, builds the per-side block
// lists, and performs matching, size filtering, and group assignment as
// the mode requires. Blocks are collected in file order on both sides;
// group indices are therefore assigned in deleted-side file order.
//
// On error the context must be discarded, not queried.
func (c *Context) Collect(a, b []byte, opts engine.Options) error {
	if c.mode == ModeNo {
		return nil
	}

	script, err := engine.ChangeScript(a, b, opts)
	if err != nil {
		return fmt.Errorf("computing change script: %v", err)
	}

	for _, h := range script.Hunks {
		if h.Ignore {
			continue
		}
		if h.OldLines > 0 {
			c.deleted = append(c.deleted, Block{
				Start:       h.OldPos + 1,
				End:         h.OldPos + h.OldLines,
				Fingerprint: blockFingerprint(script.Old, h.OldPos, h.OldLines, c.wsMode),
				Group:       -1,
			})
		}
		if h.NewLines > 0 {
			c.inserted = append(c.inserted, Block{
				Start:       h.NewPos + 1,
				End:         h.NewPos + h.NewLines,
				Fingerprint: blockFingerprint(script.New, h.NewPos, h.NewLines, c.wsMode),
				Group:       -1,
			})
		}
	}

	c.match()
	switch c.mode {
	case ModeBlocks, ModeZebra, ModeDimmedZebra:
		c.filterShort(script.Old)
	}
	switch c.mode {
	case ModeZebra, ModeDimmedZebra:
		c.assignGroups()
	}
	return nil
}

// match pairs every unmatched deleted block with the first unmatched
// inserted block of equal fingerprint, in collection order.
func (c *Context) match() {
	for i := range c.deleted {
		d := &c.deleted[i]
		if d.Matched {
			continue
		}
		for j := range c.inserted {
			ins := &c.inserted[j]
			if ins.Matched || ins.Fingerprint != d.Fingerprint {
				continue
			}
			pair(d, ins)
			break
		}
	}
}

// pair and unpair are the only writers of match state; both sides are
// always updated in the same step so a half-matched block cannot exist.
func pair(d, ins *Block) {
	d.Matched, d.PartnerStart = true, ins.Start
	ins.Matched, ins.PartnerStart = true, d.Start
}

func unpair(d, ins *Block) {
	d.Matched, d.PartnerStart = false, 0
	ins.Matched, ins.PartnerStart = false, 0
}

// partner resolves the inserted block matched with d.
func (c *Context) partner(d *Block) *Block {
	for j := range c.inserted {
		ins := &c.inserted[j]
		if ins.Matched && ins.Start == d.PartnerStart && ins.PartnerStart == d.Start {
			return ins
		}
	}
	return nil
}

// filterShort unmatches pairs whose deleted-side content has fewer than
// minBlockSize alphanumeric bytes, so a lone brace or blank line is never
// flagged as moved.
func (c *Context) filterShort(old []engine.Record) {
	for i := range c.deleted {
		d := &c.deleted[i]
		if !d.Matched {
			continue
		}
		if alnumCount(old, d.Start, d.End) >= minBlockSize {
			continue
		}
		if ins := c.partner(d); ins != nil {
			unpair(d, ins)
		}
	}
}

// assignGroups walks the deleted blocks in order and gives every matched
// pair the next group index. Indices start at 0, are never reused, and are
// never assigned to an unmatched block.
func (c *Context) assignGroups() {
	for i := range c.deleted {
		d := &c.deleted[i]
		if !d.Matched || d.Group != -1 {
			continue
		}
		ins := c.partner(d)
		if ins == nil {
			continue
		}
		d.Group = c.groups
		ins.Group = c.groups
		c.groups++
	}
}

func (c *Context) blocks(side Side) []Block {
	if side == Deleted {
		return c.deleted
	}
	return c.inserted
}

// IsMoved reports whether line (1-based) on side is part of a matched
// block. Always false when detection is disabled.
func (c *Context) IsMoved(line int, side Side) bool {
	if c.mode == ModeNo {
		return false
	}
	for _, b := range c.blocks(side) {
		if b.Matched && b.contains(line) {
			return true
		}
	}
	return false
}

// Group returns the zebra group index of the matched block containing line
// on side. The second result is false outside the zebra modes or when the
// line is not part of a matched block.
func (c *Context) Group(line int, side Side) (int, bool) {
	if c.mode != ModeZebra && c.mode != ModeDimmedZebra {
		return 0, false
	}
	for _, b := range c.blocks(side) {
		if b.Matched && b.contains(line) {
			return b.Group, true
		}
	}
	return 0, false
}

// IsInterior reports whether line is strictly inside a matched block on
// side, excluding the block's first and last line. Only the dimmed-zebra
// mode exposes this; other modes always report false.
func (c *Context) IsInterior(line int, side Side) bool {
	if c.mode != ModeDimmedZebra {
		return false
	}
	for _, b := range c.blocks(side) {
		if b.Matched && b.Start < line && line < b.End {
			return true
		}
	}
	return false
}

// BlockCount reports the number of collected blocks on side.
func (c *Context) BlockCount(side Side) int { return len(c.blocks(side)) }

// MatchedPairs reports the number of matched block pairs.
func (c *Context) MatchedPairs() int {
	n := 0
	for i := range c.deleted {
		if c.deleted[i].Matched {
			n++
		}
	}
	return n
}
