package moved

import "mdiff.dev/mdiff/engine"

// Fingerprints use the djb2 rule with its classic seed, over normalized
// line bytes and then over line hashes in positional order. Block
// fingerprints are therefore order sensitive: permuting the lines of a
// block changes its fingerprint.
const hashSeed = 5381

func hashLine(b []byte) uint64 {
	h := uint64(hashSeed)
	for _, c := range b {
		h = (h << 5) + h + uint64(c)
	}
	return h
}

func hashBlock(lineHashes []uint64) uint64 {
	h := uint64(hashSeed)
	for _, lh := range lineHashes {
		h = (h << 5) + h + lh
	}
	return h
}

// blockFingerprint hashes n lines starting at 0-based pos, normalizing
// each line per ws before hashing.
func blockFingerprint(recs []engine.Record, pos, n int, ws WsMode) uint64 {
	hs := make([]uint64, n)
	for i := range n {
		hs[i] = hashLine(normalize(recs[pos+i], ws))
	}
	return hashBlock(hs)
}

// alnumCount counts alphanumeric bytes of the raw, non-normalized content
// of lines start..end (1-based, inclusive).
func alnumCount(recs []engine.Record, start, end int) int {
	total := 0
	for pos := start - 1; pos < end; pos++ {
		for _, c := range recs[pos] {
			if isAlnum(c) {
				total++
			}
		}
	}
	return total
}
