// Package chunker splits extracted document text into bounded, overlapping
// segments for indexing.
package chunker

import "strings"

// Boundary sets tried at each cut, highest priority first. A lower set is
// consulted only when no boundary from a higher set falls inside the budget.
var boundarySets = [][]string{
	{"\n\n"},
	{". ", "! ", "? ", "\n"},
	{" "},
}

// Split cuts text into segments of at most maxLen bytes. Consecutive segments
// share exactly overlap bytes: each segment after the first starts overlap
// bytes before the previous cut, so appending seg[overlap:] for every later
// segment reconstructs text exactly.
//
// Cuts prefer paragraph breaks, then sentence ends, then spaces, and fall back
// to a hard cut at the length budget. Input no longer than maxLen comes back
// as a single segment; empty or whitespace-only input yields no segments.
func Split(text string, maxLen, overlap int) []string {
	if maxLen <= 0 || strings.TrimSpace(text) == "" {
		return nil
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxLen {
		overlap = maxLen / 2
	}
	if len(text) <= maxLen {
		return []string{text}
	}

	var segments []string
	start := 0
	for {
		if start+maxLen >= len(text) {
			segments = append(segments, text[start:])
			return segments
		}
		cut := cutPoint(text[start:start+maxLen], overlap)
		segments = append(segments, text[start:start+cut])
		start += cut - overlap
	}
}

// cutPoint returns the cut position within window, measured from its start.
// The cut must land after the overlap region so the next segment makes
// forward progress; when no boundary qualifies the window is cut whole.
func cutPoint(window string, overlap int) int {
	for _, seps := range boundarySets {
		best := -1
		for _, sep := range seps {
			if i := strings.LastIndex(window, sep); i >= 0 {
				if p := i + len(sep); p > overlap && p > best {
					best = p
				}
			}
		}
		if best > 0 {
			return best
		}
	}
	return len(window)
}

// Reassemble inverts Split: it concatenates segments after trimming the
// overlap prefix from every segment but the first.
func Reassemble(segments []string, overlap int) string {
	var text strings.Builder
	for i, seg := range segments {
		if i > 0 {
			if len(seg) < overlap {
				continue
			}
			seg = seg[overlap:]
		}
		text.WriteString(seg)
	}
	return text.String()
}
