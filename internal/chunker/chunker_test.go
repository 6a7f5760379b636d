package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitShortInput(t *testing.T) {
	text := "a short document"
	segments := Split(text, 1000, 200)
	require.Len(t, segments, 1)
	assert.Equal(t, text, segments[0])
}

func TestSplitEmptyInput(t *testing.T) {
	assert.Nil(t, Split("", 1000, 200))
	assert.Nil(t, Split("   \n\t  ", 1000, 200))
}

func TestSplitLongInputProperties(t *testing.T) {
	texts := map[string]string{
		"no boundaries": strings.Repeat("x", 2500),
		"words":         strings.TrimSpace(strings.Repeat("lorem ipsum dolor ", 200)),
		"sentences":     strings.TrimSpace(strings.Repeat("The quick brown fox jumps over the lazy dog. ", 80)),
		"paragraphs":    strings.TrimSpace(strings.Repeat(strings.Repeat("word ", 60)+"\n\n", 12)),
	}
	const maxLen, overlap = 1000, 200

	for name, text := range texts {
		t.Run(name, func(t *testing.T) {
			require.Greater(t, len(text), maxLen)
			segments := Split(text, maxLen, overlap)
			require.GreaterOrEqual(t, len(segments), 2)

			for i, seg := range segments {
				assert.LessOrEqual(t, len(seg), maxLen, "segment %d too long", i)
			}
			// Consecutive segments share exactly the overlap region.
			for i := 1; i < len(segments); i++ {
				prev := segments[i-1]
				assert.Equal(t, prev[len(prev)-overlap:], segments[i][:overlap], "segments %d/%d overlap mismatch", i-1, i)
			}
			assert.Equal(t, text, Reassemble(segments, overlap))
		})
	}
}

func TestSplitIdempotent(t *testing.T) {
	text := strings.Repeat("Sphinx of black quartz, judge my vow. ", 100)
	first := Split(text, 500, 100)
	second := Split(text, 500, 100)
	assert.Equal(t, first, second)
}

func TestSplitPrefersParagraphBoundary(t *testing.T) {
	text := strings.Repeat("a", 600) + "\n\n" + strings.Repeat("b", 600)
	segments := Split(text, 1000, 100)
	require.GreaterOrEqual(t, len(segments), 2)
	// The first cut lands right after the paragraph break, not at the budget.
	assert.Equal(t, strings.Repeat("a", 600)+"\n\n", segments[0])
}

func TestSplitFallsBackToSentenceBoundary(t *testing.T) {
	text := strings.Repeat("c", 500) + ". " + strings.Repeat("d", 700)
	segments := Split(text, 1000, 100)
	require.GreaterOrEqual(t, len(segments), 2)
	assert.Equal(t, strings.Repeat("c", 500)+". ", segments[0])
}

func TestSplitHardCutWithoutBoundaries(t *testing.T) {
	text := strings.Repeat("z", 2500)
	segments := Split(text, 1000, 200)
	require.Len(t, segments, 3)
	assert.Equal(t, 1000, len(segments[0]))
	assert.Equal(t, 1000, len(segments[1]))
	assert.Equal(t, 900, len(segments[2]))
	assert.Equal(t, text, Reassemble(segments, 200))
}

func TestSplitGuardsDegenerateOverlap(t *testing.T) {
	text := strings.Repeat("y", 300)
	segments := Split(text, 100, 100)
	require.NotEmpty(t, segments)
	for _, seg := range segments {
		assert.LessOrEqual(t, len(seg), 100)
	}
	assert.Equal(t, text, Reassemble(segments, 50))
}
