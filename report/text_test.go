package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEmojiSegments(t *testing.T) {
	segs := splitEmojiSegments("great job 🎉 really")
	require.Len(t, segs, 3)
	assert.Equal(t, segment{text: "great job ", emoji: false}, segs[0])
	assert.Equal(t, segment{text: "🎉", emoji: true}, segs[1])
	assert.Equal(t, segment{text: " really", emoji: false}, segs[2])
}

func TestSplitEmojiSegmentsPlainText(t *testing.T) {
	segs := splitEmojiSegments("no emoji here")
	require.Len(t, segs, 1)
	assert.False(t, segs[0].emoji)
}

func TestSplitEmojiSegmentsKeepsJoiners(t *testing.T) {
	// heavy check mark with variation selector stays one emoji run
	segs := splitEmojiSegments("done ✔️")
	require.Len(t, segs, 2)
	assert.True(t, segs[1].emoji)
	assert.Equal(t, "✔️", segs[1].text)
}

func TestEmojiAssetName(t *testing.T) {
	assert.Equal(t, "1f600.png", emojiAssetName("😀"))
	assert.Equal(t, "2714-fe0f.png", emojiAssetName("✔️"))
}
