package report

import (
	"fmt"
	"strings"
)

// segment is a run of either plain text or emoji characters. Emoji
// runs are rendered from bitmap assets when available.
type segment struct {
	text  string
	emoji bool
}

// splitEmojiSegments partitions a line into plain-text and emoji runs.
// Variation selectors and zero-width joiners stick to the emoji run
// they modify.
func splitEmojiSegments(s string) []segment {
	var segments []segment
	var current strings.Builder
	currentEmoji := false

	flush := func() {
		if current.Len() > 0 {
			segments = append(segments, segment{text: current.String(), emoji: currentEmoji})
			current.Reset()
		}
	}

	for _, r := range s {
		isEmoji := isEmojiRune(r)
		if isJoinerRune(r) && currentEmoji {
			isEmoji = true
		}
		if isEmoji != currentEmoji {
			flush()
			currentEmoji = isEmoji
		}
		current.WriteRune(r)
	}
	flush()
	return segments
}

func isEmojiRune(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1F5FF: // misc symbols and pictographs
		return true
	case r >= 0x1F600 && r <= 0x1F64F: // emoticons
		return true
	case r >= 0x1F680 && r <= 0x1F6FF: // transport and map
		return true
	case r >= 0x1F900 && r <= 0x1F9FF: // supplemental symbols
		return true
	case r >= 0x1FA70 && r <= 0x1FAFF: // extended symbols
		return true
	case r >= 0x2600 && r <= 0x26FF: // misc symbols
		return true
	case r >= 0x2700 && r <= 0x27BF: // dingbats
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators
		return true
	}
	return false
}

func isJoinerRune(r rune) bool {
	return r == 0x200D || r == 0xFE0F // zero-width joiner, variation selector
}

// emojiAssetName converts an emoji run into the per-codepoint asset
// filename, e.g. "😀" -> "1f600.png".
func emojiAssetName(emoji string) string {
	var parts []string
	for _, r := range emoji {
		parts = append(parts, fmt.Sprintf("%x", r))
	}
	return strings.Join(parts, "-") + ".png"
}
