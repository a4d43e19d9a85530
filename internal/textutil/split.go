package textutil

import (
	"regexp"
	"strings"
)

var sentenceEnd = regexp.MustCompile(`([.!?。！？])(\s+|$)`)

// SplitSentences splits text at sentence boundaries, keeping the terminating
// punctuation with each sentence. Text without terminators comes back as a
// single sentence.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	last := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		s := strings.TrimSpace(text[last:loc[1]])
		if s != "" {
			sentences = append(sentences, s)
		}
		last = loc[1]
	}
	if rest := strings.TrimSpace(text[last:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

// SplitParagraphs splits text on blank lines, trimming each paragraph.
func SplitParagraphs(text string) []string {
	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// PackChunks greedily packs pieces into chunks of at most limit characters,
// preserving order and joining pieces within a chunk by sep. Pieces longer
// than the limit are hard-split so no chunk ever exceeds it.
func PackChunks(pieces []string, limit int, sep string) []string {
	if limit <= 0 {
		return pieces
	}

	var chunks []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	for _, piece := range pieces {
		for len(piece) > limit {
			flush()
			cut := limit
			for cut > 0 && !isRuneStart(piece[cut]) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
			chunks = append(chunks, piece[:cut])
			piece = piece[cut:]
		}
		if piece == "" {
			continue
		}
		if current.Len() > 0 && current.Len()+len(sep)+len(piece) > limit {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString(sep)
		}
		current.WriteString(piece)
	}
	flush()
	return chunks
}

// isRuneStart reports whether b is not a UTF-8 continuation byte.
func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
