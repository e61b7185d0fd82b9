package utils

import "unicode"

// SplitText splits a long string into chunks of roughly chunkSize runes,
// overlapping by 'overlap' runes to preserve context at boundaries.
// Chunk ends back up to the nearest whitespace when one is close, so
// words are rarely cut in half.
func SplitText(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	totalLen := len(runes)

	if totalLen <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	var chunks []string
	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end >= totalLen {
			chunks = append(chunks, string(runes[i:totalLen]))
			break
		}

		end = backUpToBoundary(runes, i, end)
		chunks = append(chunks, string(runes[i:end]))
	}

	return chunks
}

// backUpToBoundary moves end left to the nearest whitespace within a small
// window. Strict slicing wins over losing data: when no boundary is near,
// the original cut stands.
func backUpToBoundary(runes []rune, start, end int) int {
	const window = 40

	limit := end - window
	if limit < start+1 {
		limit = start + 1
	}
	for i := end; i > limit; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i
		}
	}
	return end
}
