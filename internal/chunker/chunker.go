// Package chunker splits normalized text into overlapping, bounded-size
// segments for embedding. Splitting is sentence-aware: chunks accumulate
// whole sentences by word count and only close when the next sentence
// would push them past the limit.
package chunker

import (
	"fmt"
	"strings"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
)

// Config configures chunk sizing.
type Config struct {
	// MaxTokens is the word budget per chunk
	MaxTokens int

	// Overlap is the number of words carried over from the previous chunk
	Overlap int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens: 500,
		Overlap:   50,
	}
}

// Chunk splits text into chunks of at most maxTokens words, carrying the
// last overlap words of each emitted chunk into the next. A single
// sentence longer than maxTokens becomes its own chunk rather than being
// split mid-sentence. Empty input yields an empty slice. Output order
// follows input order; downstream stores rely on it to reconstruct
// document order.
func Chunk(text string, maxTokens, overlap int) ([]string, error) {
	if maxTokens <= 0 {
		return nil, fmt.Errorf("%w: max tokens must be positive, got %d", domain.ErrInvalidInput, maxTokens)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: overlap must be non-negative, got %d", domain.ErrInvalidInput, overlap)
	}
	if overlap >= maxTokens {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than max tokens %d", domain.ErrInvalidInput, overlap, maxTokens)
	}

	sentences := splitSentences(normalizeWhitespace(text))

	var chunks []string
	var current []string
	tokenCount := 0

	for _, sentence := range sentences {
		tokens := strings.Fields(sentence)
		if tokenCount+len(tokens) > maxTokens {
			if len(current) > 0 {
				chunks = append(chunks, strings.Join(current, " "))
			}
			if overlap > 0 && len(chunks) > 0 {
				prev := strings.Fields(chunks[len(chunks)-1])
				carried := prev
				if len(prev) > overlap {
					carried = prev[len(prev)-overlap:]
				}
				current = append(append([]string{}, carried...), tokens...)
			} else {
				current = tokens
			}
			tokenCount = len(current)
		} else {
			current = append(current, tokens...)
			tokenCount += len(tokens)
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks, nil
}

// normalizeWhitespace collapses whitespace runs (including newlines) into
// single spaces and trims the ends.
func normalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// splitSentences splits normalized text at sentence boundaries: a `.`,
// `?`, or `!` immediately followed by a space. The terminator stays with
// its sentence.
func splitSentences(text string) []string {
	if text == "" {
		return nil
	}

	var sentences []string
	start := 0
	for i := 0; i < len(text)-1; i++ {
		if isTerminator(text[i]) && text[i+1] == ' ' {
			sentences = append(sentences, text[start:i+1])
			start = i + 2
			i++
		}
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}

func isTerminator(c byte) bool {
	return c == '.' || c == '?' || c == '!'
}
