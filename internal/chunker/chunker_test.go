package chunker

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/harbor-labs/docflow-core/internal/core/domain"
)

func TestChunkEmptyInput(t *testing.T) {
	chunks, err := Chunk("", 500, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected no chunks for empty input, got %d", len(chunks))
	}

	chunks, err = Chunk("   \n\t  ", 500, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected no chunks for whitespace-only input, got %d", len(chunks))
	}
}

func TestChunkSingleChunk(t *testing.T) {
	chunks, err := Chunk("Hello world. This fits easily.", 100, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Hello world. This fits easily."}
	if !reflect.DeepEqual(chunks, want) {
		t.Errorf("expected %v, got %v", want, chunks)
	}
}

func TestChunkSentenceBoundariesWithOverlap(t *testing.T) {
	text := "Hello world. This is a test sentence. Short."
	chunks, err := Chunk(text, 5, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"Hello world.",
		"Hello world. This is a test sentence.",
		"test sentence. Short.",
	}
	if !reflect.DeepEqual(chunks, want) {
		t.Errorf("expected %v, got %v", want, chunks)
	}
}

func TestChunkNormalizesWhitespace(t *testing.T) {
	chunks, err := Chunk("Hello   world.\n\nSecond\tline here.", 100, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Hello world. Second line here."}
	if !reflect.DeepEqual(chunks, want) {
		t.Errorf("expected %v, got %v", want, chunks)
	}
}

func TestChunkOversizedSentence(t *testing.T) {
	// A single sentence longer than maxTokens becomes its own chunk
	// rather than being split mid-sentence.
	long := strings.Repeat("word ", 20) + "end."
	chunks, err := Chunk(long+" Tail.", 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if got := len(strings.Fields(chunks[0])); got != 21 {
		t.Errorf("expected oversized chunk to keep all 21 words, got %d", got)
	}
	if chunks[1] != "Tail." {
		t.Errorf("expected trailing chunk %q, got %q", "Tail.", chunks[1])
	}
}

func TestChunkMultiSentenceChunksRespectLimit(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("One two three four. ")
	}
	chunks, err := Chunk(sb.String(), 10, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, chunk := range chunks {
		if got := len(strings.Fields(chunk)); got > 10 {
			t.Errorf("chunk %d has %d words, exceeds limit: %q", i, got, chunk)
		}
	}
}

func TestChunkNoTokensDropped(t *testing.T) {
	// Removing the overlapping prefix of each chunk after the first
	// reconstructs the original token sequence.
	text := "Alpha beta gamma. Delta epsilon zeta eta. Theta iota kappa. Lambda mu nu xi. Omicron pi."
	overlap := 2
	chunks, err := Chunk(text, 6, overlap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var rebuilt []string
	for i, chunk := range chunks {
		tokens := strings.Fields(chunk)
		if i > 0 && len(tokens) >= overlap {
			tokens = tokens[overlap:]
		}
		rebuilt = append(rebuilt, tokens...)
	}
	original := strings.Fields(text)
	if !reflect.DeepEqual(rebuilt, original) {
		t.Errorf("token sequence not preserved:\noriginal: %v\nrebuilt:  %v", original, rebuilt)
	}
}

func TestChunkZeroOverlap(t *testing.T) {
	chunks, err := Chunk("One two three. Four five six. Seven eight nine.", 4, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"One two three.", "Four five six.", "Seven eight nine."}
	if !reflect.DeepEqual(chunks, want) {
		t.Errorf("expected %v, got %v", want, chunks)
	}
}

func TestChunkIdempotent(t *testing.T) {
	text := "First sentence here. Second sentence follows. Third one ends it."
	first, err := Chunk(text, 6, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Chunk(text, 6, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("chunking is not deterministic:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func TestChunkInvalidParameters(t *testing.T) {
	tests := []struct {
		name      string
		maxTokens int
		overlap   int
	}{
		{"zero max tokens", 0, 0},
		{"negative max tokens", -1, 0},
		{"negative overlap", 10, -1},
		{"overlap equals max tokens", 10, 10},
		{"overlap exceeds max tokens", 10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Chunk("Some text.", tt.maxTokens, tt.overlap)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config.MaxTokens != 500 {
		t.Errorf("expected MaxTokens 500, got %d", config.MaxTokens)
	}
	if config.Overlap != 50 {
		t.Errorf("expected Overlap 50, got %d", config.Overlap)
	}
}
