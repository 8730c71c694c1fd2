package splitter

import (
	"strings"
	"testing"

	"ragstore/internal/domain"
)

func TestNewPDFSplitterValidation(t *testing.T) {
	if _, err := NewPDFSplitter(100, 100, true); err == nil {
		t.Fatal("expected error when overlap equals chunk size")
	}
	if _, err := NewPDFSplitter(100, 200, true); err == nil {
		t.Fatal("expected error when overlap exceeds chunk size")
	}
	if _, err := NewPDFSplitter(100, 20, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPDFSplitterWindowing(t *testing.T) {
	const chunkSize, chunkOverlap = 1000, 200
	s, err := NewPDFSplitter(chunkSize, chunkOverlap, false)
	if err != nil {
		t.Fatal(err)
	}

	text := strings.Repeat("abcdefghij", 250) // 2500 chars
	chunks, err := s.Split(text, map[string]any{"source": "test.pdf"})
	if err != nil {
		t.Fatal(err)
	}

	// Starts advance by chunkSize-chunkOverlap, so ceil(L/800) chunks.
	step := chunkSize - chunkOverlap
	wantChunks := (len(text) + step - 1) / step
	if len(chunks) != wantChunks {
		t.Fatalf("expected %d chunks for %d chars, got %d", wantChunks, len(text), len(chunks))
	}

	for i, chunk := range chunks {
		if len(chunk.Text) > chunkSize {
			t.Errorf("chunk %d exceeds size budget: %d", i, len(chunk.Text))
		}
		if chunk.Metadata["chunk_id"] != i {
			t.Errorf("chunk %d has chunk_id %v", i, chunk.Metadata["chunk_id"])
		}
		if chunk.Metadata["source"] != "test.pdf" {
			t.Errorf("chunk %d lost document metadata", i)
		}
		if chunk.Metadata["chunk_size"] != len(chunk.Text) {
			t.Errorf("chunk %d records wrong size", i)
		}
	}

	for i := 0; i < len(chunks)-1; i++ {
		// The final chunk may be shorter than the overlap itself.
		if len(chunks[i+1].Text) < chunkOverlap {
			continue
		}
		tail := chunks[i].Text[len(chunks[i].Text)-chunkOverlap:]
		head := chunks[i+1].Text[:chunkOverlap]
		if tail != head {
			t.Errorf("chunks %d and %d do not overlap by exactly %d chars", i, i+1, chunkOverlap)
		}
	}
}

func TestPDFSplitterEmptyText(t *testing.T) {
	s, err := NewPDFSplitter(1000, 200, true)
	if err != nil {
		t.Fatal(err)
	}
	chunks, err := s.Split("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected no chunks for empty text, got %d", len(chunks))
	}
}

func TestPDFSplitterPageSpans(t *testing.T) {
	s, err := NewPDFSplitter(1000, 100, true)
	if err != nil {
		t.Fatal(err)
	}

	text := "--- Page 1 ---\nfirst page text\n--- Page 2 ---\nsecond page text"
	chunks, err := s.Split(text, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}

	pages, ok := chunks[0].Metadata["pages_spanned"].([]int)
	if !ok {
		t.Fatalf("pages_spanned has wrong type: %T", chunks[0].Metadata["pages_spanned"])
	}
	if len(pages) != 2 || pages[0] != 1 || pages[1] != 2 {
		t.Errorf("unexpected pages_spanned: %v", pages)
	}
	if chunks[0].Metadata["primary_page"] != 1 {
		t.Errorf("unexpected primary_page: %v", chunks[0].Metadata["primary_page"])
	}
}

func TestSplitDocuments(t *testing.T) {
	s, err := NewPDFSplitter(10, 2, false)
	if err != nil {
		t.Fatal(err)
	}

	docs := []domain.Document{
		{Text: "0123456789abcdef", Metadata: map[string]any{"source": "a.pdf"}},
		{Text: "short", Metadata: map[string]any{"source": "b.pdf"}},
	}
	chunks, err := SplitDocuments(s, docs)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks across documents, got %d", len(chunks))
	}
	if chunks[len(chunks)-1].Metadata["source"] != "b.pdf" {
		t.Error("chunks from second document carry wrong metadata")
	}
}
