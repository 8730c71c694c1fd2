package splitter

import (
	"fmt"
	"strconv"
	"strings"

	"ragstore/internal/domain"
	"ragstore/internal/port"
)

// PDFSplitter chunks text by a fixed character window with overlap,
// carrying the document metadata onto every chunk. When page markers from
// the PDF loader are present it records which pages each chunk spans.
type PDFSplitter struct {
	chunkSize     int
	chunkOverlap  int
	preservePages bool
}

func NewPDFSplitter(chunkSize, chunkOverlap int, preservePages bool) (*PDFSplitter, error) {
	if chunkSize <= chunkOverlap {
		return nil, fmt.Errorf("chunk size (%d) must be greater than chunk overlap (%d)", chunkSize, chunkOverlap)
	}
	return &PDFSplitter{
		chunkSize:     chunkSize,
		chunkOverlap:  chunkOverlap,
		preservePages: preservePages,
	}, nil
}

// Split windows the text in steps of chunkSize-chunkOverlap, so successive
// chunks share exactly chunkOverlap characters (the final chunk may be
// shorter).
func (s *PDFSplitter) Split(text string, metadata map[string]any) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	step := s.chunkSize - s.chunkOverlap

	for chunkID, start := 0, 0; start < len(text); chunkID, start = chunkID+1, start+step {
		end := start + s.chunkSize
		if end > len(text) {
			end = len(text)
		}
		chunkText := text[start:end]

		chunkMeta := make(map[string]any, len(metadata)+6)
		for k, v := range metadata {
			chunkMeta[k] = v
		}
		chunkMeta["chunk_id"] = chunkID
		chunkMeta["chunk_start"] = start
		chunkMeta["chunk_end"] = end
		chunkMeta["chunk_size"] = len(chunkText)

		if s.preservePages {
			if pages := pageNumbers(chunkText); len(pages) > 0 {
				chunkMeta["pages_spanned"] = pages
				chunkMeta["primary_page"] = pages[0]
			}
		}

		chunks = append(chunks, domain.Chunk{Text: chunkText, Metadata: chunkMeta})
	}
	return chunks, nil
}

// pageNumbers extracts page numbers from "--- Page N ---" marker lines.
func pageNumbers(text string) []int {
	var pages []int
	for _, line := range strings.Split(text, "\n") {
		if !strings.HasPrefix(line, "--- Page ") {
			continue
		}
		numText, _, ok := strings.Cut(strings.TrimPrefix(line, "--- Page "), " ---")
		if !ok {
			continue
		}
		num, err := strconv.Atoi(numText)
		if err != nil {
			continue
		}
		pages = append(pages, num)
	}
	return pages
}

// SplitDocuments runs a splitter over every document and concatenates the
// resulting chunks.
func SplitDocuments(s port.Splitter, docs []domain.Document) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	for i, doc := range docs {
		c, err := s.Split(doc.Text, doc.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to split document %d: %w", i, err)
		}
		chunks = append(chunks, c...)
	}
	return chunks, nil
}
