package splitter

import (
	"fmt"
	"strings"

	"ragstore/internal/domain"
)

// YouTubeSplitter chunks video transcripts. When transcript segments are
// present in the metadata it groups whole segments per chunk and carries
// first/last timestamps; otherwise it falls back to a fixed character
// window like the PDF splitter.
type YouTubeSplitter struct {
	chunkSize          int
	chunkOverlap       int
	preserveTimestamps bool
}

func NewYouTubeSplitter(chunkSize, chunkOverlap int, preserveTimestamps bool) (*YouTubeSplitter, error) {
	if chunkSize <= chunkOverlap {
		return nil, fmt.Errorf("chunk size (%d) must be greater than chunk overlap (%d)", chunkSize, chunkOverlap)
	}
	return &YouTubeSplitter{
		chunkSize:          chunkSize,
		chunkOverlap:       chunkOverlap,
		preserveTimestamps: preserveTimestamps,
	}, nil
}

func (s *YouTubeSplitter) Split(text string, metadata map[string]any) ([]domain.Chunk, error) {
	if s.preserveTimestamps {
		if segments, ok := metadata["transcript_segments"].([]domain.TranscriptSegment); ok && len(segments) > 0 {
			return s.splitBySegments(segments, metadata), nil
		}
	}
	return s.splitByText(text, metadata), nil
}

// splitBySegments accumulates transcript segments into a chunk until the
// next segment would exceed the size budget, then emits the chunk and
// seeds the next one with a trailing overlap substring.
func (s *YouTubeSplitter) splitBySegments(segments []domain.TranscriptSegment, metadata map[string]any) []domain.Chunk {
	var chunks []domain.Chunk
	var current string
	var currentSegments []domain.TranscriptSegment
	chunkID := 0

	for _, segment := range segments {
		candidate := segment.Text
		if current != "" {
			candidate = current + " " + segment.Text
		}

		if len(candidate) > s.chunkSize && current != "" {
			chunks = append(chunks, domain.Chunk{
				Text:     strings.TrimSpace(current),
				Metadata: s.segmentChunkMetadata(metadata, currentSegments, chunkID),
			})

			if overlap := s.overlapText(current); overlap != "" {
				current = overlap + " " + segment.Text
			} else {
				current = segment.Text
			}
			currentSegments = []domain.TranscriptSegment{segment}
			chunkID++
		} else {
			current = candidate
			currentSegments = append(currentSegments, segment)
		}
	}

	if current != "" {
		chunks = append(chunks, domain.Chunk{
			Text:     strings.TrimSpace(current),
			Metadata: s.segmentChunkMetadata(metadata, currentSegments, chunkID),
		})
	}
	return chunks
}

func (s *YouTubeSplitter) segmentChunkMetadata(base map[string]any, segments []domain.TranscriptSegment, chunkID int) map[string]any {
	meta := make(map[string]any, len(base)+6)
	for k, v := range base {
		// The raw segment list stays on the document, not on chunks.
		if k == "transcript_segments" {
			continue
		}
		meta[k] = v
	}
	meta["chunk_id"] = chunkID
	if len(segments) == 0 {
		return meta
	}

	start := segments[0].Start
	last := segments[len(segments)-1]
	end := last.Start + last.Duration

	meta["timestamp_start"] = start
	meta["timestamp_end"] = end
	meta["duration"] = end - start
	meta["segments_included"] = len(segments)
	meta["segment_range"] = fmt.Sprintf("%.1fs - %.1fs", start, end)
	return meta
}

func (s *YouTubeSplitter) overlapText(text string) string {
	if len(text) <= s.chunkOverlap {
		return text
	}
	return text[len(text)-s.chunkOverlap:]
}

// splitByText is the fallback character-window chunker for transcripts
// without segment data.
func (s *YouTubeSplitter) splitByText(text string, metadata map[string]any) []domain.Chunk {
	var chunks []domain.Chunk
	step := s.chunkSize - s.chunkOverlap

	for chunkID, start := 0, 0; start < len(text); chunkID, start = chunkID+1, start+step {
		end := start + s.chunkSize
		if end > len(text) {
			end = len(text)
		}
		chunkText := text[start:end]

		chunkMeta := make(map[string]any, len(metadata)+4)
		for k, v := range metadata {
			if k == "transcript_segments" {
				continue
			}
			chunkMeta[k] = v
		}
		chunkMeta["chunk_id"] = chunkID
		chunkMeta["chunk_start"] = start
		chunkMeta["chunk_end"] = end
		chunkMeta["chunk_size"] = len(chunkText)

		chunks = append(chunks, domain.Chunk{Text: chunkText, Metadata: chunkMeta})
	}
	return chunks
}
