package loader

import (
	"strings"
	"testing"

	"ragstore/internal/domain"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://www.youtube.com/watch?v=abc123&t=42s", "abc123", false},
		{"https://www.youtube.com/watch?list=PL123&v=abc123", "abc123", false},
		{"https://example.com/video/123", "", true},
		{"not a url", "", true},
	}

	for _, tt := range tests {
		got, err := ExtractVideoID(tt.url)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ExtractVideoID(%q): expected error", tt.url)
			}
			continue
		}
		if err != nil {
			t.Errorf("ExtractVideoID(%q): unexpected error: %v", tt.url, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestYouTubeLoaderLoad(t *testing.T) {
	docs, err := NewYouTubeLoader("https://youtu.be/abc123").Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}

	doc := docs[0]
	if !strings.Contains(doc.Text, "product market fit") {
		t.Error("transcript text missing expected content")
	}

	meta := doc.Metadata
	if meta["video_id"] != "abc123" {
		t.Errorf("expected video_id abc123, got %v", meta["video_id"])
	}
	if meta["source_type"] != "youtube" {
		t.Errorf("expected source_type youtube, got %v", meta["source_type"])
	}

	segments, ok := meta["transcript_segments"].([]domain.TranscriptSegment)
	if !ok {
		t.Fatalf("transcript_segments has wrong type: %T", meta["transcript_segments"])
	}
	if len(segments) != 10 {
		t.Errorf("expected 10 segments, got %d", len(segments))
	}
	if meta["total_segments"] != len(segments) {
		t.Errorf("total_segments (%v) disagrees with segments (%d)", meta["total_segments"], len(segments))
	}
	if meta["transcript_length"] != len(doc.Text) {
		t.Errorf("transcript_length (%v) disagrees with text length (%d)", meta["transcript_length"], len(doc.Text))
	}
}

func TestYouTubeLoaderBadURL(t *testing.T) {
	if _, err := NewYouTubeLoader("https://vimeo.com/123").Load(); err == nil {
		t.Fatal("expected error for unparseable URL")
	}
}
