package loader

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"ragstore/internal/domain"
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([^&\n?#]+)`),
}

// YouTubeLoader produces one transcript document per video URL. Video info
// and transcripts are synthetic placeholders standing in for the YouTube
// Data API and a transcript service.
type YouTubeLoader struct {
	url string
}

func NewYouTubeLoader(url string) *YouTubeLoader {
	return &YouTubeLoader{url: url}
}

// ExtractVideoID pulls the video identifier out of the known URL shapes
// (watch, youtu.be, embed).
func ExtractVideoID(url string) (string, error) {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("could not extract video ID from URL: %s", url)
}

// VideoInfo returns placeholder metadata for a video.
func VideoInfo(videoID string) map[string]any {
	return map[string]any{
		"video_id":    videoID,
		"title":       fmt.Sprintf("Video %s", videoID),
		"channel":     "Sample Channel",
		"duration":    "10:30",
		"upload_date": time.Now().Format(time.RFC3339),
		"description": "Sample video description",
		"view_count":  1000,
		"like_count":  50,
		"language":    "en",
	}
}

// Transcript returns a fixed placeholder transcript with timestamps.
func Transcript(videoID string) []domain.TranscriptSegment {
	return []domain.TranscriptSegment{
		{Text: "Welcome to this video about startup advice and entrepreneurship.", Start: 0.0, Duration: 3.5},
		{Text: "Today we'll discuss the key factors that determine startup success.", Start: 3.5, Duration: 4.0},
		{Text: "First, let's talk about product market fit and why it's crucial.", Start: 7.5, Duration: 4.2},
		{Text: "Product market fit means customers are buying your product as fast as you can make it.", Start: 11.7, Duration: 5.1},
		{Text: "Without product market fit, even the best team will struggle to succeed.", Start: 16.8, Duration: 4.3},
		{Text: "Next, we need to consider the founding team and their experience.", Start: 21.1, Duration: 4.0},
		{Text: "A strong founding team with complementary skills is essential for startup success.", Start: 25.1, Duration: 5.2},
		{Text: "The team should include technical expertise, business acumen, and domain knowledge.", Start: 30.3, Duration: 5.5},
		{Text: "Market timing is another critical factor that many entrepreneurs overlook.", Start: 35.8, Duration: 4.7},
		{Text: "Even great products can fail if they're introduced too early or too late.", Start: 40.5, Duration: 4.8},
	}
}

// Load returns a single document holding the joined transcript text plus
// combined video and transcript metadata. The raw segments ride along in
// the metadata for timestamp-aware splitting.
func (l *YouTubeLoader) Load() ([]domain.Document, error) {
	videoID, err := ExtractVideoID(l.url)
	if err != nil {
		return nil, fmt.Errorf("failed to load YouTube video content: %w", err)
	}

	info := VideoInfo(videoID)
	segments := Transcript(videoID)

	parts := make([]string, len(segments))
	for i, segment := range segments {
		parts[i] = segment.Text
	}
	fullText := strings.Join(parts, " ")

	metadata := make(map[string]any, len(info)+7)
	for k, v := range info {
		metadata[k] = v
	}
	metadata["source"] = l.url
	metadata["source_type"] = "youtube"
	metadata["transcript_segments"] = segments
	metadata["total_segments"] = len(segments)
	metadata["transcript_length"] = len(fullText)
	metadata["loader"] = "youtube"
	metadata["processed_date"] = time.Now().Format(time.RFC3339)

	return []domain.Document{{Text: fullText, Metadata: metadata}}, nil
}
