package video

import "regexp"

// youtubeIDRegex matches the 11-character video id in the canonical watch,
// embed, and short-link URL shapes.
var youtubeIDRegex = regexp.MustCompile(`(?:youtube\.com/(?:watch\?v=|embed/)|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// YouTubeVideoID extracts the video id from a YouTube URL.
// Returns "" when the URL does not match any supported shape.
func YouTubeVideoID(url string) string {
	if url == "" {
		return ""
	}
	match := youtubeIDRegex.FindStringSubmatch(url)
	if match == nil {
		return ""
	}
	return match[1]
}

// YouTubeEmbedURL converts a YouTube URL into its embeddable form.
// Returns "" for URLs no id can be extracted from.
func YouTubeEmbedURL(url string) string {
	id := YouTubeVideoID(url)
	if id == "" {
		return ""
	}
	return "https://www.youtube.com/embed/" + id
}

// IsValidYouTubeURL reports whether an id can be extracted from the URL.
// Purely syntactic; no network check is performed.
func IsValidYouTubeURL(url string) bool {
	return YouTubeVideoID(url) != ""
}
