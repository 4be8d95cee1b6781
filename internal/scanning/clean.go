package scanning

import (
	"regexp"
	"strings"
)

var spaceRun = regexp.MustCompile(`[ \t]+`)

// cleanText normalizes transcribed OCR output: runs of spaces and tabs
// collapse to one space, lines are trimmed, and blank lines are dropped.
// Line breaks are preserved because the parser works line by line.
func cleanText(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
		if line == "" {
			continue
		}
		cleaned = append(cleaned, line)
	}
	return strings.Join(cleaned, "\n")
}

// stripFences removes a wrapping markdown code block, which vision models
// sometimes add despite instructions.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// imageFormat maps a MIME type to the format suffix the Gemini API expects
// (e.g. "png" rather than "image/png").
func imageFormat(contentType string) string {
	mime := strings.ToLower(strings.TrimSpace(contentType))
	switch mime {
	case "", "image/jpeg", "image/jpg":
		return "jpeg"
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	default:
		return strings.TrimPrefix(mime, "image/")
	}
}
