package analyzer

import (
	"regexp"
	"strings"
)

const fence = "```"

var openingFence = regexp.MustCompile("```json?\\n?")

// StripCodeFences removes markdown code fences, optionally tagged json, from a model reply.
// Text without fences is returned unchanged.
func StripCodeFences(text string) string {
	if !strings.Contains(text, fence) {
		return text
	}
	text = openingFence.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, fence, "")
	return strings.TrimSpace(text)
}
