package service

import (
	"strings"
)

// imageTriggers start a prompt that asks for a picture. Longer phrases come
// first so the longest match is stripped.
var imageTriggers = []string{
	"generate an image of",
	"create an image of",
	"imagine an image of",
	"draw an image of",
	"generate a picture of",
	"create a picture of",
	"imagine a picture of",
	"paint a picture of",
	"draw a picture of",
	"make a picture of",
}

// imageVerbs are stripped from prompts that already go to image generation.
// On their own they are too common in ordinary text to route a message.
var imageVerbs = []string{
	"imagine",
	"paint",
	"draw",
}

// matchPrefix returns the entry of prefixes text starts with, matched on whole words.
func matchPrefix(text string, prefixes []string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, t := range prefixes {
		rest, ok := strings.CutPrefix(lower, t)
		if !ok {
			continue
		}
		if rest == "" || rest[0] == ' ' || rest[0] == ':' || rest[0] == ',' {
			return t, true
		}
	}
	return "", false
}

// IsImageRequest reports whether text asks for an image to be generated.
func IsImageRequest(text string) bool {
	_, ok := matchPrefix(text, imageTriggers)
	return ok
}

// CleanImagePrompt strips a leading trigger phrase or verb. Text without one is returned trimmed.
func CleanImagePrompt(text string) string {
	text = strings.TrimSpace(text)
	t, ok := matchPrefix(text, imageTriggers)
	if !ok {
		t, ok = matchPrefix(text, imageVerbs)
	}
	if !ok {
		return text
	}
	// Triggers are ASCII, so the byte length matches the original casing.
	rest := strings.TrimLeft(text[len(t):], " :,")
	return strings.TrimSpace(rest)
}
