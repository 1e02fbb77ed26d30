package search

import (
	"fmt"
	"strings"
)

// FormatChunk renders a chunk as "[title] (category) [Relevance: 82.0%]" plus its content.
func FormatChunk(c Chunk) string {
	title := c.Title
	if title == "" {
		title = "Information"
	}

	var sb strings.Builder
	sb.WriteString("[" + title + "]")
	if c.Category != "" {
		sb.WriteString(" (" + c.Category + ")")
	}
	fmt.Fprintf(&sb, " [Relevance: %.1f%%]", c.Score*100)
	sb.WriteString("\n")
	sb.WriteString(c.Content)
	return sb.String()
}

// Text joins the raw chunk contents. Relevance checks inspect this rather
// than the formatted block so the relevance percentages are not mistaken
// for metrics.
func (c Context) Text() string {
	parts := make([]string, len(c.Chunks))
	for i, ch := range c.Chunks {
		parts[i] = ch.Content
	}
	return strings.Join(parts, "\n\n")
}

// BuildContextPrompt returns the context block for the system prompt, or ""
// when nothing was retrieved.
func BuildContextPrompt(c Context) string {
	if c.ChunksUsed == 0 {
		return ""
	}

	header := fmt.Sprintf("\n\n=== RELEVANT CONTEXT (%d chunks, avg relevance: %.1f%%) ===\n", c.ChunksUsed, c.AverageScore*100)
	footer := "\n=== END CONTEXT ===\n\nUSE THIS CONTEXT to provide accurate, specific answers. Reference details from the context when relevant."

	parts := make([]string, len(c.Chunks))
	for i, ch := range c.Chunks {
		parts[i] = FormatChunk(ch)
	}
	return header + strings.Join(parts, "\n\n---\n\n") + footer
}
