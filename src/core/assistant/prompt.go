package assistant

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a concise assistant. Answer only from the dataset context and cite sources."

// buildPrompt stuffs the retrieved chunks into the user prompt.
func buildPrompt(query string, chunks []Chunk) string {
	contents := make([]string, len(chunks))
	for i, c := range chunks {
		contents[i] = c.Content
	}

	return fmt.Sprintf("Question:\n%s\n\nContext:\n%s", query, strings.Join(contents, "\n\n"))
}
