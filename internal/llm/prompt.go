package llm

import "strings"

// BuildPrompt assembles the user message: optional context, the request, and the JSON
// shape the model must answer with. The system prompt travels as its own message.
func BuildPrompt(request, contextContent string) string {
	var b strings.Builder

	if strings.TrimSpace(contextContent) != "" {
		b.WriteString("Relevant Context:\n")
		b.WriteString(strings.TrimSpace(contextContent))
		b.WriteString("\n\n")
	}

	b.WriteString("User Request:\n")
	b.WriteString(strings.TrimSpace(request))
	b.WriteString("\n\n")

	b.WriteString("Respond with a single JSON object in exactly this shape:\n")
	b.WriteString("{\n")
	b.WriteString("  \"project_alias\": \"<project alias or key>\",\n")
	b.WriteString("  \"summary\": \"<concise issue summary>\",\n")
	b.WriteString("  \"description\": \"<detailed description in plain text>\",\n")
	b.WriteString("  \"issue_type\": \"<Task, Bug, Story or Epic>\"\n")
	b.WriteString("}")
	return b.String()
}
