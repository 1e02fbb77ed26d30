package session

import (
	"strings"
)

const followUpRules = `FOLLOW-UP RULES:
1. If the user says "it", "them", "that" or "this", they mean the LAST thing the Assistant mentioned.
2. Look at the most recent Assistant message to resolve what the user is referring to.
3. If the user repeats a question, answer it again with different wording.
4. NEVER say "as I mentioned" or "like I said before".
5. Add complementary details instead of repeating the previous answer.

EXAMPLE:
Assistant: I built a study planner with Next.js and Supabase.
User: what database does it use?
Answer about the study planner's database (Supabase), not a different project.
`

// BuildConversationContext renders messages as a prompt block. Empty input
// yields an empty string.
func BuildConversationContext(messages []Message) string {
	if len(messages) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n\n=== CONVERSATION HISTORY ===\n")
	for _, msg := range messages {
		if msg.Role == RoleUser {
			sb.WriteString("User: ")
		} else {
			sb.WriteString("Assistant: ")
		}
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}
	sb.WriteString("=== END HISTORY ===\n\n")
	sb.WriteString(followUpRules)
	return sb.String()
}
