package gateway

import (
	"fmt"
	"strings"

	"consult/internal/persona"
	"consult/internal/thread"
)

// historyWindow is the fixed number of prior messages included in a
// conversational prompt.
const historyWindow = 6

// BuildConversationalPrompt renders the persona header, the recent
// history window as role-prefixed lines, and the new user turn.
func BuildConversationalPrompt(p persona.Persona, history []thread.Message, userText string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Expert Persona: %s (%s)", p.Name, p.Role))
	if p.OrgName != "" {
		sb.WriteString(fmt.Sprintf(" at %s", p.OrgName))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Domain: %s\n", p.Expertise))
	sb.WriteString("Conversation History:\n")

	recent := history
	if len(recent) > historyWindow {
		recent = recent[len(recent)-historyWindow:]
	}
	for _, msg := range recent {
		sb.WriteString(fmt.Sprintf("%s: %s\n", msg.Role, msg.Content))
	}

	sb.WriteString(fmt.Sprintf("User: %s", userText))
	return sb.String()
}

// BuildDirectedPrompt renders an explicit artifact-generation task for a
// suggestion the user clicked. The response contract is artifact-only.
func BuildDirectedPrompt(p persona.Persona, s thread.Suggestion) string {
	return fmt.Sprintf(`TASK: Generate the following artifact based on our previous discussion: [%s].
The artifact type is %s.
STRICT RULE: Only generate content relevant to the expert's field (%s).
Respond ONLY with the requested artifact wrapped in a code block.
Ensure high professional quality. For Mermaid, use valid syntax: NO PARENTHESES, ASCII ONLY.`,
		s.Title, s.Type, p.Expertise)
}

// DirectedTurnText is the user-visible message synthesized when a
// suggestion affordance is triggered.
func DirectedTurnText(s thread.Suggestion) string {
	return fmt.Sprintf("Please generate the [%s] you suggested as %s.", s.Title, s.Type)
}
