package questiongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write true/false quiz statements about geography.

Rules:
- Each statement is one plain declarative sentence ending with a period.
- Each statement must be unambiguously true or false for an educated adult. Avoid trick wording, double negatives and facts that change often (populations, records).
- Mix true and false statements. False statements should sound plausible, for example by swapping a capital, river or country for a nearby one.
- Keep every statement under 150 characters.
- Do not repeat any statement from the "avoid" list, even reworded.
- Produce exactly the number of statements requested.`

// buildUserMessage constructs the user message for input. feedback, when
// non-empty, explains why the previous attempt was rejected.
func buildUserMessage(input Input, cfg Config, feedback string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	fmt.Fprintf(&b, "Number of statements: %d\n", input.Count)

	b.WriteString("\nAvoid:\n")
	b.WriteString(buildAvoid(input.Avoid, cfg.MaxAvoid))

	if feedback != "" {
		b.WriteString("\n\nYour previous answer was rejected: ")
		b.WriteString(feedback)
	}

	return b.String()
}

// buildAvoid formats statements to avoid, keeping the last max entries.
// Returns "None" when there are none.
func buildAvoid(statements []string, max int) string {
	if len(statements) == 0 {
		return "None"
	}
	if max > 0 && len(statements) > max {
		statements = statements[len(statements)-max:]
	}

	var b strings.Builder
	for i, s := range statements {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return strings.TrimRight(b.String(), "\n")
}

// slugify turns a topic into a set name: lower case, words joined by '-'.
func slugify(topic string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(topic) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
