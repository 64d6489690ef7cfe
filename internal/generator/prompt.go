package generator

import (
	"fmt"
	"strings"
)

// systemPrompt is prepended (or sent as the system message) for all backends.
const systemPrompt = "You are a developer writing an authentic, realistic review for a dev tool. Write naturally and honestly."

// BuildPrompt renders the user prompt for a generation request.
// The request carries all randomized choices (tool, features, tone) so the
// same request always renders the same prompt.
func BuildPrompt(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a %s writing a review for a dev tool.\n\n", req.PersonaName)
	fmt.Fprintf(&b, "Tool: %s\n", req.Tool)
	fmt.Fprintf(&b, "Category: %s\n", req.Category)
	fmt.Fprintf(&b, "Your Rating: %d/5 stars\n\n", req.Rating)

	if req.PersonaDescription != "" {
		fmt.Fprintf(&b, "Persona Description: %s\n", req.PersonaDescription)
	}
	if len(req.PersonaTraits) > 0 {
		b.WriteString("Your characteristics:\n")
		for _, trait := range req.PersonaTraits {
			fmt.Fprintf(&b, "- %s\n", trait)
		}
	}

	b.WriteString("\nWrite a realistic, authentic review that:\n")
	fmt.Fprintf(&b, "1. Reflects your %d/5 star rating (be honest about pros and cons)\n", req.Rating)
	if len(req.Features) > 0 {
		fmt.Fprintf(&b, "2. Mentions specific features like: %s\n", strings.Join(req.Features, ", "))
	} else {
		b.WriteString("2. Mentions specific features of the tool\n")
	}
	fmt.Fprintf(&b, "3. Uses a %s tone\n", req.Tone)
	fmt.Fprintf(&b, "4. Is between %d-%d words\n", req.MinWords, req.MaxWords)
	b.WriteString("5. Includes your specific use case or context\n")
	b.WriteString("6. Sounds like a real developer wrote it (not overly formal or marketing-like)\n")

	b.WriteString("\nImportant:\n")
	b.WriteString("- If rating is 1-2: Focus on problems, bugs, missing features\n")
	b.WriteString("- If rating is 3: Balanced - mention both good and bad aspects\n")
	b.WriteString("- If rating is 4-5: Mostly positive but mention minor areas for improvement\n")
	fmt.Fprintf(&b, "- Use technical vocabulary appropriate for a %s\n", req.PersonaName)
	b.WriteString("- Be specific and concrete, avoid generic statements\n")

	b.WriteString("\nWrite ONLY the review text, no additional commentary:")

	return b.String()
}
