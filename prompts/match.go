// Package prompts holds the LLM prompt text used by the analysis features.
package prompts

import (
	"fmt"
	"strings"
)

// Prompt design principles:
// 1. Assign a clear role
// 2. Use markdown for structure
// 3. Use "IMPORTANT" for critical instructions
// 4. Be explicit about the expected output

// MatchSystemPrompt frames the resume-versus-job comparison.
const MatchSystemPrompt = `# Your Role
You are an expert technical recruiter who evaluates how well a candidate resume fits a specific job description.

# Your Task
Compare the resume against the job description and produce a structured verdict.

# Critical Requirements
1. **Output Format**: Return ONLY a single JSON object, no prose, no markdown fences
2. **Grounding**: Base every point on text actually present in the resume or job description, NEVER guess
3. **Brevity**: Keep each bullet under 20 words

**IMPORTANT**: Return ONLY the JSON response. No explanations, no additional text.`

// matchResponseSchema is the exact JSON shape the model must produce.
// Kept as a literal string rather than a template because the braces would
// collide with placeholder syntax.
const matchResponseSchema = `{
  "matchScore": <integer 0-100>,
  "summary": "<2-3 sentence verdict>",
  "strengths": ["<up to 6 short bullets>"],
  "weakPoints": ["<up to 6 short bullets>"],
  "missingSkills": ["<up to 6 skills the job needs that the resume lacks>"],
  "improvements": ["<up to 6 concrete resume improvements>"]
}`

// BuildMatchUserPrompt assembles the user message for one analysis.
func BuildMatchUserPrompt(role, companyName, resumeText, jobDescription string, requiredSkills []string) string {
	var b strings.Builder
	if role != "" || companyName != "" {
		fmt.Fprintf(&b, "Target position: %s at %s\n\n", orUnknown(role), orUnknown(companyName))
	}
	fmt.Fprintf(&b, "# Resume\n%s\n\n# Job Description\n%s\n\n", resumeText, jobDescription)
	if len(requiredSkills) > 0 {
		fmt.Fprintf(&b, "The employer lists these required skills: %s\n\n", strings.Join(requiredSkills, ", "))
	}
	b.WriteString("Respond with exactly this JSON shape:\n")
	b.WriteString(matchResponseSchema)
	return b.String()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
