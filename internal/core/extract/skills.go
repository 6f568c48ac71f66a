package extract

import (
	"regexp"
	"strings"
)

const maxJobSkills = 25

var knownSkillRe = regexp.MustCompile(`(?i)\b(JavaScript|TypeScript|React|Next\.js|Node\.js|Express|MongoDB|SQL|PostgreSQL|MySQL|Python|Java|AWS|Azure|GCP|Docker|Kubernetes|REST|GraphQL|HTML|CSS|Tailwind|Git|CI/CD|Redux|Jest)\b`)

// analysisSkills is the broader vocabulary used when comparing a resume
// against a job description. Lowercase by convention.
var analysisSkills = []string{
	"javascript", "typescript", "react", "next.js", "node.js", "express",
	"mongodb", "sql", "postgresql", "mysql", "python", "java", "c++",
	"aws", "azure", "gcp", "docker", "kubernetes", "rest", "graphql",
	"html", "css", "tailwind", "redux", "git", "ci/cd", "jest",
	"testing", "communication", "problem solving", "data structures",
	"algorithms",
}

var analysisSkillRes = buildAnalysisSkillRes()

func buildAnalysisSkillRes() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(analysisSkills))
	for _, skill := range analysisSkills {
		pattern := `\b` + regexp.QuoteMeta(skill)
		// a trailing \b after "+" never matches, so only close on word chars
		if last := skill[len(skill)-1]; last != '+' {
			pattern += `\b`
		}
		res[skill] = regexp.MustCompile(pattern)
	}
	return res
}

// ExtractSkills matches free text against the known technology vocabulary,
// deduplicating while preserving first-seen order. Word boundaries keep
// "react" from matching inside "reactivity".
func ExtractSkills(text string) []string {
	matches := knownSkillRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	skills := make([]string, 0, len(matches))
	for _, m := range matches {
		key := strings.ToLower(m)
		if seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, m)
		if len(skills) >= maxJobSkills {
			break
		}
	}
	return skills
}

// AnalysisSkillsIn returns every analysis-vocabulary skill present in the
// text, in vocabulary order.
func AnalysisSkillsIn(text string) []string {
	lower := strings.ToLower(CleanHTMLText(text))
	if lower == "" {
		return nil
	}
	var found []string
	for _, skill := range analysisSkills {
		if analysisSkillRes[skill].MatchString(lower) {
			found = append(found, skill)
		}
	}
	return found
}

func mergeSkills(primary, extra []string, max int) []string {
	seen := make(map[string]bool, len(primary)+len(extra))
	merged := make([]string, 0, len(primary)+len(extra))
	for _, list := range [][]string{primary, extra} {
		for _, s := range list {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			key := strings.ToLower(s)
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, s)
			if len(merged) >= max {
				return merged
			}
		}
	}
	return merged
}
