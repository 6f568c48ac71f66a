package extract

import (
	"regexp"
	"strings"
)

const (
	maxCompactDescription    = 2200
	maxGreenhouseDescription = 2200
	maxFocusedDescription    = 8000
	jdKeywordWeight          = 220
)

var (
	noiseLineRe = regexp.MustCompile(`(?i)privacy|cookie|terms|equal opportunity|accessibility|copyright|sign in|create account|menu|navigation|adsbygoogle|click here|telegram group|whatsapp group|all jobs`)

	jdStartRe  = regexp.MustCompile(`(?i)\b(job description|responsibilities|what you will do|what you'll do|required skills|qualifications)\b`)
	jdSignalRe = regexp.MustCompile(`(?i)\b(responsibilit|requirement|qualification|experience|skills|about the role|what you'll do|what you will do)`)

	applicationFormMarkers = []*regexp.Regexp{
		regexp.MustCompile(`(?i)apply for this job`),
		regexp.MustCompile(`(?i)\* indicates a required field`),
		regexp.MustCompile(`(?i)submit application`),
	}

	descriptionChromeRe = regexp.MustCompile(`(?i)\b(back to jobs|apply now|apply here|click here|share this)\b`)
)

// CleanDescriptionNoise drops lines that are site chrome or legal
// boilerplate rather than posting content, then collapses the rest.
func CleanDescriptionNoise(text string) string {
	if text == "" {
		return ""
	}
	kept := make([]string, 0, 32)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || noiseLineRe.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	return CleanHTMLText(strings.Join(kept, "\n"))
}

// ExtractDescriptionBounded keeps the stretch of text from the first job
// description heading up to any application-form marker.
func ExtractDescriptionBounded(text string) string {
	cleaned := CleanDescriptionNoise(text)
	if cleaned == "" {
		return ""
	}
	if loc := jdStartRe.FindStringIndex(cleaned); loc != nil {
		cleaned = cleaned[loc[0]:]
	}
	return cutAtMarkers(cleaned, applicationFormMarkers)
}

// PickBestDescription scores each candidate by length plus a bonus per
// job-description keyword hit and returns the winner.
func PickBestDescription(candidates []string) string {
	best := ""
	bestScore := 0
	for _, candidate := range candidates {
		text := CleanDescriptionNoise(candidate)
		if text == "" {
			continue
		}
		score := len(text) + jdKeywordWeight*len(jdSignalRe.FindAllString(text, -1))
		if score > bestScore {
			best = text
			bestScore = score
		}
	}
	return best
}

// CompactDescription strips residual navigation chrome and bounds the text.
func CompactDescription(text string, max int) string {
	cleaned := descriptionChromeRe.ReplaceAllString(CleanDescriptionNoise(text), " ")
	return SmartTrim(cleaned, max)
}

func cutAtMarkers(s string, markers []*regexp.Regexp) string {
	for _, re := range markers {
		if loc := re.FindStringIndex(s); loc != nil {
			s = s[:loc[0]]
		}
	}
	return strings.TrimSpace(s)
}
