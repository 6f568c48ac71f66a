package extract

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

const (
	maxRoleLength     = 80
	maxCompanyLength  = 60
	maxLocationLength = 60
)

var (
	scriptBlockRe  = regexp.MustCompile(`(?is)<(script|style|noscript)[^>]*>.*?</(script|style|noscript)>`)
	htmlTagRe      = regexp.MustCompile(`<[^>]+>`)
	entityReplacer = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&#39;", "'",
		"&quot;", `"`,
		" ", " ",
	)

	roleNoiseRe = regexp.MustCompile(`(?i)\b(apply now|careers?|jobs?|job openings?)\b`)
	roleSplitRe = regexp.MustCompile(`\s+[|@-]\s+`)

	blogHostRe     = regexp.MustCompile(`(?i)(jobdrives|kickcharm|offcampus|blog|wordpress|medium)`)
	companyNoiseRe = regexp.MustCompile(`(?i)\b(careers?|jobs?|job openings?|hiring)\b`)
	hostSepRe      = strings.NewReplacer("-", " ", "_", " ")

	locationLabelRe   = regexp.MustCompile(`(?i)^(?:job\s+|work\s+)?location\s*[:\-]\s*`)
	locationTailRe    = regexp.MustCompile(`(?i)\b(experience|salary|ctc|job description|qualifications|roles and responsibilities|how to apply)\b.*$`)
	locationChromeRe  = regexp.MustCompile(`(?i)\b(adsbygoogle|click here|apply now|submit application)\b.*$`)
	locationPipeRe    = regexp.MustCompile(`\s+\|\s+.*$`)
	locationSegmentRe = regexp.MustCompile(`\s{2,}|\s+•\s+|\s+\|\s+`)

	roleWordRe    = regexp.MustCompile(`(?i)\b(support|engineer|developer|associate|analyst|manager|intern|apprentice)\b`)
	workModeRe    = regexp.MustCompile(`(?i)\b(remote|hybrid|on-site|onsite)\b`)
	knownRegionRe = regexp.MustCompile(`(?i)\b(bengaluru|bangalore|hyderabad|noida|gurgaon|gurugram|pune|mumbai|chennai|delhi|india|usa|uk)\b`)
)

// CleanHTMLText strips markup, decodes the handful of entities that
// actually show up in job pages, and collapses all whitespace runs into
// single spaces.
func CleanHTMLText(s string) string {
	if s == "" {
		return ""
	}
	s = scriptBlockRe.ReplaceAllString(s, " ")
	s = htmlTagRe.ReplaceAllString(s, " ")
	s = entityReplacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// SmartTrim cleans s and bounds it to max runes, appending an ellipsis
// when it had to cut. Already-short input passes through unchanged.
func SmartTrim(s string, max int) string {
	text := CleanHTMLText(s)
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return strings.TrimRight(string(runes[:max-1]), " ") + "…"
}

// NormalizeRoleText strips apply/careers chrome, keeps the first segment
// of pipe/at/dash separated titles and bounds the result.
func NormalizeRoleText(value string) string {
	raw := CleanHTMLText(value)
	if raw == "" {
		return ""
	}
	stripped := strings.Join(strings.Fields(roleNoiseRe.ReplaceAllString(raw, " ")), " ")
	candidate := stripped
	for _, part := range roleSplitRe.Split(stripped, -1) {
		if part = strings.TrimSpace(part); part != "" {
			candidate = part
			break
		}
	}
	return SmartTrim(candidate, maxRoleLength)
}

// NormalizeCompanyText cleans an extracted company name, falling back to
// the link's hostname when no value was found. Aggregator/blog hosts never
// pass as company names.
func NormalizeCompanyText(value, link string) string {
	candidate := CleanHTMLText(value)
	if candidate == "" && link != "" && !isLikelyBlogHost(link) {
		candidate = companyFromHost(link)
	}
	candidate = strings.Join(strings.Fields(companyNoiseRe.ReplaceAllString(candidate, " ")), " ")
	if candidate != "" && candidate == strings.ToLower(candidate) {
		candidate = titleCase(candidate)
	}
	return SmartTrim(candidate, maxCompanyLength)
}

// NormalizeLocationText reduces a location-ish string to a concise place
// name. Strings that read as a role rather than a place come back empty.
func NormalizeLocationText(value string) string {
	text := CleanHTMLText(value)
	if text == "" {
		return ""
	}
	cleaned := locationLabelRe.ReplaceAllString(text, "")
	cleaned = locationTailRe.ReplaceAllString(cleaned, "")
	cleaned = locationChromeRe.ReplaceAllString(cleaned, "")
	cleaned = locationPipeRe.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)
	concise := cleaned
	if parts := locationSegmentRe.Split(cleaned, 2); len(parts) > 0 {
		concise = strings.TrimSpace(parts[0])
	}
	if looksLikeRoleOnly(concise) {
		return ""
	}
	return SmartTrim(concise, maxLocationLength)
}

// IsLikelyLocationText reports whether a string plausibly names a place:
// a work-mode keyword, a comma-separated pair, or a known region.
func IsLikelyLocationText(value string) bool {
	text := NormalizeLocationText(value)
	if text == "" {
		return false
	}
	return workModeRe.MatchString(text) || strings.Contains(text, ",") || knownRegionRe.MatchString(text)
}

func looksLikeRoleOnly(s string) bool {
	return roleWordRe.MatchString(s) && !workModeRe.MatchString(s) && !strings.Contains(s, ",")
}

func isLikelyBlogHost(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return blogHostRe.MatchString(strings.ToLower(u.Hostname()))
}

func companyFromHost(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host == "" {
		return ""
	}
	base := host
	if i := strings.IndexByte(host, '.'); i > 0 {
		base = host[:i]
	}
	return strings.TrimSpace(hostSepRe.Replace(base))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// IsHTTPURL reports whether s parses as an absolute http(s) URL.
func IsHTTPURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Hostname() != ""
}
