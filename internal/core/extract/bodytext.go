package extract

import (
	"net/url"
	"regexp"
	"strings"
)

// USStateNames drives both the City, State body scan and the location
// suggestion endpoint. "Remote" rides along because users filter on it the
// same way they filter on a state.
var USStateNames = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado",
	"Connecticut", "Delaware", "Florida", "Georgia", "Hawaii", "Idaho",
	"Illinois", "Indiana", "Iowa", "Kansas", "Kentucky", "Louisiana",
	"Maine", "Maryland", "Massachusetts", "Michigan", "Minnesota",
	"Mississippi", "Missouri", "Montana", "Nebraska", "Nevada",
	"New Hampshire", "New Jersey", "New Mexico", "New York",
	"North Carolina", "North Dakota", "Ohio", "Oklahoma", "Oregon",
	"Pennsylvania", "Rhode Island", "South Carolina", "South Dakota",
	"Tennessee", "Texas", "Utah", "Vermont", "Virginia", "Washington",
	"West Virginia", "Wisconsin", "Wyoming", "Remote",
}

var (
	labeledLocationRe = regexp.MustCompile(`(?i)\b(?:job\s+|work\s+)?location\s*[:\-]\s*([A-Za-z][A-Za-z\s,./()-]{2,100})`)
	cityCountryRe     = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s[A-Z][a-z]+)*,\s*[A-Z][a-z]+(?:\s[A-Z][a-z]+)*)\b`)
	cityStateRe       = buildCityStateRe()
)

func buildCityStateRe() *regexp.Regexp {
	states := make([]string, 0, len(USStateNames))
	for _, name := range USStateNames {
		if name == "Remote" {
			continue
		}
		states = append(states, strings.ReplaceAll(name, " ", `\s`))
	}
	return regexp.MustCompile(`\b([A-Z][a-z]+(?:\s[A-Z][a-z]+)*,\s(?:[A-Z]{2}|` + strings.Join(states, "|") + `))\b`)
}

// ExtractLocationFromBody scans free-running page text for a location, in
// priority order: an explicit "Location:" label, a bare work-mode keyword,
// a capitalized "City, Country" pair, then "City, State" against the US
// state list.
func ExtractLocationFromBody(bodyText string) string {
	text := CleanHTMLText(bodyText)
	if text == "" {
		return ""
	}
	if m := labeledLocationRe.FindStringSubmatch(text); m != nil {
		if loc := NormalizeLocationText(m[1]); loc != "" {
			return loc
		}
	}
	if m := workModeRe.FindString(text); m != "" {
		return m
	}
	if m := cityCountryRe.FindStringSubmatch(text); m != nil {
		if loc := NormalizeLocationText(m[1]); loc != "" {
			return loc
		}
	}
	if m := cityStateRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

const maxStructuredDescription = 5000

var (
	structCompanyRe   = regexp.MustCompile(`(?i)\bCompany\s*:\s*([A-Za-z0-9&.,\-\s]{2,80}?)(?:\s+Role\s*:|\s+Degree\s*:|\s+Batches\s*:|\s+Experience\s*:)`)
	structRecruitRe   = regexp.MustCompile(`(?i)\b([A-Za-z][A-Za-z0-9&.\-\s]{1,60}?)\s+Recruitment\s+For\b`)
	structHiringRe    = regexp.MustCompile(`(?i)\b([A-Za-z][A-Za-z0-9&.\-\s]{1,60}?)\s+is\s+hiring\b`)
	structRoleRe      = regexp.MustCompile(`(?i)\bRole\s*:\s*(.{2,120}?)\s+(?:Degree|Batches?|Experience|Location)\s*:`)
	structLocationRe  = regexp.MustCompile(`(?i)\bLocation\s*:\s*([A-Za-z0-9,\-\s]{2,80}?)(?:\s+Job\s+Description|\s+Qualifications|\s+Roles\s+and\s+Responsibilities|\s+How\s+To\s+Apply|\s+Salary|\s+Experience)`)
	structDescRe      = regexp.MustCompile(`(?is)\bJob\s+Description\s*:\s*(.+?)\s+Qualifications(?:\s*&\s*Skills)?\s*:`)
	structQualsRe     = regexp.MustCompile(`(?is)\bQualifications(?:\s*&\s*Skills)?\s*:\s*(.+?)\s+Roles\s+and\s+Responsibilities\s*:`)
	structRespRe      = regexp.MustCompile(`(?is)\bRoles\s+and\s+Responsibilities\s*:\s*(.+?)\s+How\s+To\s+Apply\b`)
	pathSegmentNoise  = regexp.MustCompile(`(?i)\b(job|jobs|opening|openings|careers?|apply)\b`)
	pathSegmentDigits = regexp.MustCompile(`\b\d{3,}\b`)
)

// ParseStructuredFields recovers fields from labeled plain-text postings of
// the "Company: X Role: Y Location: Z Job Description: ..." shape that
// job-blast and aggregator pages use.
func ParseStructuredFields(bodyText string) StructuredText {
	text := CleanHTMLText(bodyText)
	if text == "" {
		return StructuredText{}
	}

	var out StructuredText
	if m := structCompanyRe.FindStringSubmatch(text); m != nil {
		out.CompanyName = strings.TrimSpace(m[1])
	} else if m := structRecruitRe.FindStringSubmatch(text); m != nil {
		out.CompanyName = strings.TrimSpace(m[1])
	} else if m := structHiringRe.FindStringSubmatch(text); m != nil {
		out.CompanyName = strings.TrimSpace(m[1])
	}
	if m := structRoleRe.FindStringSubmatch(text); m != nil {
		out.Role = strings.TrimSpace(m[1])
	}
	if m := structLocationRe.FindStringSubmatch(text); m != nil {
		out.Location = strings.TrimSpace(m[1])
	}

	sections := make([]string, 0, 3)
	if m := structDescRe.FindStringSubmatch(text); m != nil {
		sections = append(sections, strings.TrimSpace(m[1]))
	}
	if m := structQualsRe.FindStringSubmatch(text); m != nil {
		sections = append(sections, "Qualifications: "+strings.TrimSpace(m[1]))
	}
	if m := structRespRe.FindStringSubmatch(text); m != nil {
		sections = append(sections, "Roles and Responsibilities: "+strings.TrimSpace(m[1]))
	}
	if len(sections) > 0 {
		out.Description = SmartTrim(strings.Join(sections, " "), maxStructuredDescription)
	}
	return out
}

// RoleFromURLPath derives a role guess from the last path segment of the
// job link, used as a final fallback when the page yielded nothing.
func RoleFromURLPath(jobLink string) string {
	u, err := url.Parse(jobLink)
	if err != nil {
		return ""
	}
	last := ""
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			last = seg
		}
	}
	if last == "" {
		return ""
	}
	if unescaped, err := url.PathUnescape(last); err == nil {
		last = unescaped
	}
	cleaned := hostSepRe.Replace(last)
	cleaned = pathSegmentNoise.ReplaceAllString(cleaned, " ")
	cleaned = pathSegmentDigits.ReplaceAllString(cleaned, " ")
	return NormalizeRoleText(strings.Join(strings.Fields(cleaned), " "))
}
