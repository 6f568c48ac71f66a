package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	ghBackToJobsRe = regexp.MustCompile(`(?i)^back to jobs\s*`)
	ghBadgeRe      = regexp.MustCompile(`\b(New|Featured|Hot)\b\s*`)
	ghApplyTailRe  = regexp.MustCompile(`(?i)Apply\s*$`)
	ghGeoTailRe    = regexp.MustCompile(`(?i)\b(India|United States|Bengaluru|Bangalore)\b.*$`)

	ghDescriptionStartRe = regexp.MustCompile(`(?is)job description\s*[:\-]?\s*(.+)`)
	ghDescriptionEndRe   = regexp.MustCompile(`(?i)\b(How to Apply|About Us|If you are keen|Apply Link|Submit application)\b`)

	// form controls and application widgets embedded inside the posting body
	ghFormControlSelector = `script,style,noscript,form,button,input,select,textarea,[class*="application"],[id*="application"],[data-qa*="application"]`
)

type greenhouseExtractor struct{}

func (greenhouseExtractor) extract(p *pageContext) Fields {
	doc := p.doc

	heading := CleanHTMLText(firstNonEmpty(
		func() string { return doc.Find(`[data-board-role="opening-title"]`).First().Text() },
		func() string { return doc.Find(".opening h1").First().Text() },
		func() string { return doc.Find("h1").First().Text() },
	))
	headingRole, headingLocation := splitGreenhouseHeading(heading)

	role := NormalizeRoleText(firstNonEmpty(
		lit(p.jsonLD.Role),
		lit(headingRole),
	))

	company := NormalizeCompanyText(firstNonEmpty(
		func() string { return greenhouseCompanyFromPath(doc, p.jobLink) },
		lit(p.jsonLD.CompanyName),
		func() string { return doc.Find(".company-name").First().Text() },
	), "")

	location := NormalizeLocationText(firstNonEmpty(
		lit(p.jsonLD.Location),
		func() string { return doc.Find(`[data-board-role="opening-location"]`).First().Text() },
		func() string { return doc.Find(".location").First().Text() },
		func() string { return doc.Find(`[data-qa="location"]`).First().Text() },
		func() string { return ExtractLocationFromBody(p.bodyText) },
		lit(headingLocation),
	))

	jdBlock := firstNonEmpty(
		func() string { return greenhouseOpeningText(doc) },
		func() string { return CleanHTMLText(doc.Find("#content .opening").First().Text()) },
		func() string { return CleanHTMLText(doc.Find("main").First().Text()) },
	)
	base := ExtractDescriptionBounded(firstNonEmpty(
		lit(cutAtMarkers(jdBlock, applicationFormMarkers)),
		lit(p.jsonLD.Description),
	))
	candidate := base
	if m := ghDescriptionStartRe.FindStringSubmatch(base); m != nil {
		candidate = m[1]
	}
	if loc := ghDescriptionEndRe.FindStringIndex(candidate); loc != nil {
		candidate = candidate[:loc[0]]
	}
	description := SmartTrim(candidate, maxGreenhouseDescription)

	return Fields{
		Role:        role,
		CompanyName: company,
		Location:    location,
		Description: description,
		Skills:      ExtractSkills(description),
	}
}

// splitGreenhouseHeading scrubs board chrome off the h1 and, when the
// heading carries a trailing " - <place>" segment, peels it off as a
// location candidate.
func splitGreenhouseHeading(heading string) (role, location string) {
	role = ghBackToJobsRe.ReplaceAllString(heading, "")
	role = ghBadgeRe.ReplaceAllString(role, "")
	if loc := ghApplyTailRe.FindStringIndex(role); loc != nil {
		role = role[:loc[0]]
	}
	role = strings.TrimSpace(role)

	if parts := strings.Split(role, " - "); len(parts) >= 2 {
		tail := strings.TrimSpace(parts[len(parts)-1])
		if IsLikelyLocationText(tail) {
			location = tail
			role = strings.TrimSpace(strings.Join(parts[:len(parts)-1], " - "))
		}
	}
	// some boards glue the location onto the title with no separator
	role = strings.TrimSpace(ghGeoTailRe.ReplaceAllString(role, ""))
	return role, location
}

// greenhouseCompanyFromPath reads the board slug, the first path segment
// of boards.greenhouse.io/<company>/jobs/<id>, preferring the canonical
// link since proxies rewrite the request URL.
func greenhouseCompanyFromPath(doc *goquery.Document, jobLink string) string {
	raw := jobLink
	if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok && href != "" {
		raw = href
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			return strings.TrimSpace(hostSepRe.Replace(seg))
		}
	}
	return ""
}

// greenhouseOpeningText returns the opening body with embedded application
// form controls removed. Works on a clone so later selectors still see the
// full document.
func greenhouseOpeningText(doc *goquery.Document) string {
	opening := doc.Find(`.opening-content, [data-board-role="opening-content"], #content`).First()
	if opening.Length() == 0 {
		return ""
	}
	clone := opening.Clone()
	clone.Find(ghFormControlSelector).Remove()
	return CleanHTMLText(clone.Text())
}
