package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var rawLocationLineRe = regexp.MustCompile(`(?i)location\s*[:\-]\s*([^\n|]{2,80})`)

// genericExtractor handles everything without a dedicated parser,
// including linkedin pages (which rarely survive a direct fetch anyway and
// arrive as readability-proxy text).
type genericExtractor struct{}

func (genericExtractor) extract(p *pageContext) Fields {
	doc := p.doc

	metaTitle := firstNonEmpty(
		metaContent(doc, `meta[property="og:title"]`),
		metaContent(doc, `meta[name="title"]`),
		metaContent(doc, `meta[name="twitter:title"]`),
		func() string { return doc.Find("title").First().Text() },
	)

	role := NormalizeRoleText(firstNonEmpty(
		lit(p.structured.Role),
		lit(p.jsonLD.Role),
		func() string { return doc.Find("h1").First().Text() },
		lit(metaTitle),
		func() string { return RoleFromURLPath(p.jobLink) },
	))

	company := NormalizeCompanyText(firstNonEmpty(
		lit(p.structured.CompanyName),
		lit(p.jsonLD.CompanyName),
		func() string {
			// og:site_name on an aggregator names the aggregation site
			if isLikelyBlogHost(p.jobLink) {
				return ""
			}
			return firstNonEmpty(
				metaContent(doc, `meta[property="og:site_name"]`),
				metaContent(doc, `meta[name="author"]`),
			)
		},
	), p.jobLink)

	location := NormalizeLocationText(firstNonEmpty(
		lit(p.structured.Location),
		lit(p.jsonLD.Location),
		func() string { return doc.Find(`[class*="location"]`).First().Text() },
		func() string { return doc.Find(`[data-test*="location"]`).First().Text() },
		func() string { return doc.Find(`li:contains("Location")`).First().Text() },
		func() string {
			if m := rawLocationLineRe.FindStringSubmatch(p.rawBody); m != nil {
				return m[1]
			}
			return ""
		},
		func() string { return ExtractLocationFromBody(p.bodyText) },
	))

	candidates := []string{
		p.jsonLD.Description,
		firstNonEmpty(
			metaContent(doc, `meta[name="description"]`),
			metaContent(doc, `meta[property="og:description"]`),
		),
		doc.Find("main").First().Text(),
		doc.Find("article").First().Text(),
		doc.Find(`[class*="description"]`).First().Text(),
		doc.Find(`[id*="description"]`).First().Text(),
		doc.Find(`[class*="job-description"]`).First().Text(),
		doc.Find(`[class*="requirements"]`).First().Text(),
		doc.Find(`[id*="requirements"]`).First().Text(),
		p.rawBody,
	}
	description := CompactDescription(PickBestDescription(candidates), maxCompactDescription)

	return Fields{
		Role:        role,
		CompanyName: company,
		Location:    location,
		Description: description,
		Skills:      mergeSkills(p.jsonLD.Skills, ExtractSkills(description), maxJobSkills),
	}
}

func metaContent(doc *goquery.Document, selector string) func() string {
	return func() string {
		content, _ := doc.Find(selector).First().Attr("content")
		return strings.TrimSpace(content)
	}
}
