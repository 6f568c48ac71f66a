package extract

type workdayExtractor struct{}

func (workdayExtractor) extract(p *pageContext) Fields {
	doc := p.doc

	role := NormalizeRoleText(firstNonEmpty(
		lit(p.jsonLD.Role),
		func() string { return doc.Find(`[data-automation-id="jobPostingHeader"]`).First().Text() },
		func() string { return doc.Find("h1").First().Text() },
	))

	company := NormalizeCompanyText(firstNonEmpty(
		lit(p.jsonLD.CompanyName),
		func() string {
			content, _ := doc.Find(`meta[property="og:site_name"]`).First().Attr("content")
			return content
		},
	), p.jobLink)

	location := NormalizeLocationText(firstNonEmpty(
		lit(p.jsonLD.Location),
		func() string { return doc.Find(`[data-automation-id="locations"]`).First().Text() },
		func() string { return ExtractLocationFromBody(p.bodyText) },
	))

	description := SmartTrim(ExtractDescriptionBounded(firstNonEmpty(
		func() string { return doc.Find(`[data-automation-id="jobPostingDescription"]`).First().Text() },
		func() string { return doc.Find("main").First().Text() },
		lit(p.jsonLD.Description),
	)), maxFocusedDescription)

	return Fields{
		Role:        role,
		CompanyName: company,
		Location:    location,
		Description: description,
		Skills:      ExtractSkills(description),
	}
}
