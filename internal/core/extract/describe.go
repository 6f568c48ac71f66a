package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobpilot/internal/utils/markdown"
)

const (
	minGreenhouseNarrowed  = 120
	minTargetedDescription = 500
)

// DescriptionFromLink fetches only the job description text for a link,
// used by the match scorer when the caller supplies a URL instead of a
// pasted description. Cheaper than a full extraction: smaller size cap,
// shorter timeout, no field normalization.
func (s *Service) DescriptionFromLink(ctx context.Context, jobLink string) (string, error) {
	isGreenhouse := DetectSource(jobLink) == SourceGreenhouse

	if html, err := s.fetcher.get(ctx, s.fetcher.description, jobLink, maxDescriptionBytes); err == nil {
		if isGreenhouse {
			if narrowed := greenhouseNarrowedDescription(html); len(narrowed) > minGreenhouseNarrowed {
				return SmartTrim(narrowed, maxFocusedDescription), nil
			}
		}
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
			targeted := PickBestDescription([]string{
				doc.Find(`[data-qa="job-description"]`).First().Text(),
				doc.Find(`[data-automation-id="jobPostingDescription"]`).First().Text(),
				doc.Find(`[class*="job-description"]`).First().Text(),
				doc.Find(`[class*="description"]`).First().Text(),
				doc.Find("main").First().Text(),
				doc.Find("article").First().Text(),
			})
			if len(targeted) > minTargetedDescription {
				return SmartTrim(targeted, maxFocusedDescription), nil
			}
			// weak DOM signal: render the whole page to markdown and let
			// the noise filter reduce it
			if md, err := markdown.FromHTML(html); err == nil {
				if text := CleanDescriptionNoise(md); len(text) > minTargetedDescription {
					return SmartTrim(text, maxFocusedDescription), nil
				}
			}
		}
	} else {
		s.log.LogDebugf("direct description fetch failed for %s: %v", jobLink, err)
	}

	text, err := s.fetcher.get(ctx, s.fetcher.proxy, s.fetcher.proxyURL(jobLink), maxDescriptionBytes)
	if err != nil {
		return "", fmt.Errorf("fetch job description: %w", err)
	}
	if isGreenhouse {
		if narrowed := ExtractDescriptionBounded(text); len(narrowed) > minGreenhouseNarrowed {
			return SmartTrim(narrowed, maxFocusedDescription), nil
		}
	}
	return SmartTrim(PickBestDescription([]string{text}), maxFocusedDescription), nil
}

func greenhouseNarrowedDescription(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return ExtractDescriptionBounded(greenhouseOpeningText(doc))
}
