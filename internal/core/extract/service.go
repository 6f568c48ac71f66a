package extract

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"jobpilot/internal/logger"
)

// structuredOverrideMinLength is how much labeled plain-text description a
// generic page needs before it overrides whatever the DOM pass found.
const structuredOverrideMinLength = 150

// pageContext carries everything a per-source extractor may want: the
// parsed document, both structured-data passes, and the page text.
type pageContext struct {
	doc        *goquery.Document
	jsonLD     StructuredJobData
	structured StructuredText
	jobLink    string
	bodyText   string // collapsed
	rawBody    string // line breaks preserved, for the noise filter
}

// sourceExtractor is one platform-specific field extraction strategy.
type sourceExtractor interface {
	extract(p *pageContext) Fields
}

var extractors = map[Source]sourceExtractor{
	SourceGreenhouse: greenhouseExtractor{},
	SourceLever:      leverExtractor{},
	SourceWorkday:    workdayExtractor{},
}

// firstNonEmpty evaluates candidates lazily and returns the first one that
// produces a non-blank string. Laziness matters: most candidates are DOM
// queries that never need to run once an earlier one hits.
func firstNonEmpty(candidates ...func() string) string {
	for _, candidate := range candidates {
		if v := strings.TrimSpace(candidate()); v != "" {
			return v
		}
	}
	return ""
}

func lit(s string) func() string {
	return func() string { return s }
}

type Service struct {
	log     *logger.Logger
	fetcher *Fetcher
}

func NewService() *Service {
	return &Service{
		log:     logger.New("ExtractService"),
		fetcher: NewFetcher(),
	}
}

// NewServiceWithFetcher lets tests point the service at local servers.
func NewServiceWithFetcher(fetcher *Fetcher) *Service {
	return &Service{
		log:     logger.New("ExtractService"),
		fetcher: fetcher,
	}
}

// ExtractFromLink fetches a job posting and reduces it to normalized
// fields with a confidence score. It never fails on thin pages; only
// fetch or parse errors surface as errors.
func (s *Service) ExtractFromLink(ctx context.Context, jobLink string) (*Result, error) {
	page, err := s.fetcher.FetchPage(ctx, jobLink)
	if err != nil {
		return nil, fmt.Errorf("fetch job page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, fmt.Errorf("parse job page: %w", err)
	}
	rawBody := doc.Find("body").Text()
	if rawBody == "" {
		// readability proxies return plain text without a body element
		rawBody = page.HTML
	}

	// The JSON-LD scan and the labeled-text pass are independent reads,
	// so they run side by side.
	var (
		jsonLD     StructuredJobData
		structured StructuredText
		wg         sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		jsonLD = ParseJSONLD(doc)
	}()
	go func() {
		defer wg.Done()
		structured = ParseStructuredFields(rawBody)
	}()
	source := DetectSource(jobLink)
	wg.Wait()

	p := &pageContext{
		doc:        doc,
		jsonLD:     jsonLD,
		structured: structured,
		jobLink:    jobLink,
		bodyText:   CleanHTMLText(rawBody),
		rawBody:    rawBody,
	}

	extractor, dedicated := extractors[source]
	if !dedicated {
		extractor = genericExtractor{}
	}
	fields := extractor.extract(p)

	// Labeled plain-text postings beat DOM heuristics on generic pages
	// when they carry a real description.
	if !dedicated && len(structured.Description) > structuredOverrideMinLength {
		fields.Description = CompactDescription(structured.Description, maxCompactDescription)
		fields.Skills = mergeSkills(fields.Skills, ExtractSkills(structured.Description), maxJobSkills)
	}

	if fields.Role == "" {
		fields.Role = RoleFromURLPath(jobLink)
	}
	if fields.CompanyName == "" {
		fields.CompanyName = NormalizeCompanyText("", jobLink)
	}
	if fields.Skills == nil {
		fields.Skills = []string{}
	}

	confidence := ScoreConfidence(fields)
	result := &Result{
		Fields:      fields,
		Source:      fmt.Sprintf("%s:%s", source, page.Source),
		Confidence:  confidence,
		NeedsReview: confidence < ReviewThreshold,
	}
	s.log.LogDebugf("extracted %q from %s (confidence %d)", fields.Role, result.Source, confidence)
	return result, nil
}
