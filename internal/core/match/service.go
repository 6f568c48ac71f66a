package match

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"jobpilot/internal/core/extract"
	"jobpilot/internal/logger"
	"jobpilot/internal/platform/llm"
	"jobpilot/internal/platform/redis"
	"jobpilot/prompts"
)

const (
	minResumeLength      = 80
	minDescriptionLength = 80
	maxListItems         = 6
	maxResumeEcho        = 20000

	// blend weights between the model verdict and deterministic coverage
	modelWeight    = 0.6
	coverageWeight = 40.0

	lowCoverageCap  = 58
	midCoverageCap  = 68
	highMatchFloor  = 78
	shortlistScore  = 70
	shortlistFactor = 0.5
)

var (
	ErrResumeTooShort     = errors.New("resumeText is too short to analyze")
	ErrDescriptionMissing = errors.New("provide a jobDescription or a jobLink")
	ErrInvalidJobLink     = errors.New("jobLink must be a valid http(s) URL")

	jsonBlockRe  = regexp.MustCompile(`(?s)\{.*\}`)
	firstIntRe   = regexp.MustCompile(`\d{1,3}`)
	cacheKeyBase = "match:"
)

type Service struct {
	log      *logger.Logger
	llm      *llm.Service
	extract  *extract.Service
	cache    *redis.Service
	cacheTTL int
}

func NewService(llmService *llm.Service, extractService *extract.Service, cache *redis.Service, cacheTTLSeconds int) *Service {
	return &Service{
		log:      logger.New("MatchService"),
		llm:      llmService,
		extract:  extractService,
		cache:    cache,
		cacheTTL: cacheTTLSeconds,
	}
}

// Analyze scores a resume against a job description. The model provides
// the qualitative verdict; a deterministic skill-coverage pass keeps its
// score honest.
func (s *Service) Analyze(ctx context.Context, req Request) (*Analysis, error) {
	req.ResumeText = collapse(req.ResumeText)
	if len(req.ResumeText) < minResumeLength {
		return nil, ErrResumeTooShort
	}

	jobDescription, extracted, err := s.resolveDescription(ctx, &req)
	if err != nil {
		return nil, err
	}

	cacheKey := analysisCacheKey(req.ResumeText, jobDescription)
	if s.cache != nil {
		var cached Analysis
		if err := s.cache.CacheGet(ctx, cacheKey, &cached); err == nil {
			cached.ExtractedFromLink = extracted
			return &cached, nil
		}
	}

	raw, err := s.llm.Generate(ctx, prompts.MatchSystemPrompt,
		prompts.BuildMatchUserPrompt(req.Role, req.CompanyName, req.ResumeText, jobDescription, req.RequiredSkills))
	if err != nil {
		return nil, fmt.Errorf("model analysis: %w", err)
	}
	verdict := parseModelVerdict(raw)

	// Caller-supplied skills extend the JD-derived vocabulary, they do
	// not replace it.
	required := lowerDedup(append(extract.AnalysisSkillsIn(jobDescription), req.RequiredSkills...))
	resumeSkills := toSet(extract.AnalysisSkillsIn(req.ResumeText))

	matched := make([]string, 0, len(required))
	missing := make([]string, 0, len(required))
	for _, skill := range required {
		if resumeSkills[skill] {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	// No vocabulary to check means coverage is unknown, not perfect.
	coverage := 0.5
	if len(required) > 0 {
		coverage = float64(len(matched)) / float64(len(required))
	}

	score := adjustScore(verdict.MatchScore, coverage)
	analysis := &Analysis{
		MatchScore:    score,
		Shortlisted:   score >= shortlistScore && coverage >= shortlistFactor,
		Summary:       strings.TrimSpace(verdict.Summary),
		Strengths:     normalizeList(verdict.Strengths),
		WeakPoints:    normalizeList(verdict.WeakPoints),
		MissingSkills: normalizeList(mergeMissing(verdict.MissingSkills, missing)),
		Improvements:  normalizeList(verdict.Improvements),
		Criteria: Criteria{
			RequiredSkills:  required,
			MatchedSkills:   matched,
			CoveragePercent: int(math.Round(coverage * 100)),
		},
		ExtractedFromLink: extracted,
	}

	if s.cache != nil {
		if err := s.cache.CacheSet(ctx, cacheKey, analysis, s.cacheTTL); err != nil {
			s.log.LogWarnf("cache analysis: %v", err)
		}
	}
	return analysis, nil
}

// resolveDescription settles which text to score against. A URL pasted
// into the description field is treated as a link.
func (s *Service) resolveDescription(ctx context.Context, req *Request) (string, bool, error) {
	description := collapse(req.JobDescription)
	link := strings.TrimSpace(req.JobLink)

	if link == "" && extract.IsHTTPURL(description) {
		link = description
		description = ""
	}
	if link != "" && !extract.IsHTTPURL(link) {
		return "", false, ErrInvalidJobLink
	}

	if len(description) >= minDescriptionLength {
		return description, false, nil
	}
	if link != "" {
		fetched, err := s.extract.DescriptionFromLink(ctx, link)
		if err != nil {
			return "", false, fmt.Errorf("fetch description from link: %w", err)
		}
		if fetched = collapse(fetched); len(fetched) >= minDescriptionLength {
			return fetched, true, nil
		}
	}
	return "", false, ErrDescriptionMissing
}

// adjustScore blends the model score with skill coverage and clamps the
// blend so a low-coverage resume cannot score as a strong match.
func adjustScore(modelScore, coverage float64) int {
	score := int(math.Round(clamp(modelScore, 0, 100)*modelWeight + coverage*coverageWeight))
	switch {
	case coverage < 0.4 && score > lowCoverageCap:
		score = lowCoverageCap
	case coverage < 0.5 && score > midCoverageCap:
		score = midCoverageCap
	case coverage >= 0.8 && modelScore >= 75 && score < highMatchFloor:
		score = highMatchFloor
	}
	return score
}

// parseModelVerdict pulls the JSON block out of a model reply, tolerating
// markdown fences and prose around it. If no JSON parses, the first bare
// integer becomes the score.
func parseModelVerdict(raw string) llmAnalysis {
	if block := jsonBlockRe.FindString(raw); block != "" {
		var verdict llmAnalysis
		if err := json.Unmarshal([]byte(block), &verdict); err == nil {
			return verdict
		}
	}
	verdict := llmAnalysis{Summary: "Automated score; the analysis response could not be fully parsed."}
	if m := firstIntRe.FindString(raw); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			verdict.MatchScore = clamp(float64(n), 0, 100)
		}
	}
	return verdict
}

func analysisCacheKey(resumeText, jobDescription string) string {
	sum := sha256.Sum256([]byte(resumeText + "\x00" + jobDescription))
	return cacheKeyBase + hex.EncodeToString(sum[:])
}

// mergeMissing folds the coverage-derived gaps into the model's list,
// skipping skills the model already named.
func mergeMissing(model, derived []string) []string {
	seen := make(map[string]bool, len(model))
	for _, item := range model {
		seen[strings.ToLower(collapse(item))] = true
	}
	out := model
	for _, skill := range derived {
		if !seen[skill] {
			out = append(out, skill)
		}
	}
	return out
}

func normalizeList(items []string) []string {
	out := make([]string, 0, maxListItems)
	for _, item := range items {
		if item = collapse(item); item == "" {
			continue
		}
		out = append(out, item)
		if len(out) >= maxListItems {
			break
		}
	}
	return out
}

func lowerDedup(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.ToLower(collapse(item))
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
