package match

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"jobpilot/internal/platform/llm"
)

type stubChatModel struct {
	reply string
	err   error
}

func (s stubChatModel) Generate(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	if s.err != nil {
		return nil, s.err
	}
	return schema.AssistantMessage(s.reply, nil), nil
}

func (s stubChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported in stub")
}

func newTestService(reply string) *Service {
	llmService := llm.NewServiceWithModel(llm.Config{Provider: "stub"}, stubChatModel{reply: reply})
	return NewService(llmService, nil, nil, 0)
}

const goodVerdict = `{
	"matchScore": 90,
	"summary": "Strong alignment with the role.",
	"strengths": ["production Python services", "PostgreSQL modelling"],
	"weakPoints": ["no Kubernetes exposure"],
	"missingSkills": ["kubernetes"],
	"improvements": ["quantify impact of past projects"]
}`

const resumeFixture = "Backend developer with five years of experience building REST services in Python, " +
	"backed by PostgreSQL and Docker, deployed to AWS. Strong testing culture and communication."

const jdFixture = "We need a backend engineer comfortable with Python, PostgreSQL, REST APIs, Docker and AWS. " +
	"You will own services end to end and collaborate across teams."

func TestAnalyzeFullCoverage(t *testing.T) {
	svc := newTestService(goodVerdict)
	got, err := svc.Analyze(context.Background(), Request{
		ResumeText:     resumeFixture,
		JobDescription: jdFixture,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	// every required skill inferred from the description is on the resume
	if got.Criteria.CoveragePercent != 100 {
		t.Fatalf("CoveragePercent = %d, want 100 (required %v, matched %v)",
			got.Criteria.CoveragePercent, got.Criteria.RequiredSkills, got.Criteria.MatchedSkills)
	}
	// 90*0.6 + 1.0*40 = 94
	if got.MatchScore != 94 {
		t.Errorf("MatchScore = %d, want 94", got.MatchScore)
	}
	if !got.Shortlisted {
		t.Error("Shortlisted = false, want true")
	}
	if got.Summary == "" || len(got.Strengths) == 0 {
		t.Errorf("model verdict not carried through: %+v", got)
	}
	if got.ExtractedFromLink {
		t.Error("ExtractedFromLink = true for a pasted description")
	}
}

func TestAnalyzeLowCoverageCapsScore(t *testing.T) {
	svc := newTestService(`{"matchScore": 95, "summary": "Great fit."}`)
	got, err := svc.Analyze(context.Background(), Request{
		ResumeText:     "Seasoned copywriter with a decade of brand storytelling, campaign planning and editorial team leadership experience.",
		JobDescription: jdFixture,
		RequiredSkills: []string{"python", "postgresql", "docker", "aws", "kubernetes"},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got.Criteria.CoveragePercent != 0 {
		t.Fatalf("CoveragePercent = %d, want 0", got.Criteria.CoveragePercent)
	}
	if got.MatchScore > lowCoverageCap {
		t.Errorf("MatchScore = %d, want capped at %d despite model score 95", got.MatchScore, lowCoverageCap)
	}
	if got.Shortlisted {
		t.Error("Shortlisted = true with zero coverage")
	}
}

func TestAnalyzeNoRequiredSkillsHalvesCoverage(t *testing.T) {
	svc := newTestService(`{"matchScore": 90, "summary": "Plausible fit."}`)
	got, err := svc.Analyze(context.Background(), Request{
		ResumeText:     resumeFixture,
		JobDescription: "We are hiring a florist to arrange seasonal displays, manage supplier deliveries and keep the boutique welcoming for walk-in customers.",
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	// nothing in the vocabulary to check, so coverage sits at the midpoint
	if got.Criteria.CoveragePercent != 50 {
		t.Fatalf("CoveragePercent = %d, want 50 (required %v)", got.Criteria.CoveragePercent, got.Criteria.RequiredSkills)
	}
	// 90*0.6 + 0.5*40 = 74
	if got.MatchScore != 74 {
		t.Errorf("MatchScore = %d, want 74", got.MatchScore)
	}
}

func TestAnalyzeRequiredSkillsExtendDescription(t *testing.T) {
	svc := newTestService(`{"matchScore": 90, "summary": "Solid."}`)
	got, err := svc.Analyze(context.Background(), Request{
		ResumeText:     resumeFixture,
		JobDescription: jdFixture,
		RequiredSkills: []string{"Kubernetes"},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	required := toSet(got.Criteria.RequiredSkills)
	if !required["kubernetes"] || !required["python"] {
		t.Fatalf("RequiredSkills = %v, want caller input merged with description skills", got.Criteria.RequiredSkills)
	}
	// the verdict above names no missing skills; the coverage gap still surfaces
	missing := toSet(got.MissingSkills)
	if !missing["kubernetes"] {
		t.Errorf("MissingSkills = %v, want kubernetes", got.MissingSkills)
	}
	if got.Criteria.CoveragePercent == 100 {
		t.Error("CoveragePercent = 100 with an unmatched required skill")
	}
}

func TestAnalyzeResumeTooShort(t *testing.T) {
	svc := newTestService(goodVerdict)
	_, err := svc.Analyze(context.Background(), Request{
		ResumeText:     "too short",
		JobDescription: jdFixture,
	})
	if !errors.Is(err, ErrResumeTooShort) {
		t.Fatalf("err = %v, want ErrResumeTooShort", err)
	}
}

func TestAnalyzeDescriptionMissing(t *testing.T) {
	svc := newTestService(goodVerdict)
	_, err := svc.Analyze(context.Background(), Request{ResumeText: resumeFixture})
	if !errors.Is(err, ErrDescriptionMissing) {
		t.Fatalf("err = %v, want ErrDescriptionMissing", err)
	}
}

func TestAnalyzeInvalidJobLink(t *testing.T) {
	svc := newTestService(goodVerdict)
	_, err := svc.Analyze(context.Background(), Request{
		ResumeText: resumeFixture,
		JobLink:    "not a link",
	})
	if !errors.Is(err, ErrInvalidJobLink) {
		t.Fatalf("err = %v, want ErrInvalidJobLink", err)
	}
}

func TestAnalyzeModelFailure(t *testing.T) {
	llmService := llm.NewServiceWithModel(llm.Config{Provider: "stub"}, stubChatModel{err: errors.New("quota exceeded")})
	svc := NewService(llmService, nil, nil, 0)
	if _, err := svc.Analyze(context.Background(), Request{
		ResumeText:     resumeFixture,
		JobDescription: jdFixture,
	}); err == nil {
		t.Fatal("expected model failure to surface")
	}
}

func TestParseModelVerdict(t *testing.T) {
	t.Run("fenced json", func(t *testing.T) {
		raw := "```json\n" + goodVerdict + "\n```"
		v := parseModelVerdict(raw)
		if v.MatchScore != 90 || v.Summary == "" {
			t.Fatalf("verdict = %+v", v)
		}
	})
	t.Run("prose around json", func(t *testing.T) {
		v := parseModelVerdict("Here is my analysis: " + goodVerdict + " Hope that helps!")
		if v.MatchScore != 90 {
			t.Fatalf("MatchScore = %v", v.MatchScore)
		}
	})
	t.Run("bare integer fallback", func(t *testing.T) {
		v := parseModelVerdict("I would rate this resume 72 out of 100.")
		if v.MatchScore != 72 {
			t.Fatalf("MatchScore = %v, want fallback integer", v.MatchScore)
		}
	})
	t.Run("nothing parseable", func(t *testing.T) {
		v := parseModelVerdict("no verdict")
		if v.MatchScore != 0 {
			t.Fatalf("MatchScore = %v, want 0", v.MatchScore)
		}
	})
}

func TestAdjustScore(t *testing.T) {
	cases := []struct {
		name     string
		model    float64
		coverage float64
		want     int
	}{
		{"full coverage", 90, 1.0, 94},
		{"zero coverage capped", 100, 0, lowCoverageCap},
		{"low coverage capped", 100, 0.35, lowCoverageCap},
		{"mid coverage capped", 100, 0.4, midCoverageCap},
		{"high coverage floor", 75, 0.8, highMatchFloor},
		{"weak model stays weak", 20, 1.0, 52},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := adjustScore(tc.model, tc.coverage); got != tc.want {
				t.Fatalf("adjustScore(%v, %v) = %d, want %d", tc.model, tc.coverage, got, tc.want)
			}
		})
	}
}

func TestNormalizeListCapsAtSix(t *testing.T) {
	items := []string{"a", "b", " ", "c", "d", "e", "f", "g"}
	got := normalizeList(items)
	if len(got) != maxListItems {
		t.Fatalf("normalizeList length = %d, want %d", len(got), maxListItems)
	}
}

func TestResolveDescriptionURLInDescriptionField(t *testing.T) {
	svc := newTestService(goodVerdict)
	req := Request{ResumeText: resumeFixture, JobDescription: "https://"}
	_, _, err := svc.resolveDescription(context.Background(), &req)
	// a bare scheme is not a URL, so it stays a too-short description
	if !errors.Is(err, ErrDescriptionMissing) {
		t.Fatalf("err = %v, want ErrDescriptionMissing", err)
	}
}
