package match

// Request is one resume-versus-job scoring request. Exactly one of
// JobDescription or JobLink has to carry the posting.
type Request struct {
	ResumeText     string   `json:"resumeText"`
	JobDescription string   `json:"jobDescription"`
	JobLink        string   `json:"jobLink"`
	Role           string   `json:"role"`
	CompanyName    string   `json:"companyName"`
	RequiredSkills []string `json:"requiredSkills"`
}

// Criteria reports the deterministic skill-coverage side of the analysis.
type Criteria struct {
	RequiredSkills  []string `json:"requiredSkills"`
	MatchedSkills   []string `json:"matchedSkills"`
	CoveragePercent int      `json:"coveragePercent"`
}

// Analysis is the combined model + coverage verdict.
type Analysis struct {
	MatchScore        int      `json:"matchScore"`
	Shortlisted       bool     `json:"shortlisted"`
	Summary           string   `json:"summary"`
	Strengths         []string `json:"strengths"`
	WeakPoints        []string `json:"weakPoints"`
	MissingSkills     []string `json:"missingSkills"`
	Improvements      []string `json:"improvements"`
	Criteria          Criteria `json:"criteria"`
	ExtractedFromLink bool     `json:"extractedFromLink"`
	ResumeText        string   `json:"resumeText,omitempty"`
	ResumeFileName    string   `json:"resumeFileName,omitempty"`
}

// llmAnalysis is the JSON shape the model is asked to produce.
type llmAnalysis struct {
	MatchScore    float64  `json:"matchScore"`
	Summary       string   `json:"summary"`
	Strengths     []string `json:"strengths"`
	WeakPoints    []string `json:"weakPoints"`
	MissingSkills []string `json:"missingSkills"`
	Improvements  []string `json:"improvements"`
}
