package extract

// Source identifies the hosting platform a job link resolves to.
type Source string

const (
	SourceGreenhouse Source = "greenhouse"
	SourceLever      Source = "lever"
	SourceWorkday    Source = "workday"
	SourceLinkedIn   Source = "linkedin"
	SourceGeneric    Source = "generic"
)

// Fields is the canonical extraction output. Every field is a normalized,
// length-bounded string; empty means "unknown", never raw HTML.
type Fields struct {
	Role        string   `json:"role"`
	CompanyName string   `json:"companyName"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}

// Result is what a caller gets back for one job link.
type Result struct {
	Fields
	// Source is "<platform>:<fetchMethod>", e.g. "greenhouse:direct".
	Source      string `json:"source"`
	Confidence  int    `json:"confidence"`
	NeedsReview bool   `json:"needsReview"`
}

// StructuredJobData holds fields recovered from JSON-LD JobPosting blocks.
type StructuredJobData struct {
	Role        string
	CompanyName string
	Location    string
	Description string
	Skills      []string
}

// StructuredText holds fields recovered from labeled plain-text postings
// ("Company: ... Role: ... Location: ..."), common in job-blast pages.
type StructuredText struct {
	Role        string
	CompanyName string
	Location    string
	Description string
}

// FetchedPage is the raw retrieval result for one link.
type FetchedPage struct {
	HTML   string
	Source string // "direct" or "proxy-fallback"
}
