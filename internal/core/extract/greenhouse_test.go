package extract

import (
	"strings"
	"testing"
)

const greenhouseJobPage = `<html>
<head>
<title>Backend Engineer - Acme</title>
<link rel="canonical" href="https://boards.greenhouse.io/acmelabs/jobs/4000001">
</head>
<body>
<div class="opening">
<h1>Back to jobs New Backend Engineer</h1>
<div class="location">Remote - US</div>
<div class="opening-content">
<p>Job Description: Acme Labs is building developer tooling used by thousands of teams.
As a Backend Engineer you will design and operate Go services backed by PostgreSQL and Redis,
own end to end delivery of features, and improve our CI/CD pipelines.
Requirements: 4+ years writing production services, experience with Docker and Kubernetes,
and strong SQL fundamentals. You care about observability and testing.</p>
<form id="application-form"><input name="first_name"><button>Submit application</button></form>
<p>Apply for this job * indicates a required field</p>
</div>
</div>
</body>
</html>`

func TestGreenhouseExtractor(t *testing.T) {
	p := &pageContext{
		doc:      mustDoc(t, greenhouseJobPage),
		jobLink:  "https://boards.greenhouse.io/acmelabs/jobs/4000001",
		bodyText: CleanHTMLText(mustDoc(t, greenhouseJobPage).Find("body").Text()),
	}
	fields := greenhouseExtractor{}.extract(p)

	if fields.Role != "Backend Engineer" {
		t.Errorf("Role = %q", fields.Role)
	}
	if fields.CompanyName != "Acmelabs" {
		t.Errorf("CompanyName = %q", fields.CompanyName)
	}
	if fields.Location != "Remote - US" {
		t.Errorf("Location = %q", fields.Location)
	}
	if strings.Contains(fields.Description, "Submit application") ||
		strings.Contains(fields.Description, "indicates a required field") {
		t.Errorf("application form chrome leaked into description: %q", fields.Description)
	}
	if !strings.Contains(fields.Description, "design and operate Go services") {
		t.Errorf("Description missing posting body: %q", fields.Description)
	}
	if len([]rune(fields.Description)) > maxGreenhouseDescription {
		t.Errorf("Description length %d exceeds bound", len([]rune(fields.Description)))
	}
	if !contains(fields.Skills, "PostgreSQL") || !contains(fields.Skills, "Docker") {
		t.Errorf("Skills = %v", fields.Skills)
	}
}

func TestSplitGreenhouseHeading(t *testing.T) {
	cases := []struct {
		in           string
		wantRole     string
		wantLocation string
	}{
		{"Back to jobs New Backend Engineer", "Backend Engineer", ""},
		{"Senior Data Engineer - Pune, India", "Senior Data Engineer", "Pune, India"},
		{"Platform Engineer Apply", "Platform Engineer", ""},
		{"Staff Engineer - Core Systems", "Staff Engineer - Core Systems", ""},
	}
	for _, tc := range cases {
		role, location := splitGreenhouseHeading(tc.in)
		if role != tc.wantRole || location != tc.wantLocation {
			t.Errorf("splitGreenhouseHeading(%q) = (%q, %q), want (%q, %q)",
				tc.in, role, location, tc.wantRole, tc.wantLocation)
		}
	}
}

func TestGreenhouseCompanyFromPath(t *testing.T) {
	doc := mustDoc(t, `<html><head><link rel="canonical" href="https://boards.greenhouse.io/initech/jobs/1"></head><body></body></html>`)
	if got := greenhouseCompanyFromPath(doc, "https://proxy.example/whatever"); got != "initech" {
		t.Fatalf("greenhouseCompanyFromPath = %q, want canonical link to win", got)
	}

	plain := mustDoc(t, "<html><body></body></html>")
	if got := greenhouseCompanyFromPath(plain, "https://boards.greenhouse.io/acme-labs/jobs/2"); got != "acme labs" {
		t.Fatalf("greenhouseCompanyFromPath = %q, want acme labs", got)
	}
}
