package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var genericJobPage = `<html>
<head>
<title>Platform Engineer | Acme Careers</title>
<meta property="og:site_name" content="Acme">
<script type="application/ld+json">
{
	"@context": "https://schema.org",
	"@type": "JobPosting",
	"title": "Platform Engineer",
	"hiringOrganization": {"@type": "Organization", "name": "Acme"},
	"jobLocation": {"address": {"addressLocality": "Berlin", "addressCountry": "Germany"}},
	"description": "We are looking for a Platform Engineer to build and run our infrastructure. Responsibilities include operating Kubernetes clusters, writing Go services, and improving CI/CD pipelines. Requirements: strong experience with Docker, Kubernetes, PostgreSQL and AWS. You will work with a distributed team and own reliability for our core platform. Qualifications: 4+ years running production systems.",
	"skills": ["Go", "Kubernetes"]
}
</script>
</head>
<body>
<h1>Platform Engineer</h1>
<main>` + "We are looking for a Platform Engineer to build and run our infrastructure. Responsibilities include operating Kubernetes clusters, writing Go services, and improving CI/CD pipelines. Requirements: strong experience with Docker, Kubernetes, PostgreSQL and AWS. " + strings.Repeat("You will design, build and operate production services. ", 20) + `</main>
</body>
</html>`

func testService(t *testing.T, handler http.HandlerFunc) (*Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewServiceWithFetcher(NewFetcherWithProxyBase(srv.URL+"/", minDirectHTMLLength)), srv
}

func TestExtractFromLinkGenericPage(t *testing.T) {
	svc, srv := testService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(genericJobPage))
	})

	got, err := svc.ExtractFromLink(context.Background(), srv.URL+"/careers/platform-engineer")
	if err != nil {
		t.Fatalf("ExtractFromLink: %v", err)
	}

	if got.Role != "Platform Engineer" {
		t.Errorf("Role = %q", got.Role)
	}
	if got.CompanyName != "Acme" {
		t.Errorf("CompanyName = %q", got.CompanyName)
	}
	if got.Location != "Berlin, Germany" {
		t.Errorf("Location = %q", got.Location)
	}
	if len(got.Description) == 0 || len(got.Description) > maxCompactDescription {
		t.Errorf("Description length = %d", len(got.Description))
	}
	if strings.ContainsAny(got.Description, "<>") {
		t.Errorf("Description contains markup: %q", got.Description[:80])
	}
	if got.Source != "generic:direct" {
		t.Errorf("Source = %q, want generic:direct", got.Source)
	}
	if got.Confidence < ReviewThreshold || got.NeedsReview {
		t.Errorf("Confidence = %d NeedsReview = %v, want confident extraction", got.Confidence, got.NeedsReview)
	}
	if len(got.Skills) < 3 {
		t.Errorf("Skills = %v, want JSON-LD plus vocabulary merge", got.Skills)
	}
}

func TestExtractFromLinkThinPageStillSucceeds(t *testing.T) {
	page := "<html><body>\n" + strings.Repeat("<p>Sign in to continue browsing our site menu and navigation</p>\n", 60) + "</body></html>"
	svc, srv := testService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	})

	got, err := svc.ExtractFromLink(context.Background(), srv.URL+"/jobs/mystery-role")
	if err != nil {
		t.Fatalf("ExtractFromLink: %v", err)
	}
	if !got.NeedsReview {
		t.Errorf("NeedsReview = false for a thin page (confidence %d)", got.Confidence)
	}
	// URL-path fallback should still guess a role
	if got.Role == "" {
		t.Error("Role empty, want fallback from URL path")
	}
	if got.Skills == nil {
		t.Error("Skills is nil, want empty slice")
	}
}

func TestExtractFromLinkFetchFailure(t *testing.T) {
	svc, srv := testService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := svc.ExtractFromLink(context.Background(), srv.URL+"/jobs/1"); err == nil {
		t.Fatal("expected error when every fetch path fails")
	}
}

func TestExtractFromLinkStructuredTextOverride(t *testing.T) {
	body := "Company : Initech Role : QA Engineer Degree : Any Location : Chennai Job Description : " +
		strings.Repeat("Test the product and report defects across our web and mobile clients. ", 10) +
		" Qualifications : Python, testing Roles and Responsibilities : Own the regression suite end to end How To Apply : link below " +
		strings.Repeat("filler text to get past the direct length threshold. ", 40)
	page := "<html><body><p>" + body + "</p></body></html>"

	svc, srv := testService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	})

	got, err := svc.ExtractFromLink(context.Background(), srv.URL+"/openings/qa")
	if err != nil {
		t.Fatalf("ExtractFromLink: %v", err)
	}
	if got.Role != "QA Engineer" {
		t.Errorf("Role = %q", got.Role)
	}
	if got.CompanyName != "Initech" {
		t.Errorf("CompanyName = %q", got.CompanyName)
	}
	if got.Location != "Chennai" {
		t.Errorf("Location = %q", got.Location)
	}
	if !strings.Contains(got.Description, "Test the product") {
		t.Errorf("Description did not use the labeled text: %q", got.Description)
	}
}
