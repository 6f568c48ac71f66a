package extract

import (
	"strings"
	"testing"
)

func TestCleanHTMLText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"strips tags", "<div><b>Senior</b> Engineer</div>", "Senior Engineer"},
		{"drops script blocks", "before<script>var x = 1;</script>after", "before after"},
		{"drops style blocks", "a<style>.c{color:red}</style>b", "a b"},
		{"decodes entities", "Tom&nbsp;&amp;&nbsp;Jerry &#39;24 &quot;inc&quot;", `Tom & Jerry '24 "inc"`},
		{"collapses whitespace", "  a \n\n b\t\tc  ", "a b c"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CleanHTMLText(tc.in)
			if got != tc.want {
				t.Fatalf("CleanHTMLText(%q) = %q, want %q", tc.in, got, tc.want)
			}
			if strings.ContainsAny(got, "<>") {
				t.Fatalf("output still contains markup: %q", got)
			}
			if strings.Contains(got, "  ") {
				t.Fatalf("output contains doubled whitespace: %q", got)
			}
		})
	}
}

func TestSmartTrim(t *testing.T) {
	short := "short text"
	if got := SmartTrim(short, 80); got != short {
		t.Fatalf("short input changed: %q", got)
	}

	long := strings.Repeat("word ", 100)
	got := SmartTrim(long, 50)
	if n := len([]rune(got)); n > 50 {
		t.Fatalf("trimmed output has %d runes, want <= 50", n)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("trimmed output missing ellipsis: %q", got)
	}

	// idempotent on already-trimmed output
	if again := SmartTrim(got, 50); again != got {
		t.Fatalf("SmartTrim not idempotent: %q vs %q", got, again)
	}
}

func TestNormalizeRoleText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"keeps plain title", "Senior Backend Engineer", "Senior Backend Engineer"},
		{"strips careers chrome", "Careers Senior Backend Engineer", "Senior Backend Engineer"},
		{"strips apply now", "Apply Now Data Analyst", "Data Analyst"},
		{"first pipe segment", "Platform Engineer | Acme Corp | Careers", "Platform Engineer"},
		{"first at segment", "SRE @ Initech", "SRE"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeRoleText(tc.in); got != tc.want {
				t.Fatalf("NormalizeRoleText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}

	if got := NormalizeRoleText(strings.Repeat("Engineer ", 30)); len([]rune(got)) > 80 {
		t.Fatalf("role exceeds 80 runes: %d", len([]rune(got)))
	}
}

func TestNormalizeCompanyText(t *testing.T) {
	cases := []struct {
		name  string
		value string
		link  string
		want  string
	}{
		{"keeps explicit value", "Acme Corp", "https://example.com/x", "Acme Corp"},
		{"derives from host", "", "https://www.acme-labs.io/jobs/1", "Acme Labs"},
		{"title cases lowercase", "acme corp", "", "Acme Corp"},
		{"preserves mixed case", "GitLab", "", "GitLab"},
		{"rejects blog host", "", "https://jobsblog.wordpress.com/p/1", ""},
		{"strips hiring chrome", "Acme Hiring", "", "Acme"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeCompanyText(tc.value, tc.link); got != tc.want {
				t.Fatalf("NormalizeCompanyText(%q, %q) = %q, want %q", tc.value, tc.link, got, tc.want)
			}
		})
	}
}

func TestNormalizeLocationText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain city pair", "Austin, TX", "Austin, TX"},
		{"strips label", "Location: Pune, India", "Pune, India"},
		{"cuts trailing sections", "Bengaluru Experience: 3+ years", "Bengaluru"},
		{"cuts page chrome", "Remote adsbygoogle push", "Remote"},
		{"first segment of multi", "Chennai  •  Hybrid  •  Full time", "Chennai"},
		{"role-only text rejected", "Software Engineer", ""},
		{"role with work mode kept", "Remote Software Engineer", "Remote Software Engineer"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeLocationText(tc.in); got != tc.want {
				t.Fatalf("NormalizeLocationText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestIsLikelyLocationText(t *testing.T) {
	yes := []string{"Remote", "Pune, India", "Hyderabad", "New York, NY", "Hybrid"}
	for _, s := range yes {
		if !IsLikelyLocationText(s) {
			t.Errorf("IsLikelyLocationText(%q) = false, want true", s)
		}
	}
	no := []string{"Software Engineer", "", "Apply Now"}
	for _, s := range no {
		if IsLikelyLocationText(s) {
			t.Errorf("IsLikelyLocationText(%q) = true, want false", s)
		}
	}
}

func TestCleanDescriptionNoise(t *testing.T) {
	in := "About the role\nWe value privacy and cookies on this site\nBuild APIs in Go\nSign in to continue\nShip features"
	got := CleanDescriptionNoise(in)
	if strings.Contains(got, "privacy") || strings.Contains(got, "Sign in") {
		t.Fatalf("noise lines survived: %q", got)
	}
	for _, want := range []string{"About the role", "Build APIs in Go", "Ship features"} {
		if !strings.Contains(got, want) {
			t.Fatalf("content line %q missing from %q", want, got)
		}
	}
}

func TestIsHTTPURL(t *testing.T) {
	valid := []string{"https://example.com/jobs/1", "http://acme.io"}
	for _, s := range valid {
		if !IsHTTPURL(s) {
			t.Errorf("IsHTTPURL(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "not a url", "ftp://example.com", "example.com/jobs"}
	for _, s := range invalid {
		if IsHTTPURL(s) {
			t.Errorf("IsHTTPURL(%q) = true, want false", s)
		}
	}
}
