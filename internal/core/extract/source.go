package extract

import (
	"net/url"
	"strings"
)

// DetectSource classifies a job link by its hostname. Anything the service
// has no dedicated parser for comes back as SourceGeneric.
func DetectSource(jobLink string) Source {
	u, err := url.Parse(strings.TrimSpace(jobLink))
	if err != nil {
		return SourceGeneric
	}
	host := strings.ToLower(u.Hostname())
	switch {
	case strings.Contains(host, "greenhouse.io"):
		return SourceGreenhouse
	case strings.Contains(host, "lever.co"):
		return SourceLever
	case strings.Contains(host, "myworkdayjobs.com"), strings.Contains(host, "workday"):
		return SourceWorkday
	case strings.Contains(host, "linkedin.com"):
		return SourceLinkedIn
	default:
		return SourceGeneric
	}
}
