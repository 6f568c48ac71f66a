package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxJSONLDSkills = 20

// ParseJSONLD walks every application/ld+json block in the document and
// collects fields from any node whose @type mentions JobPosting. Blocks
// that fail to parse are skipped, and for each field the first non-empty
// value wins. Publishers nest postings under @graph, arrays, and ad hoc
// wrappers, so the walk recurses through every object and array it sees.
func ParseJSONLD(doc *goquery.Document) StructuredJobData {
	var data StructuredJobData
	skillSeen := make(map[string]bool)

	var visit func(node any)
	visit = func(node any) {
		switch t := node.(type) {
		case []any:
			for _, item := range t {
				visit(item)
			}
		case map[string]any:
			if typeIsJobPosting(t["@type"]) {
				fillJobPosting(&data, t, skillSeen)
			}
			for _, v := range t {
				visit(v)
			}
		}
	}

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var payload any
		if err := json.Unmarshal([]byte(sel.Text()), &payload); err != nil {
			return
		}
		visit(payload)
	})
	return data
}

func fillJobPosting(data *StructuredJobData, node map[string]any, skillSeen map[string]bool) {
	if data.Role == "" {
		data.Role = CleanHTMLText(asString(node["title"]))
	}
	if data.CompanyName == "" {
		if name := orgName(node["hiringOrganization"]); name != "" {
			data.CompanyName = name
		} else {
			data.CompanyName = orgName(node["organization"])
		}
	}
	if data.Location == "" {
		data.Location = jobLocation(node)
	}
	if data.Description == "" {
		data.Description = CleanHTMLText(asString(node["description"]))
	}
	if len(data.Skills) < maxJSONLDSkills {
		for _, raw := range append(flattenStrings(node["skills"]), flattenStrings(node["qualifications"])...) {
			s := CleanHTMLText(raw)
			if s == "" {
				continue
			}
			key := strings.ToLower(s)
			if skillSeen[key] {
				continue
			}
			skillSeen[key] = true
			data.Skills = append(data.Skills, s)
			if len(data.Skills) >= maxJSONLDSkills {
				break
			}
		}
	}
}

func typeIsJobPosting(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.Contains(strings.ToLower(t), "jobposting")
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.Contains(strings.ToLower(s), "jobposting") {
				return true
			}
		}
	}
	return false
}

func orgName(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	return CleanHTMLText(asString(m["name"]))
}

// jobLocation joins address locality, region and country; when there is no
// usable address it falls back to jobLocationType ("TELECOMMUTE" pages).
func jobLocation(node map[string]any) string {
	loc := node["jobLocation"]
	if arr, ok := loc.([]any); ok && len(arr) > 0 {
		loc = arr[0]
	}
	if m, ok := loc.(map[string]any); ok {
		if addr, ok := m["address"].(map[string]any); ok {
			parts := make([]string, 0, 3)
			for _, key := range []string{"addressLocality", "addressRegion", "addressCountry"} {
				if v := CleanHTMLText(asString(addr[key])); v != "" {
					parts = append(parts, v)
				}
			}
			if len(parts) > 0 {
				return strings.Join(parts, ", ")
			}
		}
	}
	return CleanHTMLText(asString(node["jobLocationType"]))
}

func flattenStrings(v any) []string {
	switch t := v.(type) {
	case string:
		// comma separated lists show up as a single string
		return strings.Split(t, ",")
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, flattenStrings(item)...)
		}
		return out
	default:
		return nil
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
