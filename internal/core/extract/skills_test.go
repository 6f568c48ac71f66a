package extract

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractSkills(t *testing.T) {
	text := "We use React, TypeScript and Node.js. Experience with PostgreSQL and Docker required. React experience is a plus."
	got := ExtractSkills(text)
	want := []string{"React", "TypeScript", "Node.js", "PostgreSQL", "Docker"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractSkills = %v, want %v", got, want)
	}
}

func TestExtractSkillsWordBoundaries(t *testing.T) {
	got := ExtractSkills("I know react and admire Reactivity in UIs")
	if len(got) != 1 || !strings.EqualFold(got[0], "react") {
		t.Fatalf("ExtractSkills = %v, want exactly one react match", got)
	}

	// "Java" must not match inside "JavaScript"
	got = ExtractSkills("JavaScript only, no JVM here")
	if !reflect.DeepEqual(got, []string{"JavaScript"}) {
		t.Fatalf("ExtractSkills = %v, want [JavaScript]", got)
	}
}

func TestExtractSkillsDedupCaseInsensitive(t *testing.T) {
	got := ExtractSkills("python PYTHON Python")
	if len(got) != 1 {
		t.Fatalf("ExtractSkills = %v, want single entry", got)
	}
}

func TestExtractSkillsEmpty(t *testing.T) {
	if got := ExtractSkills("no technologies mentioned here"); got != nil {
		t.Fatalf("ExtractSkills = %v, want nil", got)
	}
}

func TestAnalysisSkillsIn(t *testing.T) {
	text := "Built REST APIs in Python with PostgreSQL, strong communication and problem solving."
	got := AnalysisSkillsIn(text)
	for _, want := range []string{"python", "postgresql", "rest", "communication", "problem solving"} {
		if !contains(got, want) {
			t.Errorf("AnalysisSkillsIn missing %q, got %v", want, got)
		}
	}
	if contains(got, "java") {
		t.Errorf("AnalysisSkillsIn matched java without it being present: %v", got)
	}
}

func TestMergeSkills(t *testing.T) {
	got := mergeSkills([]string{"Go", "SQL"}, []string{"sql", "Docker", "", "Go"}, 25)
	want := []string{"Go", "SQL", "Docker"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("mergeSkills = %v, want %v", got, want)
	}

	capped := mergeSkills([]string{"a", "b", "c"}, []string{"d"}, 2)
	if len(capped) != 2 {
		t.Fatalf("mergeSkills cap ignored: %v", capped)
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
