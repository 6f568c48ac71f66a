package extract

import (
	"strings"
	"testing"
)

func TestScoreConfidence(t *testing.T) {
	longDescription := strings.Repeat("responsible for building services ", 20)

	cases := []struct {
		name   string
		fields Fields
		want   int
	}{
		{
			name: "all fields present",
			fields: Fields{
				Role:        "Backend Engineer",
				CompanyName: "Acme",
				Location:    "Remote",
				Description: longDescription,
				Skills:      []string{"Go", "SQL", "Docker"},
			},
			want: 100,
		},
		{
			name:   "role only",
			fields: Fields{Role: "Backend Engineer"},
			want:   25,
		},
		{
			name:   "role and company",
			fields: Fields{Role: "Backend Engineer", CompanyName: "Acme"},
			want:   45,
		},
		{
			name:   "short description scores nothing",
			fields: Fields{Description: "short"},
			want:   0,
		},
		{
			name:   "two skills score nothing",
			fields: Fields{Skills: []string{"Go", "SQL"}},
			want:   0,
		},
		{
			name:   "nothing extracted",
			fields: Fields{},
			want:   0,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ScoreConfidence(tc.fields); got != tc.want {
				t.Fatalf("ScoreConfidence = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestReviewThreshold(t *testing.T) {
	// role+company+location = 60, below threshold; adding a real
	// description crosses it
	fields := Fields{Role: "Engineer", CompanyName: "Acme", Location: "Remote"}
	if score := ScoreConfidence(fields); score >= ReviewThreshold {
		t.Fatalf("score %d unexpectedly at or above threshold", score)
	}
	fields.Description = strings.Repeat("requirements and responsibilities ", 15)
	if score := ScoreConfidence(fields); score < ReviewThreshold {
		t.Fatalf("score %d unexpectedly below threshold", score)
	}
}
