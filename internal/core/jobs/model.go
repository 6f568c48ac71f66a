package jobs

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the application pipeline stage of a tracked job.
type Status string

const (
	StatusSaved     Status = "Saved"
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusRejected  Status = "Rejected"
	StatusOffer     Status = "Offer"
)

var allowedStatuses = map[Status]bool{
	StatusSaved:     true,
	StatusApplied:   true,
	StatusInterview: true,
	StatusRejected:  true,
	StatusOffer:     true,
}

// ValidStatus reports whether s is a known pipeline stage.
func ValidStatus(s Status) bool { return allowedStatuses[s] }

// StringSlice stores a []string as a JSON column.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *StringSlice) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported type %T for StringSlice", value)
	}
}

// Job is one tracked application.
type Job struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID   `gorm:"type:uuid;not null;index:idx_jobs_user_created,priority:1" json:"userId"`
	CompanyName    string      `gorm:"not null" json:"companyName"`
	Role           string      `gorm:"not null" json:"role"`
	Status         Status      `gorm:"type:varchar(20);default:Saved" json:"status"`
	JobLink        string      `json:"jobLink"`
	Location       string      `json:"location"`
	Notes          string      `gorm:"type:text" json:"notes"`
	RequiredSkills StringSlice `gorm:"type:jsonb" json:"requiredSkills"`
	SalaryMin      *int        `json:"salaryMin,omitempty"`
	SalaryMax      *int        `json:"salaryMax,omitempty"`
	AppliedDate    *time.Time  `json:"appliedDate,omitempty"`
	ResumeFileName string      `json:"resumeFileName,omitempty"`
	ResumeText     string      `gorm:"type:text" json:"resumeText,omitempty"`
	LastMatchScore *int        `json:"lastMatchScore,omitempty"`
	CreatedAt      time.Time   `gorm:"index:idx_jobs_user_created,priority:2,sort:desc" json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

func (j *Job) BeforeCreate(_ *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
