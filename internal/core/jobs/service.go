package jobs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobpilot/internal/core/extract"
	"jobpilot/internal/logger"
	"jobpilot/internal/platform/postgres"
)

const (
	defaultPageSize      = 20
	maxPageSize          = 50
	maxLocationSuggested = 10
	maxStoredLocations   = 8
)

var (
	ErrNotFound      = errors.New("job not found")
	ErrInvalidStatus = errors.New("invalid status")
	ErrMissingFields = errors.New("companyName and role are required")
	ErrNoJobLink     = errors.New("job has no link")
)

// sortColumns whitelists client sort keys against real columns.
var sortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"companyName": "company_name",
	"role":        "role",
	"status":      "status",
	"appliedDate": "applied_date",
}

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewService(pg *postgres.Service) *Service {
	return &Service{
		db:  pg.DB(),
		log: logger.New("JobsService"),
	}
}

// CreateInput carries the fields a client may set on a new job.
type CreateInput struct {
	CompanyName    string     `json:"companyName"`
	Role           string     `json:"role"`
	Status         Status     `json:"status"`
	JobLink        string     `json:"jobLink"`
	Location       string     `json:"location"`
	Notes          string     `json:"notes"`
	RequiredSkills []string   `json:"requiredSkills"`
	SalaryMin      *int       `json:"salaryMin"`
	SalaryMax      *int       `json:"salaryMax"`
	AppliedDate    *time.Time `json:"appliedDate"`
}

func (s *Service) Create(userID uuid.UUID, input CreateInput) (*Job, error) {
	input.CompanyName = strings.TrimSpace(input.CompanyName)
	input.Role = strings.TrimSpace(input.Role)
	if input.CompanyName == "" || input.Role == "" {
		return nil, ErrMissingFields
	}
	if input.Status == "" {
		input.Status = StatusSaved
	}
	if !ValidStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	job := &Job{
		UserID:         userID,
		CompanyName:    input.CompanyName,
		Role:           input.Role,
		Status:         input.Status,
		JobLink:        strings.TrimSpace(input.JobLink),
		Location:       extract.NormalizeLocationText(input.Location),
		Notes:          input.Notes,
		RequiredSkills: input.RequiredSkills,
		SalaryMin:      input.SalaryMin,
		SalaryMax:      input.SalaryMax,
		AppliedDate:    input.AppliedDate,
	}
	if job.Status == StatusApplied && job.AppliedDate == nil {
		now := time.Now().UTC()
		job.AppliedDate = &now
	}
	if err := s.db.Create(job).Error; err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

// ListParams are the supported list filters, bound from the query string.
type ListParams struct {
	Status   string `query:"status"`
	Search   string `query:"search"`
	Location string `query:"location"`
	Sort     string `query:"sort"`
	Order    string `query:"order"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

type ListResult struct {
	Data       []Job `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func (s *Service) List(userID uuid.UUID, p ListParams) (*ListResult, error) {
	query := s.db.Model(&Job{}).Where("user_id = ?", userID)

	if p.Status != "" {
		if !ValidStatus(Status(p.Status)) {
			return nil, ErrInvalidStatus
		}
		query = query.Where("status = ?", p.Status)
	}
	if search := strings.TrimSpace(p.Search); search != "" {
		like := "%" + escapeLike(search) + "%"
		query = query.Where("(company_name ILIKE ? OR role ILIKE ? OR location ILIKE ?)", like, like, like)
	}
	if location := strings.TrimSpace(p.Location); location != "" {
		query = query.Where("location ILIKE ?", "%"+escapeLike(location)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}

	page, limit := normalizePage(p.Page, p.Limit)
	var data []Job
	err := query.
		Order(buildSortClause(p.Sort, p.Order)).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&data).Error
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ListResult{Data: data, Total: total, Page: page, Limit: limit, TotalPages: totalPages}, nil
}

func (s *Service) Get(userID, id uuid.UUID) (*Job, error) {
	var job Job
	err := s.db.Where("user_id = ? AND id = ?", userID, id).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &job, nil
}

// UpdateInput uses pointers so absent fields stay untouched.
type UpdateInput struct {
	CompanyName    *string    `json:"companyName"`
	Role           *string    `json:"role"`
	Status         *Status    `json:"status"`
	JobLink        *string    `json:"jobLink"`
	Location       *string    `json:"location"`
	Notes          *string    `json:"notes"`
	RequiredSkills []string   `json:"requiredSkills"`
	SalaryMin      *int       `json:"salaryMin"`
	SalaryMax      *int       `json:"salaryMax"`
	AppliedDate    *time.Time `json:"appliedDate"`
	ResumeFileName *string    `json:"resumeFileName"`
	ResumeText     *string    `json:"resumeText"`
	LastMatchScore *int       `json:"lastMatchScore"`
}

func (s *Service) Update(userID, id uuid.UUID, input UpdateInput) (*Job, error) {
	job, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if err := input.apply(job); err != nil {
		return nil, err
	}
	if err := s.db.Save(job).Error; err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

// apply copies the set fields onto job; nil fields are left untouched.
func (input UpdateInput) apply(job *Job) error {
	if input.CompanyName != nil {
		if v := strings.TrimSpace(*input.CompanyName); v != "" {
			job.CompanyName = v
		}
	}
	if input.Role != nil {
		if v := strings.TrimSpace(*input.Role); v != "" {
			job.Role = v
		}
	}
	if input.Status != nil {
		if !ValidStatus(*input.Status) {
			return ErrInvalidStatus
		}
		job.Status = *input.Status
		if job.Status == StatusApplied && job.AppliedDate == nil {
			now := time.Now().UTC()
			job.AppliedDate = &now
		}
	}
	if input.JobLink != nil {
		job.JobLink = strings.TrimSpace(*input.JobLink)
	}
	if input.Location != nil {
		job.Location = extract.NormalizeLocationText(*input.Location)
	}
	if input.Notes != nil {
		job.Notes = *input.Notes
	}
	if input.RequiredSkills != nil {
		job.RequiredSkills = input.RequiredSkills
	}
	if input.SalaryMin != nil {
		job.SalaryMin = input.SalaryMin
	}
	if input.SalaryMax != nil {
		job.SalaryMax = input.SalaryMax
	}
	if input.AppliedDate != nil {
		job.AppliedDate = input.AppliedDate
	}
	if input.ResumeFileName != nil {
		job.ResumeFileName = strings.TrimSpace(*input.ResumeFileName)
	}
	if input.ResumeText != nil {
		job.ResumeText = *input.ResumeText
	}
	if input.LastMatchScore != nil {
		job.LastMatchScore = input.LastMatchScore
	}
	return nil
}

func (s *Service) Delete(userID, id uuid.UUID) error {
	res := s.db.Where("user_id = ? AND id = ?", userID, id).Delete(&Job{})
	if res.Error != nil {
		return fmt.Errorf("delete job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Apply marks a job as applied (stamping the date on first transition) and
// hands back the link for the client to open.
func (s *Service) Apply(userID, id uuid.UUID) (*Job, error) {
	job, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if job.JobLink == "" {
		return nil, ErrNoJobLink
	}
	if job.Status == StatusSaved {
		job.Status = StatusApplied
	}
	if job.AppliedDate == nil {
		now := time.Now().UTC()
		job.AppliedDate = &now
	}
	if err := s.db.Save(job).Error; err != nil {
		return nil, fmt.Errorf("apply to job: %w", err)
	}
	return job, nil
}

// Stats returns per-status counts with every pipeline stage present, zero
// or not.
func (s *Service) Stats(userID uuid.UUID) (map[Status]int64, error) {
	type row struct {
		Status Status
		Count  int64
	}
	var rows []row
	err := s.db.Model(&Job{}).
		Select("status, count(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("job stats: %w", err)
	}

	stats := map[Status]int64{
		StatusSaved:     0,
		StatusApplied:   0,
		StatusInterview: 0,
		StatusRejected:  0,
		StatusOffer:     0,
	}
	for _, r := range rows {
		stats[r.Status] = r.Count
	}
	return stats, nil
}

// SuggestLocations merges the user's stored job locations with US state
// names (plus Remote) matching the prefix.
func (s *Service) SuggestLocations(userID uuid.UUID, prefix string) ([]string, error) {
	prefix = strings.TrimSpace(prefix)

	var stored []string
	query := s.db.Model(&Job{}).
		Distinct("location").
		Where("user_id = ? AND location <> ''", userID)
	if prefix != "" {
		query = query.Where("location ILIKE ?", escapeLike(prefix)+"%")
	}
	if err := query.Limit(maxStoredLocations).Pluck("location", &stored).Error; err != nil {
		return nil, fmt.Errorf("suggest locations: %w", err)
	}
	sort.Strings(stored)

	seen := make(map[string]bool, len(stored))
	suggestions := make([]string, 0, maxLocationSuggested)
	for _, loc := range stored {
		key := strings.ToLower(loc)
		if seen[key] {
			continue
		}
		seen[key] = true
		suggestions = append(suggestions, loc)
	}
	lowerPrefix := strings.ToLower(prefix)
	for _, state := range extract.USStateNames {
		if len(suggestions) >= maxLocationSuggested {
			break
		}
		if lowerPrefix != "" && !strings.HasPrefix(strings.ToLower(state), lowerPrefix) {
			continue
		}
		if seen[strings.ToLower(state)] {
			continue
		}
		seen[strings.ToLower(state)] = true
		suggestions = append(suggestions, state)
	}
	return suggestions, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func buildSortClause(sortKey, order string) string {
	column, ok := sortColumns[sortKey]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(order, "asc") {
		direction = "ASC"
	}
	return column + " " + direction
}

// escapeLike escapes LIKE metacharacters in user input.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
