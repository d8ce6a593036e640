package types

import "time"

// CandidateStatus is the position of a candidate in the hiring pipeline.
type CandidateStatus int

const (
	CandidateStatusScreening CandidateStatus = iota
	CandidateStatusInterview
	CandidateStatusHired
	CandidateStatusRejected
)

func (s CandidateStatus) Valid() bool {
	return s >= CandidateStatusScreening && s <= CandidateStatusRejected
}

func (s CandidateStatus) String() string {
	switch s {
	case CandidateStatusScreening:
		return "Screening"
	case CandidateStatusInterview:
		return "Interview"
	case CandidateStatusHired:
		return "Hired"
	case CandidateStatusRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

type Candidate struct {
	ID                 string          `db:"id" json:"id"`
	Name               string          `db:"name" json:"name"`
	Email              string          `db:"email" json:"email"`
	Phone              string          `db:"phone" json:"phone"`
	Education          string          `db:"education" json:"education"`
	Experience         string          `db:"experience" json:"experience"`
	AppliedDate        time.Time       `db:"applied_date" json:"applied_date"`
	Status             CandidateStatus `db:"status" json:"status"`
	ResumeURL          *string         `db:"resume_url" json:"resume_url"`
	CoverLetter        bool            `db:"cover_letter" json:"cover_letter"`
	Skills             string          `db:"skills" json:"skills"` // comma separated
	Rating             float64         `db:"rating" json:"rating"`
	AvatarURL          *string         `db:"avatar_url" json:"avatar_url"`
	InterviewScheduled bool            `db:"interview_scheduled" json:"interview_scheduled"`
	InterviewDate      *time.Time      `db:"interview_date" json:"interview_date"`
	Notes              *string         `db:"notes" json:"notes"`
	JobID              string          `db:"job_id" json:"job_id"`
	UpdatedAt          time.Time       `db:"updated_at" json:"updated_at"`
}

type CreateCandidateInput struct {
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Education   string          `json:"education"`
	Experience  string          `json:"experience"`
	Status      CandidateStatus `json:"status"`
	ResumeURL   *string         `json:"resume_url"`
	CoverLetter bool            `json:"cover_letter"`
	Skills      string          `json:"skills"`
	Rating      float64         `json:"rating"`
	AvatarURL   *string         `json:"avatar_url"`
	Notes       *string         `json:"notes"`
	JobID       string          `json:"job_id"`
}

// CandidateUpdate is a partial candidate update; nil fields are left unchanged.
type CandidateUpdate struct {
	Name               *string          `json:"name"`
	Email              *string          `json:"email"`
	Phone              *string          `json:"phone"`
	Education          *string          `json:"education"`
	Experience         *string          `json:"experience"`
	Status             *CandidateStatus `json:"status"`
	ResumeURL          *string          `json:"resume_url"`
	CoverLetter        *bool            `json:"cover_letter"`
	Skills             *string          `json:"skills"`
	Rating             *float64         `json:"rating"`
	AvatarURL          *string          `json:"avatar_url"`
	InterviewScheduled *bool            `json:"interview_scheduled"`
	InterviewDate      *time.Time       `json:"interview_date"`
	Notes              *string          `json:"notes"`
}

// CandidateFilter is decoded from the candidate search query string.
type CandidateFilter struct {
	Search    string   `form:"search"`
	Status    *int     `form:"status"`
	MinRating *float64 `form:"min_rating"`
	MaxRating *float64 `form:"max_rating"`
	Skip      uint64   `form:"skip"`
	Limit     uint64   `form:"limit"`
}

type BulkStatusUpdateInput struct {
	CandidateIDs []string        `json:"candidate_ids"`
	NewStatus    CandidateStatus `json:"new_status"`
}
