package types

import "time"

// QuestionStatusActive is the status assigned to new questions when none is given.
const QuestionStatusActive = "active"

// InterviewCategory groups interview questions under a suggested time allotment.
// A category belongs to exactly one job and never moves to another.
type InterviewCategory struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	DefaultTime int       `db:"default_time" json:"default_time"` // minutes
	JobID       string    `db:"job_id" json:"job_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	Questions []*InterviewQuestion `db:"-" json:"questions,omitempty"`
}

// InterviewQuestion is a single interview prompt. JobID duplicates the owning
// category's job and must always equal it.
type InterviewQuestion struct {
	ID         string    `db:"id" json:"id"`
	Text       string    `db:"text" json:"text"`
	Status     string    `db:"status" json:"status"`
	MustAsk    bool      `db:"must_ask" json:"must_ask"`
	CategoryID string    `db:"category_id" json:"category_id"`
	JobID      string    `db:"job_id" json:"job_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type CreateCategoryInput struct {
	JobID       string `json:"job_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DefaultTime int    `json:"default_time"`
}

type CreateQuestionInput struct {
	Text       string `json:"text"`
	Status     string `json:"status"`
	MustAsk    bool   `json:"must_ask"`
	CategoryID string `json:"category_id"`
	JobID      string `json:"job_id"`
}

// QuestionUpdate carries a partial update. Nil fields are left unchanged; a
// pointer to the zero value overwrites.
type QuestionUpdate struct {
	Text       *string `json:"text"`
	Status     *string `json:"status"`
	MustAsk    *bool   `json:"must_ask"`
	CategoryID *string `json:"category_id"`
}

func (u *QuestionUpdate) IsEmpty() bool {
	return u == nil || (u.Text == nil && u.Status == nil && u.MustAsk == nil && u.CategoryID == nil)
}

type CloneStructureInput struct {
	SourceJobID    string `json:"source_job_id"`
	CloneQuestions bool   `json:"clone_questions"`
}
