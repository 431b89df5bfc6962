package model

import (
	"time"
)

// PhaseCount is the number of canonical workflow phases every contract
// carries once fully migrated.
const PhaseCount = 6

// PhaseStatus is derived from task completion, never set directly.
type PhaseStatus string

const (
	PhasePending    PhaseStatus = "pending"
	PhaseInProgress PhaseStatus = "in_progress"
	PhaseCompleted  PhaseStatus = "completed"
)

// Phase is one of the six fixed workflow stages of a contract.
type Phase struct {
	ID          string      `gorm:"primaryKey" json:"id"`
	ContractID  string      `gorm:"index:idx_contract_phase,unique" json:"contract_id"`
	Number      int         `gorm:"column:phase_number;index:idx_contract_phase,unique" json:"phase_number"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Status      PhaseStatus `json:"status"`
	StartDate   *time.Time  `json:"start_date,omitempty"`
	EndDate     *time.Time  `json:"end_date,omitempty"`
	Progress    int         `json:"progress"` // 0-100, derived from tasks
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Tasks []Task `gorm:"foreignKey:PhaseID" json:"tasks"`
}

func (Phase) TableName() string { return "phases" }

// Task is a unit of work within a phase. The lifecycle engine never
// reorders or deletes tasks; phase-management mutates Completed,
// AssignedTo and Notes.
type Task struct {
	ID              string     `gorm:"primaryKey" json:"id"`
	PhaseID         string     `gorm:"index" json:"phase_id"`
	Text            string     `json:"text"`
	LocalizationKey string     `gorm:"column:localization_key" json:"localization_key,omitempty"`
	Completed       bool       `json:"completed"`
	AssignedTo      *string    `gorm:"column:assigned_to" json:"assigned_to,omitempty"`
	DueDate         *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (Task) TableName() string { return "tasks" }
