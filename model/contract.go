package model

import (
	"time"
)

// ContractStatus is the lifecycle status of a contract. It is a closed set:
// the expiry classifier switches exhaustively over it, so adding a status
// requires reviewing every consumer.
type ContractStatus string

const (
	StatusDraft      ContractStatus = "draft"
	StatusActive     ContractStatus = "active"
	StatusExpiring   ContractStatus = "expiring"
	StatusExpired    ContractStatus = "expired"
	StatusTerminated ContractStatus = "terminated"
	StatusCancelled  ContractStatus = "cancelled"
)

// IsTerminal reports whether the status was set manually and must never be
// auto-reverted by expiry classification. Everything outside the
// draft/active/expiring/expired set counts as terminal.
func (s ContractStatus) IsTerminal() bool {
	switch s {
	case StatusDraft, StatusActive, StatusExpiring, StatusExpired:
		return false
	}
	return true
}

// Valid reports whether s is one of the known statuses.
func (s ContractStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusExpiring, StatusExpired, StatusTerminated, StatusCancelled:
		return true
	}
	return false
}

// Contract represents a contract moving through the six-phase workflow.
// The lifecycle engine only ever mutates Status and UpdatedAt; everything
// else is owned by the contract-management surface.
type Contract struct {
	ID         string         `gorm:"primaryKey" json:"id"`
	Title      string         `json:"title"`
	Status     ContractStatus `gorm:"index" json:"status"`
	ExpiryDate *time.Time     `gorm:"column:expiry_date" json:"expiry_date,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`

	Phases []Phase `gorm:"foreignKey:ContractID" json:"phases,omitempty"`
}

func (Contract) TableName() string { return "contracts" }
