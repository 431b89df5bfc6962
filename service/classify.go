package service

import (
	"time"

	"github.com/JLTC3111/contract-management-app-sub001/model"
)

// DefaultExpiringWindowDays is how far ahead of the expiry date an active
// contract is flagged as expiring.
const DefaultExpiringWindowDays = 30

// Transition marks a status change detected by the classifier. Each
// transition produces exactly one notification downstream.
type Transition string

const (
	TransitionNone           Transition = ""
	TransitionBecameExpiring Transition = "became_expiring"
	TransitionBecameExpired  Transition = "became_expired"
)

// Classification is the classifier's verdict for a single contract.
type Classification struct {
	Status     model.ContractStatus
	Transition Transition
}

// DateOnly normalizes a timestamp to a calendar date (midnight UTC) so that
// expiry comparisons ignore time of day and timezone.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Classify maps a contract's current status and expiry date to its next
// status. It is pure: "today" is injected, never read from a clock.
//
// A contract whose expiry date is on or before today is expired; a contract
// expiring exactly today is no longer valid. Manual terminal statuses are
// never changed here.
func Classify(status model.ContractStatus, expiry *time.Time, today time.Time, windowDays int) Classification {
	unchanged := Classification{Status: status, Transition: TransitionNone}

	switch status {
	case model.StatusDraft, model.StatusActive, model.StatusExpiring, model.StatusExpired:
		// auto-managed, fall through to the date rules
	case model.StatusTerminated, model.StatusCancelled:
		return unchanged
	default:
		// Unknown statuses are treated as manual overrides.
		return unchanged
	}

	if expiry == nil {
		return unchanged
	}

	if windowDays <= 0 {
		windowDays = DefaultExpiringWindowDays
	}

	expiryDay := DateOnly(*expiry)
	day := DateOnly(today)

	if !expiryDay.After(day) {
		if status == model.StatusExpired {
			return unchanged
		}
		return Classification{Status: model.StatusExpired, Transition: TransitionBecameExpired}
	}

	windowEnd := day.AddDate(0, 0, windowDays)
	if status == model.StatusActive && !expiryDay.After(windowEnd) {
		return Classification{Status: model.StatusExpiring, Transition: TransitionBecameExpiring}
	}

	return unchanged
}
