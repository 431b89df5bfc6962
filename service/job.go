package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/JLTC3111/contract-management-app-sub001/config"
	"github.com/JLTC3111/contract-management-app-sub001/model"
)

// RunSummary aggregates one lifecycle batch run. ErrorCount > 0 signals a
// partial failure; the counters still cover every contract that succeeded.
type RunSummary struct {
	UpdatedCount      int `json:"updated_count"`
	ExpiredCount      int `json:"expired_count"`
	ExpiringCount     int `json:"expiring_count"`
	NotificationsSent int `json:"notifications_sent"`
	ErrorCount        int `json:"error_count"`
}

// LifecycleJob re-evaluates every contract's expiry classification,
// persists status changes and emits one notification per transition.
//
// The job holds no state between runs. Contracts are processed as
// independent units of work, so a bounded worker pool fans out across them;
// the conditional status update keeps concurrent runs from double-emitting.
type LifecycleJob struct {
	store      Store
	notifier   Notifier
	windowDays int
	workers    int
	now        func() time.Time
}

func NewLifecycleJob(store Store, notifier Notifier, cfg *config.LifecycleConfig) *LifecycleJob {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	windowDays := cfg.ExpiringWindowDays
	if windowDays <= 0 {
		windowDays = DefaultExpiringWindowDays
	}

	return &LifecycleJob{
		store:      store,
		notifier:   notifier,
		windowDays: windowDays,
		workers:    workers,
		now:        time.Now,
	}
}

type contractOutcome struct {
	transition Transition
	updated    bool
	notified   bool
	failed     bool
}

// Run scans all auto-managed contracts with an expiry date and applies the
// expiry classification as of "today". The error return is non-nil only
// when the initial contract read fails; per-contract failures are counted
// in the summary instead.
func (j *LifecycleJob) Run(ctx context.Context, today time.Time) (RunSummary, error) {
	var summary RunSummary

	contracts, err := j.store.ReadContracts(ctx, ContractFilter{
		HasExpiry:       true,
		ExcludeTerminal: true,
	})
	if err != nil {
		return summary, err
	}

	jobs := make(chan model.Contract)
	outcomes := make(chan contractOutcome)

	var wg sync.WaitGroup
	for w := 0; w < j.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for contract := range jobs {
				outcomes <- j.processContract(ctx, contract, today)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range contracts {
			// Interruptible between contracts; work already written
			// stays written, each update is atomic on its own.
			if ctx.Err() != nil {
				return
			}
			jobs <- contracts[i]
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	for outcome := range outcomes {
		if outcome.failed {
			summary.ErrorCount++
		}
		if outcome.updated {
			summary.UpdatedCount++
			switch outcome.transition {
			case TransitionBecameExpired:
				summary.ExpiredCount++
			case TransitionBecameExpiring:
				summary.ExpiringCount++
			}
		}
		if outcome.notified {
			summary.NotificationsSent++
		}
	}

	slog.Info("lifecycle run finished",
		"scanned", len(contracts),
		"updated", summary.UpdatedCount,
		"expired", summary.ExpiredCount,
		"expiring", summary.ExpiringCount,
		"notifications_sent", summary.NotificationsSent,
		"errors", summary.ErrorCount,
	)

	return summary, nil
}

func (j *LifecycleJob) processContract(ctx context.Context, contract model.Contract, today time.Time) contractOutcome {
	cls := Classify(contract.Status, contract.ExpiryDate, today, j.windowDays)
	if cls.Transition == TransitionNone {
		return contractOutcome{}
	}

	ts := j.now()
	ok, err := j.store.ConditionalUpdateContractStatus(ctx, contract.ID, contract.Status, cls.Status, ts)
	if err != nil {
		slog.Error("failed to persist status transition",
			"contract_id", contract.ID,
			"transition", string(cls.Transition),
			"error", err,
		)
		return contractOutcome{failed: true}
	}
	if !ok {
		// Another writer already applied an equivalent-or-newer
		// transition; nothing to notify.
		slog.Debug("status transition lost the race, skipping",
			"contract_id", contract.ID,
			"transition", string(cls.Transition),
		)
		return contractOutcome{}
	}

	outcome := contractOutcome{transition: cls.Transition, updated: true}

	err = j.notifier.Emit(ctx, Notification{
		ContractID: contract.ID,
		Transition: cls.Transition,
		At:         ts,
	})
	if err != nil {
		slog.Error("failed to emit lifecycle notification",
			"contract_id", contract.ID,
			"transition", string(cls.Transition),
			"error", err,
		)
		outcome.failed = true
		return outcome
	}

	outcome.notified = true
	return outcome
}
