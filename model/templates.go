package model

// TaskTemplate is the default text for a task created during phase backfill.
type TaskTemplate struct {
	Text            string
	LocalizationKey string
}

// PhaseTemplate is the static definition of one canonical phase. Templates
// are immutable configuration data; nothing mutates them at runtime.
type PhaseTemplate struct {
	Number      int
	Name        string
	Description string
	Tasks       []TaskTemplate
}

var phaseTemplates = [PhaseCount]PhaseTemplate{
	{
		Number:      1,
		Name:        "Initiation",
		Description: "Capture the request, parties and commercial intent",
		Tasks: []TaskTemplate{
			{Text: "Identify counterparty and signatories", LocalizationKey: "phase1.task.identify_parties"},
			{Text: "Collect business requirements", LocalizationKey: "phase1.task.collect_requirements"},
			{Text: "Select contract template", LocalizationKey: "phase1.task.select_template"},
		},
	},
	{
		Number:      2,
		Name:        "Drafting",
		Description: "Produce the first complete draft of the agreement",
		Tasks: []TaskTemplate{
			{Text: "Draft commercial terms", LocalizationKey: "phase2.task.draft_terms"},
			{Text: "Draft legal clauses", LocalizationKey: "phase2.task.draft_clauses"},
			{Text: "Attach schedules and annexes", LocalizationKey: "phase2.task.attach_annexes"},
		},
	},
	{
		Number:      3,
		Name:        "Negotiation",
		Description: "Exchange redlines until both sides agree",
		Tasks: []TaskTemplate{
			{Text: "Send draft to counterparty", LocalizationKey: "phase3.task.send_draft"},
			{Text: "Review counterparty redlines", LocalizationKey: "phase3.task.review_redlines"},
			{Text: "Resolve open points", LocalizationKey: "phase3.task.resolve_points"},
		},
	},
	{
		Number:      4,
		Name:        "Approval",
		Description: "Internal review and sign-off before signature",
		Tasks: []TaskTemplate{
			{Text: "Legal review sign-off", LocalizationKey: "phase4.task.legal_review"},
			{Text: "Finance review sign-off", LocalizationKey: "phase4.task.finance_review"},
			{Text: "Management approval", LocalizationKey: "phase4.task.management_approval"},
		},
	},
	{
		Number:      5,
		Name:        "Signature",
		Description: "Execute the agreement with all signatories",
		Tasks: []TaskTemplate{
			{Text: "Prepare signature copies", LocalizationKey: "phase5.task.prepare_copies"},
			{Text: "Collect internal signatures", LocalizationKey: "phase5.task.internal_signatures"},
			{Text: "Collect counterparty signatures", LocalizationKey: "phase5.task.counterparty_signatures"},
			{Text: "Archive signed original", LocalizationKey: "phase5.task.archive_original"},
		},
	},
	{
		Number:      6,
		Name:        "Execution",
		Description: "Monitor obligations, renewals and expiry",
		Tasks: []TaskTemplate{
			{Text: "Record key dates and obligations", LocalizationKey: "phase6.task.record_dates"},
			{Text: "Monitor deliverables", LocalizationKey: "phase6.task.monitor_deliverables"},
			{Text: "Review renewal or closeout", LocalizationKey: "phase6.task.review_renewal"},
		},
	},
}

// PhaseTemplates returns the six canonical phase templates in order.
// The returned values are copies; callers cannot affect the catalog.
func PhaseTemplates() []PhaseTemplate {
	out := make([]PhaseTemplate, PhaseCount)
	for i := range phaseTemplates {
		out[i] = copyTemplate(phaseTemplates[i])
	}
	return out
}

// PhaseTemplateFor returns the template for phase number n (1..6) and
// whether such a phase exists.
func PhaseTemplateFor(n int) (PhaseTemplate, bool) {
	if n < 1 || n > PhaseCount {
		return PhaseTemplate{}, false
	}
	return copyTemplate(phaseTemplates[n-1]), true
}

func copyTemplate(t PhaseTemplate) PhaseTemplate {
	tasks := make([]TaskTemplate, len(t.Tasks))
	copy(tasks, t.Tasks)
	t.Tasks = tasks
	return t
}
