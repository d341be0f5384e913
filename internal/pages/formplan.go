package pages

import (
	"github.com/jobtrail/jobtrail-e2e/internal/browser"
)

// A form plan is the ordered list of writes a draft implies. Building it is
// pure so the only-supplied-fields-are-written contract is testable without
// a browser: omitted optional sections contribute no writes at all.

type writeKind int

const (
	writeFill writeKind = iota
	writeSelect
)

type fieldWrite struct {
	field browser.Field
	value string
	kind  writeKind
}

func buildJobFormPlan(draft JobDraft) []fieldWrite {
	var plan []fieldWrite

	add := func(field browser.Field, value string, kind writeKind) {
		if value == "" {
			return
		}
		plan = append(plan, fieldWrite{field: field, value: value, kind: kind})
	}

	add(addJobPosition, draft.Position, writeFill)
	add(addJobCompany, draft.Company, writeFill)
	add(addJobLocation, draft.JobLocation, writeFill)
	add(addJobType, draft.JobType, writeSelect)
	add(addJobStatus, draft.Status, writeSelect)

	if e := draft.Enhanced; e != nil {
		add(addJobSalaryMin, e.SalaryMin, writeFill)
		add(addJobSalaryMax, e.SalaryMax, writeFill)
		add(addJobSalaryCurrency, e.SalaryCurrency, writeSelect)
		add(addJobDescription, e.JobDescription, writeFill)
		add(addJobCompanyWebsite, e.CompanyWebsite, writeFill)
		add(addJobPostingURL, e.JobPostingURL, writeFill)
		add(addJobApplicationMethod, e.ApplicationMethod, writeSelect)
		add(addJobNotes, e.Notes, writeFill)
	}

	if p := draft.Phase2; p != nil {
		add(addJobCategory, p.Category, writeSelect)
		add(addJobTags, p.Tags, writeFill)
		add(addJobPriority, p.Priority, writeSelect)
	}

	return plan
}
