package ui

import (
	"testing"

	"github.com/jobtrail/jobtrail-e2e/internal/common"
	"github.com/jobtrail/jobtrail-e2e/internal/pages"
)

// TestAddJobPageLoads verifies the full form renders, including the enhanced
// section.
func TestAddJobPageLoads(t *testing.T) {
	utc := NewUITestContext(t)
	defer utc.Cleanup()

	utc.RegisterFreshUser("addjobload")

	if err := utc.AddJob.NavigateToAddJob(); err != nil {
		t.Fatalf("Failed to open add-job page: %v", err)
	}
	utc.Screenshot("add_job_form")

	v := utc.AddJob.VerifyAddJobPageLoaded()
	if !v.IsOnCorrectURL {
		current, _ := utc.Session.CurrentURL()
		t.Fatalf("Expected add-job URL, got %s", current)
	}
	if !v.FormVisible || !v.SubmitVisible {
		t.Errorf("Form incomplete: form=%v submit=%v", v.FormVisible, v.SubmitVisible)
	}
	if !v.EnhancedVisible {
		utc.Log("Note: enhanced section not visible on load")
	}
}

// TestAddJobFormRoundTrip writes an exhaustive draft into the form and reads
// every control back before submitting.
func TestAddJobFormRoundTrip(t *testing.T) {
	utc := NewUITestContext(t)
	defer utc.Cleanup()

	utc.RegisterFreshUser("addjobround")

	if err := utc.AddJob.NavigateToAddJob(); err != nil {
		t.Fatalf("Failed to open add-job page: %v", err)
	}

	draft := pages.JobDraft{
		Position:    "Senior Go Developer",
		Company:     common.NewCompanyName("RoundTrip Labs"),
		JobLocation: "Berlin",
		JobType:     "full-time",
		Status:      "applied",
		Enhanced: &pages.EnhancedFields{
			SalaryMin:         "90000",
			SalaryMax:         "120000",
			SalaryCurrency:    "EUR",
			JobDescription:    "Backend services in Go",
			CompanyWebsite:    "https://roundtrip.example",
			JobPostingURL:     "https://jobs.example/go-dev",
			ApplicationMethod: "online",
			Notes:             "Round trip check",
		},
		Phase2: &pages.Phase2Fields{
			Category: "engineering",
			Tags:     "go,backend",
			Priority: "high",
		},
	}

	if err := utc.AddJob.FillCompleteJobForm(draft); err != nil {
		utc.Screenshot("fill_failed")
		t.Fatalf("Failed to fill form: %v", err)
	}
	utc.Screenshot("form_filled")

	got := utc.AddJob.GetFormValues()
	checks := []struct {
		name, got, want string
	}{
		{"position", got.Position, draft.Position},
		{"company", got.Company, draft.Company},
		{"location", got.JobLocation, draft.JobLocation},
		{"jobType", got.JobType, draft.JobType},
		{"status", got.Status, draft.Status},
		{"salaryMin", got.SalaryMin, draft.Enhanced.SalaryMin},
		{"salaryMax", got.SalaryMax, draft.Enhanced.SalaryMax},
		{"notes", got.Notes, draft.Enhanced.Notes},
		{"tags", got.Tags, draft.Phase2.Tags},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("Form control %s reads %q, wrote %q", c.name, c.got, c.want)
		}
	}

	if err := utc.AddJob.SubmitAndWaitForListing(); err != nil {
		utc.Screenshot("submit_failed")
		t.Fatalf("Submit did not reach the listing: %v", err)
	}
	utc.Screenshot("after_submit")

	if err := utc.Jobs.WaitForJobCardContaining(draft.Company, utc.WaitBudget()); err != nil {
		t.Fatalf("Created job never appeared in listing: %v", err)
	}
}

// TestAddJobMinimalDraft creates a job with only the required fields.
func TestAddJobMinimalDraft(t *testing.T) {
	utc := NewUITestContext(t)
	defer utc.Cleanup()

	utc.RegisterFreshUser("addjobmin")

	company := common.NewCompanyName("Minimal Co")
	draft := pages.JobDraft{
		Position: "Minimal Role",
		Company:  company,
	}
	if err := utc.AddJob.NavigateToAddJob(); err != nil {
		t.Fatalf("Failed to open add-job page: %v", err)
	}
	if err := utc.AddJob.FillCompleteJobForm(draft); err != nil {
		t.Fatalf("Failed to fill minimal draft: %v", err)
	}
	if err := utc.AddJob.SubmitAndWaitForListing(); err != nil {
		utc.Screenshot("minimal_submit_failed")
		t.Fatalf("Minimal draft submit failed: %v", err)
	}

	if err := utc.Jobs.WaitForJobCardContaining(company, utc.WaitBudget()); err != nil {
		t.Fatalf("Minimal job never appeared in listing: %v", err)
	}
}

// TestAddJobEmptySubmitStays submits a blank form and expects to remain on
// the add-job page.
func TestAddJobEmptySubmitStays(t *testing.T) {
	utc := NewUITestContext(t)
	defer utc.Cleanup()

	utc.RegisterFreshUser("addjobempty")

	if err := utc.AddJob.NavigateToAddJob(); err != nil {
		t.Fatalf("Failed to open add-job page: %v", err)
	}
	if err := utc.AddJob.Submit(); err != nil {
		t.Fatalf("Failed to click submit: %v", err)
	}
	utc.Screenshot("empty_submit")

	if !utc.AddJob.IsOnAddJobPage() {
		current, _ := utc.Session.CurrentURL()
		t.Errorf("Blank submit must not leave the form, got %s", current)
	}
	if alert := utc.AddJob.GetAlertText(); alert != "" {
		utc.Log("Validation alert: %s", alert)
	}
}
