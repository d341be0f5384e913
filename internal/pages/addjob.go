package pages

import (
	"fmt"
	"time"

	"github.com/jobtrail/jobtrail-e2e/internal/browser"
)

// AddJob page field names.
const (
	addJobPosition          browser.Field = "positionInput"
	addJobCompany           browser.Field = "companyInput"
	addJobLocation          browser.Field = "jobLocationInput"
	addJobType              browser.Field = "jobTypeSelect"
	addJobStatus            browser.Field = "statusSelect"
	addJobSalaryMin         browser.Field = "salaryMinInput"
	addJobSalaryMax         browser.Field = "salaryMaxInput"
	addJobSalaryCurrency    browser.Field = "salaryCurrencySelect"
	addJobDescription       browser.Field = "jobDescriptionInput"
	addJobCompanyWebsite    browser.Field = "companyWebsiteInput"
	addJobPostingURL        browser.Field = "jobPostingUrlInput"
	addJobApplicationMethod browser.Field = "applicationMethodSelect"
	addJobNotes             browser.Field = "notesInput"
	addJobCategory          browser.Field = "categorySelect"
	addJobTags              browser.Field = "tagsInput"
	addJobPriority          browser.Field = "prioritySelect"
	addJobSubmit            browser.Field = "submitButton"
	addJobFormTitle         browser.Field = "formTitle"
	addJobAlert             browser.Field = "alert"
)

var addJobLocators = browser.MustLocatorMap("add-job", map[browser.Field]browser.Locator{
	addJobPosition:          {`input[name="position"]`},
	addJobCompany:           {`input[name="company"]`},
	addJobLocation:          {`input[name="jobLocation"]`},
	addJobType:              {`select[name="jobType"]`},
	addJobStatus:            {`select[name="status"]`},
	addJobSalaryMin:         {`input[name="salaryMin"]`},
	addJobSalaryMax:         {`input[name="salaryMax"]`},
	addJobSalaryCurrency:    {`select[name="salaryCurrency"]`},
	addJobDescription:       {`textarea[name="jobDescription"]`, `input[name="jobDescription"]`},
	addJobCompanyWebsite:    {`input[name="companyWebsite"]`},
	addJobPostingURL:        {`input[name="jobPostingUrl"]`},
	addJobApplicationMethod: {`select[name="applicationMethod"]`},
	addJobNotes:             {`textarea[name="notes"]`, `input[name="notes"]`},
	addJobCategory:          {`select[name="category"]`},
	addJobTags:              {`input[name="tags"]`},
	addJobPriority:          {`select[name="priority"]`},
	addJobSubmit:            {`button[type="submit"]`, `.btn-block`},
	addJobFormTitle:         {`.form-title`, `form h4`},
	addJobAlert:             {`[class*="alert"]`},
})

// AddJobPage drives the job creation form at /add-job.
type AddJobPage struct {
	pageBase
}

func NewAddJobPage(s *browser.Session, baseURL string) *AddJobPage {
	return &AddJobPage{pageBase: newPageBase(s, baseURL, addJobLocators)}
}

func (p *AddJobPage) NavigateToAddJob() error {
	if err := p.navigate(RouteAddJob); err != nil {
		return err
	}
	return p.waitFor(addJobPosition, 0)
}

func (p *AddJobPage) IsOnAddJobPage() bool {
	return p.onRoute(RouteAddJob)
}

// FillCompleteJobForm writes every supplied draft field into the form. Leaf
// fields of omitted Enhanced/Phase2 sections are untouched, so a minimal
// draft and an exhaustive one share this one workflow.
func (p *AddJobPage) FillCompleteJobForm(draft JobDraft) error {
	for _, write := range buildJobFormPlan(draft) {
		var err error
		switch write.kind {
		case writeSelect:
			err = p.selectOption(write.field, write.value)
		default:
			err = p.fill(write.field, write.value)
		}
		if err != nil {
			return fmt.Errorf("failed to write field %s: %w", write.field, err)
		}
	}
	return nil
}

// Submit clicks the form's submit button.
func (p *AddJobPage) Submit() error {
	return p.click(addJobSubmit)
}

// SubmitAndWaitForListing submits and waits for the redirect to the listing
// page that follows a successful create.
func (p *AddJobPage) SubmitAndWaitForListing() error {
	if err := p.Submit(); err != nil {
		return err
	}
	return p.s.WaitForURL(RouteAllJobs, 0)
}

// CreateJob is the navigate + fill + submit composite most scenarios want.
func (p *AddJobPage) CreateJob(draft JobDraft) error {
	if err := p.NavigateToAddJob(); err != nil {
		return err
	}
	if err := p.FillCompleteJobForm(draft); err != nil {
		return err
	}
	return p.SubmitAndWaitForListing()
}

// JobFormValues is the form state as currently rendered.
type JobFormValues struct {
	Position          string
	Company           string
	JobLocation       string
	JobType           string
	Status            string
	SalaryMin         string
	SalaryMax         string
	SalaryCurrency    string
	JobDescription    string
	CompanyWebsite    string
	JobPostingURL     string
	ApplicationMethod string
	Notes             string
	Category          string
	Tags              string
	Priority          string
}

// GetFormValues reads back every form control. Fields absent from the
// rendered form come back empty.
func (p *AddJobPage) GetFormValues() JobFormValues {
	read := func(field browser.Field) string {
		v, _ := p.value(field)
		return v
	}
	return JobFormValues{
		Position:          read(addJobPosition),
		Company:           read(addJobCompany),
		JobLocation:       read(addJobLocation),
		JobType:           read(addJobType),
		Status:            read(addJobStatus),
		SalaryMin:         read(addJobSalaryMin),
		SalaryMax:         read(addJobSalaryMax),
		SalaryCurrency:    read(addJobSalaryCurrency),
		JobDescription:    read(addJobDescription),
		CompanyWebsite:    read(addJobCompanyWebsite),
		JobPostingURL:     read(addJobPostingURL),
		ApplicationMethod: read(addJobApplicationMethod),
		Notes:             read(addJobNotes),
		Category:          read(addJobCategory),
		Tags:              read(addJobTags),
		Priority:          read(addJobPriority),
	}
}

// GetAlertText returns the form's alert/status text, empty when none shown.
func (p *AddJobPage) GetAlertText() string {
	text, _ := p.text(addJobAlert)
	return text
}

// WaitForAlert blocks until the alert container shows substr.
func (p *AddJobPage) WaitForAlert(substr string, timeout time.Duration) error {
	return p.s.WaitForText(p.sel(addJobAlert), substr, timeout)
}

// AddJobVerification aggregates what "loaded" means for this screen.
type AddJobVerification struct {
	IsOnCorrectURL  bool
	FormVisible     bool
	SubmitVisible   bool
	EnhancedVisible bool
}

// VerifyAddJobPageLoaded bundles the page-loaded checks so scenarios assert
// on one structured result instead of compiling them ad hoc.
func (p *AddJobPage) VerifyAddJobPageLoaded() AddJobVerification {
	return AddJobVerification{
		IsOnCorrectURL:  p.IsOnAddJobPage(),
		FormVisible:     p.visible(addJobPosition),
		SubmitVisible:   p.visible(addJobSubmit),
		EnhancedVisible: p.visible(addJobSalaryMin),
	}
}
