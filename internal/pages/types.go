package pages

// Transient in-test representations of what a scenario types into the app.
// Nothing here is persisted by the suite; each test case owns its own
// instances and generates unique identities to avoid cross-test collisions.

// Credentials is one test user. Name is only used in register mode.
type Credentials struct {
	Email    string
	Password string
	Name     string
}

// JobDraft is a job as a scenario intends to enter it. All fields are
// optional: only supplied (non-zero) fields are written to the form, which
// lets validation-error scenarios submit partial drafts with the same
// workflow exhaustive scenarios use.
type JobDraft struct {
	Position    string
	Company     string
	JobLocation string
	JobType     string
	Status      string
	Enhanced    *EnhancedFields
	Phase2      *Phase2Fields
}

// EnhancedFields is the optional second form section.
type EnhancedFields struct {
	SalaryMin         string
	SalaryMax         string
	SalaryCurrency    string
	JobDescription    string
	CompanyWebsite    string
	JobPostingURL     string
	ApplicationMethod string
	Notes             string
}

// Phase2Fields is the optional categorization section.
type Phase2Fields struct {
	Category string
	Tags     string
	Priority string
}

// ActivityDraft is one activity entry attached to a job application.
type ActivityDraft struct {
	Title string
	Type  string
	Date  string
	Notes string
}

// FilterState mirrors the listing page's query controls, read back through
// GetCurrentFilters to assert state after apply/clear actions.
type FilterState struct {
	Search   string
	Status   string
	Type     string
	Category string
	Priority string
	Sort     string
}

// DefaultFilterState is the cleared state of the listing controls.
func DefaultFilterState() FilterState {
	return FilterState{
		Search:   "",
		Status:   "all",
		Type:     "all",
		Category: "all",
		Priority: "all",
		Sort:     "latest",
	}
}

// JobCard is one row of the listing as rendered, extracted from card markup.
type JobCard struct {
	Position string
	Company  string
	Location string
	Status   string
}
