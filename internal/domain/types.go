package domain

// ComplianceStatus is the audit disposition of a single requirement.
type ComplianceStatus string

const (
	StatusPending       ComplianceStatus = "PENDING"
	StatusCompliant     ComplianceStatus = "COMPLIANT"
	StatusNonCompliant  ComplianceStatus = "NON_COMPLIANT"
	StatusNotApplicable ComplianceStatus = "NOT_APPLICABLE"
)

// Category classifies which product or service domain a requirement applies to.
type Category string

const (
	CategoryGeneral  Category = "GENERAL"
	CategoryHardware Category = "HARDWARE"
	CategorySoftware Category = "SOFTWARE"
	CategoryService  Category = "SERVICE"

	// CategoryAll is the filter sentinel matching every item. It is never a
	// member of an item's category set.
	CategoryAll Category = "ALL"
)

// ChecklistItem is one TL 9000 requirement with its audit state.
type ChecklistItem struct {
	ID          string           `json:"id"`
	Clause      string           `json:"clause"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	TLSpecific  bool             `json:"tlSpecific"`
	Categories  []Category       `json:"categories"`
	Status      ComplianceStatus `json:"status"`
	Notes       string           `json:"notes"`
	Evidence    string           `json:"evidence"`
	Attachments []string         `json:"attachments"`
}

// Section groups checklist items under one standard chapter, in audit order.
type Section struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Items []ChecklistItem `json:"items"`
}

// Stats aggregates compliance counts over the active category scope.
type Stats struct {
	Total         int     `json:"total"`
	Compliant     int     `json:"compliant"`
	NonCompliant  int     `json:"nonCompliant"`
	Pending       int     `json:"pending"`
	NotApplicable int     `json:"na"`
	Progress      float64 `json:"progress"`
}

// Settings contains user-selectable runtime configuration.
type Settings struct {
	Model           string   `json:"model"`
	DefaultCategory Category `json:"defaultCategory"`
}
