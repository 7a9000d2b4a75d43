// Package catalog holds the fixed TL 9000 requirement set the checklist is
// seeded from. The catalog itself is never mutated at runtime; only the
// per-item audit fields on the seeded copy change.
package catalog

import "tl9000-audit/internal/domain"

var sections = []domain.Section{
	{
		ID:    "sec-4",
		Title: "4. Context of the Organization",
		Items: []domain.ChecklistItem{
			{
				ID:          "4.1",
				Clause:      "4.1",
				Title:       "Understanding the organization and its context",
				Description: "Determine external and internal issues that are relevant to its purpose and its strategic direction.",
				Categories:  []domain.Category{domain.CategoryGeneral},
			},
			{
				ID:          "4.4.1",
				Clause:      "4.4.1.C.1",
				Title:       "QMS Processes",
				Description: "TL 9000 Specific: The organization shall define the scope of the QMS and identify the processes.",
				TLSpecific:  true,
				Categories:  []domain.Category{domain.CategoryGeneral},
			},
		},
	},
	{
		ID:    "sec-5",
		Title: "5. Leadership",
		Items: []domain.ChecklistItem{
			{
				ID:          "5.1.1",
				Clause:      "5.1.1.C.1",
				Title:       "Leadership and Commitment",
				Description: "TL 9000 Specific: Top management shall demonstrate leadership regarding the QMS and customer focus.",
				TLSpecific:  true,
				Categories:  []domain.Category{domain.CategoryGeneral},
			},
		},
	},
	{
		ID:    "sec-7",
		Title: "7. Support",
		Items: []domain.ChecklistItem{
			{
				ID:          "7.1.5",
				Clause:      "7.1.5.1.C.1",
				Title:       "Monitoring and Measuring Resources",
				Description: "Organization shall ensure that the resources provided are suitable for the specific type of monitoring.",
				TLSpecific:  true,
				Categories:  []domain.Category{domain.CategoryHardware, domain.CategorySoftware},
			},
			{
				ID:          "7.3",
				Clause:      "7.3.C.1",
				Title:       "Awareness",
				Description: "TL 9000 Specific: Personnel shall be aware of the relevance and importance of their activities.",
				TLSpecific:  true,
				Categories:  []domain.Category{domain.CategoryGeneral},
			},
		},
	},
	{
		ID:    "sec-8",
		Title: "8. Operation",
		Items: []domain.ChecklistItem{
			{
				ID:          "8.1",
				Clause:      "8.1.C.1",
				Title:       "Operational Planning and Control",
				Description: "Organization shall plan, implement and control the processes needed to meet the requirements.",
				TLSpecific:  true,
				Categories:  []domain.Category{domain.CategoryGeneral},
			},
			{
				ID:          "8.1.2",
				Clause:      "8.1.2.S.1",
				Title:       "Software Life Cycle Model",
				Description: "A software life cycle model shall be defined and used for software development and maintenance.",
				TLSpecific:  true,
				Categories:  []domain.Category{domain.CategorySoftware},
			},
			{
				ID:          "8.3.3",
				Clause:      "8.3.3.C.1",
				Title:       "Design and Development Inputs",
				Description: "TL 9000 Specific: Requirements for products and services shall be determined.",
				TLSpecific:  true,
				Categories:  []domain.Category{domain.CategoryHardware, domain.CategorySoftware},
			},
			{
				ID:          "8.5.1",
				Clause:      "8.5.1.V.1",
				Title:       "Service Delivery Planning",
				Description: "The organization shall plan the service delivery activities.",
				TLSpecific:  true,
				Categories:  []domain.Category{domain.CategoryService},
			},
		},
	},
	{
		ID:    "sec-9",
		Title: "9. Performance Evaluation",
		Items: []domain.ChecklistItem{
			{
				ID:          "9.1.2",
				Clause:      "9.1.2.C.1",
				Title:       "Customer Satisfaction",
				Description: "TL 9000 Specific: Monitor customer perceptions of the degree to which their needs are met.",
				TLSpecific:  true,
				Categories:  []domain.Category{domain.CategoryGeneral},
			},
		},
	},
	{
		ID:    "sec-m",
		Title: "TL 9000 Measurements (Book 2)",
		Items: []domain.ChecklistItem{
			{
				ID:          "m-1",
				Clause:      "M.1",
				Title:       "Hardware Measurements",
				Description: "Reporting of hardware performance data (e.g., NPR, FR).",
				TLSpecific:  true,
				Categories:  []domain.Category{domain.CategoryHardware},
			},
			{
				ID:          "m-2",
				Clause:      "M.2",
				Title:       "Software Measurements",
				Description: "Reporting of software performance data (e.g., SFQ, SPR).",
				TLSpecific:  true,
				Categories:  []domain.Category{domain.CategorySoftware},
			},
			{
				ID:          "m-3",
				Clause:      "M.3",
				Title:       "Service Measurements",
				Description: "Reporting of service performance data (e.g., SQ, OTD).",
				TLSpecific:  true,
				Categories:  []domain.Category{domain.CategoryService},
			},
		},
	},
}

// Sections returns a deep copy of the catalog with audit fields initialized:
// status PENDING, empty notes and evidence, no attachments.
func Sections() []domain.Section {
	out := make([]domain.Section, len(sections))
	for i, section := range sections {
		items := make([]domain.ChecklistItem, len(section.Items))
		for j, item := range section.Items {
			item.Categories = append([]domain.Category(nil), item.Categories...)
			item.Status = domain.StatusPending
			item.Attachments = []string{}
			items[j] = item
		}
		section.Items = items
		out[i] = section
	}
	return out
}
