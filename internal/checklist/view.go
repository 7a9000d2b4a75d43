package checklist

import (
	"strings"

	"tl9000-audit/internal/domain"
)

// Filter returns the sections whose items match the active category and the
// case-insensitive search query against title or clause. Sections left with no
// matching items are dropped; section and item order is preserved. The input
// is never mutated.
func Filter(sections []domain.Section, category domain.Category, query string) []domain.Section {
	needle := strings.ToLower(query)

	out := make([]domain.Section, 0, len(sections))
	for _, section := range sections {
		items := make([]domain.ChecklistItem, 0, len(section.Items))
		for _, item := range section.Items {
			if !matchesCategory(item, category) {
				continue
			}
			if needle != "" && !matchesQuery(item, needle) {
				continue
			}
			items = append(items, item)
		}
		if len(items) == 0 {
			continue
		}
		section.Items = items
		out = append(out, section)
	}
	return out
}

// Aggregate counts items per status over the category scope. The search query
// is deliberately excluded: the dashboard reflects the category scope while
// the list reflects category plus search.
func Aggregate(sections []domain.Section, category domain.Category) domain.Stats {
	var stats domain.Stats
	for _, section := range sections {
		for _, item := range section.Items {
			if !matchesCategory(item, category) {
				continue
			}
			stats.Total++
			switch item.Status {
			case domain.StatusCompliant:
				stats.Compliant++
			case domain.StatusNonCompliant:
				stats.NonCompliant++
			case domain.StatusPending:
				stats.Pending++
			case domain.StatusNotApplicable:
				stats.NotApplicable++
			}
		}
	}

	if stats.Total > 0 {
		stats.Progress = float64(stats.Compliant) / float64(stats.Total) * 100
	}
	return stats
}

// matchesCategory reports whether the item is in scope for the active category.
func matchesCategory(item domain.ChecklistItem, category domain.Category) bool {
	if category == domain.CategoryAll {
		return true
	}
	for _, c := range item.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// matchesQuery reports whether the lowercased needle occurs in title or clause.
func matchesQuery(item domain.ChecklistItem, needle string) bool {
	return strings.Contains(strings.ToLower(item.Title), needle) ||
		strings.Contains(strings.ToLower(item.Clause), needle)
}
