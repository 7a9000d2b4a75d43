// Package checklist holds the mutable audit state and the pure projections
// derived from it.
package checklist

import (
	"sync"

	"tl9000-audit/internal/domain"
)

// ItemUpdate carries the optional fields of a partial item update. Nil fields
// are left untouched on the target item.
type ItemUpdate struct {
	Status   *domain.ComplianceStatus `json:"status,omitempty"`
	Notes    *string                  `json:"notes,omitempty"`
	Evidence *string                  `json:"evidence,omitempty"`
}

// Store owns the in-memory checklist seeded from the catalog. Mutations that
// reference an unknown section or item are silent no-ops: in a single-user
// local tool a miss means the UI is out of sync, not a user-facing condition.
type Store struct {
	mu       sync.RWMutex
	sections []domain.Section
}

// NewStore seeds a store from the given sections.
func NewStore(sections []domain.Section) *Store {
	return &Store{sections: sections}
}

// Sections returns a deep snapshot of the checklist. Callers may hold or
// mutate the result freely without observing later store updates.
func (s *Store) Sections() []domain.Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySections(s.sections)
}

// Item returns a snapshot of one item and whether it exists.
func (s *Store) Item(sectionID, itemID string) (domain.ChecklistItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item := s.find(sectionID, itemID)
	if item == nil {
		return domain.ChecklistItem{}, false
	}
	return copyItem(*item), true
}

// UpdateItem applies the present fields of update to the matching item.
func (s *Store) UpdateItem(sectionID, itemID string, update ItemUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.find(sectionID, itemID)
	if item == nil {
		return
	}
	if update.Status != nil {
		item.Status = *update.Status
	}
	if update.Notes != nil {
		item.Notes = *update.Notes
	}
	if update.Evidence != nil {
		item.Evidence = *update.Evidence
	}
}

// AddAttachments appends file names in order to the matching item. Duplicate
// names are kept.
func (s *Store) AddAttachments(sectionID, itemID string, fileNames []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.find(sectionID, itemID)
	if item == nil {
		return
	}
	item.Attachments = append(item.Attachments, fileNames...)
}

// RemoveAttachment removes every attachment entry exactly equal to fileName,
// preserving the relative order of the remainder.
func (s *Store) RemoveAttachment(sectionID, itemID, fileName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.find(sectionID, itemID)
	if item == nil {
		return
	}

	kept := item.Attachments[:0]
	for _, name := range item.Attachments {
		if name != fileName {
			kept = append(kept, name)
		}
	}
	item.Attachments = kept
}

// find returns a pointer into the live sections slice; callers must hold the lock.
func (s *Store) find(sectionID, itemID string) *domain.ChecklistItem {
	for i := range s.sections {
		if s.sections[i].ID != sectionID {
			continue
		}
		for j := range s.sections[i].Items {
			if s.sections[i].Items[j].ID == itemID {
				return &s.sections[i].Items[j]
			}
		}
	}
	return nil
}

// copySections deep-copies sections so snapshots never alias live state.
func copySections(sections []domain.Section) []domain.Section {
	out := make([]domain.Section, len(sections))
	for i, section := range sections {
		items := make([]domain.ChecklistItem, len(section.Items))
		for j, item := range section.Items {
			items[j] = copyItem(item)
		}
		section.Items = items
		out[i] = section
	}
	return out
}

// copyItem clones the item's slice fields.
func copyItem(item domain.ChecklistItem) domain.ChecklistItem {
	item.Categories = append([]domain.Category(nil), item.Categories...)
	item.Attachments = append([]string{}, item.Attachments...)
	return item
}
