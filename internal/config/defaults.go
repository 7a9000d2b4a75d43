package config

import (
	"tl9000-audit/internal/advisory"
	"tl9000-audit/internal/domain"
)

// DefaultSettings returns baseline local configuration for first launch.
func DefaultSettings() domain.Settings {
	return domain.Settings{
		Model:           advisory.DefaultModel,
		DefaultCategory: domain.CategoryAll,
	}
}
