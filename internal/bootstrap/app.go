package bootstrap

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"tl9000-audit/internal/advisory"
	"tl9000-audit/internal/catalog"
	"tl9000-audit/internal/checklist"
	"tl9000-audit/internal/config"
	"tl9000-audit/internal/diagnostics"
	"tl9000-audit/internal/domain"
	"tl9000-audit/internal/selection"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// App wires the checklist store, selection lifecycle, advisory collaborator,
// configuration, and UI runtime callbacks.
type App struct {
	Settings    domain.Settings
	Store       config.Store
	Checklist   *checklist.Store
	Selection   *selection.Manager
	Advisor     advisory.Advisor
	Diagnostics domain.DiagnosticReport
	assets      fs.FS
	checker     *diagnostics.Checker

	mu             sync.Mutex
	advisoryRecord *advisory.Record
	events         *selection.EventBus
	runtimeCtx     context.Context
}

// New builds the application with persisted settings and startup diagnostics.
func New() (*App, error) {
	return NewWithAssets(nil)
}

// NewWithAssets builds the application and optionally configures embedded frontend assets.
func NewWithAssets(assets fs.FS) (*App, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user home: %w", err)
	}
	configDir := filepath.Join(homeDir, ".tl9000-audit")

	store := config.NewJSONStore(filepath.Join(configDir, "settings.json"))
	settings, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	settings = normalizeSettings(settings)

	checker := diagnostics.NewChecker(configDir)
	report := checker.Run(settings)

	app := &App{
		Settings:    settings,
		Store:       store,
		Checklist:   checklist.NewStore(catalog.Sections()),
		Selection:   selection.NewManager(),
		Diagnostics: report,
		assets:      assets,
		checker:     checker,
		events:      selection.NewEventBus(1000),
	}
	app.Advisor = newGeminiAdvisor(settings.Model)
	return app, nil
}

// Run starts the Wails desktop application and binds backend methods.
func (a *App) Run() error {
	assetOptions := &assetserver.Options{}
	if a.assets != nil {
		assetOptions.Assets = a.assets
	} else {
		assetOptions.Handler = http.FileServer(http.Dir("./frontend"))
	}

	return wails.Run(&options.App{
		Title:       "TL 9000 Compliance Master",
		Width:       1280,
		Height:      820,
		AssetServer: assetOptions,
		OnStartup:   a.Startup,
		OnShutdown: func(ctx context.Context) {
			a.mu.Lock()
			defer a.mu.Unlock()
			a.runtimeCtx = nil
		},
		Bind: []interface{}{a},
	})
}

// Startup stores Wails runtime context for push events and dialog APIs.
func (a *App) Startup(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.runtimeCtx = ctx
}

// GetDiagnostics returns the latest cached diagnostics report.
func (a *App) GetDiagnostics() domain.DiagnosticReport {
	return a.Diagnostics
}

// GetSettings loads and returns the latest persisted settings.
func (a *App) GetSettings() (domain.Settings, error) {
	settings, err := a.Store.Load()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	settings = normalizeSettings(settings)

	a.mu.Lock()
	a.Settings = settings
	a.mu.Unlock()

	return settings, nil
}

// SaveSettings normalizes and persists settings, then refreshes diagnostics
// and rebuilds the advisory client for the configured model.
func (a *App) SaveSettings(settings domain.Settings) (domain.Settings, error) {
	normalized := normalizeSettings(settings)
	if err := a.Store.Save(normalized); err != nil {
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	a.mu.Lock()
	a.Settings = normalized
	if a.checker != nil {
		a.Diagnostics = a.checker.Run(normalized)
	}
	a.Advisor = newGeminiAdvisor(normalized.Model)
	a.mu.Unlock()

	return normalized, nil
}

// RefreshDiagnostics reloads settings and reruns startup checks.
func (a *App) RefreshDiagnostics() (domain.DiagnosticReport, error) {
	settings, err := a.Store.Load()
	if err != nil {
		return domain.DiagnosticReport{}, fmt.Errorf("load settings: %w", err)
	}
	settings = normalizeSettings(settings)

	a.mu.Lock()
	a.Settings = settings
	a.Diagnostics = a.checker.Run(settings)
	report := a.Diagnostics
	a.mu.Unlock()

	return report, nil
}

// GetSections returns a snapshot of the full checklist.
func (a *App) GetSections() []domain.Section {
	return a.Checklist.Sections()
}

// GetFilteredSections projects the checklist through the active category and
// search query. An empty category means ALL.
func (a *App) GetFilteredSections(category domain.Category, query string) []domain.Section {
	if category == "" {
		category = domain.CategoryAll
	}
	return checklist.Filter(a.Checklist.Sections(), category, query)
}

// GetStats aggregates compliance counts over the category scope. The search
// query never narrows the dashboard.
func (a *App) GetStats(category domain.Category) domain.Stats {
	if category == "" {
		category = domain.CategoryAll
	}
	return checklist.Aggregate(a.Checklist.Sections(), category)
}

// UpdateItem applies a partial update to one checklist item. Unknown targets
// are ignored, matching the store's silent-miss policy.
func (a *App) UpdateItem(sectionID, itemID string, update checklist.ItemUpdate) {
	a.Checklist.UpdateItem(sectionID, itemID, update)
	a.publishEvent(selection.Event{
		Type:      selection.EventTypeChecklist,
		SectionID: sectionID,
		ItemID:    itemID,
		Message:   "Item updated",
	})
}

// AttachEvidenceFiles opens the native multi-file dialog and appends the
// selected file names to the item. Only names are retained; file contents are
// never read.
func (a *App) AttachEvidenceFiles(sectionID, itemID string) ([]string, error) {
	ctx, err := a.runtimeContext()
	if err != nil {
		return nil, err
	}

	paths, err := wailsruntime.OpenMultipleFilesDialog(ctx, wailsruntime.OpenDialogOptions{
		Title: "Select evidence files",
	})
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}

	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = filepath.Base(path)
	}

	a.Checklist.AddAttachments(sectionID, itemID, names)
	a.publishEvent(selection.Event{
		Type:      selection.EventTypeChecklist,
		SectionID: sectionID,
		ItemID:    itemID,
		Message:   "Evidence files attached",
	})
	return names, nil
}

// RemoveAttachment removes every attachment entry with the given file name.
func (a *App) RemoveAttachment(sectionID, itemID, fileName string) {
	a.Checklist.RemoveAttachment(sectionID, itemID, fileName)
	a.publishEvent(selection.Event{
		Type:      selection.EventTypeChecklist,
		SectionID: sectionID,
		ItemID:    itemID,
		Message:   "Attachment removed",
	})
}

// SelectItem makes the given item current for detail display. Previously
// fetched advisory content is discarded immediately. Unknown targets leave the
// selection unchanged.
func (a *App) SelectItem(sectionID, itemID string) selection.Selection {
	if _, ok := a.Checklist.Item(sectionID, itemID); !ok {
		return a.Selection.Current()
	}

	a.mu.Lock()
	current := a.Selection.Select(sectionID, itemID)
	a.advisoryRecord = nil
	a.mu.Unlock()

	a.publishEvent(selection.Event{
		Type:      selection.EventTypeSelection,
		SectionID: sectionID,
		ItemID:    itemID,
		State:     current.State,
		Message:   "Item selected",
	})
	return current
}

// ClearSelection drops the selection and any advisory content.
func (a *App) ClearSelection() selection.Selection {
	a.mu.Lock()
	current := a.Selection.Clear()
	a.advisoryRecord = nil
	a.mu.Unlock()

	a.publishEvent(selection.Event{
		Type:    selection.EventTypeSelection,
		State:   current.State,
		Message: "Selection cleared",
	})
	return current
}

// CurrentSelection returns the selection and its advisory phase.
func (a *App) CurrentSelection() selection.Selection {
	return a.Selection.Current()
}

// CurrentAdvisory returns the advisory record for the current selection, or
// nil while none is ready.
func (a *App) CurrentAdvisory() *advisory.Record {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.advisoryRecord
}

// RequestAdvisory fetches guidance for the selected item. The explanation and
// audit-question requests run concurrently and are joined before the record
// becomes visible; a result arriving after the selection changed is discarded.
func (a *App) RequestAdvisory() (selection.Selection, error) {
	a.mu.Lock()
	token, err := a.Selection.BeginAdvisory()
	advisor := a.Advisor
	current := a.Selection.Current()
	if err == nil {
		a.advisoryRecord = nil
	}
	a.mu.Unlock()
	if err != nil {
		return current, err
	}

	item, _ := a.Checklist.Item(current.SectionID, current.ItemID)

	a.publishEvent(selection.Event{
		Type:      selection.EventTypeAdvisory,
		SectionID: current.SectionID,
		ItemID:    current.ItemID,
		State:     selection.StateAwaitingAdvisory,
		Message:   "Analyzing clause " + item.Clause,
	})

	go a.runAdvisoryRequest(token, advisor, current, item)
	return current, nil
}

// runAdvisoryRequest joins the fan-out and applies the record atomically with
// the state transition, so a stale result is never observable.
func (a *App) runAdvisoryRequest(token int64, advisor advisory.Advisor, origin selection.Selection, item domain.ChecklistItem) {
	record := advisory.Fetch(context.Background(), advisor, item.Clause, item.Description)

	a.mu.Lock()
	accepted := a.Selection.CompleteAdvisory(token)
	if accepted {
		a.advisoryRecord = &record
	}
	a.mu.Unlock()
	if !accepted {
		return
	}

	a.publishEvent(selection.Event{
		Type:      selection.EventTypeAdvisory,
		SectionID: origin.SectionID,
		ItemID:    origin.ItemID,
		State:     selection.StateAdvisoryReady,
		Message:   "Advisory ready",
	})
}

// Events returns all events with sequence greater than sinceSeq.
func (a *App) Events(sinceSeq int64) []selection.Event {
	return a.events.Since(sinceSeq)
}

// publishEvent stores event history and emits runtime push notifications.
func (a *App) publishEvent(event selection.Event) {
	published := a.events.Publish(event)

	a.mu.Lock()
	ctx := a.runtimeCtx
	a.mu.Unlock()
	if ctx != nil {
		wailsruntime.EventsEmit(ctx, "audit:event", published)
	}
}

// runtimeContext returns current Wails runtime context for dialog APIs.
func (a *App) runtimeContext() (context.Context, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.runtimeCtx == nil {
		return nil, fmt.Errorf("runtime context is not initialized")
	}
	return a.runtimeCtx, nil
}

// newGeminiAdvisor builds the Gemini client when a credential is present.
// Without one the advisor stays nil and every request resolves to the fixed
// fallback text; diagnostics already reports the missing key.
func newGeminiAdvisor(model string) advisory.Advisor {
	apiKey := strings.TrimSpace(os.Getenv(diagnostics.APIKeyEnv))
	if apiKey == "" {
		return nil
	}

	advisor, err := advisory.NewGeminiAdvisor(context.Background(), apiKey, model)
	if err != nil {
		return nil
	}
	return advisor
}

// normalizeSettings trims user inputs and applies defaults when empty.
func normalizeSettings(settings domain.Settings) domain.Settings {
	settings.Model = strings.TrimSpace(settings.Model)
	if settings.Model == "" {
		settings.Model = advisory.DefaultModel
	}
	if settings.DefaultCategory == "" {
		settings.DefaultCategory = domain.CategoryAll
	}
	return settings
}
