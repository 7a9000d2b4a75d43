package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"tl9000-audit/internal/advisory"
	"tl9000-audit/internal/catalog"
	"tl9000-audit/internal/checklist"
	"tl9000-audit/internal/domain"
	"tl9000-audit/internal/selection"
)

// fakeStore returns deterministic settings for App tests.
type fakeStore struct {
	settings domain.Settings
}

// Load returns preconfigured settings.
func (s *fakeStore) Load() (domain.Settings, error) {
	return s.settings, nil
}

// Save is a no-op for tests.
func (s *fakeStore) Save(domain.Settings) error {
	return nil
}

// blockingAdvisor holds both sub-requests until released.
type blockingAdvisor struct {
	release     chan struct{}
	explanation string
	questions   string
	explainErr  error
}

// Explain blocks until released, then returns injected text or error.
func (a *blockingAdvisor) Explain(ctx context.Context, clause, description string) (string, error) {
	<-a.release
	if a.explainErr != nil {
		return "", a.explainErr
	}
	return a.explanation, nil
}

// AuditQuestions blocks until released, then returns injected text.
func (a *blockingAdvisor) AuditQuestions(ctx context.Context, clause, requirement string) (string, error) {
	<-a.release
	return a.questions, nil
}

// newTestApp builds an app with the catalog checklist and an injected advisor.
func newTestApp(advisor advisory.Advisor) *App {
	return &App{
		Settings:  domain.Settings{Model: advisory.DefaultModel, DefaultCategory: domain.CategoryAll},
		Store:     &fakeStore{settings: domain.Settings{Model: advisory.DefaultModel}},
		Checklist: checklist.NewStore(catalog.Sections()),
		Selection: selection.NewManager(),
		Advisor:   advisor,
		events:    selection.NewEventBus(100),
	}
}

// waitForState polls until the selection reaches the desired state or times out.
func waitForState(t *testing.T, app *App, want selection.State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if app.CurrentSelection().State == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("state = %s, want %s", app.CurrentSelection().State, want)
}

// TestRequestAdvisoryDeliversJoinedRecord checks the happy-path fan-in.
func TestRequestAdvisoryDeliversJoinedRecord(t *testing.T) {
	advisor := &blockingAdvisor{
		release:     make(chan struct{}),
		explanation: "do this",
		questions:   "ask that",
	}
	app := newTestApp(advisor)

	app.SelectItem("sec-4", "4.1")
	if _, err := app.RequestAdvisory(); err != nil {
		t.Fatalf("request advisory: %v", err)
	}

	if record := app.CurrentAdvisory(); record != nil {
		t.Fatalf("record visible before join: %+v", record)
	}

	close(advisor.release)
	waitForState(t, app, selection.StateAdvisoryReady)

	record := app.CurrentAdvisory()
	if record == nil {
		t.Fatal("expected advisory record")
	}
	if record.Explanation != "do this" || record.AuditQuestions != "ask that" {
		t.Fatalf("record = %+v", record)
	}
}

// TestRequestAdvisoryRejectsConcurrentRequest checks the in-flight guard.
func TestRequestAdvisoryRejectsConcurrentRequest(t *testing.T) {
	advisor := &blockingAdvisor{release: make(chan struct{})}
	app := newTestApp(advisor)

	app.SelectItem("sec-4", "4.1")
	if _, err := app.RequestAdvisory(); err != nil {
		t.Fatalf("first request: %v", err)
	}
	if _, err := app.RequestAdvisory(); !errors.Is(err, selection.ErrAdvisoryInFlight) {
		t.Fatalf("second request error = %v, want %v", err, selection.ErrAdvisoryInFlight)
	}

	close(advisor.release)
	waitForState(t, app, selection.StateAdvisoryReady)
}

// TestRequestAdvisoryWithoutSelectionFails checks the unselected guard.
func TestRequestAdvisoryWithoutSelectionFails(t *testing.T) {
	app := newTestApp(nil)
	if _, err := app.RequestAdvisory(); !errors.Is(err, selection.ErrNoSelection) {
		t.Fatalf("error = %v, want %v", err, selection.ErrNoSelection)
	}
}

// TestStaleAdvisoryResultIsDiscarded verifies reselecting while awaiting
// discards the late result without touching the newer selection's display.
func TestStaleAdvisoryResultIsDiscarded(t *testing.T) {
	advisor := &blockingAdvisor{
		release:     make(chan struct{}),
		explanation: "stale explanation",
		questions:   "stale questions",
	}
	app := newTestApp(advisor)

	app.SelectItem("sec-4", "4.1")
	if _, err := app.RequestAdvisory(); err != nil {
		t.Fatalf("request advisory: %v", err)
	}

	app.SelectItem("sec-5", "5.1.1")
	close(advisor.release)

	// Give the stale join a chance to run before asserting.
	time.Sleep(50 * time.Millisecond)

	current := app.CurrentSelection()
	if current.ItemID != "5.1.1" || current.State != selection.StateSelected {
		t.Fatalf("selection = %+v, want 5.1.1 selected", current)
	}
	if record := app.CurrentAdvisory(); record != nil {
		t.Fatalf("stale record displayed: %+v", record)
	}
}

// TestRequestAdvisoryPartialFailureShowsFallback checks per-request fallback text.
func TestRequestAdvisoryPartialFailureShowsFallback(t *testing.T) {
	advisor := &blockingAdvisor{
		release:    make(chan struct{}),
		questions:  "real questions",
		explainErr: errors.New("network down"),
	}
	app := newTestApp(advisor)

	app.SelectItem("sec-8", "8.1.2")
	if _, err := app.RequestAdvisory(); err != nil {
		t.Fatalf("request advisory: %v", err)
	}
	close(advisor.release)
	waitForState(t, app, selection.StateAdvisoryReady)

	record := app.CurrentAdvisory()
	if record == nil {
		t.Fatal("expected advisory record")
	}
	if record.Explanation != advisory.ExplanationFallback {
		t.Fatalf("explanation = %q, want fallback", record.Explanation)
	}
	if record.AuditQuestions != "real questions" {
		t.Fatalf("questions = %q", record.AuditQuestions)
	}
}

// TestRequestAdvisoryWithoutAdvisorYieldsFallbacks checks the unconfigured path.
func TestRequestAdvisoryWithoutAdvisorYieldsFallbacks(t *testing.T) {
	app := newTestApp(nil)
	app.SelectItem("sec-4", "4.1")
	if _, err := app.RequestAdvisory(); err != nil {
		t.Fatalf("request advisory: %v", err)
	}
	waitForState(t, app, selection.StateAdvisoryReady)

	record := app.CurrentAdvisory()
	if record == nil {
		t.Fatal("expected advisory record")
	}
	if record.Explanation != advisory.ExplanationFallback || record.AuditQuestions != advisory.QuestionsFallback {
		t.Fatalf("record = %+v, want both fallbacks", record)
	}
}

// TestSelectItemUnknownTargetKeepsSelection checks the silent-miss policy.
func TestSelectItemUnknownTargetKeepsSelection(t *testing.T) {
	app := newTestApp(nil)
	app.SelectItem("sec-4", "4.1")

	got := app.SelectItem("sec-4", "nope")
	if got.ItemID != "4.1" || got.State != selection.StateSelected {
		t.Fatalf("selection = %+v, want 4.1 selected", got)
	}
}

// TestSelectItemClearsAdvisoryRecord verifies moving off a clause drops its guidance.
func TestSelectItemClearsAdvisoryRecord(t *testing.T) {
	app := newTestApp(nil)
	app.SelectItem("sec-4", "4.1")
	if _, err := app.RequestAdvisory(); err != nil {
		t.Fatalf("request advisory: %v", err)
	}
	waitForState(t, app, selection.StateAdvisoryReady)

	app.SelectItem("sec-5", "5.1.1")
	if record := app.CurrentAdvisory(); record != nil {
		t.Fatalf("record survived reselect: %+v", record)
	}
}

// TestUpdateItemPublishesChecklistEvent checks the UI event feed.
func TestUpdateItemPublishesChecklistEvent(t *testing.T) {
	app := newTestApp(nil)
	status := domain.StatusCompliant
	app.UpdateItem("sec-4", "4.1", checklist.ItemUpdate{Status: &status})

	events := app.Events(0)
	if len(events) == 0 {
		t.Fatal("expected events")
	}
	found := false
	for _, event := range events {
		if event.Type == selection.EventTypeChecklist && event.ItemID == "4.1" {
			found = true
		}
	}
	if !found {
		t.Fatalf("checklist event not found in %+v", events)
	}

	item, _ := app.Checklist.Item("sec-4", "4.1")
	if item.Status != domain.StatusCompliant {
		t.Fatalf("status = %s, want %s", item.Status, domain.StatusCompliant)
	}
}

// TestGetFilteredSectionsAndStatsDefaults checks empty category maps to ALL.
func TestGetFilteredSectionsAndStatsDefaults(t *testing.T) {
	app := newTestApp(nil)

	sections := app.GetFilteredSections("", "")
	if len(sections) != len(app.GetSections()) {
		t.Fatalf("filtered sections = %d, want %d", len(sections), len(app.GetSections()))
	}

	stats := app.GetStats("")
	if stats.Total != 13 {
		t.Fatalf("total = %d, want 13", stats.Total)
	}
	if stats.Progress != 0 {
		t.Fatalf("progress = %v, want 0", stats.Progress)
	}
}
