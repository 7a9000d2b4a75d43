// Package advisory integrates the external generative-text service that
// produces implementation guidance and audit questions for a clause.
package advisory

import (
	"context"
	"sync"
)

// Fallback text shown in place of a failed sub-request. Each request fails
// independently, so one side of the record can be real text while the other
// carries the fallback.
const (
	ExplanationFallback = "Error generating explanation. Please check your connection and try again."
	QuestionsFallback   = "Error generating questions."
)

// Advisor is the external guidance collaborator.
type Advisor interface {
	Explain(ctx context.Context, clause, description string) (string, error)
	AuditQuestions(ctx context.Context, clause, requirement string) (string, error)
}

// Record is one complete advisory result. It is ephemeral display content and
// is never written back to the checklist.
type Record struct {
	Explanation    string `json:"explanation"`
	AuditQuestions string `json:"auditQuestions"`
}

// Fetch issues the explanation and audit-question requests concurrently and
// joins both before returning. Failures are substituted per-request with the
// fixed fallback text; Fetch itself never fails. A nil advisor (no API key
// configured) behaves as if both requests failed.
func Fetch(ctx context.Context, advisor Advisor, clause, description string) Record {
	if advisor == nil {
		return Record{
			Explanation:    ExplanationFallback,
			AuditQuestions: QuestionsFallback,
		}
	}

	var record Record
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		text, err := advisor.Explain(ctx, clause, description)
		if err != nil {
			text = ExplanationFallback
		}
		record.Explanation = text
	}()
	go func() {
		defer wg.Done()
		text, err := advisor.AuditQuestions(ctx, clause, description)
		if err != nil {
			text = QuestionsFallback
		}
		record.AuditQuestions = text
	}()

	wg.Wait()
	return record
}
