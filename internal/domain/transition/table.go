// Package transition implements the finite-state status guard shared by all
// business resources. Each entity declares a Table of named actions; the
// guard validates legality against the current status, checks the action
// payload, and returns the full field set to persist atomically.
package transition

import (
	"fmt"
	"sort"
	"time"

	"enercore/internal/core/apperror"
	"enercore/internal/core/entity"
)

// Request carries one transition attempt: the named action, the acting user
// (passed explicitly, never read from ambient state), the action payload and
// the clock value used for side-effect timestamps.
type Request struct {
	Action  string
	Actor   string
	Payload map[string]any
	Now     time.Time
}

// Get returns a payload value or nil.
func (r Request) Get(field string) any {
	if r.Payload == nil {
		return nil
	}
	return r.Payload[field]
}

// GetString returns a payload value as a string, or "" when absent or not a
// string.
func (r Request) GetString(field string) string {
	if v, ok := r.Get(field).(string); ok {
		return v
	}
	return ""
}

// GetFloat returns a numeric payload value as float64. JSON numbers decode
// to float64; integers are accepted too.
func (r Request) GetFloat(field string) (float64, bool) {
	switch v := r.Get(field).(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Result is a successful attempt: the status change plus every side-effect
// field, for the repository to write in a single compare-and-swap update.
type Result struct {
	From string
	To   string

	// Fields includes "status" -> To and all side-effect assignments.
	Fields map[string]any
}

// AssignFunc builds side-effect field assignments for a legal transition.
// It runs after the source-state and payload checks passed.
type AssignFunc func(e entity.StatusHolder, req Request) map[string]any

// CheckFunc validates an entity-dependent business rule (e.g. refund amount
// not exceeding the original amount). It runs after payload presence checks
// and must return a BusinessRule or InvalidPayload AppError on violation.
type CheckFunc func(e entity.StatusHolder, req Request) error

// Rule declares one named action: its legal source states, the target state,
// required payload fields, an optional bound check and side-effect
// assignments.
type Rule struct {
	From []string
	To   string

	// RequiredFields must be present and non-empty in the payload.
	RequiredFields []string

	// Check is an optional business-rule validation against the entity.
	Check CheckFunc

	// Assign produces side-effect fields (timestamps, actor, reasons).
	// The status field itself is added by the guard.
	Assign AssignFunc
}

// Table is one entity type's finite state machine.
type Table struct {
	Entity  string
	Initial string
	Rules   map[string]Rule
}

// Attempt validates the requested action against the entity's current status
// and, on success, returns the full set of fields to persist. Nothing is
// mutated here; the caller applies Result.Fields with a status-conditioned
// update so only one of two racing transitions can win.
//
// Re-invoking an action whose target state the entity already occupies fails
// with an illegal-transition error rather than silently succeeding.
func (t *Table) Attempt(e entity.StatusHolder, req Request) (Result, error) {
	// Default the clock first so checks and assignments see the same value.
	if req.Now.IsZero() {
		req.Now = time.Now().UTC()
	}

	rule, ok := t.Rules[req.Action]
	if !ok {
		return Result{}, apperror.NewValidation(
			fmt.Sprintf("unknown action %q for %s", req.Action, t.Entity)).
			WithDetail("action", req.Action)
	}

	current := e.CurrentStatus()
	if !contains(rule.From, current) {
		return Result{}, apperror.NewIllegalTransition(t.Entity, req.Action, current)
	}

	for _, field := range rule.RequiredFields {
		if isEmpty(req.Get(field)) {
			return Result{}, apperror.NewInvalidPayload(req.Action, field,
				fmt.Sprintf("%s is required for action %q", field, req.Action))
		}
	}

	if rule.Check != nil {
		if err := rule.Check(e, req); err != nil {
			return Result{}, err
		}
	}

	fields := map[string]any{"status": rule.To}
	if rule.Assign != nil {
		for k, v := range rule.Assign(e, req) {
			fields[k] = v
		}
	}

	return Result{From: current, To: rule.To, Fields: fields}, nil
}

// CanApply reports whether action is legal from the given status.
// Used by metadata endpoints to advertise available actions.
func (t *Table) CanApply(status, action string) bool {
	rule, ok := t.Rules[action]
	return ok && contains(rule.From, status)
}

// Actions returns all declared action names, sorted.
func (t *Table) Actions() []string {
	names := make([]string, 0, len(t.Rules))
	for name := range t.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// States returns the closed set of states referenced by the table, sorted.
// The initial state is always included.
func (t *Table) States() []string {
	set := map[string]struct{}{t.Initial: {}}
	for _, rule := range t.Rules {
		set[rule.To] = struct{}{}
		for _, s := range rule.From {
			set[s] = struct{}{}
		}
	}
	states := make([]string, 0, len(set))
	for s := range set {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}

// Terminal returns the states with no outgoing transitions, sorted.
func (t *Table) Terminal() []string {
	var terminal []string
	for _, s := range t.States() {
		outgoing := false
		for _, rule := range t.Rules {
			if contains(rule.From, s) {
				outgoing = true
				break
			}
		}
		if !outgoing {
			terminal = append(terminal, s)
		}
	}
	return terminal
}

func contains(states []string, s string) bool {
	for _, st := range states {
		if st == s {
			return true
		}
	}
	return false
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	return false
}
