package services

import (
	"fmt"
	"strings"

	"task-management/backend/errs"
	"task-management/backend/models"
)

// transitionRule is the precondition for entering one target state.
// A nil from slice admits every non-terminal source state.
type transitionRule struct {
	from           []models.TaskState
	reasonRequired bool
}

// Each target is evaluated on its own; a rule never consults another target's rule.
var transitionRules = map[models.TaskState]transitionRule{
	models.StateBacklog:       {from: []models.TaskState{models.StateInAnalysis}},
	models.StateInAnalysis:    {from: []models.TaskState{models.StateBacklog, models.StateInDevelopment}},
	models.StateInDevelopment: {from: []models.TaskState{models.StateInAnalysis}},
	models.StateCompleted:     {from: []models.TaskState{models.StateInDevelopment}},
	models.StateCancelled:     {reasonRequired: true},
	models.StateBlocked:       {from: []models.TaskState{models.StateInAnalysis, models.StateInDevelopment}, reasonRequired: true},
}

func (r transitionRule) admits(current models.TaskState) bool {
	if r.from == nil {
		return !current.IsTerminal()
	}
	for _, s := range r.from {
		if s == current {
			return true
		}
	}
	return false
}

// CheckTransition validates a requested move from current to target. Source
// legality is checked before the reason, so BLOCKED from BACKLOG is a state
// conflict even when a reason is supplied.
func CheckTransition(current, target models.TaskState, reason *string) error {
	if current.IsTerminal() {
		return fmt.Errorf("task is %s: %w", current, errs.ErrTaskStateCannotBeChanged)
	}

	rule, ok := transitionRules[target]
	if !ok {
		return fmt.Errorf("%q: %w", target, errs.ErrInvalidTaskState)
	}
	if !rule.admits(current) {
		return fmt.Errorf("%s -> %s: %w", current, target, errs.ErrTaskStateCannotBeChanged)
	}
	if rule.reasonRequired && !hasReason(reason) {
		return fmt.Errorf("%s -> %s: %w", current, target, errs.ErrReasonRequired)
	}
	return nil
}

// CanTransition is CheckTransition without the reason rule.
func CanTransition(current, target models.TaskState) bool {
	rule, ok := transitionRules[target]
	return ok && !current.IsTerminal() && rule.admits(current)
}

func hasReason(reason *string) bool {
	return reason != nil && strings.TrimSpace(*reason) != ""
}
