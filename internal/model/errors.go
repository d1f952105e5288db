package model

import (
	"errors"
	"fmt"

	"breakdesk-backend/internal/breaktime"
)

// All booking failures are recoverable by the user: they reject the current
// action and leave the system usable for the next one.
var (
	ErrDuplicateName       = errors.New("a template with that name already exists")
	ErrLastTemplate        = errors.New("cannot delete the last remaining template")
	ErrTemplateNotFound    = errors.New("template not found")
	ErrNoAssignedTemplate  = errors.New("no active template is assigned to this agent")
	ErrNoTemplateSelected  = errors.New("no template selected")
	ErrTemplateUnavailable = errors.New("the selected template is no longer available")
	ErrIncompleteSelection = errors.New("all three breaks must be selected")
	ErrUnknownSlot         = errors.New("selected time is not a slot of the chosen template")
	ErrAlreadyBooked       = errors.New("breaks already confirmed for today")
	ErrNotPending          = errors.New("no matching clear request is pending")
)

// SlotConflictError reports two selected breaks that overlap.
type SlotConflictError struct {
	KindA breaktime.Kind
	TimeA breaktime.TimeOfDay
	KindB breaktime.Kind
	TimeB breaktime.TimeOfDay
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("conflict detected between %s (%s) and %s (%s)",
		e.KindA.Display(), e.TimeA, e.KindB.Display(), e.TimeB)
}

// SlotFullError reports a slot that has reached its capacity limit.
type SlotFullError struct {
	Kind breaktime.Kind
	Slot string
}

func (e *SlotFullError) Error() string {
	return fmt.Sprintf("%s break at %s is full", e.Kind.Display(), e.Slot)
}
