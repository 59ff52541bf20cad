package service

import "errors"

var (
	// ErrInvalidPercent is returned for percentages outside [0, 100] or not finite.
	ErrInvalidPercent = errors.New("percent must be a number between 0 and 100")
	// ErrUnknownChecklistItem is returned when a checklist update names an item the service does not have.
	ErrUnknownChecklistItem = errors.New("unknown checklist item")
)
