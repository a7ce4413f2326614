package board

import "errors"

// Requirement store errors.
var (
	// ErrNotFound indicates the requirement does not exist.
	ErrNotFound = errors.New("requirement not found")

	// ErrUnknownState indicates a state not declared by the workflow.
	ErrUnknownState = errors.New("unknown workflow state")

	// ErrInvalidTransition indicates a move the workflow does not allow.
	ErrInvalidTransition = errors.New("transition not allowed")

	// ErrEmptyTitle indicates a requirement without a title.
	ErrEmptyTitle = errors.New("requirement title is empty")
)
