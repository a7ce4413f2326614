package workflow

import "errors"

// Workflow structure errors.
var (
	// ErrNoStates indicates the configuration declares no workflow states.
	ErrNoStates = errors.New("workflow declares no states")

	// ErrUnnamedState indicates a state entry without a name.
	ErrUnnamedState = errors.New("workflow state has no name")

	// ErrDuplicateState indicates two states share a name.
	ErrDuplicateState = errors.New("duplicate workflow state")

	// ErrUnknownState indicates a reference to an undeclared state.
	ErrUnknownState = errors.New("unknown workflow state")

	// ErrUnknownPriority indicates the default priority is not declared.
	ErrUnknownPriority = errors.New("unknown priority")
)
