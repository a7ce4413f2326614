// Package board stores requirements as YAML files and enforces workflow
// state moves against a merged configuration.
//
// Core types:
//   - Requirement: A single work item with state, priority, and tags
//   - Store: Directory-backed requirement storage
//
// Each requirement lives at {dir}/{id}.yaml. State moves are validated
// against the workflow view when one is attached; without it the store is
// plain CRUD.
//
// Example usage:
//
//	store, err := board.NewStore(".supernal/requirements", wf)
//	if err != nil {
//	    return err
//	}
//
//	req, err := store.Create("Add pattern cache metrics",
//	    board.WithPriority("high"),
//	    board.WithTags("config", "observability"),
//	)
//	if err != nil {
//	    return err
//	}
//
//	if err := store.Move(req.ID, "doing"); err != nil {
//	    // board.ErrInvalidTransition, board.ErrUnknownState, ...
//	}
package board
