// Package workflow provides a typed view over a merged configuration
// document for kanban and requirement tooling.
//
// Core types:
//   - Config: Workflow states, transitions, and priority settings
//   - State: A single board column with its category and WIP limit
//
// The view is structural only: it checks that states are unique, that
// transitions reference declared states, and that the default priority is
// one of the declared priorities. Semantic validation of configuration
// values belongs to dedicated validators, not here.
//
// Example usage:
//
//	merged, _ := loader.Get("project.yaml")
//	wf, err := workflow.FromDocument(merged)
//	if err != nil {
//	    return err
//	}
//	if !wf.CanTransition("backlog", "done") {
//	    return fmt.Errorf("move not allowed")
//	}
package workflow
