// Package supernal ties the configuration engine to a project directory.
//
// A supernal project keeps its configuration under .supernal/: the project
// config at .supernal/config.yaml, reusable patterns under
// .supernal/patterns/{type}/{name}.yaml, and requirements under
// .supernal/requirements/.
//
// Core types:
//   - Project: A validated project root with lazy access to configuration,
//     workflow view, and requirement store
//
// Example usage:
//
//	project, err := supernal.Open(".")
//	if err != nil {
//	    return err
//	}
//
//	merged, err := project.Config()
//	if err != nil {
//	    return err
//	}
//
//	store, err := project.Requirements()
//	if err != nil {
//	    return err
//	}
//	req, err := store.Create("Wire up the release workflow")
package supernal
