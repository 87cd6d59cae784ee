// Package propagation commits rewritten .gitmodules files and carries the new
// submodule references up through every parent repository.
//
// Propagator.Run works in two phases over the same deepest-first order. Phase 1
// commits and pushes each repository's own .gitmodules. Phase 2 records each
// repository's new commit in its superproject, one commit per parent covering
// every child of that parent in the run.
package propagation
