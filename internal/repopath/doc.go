// Package repopath models the repositories a urisync run touches.
//
// GitModulesReference is one entry of the input list and names a .gitmodules
// file; RepositoryPath is the working tree that owns it. Paths are cleaned and
// absolute so that depth comparisons and parent lookups are purely lexical,
// while Validator confirms on disk that each path really is a git repository.
package repopath
