// Package gitrepo wraps the git commands urisync needs behind RepositoryManager.
//
// Every method takes the repository working tree as its first argument and runs
// exactly one git process in it. Probe commands that answer through their exit
// code (branch lookup, HEAD attachment, staged diff, upstream lookup) return
// booleans instead of errors.
package gitrepo
