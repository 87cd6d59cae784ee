// Package execshell runs git on behalf of urisync.
//
// ShellExecutor logs every invocation through zap, notifies CommandEventObservers
// and converts non-zero exits into CommandFailedError so callers can branch on
// probe results with ExitCodeOf. OSCommandRunner is the os/exec backed runner.
package execshell
