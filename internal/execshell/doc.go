// Package execshell provides structured helpers for invoking the git executable.
//
// It wraps os/exec with zap logging via ShellExecutor, exposes OSCommandRunner
// for default process execution, and masks sensitive arguments such as
// credentialed remote addresses before any command is described in logs.
package execshell
