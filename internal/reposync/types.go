package reposync

import (
	"github.com/temirov/reposync/internal/gitrepo"
)

// DefaultBranchName is used when neither the handle nor the service names a branch.
const DefaultBranchName = "master"

// RepositoryHandle identifies one tracked repository. Handles are built per
// request and never persisted; the presence of the local copy on disk is the
// only state.
type RepositoryHandle struct {
	RemoteAddress string
	Location      gitrepo.RepositoryLocation
	Branch        string
	Credentials   *gitrepo.Credentials
}

// LocalPath reports the directory holding the local copy.
func (handle RepositoryHandle) LocalPath() string {
	return handle.Location.LocalPath
}

// HandleOptions describe the repository a caller wants to work with.
type HandleOptions struct {
	RemoteAddress string
	Branch        string
	Credentials   *gitrepo.Credentials
}

// DiffResult maps file names to the lines added to them, in order of appearance.
type DiffResult map[string][]string

// BlameResult carries the author and timestamp of a line. Author and Timestamp
// are empty when Found is false.
type BlameResult struct {
	Found     bool
	Author    string
	Timestamp string
}

// OperationResult reports whether an operation succeeded together with a
// credential-free diagnostic message.
type OperationResult struct {
	Success bool
	Message string
}
