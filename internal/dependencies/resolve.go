package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/reposync/internal/execshell"
	"github.com/temirov/reposync/internal/filesystem"
	"github.com/temirov/reposync/internal/gitrepo"
	"github.com/temirov/reposync/internal/reposync"
	"github.com/temirov/reposync/internal/ui"
)

// ResolveLogger returns the provided logger or a no-op logger.
func ResolveLogger(existing *zap.Logger) *zap.Logger {
	if existing != nil {
		return existing
	}
	return zap.NewNop()
}

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing gitrepo.FileSystem) gitrepo.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed
// default. Human-readable logging renders command events as console sentences.
func ResolveGitExecutor(existing reposync.GitExecutor, logger *zap.Logger, humanReadableLogging bool) (reposync.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	var observers []execshell.CommandEventObserver
	if humanReadableLogging {
		observers = append(observers, ui.NewConsoleCommandEventLogger(logger))
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), observers...)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}
