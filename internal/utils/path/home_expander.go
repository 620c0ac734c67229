// Package pathutils resolves user-supplied directory settings.
package pathutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant               = "~"
	homeResolutionErrorTemplate       = "unable to resolve home directory for %s: %w"
	absolutePathResolutionErrorFormat = "unable to resolve absolute path for %s: %w"
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander converts "~" prefixes into absolute directories.
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
	homeDirectory         string
	homeDirectoryError    error
	initializationGuard   sync.Once
}

// NewHomeExpander constructs a HomeExpander using the operating system lookup.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{homeDirectoryProvider: provider}
}

// Expand replaces a leading "~" or "~/" with the home directory. Other forms,
// including "~user", are returned unchanged.
func (expander *HomeExpander) Expand(candidatePath string) (string, error) {
	trimmedPath := strings.TrimSpace(candidatePath)
	if !strings.HasPrefix(trimmedPath, tildeSymbolConstant) {
		return trimmedPath, nil
	}

	remainder := strings.TrimPrefix(trimmedPath, tildeSymbolConstant)
	if len(remainder) > 0 && remainder[0] != '/' && remainder[0] != os.PathSeparator {
		return trimmedPath, nil
	}

	homeDirectory, homeError := expander.resolveHomeDirectory()
	if homeError != nil {
		return "", fmt.Errorf(homeResolutionErrorTemplate, trimmedPath, homeError)
	}
	return filepath.Join(homeDirectory, remainder), nil
}

// ResolveDirectory expands "~" and converts the result into a cleaned absolute path.
func (expander *HomeExpander) ResolveDirectory(candidatePath string) (string, error) {
	expandedPath, expandError := expander.Expand(candidatePath)
	if expandError != nil {
		return "", expandError
	}
	if len(expandedPath) == 0 {
		return "", nil
	}

	absolutePath, absoluteError := filepath.Abs(expandedPath)
	if absoluteError != nil {
		return "", fmt.Errorf(absolutePathResolutionErrorFormat, expandedPath, absoluteError)
	}
	return absolutePath, nil
}

func (expander *HomeExpander) resolveHomeDirectory() (string, error) {
	expander.initializationGuard.Do(func() {
		expander.homeDirectory, expander.homeDirectoryError = expander.homeDirectoryProvider()
	})
	return expander.homeDirectory, expander.homeDirectoryError
}
