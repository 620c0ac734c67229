// Package filesystem provides the operating-system backed file system used to
// manage the storage root and detect local copies.
package filesystem

import (
	"io/fs"
	"os"
)

// OSFileSystem implements the file system contracts of gitrepo and reposync using the operating system primitives.
type OSFileSystem struct{}

// Stat retrieves file metadata.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// MkdirAll ensures a directory hierarchy exists with the provided permissions.
func (OSFileSystem) MkdirAll(path string, permissions fs.FileMode) error {
	return os.MkdirAll(path, permissions)
}

// DirectoryExists reports whether path exists and is a directory.
func (fileSystem OSFileSystem) DirectoryExists(path string) bool {
	fileInfo, statError := fileSystem.Stat(path)
	if statError != nil {
		return false
	}
	return fileInfo.IsDir()
}
