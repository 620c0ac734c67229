package gitrepo

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

const (
	storageRootRequiredMessageConstant     = "storage root must be provided"
	fileSystemNotConfiguredMessageConstant = "file system not configured"
	storageRootPermissionsConstant         = fs.FileMode(0o755)
	storageRootCreationErrorTemplate       = "unable to create storage root %s: %w"
)

// ErrStorageRootRequired indicates the resolver was constructed without a storage root.
var ErrStorageRootRequired = errors.New(storageRootRequiredMessageConstant)

// ErrFileSystemNotConfigured indicates the resolver was constructed without a file system.
var ErrFileSystemNotConfigured = errors.New(fileSystemNotConfiguredMessageConstant)

// FileSystem exposes the filesystem operations required to manage local copies.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	MkdirAll(path string, permissions fs.FileMode) error
}

// RepositoryLocation describes where a remote repository is mirrored locally.
type RepositoryLocation struct {
	RemoteAddress string
	Owner         string
	Name          string
	LocalPath     string
}

// LocationResolver maps remote addresses onto directories below a storage root.
type LocationResolver struct {
	storageRoot string
	fileSystem  FileSystem
}

// NewLocationResolver constructs a LocationResolver rooted at storageRoot.
func NewLocationResolver(storageRoot string, fileSystem FileSystem) (*LocationResolver, error) {
	trimmedStorageRoot := strings.TrimSpace(storageRoot)
	if len(trimmedStorageRoot) == 0 {
		return nil, ErrStorageRootRequired
	}
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	return &LocationResolver{storageRoot: filepath.Clean(trimmedStorageRoot), fileSystem: fileSystem}, nil
}

// StorageRoot reports the directory under which local copies are created.
func (resolver *LocationResolver) StorageRoot() string {
	return resolver.storageRoot
}

// Resolve derives <storageRoot>/<owner>/<name> for the remote address and makes
// sure the storage root exists. Credentials and branches never influence the result.
func (resolver *LocationResolver) Resolve(remoteAddress string) (RepositoryLocation, error) {
	parsedAddress, parseError := ParseRemoteAddress(remoteAddress)
	if parseError != nil {
		return RepositoryLocation{}, parseError
	}

	if mkdirError := resolver.fileSystem.MkdirAll(resolver.storageRoot, storageRootPermissionsConstant); mkdirError != nil {
		return RepositoryLocation{}, fmt.Errorf(storageRootCreationErrorTemplate, resolver.storageRoot, mkdirError)
	}

	return RepositoryLocation{
		RemoteAddress: parsedAddress.Address,
		Owner:         parsedAddress.Owner,
		Name:          parsedAddress.Name,
		LocalPath:     filepath.Join(resolver.storageRoot, parsedAddress.Owner, parsedAddress.Name),
	}, nil
}
