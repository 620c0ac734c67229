// Package gitrepo derives local storage locations from remote repository
// addresses and prepares credentialed clone addresses.
//
// LocationResolver maps a remote address onto <storageRoot>/<owner>/<name>,
// while Credentials and CredentialScrubber handle embedding secrets into clone
// addresses and removing them again from any diagnostic text.
package gitrepo
