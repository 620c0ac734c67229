// Package utils houses the configuration loader and logger factory shared by
// the reposync commands.
package utils
