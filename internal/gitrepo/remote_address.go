package gitrepo

import (
	"fmt"
	"strings"
)

const (
	pathSeparatorConstant              = "/"
	gitSuffixConstant                  = ".git"
	currentDirectorySegmentConstant    = "."
	parentDirectorySegmentConstant     = ".."
	malformedAddressTemplateConstant   = "malformed remote address %q: %s"
	requiredValueMessageConstant       = "value required"
	missingOwnerAndNameMessageConstant = "expected owner and repository name segments"
	emptyOwnerMessageConstant          = "owner segment is empty"
	emptyNameMessageConstant           = "repository name segment is empty"
	relativeSegmentMessageConstant     = "relative path segments are not allowed"
	minimumAddressSegmentCountConstant = 2
)

// MalformedAddressError indicates a remote address cannot be decomposed into owner and name.
type MalformedAddressError struct {
	Address string
	Reason  string
}

// Error describes the malformed address.
func (malformedError MalformedAddressError) Error() string {
	return fmt.Sprintf(malformedAddressTemplateConstant, malformedError.Address, malformedError.Reason)
}

// RemoteAddress captures the owner and repository name encoded in a remote address.
type RemoteAddress struct {
	Address string
	Owner   string
	Name    string
}

// ParseRemoteAddress takes the last two slash-separated segments of the address as
// owner and repository name, stripping a trailing ".git" from the name.
func ParseRemoteAddress(remoteAddress string) (RemoteAddress, error) {
	trimmedAddress := strings.TrimRight(strings.TrimSpace(remoteAddress), pathSeparatorConstant)
	if len(trimmedAddress) == 0 {
		return RemoteAddress{}, MalformedAddressError{Address: remoteAddress, Reason: requiredValueMessageConstant}
	}

	segments := strings.Split(trimmedAddress, pathSeparatorConstant)
	if len(segments) < minimumAddressSegmentCountConstant {
		return RemoteAddress{}, MalformedAddressError{Address: remoteAddress, Reason: missingOwnerAndNameMessageConstant}
	}

	owner := segments[len(segments)-2]
	name := strings.TrimSuffix(segments[len(segments)-1], gitSuffixConstant)

	if len(owner) == 0 {
		return RemoteAddress{}, MalformedAddressError{Address: remoteAddress, Reason: emptyOwnerMessageConstant}
	}
	if len(name) == 0 {
		return RemoteAddress{}, MalformedAddressError{Address: remoteAddress, Reason: emptyNameMessageConstant}
	}
	if isRelativeSegment(owner) || isRelativeSegment(name) {
		return RemoteAddress{}, MalformedAddressError{Address: remoteAddress, Reason: relativeSegmentMessageConstant}
	}

	return RemoteAddress{Address: trimmedAddress, Owner: owner, Name: name}, nil
}

func isRelativeSegment(segment string) bool {
	return segment == currentDirectorySegmentConstant || segment == parentDirectorySegmentConstant
}
