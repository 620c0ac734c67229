package reposync

import (
	"strings"
)

// SyncOutcome is the classified result of a git invocation.
type SyncOutcome int

// Classified outcomes of git invocations.
const (
	SyncOutcomeUnclassified SyncOutcome = iota
	SyncOutcomeSucceeded
	SyncOutcomeNotFound
	SyncOutcomeAuthenticationFailed
	SyncOutcomeAlreadyExists
)

const (
	syncOutcomeUnclassifiedLabelConstant         = "unclassified"
	syncOutcomeSucceededLabelConstant            = "succeeded"
	syncOutcomeNotFoundLabelConstant             = "not_found"
	syncOutcomeAuthenticationFailedLabelConstant = "authentication_failed"
	syncOutcomeAlreadyExistsLabelConstant        = "already_exists"
	notFoundMarkerConstant                       = "not found"
	alreadyExistsMarkerConstant                  = "already exists"
	authenticationFailedMarkerConstant           = "Authentication failed"
	pullUpdatingMarkerConstant                   = "Updating"
	pullUpToDateMarkerConstant                   = "up-to-date"
	pullAlreadyUpToDateMarkerConstant            = "Already up to date"
	checkoutUnknownReferenceMarkerConstant       = "did not match"
)

// String renders the outcome as a stable label.
func (outcome SyncOutcome) String() string {
	switch outcome {
	case SyncOutcomeSucceeded:
		return syncOutcomeSucceededLabelConstant
	case SyncOutcomeNotFound:
		return syncOutcomeNotFoundLabelConstant
	case SyncOutcomeAuthenticationFailed:
		return syncOutcomeAuthenticationFailedLabelConstant
	case SyncOutcomeAlreadyExists:
		return syncOutcomeAlreadyExistsLabelConstant
	default:
		return syncOutcomeUnclassifiedLabelConstant
	}
}

type diagnosticPattern struct {
	marker          string
	caseInsensitive bool
	outcome         SyncOutcome
}

func (pattern diagnosticPattern) matches(text string) bool {
	if pattern.caseInsensitive {
		return strings.Contains(strings.ToLower(text), strings.ToLower(pattern.marker))
	}
	return strings.Contains(text, pattern.marker)
}

// errorStreamPatterns is evaluated in order; the first match wins.
var errorStreamPatterns = []diagnosticPattern{
	{marker: notFoundMarkerConstant, caseInsensitive: true, outcome: SyncOutcomeNotFound},
	{marker: alreadyExistsMarkerConstant, outcome: SyncOutcomeAlreadyExists},
	{marker: authenticationFailedMarkerConstant, outcome: SyncOutcomeAuthenticationFailed},
}

var pullSuccessPatterns = []diagnosticPattern{
	{marker: pullUpdatingMarkerConstant, outcome: SyncOutcomeSucceeded},
	{marker: pullUpToDateMarkerConstant, outcome: SyncOutcomeSucceeded},
	{marker: pullAlreadyUpToDateMarkerConstant, outcome: SyncOutcomeSucceeded},
}

var checkoutFailurePatterns = []diagnosticPattern{
	{marker: checkoutUnknownReferenceMarkerConstant, outcome: SyncOutcomeUnclassified},
}

// ClassifyErrorStream maps git's standard error onto an outcome. Text without a
// recognized marker is SyncOutcomeUnclassified.
func ClassifyErrorStream(standardError string) SyncOutcome {
	outcome, _ := matchFirst(errorStreamPatterns, standardError)
	return outcome
}

// ClassifyPull classifies the output of git pull. Error markers take precedence
// over success markers.
func ClassifyPull(standardOutput string, standardError string) SyncOutcome {
	if outcome, matched := matchFirst(errorStreamPatterns, standardError); matched {
		return outcome
	}
	if outcome, matched := matchFirst(pullSuccessPatterns, standardOutput); matched {
		return outcome
	}
	return SyncOutcomeUnclassified
}

// ClassifyCheckout reports whether git checkout switched branches. Only an
// unresolved reference counts as failure; "Already on" and "Switched to" both succeed.
func ClassifyCheckout(standardError string) SyncOutcome {
	if _, matched := matchFirst(checkoutFailurePatterns, standardError); matched {
		return SyncOutcomeUnclassified
	}
	return SyncOutcomeSucceeded
}

func matchFirst(patterns []diagnosticPattern, text string) (SyncOutcome, bool) {
	for _, pattern := range patterns {
		if pattern.matches(text) {
			return pattern.outcome, true
		}
	}
	return SyncOutcomeUnclassified, false
}
