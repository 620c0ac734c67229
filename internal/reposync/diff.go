package reposync

import (
	"context"
	"strings"
)

const (
	diffOperationNameConstant   = "diff"
	gitDiffSubcommandConstant   = "diff"
	diffLineSeparatorConstant   = "\n"
	diffCarriageReturnConstant  = "\r"
	diffNewFileMarkerConstant   = "+++"
	diffAddedLineMarkerConstant = "+"
	diffPathSeparatorConstant   = "/"
)

// Diff compares two revisions and returns the lines added to each file.
// Revisions are passed to git unvalidated.
func (repository *Repository) Diff(executionContext context.Context, oldRevision string, newRevision string) (DiffResult, OperationResult, error) {
	rawOutput, operationResult, diffError := repository.DiffRaw(executionContext, oldRevision, newRevision)
	if diffError != nil || !operationResult.Success {
		return DiffResult{}, operationResult, diffError
	}
	return ParseDiff(rawOutput), operationResult, nil
}

// DiffRaw compares two revisions and returns git's unmodified output.
func (repository *Repository) DiffRaw(executionContext context.Context, oldRevision string, newRevision string) (string, OperationResult, error) {
	if !repository.LocalCopyExists() {
		return "", OperationResult{Success: false, Message: noLocalCopyMessageConstant}, nil
	}

	executionResult, executionError := repository.runGit(executionContext, []string{gitDiffSubcommandConstant, oldRevision, newRevision})
	if executionError != nil {
		operationResult, operationError := repository.executionFailure(diffOperationNameConstant, executionError)
		return "", operationResult, operationError
	}

	if executionResult.ExitCode != 0 {
		diagnostic := repository.scrubber.Scrub(strings.TrimSpace(executionResult.StandardError))
		repository.logOutcome(diffOperationNameConstant, SyncOutcomeUnclassified, diagnostic)
		return "", OperationResult{Success: false, Message: diagnostic}, nil
	}

	return executionResult.StandardOutput, OperationResult{Success: true}, nil
}

// ParseDiff extracts added lines per file from unified diff output.
//
// A "+++" line names the current file by its last path segment and resets that
// file's entry. Every other line starting with "+" appends its non-empty
// remainder to the current file. Added lines seen before any "+++" line are
// attributed to the empty file name. Deletions, renames, and hunk headers are
// ignored.
func ParseDiff(output string) DiffResult {
	result := DiffResult{}
	currentFileName := ""

	for _, line := range strings.Split(output, diffLineSeparatorConstant) {
		line = strings.TrimSuffix(line, diffCarriageReturnConstant)
		if len(line) == 0 {
			continue
		}
		if strings.HasPrefix(line, diffNewFileMarkerConstant) {
			pathSegments := strings.Split(line, diffPathSeparatorConstant)
			currentFileName = pathSegments[len(pathSegments)-1]
			result[currentFileName] = []string{}
			continue
		}
		if !strings.HasPrefix(line, diffAddedLineMarkerConstant) {
			continue
		}
		addedContent := line[len(diffAddedLineMarkerConstant):]
		if len(addedContent) == 0 {
			continue
		}
		result[currentFileName] = append(result[currentFileName], addedContent)
	}

	return result
}
