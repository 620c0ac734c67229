package reposync

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/temirov/reposync/internal/execshell"
)

const (
	gitBlameSubcommandConstant        = "blame"
	gitBlameLineRangeTemplateConstant = "-L%d,+%d"
	gitPathSeparatorArgumentConstant  = "--"
	minimumBlameLengthConstant        = 1
	blameAuthorGroupIndexConstant     = 1
	blameTimestampGroupIndexConstant  = 2
	blameExpectedGroupCountConstant   = 3
)

// blameLinePattern matches git blame's default line format:
//
//	362d5798 (wufeifei 2016-09-10 12:19:44 +0800 21) content
//
// an abbreviated revision, " (", the author, then a YYYY-MM-DD HH:MM:SS timestamp.
var blameLinePattern = regexp.MustCompile(`(?:.{8}\s\()(.*)\s(\d{4}-\d{2}-\d{2}\s\d{2}:\d{2}:\d{2})`)

// Committer reports who last changed lines lineNumber through
// lineNumber+length-1 of file inside the repository checked out at path.
// A length below one queries a single line. Empty git output yields a result
// with Found set to false.
func (service *Service) Committer(executionContext context.Context, file string, path string, lineNumber int, length int) (BlameResult, error) {
	if length < minimumBlameLengthConstant {
		length = minimumBlameLengthConstant
	}

	executionResult, executionError := runGitCapturingFailures(executionContext, service.executor, execshell.CommandDetails{
		Arguments: []string{
			gitBlameSubcommandConstant,
			fmt.Sprintf(gitBlameLineRangeTemplateConstant, lineNumber, length),
			gitPathSeparatorArgumentConstant,
			file,
		},
		WorkingDirectory: path,
	})
	if executionError != nil {
		return BlameResult{}, executionError
	}

	return ParseBlame(executionResult.StandardOutput)
}

// ParseBlame extracts author and timestamp from the first matching blame line.
// Output that is present but unparseable yields ErrBlameFormatUnrecognized.
func ParseBlame(output string) (BlameResult, error) {
	if len(strings.TrimSpace(output)) == 0 {
		return BlameResult{Found: false}, nil
	}

	matchGroups := blameLinePattern.FindStringSubmatch(output)
	if len(matchGroups) < blameExpectedGroupCountConstant {
		return BlameResult{}, ErrBlameFormatUnrecognized
	}

	return BlameResult{
		Found:     true,
		Author:    strings.TrimSpace(matchGroups[blameAuthorGroupIndexConstant]),
		Timestamp: matchGroups[blameTimestampGroupIndexConstant],
	}, nil
}
