package repos

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

const (
	blameUseConstant                 = "blame <file> <line>"
	blameShortDescription            = "Report who last changed a line of a checked-out file"
	blameLongDescription             = "blame reports the author and timestamp of the last change to a line range of a file inside a git working tree."
	blameLengthFlagNameConstant      = "length"
	blameLengthFlagUsageConstant     = "Number of lines to inspect starting at <line>."
	blamePathFlagNameConstant        = "path"
	blamePathFlagUsageConstant       = "Working tree containing the file."
	blameDefaultPathConstant         = "."
	blameDefaultLengthConstant       = 1
	blameFoundMessageTemplate        = "BLAME: %s:%d -> %s (%s)\n"
	blameMissingMessageTemplate      = "NO AUTHOR: %s:%d\n"
	invalidLineNumberMessageConstant = "line number must be a positive integer"
	invalidLineNumberErrorTemplate   = "%w: %q"
)

// ErrInvalidLineNumber indicates the line argument was not a positive integer.
var ErrInvalidLineNumber = errors.New(invalidLineNumberMessageConstant)

// BlameCommandBuilder assembles the blame command.
type BlameCommandBuilder struct {
	ServiceProviders
}

// Build constructs the blame command.
func (builder *BlameCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   blameUseConstant,
		Short: blameShortDescription,
		Long:  blameLongDescription,
		Args:  cobra.ExactArgs(2),
		RunE:  builder.run,
	}

	command.Flags().Int(blameLengthFlagNameConstant, blameDefaultLengthConstant, blameLengthFlagUsageConstant)
	command.Flags().String(blamePathFlagNameConstant, blameDefaultPathConstant, blamePathFlagUsageConstant)

	return command, nil
}

func (builder *BlameCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	file := arguments[0]

	lineNumber, parseError := strconv.Atoi(arguments[1])
	if parseError != nil || lineNumber < 1 {
		return fmt.Errorf(invalidLineNumberErrorTemplate, ErrInvalidLineNumber, arguments[1])
	}

	length, _ := command.Flags().GetInt(blameLengthFlagNameConstant)
	workingTree, _ := command.Flags().GetString(blamePathFlagNameConstant)

	service, serviceError := builder.buildService(configuration)
	if serviceError != nil {
		return serviceError
	}

	executionContext, cancel := commandContext(command, configuration)
	defer cancel()

	blameResult, blameError := service.Committer(executionContext, file, workingTree, lineNumber, length)
	if blameError != nil {
		return blameError
	}

	if !blameResult.Found {
		fmt.Fprintf(command.OutOrStdout(), blameMissingMessageTemplate, file, lineNumber)
		return nil
	}

	fmt.Fprintf(command.OutOrStdout(), blameFoundMessageTemplate, file, lineNumber, blameResult.Author, blameResult.Timestamp)
	return nil
}
