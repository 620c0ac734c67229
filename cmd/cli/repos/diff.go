package repos

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/temirov/reposync/internal/reposync"
	"github.com/temirov/reposync/internal/utils/flags"
)

const (
	diffUseConstant             = "diff <remote> <old-revision> <new-revision>"
	diffShortDescription        = "List lines added between two revisions of a local copy"
	diffLongDescription         = "diff compares two revisions of an existing local copy and prints the added lines grouped by file name, or the unmodified git output with --raw."
	diffOperationNameConstant   = "diff"
	diffRawFlagNameConstant     = "raw"
	diffRawFlagUsageConstant    = "Print the unmodified git diff output."
	diffOutputFlagNameConstant  = "output"
	diffOutputFlagUsageConstant = "Format for parsed diff output (overrides diff.output_format)."
	jsonIndentConstant          = "  "
	yamlIndentConstant          = 2
	diffEncodingErrorTemplate   = "unable to render diff output: %w"
)

// DiffCommandBuilder assembles the diff command.
type DiffCommandBuilder struct {
	ServiceProviders
	DiffConfigurationProvider func() DiffConfiguration
}

// Build constructs the diff command.
func (builder *DiffCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   diffUseConstant,
		Short: diffShortDescription,
		Long:  diffLongDescription,
		Args:  cobra.ExactArgs(3),
		RunE:  builder.run,
	}

	outputChoice := flags.NewChoiceValue(outputFormatYAMLConstant, outputFormatYAMLConstant, outputFormatJSONConstant)
	command.Flags().Bool(diffRawFlagNameConstant, false, diffRawFlagUsageConstant)
	command.Flags().Var(outputChoice, diffOutputFlagNameConstant, outputChoice.Usage(diffOutputFlagUsageConstant))

	return command, nil
}

func (builder *DiffCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	rawOutput, _ := command.Flags().GetBool(diffRawFlagNameConstant)
	outputFormat := builder.resolveOutputFormat(command)
	oldRevision := arguments[1]
	newRevision := arguments[2]

	service, serviceError := builder.buildService(configuration)
	if serviceError != nil {
		return serviceError
	}

	repository, openError := openRepository(service, command, configuration, arguments[0], "")
	if openError != nil {
		return openError
	}

	executionContext, cancel := commandContext(command, configuration)
	defer cancel()

	if rawOutput {
		rawDiff, result, diffError := repository.DiffRaw(executionContext, oldRevision, newRevision)
		if diffError != nil {
			return diffError
		}
		if !result.Success {
			return operationError(diffOperationNameConstant, repository.Handle().RemoteAddress, result)
		}
		_, writeError := io.WriteString(command.OutOrStdout(), rawDiff)
		return writeError
	}

	parsedDiff, result, diffError := repository.Diff(executionContext, oldRevision, newRevision)
	if diffError != nil {
		return diffError
	}
	if !result.Success {
		return operationError(diffOperationNameConstant, repository.Handle().RemoteAddress, result)
	}

	if renderError := renderDiff(command.OutOrStdout(), outputFormat, parsedDiff); renderError != nil {
		return fmt.Errorf(diffEncodingErrorTemplate, renderError)
	}
	return nil
}

func (builder *DiffCommandBuilder) resolveOutputFormat(command *cobra.Command) string {
	if command.Flags().Changed(diffOutputFlagNameConstant) {
		return command.Flags().Lookup(diffOutputFlagNameConstant).Value.String()
	}
	if builder.DiffConfigurationProvider == nil {
		return DefaultDiffConfiguration().OutputFormat
	}
	return builder.DiffConfigurationProvider().sanitize().OutputFormat
}

func renderDiff(writer io.Writer, outputFormat string, parsedDiff reposync.DiffResult) error {
	if outputFormat == outputFormatJSONConstant {
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", jsonIndentConstant)
		return encoder.Encode(parsedDiff)
	}

	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(yamlIndentConstant)
	if encodeError := encoder.Encode(parsedDiff); encodeError != nil {
		return encodeError
	}
	return encoder.Close()
}
