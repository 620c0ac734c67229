package flags

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestChoiceValueUsage(t *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "DefaultFirstChoice",
			defaultChoice:  "yaml",
			choices:        []string{"yaml", "json"},
			description:    "Render parsed diffs as YAML or json.",
			expectedOutput: "`<YAML|json>` Render parsed diffs as YAML or json.",
		},
		{
			name:           "DefaultSecondChoice",
			defaultChoice:  "console",
			choices:        []string{"structured", "console"},
			description:    "Select the log encoding.",
			expectedOutput: "`<structured|CONSOLE>` Select the log encoding.",
		},
		{
			name:           "EmptyDescription",
			defaultChoice:  "alpha",
			choices:        []string{"alpha", "beta"},
			expectedOutput: "`<ALPHA|beta>`",
		},
		{
			name:           "DuplicateAndPaddedChoicesNormalized",
			defaultChoice:  "Beta",
			choices:        []string{" beta ", "BETA", "alpha", ""},
			description:    "Select between options.",
			expectedOutput: "`<BETA|alpha>` Select between options.",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			value := NewChoiceValue(testCase.defaultChoice, testCase.choices...)
			require.Equal(t, testCase.expectedOutput, value.Usage(testCase.description))
		})
	}
}

func TestChoiceValueParsesThroughFlagSet(t *testing.T) {
	value := NewChoiceValue("yaml", "yaml", "json")
	flagSet := pflag.NewFlagSet("diff", pflag.ContinueOnError)
	flagSet.Var(value, "output", value.Usage("Output format."))

	require.NoError(t, flagSet.Parse([]string{"--output", "JSON"}))
	require.Equal(t, "json", value.String())
	require.True(t, flagSet.Changed("output"))

	require.Error(t, flagSet.Parse([]string{"--output", "toml"}))
	require.Equal(t, "json", value.String())
	require.Equal(t, "choice", value.Type())
}
