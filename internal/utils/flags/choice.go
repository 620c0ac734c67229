// Package flags provides pflag values shared by the reposync commands.
package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	choicePlaceholderPrefix   = "<"
	choicePlaceholderSuffix   = ">"
	choiceSeparatorLiteral    = "|"
	choiceUsageTemplate       = "`%s` %s"
	choiceTypeNameConstant    = "choice"
	unsupportedChoiceTemplate = "unsupported value %q; expected one of %s"
)

// ChoiceValue is a pflag.Value restricted to a fixed set of case-insensitive choices.
type ChoiceValue struct {
	selected string
	choices  []string
}

var _ pflag.Value = (*ChoiceValue)(nil)

// NewChoiceValue constructs a ChoiceValue holding defaultChoice.
func NewChoiceValue(defaultChoice string, choices ...string) *ChoiceValue {
	normalizedChoices := make([]string, 0, len(choices))
	seenChoices := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		normalizedChoice := strings.ToLower(strings.TrimSpace(choice))
		if len(normalizedChoice) == 0 {
			continue
		}
		if _, seen := seenChoices[normalizedChoice]; seen {
			continue
		}
		seenChoices[normalizedChoice] = struct{}{}
		normalizedChoices = append(normalizedChoices, normalizedChoice)
	}
	return &ChoiceValue{selected: strings.ToLower(strings.TrimSpace(defaultChoice)), choices: normalizedChoices}
}

// String returns the selected choice.
func (value *ChoiceValue) String() string {
	if value == nil {
		return ""
	}
	return value.selected
}

// Set validates and stores the choice.
func (value *ChoiceValue) Set(rawChoice string) error {
	normalizedChoice := strings.ToLower(strings.TrimSpace(rawChoice))
	for _, choice := range value.choices {
		if choice == normalizedChoice {
			value.selected = choice
			return nil
		}
	}
	return fmt.Errorf(unsupportedChoiceTemplate, rawChoice, strings.Join(value.choices, choiceSeparatorLiteral))
}

// Type names the value kind in help output.
func (value *ChoiceValue) Type() string {
	return choiceTypeNameConstant
}

// Usage renders the choices with the current selection capitalized, followed by description.
func (value *ChoiceValue) Usage(description string) string {
	highlightedChoices := make([]string, 0, len(value.choices))
	for _, choice := range value.choices {
		if choice == value.selected {
			highlightedChoices = append(highlightedChoices, strings.ToUpper(choice))
			continue
		}
		highlightedChoices = append(highlightedChoices, choice)
	}
	placeholder := choicePlaceholderPrefix + strings.Join(highlightedChoices, choiceSeparatorLiteral) + choicePlaceholderSuffix
	return strings.TrimSpace(fmt.Sprintf(choiceUsageTemplate, placeholder, description))
}
