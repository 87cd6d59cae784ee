package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	choicePlaceholderPrefix       = "<"
	choicePlaceholderSuffix       = ">"
	choiceSeparatorLiteral        = "|"
	choiceUsageEmptyTemplate      = "`%s`"
	choiceUsageFullTemplate       = "`%s` %s"
	choiceTypeName                = "choice"
	unsupportedChoiceErrorMessage = "must be one of %s"
)

// ChoiceValue is a pflag.Value that accepts one of a fixed set of case-insensitive choices.
type ChoiceValue struct {
	choices  []string
	selected string
}

// NewChoiceValue constructs a ChoiceValue preset to defaultChoice.
func NewChoiceValue(defaultChoice string, choices []string) *ChoiceValue {
	return &ChoiceValue{choices: normalizeChoices(choices), selected: strings.ToLower(strings.TrimSpace(defaultChoice))}
}

// String returns the selected choice.
func (value *ChoiceValue) String() string {
	if value == nil {
		return ""
	}
	return value.selected
}

// Set validates and stores the candidate choice.
func (value *ChoiceValue) Set(candidate string) error {
	normalizedCandidate := strings.ToLower(strings.TrimSpace(candidate))
	for _, choice := range value.choices {
		if choice == normalizedCandidate {
			value.selected = choice
			return nil
		}
	}
	return fmt.Errorf(unsupportedChoiceErrorMessage, strings.Join(value.choices, ", "))
}

// Type names the value kind in help output.
func (value *ChoiceValue) Type() string {
	return choiceTypeName
}

// RegisterChoiceFlag adds a choice flag to the flag set and returns its value holder.
func RegisterChoiceFlag(flagSet *pflag.FlagSet, flagName string, defaultChoice string, choices []string, description string) *ChoiceValue {
	choiceValue := NewChoiceValue(defaultChoice, choices)
	flagSet.Var(choiceValue, flagName, FormatChoiceUsage(defaultChoice, choices, description))
	return choiceValue
}

// FormatChoiceUsage builds a usage string where the default option is capitalized inside a placeholder.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	displayedChoices := normalizeChoices(choices)
	for choiceIndex, choice := range displayedChoices {
		if choice == normalizedDefault {
			displayedChoices[choiceIndex] = strings.ToUpper(choice)
		}
	}

	placeholder := choicePlaceholderPrefix + strings.Join(displayedChoices, choiceSeparatorLiteral) + choicePlaceholderSuffix
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, description)
}

// normalizeChoices lowercases and trims choices, dropping blanks and duplicates while keeping order.
func normalizeChoices(choices []string) []string {
	normalized := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		normalizedChoice := strings.ToLower(strings.TrimSpace(choice))
		if len(normalizedChoice) == 0 {
			continue
		}
		if _, exists := seen[normalizedChoice]; exists {
			continue
		}
		seen[normalizedChoice] = struct{}{}
		normalized = append(normalized, normalizedChoice)
	}
	return normalized
}
