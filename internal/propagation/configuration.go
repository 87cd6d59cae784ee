package propagation

import (
	"fmt"
	"strings"
)

const (
	defaultSubmoduleCommitMessageConstant = "Update URIs in submodule"
	defaultParentCommitMessageConstant    = "Use submodule with updated URI"
	defaultFallbackBranchConstant         = "master"
	defaultRemoteNameConstant             = "origin"
	orderingDepthStringConstant           = "depth"
	orderingInputStringConstant           = "input"
	unsupportedOrderingTemplateConstant   = "unsupported ordering %q: expected %s or %s"
)

// OrderingMode selects how references are ordered before both phases.
type OrderingMode string

// Supported ordering modes.
const (
	// OrderingDepth processes deeper repositories before shallower ones.
	OrderingDepth OrderingMode = OrderingMode(orderingDepthStringConstant)
	// OrderingInput trusts the caller to supply a deepest-first list.
	OrderingInput OrderingMode = OrderingMode(orderingInputStringConstant)
)

// Configuration carries the run settings. It is populated once and passed by value.
type Configuration struct {
	SubmoduleCommitMessage string       `mapstructure:"subcommit_message"`
	ParentCommitMessage    string       `mapstructure:"commit_message"`
	Branch                 string       `mapstructure:"branch"`
	FallbackBranch         string       `mapstructure:"fallback_branch"`
	RemoteName             string       `mapstructure:"remote"`
	Ordering               OrderingMode `mapstructure:"ordering"`
}

// DefaultConfiguration returns the built-in settings.
func DefaultConfiguration() Configuration {
	return Configuration{
		SubmoduleCommitMessage: defaultSubmoduleCommitMessageConstant,
		ParentCommitMessage:    defaultParentCommitMessageConstant,
		FallbackBranch:         defaultFallbackBranchConstant,
		RemoteName:             defaultRemoteNameConstant,
		Ordering:               OrderingDepth,
	}
}

// Sanitize trims every field and restores defaults for empty ones. Branch stays empty when unset.
func (configuration Configuration) Sanitize() Configuration {
	defaults := DefaultConfiguration()
	sanitized := Configuration{
		SubmoduleCommitMessage: valueOrDefault(configuration.SubmoduleCommitMessage, defaults.SubmoduleCommitMessage),
		ParentCommitMessage:    valueOrDefault(configuration.ParentCommitMessage, defaults.ParentCommitMessage),
		Branch:                 strings.TrimSpace(configuration.Branch),
		FallbackBranch:         valueOrDefault(configuration.FallbackBranch, defaults.FallbackBranch),
		RemoteName:             valueOrDefault(configuration.RemoteName, defaults.RemoteName),
		Ordering:               OrderingMode(strings.ToLower(valueOrDefault(string(configuration.Ordering), string(defaults.Ordering)))),
	}
	return sanitized
}

// Validate rejects settings the propagator cannot act on.
func (configuration Configuration) Validate() error {
	switch configuration.Ordering {
	case OrderingDepth, OrderingInput:
		return nil
	default:
		return fmt.Errorf(unsupportedOrderingTemplateConstant, configuration.Ordering, OrderingDepth, OrderingInput)
	}
}

func valueOrDefault(value string, defaultValue string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return defaultValue
	}
	return trimmedValue
}
