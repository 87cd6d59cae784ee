package propagation

const (
	phaseSubmoduleStringConstant = "submodule"
	phaseParentStringConstant    = "parent"
)

// Phase identifies which half of a run produced a step.
type Phase string

// Phases.
const (
	// PhaseSubmodule commits a repository's own .gitmodules.
	PhaseSubmodule Phase = Phase(phaseSubmoduleStringConstant)
	// PhaseParent records updated submodule commits in a superproject.
	PhaseParent Phase = Phase(phaseParentStringConstant)
)

// SkipReason explains why a Phase 2 repository produced no parent commit of its own.
type SkipReason string

// Skip reasons.
const (
	SkipReasonNone            SkipReason = ""
	SkipReasonNoSuperproject  SkipReason = "no superproject"
	SkipReasonParentProcessed SkipReason = "included in parent commit"
)

// Step records what happened to one repository in one phase.
type Step struct {
	Phase      Phase         `yaml:"phase"`
	Repository string        `yaml:"repository"`
	Branch     string        `yaml:"branch,omitempty"`
	Paths      []string      `yaml:"paths,omitempty"`
	Outcome    CommitOutcome `yaml:"outcome,omitempty"`
	Upstream   string        `yaml:"upstream,omitempty"`
	Pushed     bool          `yaml:"pushed"`
	Skipped    SkipReason    `yaml:"skipped,omitempty"`
}

// Report lists the steps of a run in execution order. A failed run returns the steps completed so far.
type Report struct {
	Steps []Step `yaml:"steps"`
}

// CommittedCount returns how many steps created a commit.
func (runReport Report) CommittedCount() int {
	committed := 0
	for _, step := range runReport.Steps {
		if step.Outcome == CommitOutcomeCommitted {
			committed++
		}
	}
	return committed
}

// PushedCount returns how many steps pushed.
func (runReport Report) PushedCount() int {
	pushed := 0
	for _, step := range runReport.Steps {
		if step.Pushed {
			pushed++
		}
	}
	return pushed
}

func (runReport Report) withStep(step Step) Report {
	return Report{Steps: append(append([]Step{}, runReport.Steps...), step)}
}
