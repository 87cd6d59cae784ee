package repopath

import "fmt"

const (
	invalidReferenceTemplateConstant         = "invalid .gitmodules reference %q: %s"
	invalidReferenceWithLineTemplateConstant = "invalid .gitmodules reference %q on line %d: %s"
	repositoryValidationTemplateConstant     = "%s is not a usable git repository: %v"
)

// InvalidReferenceError reports an input entry that does not name a .gitmodules file.
type InvalidReferenceError struct {
	Reference string
	Line      int
	Reason    string
}

// Error describes the rejected entry.
func (referenceError InvalidReferenceError) Error() string {
	if referenceError.Line > 0 {
		return fmt.Sprintf(invalidReferenceWithLineTemplateConstant, referenceError.Reference, referenceError.Line, referenceError.Reason)
	}
	return fmt.Sprintf(invalidReferenceTemplateConstant, referenceError.Reference, referenceError.Reason)
}

// RepositoryValidationError reports a directory that cannot be opened as a git working tree.
type RepositoryValidationError struct {
	Repository string
	Cause      error
}

// Error describes the validation failure.
func (validationError RepositoryValidationError) Error() string {
	return fmt.Sprintf(repositoryValidationTemplateConstant, validationError.Repository, validationError.Cause)
}

// Unwrap exposes the underlying cause.
func (validationError RepositoryValidationError) Unwrap() error {
	return validationError.Cause
}
