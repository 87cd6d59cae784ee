package propagation

import "github.com/temirov/urisync/internal/repopath"

// ProcessedParents is an immutable set of parent repositories already committed in Phase 2.
// The zero value is empty and ready to use.
type ProcessedParents struct {
	members map[string]struct{}
}

// With returns a new set that also contains parent.
func (processedParents ProcessedParents) With(parent repopath.RepositoryPath) ProcessedParents {
	extended := make(map[string]struct{}, len(processedParents.members)+1)
	for member := range processedParents.members {
		extended[member] = struct{}{}
	}
	extended[parent.String()] = struct{}{}
	return ProcessedParents{members: extended}
}

// Contains reports whether parent is in the set.
func (processedParents ProcessedParents) Contains(parent repopath.RepositoryPath) bool {
	_, found := processedParents.members[parent.String()]
	return found
}

// Len returns the number of parents in the set.
func (processedParents ProcessedParents) Len() int {
	return len(processedParents.members)
}
