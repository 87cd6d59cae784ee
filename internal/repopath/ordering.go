package repopath

import "sort"

// OrderDeepestFirst returns a copy of references sorted by descending repository depth.
// References at the same depth keep their relative input order.
func OrderDeepestFirst(references []GitModulesReference) []GitModulesReference {
	orderedReferences := append([]GitModulesReference{}, references...)
	sort.SliceStable(orderedReferences, func(leftIndex int, rightIndex int) bool {
		return orderedReferences[leftIndex].RepositoryPath().Depth() > orderedReferences[rightIndex].RepositoryPath().Depth()
	})
	return orderedReferences
}
