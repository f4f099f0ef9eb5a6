package backend

import (
	"github.com/AuroraMediaLabs/pipedash/workflow"
)

// MatchStageResults associates each stage result with the workflow stage
// that produced it. The returned slice is parallel to results; entries are
// nil when no stage matches.
//
// Matching is by stage id when the result carries one. Results without ids
// come from reconstructed history, where the backend reports only type and
// order; those fall back to type+order, then to type alone. A stage is
// consumed by at most one result in each fallback tier, so duplicate-typed
// stages each get their own match.
func MatchStageResults(stages []*workflow.Stage, results []StageResult) []*workflow.Stage {
	matched := make([]*workflow.Stage, len(results))
	used := make(map[string]bool, len(stages))

	byID := make(map[string]*workflow.Stage, len(stages))
	for _, s := range stages {
		byID[s.ID] = s
	}

	// Tier 1: exact id.
	for i, r := range results {
		if r.StageID == "" {
			continue
		}
		if s, ok := byID[r.StageID]; ok && !used[s.ID] {
			matched[i] = s
			used[s.ID] = true
		}
	}

	// Tier 2: type and order.
	for i, r := range results {
		if matched[i] != nil {
			continue
		}
		for _, s := range stages {
			if !used[s.ID] && s.Type == r.StageType && s.Order == r.Order {
				matched[i] = s
				used[s.ID] = true
				break
			}
		}
	}

	// Tier 3: type alone, in stage order.
	for i, r := range results {
		if matched[i] != nil {
			continue
		}
		for _, s := range stages {
			if !used[s.ID] && s.Type == r.StageType {
				matched[i] = s
				used[s.ID] = true
				break
			}
		}
	}

	return matched
}
