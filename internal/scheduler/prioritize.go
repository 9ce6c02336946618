package scheduler

import (
	"sort"

	"dayplanner/internal/models"
)

var kindRank = map[models.TaskKind]int{
	models.KindFixed:    4,
	models.KindRoutine:  2,
	models.KindFlexible: 1,
}

var priorityRank = map[models.Priority]int{
	models.PriorityHigh:   3,
	models.PriorityMedium: 2,
	models.PriorityLow:    1,
}

// prioritize returns a copy of tasks ordered most-constrained first: kind rank
// descending, then priority rank descending, ties keeping input order. Unknown
// kinds and priorities rank zero and sink to the back.
func prioritize(tasks []models.Task) []models.Task {
	ordered := make([]models.Task, len(tasks))
	copy(ordered, tasks)

	sort.SliceStable(ordered, func(i, j int) bool {
		ki, kj := kindRank[ordered[i].Kind], kindRank[ordered[j].Kind]
		if ki != kj {
			return ki > kj
		}
		return priorityRank[ordered[i].Priority] > priorityRank[ordered[j].Priority]
	})
	return ordered
}
