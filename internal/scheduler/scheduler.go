// Package scheduler places tasks into a bounded workday window. Fixed tasks
// keep their requested start verbatim, preferred-window tasks take the first
// fitting slot inside their window, and everything else takes the earliest
// fitting slot of the day.
package scheduler

import (
	"errors"
	"fmt"
	"time"

	"dayplanner/internal/models"
)

// ErrFixedOutsideWorkday is returned when a fixed task's start time does not
// fall inside the configured workday. The run produces no result in that case;
// fixed-task violations are all-or-nothing.
var ErrFixedOutsideWorkday = errors.New("fixed task outside workday")

// Unplaced reasons reported in a Result.
const (
	ReasonNoSlotInWindow = "no available slot in preferred window"
	ReasonNoSlot         = "no available slot"
)

// Window is the workday range [Start, End) all placement happens in.
type Window struct {
	Start time.Time
	End   time.Time
}

// Config carries per-run scheduling settings. The caller supplies the workday
// bounds explicitly; the engine never reads the clock.
type Config struct {
	Window Window

	// BreakMinutes is a declared gap between consecutive placements. It is
	// reserved and currently not applied to slot assignment.
	BreakMinutes int
}

// Unplaced pairs a task that found no slot with the reason it was skipped.
type Unplaced struct {
	Task   models.Task `json:"task"`
	Reason string      `json:"reason"`
}

// Result is the outcome of a scheduling run. Placed tasks carry populated
// start and end times and appear in priority order. Tasks that found no
// capacity are listed in Unplaced rather than silently dropped.
type Result struct {
	Placed   []models.Task `json:"placed"`
	Unplaced []Unplaced    `json:"unplaced"`
}

// Schedule assigns start and end times to as many tasks as fit the workday.
// The input slice is not modified. A fixed task outside the window aborts the
// whole run with ErrFixedOutsideWorkday and discards any placements already
// made for that run.
func Schedule(tasks []models.Task, cfg Config) (Result, error) {
	ordered := prioritize(tasks)
	slots := buildSlots(cfg.Window)

	var res Result
	for _, t := range ordered {
		switch {
		case t.Kind == models.KindFixed && t.StartTime != nil:
			placed, err := placeFixed(t, cfg.Window)
			if err != nil {
				return Result{}, fmt.Errorf("task %q: %w", t.Name, err)
			}
			res.Placed = append(res.Placed, placed)
		case t.HasPreferredWindow():
			placed, ok := placePreferred(t, slots)
			if !ok {
				res.Unplaced = append(res.Unplaced, Unplaced{Task: t, Reason: ReasonNoSlotInWindow})
				continue
			}
			res.Placed = append(res.Placed, placed)
		default:
			placed, ok := placeFlexible(t, slots)
			if !ok {
				res.Unplaced = append(res.Unplaced, Unplaced{Task: t, Reason: ReasonNoSlot})
				continue
			}
			res.Placed = append(res.Placed, placed)
		}
	}
	return res, nil
}
