package scheduler

import "time"

// SlotMinutes is the fixed slot granularity. Slots are never split; a task
// shorter than a slot still consumes the whole slot.
const SlotMinutes = 30

// Slot is one candidate interval of the workday grid.
type Slot struct {
	Start     time.Time
	End       time.Time
	Available bool
}

// buildSlots tiles the window with contiguous 30-minute slots starting at
// Window.Start. When the window is not an exact multiple of the slot length
// the final slot runs past Window.End rather than being clamped.
func buildSlots(w Window) []Slot {
	var slots []Slot
	step := SlotMinutes * time.Minute
	for start := w.Start; start.Before(w.End); start = start.Add(step) {
		slots = append(slots, Slot{Start: start, End: start.Add(step), Available: true})
	}
	return slots
}

// fits reports whether a task of the given duration fits the slot span.
// Non-positive durations never fit.
func fits(s Slot, durationMinutes int64) bool {
	if durationMinutes <= 0 {
		return false
	}
	return int64(s.End.Sub(s.Start)/time.Minute) >= durationMinutes
}
