package scheduler

import (
	"time"

	"dayplanner/internal/models"
)

// placeFixed honors the task's own start time without touching the slot grid.
// The start must lie within the workday, bounds inclusive. Fixed placements
// can therefore overlap slots later claimed by grid-based placement; callers
// that need exclusivity must reserve the range upstream.
func placeFixed(t models.Task, w Window) (models.Task, error) {
	start := *t.StartTime
	if start.Before(w.Start) || start.After(w.End) {
		return models.Task{}, ErrFixedOutsideWorkday
	}
	end := start.Add(time.Duration(t.DurationMinutes) * time.Minute)
	t.StartTime = &start
	t.EndTime = &end
	return t, nil
}

// placePreferred claims the first available slot fully contained in the
// task's preferred window that fits its duration. Returns false when the
// window holds no such slot.
func placePreferred(t models.Task, slots []Slot) (models.Task, bool) {
	for i := range slots {
		s := &slots[i]
		if !s.Available || !fits(*s, t.DurationMinutes) {
			continue
		}
		if s.Start.Before(*t.PreferredStart) || s.End.After(*t.PreferredEnd) {
			continue
		}
		return claim(t, s), true
	}
	return models.Task{}, false
}

// placeFlexible claims the chronologically first available slot that fits.
func placeFlexible(t models.Task, slots []Slot) (models.Task, bool) {
	for i := range slots {
		s := &slots[i]
		if !s.Available || !fits(*s, t.DurationMinutes) {
			continue
		}
		return claim(t, s), true
	}
	return models.Task{}, false
}

// claim marks the slot consumed and stamps the task with its times. The task
// occupies the slot from its start for the task's own duration; any remainder
// of the slot stays unusable for this run.
func claim(t models.Task, s *Slot) models.Task {
	s.Available = false
	start := s.Start
	end := start.Add(time.Duration(t.DurationMinutes) * time.Minute)
	t.StartTime = &start
	t.EndTime = &end
	return t
}
