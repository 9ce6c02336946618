package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dayplanner/internal/models"
)

var day = time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func workday() Window {
	return Window{Start: at(8, 0), End: at(20, 0)}
}

func flexible(name string, minutes int64) models.Task {
	return models.Task{Name: name, Kind: models.KindFlexible, Priority: models.PriorityMedium, DurationMinutes: minutes}
}

func fixedAt(name string, start time.Time, minutes int64) models.Task {
	return models.Task{Name: name, Kind: models.KindFixed, Priority: models.PriorityMedium, DurationMinutes: minutes, StartTime: &start}
}

func windowed(name string, from, to time.Time, minutes int64) models.Task {
	return models.Task{Name: name, Kind: models.KindFlexible, Priority: models.PriorityMedium, DurationMinutes: minutes, PreferredStart: &from, PreferredEnd: &to}
}

func TestScheduleSingleFlexibleTask(t *testing.T) {
	res, err := Schedule([]models.Task{flexible("deep work", 30)}, Config{Window: workday()})
	require.NoError(t, err)
	require.Len(t, res.Placed, 1)
	assert.Empty(t, res.Unplaced)

	assert.Equal(t, at(8, 0), *res.Placed[0].StartTime)
	assert.Equal(t, at(8, 30), *res.Placed[0].EndTime)
}

func TestScheduleTwoFlexibleTasksFirstFit(t *testing.T) {
	res, err := Schedule([]models.Task{flexible("first", 30), flexible("second", 30)}, Config{Window: workday()})
	require.NoError(t, err)
	require.Len(t, res.Placed, 2)

	assert.Equal(t, at(8, 0), *res.Placed[0].StartTime)
	assert.Equal(t, at(8, 30), *res.Placed[0].EndTime)
	assert.Equal(t, at(8, 30), *res.Placed[1].StartTime)
	assert.Equal(t, at(9, 0), *res.Placed[1].EndTime)
}

func TestScheduleFixedTaskKeepsStart(t *testing.T) {
	res, err := Schedule([]models.Task{fixedAt("standup", at(9, 15), 45)}, Config{Window: workday()})
	require.NoError(t, err)
	require.Len(t, res.Placed, 1)

	assert.Equal(t, at(9, 15), *res.Placed[0].StartTime)
	assert.Equal(t, at(10, 0), *res.Placed[0].EndTime)
}

func TestScheduleFixedTaskOutsideWorkdayAbortsRun(t *testing.T) {
	tasks := []models.Task{
		flexible("early bird", 30),
		fixedAt("too early", at(7, 30), 30),
	}
	res, err := Schedule(tasks, Config{Window: workday()})
	require.ErrorIs(t, err, ErrFixedOutsideWorkday)
	assert.Empty(t, res.Placed)
	assert.Empty(t, res.Unplaced)
}

func TestScheduleFixedTaskAtWorkdayBoundsInclusive(t *testing.T) {
	tasks := []models.Task{
		fixedAt("open", at(8, 0), 30),
		fixedAt("close", at(20, 0), 30),
	}
	res, err := Schedule(tasks, Config{Window: workday()})
	require.NoError(t, err)
	assert.Len(t, res.Placed, 2)
}

func TestSchedulePreferredWindowTooSmall(t *testing.T) {
	task := windowed("review", at(10, 0), at(11, 0), 90)
	res, err := Schedule([]models.Task{task}, Config{Window: workday()})
	require.NoError(t, err)
	assert.Empty(t, res.Placed)
	require.Len(t, res.Unplaced, 1)
	assert.Equal(t, ReasonNoSlotInWindow, res.Unplaced[0].Reason)
	assert.Equal(t, "review", res.Unplaced[0].Task.Name)
}

func TestSchedulePreferredWindowPlacesInsideWindow(t *testing.T) {
	tasks := []models.Task{
		flexible("filler", 30),
		windowed("call", at(10, 0), at(11, 0), 30),
	}
	res, err := Schedule(tasks, Config{Window: workday()})
	require.NoError(t, err)
	require.Len(t, res.Placed, 2)

	var call models.Task
	for _, p := range res.Placed {
		if p.Name == "call" {
			call = p
		}
	}
	assert.Equal(t, at(10, 0), *call.StartTime)
	assert.Equal(t, at(10, 30), *call.EndTime)
}

func TestScheduleNoDoubleBooking(t *testing.T) {
	// Window holds exactly one slot; only one of the two contenders gets it.
	w := Window{Start: at(9, 0), End: at(9, 30)}
	res, err := Schedule([]models.Task{flexible("a", 30), flexible("b", 30)}, Config{Window: w})
	require.NoError(t, err)
	require.Len(t, res.Placed, 1)
	require.Len(t, res.Unplaced, 1)
	assert.Equal(t, ReasonNoSlot, res.Unplaced[0].Reason)
}

func TestSchedulePlacedSlotRangesNeverOverlap(t *testing.T) {
	tasks := []models.Task{
		flexible("a", 30),
		windowed("b", at(8, 0), at(9, 0), 30),
		flexible("c", 30),
		windowed("d", at(8, 0), at(10, 0), 30),
	}
	res, err := Schedule(tasks, Config{Window: workday()})
	require.NoError(t, err)

	for i, a := range res.Placed {
		for j, b := range res.Placed {
			if i == j {
				continue
			}
			overlap := a.StartTime.Before(*b.EndTime) && b.StartTime.Before(*a.EndTime)
			assert.False(t, overlap, "%s and %s overlap", a.Name, b.Name)
		}
	}
}

func TestScheduleOverlongTaskNeverFits(t *testing.T) {
	res, err := Schedule([]models.Task{flexible("marathon", 31)}, Config{Window: workday()})
	require.NoError(t, err)
	assert.Empty(t, res.Placed)
	require.Len(t, res.Unplaced, 1)
	assert.Equal(t, ReasonNoSlot, res.Unplaced[0].Reason)
}

func TestScheduleDoesNotMutateInput(t *testing.T) {
	tasks := []models.Task{
		flexible("z", 30),
		fixedAt("a", at(9, 0), 30),
	}
	_, err := Schedule(tasks, Config{Window: workday()})
	require.NoError(t, err)

	assert.Equal(t, "z", tasks[0].Name)
	assert.Equal(t, "a", tasks[1].Name)
	assert.Nil(t, tasks[0].StartTime)
	assert.Nil(t, tasks[0].EndTime)
}

func TestScheduleOutputInPriorityOrder(t *testing.T) {
	start := at(14, 0)
	tasks := []models.Task{
		flexible("flex", 30),
		{Name: "routine", Kind: models.KindRoutine, Priority: models.PriorityLow, DurationMinutes: 30, Frequency: "daily"},
		{Name: "fixed", Kind: models.KindFixed, Priority: models.PriorityLow, DurationMinutes: 30, StartTime: &start},
	}
	res, err := Schedule(tasks, Config{Window: workday()})
	require.NoError(t, err)
	require.Len(t, res.Placed, 3)

	assert.Equal(t, "fixed", res.Placed[0].Name)
	assert.Equal(t, "routine", res.Placed[1].Name)
	assert.Equal(t, "flex", res.Placed[2].Name)
}

func TestScheduleCarriesFrequencyThrough(t *testing.T) {
	task := models.Task{Name: "gym", Kind: models.KindRoutine, Priority: models.PriorityMedium, DurationMinutes: 60, Frequency: "weekly"}
	res, err := Schedule([]models.Task{task}, Config{Window: workday()})
	require.NoError(t, err)
	require.Len(t, res.Unplaced, 1)
	assert.Equal(t, "weekly", res.Unplaced[0].Task.Frequency)
}
