package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dayplanner/internal/scheduler"
)

type scheduleRequest struct {
	Date         *string `json:"date"`          // "2006-01-02", defaults to today
	WorkdayStart *string `json:"workday_start"` // "15:04", overrides config
	WorkdayEnd   *string `json:"workday_end"`
}

// handleSchedule runs the scheduling engine over every stored task, persists
// the resulting placements and reports both placed and unplaced tasks. A fixed
// task outside the workday aborts the run with 409 and persists nothing.
func (s *Server) handleSchedule(c *gin.Context) {
	var req scheduleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			s.respondError(c, http.StatusBadRequest, err)
			return
		}
	}

	day := time.Now()
	if req.Date != nil {
		parsed, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			s.respondError(c, http.StatusBadRequest, fmt.Errorf("invalid date %q: %w", *req.Date, err))
			return
		}
		day = parsed
	}

	workday := s.workday
	if req.WorkdayStart != nil {
		workday.Start = *req.WorkdayStart
	}
	if req.WorkdayEnd != nil {
		workday.End = *req.WorkdayEnd
	}

	window, err := workday.WindowOn(day)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	tasks, err := s.store.ListTasks(c.Request.Context())
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}

	runID := uuid.New().String()
	result, err := scheduler.Schedule(tasks, scheduler.Config{Window: window, BreakMinutes: workday.BreakMinutes})
	if err != nil {
		if errors.Is(err, scheduler.ErrFixedOutsideWorkday) {
			s.respondError(c, http.StatusConflict, err)
			return
		}
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := s.store.SaveSchedule(c.Request.Context(), result.Placed); err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}

	s.logger.Info("schedule run completed",
		slog.String("run_id", runID),
		slog.Int("placed", len(result.Placed)),
		slog.Int("unplaced", len(result.Unplaced)))

	respondSuccess(c, http.StatusOK, gin.H{
		"run_id":   runID,
		"placed":   result.Placed,
		"unplaced": result.Unplaced,
	})
}
