package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dayplanner/internal/models"
)

type taskRequest struct {
	Name            *string    `json:"name"`
	Kind            *string    `json:"kind"`
	Priority        *string    `json:"priority"`
	DurationMinutes *int64     `json:"duration_minutes"`
	StartTime       *time.Time `json:"start_time"`
	PreferredStart  *time.Time `json:"preferred_start"`
	PreferredEnd    *time.Time `json:"preferred_end"`
	Frequency       *string    `json:"frequency"`
}

// validate enforces the invariants the scheduling engine itself does not:
// non-empty name, positive duration, known kind and priority, a start time on
// fixed tasks and a well-formed preferred window.
func (r taskRequest) validate() error {
	if r.Name == nil || *r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.DurationMinutes == nil || *r.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	if r.Kind != nil {
		if _, ok := models.ValidTaskKinds[models.TaskKind(*r.Kind)]; !ok {
			return fmt.Errorf("unknown kind %q", *r.Kind)
		}
	}
	if r.Priority != nil {
		if _, ok := models.ValidPriorities[models.Priority(*r.Priority)]; !ok {
			return fmt.Errorf("unknown priority %q", *r.Priority)
		}
	}
	if r.Kind != nil && models.TaskKind(*r.Kind) == models.KindFixed && r.StartTime == nil {
		return fmt.Errorf("fixed tasks require start_time")
	}
	if (r.PreferredStart == nil) != (r.PreferredEnd == nil) {
		return fmt.Errorf("preferred window requires both preferred_start and preferred_end")
	}
	if r.PreferredStart != nil && !r.PreferredStart.Before(*r.PreferredEnd) {
		return fmt.Errorf("preferred_start must be before preferred_end")
	}
	return nil
}

// handleListTasks fetches all stored tasks.
func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.store.ListTasks(c.Request.Context())
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"tasks": tasks})
}

// handleCreateTask validates and inserts a new task.
func (s *Server) handleCreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	task := models.Task{
		Name:            *req.Name,
		DurationMinutes: *req.DurationMinutes,
		StartTime:       req.StartTime,
		PreferredStart:  req.PreferredStart,
		PreferredEnd:    req.PreferredEnd,
		Frequency:       getString(req.Frequency),
	}
	if req.Kind != nil {
		task.Kind = models.TaskKind(*req.Kind)
	}
	if req.Priority != nil {
		task.Priority = models.Priority(*req.Priority)
	}

	created, err := s.store.CreateTask(c.Request.Context(), task)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"task": created})
}

// handleGetTask returns a single task by id.
func (s *Server) handleGetTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	task, err := s.store.GetTask(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, http.StatusNotFound, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}

// handleUpdateTask updates the provided task fields.
func (s *Server) handleUpdateTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.PreferredStart != nil && req.PreferredEnd != nil && !req.PreferredStart.Before(*req.PreferredEnd) {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("preferred_start must be before preferred_end"))
		return
	}

	updates := map[string]any{}
	if req.Name != nil && *req.Name != "" {
		updates["name"] = *req.Name
	}
	if req.Kind != nil {
		updates["kind"] = models.TaskKind(*req.Kind)
	}
	if req.Priority != nil {
		updates["priority"] = models.Priority(*req.Priority)
	}
	if req.DurationMinutes != nil {
		updates["duration_minutes"] = *req.DurationMinutes
	}
	if req.StartTime != nil {
		updates["start_time"] = req.StartTime
	}
	if req.PreferredStart != nil {
		updates["preferred_start"] = req.PreferredStart
	}
	if req.PreferredEnd != nil {
		updates["preferred_end"] = req.PreferredEnd
	}
	if req.Frequency != nil {
		updates["frequency"] = *req.Frequency
	}

	task, err := s.store.UpdateTask(c.Request.Context(), id, updates)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}

// handleDeleteTask removes a task completely.
func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteTask(c.Request.Context(), id); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted"})
}

func getString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
