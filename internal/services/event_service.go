package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/authz"
	"github.com/circleops/salesops-backend/internal/database"
	"github.com/circleops/salesops-backend/internal/models"
)

const dateLayout = "2006-01-02"

// EventService owns events, team assignments, subtasks and sales aggregation
type EventService struct {
	events        *database.EventRepository
	assignments   *database.AssignmentRepository
	entries       *database.SalesEntryRepository
	subtasks      *database.SubtaskRepository
	employees     *database.EmployeeRepository
	notifications *NotificationService
	cache         SummaryCache
	logger        *logrus.Logger
}

// NewEventService creates a new event service
func NewEventService(
	events *database.EventRepository,
	assignments *database.AssignmentRepository,
	entries *database.SalesEntryRepository,
	subtasks *database.SubtaskRepository,
	employees *database.EmployeeRepository,
	notifications *NotificationService,
	cache SummaryCache,
	logger *logrus.Logger,
) *EventService {
	return &EventService{
		events:        events,
		assignments:   assignments,
		entries:       entries,
		subtasks:      subtasks,
		employees:     employees,
		notifications: notifications,
		cache:         cache,
		logger:        logger,
	}
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, errBadRequest("%s must be a date in YYYY-MM-DD format", field)
	}
	return t, nil
}

// Create creates an event and reserves its allocations in the circle ledger
func (s *EventService) Create(ctx context.Context, sess authz.Session, req models.CreateEventRequest) (*models.Event, error) {
	if !sess.Can(authz.EventsCreate) {
		return nil, errForbidden("your role cannot create events")
	}

	c, err := normalizeCircle(req.Circle)
	if err != nil {
		return nil, err
	}
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, errBadRequest("end_date must not be before start_date")
	}
	if req.TargetSim < 0 || req.TargetFtth < 0 || req.AllocatedSim < 0 || req.AllocatedFtth < 0 {
		return nil, errBadRequest("targets and allocations must not be negative")
	}

	status := models.EventStatusDraft
	if req.Activate {
		status = models.EventStatusActive
	}

	event := &models.Event{
		Name:          strings.TrimSpace(req.Name),
		EventType:     req.EventType,
		Location:      req.Location,
		Circle:        c,
		Zone:          req.Zone,
		StartDate:     start,
		EndDate:       end,
		TargetSim:     req.TargetSim,
		TargetFtth:    req.TargetFtth,
		AllocatedSim:  req.AllocatedSim,
		AllocatedFtth: req.AllocatedFtth,
		Status:        status,
		KeyInsight:    req.KeyInsight,
		CreatedBy:     sess.EmployeeID,
	}
	if err := s.events.Create(event); err != nil {
		return nil, errInternal("failed to create event", err)
	}
	if event.AllocatedSim > 0 || event.AllocatedFtth > 0 {
		s.cache.Delete(ctx, resourceSummaryKey)
	}

	s.logger.WithFields(logrus.Fields{
		"event_id":   event.ID,
		"circle":     event.Circle,
		"status":     event.Status,
		"created_by": sess.EmployeeID,
	}).Info("event created")
	return event, nil
}

// List returns events filtered by circle and status
func (s *EventService) List(rawCircle string, status models.EventStatus) ([]models.Event, error) {
	c, err := optionalCircle(rawCircle)
	if err != nil {
		return nil, err
	}
	if status != "" && !status.IsValid() {
		return nil, errBadRequest("unknown event status %q", status)
	}
	events, err := s.events.List(models.EventFilter{Circle: c, Status: status})
	if err != nil {
		return nil, errInternal("failed to list events", err)
	}
	return events, nil
}

func (s *EventService) getEvent(id uuid.UUID) (*models.Event, error) {
	event, err := s.events.GetByID(id)
	if err != nil {
		return nil, errInternal("failed to load event", err)
	}
	if event == nil {
		return nil, errNotFound("event")
	}
	return event, nil
}

// GetDetails returns an event with its team, subtasks, sales entries and roll-up
func (s *EventService) GetDetails(id uuid.UUID) (*models.EventDetails, error) {
	event, err := s.getEvent(id)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignments.ListByEvent(id)
	if err != nil {
		return nil, errInternal("failed to load assignments", err)
	}
	subtasks, err := s.subtasks.ListByEvent(id)
	if err != nil {
		return nil, errInternal("failed to load subtasks", err)
	}
	entries, err := s.entries.ListByEvent(id)
	if err != nil {
		return nil, errInternal("failed to load sales entries", err)
	}

	return &models.EventDetails{
		Event:        *event,
		Assignments:  assignments,
		Subtasks:     subtasks,
		SalesEntries: entries,
		Summary:      summarizeEvent(event, assignments, subtasks),
	}, nil
}

func summarizeEvent(event *models.Event, assignments []models.EventAssignment, subtasks []models.EventSubtask) models.EventSummary {
	summary := models.EventSummary{TeamCount: len(assignments)}
	for _, a := range assignments {
		summary.TotalSimsSold += a.SimSold
		summary.TotalFtthSold += a.FtthSold
	}
	summary.SimProgress = progress(summary.TotalSimsSold, event.TargetSim)
	summary.FtthProgress = progress(summary.TotalFtthSold, event.TargetFtth)

	summary.Subtasks.Total = len(subtasks)
	for _, st := range subtasks {
		switch st.Status {
		case models.SubtaskPending:
			summary.Subtasks.Pending++
		case models.SubtaskInProgress:
			summary.Subtasks.InProgress++
		case models.SubtaskCompleted:
			summary.Subtasks.Completed++
		}
	}
	return summary
}

// progress is sold as a percentage of target, one decimal place; 0 without a target
func progress(sold, target int) float64 {
	if target <= 0 {
		return 0
	}
	return math.Round(float64(sold)*1000/float64(target)) / 10
}

// MyTasks returns the caller's assignments with their events
func (s *EventService) MyTasks(sess authz.Session) ([]models.MyTask, error) {
	tasks, err := s.assignments.ListByEmployee(sess.EmployeeID)
	if err != nil {
		return nil, errInternal("failed to load tasks", err)
	}
	return tasks, nil
}

// AssignTeam upserts targets for employees on an event. Employees already on
// the team keep their sold counters; new members are notified.
func (s *EventService) AssignTeam(sess authz.Session, eventID uuid.UUID, req models.AssignTeamRequest) (*models.AssignTeamResult, error) {
	if !sess.Can(authz.EventsAssign) {
		return nil, errForbidden("your role cannot assign teams")
	}
	if len(req.Members) == 0 {
		return nil, errBadRequest("at least one team member is required")
	}

	event, err := s.getEvent(eventID)
	if err != nil {
		return nil, err
	}
	if event.Status.IsTerminal() {
		return nil, errConflict("event is %s", event.Status)
	}

	targets := make([]database.AssignmentTarget, 0, len(req.Members))
	seen := make(map[uuid.UUID]bool, len(req.Members))
	for _, m := range req.Members {
		id, err := uuid.Parse(m.EmployeeID)
		if err != nil {
			return nil, errBadRequest("invalid employee_id %q", m.EmployeeID)
		}
		if seen[id] {
			return nil, errBadRequest("employee %s listed twice", id)
		}
		seen[id] = true
		if m.SimTarget < 0 || m.FtthTarget < 0 {
			return nil, errBadRequest("targets must not be negative")
		}
		emp, err := s.employees.GetByID(id)
		if err != nil {
			return nil, errInternal("failed to load employee", err)
		}
		if emp == nil || !emp.IsActive {
			return nil, errNotFound(fmt.Sprintf("employee %s", id))
		}
		targets = append(targets, database.AssignmentTarget{EmployeeID: id, SimTarget: m.SimTarget, FtthTarget: m.FtthTarget})
	}

	rows, err := s.assignments.Upsert(eventID, sess.EmployeeID, targets)
	switch {
	case errors.Is(err, database.ErrEventNotFound):
		return nil, errNotFound("event")
	case errors.Is(err, database.ErrEventClosed):
		return nil, errConflict("event is closed for assignments")
	case err != nil:
		return nil, errInternal("failed to assign team", err)
	}

	result := &models.AssignTeamResult{Assignments: make([]models.EventAssignment, 0, len(rows))}
	for _, row := range rows {
		result.Assignments = append(result.Assignments, row.EventAssignment)
		if !row.Inserted {
			result.Updated++
			continue
		}
		result.Created++
		s.notifications.notifyQuietly(row.EmployeeID, models.CategoryAssignment,
			"New event assignment",
			fmt.Sprintf("You have been assigned to %s at %s", event.Name, event.Location),
			models.JSONMap{"event_id": event.ID.String(), "sim_target": row.SimTarget, "ftth_target": row.FtthTarget})
	}

	s.logger.WithFields(logrus.Fields{
		"event_id": eventID,
		"created":  result.Created,
		"updated":  result.Updated,
	}).Info("team assigned")
	return result, nil
}

// UpdateStatus moves an event along its lifecycle
func (s *EventService) UpdateStatus(ctx context.Context, sess authz.Session, eventID uuid.UUID, next models.EventStatus) (*models.Event, error) {
	if !sess.Can(authz.EventsManage) {
		return nil, errForbidden("your role cannot manage events")
	}
	if !next.IsValid() {
		return nil, errBadRequest("unknown event status %q", next)
	}
	event, err := s.getEvent(eventID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, event, next)
}

func (s *EventService) transition(ctx context.Context, event *models.Event, next models.EventStatus) (*models.Event, error) {
	if !event.Status.CanTransitionTo(next) {
		return nil, errConflict("cannot move event from %s to %s", event.Status, next)
	}
	updated, err := s.events.UpdateStatus(event.ID, event.Status, next)
	if err != nil {
		return nil, errInternal("failed to update event status", err)
	}
	if updated == nil {
		return nil, errConflict("event status changed concurrently, reload and retry")
	}
	if next.IsTerminal() {
		s.cache.Delete(ctx, resourceSummaryKey)
	}

	s.logger.WithFields(logrus.Fields{
		"event_id": event.ID,
		"from":     event.Status,
		"to":       next,
	}).Info("event status changed")
	return updated, nil
}

// CompleteEndedEvents completes active or paused events whose end date is
// before today and returns how many changed
func (s *EventService) CompleteEndedEvents(ctx context.Context, now time.Time) (int, error) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	ended, err := s.events.ListEnded(today)
	if err != nil {
		return 0, errInternal("failed to list ended events", err)
	}

	completed := 0
	for i := range ended {
		if _, err := s.transition(ctx, &ended[i], models.EventStatusCompleted); err != nil {
			s.logger.WithError(err).WithField("event_id", ended[i].ID).Warn("failed to complete ended event")
			continue
		}
		completed++
	}
	return completed, nil
}

// validateSalesCounts enforces non-negative counts, activated <= sold and at
// least one sale
func validateSalesCounts(c models.SalesCounts) error {
	if c.SimsSold < 0 || c.SimsActivated < 0 || c.FtthSold < 0 || c.FtthActivated < 0 {
		return errBadRequest("counts must not be negative")
	}
	if c.SimsActivated > c.SimsSold {
		return errBadRequest("sims_activated cannot exceed sims_sold")
	}
	if c.FtthActivated > c.FtthSold {
		return errBadRequest("ftth_activated cannot exceed ftth_sold")
	}
	if c.SimsSold == 0 && c.FtthSold == 0 {
		return errBadRequest("at least one of sims_sold or ftth_sold must be positive")
	}
	return nil
}

// SubmitSales records the caller's sales against their assignment on an
// event. Each call adds to the totals; resubmitting counts twice.
func (s *EventService) SubmitSales(ctx context.Context, sess authz.Session, eventID uuid.UUID, req models.SubmitEventSalesRequest) (*models.SubmitEventSalesResult, error) {
	if err := validateSalesCounts(req.SalesCounts); err != nil {
		return nil, err
	}

	entry := &models.EventSalesEntry{
		EventID:       eventID,
		EmployeeID:    sess.EmployeeID,
		SimsSold:      req.SimsSold,
		SimsActivated: req.SimsActivated,
		FtthSold:      req.FtthSold,
		FtthActivated: req.FtthActivated,
		CustomerType:  req.CustomerType,
		Photos:        models.StringArray(req.Photos),
		Remarks:       req.Remarks,
	}
	if entry.Photos == nil {
		entry.Photos = models.StringArray{}
	}
	if req.GPS != nil {
		lat, lng := req.GPS.Latitude, req.GPS.Longitude
		entry.GPSLatitude, entry.GPSLongitude = &lat, &lng
	}

	assignment, err := s.entries.Submit(entry)
	switch {
	case errors.Is(err, database.ErrAssignmentNotFound):
		return nil, errNotFound("assignment for this event")
	case errors.Is(err, database.ErrEventClosed):
		return nil, errConflict("event is closed for sales")
	case err != nil:
		return nil, errInternal("failed to submit sales", err)
	}
	s.cache.Delete(ctx, resourceSummaryKey)

	s.logger.WithFields(logrus.Fields{
		"event_id":    eventID,
		"employee_id": sess.EmployeeID,
		"sims_sold":   entry.SimsSold,
		"ftth_sold":   entry.FtthSold,
	}).Info("event sales submitted")
	return &models.SubmitEventSalesResult{Entry: *entry, Assignment: *assignment}, nil
}

// CreateSubtask adds a subtask to an event
func (s *EventService) CreateSubtask(sess authz.Session, eventID uuid.UUID, req models.CreateSubtaskRequest) (*models.EventSubtask, error) {
	if !sess.Can(authz.EventsManage) {
		return nil, errForbidden("your role cannot manage events")
	}
	if _, err := s.getEvent(eventID); err != nil {
		return nil, err
	}

	subtask := &models.EventSubtask{
		EventID:     eventID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      models.SubtaskPending,
		Priority:    req.Priority,
		CreatedBy:   sess.EmployeeID,
	}
	if subtask.Priority == "" {
		subtask.Priority = "medium"
	}
	if req.AssignedTo != nil {
		id, err := uuid.Parse(*req.AssignedTo)
		if err != nil {
			return nil, errBadRequest("invalid assigned_to")
		}
		subtask.AssignedTo = &id
	}
	if req.DueDate != nil {
		due, err := parseDate("due_date", *req.DueDate)
		if err != nil {
			return nil, err
		}
		subtask.DueDate = &due
	}

	if err := s.subtasks.Create(subtask); err != nil {
		return nil, errInternal("failed to create subtask", err)
	}
	if subtask.AssignedTo != nil {
		s.notifications.notifyQuietly(*subtask.AssignedTo, models.CategoryAssignment,
			"New subtask", subtask.Title,
			models.JSONMap{"event_id": eventID.String(), "subtask_id": subtask.ID.String()})
	}
	return subtask, nil
}

// UpdateSubtaskStatus changes a subtask's status. The assignee or an event
// manager may do this.
func (s *EventService) UpdateSubtaskStatus(sess authz.Session, id uuid.UUID, status models.SubtaskStatus) (*models.EventSubtask, error) {
	if !status.IsValid() {
		return nil, errBadRequest("unknown subtask status %q", status)
	}
	subtask, err := s.subtasks.GetByID(id)
	if err != nil {
		return nil, errInternal("failed to load subtask", err)
	}
	if subtask == nil {
		return nil, errNotFound("subtask")
	}
	isAssignee := subtask.AssignedTo != nil && *subtask.AssignedTo == sess.EmployeeID
	if !isAssignee && !sess.Can(authz.EventsManage) {
		return nil, errForbidden("only the assignee or an event manager can update this subtask")
	}

	updated, err := s.subtasks.UpdateStatus(id, status)
	if err != nil {
		return nil, errInternal("failed to update subtask", err)
	}
	if updated == nil {
		return nil, errNotFound("subtask")
	}
	return updated, nil
}
