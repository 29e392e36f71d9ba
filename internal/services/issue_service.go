package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/authz"
	"github.com/circleops/salesops-backend/internal/database"
	"github.com/circleops/salesops-backend/internal/models"
)

// IssueService runs issue escalation with a forward-only status machine
type IssueService struct {
	issues        *database.IssueRepository
	events        *database.EventRepository
	employees     *database.EmployeeRepository
	notifications *NotificationService
	logger        *logrus.Logger
	now           func() time.Time
}

// NewIssueService creates a new issue service
func NewIssueService(
	issues *database.IssueRepository,
	events *database.EventRepository,
	employees *database.EmployeeRepository,
	notifications *NotificationService,
	logger *logrus.Logger,
) *IssueService {
	return &IssueService{
		issues:        issues,
		events:        events,
		employees:     employees,
		notifications: notifications,
		logger:        logger,
		now:           time.Now,
	}
}

// Create raises an issue on an event. Without an explicit escalatee the
// event's creator receives it.
func (s *IssueService) Create(sess authz.Session, req models.CreateIssueRequest) (*models.Issue, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, errBadRequest("invalid event_id")
	}
	event, err := s.events.GetByID(eventID)
	if err != nil {
		return nil, errInternal("failed to load event", err)
	}
	if event == nil {
		return nil, errNotFound("event")
	}

	escalatedTo := event.CreatedBy
	if req.EscalatedTo != nil {
		id, err := uuid.Parse(*req.EscalatedTo)
		if err != nil {
			return nil, errBadRequest("invalid escalated_to")
		}
		emp, err := s.employees.GetByID(id)
		if err != nil {
			return nil, errInternal("failed to load escalatee", err)
		}
		if emp == nil || !emp.IsActive {
			return nil, errNotFound("escalatee")
		}
		escalatedTo = id
	}

	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}

	issue := &models.Issue{
		EventID:     eventID,
		RaisedBy:    sess.EmployeeID,
		IssueType:   req.IssueType,
		Description: strings.TrimSpace(req.Description),
		Priority:    priority,
		Status:      models.IssueOpen,
		EscalatedTo: escalatedTo,
		Timeline: models.Timeline{{
			Action:      "created",
			Status:      models.IssueOpen,
			PerformedBy: sess.EmployeeID,
			Timestamp:   s.now().UTC(),
		}},
	}
	if err := s.issues.Create(issue); err != nil {
		return nil, errInternal("failed to create issue", err)
	}

	s.notifications.notifyQuietly(escalatedTo, models.CategoryIssue,
		fmt.Sprintf("New %s issue", priority),
		fmt.Sprintf("%s issue raised on %s", issue.IssueType, event.Name),
		models.JSONMap{"issue_id": issue.ID.String(), "event_id": eventID.String()})

	s.logger.WithFields(logrus.Fields{
		"issue_id":     issue.ID,
		"event_id":     eventID,
		"escalated_to": escalatedTo,
	}).Info("issue raised")
	return issue, nil
}

// UpdateStatus moves an issue forward. The escalatee may make any forward
// move; the raiser may only close a resolved issue.
func (s *IssueService) UpdateStatus(sess authz.Session, id uuid.UUID, req models.UpdateIssueStatusRequest) (*models.Issue, error) {
	if !req.Status.IsValid() {
		return nil, errBadRequest("unknown issue status %q", req.Status)
	}
	issue, err := s.issues.GetByID(id)
	if err != nil {
		return nil, errInternal("failed to load issue", err)
	}
	if issue == nil {
		return nil, errNotFound("issue")
	}

	isEscalatee := issue.EscalatedTo == sess.EmployeeID
	isRaiser := issue.RaisedBy == sess.EmployeeID
	if !isEscalatee && !isRaiser {
		return nil, errForbidden("only the raiser or the escalatee can update this issue")
	}
	if !req.Status.IsForwardOf(issue.Status) {
		return nil, errConflict("issue cannot move from %s to %s", issue.Status, req.Status)
	}
	if !isEscalatee && !(issue.Status == models.IssueResolved && req.Status == models.IssueClosed) {
		return nil, errForbidden("the raiser can only close a resolved issue")
	}

	entry := models.TimelineEntry{
		Action:      "status_changed",
		Status:      req.Status,
		PerformedBy: sess.EmployeeID,
		Remarks:     strings.TrimSpace(req.Remarks),
		Timestamp:   s.now().UTC(),
	}
	updated, err := s.issues.Transition(id, issue.Status, entry)
	if err != nil {
		return nil, errInternal("failed to update issue", err)
	}
	if updated == nil {
		return nil, errConflict("issue status changed concurrently, reload and retry")
	}

	notify := issue.RaisedBy
	if isRaiser && !isEscalatee {
		notify = issue.EscalatedTo
	}
	if notify != sess.EmployeeID {
		label := strings.ReplaceAll(strings.ToLower(string(req.Status)), "_", " ")
		message := entry.Remarks
		if message == "" {
			message = fmt.Sprintf("%s issue is now %s", issue.IssueType, label)
		}
		s.notifications.notifyQuietly(notify, models.CategoryIssue,
			"Issue "+label,
			message,
			models.JSONMap{"issue_id": id.String(), "status": string(req.Status)})
	}

	s.logger.WithFields(logrus.Fields{
		"issue_id": id,
		"from":     issue.Status,
		"to":       req.Status,
		"by":       sess.EmployeeID,
	}).Info("issue status changed")
	return updated, nil
}

// List returns issues the caller raised, or, for roles that handle
// escalations, issues escalated to the caller
func (s *IssueService) List(sess authz.Session, status models.IssueStatus) ([]models.Issue, error) {
	if status != "" && !status.IsValid() {
		return nil, errBadRequest("unknown issue status %q", status)
	}

	var (
		issues []models.Issue
		err    error
	)
	if sess.Can(authz.IssuesViewEscalated) {
		issues, err = s.issues.ListEscalatedTo(sess.EmployeeID, status)
	} else {
		issues, err = s.issues.ListRaisedBy(sess.EmployeeID, status)
	}
	if err != nil {
		return nil, errInternal("failed to list issues", err)
	}
	return issues, nil
}
