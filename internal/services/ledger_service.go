package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/authz"
	"github.com/circleops/salesops-backend/internal/database"
	"github.com/circleops/salesops-backend/internal/models"
	"github.com/circleops/salesops-backend/pkg/circle"
)

// LedgerService exposes the per-circle SIM/FTTH stock ledger
type LedgerService struct {
	resources *database.ResourceRepository
	cache     SummaryCache
	logger    *logrus.Logger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(resources *database.ResourceRepository, cache SummaryCache, logger *logrus.Logger) *LedgerService {
	return &LedgerService{resources: resources, cache: cache, logger: logger}
}

// normalizeCircle maps user input to a canonical circle code
func normalizeCircle(raw string) (string, error) {
	c, ok := circle.Normalize(raw)
	if !ok {
		return "", errBadRequest("unknown circle %q", raw)
	}
	return c.String(), nil
}

// optionalCircle is normalizeCircle that lets an empty filter through
func optionalCircle(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return normalizeCircle(raw)
}

// GetAll lists ledger rows, optionally for one circle
func (s *LedgerService) GetAll(rawCircle string) ([]models.Resource, error) {
	c, err := optionalCircle(rawCircle)
	if err != nil {
		return nil, err
	}
	resources, err := s.resources.GetAll(c)
	if err != nil {
		return nil, errInternal("failed to load resources", err)
	}
	return resources, nil
}

// GetSummary returns the per-type roll-up, served from cache when possible
func (s *LedgerService) GetSummary(ctx context.Context) ([]models.ResourceTypeSummary, error) {
	var summary []models.ResourceTypeSummary
	if s.cache.Get(ctx, resourceSummaryKey, &summary) {
		return summary, nil
	}

	summary, err := s.resources.GetSummary()
	if err != nil {
		return nil, errInternal("failed to summarize resources", err)
	}
	s.cache.Set(ctx, resourceSummaryKey, summary)
	return summary, nil
}

// UpdateStock sets a circle's total stock for one resource type. The role
// check runs before any input is looked at or any row is touched.
func (s *LedgerService) UpdateStock(ctx context.Context, sess authz.Session, rawCircle, rawType string, newTotal int) (*models.Resource, error) {
	if !sess.Can(authz.ResourcesUpdateStock) {
		s.logger.WithFields(logrus.Fields{
			"employee_id": sess.EmployeeID,
			"role":        sess.Role,
		}).Warn("stock update denied")
		return nil, errForbidden("only GM, CGM or DGM can update stock")
	}

	resourceType := models.ResourceType(strings.ToUpper(strings.TrimSpace(rawType)))
	if !resourceType.IsValid() {
		return nil, errBadRequest("resource type must be SIM or FTTH")
	}
	c, err := normalizeCircle(rawCircle)
	if err != nil {
		return nil, err
	}
	if newTotal < 0 {
		return nil, errBadRequest("total must not be negative")
	}

	res, err := s.resources.SetTotal(c, resourceType, newTotal, sess.EmployeeID)
	if err != nil {
		return nil, errInternal("failed to update stock", err)
	}
	if res == nil {
		return nil, errConflict("total %d is below the %s stock already used in %s", newTotal, resourceType, c)
	}
	s.cache.Delete(ctx, resourceSummaryKey)

	s.logger.WithFields(logrus.Fields{
		"circle":     c,
		"type":       resourceType,
		"total":      res.Total,
		"remaining":  res.Remaining,
		"updated_by": sess.EmployeeID,
	}).Info("stock updated")
	return res, nil
}
