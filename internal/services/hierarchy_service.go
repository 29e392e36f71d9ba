package services

import (
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/authz"
	"github.com/circleops/salesops-backend/internal/database"
	"github.com/circleops/salesops-backend/internal/models"
	"github.com/circleops/salesops-backend/pkg/validator"
)

// maxTeamDepth bounds the subordinate tree used by team pickers
const maxTeamDepth = 2

// HierarchyService resolves reporting lines from the HR master table.
// Every traversal tracks visited purse IDs so a cyclic reporting line
// terminates and is flagged instead of looping.
type HierarchyService struct {
	employees *database.EmployeeRepository
	maxDepth  int
	logger    *logrus.Logger
}

// NewHierarchyService creates a new hierarchy service
func NewHierarchyService(employees *database.EmployeeRepository, maxDepth int, logger *logrus.Logger) *HierarchyService {
	if maxDepth < 1 {
		maxDepth = 1
	}
	return &HierarchyService{employees: employees, maxDepth: maxDepth, logger: logger}
}

func (s *HierarchyService) loadSelf(rawPersNo string) (*models.MasterWithAccount, error) {
	persNo, err := validator.NormalizePersNo(rawPersNo)
	if err != nil {
		return nil, errBadRequest("invalid pers number %q", rawPersNo)
	}
	self, err := s.employees.GetMasterByPersNo(persNo)
	if err != nil {
		return nil, errInternal("failed to load employee master", err)
	}
	if self == nil {
		return nil, errNotFound("employee")
	}
	return self, nil
}

func (s *HierarchyService) warnCycle(persNo, purseID string) {
	s.logger.WithFields(logrus.Fields{
		"pers_no":  persNo,
		"purse_id": purseID,
	}).Warn("reporting cycle detected in employee master")
}

// Resolve returns an employee with their direct manager and direct reports
func (s *HierarchyService) Resolve(persNo string) (*models.HierarchyView, error) {
	self, err := s.loadSelf(persNo)
	if err != nil {
		return nil, err
	}
	view := &models.HierarchyView{Self: models.NewHierarchyNode(*self), Subordinates: []models.HierarchyNode{}}

	if self.ReportingPurseID.Valid && self.ReportingPurseID.String != "" {
		if self.ReportingPurseID.String == self.PurseID {
			view.CycleDetected = true
			s.warnCycle(self.PersNo, self.PurseID)
		} else {
			manager, err := s.employees.GetMasterByPurseID(self.ReportingPurseID.String)
			if err != nil {
				return nil, errInternal("failed to load manager", err)
			}
			if manager != nil {
				node := models.NewHierarchyNode(*manager)
				view.Manager = &node
			}
		}
	}

	reports, err := s.employees.ListDirectReports([]string{self.PurseID})
	if err != nil {
		return nil, errInternal("failed to load direct reports", err)
	}
	for _, r := range reports {
		if r.PurseID == self.PurseID || (view.Manager != nil && r.PurseID == view.Manager.PurseID) {
			view.CycleDetected = true
			s.warnCycle(self.PersNo, r.PurseID)
			continue
		}
		view.Subordinates = append(view.Subordinates, models.NewHierarchyNode(r))
	}
	return view, nil
}

// Team returns the subordinate tree down to depth levels (1 or 2)
func (s *HierarchyService) Team(persNo string, depth int) (*models.TeamView, error) {
	if depth < 1 || depth > maxTeamDepth {
		return nil, errBadRequest("depth must be between 1 and %d", maxTeamDepth)
	}
	self, err := s.loadSelf(persNo)
	if err != nil {
		return nil, err
	}

	root := &teamNode{node: models.NewHierarchyNode(*self)}
	view := &models.TeamView{Depth: depth}
	visited := map[string]bool{self.PurseID: true}

	// walk breadth first, one query per level
	level := map[string]*teamNode{self.PurseID: root}
	for d := 0; d < depth && len(level) > 0; d++ {
		parents := make([]string, 0, len(level))
		for purseID := range level {
			parents = append(parents, purseID)
		}
		sort.Strings(parents)
		reports, err := s.employees.ListDirectReports(parents)
		if err != nil {
			return nil, errInternal("failed to load team", err)
		}

		next := map[string]*teamNode{}
		for _, r := range reports {
			if visited[r.PurseID] {
				view.CycleDetected = true
				s.warnCycle(self.PersNo, r.PurseID)
				continue
			}
			parent := level[r.ReportingPurseID.String]
			if parent == nil {
				continue
			}
			visited[r.PurseID] = true
			child := &teamNode{node: models.NewHierarchyNode(r)}
			parent.children = append(parent.children, child)
			next[r.PurseID] = child
		}
		level = next
	}

	view.Root = root.tree()
	return view, nil
}

type teamNode struct {
	node     models.HierarchyNode
	children []*teamNode
}

func (n *teamNode) tree() models.TeamTree {
	t := models.TeamTree{HierarchyNode: n.node, Subordinates: make([]models.TeamTree, 0, len(n.children))}
	for _, c := range n.children {
		t.Subordinates = append(t.Subordinates, c.tree())
	}
	return t
}

// Chain returns the managers above an employee, nearest first, bounded by the
// configured maximum depth
func (s *HierarchyService) Chain(persNo string) (*models.ReportingChain, error) {
	self, err := s.loadSelf(persNo)
	if err != nil {
		return nil, err
	}
	chain := &models.ReportingChain{Self: models.NewHierarchyNode(*self), Chain: []models.HierarchyNode{}}
	visited := map[string]bool{self.PurseID: true}

	current := self
	for current.ReportingPurseID.Valid && current.ReportingPurseID.String != "" {
		if len(chain.Chain) >= s.maxDepth {
			chain.Truncated = true
			break
		}
		next := current.ReportingPurseID.String
		if visited[next] {
			chain.CycleDetected = true
			s.warnCycle(self.PersNo, next)
			break
		}
		visited[next] = true

		manager, err := s.employees.GetMasterByPurseID(next)
		if err != nil {
			return nil, errInternal("failed to load manager", err)
		}
		if manager == nil {
			break
		}
		chain.Chain = append(chain.Chain, models.NewHierarchyNode(*manager))
		current = manager
	}
	return chain, nil
}

// LinkEmployee attaches an app account to a master record
func (s *HierarchyService) LinkEmployee(sess authz.Session, employeeID uuid.UUID, purseID string) (*models.Employee, error) {
	if !sess.Can(authz.AdminHierarchy) {
		return nil, errForbidden("your role cannot manage the hierarchy")
	}
	master, err := s.employees.GetMasterByPurseID(purseID)
	if err != nil {
		return nil, errInternal("failed to load employee master", err)
	}
	if master == nil {
		return nil, errNotFound("employee master record")
	}
	if master.EmployeeID != nil {
		if *master.EmployeeID == employeeID {
			emp, err := s.employees.GetByID(employeeID)
			if err != nil {
				return nil, errInternal("failed to load employee", err)
			}
			return emp, nil
		}
		return nil, errConflict("purse ID %s is already linked to another account", purseID)
	}

	emp, err := s.employees.LinkPurseID(employeeID, purseID)
	if database.IsUniqueViolation(err) {
		return nil, errConflict("purse ID %s is already linked to another account", purseID)
	}
	if err != nil {
		return nil, errInternal("failed to link employee", err)
	}
	if emp == nil {
		return nil, errNotFound("employee")
	}

	s.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"purse_id":    purseID,
		"linked_by":   sess.EmployeeID,
	}).Info("employee linked to master record")
	return emp, nil
}
