// Package authz holds the single role -> action policy table.
package authz

import "github.com/circleops/salesops-backend/internal/models"

// Action names a guarded operation
type Action string

const (
	ResourcesUpdateStock Action = "resources.update_stock"
	SalesApprove         Action = "sales.approve"
	SalesViewAll         Action = "sales.view_all"
	EventsCreate         Action = "events.create"
	EventsAssign         Action = "events.assign"
	EventsManage         Action = "events.manage"
	IssuesViewEscalated  Action = "issues.view_escalated"
	AdminHierarchy       Action = "admin.hierarchy"
	AdminImport          Action = "admin.import"
	AdminReports         Action = "admin.reports"
)

var (
	managers = []models.Role{models.RoleCGM, models.RoleGM, models.RoleDGM, models.RoleAGM}
	admins   = []models.Role{models.RoleAdmin, models.RoleCGM, models.RoleGM}
)

// Policy maps each action to the roles allowed to perform it
var Policy = map[Action][]models.Role{
	ResourcesUpdateStock: {models.RoleGM, models.RoleCGM, models.RoleDGM},
	SalesApprove:         managers,
	SalesViewAll:         append(append([]models.Role{}, managers...), models.RoleAdmin),
	EventsCreate:         managers,
	EventsAssign:         managers,
	EventsManage:         managers,
	IssuesViewEscalated:  append(append([]models.Role{}, managers...), models.RoleSDE),
	AdminHierarchy:       admins,
	AdminImport:          admins,
	AdminReports:         append(append([]models.Role{}, admins...), models.RoleDGM),
}

// Can reports whether role may perform action. Unknown actions are denied.
func Can(role models.Role, action Action) bool {
	for _, allowed := range Policy[action] {
		if allowed == role {
			return true
		}
	}
	return false
}

// ActionsFor lists the actions a role may perform, in table order
func ActionsFor(role models.Role) []Action {
	var out []Action
	for _, a := range allActions {
		if Can(role, a) {
			out = append(out, a)
		}
	}
	return out
}

var allActions = []Action{
	ResourcesUpdateStock,
	SalesApprove,
	SalesViewAll,
	EventsCreate,
	EventsAssign,
	EventsManage,
	IssuesViewEscalated,
	AdminHierarchy,
	AdminImport,
	AdminReports,
}
