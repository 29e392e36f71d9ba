package models

import (
	"time"

	"github.com/google/uuid"
)

// Employee is an app account
type Employee struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Phone     string     `db:"phone" json:"phone"`
	Email     NullString `db:"email" json:"email,omitempty"`
	Role      Role       `db:"role" json:"role"`
	Circle    string     `db:"circle" json:"circle"`
	Zone      NullString `db:"zone" json:"zone,omitempty"`
	PersNo    string     `db:"pers_no" json:"pers_no"`
	PurseID   NullString `db:"purse_id" json:"purse_id,omitempty"`
	IsActive  bool       `db:"is_active" json:"is_active"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// EmployeeMaster is the authoritative HR record keyed by purse ID
type EmployeeMaster struct {
	PurseID              string     `db:"purse_id" json:"purse_id"`
	PersNo               string     `db:"pers_no" json:"pers_no"`
	Name                 string     `db:"name" json:"name"`
	Designation          string     `db:"designation" json:"designation"`
	Circle               string     `db:"circle" json:"circle"`
	Zone                 NullString `db:"zone" json:"zone,omitempty"`
	Office               NullString `db:"office" json:"office,omitempty"`
	Phone                NullString `db:"phone" json:"phone,omitempty"`
	ReportingPurseID     NullString `db:"reporting_purse_id" json:"reporting_purse_id,omitempty"`
	ReportingOfficerName NullString `db:"reporting_officer_name" json:"reporting_officer_name,omitempty"`
}

// MasterWithAccount is a master row joined with the linked app account, if any
type MasterWithAccount struct {
	EmployeeMaster
	EmployeeID *uuid.UUID `db:"employee_id" json:"employee_id,omitempty"`
}

// HierarchyNode is one person in a hierarchy response
type HierarchyNode struct {
	PurseID     string     `json:"purse_id"`
	PersNo      string     `json:"pers_no"`
	Name        string     `json:"name"`
	Designation string     `json:"designation"`
	Circle      string     `json:"circle"`
	IsLinked    bool       `json:"is_linked"`
	EmployeeID  *uuid.UUID `json:"employee_id,omitempty"`
}

// NewHierarchyNode builds a node from a joined master row
func NewHierarchyNode(m MasterWithAccount) HierarchyNode {
	return HierarchyNode{
		PurseID:     m.PurseID,
		PersNo:      m.PersNo,
		Name:        m.Name,
		Designation: m.Designation,
		Circle:      m.Circle,
		IsLinked:    m.EmployeeID != nil,
		EmployeeID:  m.EmployeeID,
	}
}

// HierarchyView is the response of hierarchy.resolve
type HierarchyView struct {
	Self          HierarchyNode   `json:"self"`
	Manager       *HierarchyNode  `json:"manager,omitempty"`
	Subordinates  []HierarchyNode `json:"subordinates"`
	CycleDetected bool            `json:"cycle_detected"`
}

// TeamTree is a node with its subordinates, used by the team picker
type TeamTree struct {
	HierarchyNode
	Subordinates []TeamTree `json:"subordinates"`
}

// TeamView is the response of hierarchy.team
type TeamView struct {
	Root          TeamTree `json:"root"`
	Depth         int      `json:"depth"`
	CycleDetected bool     `json:"cycle_detected"`
}

// ReportingChain lists managers from the direct manager upward
type ReportingChain struct {
	Self          HierarchyNode   `json:"self"`
	Chain         []HierarchyNode `json:"chain"`
	Truncated     bool            `json:"truncated"`
	CycleDetected bool            `json:"cycle_detected"`
}

// LinkEmployeeRequest is the body of admin.linkEmployee
type LinkEmployeeRequest struct {
	PurseID string `json:"purse_id" binding:"required,max=20"`
}
