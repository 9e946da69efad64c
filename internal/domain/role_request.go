package domain

import "time"

// RoleRequestStatus enumerates the role-upgrade state machine.
type RoleRequestStatus string

const (
	RoleRequestPending  RoleRequestStatus = "PENDING"
	RoleRequestApproved RoleRequestStatus = "APPROVED"
	RoleRequestRejected RoleRequestStatus = "REJECTED"
)

// RoleUpgradeRequest is a moderated ask to change a profile's role. Only
// admins resolve requests; APPROVED and REJECTED are terminal.
type RoleUpgradeRequest struct {
	ID             string
	RequesterID    string
	RequesterName  string
	RequesterEmail string
	CurrentRole    Role
	RequestedRole  Role
	Reason         string
	Status         RoleRequestStatus
	ResolvedByID   *string
	CreatedAt      time.Time
	ResolvedAt     *time.Time
}
