package rbac

import (
	internal "github.com/arifwid/opstrack/internal"
)

// Role is the canonical role vocabulary. The serialized form matches the
// user_roles enum in the database.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleManager    Role = "manager"
	RoleSupervisor Role = "supervisor"
	RoleMember     Role = "member"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSuperAdmin, RoleManager, RoleSupervisor, RoleMember:
		return Role(s), nil
	}
	return "", internal.NewValidationError("invalid role: "+s, internal.ErrCodeInvalidEnum)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// SeesAllRecords reports whether the role escapes row-scoping entirely.
func (r Role) SeesAllRecords() bool {
	return r == RoleSuperAdmin || r == RoleManager || r == RoleSupervisor
}

// CanManageRecords reports whether the role may edit or delete records it does
// not own.
func (r Role) CanManageRecords() bool {
	return r == RoleSuperAdmin || r == RoleManager || r == RoleSupervisor
}

// CanAssignOthers reports whether the role may assign a task, incident or RCA
// to a user other than itself.
func (r Role) CanAssignOthers() bool {
	return r == RoleManager || r == RoleSupervisor
}

// Kind identifies the resource family an action targets.
type Kind string

const (
	KindUser       Kind = "user"
	KindTask       Kind = "task"
	KindDeployment Kind = "deployment"
	KindIncident   Kind = "incident"
	KindRCA        Kind = "rca"
	KindAsset      Kind = "asset"
)

type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionAssign Action = "assign"
)

// Resource describes the target of an action. OwnerIDs carries the user ids
// tied to a record (creator, assignee, owner or deployer depending on Kind).
// TargetRole and TargetID are only meaningful for KindUser.
type Resource struct {
	Kind       Kind
	OwnerIDs   []int64
	TargetRole Role
	TargetID   int64
}

func RecordResource(kind Kind, ownerIDs ...int64) Resource {
	return Resource{Kind: kind, OwnerIDs: ownerIDs}
}

func UserResource(targetID int64, targetRole Role) Resource {
	return Resource{Kind: KindUser, TargetID: targetID, TargetRole: targetRole}
}

// CanCreateRole is the user-creation matrix: super admins create managers and
// supervisors, managers and supervisors create members, members create nobody.
func CanCreateRole(actor Role, target Role) bool {
	switch actor {
	case RoleSuperAdmin:
		return target == RoleManager || target == RoleSupervisor
	case RoleManager, RoleSupervisor:
		return target == RoleMember
	default:
		return false
	}
}

// CanPerform is the single permission decision function. Every handler and
// service reduces its authorization check to a call here.
func CanPerform(actorRole Role, actorID int64, action Action, res Resource) bool {
	if !actorRole.Valid() {
		return false
	}

	if res.Kind == KindUser {
		return canPerformOnUser(actorRole, actorID, action, res)
	}

	switch action {
	case ActionCreate:
		return true
	case ActionView:
		return actorRole.SeesAllRecords() || ownedBy(res, actorID)
	case ActionUpdate, ActionDelete:
		return actorRole.CanManageRecords() || ownedBy(res, actorID)
	case ActionAssign:
		// Assigning to yourself is always fine; the caller only asks for
		// assignments targeting someone else.
		return actorRole.CanAssignOthers()
	default:
		return false
	}
}

func canPerformOnUser(actorRole Role, actorID int64, action Action, res Resource) bool {
	switch action {
	case ActionCreate:
		return CanCreateRole(actorRole, res.TargetRole)
	case ActionView, ActionUpdate:
		if res.TargetID == actorID {
			return true
		}
		return actorRole == RoleSuperAdmin || actorRole == RoleManager || actorRole == RoleSupervisor
	case ActionDelete:
		// Super admin accounts and the actor's own account are never deletable.
		if res.TargetRole == RoleSuperAdmin || res.TargetID == actorID {
			return false
		}
		return actorRole == RoleSuperAdmin || actorRole == RoleManager || actorRole == RoleSupervisor
	default:
		return false
	}
}

func ownedBy(res Resource, actorID int64) bool {
	for _, id := range res.OwnerIDs {
		if id != 0 && id == actorID {
			return true
		}
	}
	return false
}

// Scope is the row-scoping rule repositories apply before any caller filters.
// An unrestricted scope returns every row; a member scope returns only rows
// tied to UserID.
type Scope struct {
	Role   Role
	UserID int64
}

func ScopeFor(role Role, userID int64) Scope {
	return Scope{Role: role, UserID: userID}
}

func (s Scope) Unrestricted() bool {
	return s.Role.SeesAllRecords()
}
