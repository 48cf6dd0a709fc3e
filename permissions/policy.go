package permissions

import (
	"context"
	"rental/shared/constant"
	"slices"
)

type Action string

const (
	ActionVehicleManage Action = "vehicle:manage"
	ActionUserManage    Action = "user:manage"

	ActionBookingCreate     Action = "booking:create"
	ActionBookingRead       Action = "booking:read"
	ActionBookingList       Action = "booking:list"
	ActionBookingTransition Action = "booking:transition"
	ActionBookingCancel     Action = "booking:cancel"

	ActionInspectionCreate  Action = "inspection:create"
	ActionInspectionUpload  Action = "inspection:upload"
	ActionInspectionRead    Action = "inspection:read"
	ActionInspectionAnalyze Action = "inspection:analyze"
	ActionInspectionReview  Action = "inspection:review"

	ActionPenaltyPay      Action = "penalty:pay"
	ActionPenaltyMarkPaid Action = "penalty:mark_paid"
)

// Actor is the authenticated caller.
type Actor struct {
	ID   string
	Role string
}

// Resource is what an action targets. OwnerID is empty for collection level actions.
type Resource struct {
	OwnerID string
}

// rule grants an action to every listed role, and to the resource owner when owner is set.
// account rules are closed to the API key actor, which has no user row.
type rule struct {
	roles   []string
	owner   bool
	account bool
}

var (
	everyone   = []string{constant.RoleCustomer, constant.RoleStaff, constant.RoleAdmin}
	privileged = []string{constant.RoleStaff, constant.RoleAdmin}
	adminOnly  = []string{constant.RoleAdmin}
)

var policy = map[Action]rule{
	ActionVehicleManage: {roles: privileged},
	ActionUserManage:    {roles: adminOnly},

	ActionBookingCreate:     {roles: everyone, account: true},
	ActionBookingRead:       {roles: privileged, owner: true},
	ActionBookingList:       {roles: privileged},
	ActionBookingTransition: {roles: privileged, owner: true},
	ActionBookingCancel:     {roles: adminOnly, owner: true},

	ActionInspectionCreate:  {roles: adminOnly},
	ActionInspectionUpload:  {roles: privileged},
	ActionInspectionRead:    {roles: privileged, owner: true},
	ActionInspectionAnalyze: {roles: privileged},
	ActionInspectionReview:  {roles: adminOnly},

	ActionPenaltyPay:      {owner: true},
	ActionPenaltyMarkPaid: {roles: privileged},
}

// Can reports whether actor may perform action on resource. Unknown actions
// and anonymous actors are denied.
func Can(actor Actor, action Action, resource Resource) bool {
	if actor.ID == "" {
		return false
	}

	r, ok := policy[action]
	if !ok || (r.account && actor.ID == constant.SystemActor) {
		return false
	}

	if slices.Contains(r.roles, actor.Role) {
		return true
	}

	return r.owner && resource.OwnerID != "" && resource.OwnerID == actor.ID
}

// Privileged reports whether the actor is staff or admin.
func (a Actor) Privileged() bool {
	return slices.Contains(privileged, a.Role)
}

// ActorFromContext reads the identity the auth middleware stored in ctx.
func ActorFromContext(ctx context.Context) Actor {
	id, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return Actor{ID: id, Role: role}
}

// ContextWithActor stores actor the way the auth middleware does.
func ContextWithActor(ctx context.Context, actor Actor) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, actor.ID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, actor.Role)
}
