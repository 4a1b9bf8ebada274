package service

import (
	"churchshare-backend/internal/domain"
)

// Action names a guarded operation. Permission checks are table-driven
// so the role rules live in one place instead of ad hoc handler
// conditionals.
type Action string

const (
	ActionChurchApprove    Action = "church.approve"
	ActionChurchUpdate     Action = "church.update"
	ActionInvitationCreate Action = "invitation.create"
	ActionInvitationManage Action = "invitation.manage"
	ActionItemComplete     Action = "item.complete"
	ActionItemDelete       Action = "item.delete"
	ActionItemOffer        Action = "item.offer"
	ActionMessageDelete    Action = "message.delete"
	ActionRequestReceive   Action = "request.receive"
	ActionRequestReject    Action = "verification.reject"
)

type capability func(actor *domain.User, resource any) bool

func isAdmin(actor *domain.User, _ any) bool {
	return actor.Role == domain.UserRoleAdmin
}

// leadsChurch expects the resolved owning church as the resource.
func leadsChurch(actor *domain.User, resource any) bool {
	church, ok := resource.(*domain.Church)
	return ok && church != nil && church.LeadContactID == actor.ID
}

func adminOrLead(actor *domain.User, resource any) bool {
	return isAdmin(actor, resource) || leadsChurch(actor, resource)
}

var capabilities = map[Action]capability{
	ActionChurchApprove:    isAdmin,
	ActionChurchUpdate:     adminOrLead,
	ActionInvitationCreate: isAdmin,
	ActionInvitationManage: isAdmin,
	ActionItemComplete:     leadsChurch,
	ActionItemDelete:       adminOrLead,
	ActionItemOffer:        leadsChurch,
	ActionMessageDelete:    adminOrLead,
	ActionRequestReceive:   leadsChurch,
	ActionRequestReject:    adminOrLead,
}

// Authorize checks whether the actor may perform the action against the
// resolved resource.
func Authorize(actor *domain.User, action Action, resource any) error {
	if actor == nil {
		return domain.Unauthenticated("authentication required")
	}
	check, ok := capabilities[action]
	if !ok || !check(actor, resource) {
		return domain.Forbidden("not allowed to %s", action)
	}
	return nil
}
