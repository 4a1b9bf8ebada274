package service

import (
	"context"
	"fmt"
	"time"

	"churchshare-backend/internal/domain"
	"churchshare-backend/internal/logger"
	"churchshare-backend/internal/repository"
)

type itemService struct {
	itemRepo     repository.ItemRepository
	requestRepo  repository.MemberItemRequestRepository
	churchRepo   repository.ChurchRepository
	userRepo     repository.UserRepository
	noteRepo     repository.NotificationRepository
	activityRepo repository.ActivityLogRepository
	emailSvc     EmailService
}

func NewItemService(
	itemRepo repository.ItemRepository,
	requestRepo repository.MemberItemRequestRepository,
	churchRepo repository.ChurchRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	activityRepo repository.ActivityLogRepository,
	emailSvc EmailService,
) ItemService {
	return &itemService{
		itemRepo:     itemRepo,
		requestRepo:  requestRepo,
		churchRepo:   churchRepo,
		userRepo:     userRepo,
		noteRepo:     noteRepo,
		activityRepo: activityRepo,
		emailSvc:     emailSvc,
	}
}

func (s *itemService) AddItem(ctx context.Context, donorID int32, item *domain.Item) error {
	if item.Title == "" {
		return domain.Validation("item title is required")
	}
	if _, err := s.churchRepo.GetByID(ctx, item.ChurchID); err != nil {
		return err
	}
	item.DonorID = donorID
	item.Status = domain.ItemStatusAvailable
	item.ModerationStatus = domain.ModerationStatusPending
	return s.itemRepo.Create(ctx, item)
}

func (s *itemService) GetItem(ctx context.Context, id int32) (*domain.Item, error) {
	return s.itemRepo.GetByID(ctx, id)
}

func (s *itemService) ListChurchItems(ctx context.Context, churchID, page, pageSize int32) ([]domain.Item, int32, error) {
	return s.itemRepo.ListByChurch(ctx, churchID, page, pageSize)
}

// ClaimItem reserves an item for the acting church lead. The claimer is
// recorded as the lead-contact user, and the conditional claim makes
// concurrent attempts lose cleanly instead of double-claiming.
func (s *itemService) ClaimItem(ctx context.Context, actorID, itemID int32) (*domain.Item, error) {
	church, err := s.churchRepo.GetByLeadContact(ctx, actorID)
	if err != nil {
		return nil, domain.Forbidden("only a church lead contact may claim items")
	}
	if church.ApplicationStatus != domain.ApplicationStatusApproved {
		return nil, domain.Forbidden("church application is not approved")
	}

	now := time.Now()
	applied, err := s.itemRepo.Claim(ctx, itemID, actorID, now)
	if err != nil {
		return nil, err
	}
	if !applied {
		// Either the item does not exist or someone got there first.
		if _, err := s.itemRepo.GetByID(ctx, itemID); err != nil {
			return nil, err
		}
		return nil, domain.InvalidState("item is not available")
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	_ = s.activityRepo.Create(ctx, &domain.ActivityLog{
		ActorID:    actorID,
		Action:     "ITEM_CLAIMED",
		EntityType: "item",
		EntityID:   itemID,
	})

	// Notify the owning church's lead contact.
	if owner, err := s.churchRepo.GetByID(ctx, item.ChurchID); err == nil {
		if lead, err := s.userRepo.GetByID(ctx, owner.LeadContactID); err == nil {
			claimer, _ := s.userRepo.GetByID(ctx, actorID)
			claimerName := ""
			if claimer != nil {
				claimerName = claimer.Name
			}
			_ = s.emailSvc.SendItemClaimed(ctx, lead.Email, item.Title, claimerName)
			_ = s.noteRepo.Create(ctx, &domain.Notification{
				UserID:  lead.ID,
				Title:   "Item claimed",
				Message: fmt.Sprintf("%s claimed %s", claimerName, item.Title),
				Attributes: map[string]string{
					"type":    "ITEM_CLAIMED",
					"item_id": fmt.Sprintf("%d", itemID),
				},
			})
		}
	}

	return item, nil
}

// UnclaimItem releases a claim; only the original claimer may do so.
func (s *itemService) UnclaimItem(ctx context.Context, actorID, itemID int32) (*domain.Item, error) {
	applied, err := s.itemRepo.Unclaim(ctx, itemID, actorID)
	if err != nil {
		return nil, err
	}
	if !applied {
		item, err := s.itemRepo.GetByID(ctx, itemID)
		if err != nil {
			return nil, err
		}
		if item.Status != domain.ItemStatusClaimed {
			return nil, domain.InvalidState("item is not claimed")
		}
		return nil, domain.Forbidden("only the claimer may release the item")
	}

	_ = s.activityRepo.Create(ctx, &domain.ActivityLog{
		ActorID:    actorID,
		Action:     "ITEM_UNCLAIMED",
		EntityType: "item",
		EntityID:   itemID,
	})
	return s.itemRepo.GetByID(ctx, itemID)
}

// CompleteItem finalizes a handover. Only the owning church's lead may
// complete, and only while a claim exists.
func (s *itemService) CompleteItem(ctx context.Context, actorID, itemID int32) (*domain.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	owner, err := s.churchRepo.GetByID(ctx, item.ChurchID)
	if err != nil {
		return nil, err
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, ActionItemComplete, owner); err != nil {
		return nil, err
	}

	applied, err := s.itemRepo.Complete(ctx, itemID, time.Now())
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, domain.InvalidState("item must be claimed before completion")
	}

	_ = s.activityRepo.Create(ctx, &domain.ActivityLog{
		ActorID:    actorID,
		Action:     "ITEM_COMPLETED",
		EntityType: "item",
		EntityID:   itemID,
	})

	if item.ClaimerID != nil {
		if claimer, err := s.userRepo.GetByID(ctx, *item.ClaimerID); err == nil {
			_ = s.emailSvc.SendItemCompleted(ctx, claimer.Email, item.Title)
		}
	}

	return s.itemRepo.GetByID(ctx, itemID)
}

// SetOfferToMembers flips the member-offering flag. Turning it off
// while member requests are active still applies, but the affected
// requester names come back as a warning payload; outstanding requests
// are never auto-cancelled.
func (s *itemService) SetOfferToMembers(ctx context.Context, actorID, itemID int32, offer bool) (*domain.Item, []string, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	church, err := s.churchRepo.GetByID(ctx, item.ChurchID)
	if err != nil {
		return nil, nil, err
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	if err := Authorize(actor, ActionItemOffer, church); err != nil {
		return nil, nil, err
	}

	var affected []string
	if !offer {
		active, err := s.requestRepo.ListActiveByItem(ctx, itemID)
		if err != nil {
			return nil, nil, err
		}
		for _, req := range active {
			if member, err := s.userRepo.GetByID(ctx, req.MemberID); err == nil {
				affected = append(affected, member.Name)
			}
		}
		if len(affected) > 0 {
			logger.Warn("Member offering disabled with active requests", "item_id", itemID, "active_requests", len(affected))
		}
	}

	if err := s.itemRepo.SetOfferToMembers(ctx, itemID, offer); err != nil {
		return nil, nil, err
	}

	item, err = s.itemRepo.GetByID(ctx, itemID)
	return item, affected, err
}

func (s *itemService) DeleteItem(ctx context.Context, actor *domain.User, itemID int32) error {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	church, err := s.churchRepo.GetByID(ctx, item.ChurchID)
	if err != nil {
		return err
	}
	if err := Authorize(actor, ActionItemDelete, church); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, itemID)
}

// RequestItem files a member's request for an internally offered item.
func (s *itemService) RequestItem(ctx context.Context, memberID, itemID int32, note string) (*domain.MemberItemRequest, error) {
	member, err := s.userRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.MembershipStatus != domain.MembershipStatusVerified {
		return nil, domain.Forbidden("only verified members may request items")
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.OfferToMembers {
		return nil, domain.InvalidState("item is not offered to members")
	}
	if member.ChurchID == nil || *member.ChurchID != item.ChurchID {
		return nil, domain.Forbidden("item is offered to members of another church")
	}

	active, err := s.requestRepo.CountActiveByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if active >= domain.MaxActiveMemberItemRequests {
		return nil, domain.InvalidState("member already has %d active item requests", domain.MaxActiveMemberItemRequests)
	}

	now := time.Now()
	req := &domain.MemberItemRequest{
		ItemID:      itemID,
		MemberID:    memberID,
		Status:      domain.MemberItemRequestStatusRequested,
		Note:        note,
		RequestedAt: now,
		ExpiresAt:   now.Add(domain.MemberItemRequestWindow),
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *itemService) MarkRequestReceived(ctx context.Context, actorID, requestID int32) (*domain.MemberItemRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	item, err := s.itemRepo.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	church, err := s.churchRepo.GetByID(ctx, item.ChurchID)
	if err != nil {
		return nil, err
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, ActionRequestReceive, church); err != nil {
		return nil, err
	}

	applied, err := s.requestRepo.UpdateStatus(ctx, requestID, domain.MemberItemRequestStatusRequested, domain.MemberItemRequestStatusReceived)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, domain.InvalidState("request is not in REQUESTED state")
	}
	return s.requestRepo.GetByID(ctx, requestID)
}

func (s *itemService) CancelRequest(ctx context.Context, memberID, requestID int32) error {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.MemberID != memberID {
		return domain.Forbidden("only the requesting member may cancel")
	}
	applied, err := s.requestRepo.UpdateStatus(ctx, requestID, domain.MemberItemRequestStatusRequested, domain.MemberItemRequestStatusCancelled)
	if err != nil {
		return err
	}
	if !applied {
		return domain.InvalidState("request is not in REQUESTED state")
	}
	return nil
}
