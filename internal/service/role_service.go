package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// RoleService runs the moderated role-upgrade workflow.
type RoleService struct {
	requests repository.RoleRequestRepository
	profiles repository.ProfileRepository
}

// NewRoleService constructs the service.
func NewRoleService(requests repository.RoleRequestRepository, profiles repository.ProfileRepository) *RoleService {
	return &RoleService{requests: requests, profiles: profiles}
}

// CreateRequest files a pending role-upgrade request for the requester.
// Duplicate pending requests from the same profile are allowed.
func (s *RoleService) CreateRequest(ctx context.Context, requester *domain.Profile, requestedRole domain.Role, reason string) (*domain.RoleUpgradeRequest, error) {
	if !domain.ValidRole(requestedRole) {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"requested_role": string(requestedRole)})
	}
	if requestedRole == requester.Role {
		return nil, apperrors.NewValidationError("already holding requested role", nil)
	}

	req := &domain.RoleUpgradeRequest{
		RequesterID:    requester.ID,
		RequesterName:  requester.Name,
		RequesterEmail: requester.Email,
		CurrentRole:    requester.Role,
		RequestedRole:  requestedRole,
		Reason:         strings.TrimSpace(reason),
		Status:         domain.RoleRequestPending,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, apperrors.MapError(err)
	}
	return req, nil
}

// ListPending returns unresolved requests for admin review.
func (s *RoleService) ListPending(ctx context.Context, limit, offset int) ([]domain.RoleUpgradeRequest, error) {
	result, err := s.requests.ListByStatus(ctx, domain.RoleRequestPending, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// Approve resolves a pending request and elevates the requester's profile.
// Terminal requests cannot be resolved again.
func (s *RoleService) Approve(ctx context.Context, admin *domain.Profile, requestID string) (*domain.RoleUpgradeRequest, error) {
	req, err := s.resolve(ctx, admin, requestID, domain.RoleRequestApproved)
	if err != nil {
		return nil, err
	}
	if err := s.profiles.UpdateRole(ctx, req.RequesterID, req.RequestedRole); err != nil {
		return nil, apperrors.MapError(err)
	}
	return req, nil
}

// Reject resolves a pending request without touching the profile.
func (s *RoleService) Reject(ctx context.Context, admin *domain.Profile, requestID string) (*domain.RoleUpgradeRequest, error) {
	return s.resolve(ctx, admin, requestID, domain.RoleRequestRejected)
}

func (s *RoleService) resolve(ctx context.Context, admin *domain.Profile, requestID string, status domain.RoleRequestStatus) (*domain.RoleUpgradeRequest, error) {
	if admin == nil || admin.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("admin required")
	}

	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("role request", map[string]any{"request_id": requestID})
		}
		return nil, apperrors.MapError(err)
	}
	if req.Status != domain.RoleRequestPending {
		return nil, apperrors.NewConflict("request already resolved", map[string]any{"status": string(req.Status)})
	}

	if err := s.requests.Resolve(ctx, requestID, status, admin.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("request already resolved", nil)
		}
		return nil, apperrors.MapError(err)
	}

	req.Status = status
	req.ResolvedByID = &admin.ID
	return req, nil
}
