package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

func admin() *domain.Profile {
	return &domain.Profile{ID: "admin-1", Name: "Morgan", Email: "morgan@example.com", Role: domain.RoleAdmin}
}

func newRoleServiceFixture() (*RoleService, *fakeRoleRequestRepo, *fakeProfileRepo) {
	requests := newFakeRoleRequestRepo()
	profiles := newFakeProfileRepo(endUser(), admin())
	return NewRoleService(requests, profiles), requests, profiles
}

func TestRoleRequestCreate(t *testing.T) {
	svc, _, _ := newRoleServiceFixture()

	req, err := svc.CreateRequest(context.Background(), endUser(), domain.RoleSupportAgent, "  I handle tickets daily  ")
	require.NoError(t, err)
	require.Equal(t, domain.RoleRequestPending, req.Status)
	require.Equal(t, domain.RoleEndUser, req.CurrentRole)
	require.Equal(t, domain.RoleSupportAgent, req.RequestedRole)
	require.Equal(t, "I handle tickets daily", req.Reason)
	require.NotEmpty(t, req.ID)
}

func TestRoleRequestCreateValidation(t *testing.T) {
	svc, _, _ := newRoleServiceFixture()

	_, err := svc.CreateRequest(context.Background(), endUser(), domain.Role("SUPERUSER"), "")
	require.Error(t, err)
	require.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, err = svc.CreateRequest(context.Background(), endUser(), domain.RoleEndUser, "")
	require.Error(t, err)
	require.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestRoleRequestApproveElevatesProfile(t *testing.T) {
	svc, _, profiles := newRoleServiceFixture()

	req, err := svc.CreateRequest(context.Background(), endUser(), domain.RoleSupportAgent, "reason")
	require.NoError(t, err)

	resolved, err := svc.Approve(context.Background(), admin(), req.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleRequestApproved, resolved.Status)
	require.NotNil(t, resolved.ResolvedByID)
	require.Equal(t, "admin-1", *resolved.ResolvedByID)

	profile, err := profiles.GetByID(context.Background(), "creator-1")
	require.NoError(t, err)
	require.Equal(t, domain.RoleSupportAgent, profile.Role)
}

func TestRoleRequestRejectLeavesProfileUntouched(t *testing.T) {
	svc, _, profiles := newRoleServiceFixture()

	req, err := svc.CreateRequest(context.Background(), endUser(), domain.RoleSupportAgent, "reason")
	require.NoError(t, err)

	resolved, err := svc.Reject(context.Background(), admin(), req.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleRequestRejected, resolved.Status)

	profile, err := profiles.GetByID(context.Background(), "creator-1")
	require.NoError(t, err)
	require.Equal(t, domain.RoleEndUser, profile.Role)
}

func TestRoleRequestResolveRequiresAdmin(t *testing.T) {
	svc, _, _ := newRoleServiceFixture()

	req, err := svc.CreateRequest(context.Background(), endUser(), domain.RoleSupportAgent, "reason")
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), agent(), req.ID)
	require.Error(t, err)
	require.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

func TestRoleRequestTerminalCannotBeResolvedAgain(t *testing.T) {
	svc, _, _ := newRoleServiceFixture()

	req, err := svc.CreateRequest(context.Background(), endUser(), domain.RoleSupportAgent, "reason")
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), admin(), req.ID)
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), admin(), req.ID)
	require.Error(t, err)
	require.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestRoleRequestListPending(t *testing.T) {
	svc, _, _ := newRoleServiceFixture()

	first, err := svc.CreateRequest(context.Background(), endUser(), domain.RoleSupportAgent, "reason")
	require.NoError(t, err)
	_, err = svc.CreateRequest(context.Background(), endUser(), domain.RoleAdmin, "another")
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), admin(), first.ID)
	require.NoError(t, err)

	pending, err := svc.ListPending(context.Background(), 50, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, domain.RoleAdmin, pending[0].RequestedRole)
}

func TestRoleRequestMissing(t *testing.T) {
	svc, _, _ := newRoleServiceFixture()

	_, err := svc.Approve(context.Background(), admin(), "missing")
	require.Error(t, err)
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
