package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// RolesHandler exposes the role upgrade request workflow.
type RolesHandler struct {
	roles *service.RoleService
}

// NewRolesHandler constructs handler.
func NewRolesHandler(roles *service.RoleService) *RolesHandler {
	return &RolesHandler{roles: roles}
}

// Create handles POST /role-requests.
func (h *RolesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateRoleRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	request, err := h.roles.CreateRequest(c.Context(), principal.Profile, req.RequestedRole, req.Reason)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": roleRequestResponse(request)})
}

// ListPending handles GET /role-requests/pending. Admin only.
func (h *RolesHandler) ListPending(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)

	requests, err := h.roles.ListPending(c.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	resp := make([]dto.RoleRequestResponse, 0, len(requests))
	for i := range requests {
		resp = append(resp, roleRequestResponse(&requests[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Approve handles POST /role-requests/:id/approve. Admin only.
func (h *RolesHandler) Approve(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	request, err := h.roles.Approve(c.Context(), principal.Profile, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": roleRequestResponse(request)})
}

// Reject handles POST /role-requests/:id/reject. Admin only.
func (h *RolesHandler) Reject(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	request, err := h.roles.Reject(c.Context(), principal.Profile, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": roleRequestResponse(request)})
}

func roleRequestResponse(r *domain.RoleUpgradeRequest) dto.RoleRequestResponse {
	return dto.RoleRequestResponse{
		ID:             r.ID,
		RequesterID:    r.RequesterID,
		RequesterName:  r.RequesterName,
		RequesterEmail: r.RequesterEmail,
		CurrentRole:    r.CurrentRole,
		RequestedRole:  r.RequestedRole,
		Reason:         r.Reason,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
		ResolvedAt:     r.ResolvedAt,
	}
}
