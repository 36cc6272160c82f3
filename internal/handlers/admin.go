package handlers

import (
	"xyzhotel/internal/services/admin"
	"xyzhotel/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	adminService admin.Service
}

func NewAdminHandler(adminSvc admin.Service) *AdminHandler {
	return &AdminHandler{
		adminService: adminSvc,
	}
}

func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if input.Username == "" || input.Password == "" {
		return utils.BadRequest(c, "username and password are required")
	}

	result, err := h.adminService.Login(c.Context(), input.Username, input.Password)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, result)
}

func (h *AdminHandler) GetOverview(c *fiber.Ctx) error {
	overview, err := h.adminService.Overview(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, overview)
}

func (h *AdminHandler) ReconcileWallet(c *fiber.Ctx) error {
	customerID, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	report, err := h.adminService.Reconcile(c.Context(), customerID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, report)
}

// Me returns the claims of the signed-in administrator.
func (h *AdminHandler) Me(c *fiber.Ctx) error {
	claims, err := utils.GetAdminClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	return utils.Success(c, fiber.Map{
		"admin_id": claims.AdminID,
		"username": claims.Username,
		"role":     claims.Role,
	})
}
