package handlers

import (
	"xyzhotel/internal/models"
	"xyzhotel/internal/services/customer"
	"xyzhotel/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const defaultPageSize = 20

type CustomerHandler struct {
	customerService customer.Service
}

func NewCustomerHandler(customerSvc customer.Service) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerSvc,
	}
}

func (h *CustomerHandler) RegisterCustomer(c *fiber.Ctx) error {
	var input models.CreateCustomerInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	created, err := h.customerService.Register(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, created)
}

func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	found, err := h.customerService.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, found)
}

// ListCustomers is admin only.
func (h *CustomerHandler) ListCustomers(c *fiber.Ctx) error {
	p := utils.GetPagination(c, 1, defaultPageSize)

	customers, total, err := h.customerService.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}

	p.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(customers, p))
}

// SuspendCustomer is admin only.
func (h *CustomerHandler) SuspendCustomer(c *fiber.Ctx) error {
	return h.setActive(c, false)
}

// ReactivateCustomer is admin only.
func (h *CustomerHandler) ReactivateCustomer(c *fiber.Ctx) error {
	return h.setActive(c, true)
}

func (h *CustomerHandler) setActive(c *fiber.Ctx, active bool) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var updated *models.Customer
	if active {
		updated, err = h.customerService.Reactivate(c.Context(), id)
	} else {
		updated, err = h.customerService.Suspend(c.Context(), id)
	}
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, updated)
}
