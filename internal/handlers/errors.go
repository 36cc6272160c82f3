package handlers

import (
	"errors"
	"log"
	"strconv"

	apperrors "xyzhotel/internal/errors"
	"xyzhotel/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// statusByCode maps domain error codes to HTTP status codes. Codes missing
// here are answered with 400.
var statusByCode = map[string]int{
	apperrors.ErrCustomerNotFound.Code: fiber.StatusNotFound,
	apperrors.ErrWalletNotFound.Code:   fiber.StatusNotFound,
	apperrors.ErrBookingNotFound.Code:  fiber.StatusNotFound,

	apperrors.ErrDuplicateEmail.Code:      fiber.StatusConflict,
	apperrors.ErrAdministratorExists.Code: fiber.StatusConflict,
	apperrors.ErrInsufficientStock.Code:   fiber.StatusConflict,
	apperrors.ErrBookingNotPending.Code:   fiber.StatusConflict,
	apperrors.ErrBookingNotConfirmed.Code: fiber.StatusConflict,
	apperrors.ErrBalanceAlreadyPaid.Code:  fiber.StatusConflict,
	apperrors.ErrAlreadyCancelled.Code:    fiber.StatusConflict,
	apperrors.ErrHoldExpired.Code:         fiber.StatusConflict,

	apperrors.ErrInsufficientFunds.Code: fiber.StatusUnprocessableEntity,
	apperrors.ErrCustomerInactive.Code:  fiber.StatusUnprocessableEntity,

	apperrors.ErrInvalidCredentials.Code: fiber.StatusUnauthorized,
}

// respondError writes err as a JSON error. Domain errors keep their code;
// anything else is logged and reported as a 500.
func respondError(c *fiber.Ctx, err error) error {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		status, ok := statusByCode[domainErr.Code]
		if !ok {
			status = fiber.StatusBadRequest
		}
		return utils.Error(c, status, domainErr.Code, domainErr.Message)
	}

	log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
	return utils.InternalError(c, "internal server error")
}

// paramID reads a positive numeric route parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return uint(id), nil
}
