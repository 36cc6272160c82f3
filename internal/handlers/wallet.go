package handlers

import (
	"xyzhotel/internal/money"
	"xyzhotel/internal/services/ledger"
	"xyzhotel/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type WalletHandler struct {
	ledgerService ledger.Service
}

func NewWalletHandler(ledgerSvc ledger.Service) *WalletHandler {
	return &WalletHandler{
		ledgerService: ledgerSvc,
	}
}

func (h *WalletHandler) GetBalance(c *fiber.Ctx) error {
	customerID, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	balance, err := h.ledgerService.GetBalance(c.Context(), customerID)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"customer_id": customerID,
		"balance":     balance,
		"currency":    money.ReferenceCurrency,
	})
}

// CreditWallet tops up the wallet. The amount may be in any supported
// currency and is converted to euros before it is booked.
func (h *WalletHandler) CreditWallet(c *fiber.Ctx) error {
	customerID, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var input struct {
		Amount   decimal.Decimal `json:"amount"`
		Currency string          `json:"currency"`
		Reason   string          `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	result, err := h.ledgerService.CreditWallet(c.Context(), ledger.CreditRequest{
		CustomerID: customerID,
		Amount:     input.Amount,
		Currency:   input.Currency,
		Reason:     input.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, result)
}

func (h *WalletHandler) GetTransactions(c *fiber.Ctx) error {
	customerID, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	p := utils.GetPagination(c, 1, defaultPageSize)
	transactions, total, err := h.ledgerService.History(c.Context(), customerID, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}

	p.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(transactions, p))
}
