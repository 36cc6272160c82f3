package handlers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"xyzhotel/internal/models"
	"xyzhotel/internal/services/booking"
	"xyzhotel/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type BookingHandler struct {
	bookingService booking.Service
}

func NewBookingHandler(bookingSvc booking.Service) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingSvc,
	}
}

type createBookingInput struct {
	CustomerID     uint   `json:"customer_id"`
	RoomType       string `json:"room_type"`
	RoomQuantity   int    `json:"room_quantity"`
	CheckInDate    string `json:"check_in_date"`
	CheckOutDate   string `json:"check_out_date"`
	NumberOfNights int    `json:"number_of_nights"`
}

// QuoteBooking prices a stay without reserving anything.
// Query: room_type, room_quantity (default 1), check_in_date and either
// check_out_date or number_of_nights.
func (h *BookingHandler) QuoteBooking(c *fiber.Ctx) error {
	quantity, err := strconv.Atoi(c.Query("room_quantity", "1"))
	if err != nil {
		return utils.BadRequest(c, "room_quantity must be a number")
	}
	nights, err := strconv.Atoi(c.Query("number_of_nights", "0"))
	if err != nil {
		return utils.BadRequest(c, "number_of_nights must be a number")
	}

	checkIn, checkOut, err := parseStay(c.Query("check_in_date"), c.Query("check_out_date"), nights)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	quote, err := h.bookingService.Quote(c.Query("room_type"), quantity, checkIn, checkOut)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, quote)
}

func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	var input createBookingInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if input.CustomerID == 0 {
		return utils.BadRequest(c, "customer_id is required")
	}

	checkIn, checkOut, err := parseStay(input.CheckInDate, input.CheckOutDate, 0)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	created, err := h.bookingService.CreateBooking(c.Context(), booking.CreateRequest{
		CustomerID: input.CustomerID,
		Category:   input.RoomType,
		Quantity:   input.RoomQuantity,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Nights:     input.NumberOfNights,
	})
	if err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, created)
}

func (h *BookingHandler) GetBooking(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	found, err := h.bookingService.GetBooking(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, found)
}

func (h *BookingHandler) GetCustomerBookings(c *fiber.Ctx) error {
	customerID, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	p := utils.GetPagination(c, 1, defaultPageSize)
	bookings, total, err := h.bookingService.ListCustomerBookings(c.Context(), customerID, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}

	p.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(bookings, p))
}

func (h *BookingHandler) PayDeposit(c *fiber.Ctx) error {
	return h.transition(c, h.bookingService.PayDeposit)
}

func (h *BookingHandler) PayBalance(c *fiber.Ctx) error {
	return h.transition(c, h.bookingService.PayBalance)
}

// CancelBooking releases the rooms. Payments already taken are kept.
func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	return h.transition(c, h.bookingService.CancelBooking)
}

func (h *BookingHandler) transition(c *fiber.Ctx, op func(ctx context.Context, bookingID uint) (*models.Booking, error)) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	updated, err := op(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, updated)
}

// parseStay parses the stay dates. An empty check-out is left zero when
// nights is not given, so the service can derive it from the booking's
// number of nights.
func parseStay(checkInRaw, checkOutRaw string, nights int) (time.Time, time.Time, error) {
	if checkInRaw == "" {
		return time.Time{}, time.Time{}, errors.New("check_in_date is required")
	}
	checkIn, err := utils.ParseDate(checkInRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	var checkOut time.Time
	switch {
	case checkOutRaw != "":
		checkOut, err = utils.ParseDate(checkOutRaw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	case nights > 0:
		checkOut = checkIn.AddDate(0, 0, nights)
	}
	return checkIn, checkOut, nil
}
