package handlers

import (
	"strconv"

	"xyzhotel/internal/catalog"
	"xyzhotel/internal/services/stock"
	"xyzhotel/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type RoomHandler struct {
	catalog      *catalog.Catalog
	stockService stock.Service
}

func NewRoomHandler(cat *catalog.Catalog, stockSvc stock.Service) *RoomHandler {
	return &RoomHandler{
		catalog:      cat,
		stockService: stockSvc,
	}
}

// ListRoomTypes returns every category, cheapest first.
func (h *RoomHandler) ListRoomTypes(c *fiber.Ctx) error {
	return utils.Success(c, fiber.Map{
		"room_types":        h.catalog.RoomTypes(),
		"capacity_per_room": h.catalog.CapacityPerRoom(),
	})
}

func (h *RoomHandler) GetRoomType(c *fiber.Ctx) error {
	category, err := h.catalog.ParseCategory(c.Params("category"))
	if err != nil {
		return respondError(c, err)
	}

	price, err := h.catalog.PricePerNight(category)
	if err != nil {
		return respondError(c, err)
	}
	amenities, err := h.catalog.Amenities(category)
	if err != nil {
		return respondError(c, err)
	}
	count, err := h.catalog.StockCount(category)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, catalog.RoomType{
		Category:      category,
		PricePerNight: price,
		Amenities:     amenities,
		Stock:         count,
	})
}

// GetAvailability reports the free rooms of a category for a stay.
// Query: check_in_date, check_out_date or number_of_nights, and an
// optional room_quantity to check against.
func (h *RoomHandler) GetAvailability(c *fiber.Ctx) error {
	category, err := h.catalog.ParseCategory(c.Params("category"))
	if err != nil {
		return respondError(c, err)
	}
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

	available, err := h.stockService.Available(c.Context(), category, checkIn, checkOut)
	if err != nil {
		return respondError(c, err)
	}
	ok, err := h.stockService.CheckAvailability(c.Context(), category, checkIn, checkOut, quantity)
	if err != nil {
		return respondError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"room_type":      category,
		"check_in_date":  utils.FormatDate(checkIn),
		"check_out_date": utils.FormatDate(checkOut),
		"available":      available,
		"room_quantity":  quantity,
		"is_available":   ok,
	})
}
