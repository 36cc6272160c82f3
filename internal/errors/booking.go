package errors

var (
	ErrInsufficientStock = &DomainError{
		Code:    "INSUFFICIENT_STOCK",
		Message: "not enough rooms available for the requested stay",
	}
	ErrInvalidDateRange = &DomainError{
		Code:    "INVALID_DATE_RANGE",
		Message: "check-out must be after check-in",
	}
	ErrInvalidQuantity = &DomainError{
		Code:    "INVALID_QUANTITY",
		Message: "room quantity must be positive",
	}
	ErrBookingNotFound = &DomainError{
		Code:    "BOOKING_NOT_FOUND",
		Message: "booking not found",
	}
	ErrBookingNotPending = &DomainError{
		Code:    "BOOKING_NOT_PENDING",
		Message: "deposit can only be paid for a pending booking",
	}
	ErrBookingNotConfirmed = &DomainError{
		Code:    "BOOKING_NOT_CONFIRMED",
		Message: "booking is not confirmed",
	}
	ErrBalanceAlreadyPaid = &DomainError{
		Code:    "BALANCE_ALREADY_PAID",
		Message: "booking balance already paid",
	}
	ErrAlreadyCancelled = &DomainError{
		Code:    "ALREADY_CANCELLED",
		Message: "booking is already cancelled",
	}
	ErrHoldExpired = &DomainError{
		Code:    "HOLD_EXPIRED",
		Message: "booking hold has expired",
	}
)
