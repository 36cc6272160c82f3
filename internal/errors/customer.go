package errors

var (
	ErrDuplicateEmail = &DomainError{
		Code:    "DUPLICATE_EMAIL",
		Message: "email already registered",
	}
	ErrCustomerNotFound = &DomainError{
		Code:    "CUSTOMER_NOT_FOUND",
		Message: "customer not found",
	}
	ErrCustomerInactive = &DomainError{
		Code:    "CUSTOMER_INACTIVE",
		Message: "customer account is suspended",
	}
	ErrAdministratorExists = &DomainError{
		Code:    "ADMINISTRATOR_EXISTS",
		Message: "an administrator account already exists",
	}
	ErrInvalidCredentials = &DomainError{
		Code:    "INVALID_CREDENTIALS",
		Message: "invalid credentials",
	}
)
