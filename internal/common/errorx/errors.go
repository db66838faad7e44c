package errorx

import "net/http"

// Authentication and authorization errors
var (
	ErrUnauthorized       = New("E2001", "Missing or invalid credentials", CategoryAuthentication, http.StatusUnauthorized)
	ErrTokenExpired       = New("E2002", "Token has expired", CategoryAuthentication, http.StatusUnauthorized)
	ErrInvalidCredentials = New("E2003", "Invalid username or password", CategoryAuthentication, http.StatusUnauthorized)
	ErrUserDisabled       = New("E3001", "User account is disabled", CategoryAuthorization, http.StatusForbidden)
	ErrAdminRequired      = New("E3002", "Only administrators can access this resource", CategoryAuthorization, http.StatusForbidden)
	ErrSelfDelete         = New("E3003", "Cannot delete your own account", CategoryAuthorization, http.StatusForbidden)
)

// Terminal record errors
var (
	ErrTPENotFound            = NewNotFound("E4001", "Terminal record not found")
	ErrShopIDExists           = NewConflict("E4101", "ShopID already exists")
	ErrServiceNameRequired    = NewValidation("E1001", "Service name is required")
	ErrTooManyMerchantCards   = NewValidation("E1002", "Maximum 8 merchant cards allowed")
	ErrInvalidNumberOfTPE     = NewValidation("E1003", "Number of terminals must be at least 1")
	ErrInvalidTPEModel        = NewValidation("E1004", "Unknown terminal model")
	ErrShopIDImmutable        = NewValidation("E1005", "ShopID cannot be changed once set")
	ErrInvalidBackofficeEmail = NewValidation("E1006", "Backoffice email is not a valid address")
	ErrInvalidConnectionType  = NewValidation("E1007", "Connection type must be ethernet or 4g5g")
)

// User directory errors
var (
	ErrUserNotFound     = NewNotFound("E4002", "User not found")
	ErrUsernameExists   = NewConflict("E4102", "Username already registered")
	ErrEmailExists      = NewConflict("E4103", "Email already registered")
	ErrUsernameRequired = NewValidation("E1008", "Username is required")
	ErrPasswordTooShort = NewValidation("E1009", "Password must be at least 6 characters")
	ErrInvalidRole      = NewValidation("E1010", "Role must be user or admin")
)

// ErrBadRequest is the fallback for malformed request bodies
var ErrBadRequest = NewValidation("E1000", "Malformed request")
