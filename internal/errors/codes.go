package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The storefront client maps these codes to user-facing copy.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"

	// ==================== Catalog (PRODUCT_) ====================
	ProductNotFound = "PRODUCT_NOT_FOUND"

	// ==================== Cart (CART_) ====================
	CartNotFound       = "CART_NOT_FOUND"
	CartInvalidSession = "CART_INVALID_SESSION"

	// ==================== Newsletter (NEWSLETTER_) ====================
	NewsletterAlreadySubscribed = "NEWSLETTER_ALREADY_SUBSCRIBED"
	NewsletterInvalidEmail      = "NEWSLETTER_INVALID_EMAIL"

	// ==================== Contact (CONTACT_) ====================
	ContactInvalidMessage = "CONTACT_INVALID_MESSAGE"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
