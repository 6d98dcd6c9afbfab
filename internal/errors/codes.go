package errors

// Error code constants
// Format: CATEGORY_SPECIFIC_DETAIL
// The frontend maps these codes to display messages

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"
	AuthAccountDisabled    = "AUTH_ACCOUNT_DISABLED"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationInvalidMargin = "VALIDATION_INVALID_MARGIN"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Styles (STYLE_) ====================
	StyleNotFound            = "STYLE_NOT_FOUND"
	StyleDuplicateVendorCode = "STYLE_DUPLICATE_VENDOR_CODE"
	StyleDuplicateName       = "STYLE_DUPLICATE_NAME"
	StyleDuplicateAttachment = "STYLE_DUPLICATE_ATTACHMENT"
	StyleUnknownComponent    = "STYLE_UNKNOWN_COMPONENT"
	StyleInvalidCategory     = "STYLE_INVALID_CATEGORY"

	// ==================== Catalog (CATALOG_) ====================
	CatalogNotFound        = "CATALOG_NOT_FOUND"
	CatalogDuplicateName   = "CATALOG_DUPLICATE_NAME"
	CatalogInvalidCostKind = "CATALOG_INVALID_COST_KIND"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"
)
