package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts storage-layer errors into user-facing codes. Constraint
// names in the Postgres message decide which attachment or catalog entity a
// unique violation belongs to; the same names exist under SQLite in tests.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 1. GORM base errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// 2. Unique constraint violation (Postgres 23505, SQLite "UNIQUE constraint failed")
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// 3. Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr, context)
	}

	// 4. Not null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	// 5. Connection errors
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "Storage is unavailable. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	// Attachment pair uniqueness: one row per (style, component)
	for _, name := range []string{"uq_style_fabric", "uq_style_notion", "uq_style_labor", "uq_style_color", "uq_style_variable"} {
		if strings.Contains(errLower, name) {
			return ErrorInfo{
				Code:    StyleDuplicateAttachment,
				Message: "This component is already attached to the style",
			}
		}
	}

	if strings.Contains(errLower, "vendor_style") {
		return ErrorInfo{
			Code:    StyleDuplicateVendorCode,
			Message: "A style with this vendor style code already exists",
		}
	}
	if strings.Contains(errLower, "style_name") {
		return ErrorInfo{
			Code:    StyleDuplicateName,
			Message: "A style with this name already exists",
		}
	}
	if strings.Contains(errLower, "email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "This email is already in use",
		}
	}
	if strings.Contains(errLower, "username") {
		return ErrorInfo{
			Code:    AuthUsernameExists,
			Message: "This username is already in use",
		}
	}
	if strings.Contains(errLower, "colors") || strings.Contains(errLower, "variables") ||
		strings.Contains(errLower, "labor_operations") || strings.Contains(errLower, "vendor_code") {
		return ErrorInfo{
			Code:    CatalogDuplicateName,
			Message: "A catalog entry with this name already exists",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "This record already exists",
	}
}

func parseForeignKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "still referenced") || strings.Contains(errLower, "is still referenced by") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "This record is referenced by other data and cannot be deleted",
		}
	}

	if strings.Contains(errLower, "style_id") {
		return ErrorInfo{
			Code:    StyleNotFound,
			Message: "The referenced style does not exist",
		}
	}
	if strings.Contains(errLower, "fabric_id") || strings.Contains(errLower, "notion_id") ||
		strings.Contains(errLower, "labor_operation_id") || strings.Contains(errLower, "color_id") ||
		strings.Contains(errLower, "variable_id") {
		return ErrorInfo{
			Code:    StyleUnknownComponent,
			Message: "The referenced catalog component does not exist",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "Referenced data could not be found",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "style") {
		return "Style not found"
	}
	if strings.Contains(contextLower, "fabric") {
		return "Fabric not found"
	}
	if strings.Contains(contextLower, "notion") {
		return "Notion not found"
	}
	if strings.Contains(contextLower, "labor") {
		return "Labor operation not found"
	}
	if strings.Contains(contextLower, "color") {
		return "Color not found"
	}
	if strings.Contains(contextLower, "variable") {
		return "Variable not found"
	}
	if strings.Contains(contextLower, "user") {
		return "User not found"
	}

	return "The requested data could not be found"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") {
		return "Creation failed. Please try again later"
	}
	if strings.Contains(contextLower, "update") || strings.Contains(contextLower, "save") {
		return "Save failed. Please try again later"
	}
	if strings.Contains(contextLower, "delete") {
		return "Deletion failed. Please try again later"
	}

	return "Something went wrong. Please try again later"
}
