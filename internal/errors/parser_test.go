package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestParseError_NotFound(t *testing.T) {
	info := ParseError(gorm.ErrRecordNotFound, "style")
	assert.Equal(t, ResourceNotFound, info.Code)
	assert.Equal(t, "Style not found", info.Message)

	info = ParseError(gorm.ErrRecordNotFound, "fabric")
	assert.Equal(t, "Fabric not found", info.Message)
}

func TestParseError_UniqueViolations(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			"attachment pair postgres",
			errors.New(`ERROR: duplicate key value violates unique constraint "uq_style_fabric" (SQLSTATE 23505)`),
			StyleDuplicateAttachment,
		},
		{
			"attachment pair sqlite",
			errors.New("UNIQUE constraint failed: style_notions.style_id, style_notions.notion_id: uq_style_notion"),
			StyleDuplicateAttachment,
		},
		{
			"vendor style code",
			errors.New(`ERROR: duplicate key value violates unique constraint "idx_styles_vendor_style" (SQLSTATE 23505)`),
			StyleDuplicateVendorCode,
		},
		{
			"style name",
			errors.New(`ERROR: duplicate key value violates unique constraint "idx_styles_style_name" (SQLSTATE 23505)`),
			StyleDuplicateName,
		},
		{
			"user email",
			errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`),
			AuthEmailAlreadyExists,
		},
		{
			"color name",
			errors.New("UNIQUE constraint failed: colors.name"),
			CatalogDuplicateName,
		},
		{
			"labor operation name",
			errors.New("UNIQUE constraint failed: labor_operations.name"),
			CatalogDuplicateName,
		},
		{
			"unrecognized unique index",
			errors.New(`ERROR: duplicate key value violates unique constraint "idx_something_else" (SQLSTATE 23505)`),
			ResourceAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseError(tt.err, "style")
			assert.Equal(t, tt.wantCode, info.Code)
		})
	}
}

func TestParseError_ForeignKeyViolations(t *testing.T) {
	info := ParseError(
		errors.New(`ERROR: insert or update on table "style_fabrics" violates foreign key constraint "fk_style_fabrics_fabric" on column "fabric_id" (SQLSTATE 23503)`),
		"style",
	)
	assert.Equal(t, StyleUnknownComponent, info.Code)

	info = ParseError(
		errors.New(`ERROR: insert or update on table "style_images" violates foreign key constraint "fk_style_images_style" on column "style_id" (SQLSTATE 23503)`),
		"style",
	)
	assert.Equal(t, StyleNotFound, info.Code)
}

func TestParseError_ConnectionAndFallback(t *testing.T) {
	info := ParseError(errors.New("dial tcp 127.0.0.1:5432: connection refused"), "style")
	assert.Equal(t, InternalDatabaseError, info.Code)

	info = ParseError(errors.New("some unexpected failure"), "create style")
	assert.Equal(t, InternalServerError, info.Code)
	assert.Equal(t, "Creation failed. Please try again later", info.Message)
}
