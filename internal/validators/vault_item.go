package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-vaultx/models"
)

// Field names understood by the validators of this package.
const (
	FieldID       = "id"
	FieldTitle    = "title"
	FieldUsername = "username"
	FieldPassword = "password"

	FieldName     = "name"
	FieldEmail    = "email"
	FieldUserPass = "account_password"
)

// VaultItemValidator validates vault items and drafts, and the account forms
// sent to the identity service.
//
// Values are checked after trimming surrounding whitespace but are never
// modified; a password of " x " is valid and kept as is.
type VaultItemValidator struct{}

// NewVaultItemValidator returns the validator as a [Validator].
func NewVaultItemValidator() Validator {
	return &VaultItemValidator{}
}

// Validate dispatches on the dynamic type of obj. Supported types:
//   - models.VaultItemDraft / *models.VaultItemDraft (default: title, username, password)
//   - models.VaultItem / *models.VaultItem (default: id, title, username, password)
//   - models.User / *models.User (default: email, account_password)
//
// Any failure is returned as *ValidationError.
func (v *VaultItemValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.VaultItemDraft:
		return v.validateItem(value.ToItem(""), defaultFields(fields, FieldTitle, FieldUsername, FieldPassword))
	case *models.VaultItemDraft:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateItem(value.ToItem(""), defaultFields(fields, FieldTitle, FieldUsername, FieldPassword))
	case models.VaultItem:
		return v.validateItem(value, defaultFields(fields, FieldID, FieldTitle, FieldUsername, FieldPassword))
	case *models.VaultItem:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateItem(*value, defaultFields(fields, FieldID, FieldTitle, FieldUsername, FieldPassword))
	case models.User:
		return v.validateUser(value, defaultFields(fields, FieldEmail, FieldUserPass))
	case *models.User:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateUser(*value, defaultFields(fields, FieldEmail, FieldUserPass))
	default:
		return ErrUnsupportedType
	}
}

func (v *VaultItemValidator) validateItem(item models.VaultItem, fields []string) error {
	for _, f := range fields {
		switch f {
		case FieldID:
			if blank(item.ID) {
				return fieldError(f, ErrEmptyID)
			}
		case FieldTitle:
			if blank(item.Title) {
				return fieldError(f, ErrEmptyTitle)
			}
		case FieldUsername:
			if blank(item.Username) {
				return fieldError(f, ErrEmptyUsername)
			}
		case FieldPassword:
			if blank(item.Password) {
				return fieldError(f, ErrEmptyPassword)
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *VaultItemValidator) validateUser(user models.User, fields []string) error {
	for _, f := range fields {
		switch f {
		case FieldName:
			if blank(user.Name) {
				return fieldError(f, ErrEmptyName)
			}
		case FieldEmail:
			email := strings.TrimSpace(user.Email)
			if email == "" {
				return fieldError(f, ErrEmptyEmail)
			}
			at := strings.IndexByte(email, '@')
			if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
				return fieldError(f, ErrInvalidEmail)
			}
		case FieldUserPass:
			if blank(user.Password) {
				return fieldError(f, ErrEmptyUserPass)
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func defaultFields(fields []string, defaults ...string) []string {
	if len(fields) == 0 {
		return defaults
	}
	return fields
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
