package codespace

import (
	"strings"
	"unicode/utf8"
)

// MinSpacePasswordLength is the shortest password accepted for spaces.
const MinSpacePasswordLength = 4

// Field names used in ValidationError.Field.
const (
	FieldName      = "name"
	FieldOwnerName = "owner_name"
	FieldPassword  = "password"
	FieldLanguage  = "language"
	FieldCode      = "code"
	FieldSpaceID   = "space_id"
)

// Validate checks the fields the server requires.
func (r CreateSpaceRequest) Validate() error {
	if blank(r.Name) {
		return invalid(FieldName, "Name is required")
	}
	if blank(r.OwnerName) {
		return invalid(FieldOwnerName, "Owner name is required")
	}
	return validateSpacePassword(r.Password)
}

// Validate checks the fields the server requires. Name and owner may be
// omitted but not cleared.
func (r UpdateSpaceRequest) Validate() error {
	if r.Name != nil && blank(*r.Name) {
		return invalid(FieldName, "Name is required")
	}
	if r.OwnerName != nil && blank(*r.OwnerName) {
		return invalid(FieldOwnerName, "Owner name is required")
	}
	return validateSpacePassword(r.Password)
}

// Validate checks the fields the server requires.
func (r CreatePieceRequest) Validate() error {
	switch {
	case r.SpaceID <= 0:
		return invalid(FieldSpaceID, "Space is required")
	case blank(r.Name):
		return invalid(FieldName, "Name is required")
	case blank(r.Language):
		return invalid(FieldLanguage, "Language is required")
	case blank(r.Code):
		return invalid(FieldCode, "Code is required")
	case blank(r.OwnerName):
		return invalid(FieldOwnerName, "Owner name is required")
	case r.Password == "":
		return invalid(FieldPassword, "Password is required")
	}
	return nil
}

// Validate only requires the password; every other field is optional.
func (r UpdatePieceRequest) Validate() error {
	if r.Password == "" {
		return invalid(FieldPassword, "Password is required")
	}
	return nil
}

func validateSpacePassword(password string) error {
	if utf8.RuneCountInString(password) < MinSpacePasswordLength {
		return invalid(FieldPassword, "Password must be at least 4 characters")
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
