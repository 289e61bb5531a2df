package codespace

import (
	"strings"
	"time"
)

// Space mirrors the summary/detail payload of /api/codespaces.
type Space struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerName   string `json:"owner_name"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (s Space) ParsedCreatedAt() time.Time {
	return parseTime(s.CreatedAt)
}

// ParsedUpdatedAt returns the parsed UpdatedAt timestamp.
func (s Space) ParsedUpdatedAt() time.Time {
	return parseTime(s.UpdatedAt)
}

// PieceSummary is a list entry of /api/codepieces.
type PieceSummary struct {
	ID          int64  `json:"id"`
	SpaceID     int64  `json:"space_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerName   string `json:"owner_name"`
	Language    string `json:"language"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (p PieceSummary) ParsedCreatedAt() time.Time {
	return parseTime(p.CreatedAt)
}

// ParsedUpdatedAt returns the parsed UpdatedAt timestamp.
func (p PieceSummary) ParsedUpdatedAt() time.Time {
	return parseTime(p.UpdatedAt)
}

// Piece is the detail payload of /api/codepieces/{id}, including the code body.
type Piece struct {
	PieceSummary
	Code string `json:"code"`
}

// CreateSpaceRequest is the body of POST /api/codespaces.
type CreateSpaceRequest struct {
	Name        string `json:"name"`
	Password    string `json:"password"`
	OwnerName   string `json:"owner_name"`
	Description string `json:"description,omitempty"`
}

// UpdateSpaceRequest is the body of PUT /api/codespaces/{id}. Nil fields are
// left unchanged by the server.
type UpdateSpaceRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	OwnerName   *string `json:"owner_name,omitempty"`
	Password    string  `json:"password"`
}

// CreatePieceRequest is the body of POST /api/codepieces.
type CreatePieceRequest struct {
	SpaceID     int64  `json:"space_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language"`
	Code        string `json:"code"`
	Password    string `json:"password"`
	OwnerName   string `json:"owner_name"`
}

// UpdatePieceRequest is the body of PUT /api/codepieces/{id}.
type UpdatePieceRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Language    *string `json:"language,omitempty"`
	Code        *string `json:"code,omitempty"`
	OwnerName   *string `json:"owner_name,omitempty"`
	Password    string  `json:"password"`
}

// deleteRequest carries the password for DELETE calls.
type deleteRequest struct {
	Password string `json:"password"`
}

// Languages is the fixed set offered by the piece forms. "Other" lets the
// user type a custom label.
var Languages = []string{
	"C",
	"Java",
	"Python",
	"PHP",
	"Dart",
	"Swift",
	"Kotlin",
	"JavaScript",
	"TypeScript",
	"C++",
	"C#",
	"Ruby",
	"Go",
	LanguageOther,
}

// LanguageOther selects a free-form language label.
const LanguageOther = "Other"

// ResolveLanguage returns the language label to submit for a form choice.
func ResolveLanguage(choice, custom string) string {
	choice = strings.TrimSpace(choice)
	if choice != LanguageOther {
		return choice
	}
	if custom = strings.TrimSpace(custom); custom != "" {
		return custom
	}
	return LanguageOther
}

// LanguageChoice maps a stored label back to a form choice and custom value.
func LanguageChoice(language string) (choice, custom string) {
	language = strings.TrimSpace(language)
	for _, l := range Languages {
		if strings.EqualFold(l, language) {
			return l, ""
		}
	}
	if language == "" {
		return "", ""
	}
	return LanguageOther, language
}

// StringPtr is a helper for building partial update requests.
func StringPtr(s string) *string {
	return &s
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for i, layout := range timestampLayouts {
		if i < 2 {
			if t, err := time.Parse(layout, value); err == nil {
				return t
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}
