package codespace

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestPieceDecodesEmbeddedSummary(t *testing.T) {
	raw := `{"id":5,"space_id":2,"name":"quick sort","language":"Go","owner_name":"kim","code":"package main","created_at":"2024-03-01T10:00:00Z"}`
	var p Piece
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if p.ID != 5 || p.SpaceID != 2 || p.Code != "package main" {
		t.Fatalf("Piece = %#v", p)
	}
	want := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if got := p.ParsedCreatedAt(); !got.Equal(want) {
		t.Fatalf("ParsedCreatedAt = %v, want %v", got, want)
	}
}

func TestParseTime_Layouts(t *testing.T) {
	cases := []struct {
		in   string
		zero bool
	}{
		{"", true},
		{"garbage", true},
		{"2024-03-01T10:00:00.123456789Z", false},
		{"2024-03-01T10:00:00+09:00", false},
		{"2024-03-01T10:00:00.123456", false},
		{"2024-03-01T10:00:00", false},
		{"2024-03-01 10:00:00", false},
	}
	for _, tc := range cases {
		if got := parseTime(tc.in); got.IsZero() != tc.zero {
			t.Fatalf("parseTime(%q) = %v, zero=%v want zero=%v", tc.in, got, got.IsZero(), tc.zero)
		}
	}
}

func TestResolveLanguage(t *testing.T) {
	cases := []struct {
		choice, custom, want string
	}{
		{"Go", "ignored", "Go"},
		{"Other", "  Zig ", "Zig"},
		{"Other", "", "Other"},
	}
	for _, tc := range cases {
		if got := ResolveLanguage(tc.choice, tc.custom); got != tc.want {
			t.Fatalf("ResolveLanguage(%q, %q) = %q, want %q", tc.choice, tc.custom, got, tc.want)
		}
	}

	if choice, custom := LanguageChoice("python"); choice != "Python" || custom != "" {
		t.Fatalf("LanguageChoice(python) = %q, %q", choice, custom)
	}
	if choice, custom := LanguageChoice("Zig"); choice != LanguageOther || custom != "Zig" {
		t.Fatalf("LanguageChoice(Zig) = %q, %q", choice, custom)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		req   interface{ Validate() error }
		field string
	}{
		{"space ok", CreateSpaceRequest{Name: "n", OwnerName: "o", Password: "1234"}, ""},
		{"space name", CreateSpaceRequest{Name: " ", OwnerName: "o", Password: "1234"}, FieldName},
		{"space owner", CreateSpaceRequest{Name: "n", Password: "1234"}, FieldOwnerName},
		{"space short password", CreateSpaceRequest{Name: "n", OwnerName: "o", Password: "123"}, FieldPassword},
		{"space update cleared name", UpdateSpaceRequest{Name: StringPtr(""), Password: "1234"}, FieldName},
		{"space update omitted name", UpdateSpaceRequest{Password: "1234"}, ""},
		{"piece ok", CreatePieceRequest{SpaceID: 1, Name: "n", Language: "Go", Code: "x", OwnerName: "o", Password: "p"}, ""},
		{"piece code", CreatePieceRequest{SpaceID: 1, Name: "n", Language: "Go", OwnerName: "o", Password: "p"}, FieldCode},
		{"piece space", CreatePieceRequest{Name: "n", Language: "Go", Code: "x", OwnerName: "o", Password: "p"}, FieldSpaceID},
		{"piece password", CreatePieceRequest{SpaceID: 1, Name: "n", Language: "Go", Code: "x", OwnerName: "o"}, FieldPassword},
		{"piece update password", UpdatePieceRequest{}, FieldPassword},
		{"piece update ok", UpdatePieceRequest{Password: "p"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.field == "" {
				if err != nil {
					t.Fatalf("Validate = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tc.field {
				t.Fatalf("Validate = %v, want field %q", err, tc.field)
			}
		})
	}
}
