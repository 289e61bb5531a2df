package route

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Route
	}{
		{"", Route{Kind: Spaces}},
		{"/", Route{Kind: Spaces}},
		{"/spaces/create", Route{Kind: SpaceCreate}},
		{"/spaces/12", Route{Kind: Space, ID: 12}},
		{"/spaces/12/", Route{Kind: Space, ID: 12}},
		{"/spaces/12/edit", Route{Kind: SpaceEdit, ID: 12}},
		{"/spaces/12/pieces/create", Route{Kind: PieceCreate, ID: 12}},
		{"/pieces/7", Route{Kind: Piece, ID: 7}},
		{"/pieces/7/edit", Route{Kind: PieceEdit, ID: 7}},
		{"/pieces/compare/5,3,8", Route{Kind: Compare, IDs: []int64{5, 3, 8}}},
		{"https://codespace.example/pieces/compare/1,x,2?tab=1", Route{Kind: Compare, IDs: []int64{1, 2}}},
		{"/log", Route{Kind: ActivityLog}},
		{"/pieces/compare/abc", Route{Kind: NotFound, Path: "/pieces/compare/abc"}},
		{"/spaces/abc", Route{Kind: NotFound, Path: "/spaces/abc"}},
		{"/spaces/0", Route{Kind: NotFound, Path: "/spaces/0"}},
		{"/nowhere", Route{Kind: NotFound, Path: "/nowhere"}},
	}
	for _, tc := range cases {
		got := Parse(tc.in)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("Parse(%q) mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestStringRoundTrips(t *testing.T) {
	routes := []Route{
		Home(),
		{Kind: SpaceCreate},
		ToSpace(3),
		{Kind: SpaceEdit, ID: 3},
		{Kind: PieceCreate, ID: 3},
		ToPiece(9),
		{Kind: PieceEdit, ID: 9},
		ToCompare([]int64{5, 3, 8}),
		{Kind: ActivityLog},
	}
	for _, r := range routes {
		back := Parse(r.String())
		if diff := cmp.Diff(r, back); diff != "" {
			t.Fatalf("round trip of %s mismatch (-want +got):\n%s", r, diff)
		}
	}
	if got := ToCompare([]int64{5, 3, 8}).String(); got != "/pieces/compare/5,3,8" {
		t.Fatalf("compare path = %q", got)
	}
}

func TestNotFoundKeepsPath(t *testing.T) {
	r := Parse("/bogus/path")
	if r.Kind != NotFound || r.String() != "/bogus/path" {
		t.Fatalf("Parse(/bogus/path) = %#v (%s)", r, r)
	}
	if (Route{Kind: NotFound}).String() != "/404" {
		t.Fatalf("empty not-found path")
	}
	if !ToSpace(1).Equal(Parse("/spaces/1/")) {
		t.Fatalf("Equal should ignore trailing slash")
	}
	if Space.String() != "space" || Kind(99).String() != "unknown" {
		t.Fatalf("Kind names wrong")
	}
}
