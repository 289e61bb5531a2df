package main

import (
	"testing"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"12", 12, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := parseID(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Fatalf("parseID(%q) = %d, %v; want %d, err=%v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestPageFlags(t *testing.T) {
	c := &cli{}
	cmd := c.spacesCmd()
	if err := cmd.ParseFlags([]string{"--page", "3", "--all"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	req, err := pageRequest(cmd)
	if err != nil {
		t.Fatalf("pageRequest: %v", err)
	}
	if req.Page != 3 || !req.All {
		t.Fatalf("pageRequest = %+v, want page 3 all", req)
	}

	cmd = c.piecesCmd()
	if err := cmd.ParseFlags([]string{"--page=-1"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if _, err := pageRequest(cmd); err == nil {
		t.Fatalf("negative page should fail")
	}
}

func TestRootRegistersSubcommands(t *testing.T) {
	root := (&cli{}).rootCmd()
	for _, name := range []string{"open", "spaces", "pieces", "piece", "compare"} {
		if sub, _, err := root.Find([]string{name}); err != nil || sub.Name() != name {
			t.Fatalf("subcommand %q not registered (err=%v)", name, err)
		}
	}
	for _, flag := range []string{"config", "api-url", "timeout", "verbose"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Fatalf("missing global flag --%s", flag)
		}
	}
}
