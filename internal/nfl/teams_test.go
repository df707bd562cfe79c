package nfl

import "testing"

func TestCanonicalTeam_RoundTrip(t *testing.T) {
	keys := AllTeams()
	if len(keys) != 32 {
		t.Fatalf("AllTeams returned %d keys, want 32", len(keys))
	}
	for _, k := range keys {
		name := DisplayName(k)
		if name == "" {
			t.Fatalf("no display name for %q", k)
		}
		if got := CanonicalTeam(name); got != k {
			t.Errorf("CanonicalTeam(%q) = %q, want %q", name, got, k)
		}
		// abbreviations are identity, case-insensitively
		if got := CanonicalTeam(string(k)); got != k {
			t.Errorf("CanonicalTeam(%q) = %q, want %q", k, got, k)
		}
	}
}

func TestCanonicalTeam_Unknown(t *testing.T) {
	for _, in := range []string{"", "Oakland Raiders", "xyz", "seattle"} {
		if got := CanonicalTeam(in); got.Resolved() {
			t.Errorf("CanonicalTeam(%q) = %q, want Unresolved", in, got)
		}
	}
}

func TestCanonicalOpponent(t *testing.T) {
	cases := []struct {
		in   string
		want TeamKey
	}{
		{"@SEA", "sea"},
		{"vsSEA", "sea"},
		{"vsKC", "kc"},
		{"@no", "no"},
		{"  @TB ", "tb"},
		{"Seattle Seahawks Defense", Unresolved}, // too long, free text
		{"@XYZ", Unresolved},                     // short but not a team
		{"", Unresolved},
		{"vs", Unresolved},
	}
	for _, c := range cases {
		if got := CanonicalOpponent(c.in); got != c.want {
			t.Errorf("CanonicalOpponent(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
