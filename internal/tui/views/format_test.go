package views

import "testing"

func TestInitials(t *testing.T) {
	cases := []struct {
		first, last, want string
	}{
		{"Marie", "Dubois", "MD"},
		{"pierre", "martin", "PM"},
		{"", "Leroy", "L"},
		{"Emma", "", "E"},
		{"", "", ""},
		{"Émile", "Zola", "ÉZ"},
		{"émile", "zola", "ÉZ"},
	}
	for _, tc := range cases {
		if got := initials(tc.first, tc.last); got != tc.want {
			t.Errorf("initials(%q, %q) = %q, want %q", tc.first, tc.last, got, tc.want)
		}
	}
}

func TestParseTags(t *testing.T) {
	cases := []struct {
		input string
		want  []string
	}{
		{"VIP, Tech", []string{"VIP", "Tech"}},
		{"VIP,VIP, Tech", []string{"VIP", "Tech"}},
		{" , ,", nil},
		{"", nil},
	}
	for _, tc := range cases {
		got := parseTags(tc.input)
		if len(got) != len(tc.want) {
			t.Errorf("parseTags(%q) = %v, want %v", tc.input, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("parseTags(%q)[%d] = %q, want %q", tc.input, i, got[i], tc.want[i])
			}
		}
	}
}

func TestMecardEscapesReservedCharacters(t *testing.T) {
	got := mecardEscape("a;b,c:d")
	want := `a\;b\,c\:d`
	if got != want {
		t.Errorf("mecardEscape = %q, want %q", got, want)
	}
}
