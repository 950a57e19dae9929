package arabic

import (
	"strings"
	"testing"
)

func TestNormalize_StripsTashkeel(t *testing.T) {
	got := Normalize("كِتَابٌ")
	if got != "كتاب" {
		t.Errorf("expected كتاب, got %q", got)
	}
}

func TestNormalize_FoldsHamzaForms(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"أحمد", "احمد"},
		{"إسلام", "اسلام"},
		{"آمن", "امن"},
		{"مؤمن", "مومن"},
		{"سائل", "سايل"}, // hamza-on-yaa folds through alif-maqsura to yaa
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalize_FoldsYaaVariants(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"موسى", "موسي"},
		{"علی", "علي"}, // Farsi yeh
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalize_StripsTatweel(t *testing.T) {
	if got := Normalize("كـــتـــاب"); got != "كتاب" {
		t.Errorf("expected كتاب, got %q", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"كِتَابٌ",
		"أَبُو حَامِدٍ الغَزَالِيّ",
		"موسى إلى المدينة",
		"plain latin 123",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalize_PreservesWildcardMarkers(t *testing.T) {
	inputs := []string{
		"أب*",
		"*كتاب",
		"قَلْ*بٌ",
		"أ*ب*ج",
	}
	for _, in := range inputs {
		got := Normalize(in)
		if strings.Count(got, "*") != strings.Count(in, "*") {
			t.Errorf("wildcard count changed for %q: got %q", in, got)
		}
	}
	if got := Normalize("أب*"); got != "اب*" {
		t.Errorf("expected اب*, got %q", got)
	}
}

func TestNormalize_LeavesOtherCharactersAlone(t *testing.T) {
	in := "abc 123 ٤٥٦ ,.!"
	if got := Normalize(in); got != in {
		t.Errorf("expected %q unchanged, got %q", in, got)
	}
}
