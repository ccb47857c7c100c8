package farsi

import "testing"

func TestNormalizeMapsArabicVariants(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"arabic kaf", "كرم", "کرم"},
		{"arabic yeh", "ميسويک", "میسویک"},
		{"alef maksura", "ى", "ی"},
		{"hamza alef", "أب", "اب"},
		{"teh marbuta", "مرطوب کنندة", "مرطوب کننده"},
		{"latin lowercased", "  MissWake  ", "misswake"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.input); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"خمیر دندان ميسويک",
		"  Umbrella Sunscreen SPF50  ",
		"كةأى",
	}
	for _, s := range inputs {
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", s, once, twice)
		}
	}
}

func TestSimilarity(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"", "", 1.0},
		{"abc", "abc", 1.0},
		{"abcd", "abcx", 0.75},
		{"abc", "", 0.0},
		{"کرم", "کرم", 1.0},
	}
	for _, tc := range cases {
		if got := Similarity(tc.a, tc.b); got != tc.want {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"misswake", "miswake"},
		{"کرم آبرسان", "کرم ابرسان"},
		{"", "something"},
	}
	for _, p := range pairs {
		if ab, ba := Similarity(p[0], p[1]), Similarity(p[1], p[0]); ab != ba {
			t.Errorf("Similarity(%q,%q)=%v but reversed=%v", p[0], p[1], ab, ba)
		}
	}
}
