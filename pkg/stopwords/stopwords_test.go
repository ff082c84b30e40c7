package stopwords

import "testing"

func TestIs_Stopwords(t *testing.T) {
	for _, w := range []string{"the", "and", "your", "how", "with", "i've"} {
		if !Is(w) {
			t.Errorf("Is(%q) = false, want true", w)
		}
	}
}

func TestIs_ContentWords(t *testing.T) {
	for _, w := range []string{"golang", "tutorial", "guitar", "review", "ai"} {
		if Is(w) {
			t.Errorf("Is(%q) = true, want false", w)
		}
	}
}

func TestIs_CaseSensitiveByContract(t *testing.T) {
	// Callers lowercase tokens before the check; the set itself is lowercase.
	if Is("The") {
		t.Error("Is(\"The\") = true, membership check expects lowercased input")
	}
}
