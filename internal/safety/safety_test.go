package safety

import (
	"strings"
	"testing"
)

func TestMaskReplacesWholeWords(t *testing.T) {
	in := "ये नेता बेवकूफ है और वो moron भी"
	got := Mask(in)
	if strings.Contains(got, "बेवकूफ") || strings.Contains(got, "moron") {
		t.Errorf("terms survived masking: %q", got)
	}
	if n := strings.Count(got, Placeholder); n != 2 {
		t.Errorf("want 2 placeholders, got %d in %q", n, got)
	}
}

func TestMaskKeepsLongerWordsIntact(t *testing.T) {
	// "idiotic" contains "idiot" but is a different word; likewise a slur
	// embedded in a longer Devanagari word stays untouched.
	in := "idiotic plan और बेवकूफी भरी बात"
	got := Mask(in)
	if got != in {
		t.Errorf("substrings were masked: %q", got)
	}
}

func TestMaskIdempotent(t *testing.T) {
	in := "चुतिया चुतिया bastard"
	once := Mask(in)
	twice := Mask(once)
	if once != twice {
		t.Errorf("Mask not idempotent: %q vs %q", once, twice)
	}
	if strings.Contains(twice, "चुतिया") || strings.Contains(twice, "bastard") {
		t.Errorf("terms survived: %q", twice)
	}
}

func TestIsSensitive(t *testing.T) {
	sensitive := []string{
		"ट्रेन हादसा में कई लोगों की मौत",
		"Massive flood hits coastal villages",
		"अस्पताल में ऑक्सीजन की कमी",
		"Bridge collapse under investigation",
		"भ्रष्टाचार का नया मामला",
		"riot breaks out after the match",
		"फैक्ट्री में आग लगने से अफरा-तफरी",
		"आग से झुलसे मजदूरों का इलाज जारी",
	}
	for _, s := range sensitive {
		if !IsSensitive(s) {
			t.Errorf("IsSensitive(%q) = false, want true", s)
		}
	}

	benign := []string{
		"",
		"ISRO ने नया mission launch किया",
		"local train overcrowding despite new high-speed rail announcement",
		"मेट्रो का किराया बढ़ा",
		"आगरा में नया एक्सप्रेसवे खुला",
		"टीम आगे बढ़ती जा रही है",
	}
	for _, s := range benign {
		if IsSensitive(s) {
			t.Errorf("IsSensitive(%q) = true, want false", s)
		}
	}
}
