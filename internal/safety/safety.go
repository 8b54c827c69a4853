// Package safety decides how carefully a topic must be handled: it masks
// abusive language and flags topics that must never be joked about.
package safety

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Placeholder replaces each masked term. It must never itself match a masked
// term, or Mask would not be idempotent.
const Placeholder = "〔हटाया गया〕"

// englishSlurs are matched with \b word boundaries, which RE2 defines over
// ASCII word characters.
var englishSlurs = regexp.MustCompile(`(?i)\b(asshole|bastard|idiot|moron)\b`)

// hindiSlurs cannot use \b: Devanagari runes are not RE2 word characters, so
// \b would never match. Boundaries are checked by hand in Mask instead.
var hindiSlurs = regexp.MustCompile(`बेवकूफ|हरामी|कमीना|चुतिया|भोसडीके`)

func isDevanagariLetter(r rune) bool {
	// Letters only; danda, digits and combining punctuation count as
	// boundaries.
	return r >= 0x0904 && r <= 0x0939 || r >= 0x0958 && r <= 0x095F || r >= 0x093A && r <= 0x094F
}

// Mask replaces each whole-word occurrence of a fixed abuse list with
// Placeholder. Substrings inside longer legitimate words are left alone.
// Idempotent: re-running on already-masked text changes nothing.
func Mask(text string) string {
	if text == "" {
		return text
	}
	out := englishSlurs.ReplaceAllString(text, Placeholder)

	// Hindi terms: find raw matches, then keep only those bounded by
	// non-letter runes on both sides.
	var b strings.Builder
	last := 0
	for _, loc := range hindiSlurs.FindAllStringIndex(out, -1) {
		start, end := loc[0], loc[1]
		before, _ := utf8.DecodeLastRuneInString(out[:start])
		after, _ := utf8.DecodeRuneInString(out[end:])
		if isDevanagariLetter(before) || isDevanagariLetter(after) {
			continue
		}
		b.WriteString(out[last:start])
		b.WriteString(Placeholder)
		last = end
	}
	b.WriteString(out[last:])
	return b.String()
}

// sensitivePatterns cover topics that must never get the funny treatment:
// death, accidents, disasters, medical emergencies, violence, fire,
// collapse, negligence, unrest. Substring match on purpose — false positives
// are acceptable, missed matches are not. Patterns are NFKC-normalized at
// compile time so nukta letters (ड़, ढ़, which NFKC keeps decomposed) match
// the normalized input regardless of how the source literals are encoded.
var sensitivePatterns = compileNormalized(
	`मौत|मारा गया|मारे गए|दम तोड़|शव|अंतिम संस्कार`,
	`हादसा|दुर्घटना|टकरा`,
	`(?i)बाढ़|भूकंप|भूस्खलन|तूफान|cyclone|flood|earthquake`,
	`(?i)ऑक्सीजन|oxygen|\bICU\b|hospital|अस्पताल`,
	`(?i)\brape\b|बलात्कार|हत्या|murder|lynch|लिंच`,
	`(?i)\bfire\b|\bblast\b|विस्फोट`,
	`(?i)\bcollapse\b|पुल गिर|इमारत गिर`,
	`(?i)negligence|लापरवाही|corruption|भ्रष्टाचार`,
	`(?i)\bwar\b|युद्ध|दंगा|\briot\b`,
)

func compileNormalized(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(norm.NFKC.String(p)))
	}
	return out
}

// boundedSensitive are Hindi words that are only sensitive as whole words.
// "आग" as a plain substring would flag आगरा and आगे, so these use the same
// hand-checked Devanagari boundaries as the slur masking.
var boundedSensitive = regexp.MustCompile(`आग`)

func matchesBounded(re *regexp.Regexp, text string) bool {
	for _, loc := range re.FindAllStringIndex(text, -1) {
		before, _ := utf8.DecodeLastRuneInString(text[:loc[0]])
		after, _ := utf8.DecodeRuneInString(text[loc[1]:])
		if !isDevanagariLetter(before) && !isDevanagariLetter(after) {
			return true
		}
	}
	return false
}

// IsSensitive reports whether the text touches any category that requires a
// cautious tone. Input is NFKC-normalized first so composed and decomposed
// Devanagari spellings match the same patterns.
func IsSensitive(text string) bool {
	if text == "" {
		return false
	}
	t := norm.NFKC.String(text)
	for _, pat := range sensitivePatterns {
		if pat.MatchString(t) {
			return true
		}
	}
	return matchesBounded(boundedSensitive, t)
}
