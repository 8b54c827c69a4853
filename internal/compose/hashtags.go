package compose

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Hindi stop words that make useless hashtags.
var stopWords = map[string]struct{}{
	"है": {}, "और": {}, "का": {}, "की": {}, "के": {}, "से": {}, "तो": {},
	"था": {}, "थी": {}, "पर": {}, "में": {}, "को": {}, "ने": {}, "हो": {},
	"हैं": {}, "ये": {}, "यह": {}, "वो": {}, "या": {}, "भी": {}, "सब": {},
	"क्यों": {}, "कब": {}, "बहुत": {}, "ज्यादा": {}, "फिर": {}, "अब": {},
	"लिए": {}, "करे": {}, "किया": {}, "कर": {}, "होना": {}, "रहा": {},
	"रही": {}, "रहे": {}, "एक": {}, "दो": {}, "तीन": {},
}

// nonTagRunes strips everything except Devanagari and ASCII digits, so tags
// stay pure Hindi instead of mixed-script spam.
var nonTagRunes = regexp.MustCompile(`[^0-9\x{0900}-\x{097F}]+`)

func cleanToken(tok string) string {
	tok = strings.Trim(tok, ".,:;!?()[]{}\"'`।…–-")
	return nonTagRunes.ReplaceAllString(tok, "")
}

// Hashtagify derives up to max hashtags from text: tokenize, strip to
// Devanagari+digits, drop stop words and tokens shorter than 3 runes, dedupe
// preserving first-seen order. Returns e.g. "#मेट्रो #किराया", or "" when
// nothing survives.
func Hashtagify(text string, max int) string {
	if text == "" || max <= 0 {
		return ""
	}
	seen := make(map[string]struct{})
	var tags []string
	for _, w := range strings.Fields(text) {
		w = cleanToken(w)
		if w == "" || utf8.RuneCountInString(w) < 3 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		tags = append(tags, "#"+w)
		if len(tags) >= max {
			break
		}
	}
	return strings.Join(tags, " ")
}
