package compose

import (
	"errors"
	"io"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/adivyas/khabri/internal/domain"
)

// fakeGen scripts the generator: translate calls return hindiOut, body calls
// return bodyOut. It records the prompts it saw.
type fakeGen struct {
	hindiOut string
	bodyOut  string
	err      error
	prompts  []string
}

func (f *fakeGen) Generate(system, prompt string, temperature float64, maxTokens int) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if system == bodySystem {
		return f.bodyOut, nil
	}
	return f.hindiOut, nil
}

func newComposer(gen domain.Generator, opts Options) *Composer {
	return New(gen, log.New(io.Discard), opts)
}

func TestMakePostEmptyTopic(t *testing.T) {
	c := newComposer(&fakeGen{}, Options{})
	for _, topic := range []string{"", "   ", "\n\t"} {
		if got := c.MakePost(topic, "", domain.ModeFunny, ""); got != EmptyTopicReply {
			t.Errorf("MakePost(%q) = %q, want placeholder", topic, got)
		}
	}
}

func TestMakePostEndToEnd(t *testing.T) {
	gen := &fakeGen{
		hindiOut: "लोकल ट्रेन में भारी भीड़, नई हाई-स्पीड रेल की घोषणा के बावजूद",
		bodyOut: "बुलेट ट्रेन की घोषणा और लोकल में 5000 लोग लटके\n" +
			"सरकार announcement कर रही है, platform सो रहा है 😭\n" +
			"रोज़ 80 लाख लोग धक्के खा रहे हैं\n" +
			"पहले लोकल सुधारो फिर बुलेट चलाना!",
	}
	c := newComposer(gen, Options{HashtagsMax: 2, CritiqueAuthorities: true})

	topic := "local train overcrowding despite new high-speed rail announcement"
	got := c.MakePost(topic, "", domain.ModeFunny, topic)

	if n := utf8.RuneCountInString(got); n > MaxPostRunes {
		t.Errorf("post is %d runes, budget is %d", n, MaxPostRunes)
	}
	if lines := strings.Count(got, "\n") + 1; lines < 3 || lines > 4 {
		t.Errorf("want 3-4 lines, got %d:\n%s", lines, got)
	}
	if !strings.Contains(got, "#") {
		t.Errorf("want at least one hashtag:\n%s", got)
	}

	// body zone = everything before the closing quote; it must be clean
	body := got[:strings.LastIndex(got, "\"")]
	for _, tok := range []string{"#", "@", "http://", "https://"} {
		if strings.Contains(body, tok) {
			t.Errorf("body contains %q:\n%s", tok, body)
		}
	}
}

func TestMakePostBodySanitized(t *testing.T) {
	gen := &fakeGen{
		hindiOut: "दिल्ली में पानी की किल्लत और टैंकर माफिया",
		bodyOut: "पानी नहीं, टैंकर ही टैंकर #जलसंकट देखो https://spam.example @netaji\n" +
			"सरकार plan बना रही है, नल सो रहा है 😭😅🤡\n" +
			"कॉलोनी में सुबह 4 बजे लाइन लगती है\n" +
			"ये है smart city का पानी?",
	}
	c := newComposer(gen, Options{HashtagsMax: 2})

	got := c.MakePost("water crisis in delhi", "", domain.ModeFunny, "")

	body := got[:strings.LastIndex(got, "\"")]
	for _, tok := range []string{"#", "@", "http"} {
		if strings.Contains(body, tok) {
			t.Errorf("body contains %q:\n%s", tok, body)
		}
	}
	if n := emojiCount(got); n > 2 {
		t.Errorf("want at most 2 emoji, got %d:\n%s", n, got)
	}
}

func TestMakePostSensitiveOverride(t *testing.T) {
	gen := &fakeGen{
		hindiOut: "पुल गिरने से बड़ा हादसा, कई लोगों की मौत",
		bodyOut:  "पुल 3 साल पुराना था\nजांच का आदेश हो गया, जवाब कोई नहीं दे रहा\nकिसकी जिम्मेदारी?\nलोग अब भी उसी रास्ते से जाते हैं",
	}
	c := newComposer(gen, Options{HashtagsMax: 3, CritiqueAuthorities: true})

	topic := "bridge collapse kills several"
	got := c.MakePost(topic, "", domain.ModeFunny, topic)

	// mode was forced off funny: the accountability template was used
	var sawAccountability bool
	for _, p := range gen.prompts {
		if strings.Contains(p, "जवाबदेही") {
			sawAccountability = true
		}
		if strings.Contains(p, "मीम-वाइब") {
			t.Error("funny template used for a sensitive topic")
		}
	}
	if !sawAccountability {
		t.Error("accountability template not used")
	}

	// hashtag decoration suppressed despite hashtagFrom being set
	if strings.Contains(got, "#") {
		t.Errorf("hashtags on a sensitive post:\n%s", got)
	}
}

func TestMakePostSensitiveWithoutCritique(t *testing.T) {
	gen := &fakeGen{
		hindiOut: "शहर में बाढ़ से हालात खराब",
		bodyOut:  "पानी घरों में घुस गया\nराहत की घोषणा हुई, नाव नहीं पहुंची\nरिपोर्ट के हिसाब से 200 गांव डूबे\nहर साल वही कहानी",
	}
	c := newComposer(gen, Options{CritiqueAuthorities: false})

	c.MakePost("flood situation worsens", "", domain.ModeFunny, "")

	var sawSerious bool
	for _, p := range gen.prompts {
		if strings.Contains(p, "बिना drama") {
			sawSerious = true
		}
	}
	if !sawSerious {
		t.Error("serious template not used when critique is disabled")
	}
}

func TestMakePostGeneratorFailure(t *testing.T) {
	gen := &fakeGen{err: errors.New("api down")}
	c := newComposer(gen, Options{})

	topic := "some english topic"
	got := c.MakePost(topic, "", domain.ModeFunny, "")

	// both translation and body fell back: quoted raw topic
	if got != "\""+topic+"\"" {
		t.Errorf("want quoted fallback, got %q", got)
	}
}

func TestMakePostLinkSurvivesTruncation(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("अंतरराष्ट्रीय ", 12))
	gen := &fakeGen{
		hindiOut: "कोई खबर",
		bodyOut:  long + "\n" + long + "\n" + long,
	}
	c := newComposer(gen, Options{})

	link := "https://example.com/article/12345"
	got := c.MakePost("some news", link, domain.ModeFunny, "")

	if n := utf8.RuneCountInString(got); n > MaxPostRunes {
		t.Errorf("post is %d runes, budget is %d", n, MaxPostRunes)
	}
	lines := strings.Split(got, "\n")
	lastLine := lines[len(lines)-1]
	if !strings.Contains(lastLine, link) {
		t.Errorf("link line did not survive truncation:\n%s", got)
	}
}

func TestTranslatePassThroughForHindiInput(t *testing.T) {
	gen := &fakeGen{}
	c := newComposer(gen, Options{})

	in := "मेट्रो का किराया १० रुपये बढ़ा"
	got := c.TranslateToHindi(in)
	if got != "मेट्रो का किराया 10 रुपये बढ़ा" {
		t.Errorf("TranslateToHindi = %q", got)
	}
	if len(gen.prompts) != 0 {
		t.Error("generator called for already-Hindi input")
	}
}

func TestTranslateWeakResultFallsBack(t *testing.T) {
	gen := &fakeGen{hindiOut: "mostly english output with एक word"}
	c := newComposer(gen, Options{})

	in := "government announces new policy"
	if got := c.TranslateToHindi(in); got != in {
		t.Errorf("weak translation should fall back, got %q", got)
	}
}

func TestHashtagify(t *testing.T) {
	got := Hashtagify("मेट्रो का किराया बढ़ा और मेट्रो फिर महंगी", 2)
	if got != "#मेट्रो #किराया" {
		t.Errorf("Hashtagify = %q", got)
	}

	if got := Hashtagify("का की के से", 3); got != "" {
		t.Errorf("stop words survived: %q", got)
	}
	if got := Hashtagify("some english words only", 3); got != "" {
		t.Errorf("non-Devanagari tokens survived: %q", got)
	}
}

func TestPipelineHelpers(t *testing.T) {
	if got := limitWordsPerLine("एक दो तीन चार पांच", 3); got != "एक दो तीन" {
		t.Errorf("limitWordsPerLine = %q", got)
	}
	if got := enforceLineCount("a\nb\nc\nd\ne\nf", 4); got != "a\nb\nc\nd" {
		t.Errorf("enforceLineCount = %q", got)
	}
	if got := limitEmojis("😭 पहले 😤 फिर 😅 बाद में", 2); emojiCount(got) != 2 {
		t.Errorf("limitEmojis left %d emoji: %q", emojiCount(got), got)
	}
	if got := wrapQuotes("“पहले से quoted”"); got != "\"पहले से quoted\"" {
		t.Errorf("wrapQuotes = %q", got)
	}
	if got := stripForbidden("खबर #tag यहां\n@user बोला https://x.y/z कुछ"); strings.ContainsAny(got, "#@") || strings.Contains(got, "http") {
		t.Errorf("stripForbidden = %q", got)
	}
}
