// Package compose turns a raw topic into the final post text: translation,
// mode selection, body generation through an injected text generator, and a
// strict post-processing pipeline that enforces the platform constraints.
package compose

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/adivyas/khabri/internal/domain"
	"github.com/adivyas/khabri/internal/hindi"
	"github.com/adivyas/khabri/internal/safety"
)

// EmptyTopicReply is returned immediately for empty/whitespace input; the
// pipeline never runs in that case.
const EmptyTopicReply = "⚠ अरे भाई, विषय तो दे दो! 😅"

// MaxPostRunes is the platform character budget.
const MaxPostRunes = 280

const (
	maxWordsPerLine = 12
	minBodyLines    = 3
	maxBodyLines    = 4
	maxEmoji        = 2
)

// Options are the configuration values the composer consumes.
type Options struct {
	// HashtagsMax caps the appended hashtags; 0 disables them.
	HashtagsMax int
	// CritiqueAuthorities picks the accountability mode over the plain
	// serious mode when a sensitive topic forces the funny mode off.
	CritiqueAuthorities bool
}

// Composer produces post text. All external effects go through the injected
// Generator; given the same generator behavior it is deterministic.
type Composer struct {
	gen  domain.Generator
	log  *log.Logger
	opts Options
}

// New builds a Composer.
func New(gen domain.Generator, logger *log.Logger, opts Options) *Composer {
	return &Composer{gen: gen, log: logger, opts: opts}
}

// TranslateToHindi returns text rendered mostly in Devanagari. Input that is
// already ≥80% Devanagari is passed through (numerals normalized). A failed
// or insufficiently-Hindi generation falls back to the input verbatim.
func (c *Composer) TranslateToHindi(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if hindi.ScriptFraction(text) > 0.8 {
		return hindi.NormalizeNumerals(text)
	}

	out, err := c.gen.Generate(translateSystem, translatePrompt+text, 0.4, 120)
	if err != nil {
		c.log.Warn("translation failed", "err", err)
		return text
	}
	out = hindi.NormalizeNumerals(strings.TrimSpace(out))
	if hindi.ContainsDevanagari(out) && hindi.ScriptFraction(out) >= 0.5 {
		return out
	}
	c.log.Warn("translation too weak, keeping original", "fraction", hindi.ScriptFraction(out))
	return text
}

// ResolveMode applies the sensitivity override: sensitive topics never get
// the funny mode, whatever the caller asked for.
func (c *Composer) ResolveMode(mode domain.Mode, sensitive bool) domain.Mode {
	if sensitive && mode == domain.ModeFunny {
		if c.opts.CritiqueAuthorities {
			return domain.ModeAccountability
		}
		return domain.ModeSerious
	}
	return mode
}

// MakePost builds the final publishable text for a topic. link, if set, is
// appended on its own trailing line and survives truncation. hashtagFrom, if
// set and the topic is not sensitive, seeds the trailing hashtags.
func (c *Composer) MakePost(topic, link string, mode domain.Mode, hashtagFrom string) string {
	if strings.TrimSpace(topic) == "" {
		return EmptyTopicReply
	}

	core := c.TranslateToHindi(topic)
	if !hindi.ContainsDevanagari(core) {
		core = strings.TrimSpace(topic)
	}

	sensitive := safety.IsSensitive(core)
	mode = c.ResolveMode(mode, sensitive)

	body := c.generateBody(core, mode)
	final := wrapQuotes(body)

	if link != "" {
		final += "\n🔗 " + link
	}

	if hashtagFrom != "" && !sensitive && c.opts.HashtagsMax > 0 {
		src := c.TranslateToHindi(hashtagFrom)
		if hindi.ContainsDevanagari(src) {
			if tags := Hashtagify(src, c.opts.HashtagsMax); tags != "" {
				final += " " + tags
			}
		}
	}

	final = hindi.NormalizeNumerals(clampPost(final))
	c.log.Info("composed post",
		"mode", string(mode),
		"sensitive", sensitive,
		"chars", utf8.RuneCountInString(final))
	return final
}

// generateBody asks the generator for a 3–4 line body and runs the fixed
// post-processing pipeline. Any failure falls back to the core text as a
// single line.
func (c *Composer) generateBody(core string, mode domain.Mode) string {
	prompt := styleFor(mode) + "\n\n📰 NEWS/TOPIC:\n" + core + "\n\n" + bodyInstructions
	out, err := c.gen.Generate(bodySystem, prompt, 0.7, 180)
	if err != nil {
		c.log.Warn("body generation failed", "err", err)
		return core
	}
	text := cleanLines(out)
	if text == "" {
		return core
	}

	// A single long paragraph gets split on sentence enders so the line
	// pipeline has something to work with.
	if !strings.Contains(text, "\n") && utf8.RuneCountInString(text) > 100 {
		text = splitSentences(text)
	}

	// Order matters: each step assumes the previous step's output shape.
	text = stripForbidden(text)
	text = limitWordsPerLine(text, maxWordsPerLine)
	text = enforceLineCount(text, maxBodyLines)
	if strings.TrimSpace(text) == "" {
		return core
	}
	text = limitEmojis(text, maxEmoji)
	text = hindi.NormalizeNumerals(safety.Mask(text))

	// The funny pattern wants an emoji on line 2; restore one if the
	// pipeline stripped them all.
	if emojiCount(text) == 0 {
		lines := strings.Split(text, "\n")
		if len(lines) >= 2 {
			lines[1] += " 😤"
			text = strings.Join(lines, "\n")
		}
	}
	return text
}

var forbiddenTokens = regexp.MustCompile(`#\S+|@\S+|https?://\S+`)
var multiSpace = regexp.MustCompile(`[ \t]{2,}`)
var sentenceEnd = regexp.MustCompile(`[।!?]\s+`)

// cleanLines trims every line and drops empty ones.
func cleanLines(text string) string {
	var out []string
	for _, ln := range strings.Split(strings.ReplaceAll(text, "\r", ""), "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			out = append(out, ln)
		}
	}
	return strings.Join(out, "\n")
}

// stripForbidden removes hashtags, mentions and links from body lines. Those
// belong only in the trailing zone appended later.
func stripForbidden(text string) string {
	text = forbiddenTokens.ReplaceAllString(text, "")
	text = multiSpace.ReplaceAllString(text, " ")
	return cleanLines(text)
}

func splitSentences(text string) string {
	parts := sentenceEnd.Split(text, -1)
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) < minBodyLines {
		return text
	}
	if len(kept) > maxBodyLines {
		kept = kept[:maxBodyLines]
	}
	return strings.Join(kept, "\n")
}

func limitWordsPerLine(text string, maxWords int) string {
	var out []string
	for _, ln := range strings.Split(text, "\n") {
		words := strings.Fields(ln)
		if len(words) > maxWords {
			words = words[:maxWords]
		}
		if len(words) > 0 {
			out = append(out, strings.Join(words, " "))
		}
	}
	return strings.Join(out, "\n")
}

// enforceLineCount drops trailing lines beyond max. It never pads.
func enforceLineCount(text string, max int) string {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if strings.TrimSpace(ln) != "" {
			lines = append(lines, ln)
		}
	}
	if len(lines) > max {
		lines = lines[:max]
	}
	return strings.Join(lines, "\n")
}

func isEmoji(r rune) bool {
	return r >= 0x1F300 && r <= 0x1FAFF
}

func emojiCount(s string) int {
	n := 0
	for _, r := range s {
		if isEmoji(r) {
			n++
		}
	}
	return n
}

// limitEmojis removes leftmost emoji until at most max remain.
func limitEmojis(text string, max int) string {
	excess := emojiCount(text) - max
	if excess <= 0 {
		return text
	}
	var b strings.Builder
	for _, r := range text {
		if excess > 0 && isEmoji(r) {
			excess--
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// wrapQuotes puts the body in straight double quotes, normalizing any
// typographic quotes so the result is never doubled or mismatched.
func wrapQuotes(body string) string {
	body = strings.NewReplacer("“", "\"", "”", "\"").Replace(strings.TrimSpace(body))
	if !strings.HasPrefix(body, "\"") {
		body = "\"" + body
	}
	if !strings.HasSuffix(body, "\"") || utf8.RuneCountInString(body) == 1 {
		body += "\""
	}
	return body
}

// clampPost enforces the character budget. When the final line is a link
// line, the body is truncated instead so the link survives intact.
func clampPost(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= MaxPostRunes {
		return text
	}

	lines := strings.Split(text, "\n")
	last := lines[len(lines)-1]
	if len(lines) > 1 && (strings.Contains(last, "http://") || strings.Contains(last, "https://")) {
		budget := MaxPostRunes - (utf8.RuneCountInString(last) + 1)
		if budget < 0 {
			budget = 0
		}
		base := []rune(strings.Join(lines[:len(lines)-1], "\n"))
		if len(base) > budget {
			base = base[:budget]
		}
		out := strings.TrimSpace(strings.TrimRight(string(base), " ")) + "\n" + last
		outRunes := []rune(strings.TrimSpace(out))
		if len(outRunes) > MaxPostRunes {
			outRunes = outRunes[:MaxPostRunes]
		}
		return string(outRunes)
	}

	return strings.TrimRight(string(runes[:MaxPostRunes]), " ")
}
