// Package orchestrator owns the bot's run flows: trend windows, news caching
// and news posting. Each flow is a single pass with no retries — a failed
// publish ends the run and records nothing.
package orchestrator

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/adivyas/khabri/internal/compose"
	"github.com/adivyas/khabri/internal/config"
	"github.com/adivyas/khabri/internal/domain"
	"github.com/adivyas/khabri/internal/gate"
	"github.com/adivyas/khabri/internal/safety"
	"github.com/adivyas/khabri/internal/sources"
	"github.com/adivyas/khabri/internal/store"
)

// Orchestrator wires the composer, gate, store and publisher into the three
// run flows the CLI exposes.
type Orchestrator struct {
	cfg      *config.Config
	store    *store.Store
	log      *log.Logger
	composer *compose.Composer
	gate     *gate.Gate

	publisher domain.Publisher
	renderer  domain.Renderer
	trending  sources.Provider
	news      []sources.Provider
}

// New builds an Orchestrator. renderer may be nil (memes disabled); publisher
// may be nil only in test mode.
func New(cfg *config.Config, st *store.Store, logger *log.Logger,
	composer *compose.Composer, g *gate.Gate,
	publisher domain.Publisher, renderer domain.Renderer,
	trending sources.Provider, news []sources.Provider) *Orchestrator {
	return &Orchestrator{
		cfg:       cfg,
		store:     st,
		log:       logger,
		composer:  composer,
		gate:      g,
		publisher: publisher,
		renderer:  renderer,
		trending:  trending,
		news:      news,
	}
}

// RunTrendWindow fetches the current trending topics and posts up to
// TrendsPerWindow of them in funny mode.
func (o *Orchestrator) RunTrendWindow() error {
	logger := o.log.With("run", uuid.NewString(), "flow", "trend")

	items, err := o.trending.Fetch(o.cfg.TrendsPerWindow)
	if err != nil {
		return fmt.Errorf("fetch trends: %w", err)
	}
	if len(items) == 0 {
		logger.Warn("no trending topics")
		return nil
	}

	for _, it := range items {
		cand := domain.Candidate{Title: it.Title, Desc: it.Desc, URL: it.URL, Source: o.trending.Name()}
		if _, err := o.postOne(logger, cand); err != nil {
			return err
		}
	}
	return nil
}

// CacheNews fetches headlines from the first working news provider and stages
// them in the cache table. Already-cached items are ignored.
func (o *Orchestrator) CacheNews() error {
	logger := o.log.With("run", uuid.NewString(), "flow", "cache-news")

	limit := o.cfg.News.GNewsLimit
	if o.cfg.News.NewsAPILimit > limit {
		limit = o.cfg.News.NewsAPILimit
	}
	items, name, err := sources.FetchFirst(o.news, limit, logger)
	if err != nil {
		return fmt.Errorf("fetch news: %w", err)
	}

	added := 0
	for _, it := range items {
		item := domain.CacheItem{
			Hash:      store.Fingerprint(it.Title, it.Desc, it.URL),
			Title:     it.Title,
			Desc:      it.Desc,
			URL:       it.URL,
			Source:    name,
			CreatedAt: time.Now().UTC(),
		}
		if err := o.store.AddCacheItem(item); err != nil {
			return fmt.Errorf("cache item: %w", err)
		}
		added++
	}
	logger.Info("cached headlines", "provider", name, "count", added)
	return nil
}

// PostNews walks the cache newest first and publishes the first item whose
// composed text has not been posted before. One publish per run; a quota
// denial ends the run like a publish does.
func (o *Orchestrator) PostNews() error {
	logger := o.log.With("run", uuid.NewString(), "flow", "news")

	items, err := o.store.RecentCacheItems(50)
	if err != nil {
		return fmt.Errorf("read cache: %w", err)
	}
	for _, it := range items {
		cand := domain.Candidate{Title: it.Title, Desc: it.Desc, URL: it.URL, Source: it.Source}
		verdict, err := o.postOne(logger, cand)
		if err != nil {
			return err
		}
		// Duplicates and unpostable items fall through to the next cached
		// item; anything else (published, quota denied) ends the run.
		if verdict != gate.DeniedDuplicate && verdict != "" {
			return nil
		}
	}
	logger.Warn("no unposted cache items")
	return nil
}

// Stats returns today's and this month's post counts.
func (o *Orchestrator) Stats() (daily, monthly int, err error) {
	return o.gate.Counts()
}

// postOne composes, gates and publishes a single candidate. The dedup
// fingerprint is taken over the final composed text plus origin, so two
// headlines that render to the same post collapse to one. A denied verdict is
// logged and returned, not an error; a publish failure is an error and leaves
// no history row.
func (o *Orchestrator) postOne(logger *log.Logger, cand domain.Candidate) (gate.Verdict, error) {
	core := o.composer.TranslateToHindi(cand.Topic())
	sensitive := safety.IsSensitive(core)

	hashtagFrom := ""
	if o.cfg.HashtagsEnabled && !(sensitive && o.cfg.DisableTagsOnHeavy) {
		hashtagFrom = cand.Title
	}

	mode := o.composer.ResolveMode(domain.ModeFunny, sensitive)

	text := o.composer.MakePost(core, cand.URL, mode, hashtagFrom)
	if text == compose.EmptyTopicReply {
		logger.Warn("empty topic, skipped", "source", cand.Source)
		return "", nil
	}

	hash := store.Fingerprint(text, cand.URL, cand.Source)
	verdict, err := o.gate.Check(hash)
	if err != nil {
		return "", fmt.Errorf("gate: %w", err)
	}
	if verdict.Denied() {
		logger.Info("post blocked", "verdict", string(verdict), "source", cand.Source)
		return verdict, nil
	}

	mediaPath, mediaHash := "", ""
	if o.cfg.UseMemes && o.renderer != nil && !(sensitive && o.cfg.AvoidSensitiveHumor) {
		path, h, err := o.renderer.Render(text)
		if err != nil {
			logger.Warn("meme render failed, posting text only", "err", err)
		} else {
			mediaPath, mediaHash = path, h
		}
	}

	extID := "dry-run"
	if o.cfg.TestMode {
		logger.Info("test mode, publish skipped", "chars", utf8.RuneCountInString(text), "media", mediaPath != "")
	} else {
		if mediaPath != "" {
			extID, err = o.publisher.PostTextWithMedia(text, mediaPath)
		} else {
			extID, err = o.publisher.PostText(text)
		}
		if err != nil {
			return "", fmt.Errorf("publish: %w", err)
		}
	}

	rec := domain.PostRecord{
		Hash:       hash,
		Text:       text,
		Source:     cand.Source,
		URL:        cand.URL,
		MediaHash:  mediaHash,
		PostedAt:   time.Now().UTC(),
		ExternalID: extID,
	}
	if err := o.store.MarkPosted(rec); err != nil {
		return "", fmt.Errorf("record post: %w", err)
	}
	logger.Info("posted", "id", extID, "source", cand.Source, "mode", string(mode), "sensitive", sensitive)
	return gate.Allowed, nil
}
