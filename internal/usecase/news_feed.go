package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"newsfeed/internal/domain/model"
	"newsfeed/internal/domain/ports"
)

// ErrorMessage is shown to users for every failed fetch.
const ErrorMessage = "Failed to fetch news. Please check your connection or API key."

// ErrStopped is returned by setters once the feed has been stopped.
var ErrStopped = errors.New("news feed stopped")

// NewsFeedConfig controls the feed's defaults and timing.
type NewsFeedConfig struct {
	Locale          model.Locale
	Category        model.Category
	RefreshInterval time.Duration
	FetchTimeout    time.Duration
	FallbackURL     string
}

// NewsFeed mediates between the selected locale/category and the news
// provider. Every trigger starts a new generation; only the result of the
// latest generation is ever applied to the state.
type NewsFeed struct {
	provider ports.NewsProvider
	logger   ports.Logger
	cfg      NewsFeedConfig
	cron     *cron.Cron
	now      func() time.Time

	baseCtx    context.Context
	cancelBase context.CancelFunc
	inflight   sync.WaitGroup

	mu          sync.Mutex
	locale      model.Locale
	category    model.Category
	generation  uint64
	cancelFetch context.CancelFunc
	state       model.FeedState
	started     bool
	stopped     bool
}

// NewNewsFeed constructs a NewsFeed use case.
func NewNewsFeed(provider ports.NewsProvider, logger ports.Logger, cfg NewsFeedConfig) *NewsFeed {
	if !cfg.Locale.Valid() {
		cfg.Locale = model.LocaleEnglish
	}
	if !cfg.Category.Valid() {
		cfg.Category = model.CategoryWorld
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = 15 * time.Minute
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = time.Minute
	}
	if cfg.FallbackURL == "" {
		cfg.FallbackURL = "https://news.google.com"
	}

	baseCtx, cancel := context.WithCancel(context.Background())
	f := &NewsFeed{
		provider:   provider,
		logger:     logger,
		cfg:        cfg,
		cron:       cron.New(),
		now:        time.Now,
		baseCtx:    baseCtx,
		cancelBase: cancel,
		locale:     cfg.Locale,
		category:   cfg.Category,
	}
	f.state = model.FeedState{
		Status:    model.StatusIdle,
		Locale:    cfg.Locale,
		Direction: cfg.Locale.Direction(),
		Category:  cfg.Category,
		Articles:  []model.Article{},
		Citations: []model.Citation{},
	}
	return f
}

// Start fetches once immediately and then every RefreshInterval until Stop.
// It holds the lock until the scheduler runs, so a concurrent Stop either
// wins before anything is scheduled or stops the running scheduler.
func (f *NewsFeed) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.stopped {
		return ErrStopped
	}
	if f.started {
		return nil
	}

	spec := fmt.Sprintf("@every %s", f.cfg.RefreshInterval)
	if _, err := f.cron.AddFunc(spec, func() { f.trigger("timer") }); err != nil {
		return fmt.Errorf("schedule refresh: %w", err)
	}
	f.started = true

	f.logger.Info(ctx, "starting news feed", "interval", f.cfg.RefreshInterval.String())
	f.triggerLocked("start")
	f.cron.Start()
	return nil
}

// Stop removes the refresh timer, cancels in-flight fetches and waits for
// them to return or for ctx to expire.
func (f *NewsFeed) Stop(ctx context.Context) error {
	f.mu.Lock()
	if f.stopped {
		f.mu.Unlock()
		return nil
	}
	f.stopped = true
	f.mu.Unlock()

	cronCtx := f.cron.Stop()
	f.cancelBase()

	done := make(chan struct{})
	go func() {
		<-cronCtx.Done()
		f.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		f.logger.Info(ctx, "news feed stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Wait blocks until every fetch started so far has finished.
func (f *NewsFeed) Wait() {
	f.inflight.Wait()
}

// SetLocale switches the content language. Setting the current locale again
// does nothing.
func (f *NewsFeed) SetLocale(locale model.Locale) error {
	if !locale.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownLocale, locale)
	}

	f.mu.Lock()
	if f.stopped {
		f.mu.Unlock()
		return ErrStopped
	}
	if f.locale == locale {
		f.mu.Unlock()
		return nil
	}
	f.locale = locale
	f.state.Locale = locale
	f.state.Direction = locale.Direction()
	f.mu.Unlock()

	f.trigger("locale")
	return nil
}

// SetCategory switches the topical filter. Setting the current category
// again does nothing.
func (f *NewsFeed) SetCategory(category model.Category) error {
	if !category.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownCategory, category)
	}

	f.mu.Lock()
	if f.stopped {
		f.mu.Unlock()
		return ErrStopped
	}
	if f.category == category {
		f.mu.Unlock()
		return nil
	}
	f.category = category
	f.state.Category = category
	f.mu.Unlock()

	f.trigger("category")
	return nil
}

// Refresh re-fetches with the current locale and category.
func (f *NewsFeed) Refresh() {
	f.trigger("manual")
}

// Snapshot returns a copy of the current state.
func (f *NewsFeed) Snapshot() model.FeedState {
	f.mu.Lock()
	defer f.mu.Unlock()

	state := f.state
	state.Articles = make([]model.Article, len(f.state.Articles))
	copy(state.Articles, f.state.Articles)
	state.Citations = make([]model.Citation, len(f.state.Citations))
	copy(state.Citations, f.state.Citations)
	return state
}

// RefreshInterval reports how often the feed refreshes itself.
func (f *NewsFeed) RefreshInterval() time.Duration {
	return f.cfg.RefreshInterval
}

func (f *NewsFeed) trigger(reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggerLocked(reason)
}

// triggerLocked starts a new generation. f.mu must be held.
func (f *NewsFeed) triggerLocked(reason string) {
	if f.stopped {
		return
	}

	f.generation++
	gen := f.generation
	if f.cancelFetch != nil {
		f.cancelFetch()
	}
	ctx, cancel := context.WithTimeout(f.baseCtx, f.cfg.FetchTimeout)
	f.cancelFetch = cancel

	req := model.FeedRequest{
		Locale:   f.locale,
		Category: f.category,
		Sources:  append([]string(nil), model.SupportedSources...),
	}

	// Previous articles stay visible while loading.
	f.state.Status = model.StatusLoading
	f.state.ErrorMessage = ""
	f.state.Generation = gen

	f.inflight.Add(1)
	go func() {
		defer f.inflight.Done()
		defer cancel()
		f.fetch(ctx, gen, req, reason)
	}()
}

func (f *NewsFeed) fetch(ctx context.Context, gen uint64, req model.FeedRequest, reason string) {
	start := f.now()
	fetchID := strings.SplitN(uuid.NewString(), "-", 2)[0]

	f.logger.Info(ctx, "fetching news",
		"generation", gen,
		"fetchID", fetchID,
		"reason", reason,
		"locale", string(req.Locale),
		"category", string(req.Category))

	result, err := f.load(ctx, fetchID, req)
	if err != nil {
		if f.applyError(gen) {
			f.logger.Error(ctx, "news fetch failed",
				"generation", gen,
				"fetchID", fetchID,
				"error", err)
		} else {
			f.logger.Info(ctx, "discarded stale failure", "generation", gen, "fetchID", fetchID, "error", err)
		}
		return
	}

	if !f.applyResult(gen, result) {
		f.logger.Info(ctx, "discarded stale result", "generation", gen, "fetchID", fetchID)
		return
	}

	f.logger.Info(ctx, "news fetch completed",
		"generation", gen,
		"fetchID", fetchID,
		"articles", len(result.Articles),
		"citations", len(result.Citations),
		"duration", f.now().Sub(start))
}

func (f *NewsFeed) load(ctx context.Context, fetchID string, req model.FeedRequest) (model.FetchResult, error) {
	resp, err := f.provider.FetchNews(ctx, req)
	if err != nil {
		return model.FetchResult{}, err
	}
	if resp == nil {
		return model.FetchResult{}, fmt.Errorf("%w: empty response", ports.ErrMalformedResponse)
	}

	records, err := parseRecords(resp.Text)
	if err != nil {
		return model.FetchResult{}, err
	}

	return buildResult(fetchID, records, resp, f.cfg.FallbackURL), nil
}

func (f *NewsFeed) applyResult(gen uint64, result model.FetchResult) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.stopped || gen != f.generation {
		return false
	}

	f.state.Status = model.StatusReady
	f.state.ErrorMessage = ""
	f.state.Articles = result.Articles
	f.state.Citations = result.Citations
	f.state.UpdatedAt = f.now()
	return true
}

// applyError records the failure; articles from the last successful fetch
// remain in the state.
func (f *NewsFeed) applyError(gen uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.stopped || gen != f.generation {
		return false
	}

	f.state.Status = model.StatusError
	f.state.ErrorMessage = ErrorMessage
	return true
}
