package digest

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/rss-digest/app/database"
	"github.com/lysyi3m/rss-digest/app/metrics"
	"github.com/lysyi3m/rss-digest/app/subscriptions"
	"github.com/lysyi3m/rss-digest/app/tasks"
	"github.com/samber/lo"
)

const (
	DefaultMethod            = "stdout"
	DefaultTemplate          = "digest.txt"
	DefaultDateFormat        = "Monday, 2 January 2006"
	DefaultTimeFormat        = "15:04"
	DefaultUncategorizedName = "Uncategorized"
)

type Stage string

const (
	StageSynced     Stage = "synced"
	StageFetched    Stage = "fetched"
	StageClassified Stage = "classified"
	StageRendered   Stage = "rendered"
	StageSent       Stage = "sent"
	StageCommitted  Stage = "committed"
	StageAborted    Stage = "aborted"
)

type RunOptions struct {
	// Save marks the digested entries read and records the digest time.
	Save bool
	// Template and Method override the profile's template and
	// output_method settings.
	Template string
	Method   string
	Now      func() time.Time
}

type Assembler struct {
	renderer Renderer
	senders  Senders
	logger   *slog.Logger
}

func NewAssembler(renderer Renderer, senders Senders, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		renderer: renderer,
		senders:  senders,
		logger:   logger,
	}
}

func (a *Assembler) transition(logger *slog.Logger, stage Stage, args ...any) {
	metrics.DigestStages.WithLabelValues(string(stage)).Inc()
	logger.Debug("Digest stage reached", append([]any{"stage", stage}, args...)...)
}

// Run assembles, renders and sends a digest for target. Nothing is
// committed unless rendering and sending succeed and opts.Save is set.
func (a *Assembler) Run(ctx context.Context, target Target, opts RunOptions) (result *Context, err error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	started := time.Now()
	logger := a.logger.With("profile", target.Name())

	defer func() {
		if err != nil {
			a.transition(logger, StageAborted, "error", err)
		}
	}()

	settings := target.Settings()

	method := cmp.Or(opts.Method, stringSetting(settings, "output_method"), DefaultMethod)
	sender, err := a.senders.Sender(method)
	if err != nil {
		return nil, err
	}
	templateID := cmp.Or(opts.Template, stringSetting(settings, "template"), DefaultTemplate)

	store, err := target.EntryStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open entry store: %w", err)
	}

	c, unread, err := a.assemble(ctx, target, store, logger, now().UTC())
	if err != nil {
		return nil, err
	}

	body, err := a.renderer.Render(ctx, templateID, c)
	if err != nil {
		return nil, fmt.Errorf("failed to render digest: %w", err)
	}
	a.transition(logger, StageRendered, "template", templateID, "bytes", len(body))

	name := cmp.Or(c.Config.UserName, c.ProfileName)
	msg := Message{
		Body:          body,
		Subject:       subject(name, c.DateTime.Date(c.UpdateTime)),
		ContentType:   a.renderer.ContentType(templateID),
		Recipient:     c.Config.Email,
		RecipientName: name,
	}

	if err := sender.Send(ctx, msg, settings); err != nil {
		return nil, fmt.Errorf("failed to send digest via %s: %w", method, err)
	}
	metrics.DigestsSent.WithLabelValues(method).Inc()
	a.transition(logger, StageSent, "method", method)

	if opts.Save {
		entries := lo.Flatten(lo.Values(unread))
		if err := store.MarkRead(ctx, entries); err != nil {
			return nil, fmt.Errorf("failed to mark entries read: %w", err)
		}
		if err := target.SetLastDigest(c.UpdateTime); err != nil {
			return nil, fmt.Errorf("failed to record digest time: %w", err)
		}
		a.transition(logger, StageCommitted, "entries", len(entries))
	}

	metrics.DigestDuration.Observe(time.Since(started).Seconds())

	logger.Info("Digest sent",
		"method", method,
		"template", templateID,
		"updated_feeds", c.UpdatedFeedsCount(),
		"entries", c.UpdatedEntriesCount(),
		"errors", c.ErrorFeedsCount(),
		"saved", opts.Save,
		"duration", time.Since(started))

	return c, nil
}

// Preview assembles and renders a digest without sending it or marking
// anything read.
func (a *Assembler) Preview(ctx context.Context, target Target, templateID string) (string, *Context, error) {
	logger := a.logger.With("profile", target.Name(), "preview", true)
	templateID = cmp.Or(templateID, stringSetting(target.Settings(), "template"), DefaultTemplate)

	store, err := target.EntryStore(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open entry store: %w", err)
	}

	c, _, err := a.assemble(ctx, target, store, logger, time.Now().UTC())
	if err != nil {
		return "", nil, err
	}

	body, err := a.renderer.Render(ctx, templateID, c)
	if err != nil {
		return "", nil, fmt.Errorf("failed to render digest: %w", err)
	}
	return body, c, nil
}

func (a *Assembler) assemble(ctx context.Context, target Target, store EntryStore, logger *slog.Logger, now time.Time) (*Context, map[string][]database.Entry, error) {
	settings := target.Settings()
	list := target.Subscriptions()

	dateTime, err := dateTimeHelper(settings)
	if err != nil {
		return nil, nil, err
	}

	lastDigest, err := target.LastDigest()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read last digest time: %w", err)
	}

	added, removed, err := SyncStore(ctx, store, list)
	if err != nil {
		return nil, nil, err
	}
	a.transition(logger, StageSynced, "added", len(added), "removed", len(removed))

	outcomes, err := store.UpdateAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update feeds: %w", err)
	}
	a.transition(logger, StageFetched, "feeds", len(outcomes))

	unread, err := store.UnreadEntries(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list unread entries: %w", err)
	}

	config := configContext(settings)

	categories, err := a.classify(ctx, store, list, config, outcomes, unread)
	if err != nil {
		return nil, nil, err
	}
	a.transition(logger, StageClassified, "categories", len(categories))

	c := &Context{
		ProfileName:          target.Name(),
		UpdateTime:           now,
		LastUpdate:           lastDigest,
		Categories:           categories,
		Config:               config,
		SubscribedFeedsCount: list.Len(),
		DateTime:             dateTime,
	}

	return c, unread, nil
}

// classify places every subscribed feed in exactly one of the updated,
// error or other buckets of its category.
func (a *Assembler) classify(ctx context.Context, store EntryStore, list *subscriptions.List, config ConfigContext, outcomes []tasks.Outcome, unread map[string][]database.Entry) ([]CategoryResult, error) {
	statuses := lo.SliceToMap(outcomes, func(o tasks.Outcome) (string, tasks.Status) {
		return o.URL, o.Status
	})

	categories := make([]CategoryResult, 0, len(list.CategoryNames()))

	for _, category := range list.Categories() {
		result := CategoryResult{
			Name:        category.Name,
			DisplayName: category.Name,
			MaxVisible:  config.MaxFeeds,
		}
		if category.IsUncategorized() {
			result.DisplayName = config.UncategorizedName
		}

		for _, f := range category.Feeds {
			entries := unread[f.XMLURL]
			status, checked := statuses[f.XMLURL]

			switch {
			case len(entries) > 0:
				fr, err := feedResult(ctx, store, f, entries, config.MaxEntries)
				if err != nil {
					return nil, err
				}
				result.UpdatedFeeds = append(result.UpdatedFeeds, fr)
			case checked && status == tasks.StatusError:
				fr, err := feedResult(ctx, store, f, nil, config.MaxEntries)
				if err != nil {
					return nil, err
				}
				result.ErrorFeeds = append(result.ErrorFeeds, fr)
			case checked:
				fr, err := feedResult(ctx, store, f, nil, config.MaxEntries)
				if err != nil {
					return nil, err
				}
				result.OtherFeeds = append(result.OtherFeeds, fr)
			default:
				return nil, &UnclassifiedFeedError{URL: f.XMLURL, Category: f.Category}
			}
		}

		categories = append(categories, result)
	}

	return categories, nil
}

func feedResult(ctx context.Context, store EntryStore, f subscriptions.Feed, entries []database.Entry, maxEntries int) (FeedResult, error) {
	stored, err := store.Feed(ctx, f.XMLURL)
	if err != nil {
		return FeedResult{}, fmt.Errorf("failed to load feed %s: %w", f.XMLURL, err)
	}

	result := FeedResult{
		URL:        f.XMLURL,
		Title:      f.Title,
		Category:   f.Category,
		Entries:    lo.Map(entries, func(e database.Entry, _ int) EntryResult { return newEntryResult(e) }),
		MaxVisible: maxEntries,
	}

	if stored != nil {
		result.Title = cmp.Or(f.Title, stored.Title)
		result.Link = stored.Link
		result.Author = stored.Author
		result.Updated = stored.UpdatedAt.Ptr()
		result.LastRetrieved = stored.LastRetrievedAt.Ptr()
		result.LastError = stored.LastError
	}
	result.Title = cmp.Or(result.Title, f.XMLURL)

	return result, nil
}

func configContext(settings Settings) ConfigContext {
	return ConfigContext{
		UserName:          stringSetting(settings, "name"),
		Email:             stringSetting(settings, "email"),
		MaxEntries:        intSetting(settings, "max_displayed_entries"),
		MaxFeeds:          intSetting(settings, "max_displayed_feeds"),
		UncategorizedName: cmp.Or(stringSetting(settings, "uncategorized_name"), DefaultUncategorizedName),
		Language:          stringSetting(settings, "language"),
	}
}

func dateTimeHelper(settings Settings) (DateTimeHelper, error) {
	location := time.UTC
	if tz := stringSetting(settings, "timezone"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return DateTimeHelper{}, fmt.Errorf("%w: unknown timezone %q", ErrBadConfiguration, tz)
		}
		location = loc
	}

	return DateTimeHelper{
		Location:   location,
		DateFormat: cmp.Or(stringSetting(settings, "date_format"), DefaultDateFormat),
		TimeFormat: cmp.Or(stringSetting(settings, "time_format"), DefaultTimeFormat),
	}, nil
}

func stringSetting(settings Settings, key string) string {
	v, _ := settings.String(key)
	return v
}

func intSetting(settings Settings, key string) int {
	v, _ := settings.Int(key)
	return v
}
