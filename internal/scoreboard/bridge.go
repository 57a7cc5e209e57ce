package scoreboard

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/url"
	"warboard/internal/clash"
	"warboard/internal/events"
	"warboard/internal/models"
	"warboard/internal/providers"
	"warboard/internal/services"
	"warboard/internal/structures"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

const MaxLogoSize = 2 << 20 // 2 MB

var (
	ErrScoreboardAlreadyOpen = errors.New("scoreboard is already open")
	ErrLogoTooLarge          = errors.New("logo file is too large")
)

// Session is the part of a clan session the bridge drives.
type Session interface {
	Tag() string
	MarkScoreboardOpen() bool
	MarkScoreboardClosed() bool
}

// LogoRequest carries the logo options of both sides. A nil reader means no
// file was uploaded for that side.
type LogoRequest struct {
	Tag                    string
	UseDefaultClanLogo     bool
	UseDefaultOpponentLogo bool
	ClanLogo               io.Reader
	OpponentLogo           io.Reader
}

type BridgeInterface interface {
	Open(ctx context.Context, session Session) (models.WindowSpec, error)
	Close(session Session) error
	Back(session Session) error
	UpdateLogos(ctx context.Context, req LogoRequest) (models.LogoUpdate, error)
}

type Bridge struct {
	conf      *structures.Config
	fetcher   clash.WarFetcher
	store     services.SnapshotStoreInterface
	host      WindowHost
	publisher events.Publisher
	logger    providers.Logger
}

// Open embeds the current war as JSON in the scoreboard URL and asks the
// host for the companion window. Only one scoreboard per session may be open.
func (b *Bridge) Open(ctx context.Context, session Session) (models.WindowSpec, error) {
	if !session.MarkScoreboardOpen() {
		return models.WindowSpec{}, ErrScoreboardAlreadyOpen
	}

	spec, err := b.windowSpec(ctx, session.Tag())
	if err == nil {
		err = b.host.OpenWindow(session.Tag(), spec)
	}
	if err != nil {
		session.MarkScoreboardClosed()
		return models.WindowSpec{}, fmt.Errorf("open scoreboard for %s: %w", session.Tag(), err)
	}

	b.logger.Infof(providers.TypeBridge, "Scoreboard opened for %s", session.Tag())
	return spec, nil
}

func (b *Bridge) windowSpec(ctx context.Context, tag string) (models.WindowSpec, error) {
	snapshot := b.currentSnapshot(ctx, tag)
	data, err := json.Marshal(snapshot)
	if err != nil {
		return models.WindowSpec{}, fmt.Errorf("encode war data: %w", err)
	}

	sc := b.conf.Scoreboard
	return models.WindowSpec{
		URL:         sc.Page + "?war_data=" + url.QueryEscape(string(data)),
		Name:        sc.Name,
		Width:       sc.Width,
		Height:      sc.Height,
		Transparent: sc.Transparent,
		Decorated:   sc.Decorated,
	}, nil
}

// currentSnapshot prefers the cached poll result and falls back to the API.
// A nil result is embedded as JSON null.
func (b *Bridge) currentSnapshot(ctx context.Context, tag string) *models.WarSnapshot {
	if snapshot, ok := b.store.Get(tag); ok {
		return snapshot
	}

	res := b.fetcher.GetWar(ctx, tag)
	switch res.Status {
	case models.FetchFound:
		if err := b.store.Put(tag, res.Snapshot); err != nil {
			b.logger.Warnf(providers.TypeBridge, "Unable to cache snapshot for %s: %s", tag, err)
		}
		return res.Snapshot
	case models.FetchNotFound:
		return nil
	default:
		b.logger.Errorf(providers.TypeBridge, "Fetching war for scoreboard of %s failed (%d): %s", tag, res.Code, res.Reason)
		return nil
	}
}

func (b *Bridge) Close(session Session) error {
	if !session.MarkScoreboardClosed() {
		return nil
	}
	if err := b.host.CloseWindow(session.Tag(), b.conf.Scoreboard.Name); err != nil {
		return fmt.Errorf("close scoreboard for %s: %w", session.Tag(), err)
	}
	b.logger.Infof(providers.TypeBridge, "Scoreboard closed for %s", session.Tag())
	return nil
}

// Back restores the main window to its search size and closes the scoreboard.
func (b *Bridge) Back(session Session) error {
	size := models.WindowSize{Width: b.conf.MainWindow.Width, Height: b.conf.MainWindow.Height}
	if err := b.host.AdjustWindowSize(session.Tag(), size); err != nil {
		return fmt.Errorf("resize main window: %w", err)
	}
	return b.Close(session)
}

// UpdateLogos reads both optional uploads concurrently and publishes a single
// logoUpdate once both are done. Nothing is published if either read fails.
func (b *Bridge) UpdateLogos(ctx context.Context, req LogoRequest) (models.LogoUpdate, error) {
	update := models.LogoUpdate{
		UseDefaultClanLogo:     req.UseDefaultClanLogo,
		UseDefaultOpponentLogo: req.UseDefaultOpponentLogo,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		update.ClanLogo, err = readLogo(gctx, req.ClanLogo)
		if err != nil {
			return fmt.Errorf("clan logo: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		update.OpponentLogo, err = readLogo(gctx, req.OpponentLogo)
		if err != nil {
			return fmt.Errorf("opponent logo: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.LogoUpdate{}, err
	}

	b.publisher.Publish(models.Event{Name: models.EventLogoUpdate, Tag: req.Tag, Payload: update})
	b.logger.Infof(providers.TypeBridge, "Logo update published (clan file: %t, opponent file: %t)", update.ClanLogo != nil, update.OpponentLogo != nil)
	return update, nil
}

func readLogo(ctx context.Context, r io.Reader) (*string, error) {
	if r == nil {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(io.LimitReader(r, MaxLogoSize+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > MaxLogoSize {
		return nil, ErrLogoTooLarge
	}
	encoded := base64.StdEncoding.EncodeToString(raw)
	return &encoded, nil
}

func NewBridge(conf *structures.Config, fetcher clash.WarFetcher, store services.SnapshotStoreInterface, host WindowHost, publisher events.Publisher, logger providers.Logger) BridgeInterface {
	return &Bridge{
		conf:      conf,
		fetcher:   fetcher,
		store:     store,
		host:      host,
		publisher: publisher,
		logger:    logger,
	}
}
