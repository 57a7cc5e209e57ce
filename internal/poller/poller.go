package poller

import (
	"context"
	"sync"
	"time"
	"warboard/internal/clash"
	"warboard/internal/models"
	"warboard/internal/providers"
	"warboard/internal/structures"

	"github.com/roylee0704/gron"
	"go.uber.org/atomic"
)

type UpdateFunc func(snapshot *models.WarSnapshot)

type Interface interface {
	Start(ctx context.Context)
	Stop()
	Running() bool
}

// every is a gron schedule that keeps sub-second precision; gron.Every
// truncates to whole seconds.
type every time.Duration

func (e every) Next(t time.Time) time.Time {
	return t.Add(time.Duration(e))
}

// Poller asks the war API for one clan's current war immediately on Start
// and then on every interval until Stop or until the start context ends.
type Poller struct {
	tag        string
	interval   time.Duration
	fetcher    clash.WarFetcher
	onUpdate   UpdateFunc
	onNotFound func()
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface

	mu      sync.Mutex
	cron    *gron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	inTick  atomic.Bool
	running atomic.Bool
}

func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running.Load() {
		p.mu.Unlock()
		return
	}
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.running.Store(true)
	p.mu.Unlock()

	p.logger.Infof(providers.TypePoller, "Start polling %s every %s", p.tag, p.interval)
	p.tick()

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running.Load() {
		return
	}
	p.cron = gron.New()
	p.cron.AddFunc(every(p.interval), p.tick)
	p.cron.Start()

	go func(ctx context.Context) {
		<-ctx.Done()
		p.Stop()
	}(p.ctx)
}

func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running.Load() {
		return
	}
	p.running.Store(false)
	p.cancel()
	if p.cron != nil {
		p.cron.Stop()
		p.cron = nil
	}
	p.logger.Infof(providers.TypePoller, "Stopped polling %s", p.tag)
}

func (p *Poller) Running() bool {
	return p.running.Load()
}

// tick runs one poll. A tick that fires while the previous one is still
// waiting on the API is skipped.
func (p *Poller) tick() {
	if !p.inTick.CompareAndSwap(false, true) {
		p.logger.Debugf(providers.TypePoller, "Previous poll of %s still running, skipping tick", p.tag)
		return
	}
	defer p.inTick.Store(false)

	p.mu.Lock()
	ctx := p.ctx
	p.mu.Unlock()
	if ctx == nil || ctx.Err() != nil {
		return
	}

	start := time.Now()
	res := p.fetcher.GetWar(ctx, p.tag)
	p.metrics.ObservePollDuration(time.Since(start))

	if ctx.Err() != nil {
		return
	}

	switch res.Status {
	case models.FetchFound:
		p.metrics.IncPollsTotal(providers.PollFound)
		p.onUpdate(res.Snapshot)
	case models.FetchNotFound:
		p.metrics.IncPollsTotal(providers.PollNotFound)
		p.logger.Debugf(providers.TypePoller, "No war data for %s yet", p.tag)
		if p.onNotFound != nil {
			p.onNotFound()
		}
	default:
		p.metrics.IncPollsTotal(providers.PollFailed)
		p.logger.Errorf(providers.TypePoller, "Poll of %s failed (%d): %s", p.tag, res.Code, res.Reason)
	}
}

type Factory struct {
	interval time.Duration
	fetcher  clash.WarFetcher
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

type FactoryInterface interface {
	New(tag string, onUpdate UpdateFunc, onNotFound func()) Interface
}

func (f *Factory) New(tag string, onUpdate UpdateFunc, onNotFound func()) Interface {
	return &Poller{
		tag:        tag,
		interval:   f.interval,
		fetcher:    f.fetcher,
		onUpdate:   onUpdate,
		onNotFound: onNotFound,
		logger:     f.logger,
		metrics:    f.metrics,
	}
}

func NewFactory(conf *structures.Config, fetcher clash.WarFetcher, logger providers.Logger, metrics providers.MetricsProviderInterface) FactoryInterface {
	return &Factory{
		interval: conf.Poller.Interval,
		fetcher:  fetcher,
		logger:   logger,
		metrics:  metrics,
	}
}
