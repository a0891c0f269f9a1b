package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/sceneflow"
	"github.com/aretw0/sceneflow/internal/config"
	"github.com/aretw0/sceneflow/pkg/adapters/audio"
	httpAdapter "github.com/aretw0/sceneflow/pkg/adapters/http"
	mqttAdapter "github.com/aretw0/sceneflow/pkg/adapters/mqtt"
	redisAdapter "github.com/aretw0/sceneflow/pkg/adapters/redis"
	"github.com/aretw0/sceneflow/pkg/adapters/terminal"
	"github.com/aretw0/sceneflow/pkg/domain"
	"github.com/aretw0/sceneflow/pkg/observability"
	"github.com/aretw0/sceneflow/pkg/ports"
	"github.com/aretw0/sceneflow/pkg/runner"
	"github.com/gopxl/beep"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 5 * time.Second

var errNotRunning = errors.New("no scene is running")

// live points at the director of the current run so that surfaces opened once
// keep answering across catalog reloads.
type live struct {
	director atomic.Pointer[runner.Director]
}

func (l *live) Snapshot() domain.Snapshot {
	if d := l.director.Load(); d != nil {
		return d.Snapshot()
	}
	return domain.Snapshot{}
}

func (l *live) History() []string {
	if d := l.director.Load(); d != nil {
		return d.History()
	}
	return nil
}

func (l *live) Inspect() ([]domain.FlowConfig, error) {
	d := l.director.Load()
	if d == nil {
		return nil, errNotRunning
	}
	return d.Engine().Inspect()
}

// surfaces are the long-lived inputs and outputs of the host.
type surfaces struct {
	logger   *slog.Logger
	metrics  *observability.Metrics
	registry *prometheus.Registry
	live     *live

	screen *terminal.Screen
	lines  *runner.LineInput
	music  *audio.Music
	api    *httpAdapter.Server
	redis  *redisAdapter.Adapter
	remote *redisAdapter.Input
	mqtt   *mqttAdapter.Client

	closers  []func()
	quit     chan struct{}
	quitOnce sync.Once
}

// openSurfaces opens every surface the configuration enables. Optional
// hardware (speaker) degrades to a warning; remote services configured
// explicitly are required.
func openSurfaces(ctx context.Context, cfg config.Config, opts RunOptions, logger *slog.Logger) (_ *surfaces, err error) {
	s := &surfaces{
		logger:   logger,
		metrics:  observability.NewMetrics(),
		registry: prometheus.NewRegistry(),
		live:     &live{},
		quit:     make(chan struct{}),
	}
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	if err := s.metrics.Register(s.registry); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	s.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if opts.Headless {
		s.openLines(ctx, opts)
	} else if err := s.openScreen(); err != nil {
		return nil, err
	}

	if cfg.Audio.Enabled {
		s.openAudio(cfg)
	}
	if cfg.HTTP.Addr != "" {
		s.openHTTP(cfg)
	}
	if cfg.Redis.Addr != "" {
		if err := s.openRedis(ctx, cfg); err != nil {
			return nil, err
		}
	}
	if cfg.MQTT.Broker != "" {
		if err := s.openMQTT(cfg); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *surfaces) openLines(ctx context.Context, opts RunOptions) {
	s.lines = runner.NewLineInput(opts.Stdin, opts.Stdout)
	go func() {
		if err := s.lines.Listen(ctx); err != nil && !isInterrupted(err) {
			s.logger.Warn("stdin closed", "err", err)
		}
	}()
}

func (s *surfaces) openScreen() error {
	screen, err := terminal.Open()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	s.screen = screen
	s.closers = append(s.closers, screen.Close)

	go screen.Listen()
	go func() {
		<-screen.Quit()
		s.requestQuit()
	}()
	return nil
}

func (s *surfaces) openAudio(cfg config.Config) {
	music := audio.New(
		audio.WithSampleRate(beep.SampleRate(cfg.Audio.SampleRate)),
		audio.WithLogger(s.logger),
	)
	if err := music.Start(); err != nil {
		s.logger.Warn("audio disabled", "err", err)
		return
	}
	s.music = music
	s.closers = append(s.closers, music.Close)
}

func (s *surfaces) openHTTP(cfg config.Config) {
	s.api = httpAdapter.NewServer(s.live, s.live,
		httpAdapter.WithGatherer(s.registry),
		httpAdapter.WithLogger(s.logger),
	)
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           s.api.Handler(),
		ReadHeaderTimeout: shutdownTimeout,
	}

	go func() {
		s.logger.Info("operator api listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("operator api stopped", "err", err)
		}
	}()

	s.closers = append(s.closers, func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Warn("graceful shutdown did not complete", "err", err)
			srv.Close()
		}
	})
}

func (s *surfaces) openRedis(ctx context.Context, cfg config.Config) error {
	ttl := cfg.Redis.StatusTTL
	if ttl == 0 {
		ttl = redisAdapter.DefaultStatusTTL
	}

	a, err := redisAdapter.Connect(ctx, cfg.Redis.Addr,
		redisAdapter.WithPrefix(cfg.Redis.Prefix),
		redisAdapter.WithStatusTTL(ttl),
		redisAdapter.WithLogger(s.logger),
	)
	if err != nil {
		return err
	}
	s.redis = a
	s.closers = append(s.closers, func() { a.Close() })

	lease, err := a.Acquire(ctx, holderName(), ttl)
	if err != nil {
		return err
	}
	s.closers = append(s.closers, func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		lease.Release(ctx)
	})
	go lease.Keep(ctx, func(err error) {
		s.logger.Error("installation lease lost", "err", err)
		s.requestQuit()
	})

	s.remote = a.Input()
	go s.remote.Listen(ctx, redisAdapter.DefaultPollInterval)
	return nil
}

func (s *surfaces) openMQTT(cfg config.Config) error {
	c, err := mqttAdapter.Connect(mqttAdapter.Config{
		Broker:      cfg.MQTT.Broker,
		ClientID:    cfg.MQTT.ClientID,
		TopicPrefix: cfg.MQTT.TopicPrefix,
	}, s.logger)
	if err != nil {
		return err
	}
	s.mqtt = c
	s.closers = append(s.closers, c.Close)
	return nil
}

// engineOptions plugs the surfaces into a fresh engine.
func (s *surfaces) engineOptions() []sceneflow.Option {
	opts := []sceneflow.Option{
		sceneflow.WithLifecycleHooks(s.metrics.Hooks()),
		sceneflow.WithLifecycleHooks(observability.AuditHooks(s.logger)),
	}
	if s.music != nil {
		opts = append(opts,
			sceneflow.WithLifecycleHooks(s.music.Hooks()),
			sceneflow.WithVolumeOutput(s.music),
		)
	}
	return opts
}

// runnerOptions routes every input into the loop and every snapshot out of it.
func (s *surfaces) runnerOptions(cfg config.Config) []runner.Option {
	var inputs []ports.InputSource
	presenters := []ports.Presenter{s.metrics}
	var publishers []ports.StatusPublisher

	if s.screen != nil {
		inputs = append(inputs, s.screen)
		presenters = append(presenters, s.screen)
	}
	if s.lines != nil {
		inputs = append(inputs, s.lines)
	}
	if s.api != nil {
		inputs = append(inputs, s.api)
		publishers = append(publishers, s.api)
	}
	if s.remote != nil {
		inputs = append(inputs, s.remote)
		publishers = append(publishers, s.redis)
	}
	if s.mqtt != nil {
		inputs = append(inputs, s.mqtt.Input())
		publishers = append(publishers, s.mqtt)
	}

	opts := []runner.Option{
		runner.WithLogger(s.logger),
		runner.WithInput(runner.CombineInputs(inputs...)),
		runner.WithPresenter(runner.Presenters(presenters...)),
		runner.WithTickRate(cfg.TickRate),
		runner.WithQuit(s.quit),
	}
	if len(publishers) > 0 {
		opts = append(opts, runner.WithStatusPublisher(runner.Publishers(publishers...), runner.DefaultPublishInterval))
	}
	return opts
}

// bind makes director the one answering status requests.
func (s *surfaces) bind(d *runner.Director) {
	s.live.director.Store(d)
	if s.screen != nil {
		s.screen.SetCatalog(d.Engine().Catalog())
	}
}

func (s *surfaces) requestQuit() {
	s.quitOnce.Do(func() { close(s.quit) })
}

// Close releases the surfaces in reverse opening order.
func (s *surfaces) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

func holderName() string {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return fmt.Sprintf("%s/%d", host, os.Getpid())
}
