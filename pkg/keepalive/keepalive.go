// Package keepalive pings the site's own public URL on a schedule so that
// hosts which idle inactive instances keep it warm.
package keepalive

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/robfig/cron/v3"
)

// RequestTimeout bounds a single ping.
const RequestTimeout = 10 * time.Second

type Pinger struct {
	url    string
	client *http.Client
	cron   *cron.Cron
	log    *slog.Logger
}

// New validates target and schedule ("@every 14m" or a five-field cron
// expression). Nothing runs until Start.
func New(target, schedule string, log *slog.Logger) (*Pinger, error) {
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid keepalive url %q", target)
	}

	p := &Pinger{
		url:    u.String(),
		client: &http.Client{Timeout: RequestTimeout},
		log:    log,
	}
	cl := cronLogger{log: log}
	p.cron = cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.SkipIfStillRunning(cl)),
	)

	if _, err := p.cron.AddFunc(schedule, p.tick); err != nil {
		return nil, fmt.Errorf("invalid keepalive schedule %q: %w", schedule, err)
	}
	return p, nil
}

func (p *Pinger) Start() {
	p.cron.Start()
	p.log.Info("keepalive started", slog.String("url", p.url))
}

// Stop halts the schedule and waits for a running ping, or until ctx is done.
func (p *Pinger) Stop(ctx context.Context) {
	select {
	case <-p.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Ping issues one GET and reports the status code. Non-2xx is an error.
func (p *Pinger) Ping(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", "logified-keepalive")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return resp.StatusCode, nil
}

func (p *Pinger) tick() {
	status, err := p.Ping(context.Background())
	if err != nil {
		p.log.Warn("keepalive ping failed", slog.String("url", p.url), slog.Int("status", status), slog.String("error", err.Error()))
		return
	}
	p.log.Info("keepalive ping", slog.String("url", p.url), slog.Int("status", status))
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
