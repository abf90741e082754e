// Package keepalive периодически опрашивает /ping основного сервиса,
// чтобы хостинг не усыплял инстанс. Запускается отдельным бинарём.
package keepalive

import (
	"context"
	"fmt"
	"time"

	"github.com/DRSN-tech/resale-backend/internal/cfg"
	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/DRSN-tech/resale-backend/pkg/jitter"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
	"github.com/go-resty/resty/v2"
)

type Pinger struct {
	client *resty.Client
	cfg    *cfg.KeepAliveCfg
	logger logger.Logger
}

func NewPinger(cfg *cfg.KeepAliveCfg, logger logger.Logger) *Pinger {
	return &Pinger{
		client: resty.New().SetTimeout(cfg.Timeout),
		cfg:    cfg,
		logger: logger,
	}
}

// Run пингует сразу и затем раз в Interval, пока не отменён ctx.
func (p *Pinger) Run(ctx context.Context) error {
	p.logger.Infof("keep-alive started. url: %s, interval: %s", p.cfg.URL, p.cfg.Interval)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		p.Tick(ctx)

		select {
		case <-ctx.Done():
			p.logger.Infof("keep-alive stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// Tick делает один пинг и при неудаче один повтор через RetryDelay с джиттером.
func (p *Pinger) Tick(ctx context.Context) {
	err := p.Ping(ctx)
	if err == nil {
		return
	}

	delay := jitter.Duration(p.cfg.RetryDelay, jitter.DefaultJitter)
	p.logger.Warnf("keep-alive ping failed, retrying in %s: %v", delay, err)

	select {
	case <-ctx.Done():
		return
	case <-time.After(delay):
	}

	if err := p.Ping(ctx); err != nil {
		p.logger.Errorf(err, "keep-alive retry failed")
	}
}

func (p *Pinger) Ping(ctx context.Context) error {
	const op = "Pinger.Ping"

	resp, err := p.client.R().SetContext(ctx).Get(p.cfg.URL)
	if err != nil {
		return e.Wrap(op, err)
	}
	if !resp.IsSuccess() {
		return e.Wrap(op, fmt.Errorf("unexpected status %d", resp.StatusCode()))
	}

	p.logger.Debugf("keep-alive ping ok: %d", resp.StatusCode())
	return nil
}
