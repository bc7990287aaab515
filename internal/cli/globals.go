// Package cli implements the rulo command line: calculations run locally,
// ledger commands talk to the configured database.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/arbitrage"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/cache"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/config"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/db"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/logger"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/notify"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/output"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/repository"
	gormrepository "github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/repository/gorm"
	"github.com/Alvaro-gonzalez05/ControlDeMovimientos/internal/service"
)

const defaultConfigPath = "config/config.yaml"

// Globals are the flags shared by every command and the streams they use.
type Globals struct {
	ConfigPath string
	EnvOnly    bool
	Output     string
	Verbose    bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Repo replaces the configured database when set.
	Repo repository.MovementRepository
}

func NewGlobals() *Globals {
	path := os.Getenv("RULO_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}
	return &Globals{
		ConfigPath: path,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

func (g *Globals) Register(f *flag.FlagSet) {
	f.StringVar(&g.ConfigPath, "config", g.ConfigPath, "Path to the YAML config file (env RULO_CONFIG)")
	f.BoolVar(&g.EnvOnly, "env-only", g.EnvOnly, "Ignore the config file and read RULO_* variables only")
	f.StringVar(&g.Output, "o", "markdown", "Output format: markdown, json or plain")
	f.BoolVar(&g.Verbose, "v", false, "Log debug output to stderr")
}

// Commands returns every rulo command bound to g.
func Commands(g *Globals) []subcommands.Command {
	return []subcommands.Command{
		&calcCmd{g: g},
		&simulateCmd{g: g},
		&addCmd{g: g},
		&listCmd{g: g},
		&deleteCmd{g: g},
		&summaryCmd{g: g},
		&reinvestCmd{g: g},
	}
}

func (g *Globals) write(v any, md string) subcommands.ExitStatus {
	format, err := output.ParseFormat(g.Output)
	if err != nil {
		return g.usage(err)
	}
	if err := output.Write(g.Stdout, format, v, md); err != nil {
		return g.fail(err)
	}
	return subcommands.ExitSuccess
}

func (g *Globals) fail(err error) subcommands.ExitStatus {
	if errors.Is(err, arbitrage.ErrInvalidInput) {
		return g.usage(err)
	}
	if errors.Is(err, repository.ErrStore) {
		fmt.Fprintf(g.Stderr, "Error: the movement store failed: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(g.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

func (g *Globals) usage(err error) subcommands.ExitStatus {
	fmt.Fprintf(g.Stderr, "Error: %v\n", err)
	return subcommands.ExitUsageError
}

// loadConfig reads the config file when it exists and falls back to
// environment variables otherwise.
func (g *Globals) loadConfig() (config.Config, error) {
	envOnly := g.EnvOnly
	if !envOnly {
		if _, err := os.Stat(g.ConfigPath); errors.Is(err, fs.ErrNotExist) {
			envOnly = true
		}
	}
	return config.Load(g.ConfigPath, envOnly)
}

func (g *Globals) logger(cfg config.LogConfig) *zap.Logger {
	cfg.Output = "stderr"
	cfg.Level = "warn"
	if g.Verbose {
		cfg.Level = "debug"
	}
	l, err := logger.New(cfg)
	if err != nil {
		return zap.NewNop()
	}
	return l
}

type ledger struct {
	Movements *service.MovementService
	close     func()
}

func (l *ledger) Close() {
	if l != nil && l.close != nil {
		l.close()
	}
}

// openLedger wires the movement service the same way the server does.
func (g *Globals) openLedger(ctx context.Context) (*ledger, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := g.logger(cfg.Log)
	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		loc = time.Local
	}
	notifiers := notify.Multi{
		&notify.WebhookNotifier{
			URL:     cfg.Notify.WebhookURL,
			Project: cfg.Notify.Project,
		},
	}
	svc := &service.MovementService{
		Repo:       g.Repo,
		Logger:     log,
		Location:   loc,
		SummaryTTL: cfg.Cache.SummaryTTL,
	}
	closers := []func(){func() { _ = log.Sync() }}
	if svc.Repo == nil {
		conn, err := db.Open(cfg.DB)
		if err != nil {
			return nil, repository.Wrap("open database", err)
		}
		closers = append(closers, func() { _ = db.Close(conn) })
		if err := conn.SQL.PingContext(ctx); err != nil {
			_ = db.Close(conn)
			return nil, repository.Wrap("connect database", err)
		}
		if err := db.SetTimezone(conn, cfg.DB.Timezone); err != nil {
			log.Warn("set db timezone failed", zap.Error(err))
		}
		if cfg.DB.AutoMigrate {
			if err := db.AutoMigrate(conn); err != nil {
				log.Warn("auto migrate failed", zap.Error(err))
			}
		}
		store := gormrepository.New(conn.Gorm)
		store.QueryTimeout = cfg.DB.QueryTimeout
		svc.Repo = store
		notifiers = append(notifiers, &notify.StoreNotifier{Repo: store})

		// Only a shared cache is worth using from a one-shot process.
		if cfg.Cache.Driver == "redis" {
			c, err := cache.New(cfg.Cache)
			if err != nil {
				log.Warn("cache disabled", zap.Error(err))
			} else {
				svc.Cache = c
				if rs, ok := c.(*cache.RedisStore); ok {
					closers = append(closers, func() { _ = rs.Close() })
				}
			}
		}
	}
	svc.Notifier = notifiers
	return &ledger{
		Movements: svc,
		close: func() {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		},
	}, nil
}
