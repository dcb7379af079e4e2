package cmd

import (
	"fmt"
	"io"
	"log"
	"net/url"
	"os"

	"github.com/lotbump/lotbump/internal/config"
	"github.com/lotbump/lotbump/internal/cookies"
	"github.com/lotbump/lotbump/internal/vault"
	"github.com/lotbump/lotbump/pkg/logger"
	"github.com/lotbump/lotbump/pkg/market"
	"github.com/spf13/afero"
	"github.com/urfave/cli"
)

var (
	appFs  afero.Fs  = afero.NewOsFs()
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	getenv           = os.Getenv

	vaultPath    = vault.DefaultPath
	newKeySource = vault.KeySourceFromEnv
)

// env is everything a session command needs.
type env struct {
	cfg     *config.Config
	log     logger.Logger
	client  *market.Client
	headers market.Headers
}

func loadEnv(ctx *cli.Context) (*env, error) {
	cfg, err := config.Load(appFs, config.ResolvePath(stringFlag(ctx, "config")))
	if err != nil {
		return nil, err
	}
	dotenv, err := config.ReadDotEnv(appFs, config.DotEnvPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(config.Environ(dotenv)); err != nil {
		return nil, err
	}
	l, err := newLogger(stringFlag(ctx, "log-file"))
	if err != nil {
		return nil, err
	}
	records, err := loadCookies(ctx, cfg, l)
	if err != nil {
		l.Close()
		return nil, err
	}
	header := cookies.BuildHeader(records)
	if header == "" {
		l.Close()
		return nil, fmt.Errorf("%w: no usable cookies among %d", cookies.ErrEmptyExport, len(records))
	}

	opts := market.DefaultOptions()
	opts.Site = cfg.Site
	opts.Timeout = cfg.RequestTimeout
	opts.Proxy = cfg.Proxy
	opts.Logger = l
	opts.Console = logger.NewConsole(stdout)
	client, err := market.NewClient(opts)
	if err != nil {
		l.Close()
		return nil, err
	}
	return &env{
		cfg:     cfg,
		log:     l,
		client:  client,
		headers: market.NewHeaders(header, cfg.UserAgent),
	}, nil
}

func (e *env) close() {
	_ = e.log.Close()
}

func newLogger(logFile string) (logger.Logger, error) {
	console := logger.NewStandardLogger(log.New(stderr, "", log.LstdFlags))
	if logFile == "" {
		return console, nil
	}
	f, err := appFs.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return logger.Tee(console, logger.NewFileLogger(f)), nil
}

// loadCookies picks the cookie source: the vault, a browser store, or the
// JSON export, in that order of precedence.
func loadCookies(ctx *cli.Context, cfg *config.Config, l logger.Logger) ([]cookies.Record, error) {
	if boolFlag(ctx, "vault") {
		path, err := vaultPath()
		if err != nil {
			return nil, err
		}
		records, err := vault.New(appFs, path, newKeySource(getenv)).Load()
		if err != nil {
			return nil, err
		}
		l.Info("loaded %d cookies from vault", len(records))
		return records, nil
	}
	if from := stringFlag(ctx, "cookies-from"); from != "" {
		site, err := url.Parse(cfg.Site)
		if err != nil {
			return nil, err
		}
		records, store, err := cookies.ImportStore(from, site.Hostname())
		if err != nil {
			return nil, err
		}
		l.Info("imported %d cookies from %s store %s", len(records), store.Format, store.Path)
		return records, nil
	}
	return cookies.ReadExport(appFs, stringFlag(ctx, "cookies"))
}
