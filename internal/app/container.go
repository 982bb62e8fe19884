package app

import (
	"fmt"
	"io"

	"mcdash/internal/config"
	"mcdash/internal/logging"
	"mcdash/internal/storage"
	"mcdash/pkg/sdk"

	"github.com/sirupsen/logrus"
)

// Container wires the pieces every command needs.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Store  *storage.GormStore
	Jar    *storage.SessionJar
	Client *sdk.Client

	logCloser io.Closer
}

func New(cfg *config.Config) (*Container, error) {
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}

	logger, closer, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewGormStore(cfg.DatabasePath, logger)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("could not open session database: %w", err)
	}

	jar, err := storage.NewSessionJar(store, cfg.URL, logger)
	if err != nil {
		store.Close()
		closer.Close()
		return nil, err
	}

	client := sdk.NewClient(cfg.URL,
		sdk.WithCookieJar(jar),
		sdk.WithLogger(logger),
	)

	return &Container{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		Jar:       jar,
		Client:    client,
		logCloser: closer,
	}, nil
}

func (c *Container) Close() error {
	err := c.Store.Close()
	if cerr := c.logCloser.Close(); err == nil {
		err = cerr
	}
	return err
}
