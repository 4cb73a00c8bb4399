// Package server wires the ledger services to their store and transports
// and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/fileledger/internal/logging"
	"github.com/dmitrijs2005/fileledger/internal/server/auth"
	"github.com/dmitrijs2005/fileledger/internal/server/clock"
	"github.com/dmitrijs2005/fileledger/internal/server/config"
	"github.com/dmitrijs2005/fileledger/internal/server/httpapi"
	"github.com/dmitrijs2005/fileledger/internal/server/repositories/kv"
	"github.com/dmitrijs2005/fileledger/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fileledger/internal/server/services"

	gs "github.com/dmitrijs2005/fileledger/internal/server/grpc"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	host            kv.Host
	rewardService   *services.RewardService
	fileSyncService *services.FileSyncService
	blobService     *services.BlobService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	host, err := repomanager.Open(ctx, c.StoreDSN)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	rs := services.NewRewardService(host, logger)
	fs := services.NewFileSyncService(host, auth.ContextAuthenticator{}, clock.NewMonotonic(clock.System{}), c, logger)
	bs := services.NewBlobService(fs, c)

	return &App{
		config:          c,
		logger:          logger,
		host:            host,
		rewardService:   rs,
		fileSyncService: fs,
		blobService:     bs,
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.rewardService, app.fileSyncService, app.blobService,
		app.config.SecretKey, app.config.AccessTokenValidityDuration)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.rewardService, app.fileSyncService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves gRPC (and HTTP when configured) until ctx is cancelled, a
// termination signal arrives or a server fails, then closes the store.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "store", app.config.StoreDSN)

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.config.EndpointAddrHTTP != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startHTTPServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.host.Close(); err != nil {
		app.logger.Error(ctx, "closing store", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
