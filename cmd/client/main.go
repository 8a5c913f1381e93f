package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-vaultx/internal/adapter"
	"github.com/MKhiriev/go-vaultx/internal/client"
	"github.com/MKhiriev/go-vaultx/internal/clipboard"
	"github.com/MKhiriev/go-vaultx/internal/config"
	"github.com/MKhiriev/go-vaultx/internal/crypto"
	"github.com/MKhiriev/go-vaultx/internal/identity"
	"github.com/MKhiriev/go-vaultx/internal/logger"
	"github.com/MKhiriev/go-vaultx/internal/service"
	"github.com/MKhiriev/go-vaultx/internal/store"
	"github.com/MKhiriev/go-vaultx/internal/tui"
	"github.com/MKhiriev/go-vaultx/internal/validators"
	"github.com/MKhiriev/go-vaultx/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewClientLogger("vaultx-client", cfg.App.LogLevel)
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	log.Info().Str("build", buildInfo.String()).Msg("starting vaultx client")

	ctx, stop := signal.NotifyContext(log.WithContext(context.Background()), os.Interrupt, syscall.SIGTERM)
	defer stop()

	algorithm, err := crypto.ParseAlgorithm(cfg.App.KeyAlgorithm)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid key algorithm")
	}

	identityAdapter, err := adapter.NewHTTPIdentityAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create identity adapter")
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer storages.Close()

	guard := clipboard.NewGuard(clipboard.SystemSink(), cfg.Clipboard, log)
	provider := identity.NewProvider(identityAdapter, storages.Slots, validators.NewVaultItemValidator(), log)
	services := service.NewClientServices(storages.Slots, algorithm, guard, provider, log)

	ui := tui.New(ctx, tui.Dependencies{
		Identity:  provider,
		Session:   services.SessionGuard,
		Clipboard: guard,
		Passwords: services.PasswordService,
		Policy:    models.DefaultPasswordPolicy(),
		BuildInfo: buildInfo,
	}, log)

	app, err := client.NewApp(ctx, provider, services.SessionGuard, guard, identity.NewCheckJob(provider, log), ui, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Error().Err(err).Msg("client run error")
		stop()
		storages.Close()
		os.Exit(1)
	}
}
