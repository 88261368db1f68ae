// Command dispatcher runs the anchor-platform action dispatcher as a
// standalone JSON-RPC HTTP server: stores and catalog first, then the
// action registry, then the HTTP server last.
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	dispatcher "github.com/stellaranchor/action-dispatcher"
	"github.com/stellaranchor/action-dispatcher/action"
	"github.com/stellaranchor/action-dispatcher/assetcatalog"
	"github.com/stellaranchor/action-dispatcher/auth"
	"github.com/stellaranchor/action-dispatcher/config"
	"github.com/stellaranchor/action-dispatcher/horizon"
	"github.com/stellaranchor/action-dispatcher/jsonrpc"
	"github.com/stellaranchor/action-dispatcher/repo"
	"github.com/stellaranchor/action-dispatcher/repo/memory"
	"github.com/stellaranchor/action-dispatcher/transport"
)

func main() {
	envFile := flag.String("env", ".env", "path to a .env file (optional)")
	flag.Parse()

	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// jwtRegistry and confirmationOracle satisfy the transport-boundary auth
	// and on-chain-fact ports; neither is consulted by action dispatch
	// itself (see DESIGN.md's Open Question resolutions), so they are
	// constructed here ready for a future auth middleware or a handler that
	// chooses to query Horizon directly.
	secrets, err := auth.DecodeSecrets(cfg.JWTSecrets)
	if err != nil {
		log.WithError(err).Fatal("failed to decode JWT secrets")
	}
	_ = auth.NewRegistry(cfg.JWTIssuer, cfg.JWTExpiry, secrets)
	log.WithField("issuer", cfg.JWTIssuer).Info("jwt registry ready")

	_ = horizon.NewConfirmationOracle(cfg.HorizonURL)
	log.WithField("horizon_url", cfg.HorizonURL).Info("horizon confirmation oracle ready")

	var assetSource assetcatalog.Source
	if cfg.AnchorDomain != "" {
		assetSource = assetcatalog.StellarTOMLSource(transport.NewClient(), cfg.AnchorDomain)
	} else {
		assetSource = assetcatalog.StaticSource(map[string]int{
			"stellar:USDC": 2,
			"stellar:XLM":  7,
		})
	}
	assets, err := assetcatalog.NewCatalog(ctx, assetSource, cfg.AssetCatalogTTL)
	if err != nil {
		log.WithError(err).Fatal("failed to build asset catalog")
	}
	assets.StartRefreshing(ctx)
	defer assets.Close()

	sep24 := memory.NewCASStore()
	sep31 := memory.NewCASStore()
	facade := repo.NewFacade(sep24, sep31)

	hooks := action.NewHookRegistry()
	hooks.On(action.HookTransactionStatusChanged, func(txn *dispatcher.Transaction) {
		log.WithFields(logrus.Fields{
			"transaction_id": txn.ID,
			"status":         txn.Status,
		}).Info("transaction status changed")
	})

	registry := action.NewRegistry(assets, time.Now)
	server := jsonrpc.NewServer(registry, facade, hooks, time.Now, log)

	log.WithField("addr", cfg.ListenAddr).Info("starting dispatcher")
	if err := server.ListenAndServe(ctx, cfg.ListenAddr); err != nil {
		log.WithError(err).Fatal("dispatcher server stopped")
	}
}
