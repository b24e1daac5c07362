package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"iamaichain/config"
	"iamaichain/core"
	"iamaichain/observability/logging"
	"iamaichain/storage"
)

func main() {
	configFile := flag.String("config", "./config.toml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup("iamaid", cfg.NetworkName, cfg.LogLevelValue())

	db, err := storage.NewLevelDB(cfg.DataDir)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err), slog.String("dataDir", cfg.DataDir))
		os.Exit(1)
	}
	defer db.Close()

	node, err := core.NewNode(db, cfg.Genesis, logger)
	if err != nil {
		logger.Error("failed to start node", slog.Any("error", err))
		os.Exit(1)
	}
	mint, err := config.ParseAddress(cfg.Genesis.Token.Mint)
	if err != nil {
		logger.Error("invalid mint address", slog.Any("error", err))
		os.Exit(1)
	}
	info, err := node.Token.Info(mint)
	if err != nil {
		logger.Error("failed to read token info", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("token ledger ready",
		slog.String("symbol", info.Symbol),
		slog.String("totalSupply", info.TotalSupply.String()),
		slog.String("circulating", info.CirculatingSupply.String()))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := &http.Server{
		Addr:              cfg.MetricsAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("metrics listener started", slog.String("address", cfg.MetricsAddress))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics listener failed", slog.Any("error", err))
		}
	}()

	logger.Info("node started", slog.String("dataDir", cfg.DataDir))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("metrics listener shutdown failed", slog.Any("error", err))
	}
}
