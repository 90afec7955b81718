package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"fundrefresh/internal/config"
	"fundrefresh/internal/eastmoney"
	"fundrefresh/internal/fund"
	"fundrefresh/internal/logging"
	"fundrefresh/internal/ratelimit"
	"fundrefresh/internal/refresh"
	"fundrefresh/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel, cfg.LogPretty)
	logger := logging.NewLogger("main")

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	st := store.New(cfg.HoldingsPath)
	holdings, err := st.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load holdings")
	}

	// One session covers every held fund plus the watchlist.
	codes := refreshCodes(holdings, cfg.Watchlist)
	if len(codes) == 0 {
		fmt.Println("No holdings or watchlist funds to refresh.")
		return
	}

	client := eastmoney.New(cfg.EastmoneyBaseURL, ratelimit.New())
	orch := refresh.New(client.FetchFund, refresh.Config{
		MaxConcurrent: cfg.MaxConcurrent,
		Policy: refresh.Policy{
			MaxAttempts: cfg.MaxAttempts,
			BaseDelay:   cfg.BaseDelay,
		},
		Progress: func(completed, total int, label string) {
			fmt.Printf("[%d/%d] %s\n", completed, total, label)
		},
		Logger: logging.NewLogger("refresh"),
	})

	fmt.Printf("Refreshing %d funds...\n", len(codes))
	fmt.Println("================================================")
	summary := orch.Run(ctx, codes)
	fmt.Println("================================================")

	// Merge the session results into the durable holdings and persist.
	if updated := store.Merge(holdings, summary.Snapshots); updated > 0 {
		if err := st.Save(holdings); err != nil {
			logger.Fatal().Err(err).Msg("failed to save holdings")
		}
		logger.Info().Int("updated", updated).Msg("holdings saved")
	}

	fmt.Printf("Done: %d succeeded, %d failed.\n", summary.Succeeded, summary.Failed)
	if len(summary.FailedKeys) > 0 {
		failed := append([]string(nil), summary.FailedKeys...)
		sort.Strings(failed)
		fmt.Printf("Failed funds: %s\n", strings.Join(failed, ", "))
	}
}

// refreshCodes returns the distinct fund codes across holdings and the
// watchlist, in first-seen order.
func refreshCodes(holdings []fund.Holding, watchlist []string) []string {
	seen := make(map[string]struct{})
	var codes []string
	add := func(code string) {
		if code == "" {
			return
		}
		if _, ok := seen[code]; ok {
			return
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	for _, h := range holdings {
		add(h.Code)
	}
	for _, code := range watchlist {
		add(code)
	}
	return codes
}
