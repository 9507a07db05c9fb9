// Command tikinfo runs the TikTok profile inspector Telegram bot behind a
// webhook endpoint.
//
// Configuration comes from the environment: TELEGRAM_BOT_TOKEN is required,
// PORT selects the listen port (default 8080). Point the Bot API webhook at
// the root path; GET on the same path serves a liveness string.
package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/hazemely102/tikinfo/bot"
	"github.com/hazemely102/tikinfo/country"
	"github.com/hazemely102/tikinfo/dedup"
	"github.com/hazemely102/tikinfo/server"
	"github.com/hazemely102/tikinfo/telegram"
	"github.com/hazemely102/tikinfo/tiktok"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	noDedup := flag.Bool("no-dedup", false, "disable webhook update deduplication (enabled by default)")
	dedupTTL := flag.Duration("dedup-ttl", 24*time.Hour, "how long processed update IDs are remembered")
	flag.Parse()

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		logger.Error("TELEGRAM_BOT_TOKEN environment variable not set")
		os.Exit(1)
	}

	tg, err := telegram.New(token, telegram.WithLogger(logger))
	if err != nil {
		logger.Error("telegram client creation failed", "error", err)
		os.Exit(1)
	}

	fetcher := tiktok.New(
		tiktok.WithLogger(logger),
		tiktok.WithCountryLookup(country.Name),
	)
	handler := bot.New(tg, fetcher, bot.WithLogger(logger))

	opts := []server.Option{server.WithLogger(logger)}
	if !*noDedup {
		seen, err := dedup.New(*dedupTTL)
		if err != nil {
			logger.Warn("failed to initialize update dedup, continuing without it", "error", err)
		} else {
			defer func() {
				if err := seen.Close(); err != nil {
					logger.Warn("failed to close dedup cache", "error", err)
				}
			}()
			opts = append(opts, server.WithDedup(seen))
		}
	}
	srv := server.New(handler, opts...)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	logger.Info("webhook server listening", "addr", addr)
	if err := http.ListenAndServe(addr, srv.Router()); err != nil { //nolint:gosec // no timeouts needed behind the platform proxy
		logger.Error("server exited", "error", err)
		os.Exit(1) //nolint:gocritic // exitAfterDefer is acceptable in main
	}
}
