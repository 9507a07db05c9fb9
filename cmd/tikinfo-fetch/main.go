// Command tikinfo-fetch fetches one TikTok profile and prints the extracted
// record as JSON. Useful for checking the extraction rules against live pages.
//
// Usage:
//
//	tikinfo-fetch @username
//	tikinfo-fetch username
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hazemely102/tikinfo/country"
	"github.com/hazemely102/tikinfo/tiktok"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: tikinfo-fetch [options] <username>")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	client := tiktok.New(
		tiktok.WithLogger(logger),
		tiktok.WithCountryLookup(country.Name),
	)

	p, err := client.Fetch(context.Background(), flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		fmt.Fprintf(os.Stderr, "Output error: %v\n", err)
		os.Exit(1)
	}
}
