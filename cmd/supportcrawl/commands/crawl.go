package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/supportcrawl/supportcrawl/internal/crawler"
	"github.com/supportcrawl/supportcrawl/internal/logger"
	"github.com/supportcrawl/supportcrawl/internal/output"
	"github.com/supportcrawl/supportcrawl/internal/scraper"
	"github.com/supportcrawl/supportcrawl/internal/storage"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl a support site and emit the page corpus",
	Long: `Crawl every page under the base URL's host and path prefix.

The crawl seeds itself with a discovery sweep over the base URL (static
plus rendered when a browser is available), then walks the frontier
breadth-first. The result is a single summary artifact: crawl metadata,
the ordered page records and the failed URL set.

Interrupting the crawl (Ctrl-C) stops at the next iteration and still
writes the partial summary.

Examples:
  supportcrawl crawl -u "https://www.angelone.in/support" -o corpus.json
  supportcrawl crawl -u "https://example.com/help" --delay 2s --max-pages 200`,
	RunE: runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)

	flags := crawlCmd.Flags()

	flags.StringP("url", "u", "", "base URL to crawl (required)")

	// Crawl limits
	flags.Int("max-pages", 1000, "max pages to scrape")
	flags.Duration("delay", time.Second, "delay between requests")

	// Fetch settings
	flags.Duration("timeout", 15*time.Second, "static fetch timeout")
	flags.Duration("render-timeout", 15*time.Second, "rendered fetch timeout")
	flags.Bool("no-render", false, "disable the headless-browser tier")
	flags.String("user-agent", "", "override the User-Agent header")

	// Output settings
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "json", "output format: json, jsonl, yaml")
	flags.String("db", "", "also persist pages into a SQLite database at this path")

	_ = crawlCmd.MarkFlagRequired("url")
}

func runCrawl(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	baseURL, _ := cmd.Flags().GetString("url")
	maxPages, _ := cmd.Flags().GetInt("max-pages")
	delay, _ := cmd.Flags().GetDuration("delay")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	renderTimeout, _ := cmd.Flags().GetDuration("render-timeout")
	noRender, _ := cmd.Flags().GetBool("no-render")
	userAgent, _ := cmd.Flags().GetString("user-agent")

	static := scraper.NewStaticFetcher(scraper.Config{
		UserAgent: userAgent,
		Timeout:   timeout,
	})
	defer func() { _ = static.Close() }()

	var renderer crawler.Renderer
	if !noRender {
		rendered, err := scraper.NewRenderedFetcher(scraper.Config{
			UserAgent: userAgent,
			Timeout:   renderTimeout,
		})
		if err != nil {
			logger.Warn("rendered fetcher unavailable, continuing static-only", "error", err)
		} else {
			defer func() { _ = rendered.Close() }()
			renderer = rendered
		}
	}

	c, err := crawler.New(static, renderer, crawler.Config{
		BaseURL:  baseURL,
		MaxPages: maxPages,
		Delay:    delay,
	})
	if err != nil {
		logger.Error("failed to create crawler", "error", err)
		return err
	}

	summary, runErr := c.Run(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logger.Error("crawl failed", "error", runErr)
		return runErr
	}

	// Partial results from an interrupted run are still written out.
	outFile := os.Stdout
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath) //#nosec G304 -- CLI tool writes to user-specified output file
		if err != nil {
			logger.Error("failed to create output file", "path", outPath, "error", err)
			return err
		}
		defer func() { _ = f.Close() }()
		outFile = f
	}

	formatStr, _ := cmd.Flags().GetString("format")
	writer, err := output.NewWriter(outFile, output.Format(formatStr))
	if err != nil {
		logger.Error("failed to create output writer", "format", formatStr, "error", err)
		return err
	}
	defer func() { _ = writer.Close() }()

	if err := writer.WriteSummary(summary); err != nil {
		logger.Error("failed to write summary", "error", err)
		return err
	}

	if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
		store, err := storage.Open(dbPath)
		if err != nil {
			logger.Error("failed to open page store", "path", dbPath, "error", err)
			return err
		}
		defer func() { _ = store.Close() }()

		crawlID, err := store.SaveSummary(summary)
		if err != nil {
			logger.Error("failed to persist pages", "error", err)
			return err
		}
		logger.Info("pages persisted", "path", dbPath, "crawl_id", crawlID)
	}

	logger.Info("done",
		"pages", summary.CrawlInfo.TotalPagesScraped,
		"failed", summary.CrawlInfo.FailedURLCount,
		"content", humanize.Bytes(uint64(summary.CrawlInfo.TotalContentSize)))

	return nil
}
