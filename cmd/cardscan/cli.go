package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	stdslog "log/slog"
	"text/tabwriter"
	"time"

	"github.com/awalczak/cardscan"
	"github.com/awalczak/cardscan/fs"
	"github.com/awalczak/cardscan/goquery"
	"github.com/awalczak/cardscan/htmltomarkdown"
	cshttp "github.com/awalczak/cardscan/http"
	"github.com/awalczak/cardscan/scrape"
	csslog "github.com/awalczak/cardscan/slog"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *stdslog.Logger
	Items  cardscan.ItemService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape ScrapeCmd `cmd:"" help:"Scrape a site's structure into standardized items"`
	Runs   RunsCmd   `cmd:"" help:"List saved scrape runs"`
	Show   ShowCmd   `cmd:"" help:"Show the items of a saved run"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL         string `arg:"" help:"Page URL to scrape"`
	MaxArticles int    `short:"n" default:"20" help:"Maximum blog articles or posts to extract"`
	MaxPages    int    `short:"m" default:"0" help:"Maximum additional pages fetched to fill in item content"`
	Output      string `short:"o" default:"." help:"Directory for the result JSON file"`
	Debug       bool   `short:"d" help:"Print the detected structure"`
	Verbose     bool   `short:"v" help:"Verbose logging"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	RunID string `arg:"" help:"Run ID"`
}

// Run executes the scrape pipeline against a URL.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	fetcher := cshttp.NewFetcher()
	defer fetcher.Close()

	var coreFetcher cardscan.Fetcher = fetcher
	detector := goquery.NewStructureDetector()
	var coreDetector cardscan.StructureDetector = detector
	if c.Verbose {
		coreFetcher = csslog.NewLoggingFetcher(coreFetcher, deps.Logger)
		coreDetector = csslog.NewLoggingDetector(coreDetector, deps.Logger)
	}

	scraper := scrape.NewScraper(coreFetcher, coreDetector,
		scrape.WithPlatformDetection(goquery.NewDetector(), goquery.NewPlatformExtractor()),
		scrape.WithRedirectChecker(detector),
		scrape.WithContentEnrichment(goquery.NewContentSelector(), htmltomarkdown.NewConverter()),
		scrape.WithMaxArticles(c.MaxArticles),
		scrape.WithMaxAdditionalPages(c.MaxPages),
		scrape.WithProgress(func(ev scrape.ProgressEvent) {
			if c.Verbose {
				fmt.Fprintf(deps.Stderr, "%s %s %s\n", ev.Stage, ev.URL, ev.Detail)
			}
		}),
	)

	result, extraction, err := scraper.Scrape(deps.Ctx, c.URL)
	if err != nil {
		msg, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintln(deps.Stdout, string(msg))
		return err
	}

	if c.Debug {
		pretty, err := json.MarshalIndent(extraction, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, string(pretty))
	}

	payload := struct {
		*cardscan.Result
		Structure *scrape.Extraction `json:"structure"`
	}{Result: result, Structure: extraction}

	writer := fs.NewWriter(c.Output)
	path, err := writer.WriteResult(c.URL, payload)
	if err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	fmt.Fprintf(deps.Stdout, "Wrote %d items to %s\n", len(result.Items), path)

	runID, err := deps.Items.SaveResult(deps.Ctx, result)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	fmt.Fprintf(deps.Stdout, "Saved run %s\n", runID)

	return nil
}

// Run lists saved runs.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Items.FindRuns(deps.Ctx)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs saved.")
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSITE\tITEMS\tCREATED")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", run.ID, run.Site, run.ItemCount, run.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}

// Run prints a saved run's items as JSON.
func (c *ShowCmd) Run(deps *Dependencies) error {
	result, err := deps.Items.FindResultByRunID(deps.Ctx, c.RunID)
	if err != nil {
		if cardscan.ErrorCode(err) == cardscan.ENOTFOUND {
			return fmt.Errorf("run %q not found", c.RunID)
		}
		return err
	}

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(pretty))
	return nil
}
