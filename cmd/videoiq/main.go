package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shobhitsyy/VIDEOIQ/internal/config"
	"github.com/shobhitsyy/VIDEOIQ/internal/extract"
	"github.com/shobhitsyy/VIDEOIQ/internal/qna"
	"github.com/shobhitsyy/VIDEOIQ/internal/resolve"
	"github.com/shobhitsyy/VIDEOIQ/internal/search"
	"github.com/shobhitsyy/VIDEOIQ/internal/store"
	"github.com/shobhitsyy/VIDEOIQ/internal/summarize"
	"github.com/shobhitsyy/VIDEOIQ/internal/transcript"
	"github.com/shobhitsyy/VIDEOIQ/internal/tube"
	"github.com/shobhitsyy/VIDEOIQ/internal/web"
)

var (
	cfg       *config.Config
	db        *sql.DB
	queries   *store.Queries
	yt        *tube.Client
	records   *transcript.Store
	summaries *summarize.Service
	answers   *qna.Answerer
	extractor *extract.Extractor
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN]: loading .env: %v", err)
	}
	cfg = config.Load()

	ctx := context.Background()
	d, err := sql.Open("sqlite3", cfg.DatabasePath)
	if err != nil {
		log.Fatalf("[ERROR]: opening database: %v", err)
	}
	db = d
	queries = store.New(db)
	yt = &tube.Client{}

	records, err = transcript.NewStore(cfg.TranscriptsDir)
	if err != nil {
		log.Fatalf("[ERROR]: opening record store: %v", err)
	}

	summaryFiles, err := summarize.NewStore(cfg.SummariesDir)
	if err != nil {
		log.Fatalf("[ERROR]: opening summary store: %v", err)
	}

	summaries = &summarize.Service{
		Summarizer: &summarize.Summarizer{Providers: summarize.NewChain(cfg)},
		Store:      summaryFiles,
		Queries:    queries,
	}
	answers = qna.New(cfg)
	extractor = &extract.Extractor{
		Yt:        yt,
		Resolver:  resolve.New(yt),
		Records:   records,
		Queries:   queries,
		Summaries: summaries,
	}

	search.Queries = queries
	search.Records = records

	command := "serve"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	if command == "serve" {
		web.Queries = queries
		web.Records = records
		web.Extractor = extractor
		web.Summaries = summaries
		web.Answers = answers
		web.Start(ctx, cfg.Addr)
		return
	}

	if err := run(ctx, command, os.Args[2:]); err != nil {
		log.Fatalf("[ERROR]: %v", err)
	}
}

func run(ctx context.Context, command string, args []string) error {
	switch command {
	case "extract":
		if len(args) < 1 {
			return fmt.Errorf("usage: videoiq extract <url> [languages]")
		}

		opts := extract.DefaultOptions()
		if len(args) > 1 {
			opts.Languages = strings.Split(args[1], ",")
		}

		outcome, err := extractor.ExtractAndSave(ctx, args[0], opts)
		if err != nil {
			return err
		}
		fmt.Println(outcome.Message)

	case "batch":
		if len(args) < 1 {
			return fmt.Errorf("usage: videoiq batch <file-with-urls>")
		}

		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading url file: %w", err)
		}

		var urls []string
		for _, line := range strings.Split(string(content), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			urls = append(urls, line)
		}

		outcomes, err := extractor.Batch(ctx, urls, extract.DefaultOptions())
		if err != nil {
			return err
		}

		ok := 0
		for i, outcome := range outcomes {
			if outcome.OK {
				ok++
				fmt.Printf("done: %s\n", urls[i])
			} else {
				fmt.Printf("failed: %s\n", urls[i])
			}
		}
		fmt.Printf("%d/%d extracted\n", ok, len(outcomes))

	case "summarize":
		if len(args) < 1 {
			return fmt.Errorf("usage: videoiq summarize <record.json|url> [provider]")
		}

		record, err := loadRecord(args[0])
		if err != nil {
			return err
		}

		svc := summaries
		if len(args) > 1 {
			only, err := summaries.Summarizer.Only(args[1])
			if err != nil {
				return err
			}
			svc = &summarize.Service{Summarizer: only, Store: summaries.Store, Queries: queries}
		}

		res, err := svc.Summarize(ctx, record)
		if err != nil {
			return err
		}

		fmt.Printf("Summary by %s (%s):\n\n%s\n", res.Provider, res.Model, res.Summary)
		if len(res.KeyPoints) > 0 {
			fmt.Println("\nKey points:")
			for i, point := range res.KeyPoints {
				fmt.Printf("%d. %s\n", i+1, point)
			}
		}

	case "ask":
		if len(args) < 1 {
			return fmt.Errorf("usage: videoiq ask <record.json|url>")
		}

		record, err := loadRecord(args[0])
		if err != nil {
			return err
		}
		return askLoop(ctx, record)

	case "search":
		if len(args) < 1 {
			return fmt.Errorf("usage: videoiq search <query>")
		}

		query := strings.Join(args, " ")
		results, err := search.Archive(ctx, query)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Printf("No matches for %q.\n", query)
			return nil
		}

		for _, result := range results {
			fmt.Printf("%s (%s)\n", result.Video.Title, result.Video.ID)
			for _, moment := range result.Moments {
				fmt.Printf("  %s %s\n", moment.Timestamp, moment.Text)
			}
		}

	case "retry":
		return extractor.Retry(ctx, extract.DefaultOptions())

	default:
		return fmt.Errorf(
			"unknown command %q (expected extract, batch, summarize, ask, search, retry or serve)",
			command,
		)
	}

	return nil
}

// loadRecord accepts either a path to a saved record file or anything
// the id extractor understands, in which case the newest record of that
// video is loaded.
func loadRecord(arg string) (*transcript.Record, error) {
	if transcript.IsRecordPath(arg) {
		return records.Load(arg)
	}

	id, err := tube.ExtractVideoID(arg)
	if err != nil {
		return nil, err
	}

	record, _, err := records.Latest(id)
	return record, err
}

func askLoop(ctx context.Context, record *transcript.Record) error {
	if len(answers.Providers) == 0 {
		return qna.ErrNoProviders
	}

	fmt.Printf("Asking about %q, %d words of transcript.\n", record.Metadata.Title, record.WordCount)
	fmt.Println(`Type a question, "switch" to rotate providers, "quit" to stop.`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		switch line := strings.TrimSpace(scanner.Text()); line {
		case "":
		case "quit", "exit":
			return nil
		case "switch":
			answers.Providers = append(answers.Providers[1:], answers.Providers[0])
			fmt.Printf("Now asking %s first.\n", answers.Providers[0].Name)
		default:
			answer, err := answers.Ask(ctx, record.Plain, line)
			if err != nil {
				log.Printf("[ERROR]: %v", err)
				continue
			}
			fmt.Printf("\n%s\n\n(answered by %s)\n\n", answer.Text, answer.Provider)
		}
	}
}
