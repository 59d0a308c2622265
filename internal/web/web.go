// Package web is the browser front end: an extraction form, per video
// pages with summaries and Q&A, and search over the whole archive.
package web

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html"
	"github.com/shobhitsyy/VIDEOIQ/internal/extract"
	"github.com/shobhitsyy/VIDEOIQ/internal/qna"
	"github.com/shobhitsyy/VIDEOIQ/internal/search"
	"github.com/shobhitsyy/VIDEOIQ/internal/store"
	"github.com/shobhitsyy/VIDEOIQ/internal/summarize"
	"github.com/shobhitsyy/VIDEOIQ/internal/transcript"
)

var (
	Queries   *store.Queries
	Records   *transcript.Store
	Extractor *extract.Extractor
	Summaries *summarize.Service
	Answers   *qna.Answerer

	//go:embed templates
	_templatesFS embed.FS
	templatesFS  fs.FS
)

type IndexData struct {
	Videos  []store.Video
	Outcome *extract.Outcome
	Results []search.Result
	IsQuery bool
	Query   string
}

type VideoData struct {
	Video     store.Video
	Record    *transcript.Record
	Summaries []store.Summary
}

func init() {
	subTemplatesFS, err := fs.Sub(_templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	templatesFS = subTemplatesFS
}

func Start(ctx context.Context, addr string) {
	log.Fatal(App(ctx).Listen(addr))
}

// App builds the fiber application, split from Start so tests can drive
// it without a listener.
func App(ctx context.Context) *fiber.App {
	engine := html.NewFileSystem(http.FS(templatesFS), ".html")
	engine.AddFunc("lines", func(s string) []string {
		return strings.Split(s, "\n")
	})
	engine.AddFunc("minutes", func(seconds int64) string {
		return fmt.Sprintf("%.2f", float64(seconds)/60)
	})

	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layout",
	})

	app.Get("/", func(c *fiber.Ctx) error {
		videos, err := Queries.Videos(ctx)
		if err != nil {
			log.Println(err)
			c.Status(http.StatusInternalServerError)
			return nil
		}

		return c.Render("index", IndexData{Videos: videos})
	})

	app.Post("/extract", func(c *fiber.Ctx) error {
		url := strings.TrimSpace(c.FormValue("url"))
		if url == "" {
			return fiber.NewError(http.StatusUnprocessableEntity, "Please paste a video url")
		}

		outcome, err := Extractor.ExtractAndSave(ctx, url, extract.DefaultOptions())
		if err != nil {
			log.Printf("[ERROR]: extracting %q: %v", url, err)
			return fiber.NewError(http.StatusInternalServerError, "extraction failed")
		}

		if _, isHtmx := c.GetReqHeaders()["Hx-Request"]; isHtmx {
			return c.Render("outcome", outcome, "")
		}

		if outcome.OK {
			return c.Redirect("/videos/"+outcome.Record.VideoID, http.StatusSeeOther)
		}

		videos, err := Queries.Videos(ctx)
		if err != nil {
			return fmt.Errorf("retrieving videos: %w", err)
		}
		return c.Render("index", IndexData{Videos: videos, Outcome: outcome})
	})

	app.Get("/videos/:id", func(c *fiber.Ctx) error {
		video, err := Queries.Video(ctx, c.Params("id"))
		if errors.Is(err, sql.ErrNoRows) {
			return fiber.NewError(http.StatusNotFound, "No such video in the archive")
		}
		if err != nil {
			return fmt.Errorf("retrieving video: %w", err)
		}

		summaries, err := Queries.SummariesOfVideo(ctx, video.ID)
		if err != nil {
			return fmt.Errorf("retrieving summaries: %w", err)
		}

		// The page still works without the record, just without the
		// transcript preview.
		record, err := Records.Load(video.RecordPath)
		if err != nil {
			log.Printf("[WARN]: loading record of %q: %v", video.ID, err)
		}

		return c.Render("video", VideoData{
			Video:     video,
			Record:    record,
			Summaries: summaries,
		})
	})

	app.Post("/videos/:id/summarize", func(c *fiber.Ctx) error {
		record, err := loadRecord(ctx, c.Params("id"))
		if err != nil {
			return err
		}

		res, err := Summaries.Summarize(ctx, record)
		if err != nil {
			log.Printf("[ERROR]: summarizing %q: %v", record.VideoID, err)
			return fiber.NewError(http.StatusInternalServerError, "Could not produce a summary")
		}

		if _, isHtmx := c.GetReqHeaders()["Hx-Request"]; isHtmx {
			return c.Render("summary", res, "")
		}
		return c.Redirect("/videos/"+record.VideoID, http.StatusSeeOther)
	})

	app.Post("/videos/:id/ask", func(c *fiber.Ctx) error {
		question := strings.TrimSpace(c.FormValue("question"))
		if question == "" {
			return fiber.NewError(http.StatusUnprocessableEntity, "Please ask a question")
		}

		record, err := loadRecord(ctx, c.Params("id"))
		if err != nil {
			return err
		}

		log.Printf("[INFO]: question about %q: %q", record.VideoID, question)
		answer, err := Answers.Ask(ctx, record.Plain, question)
		if err != nil {
			log.Printf("[ERROR]: answering about %q: %v", record.VideoID, err)
			return fiber.NewError(http.StatusInternalServerError, "Could not produce an answer")
		}

		if _, isHtmx := c.GetReqHeaders()["Hx-Request"]; isHtmx {
			return c.Render("answer", answer, "")
		}
		return c.Render("answer", answer)
	})

	app.Get("/search", func(c *fiber.Ctx) error {
		query := c.Query("q")
		if len(query) < 3 {
			return fiber.NewError(
				http.StatusUnprocessableEntity,
				"Please type at least 3 characters",
			)
		}

		log.Printf("[INFO]: searching for %q", query)
		res, err := search.Archive(ctx, query)
		if err != nil {
			log.Printf("[ERROR]: %v", err)
			return fiber.NewError(http.StatusInternalServerError, "search failed")
		}

		if _, isHtmx := c.GetReqHeaders()["Hx-Request"]; isHtmx {
			return c.Render("results", res, "")
		}

		videos, err := Queries.Videos(ctx)
		if err != nil {
			return fmt.Errorf("retrieving videos: %w", err)
		}
		return c.Render("index", IndexData{
			Videos:  videos,
			Results: res,
			IsQuery: true,
			Query:   strings.Clone(query),
		})
	})

	return app
}

func loadRecord(ctx context.Context, id string) (*transcript.Record, error) {
	video, err := Queries.Video(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fiber.NewError(http.StatusNotFound, "No such video in the archive")
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving video: %w", err)
	}

	record, err := Records.Load(video.RecordPath)
	if err != nil {
		return nil, fmt.Errorf("loading record of %q: %w", id, err)
	}

	return record, nil
}
