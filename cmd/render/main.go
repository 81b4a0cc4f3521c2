package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/lysyi3m/reader-render/app/display"
	"github.com/lysyi3m/reader-render/app/media"
	"github.com/lysyi3m/reader-render/app/render"
	"github.com/lysyi3m/reader-render/app/source"
	"github.com/lysyi3m/reader-render/app/theme"
)

type options struct {
	Input       string `short:"i" long:"input" description:"Content file (stdin when empty)"`
	Output      string `short:"o" long:"output" description:"Output file (stdout when empty)"`
	Format      string `long:"format" default:"html" choice:"html" choice:"json" description:"Output format"`
	Feed        bool   `long:"feed" description:"Treat input as an RSS/Atom feed"`
	FeedItem    int    `long:"feed-item" default:"0" description:"Index of the feed item to render"`
	ArticleURL  string `long:"article-url" description:"Treat input as a full HTML page at this URL and extract the article"`
	Attachments string `long:"attachments" description:"Attachments JSON file"`
	PostID      int64  `long:"post-id" description:"Post ID"`
	BlogID      int64  `long:"blog-id" description:"Blog ID"`
	Private     bool   `long:"private" description:"Post belongs to a private site"`

	ThemesFile string `long:"themes-file" description:"YAML file with theme palettes"`
	Theme      string `long:"theme" default:"light" description:"Reading theme"`
	FontFamily string `long:"font-family" default:"serif" description:"Font family"`
	FontSize   int    `long:"font-size" default:"16" description:"Font size in px"`

	DisplayWidth   int     `long:"display-width" default:"1080" description:"Display width in px"`
	DisplayDensity float64 `long:"display-density" default:"2.625" description:"Display density (px per dp)"`
	MarginMedium   int     `long:"margin-medium" default:"16" description:"Medium margin in px"`
	MarginLarge    int     `long:"margin-large" default:"24" description:"Large margin in px"`
	DetailMargin   int     `long:"detail-margin" default:"32" description:"Post detail margin in px"`

	StylesheetURL    string `long:"stylesheet-url" default:"https://s0.wp.com/wp-content/themes/h4/global.css" description:"External base stylesheet URL"`
	SupportScriptURL string `long:"support-script-url" default:"file:///android_asset/reader_text_events.js" description:"Text events support script URL"`
	PhotonHost       string `long:"photon-host" default:"i0.wp.com" description:"Image resizing proxy host"`

	Debug bool `long:"debug" description:"Enable debug logging"`
}

func main() {
	log.SetFlags(0)

	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	level := slog.LevelWarn
	if opts.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

func run(opts options) error {
	input, err := readInput(opts.Input)
	if err != nil {
		return err
	}

	item, err := loadItem(opts, input)
	if err != nil {
		return err
	}

	themes := theme.NewRegistry(opts.Theme, opts.FontFamily, opts.FontSize)
	if opts.ThemesFile != "" {
		if err := themes.LoadFile(opts.ThemesFile); err != nil {
			return err
		}
	}

	metrics := display.NewMetrics(opts.DisplayWidth, opts.DisplayDensity, opts.MarginMedium, opts.MarginLarge, opts.DetailMargin)
	assembler := render.NewAssembler(metrics, media.NewPhotonResizer(opts.PhotonHost),
		render.StaticCSSURL(opts.StylesheetURL), opts.SupportScriptURL)

	out := io.Writer(os.Stdout)
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	surface := &writerSurface{w: out, format: opts.Format}
	pipeline := render.NewPipeline(assembler, surface)
	pipeline.BeginRender(item, themes.Resolve(theme.Preferences{}))
	pipeline.Wait()
	pipeline.Close()

	if pipeline.State() != render.StateDelivered {
		if surface.err != nil {
			return surface.err
		}
		return fmt.Errorf("render was not delivered (state: %s)", pipeline.State())
	}
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}

func loadItem(opts options, input []byte) (render.ContentItem, error) {
	var item render.ContentItem

	switch {
	case opts.Feed:
		items, err := source.NewFeedParser().Run(input)
		if err != nil {
			return item, err
		}
		if opts.FeedItem < 0 || opts.FeedItem >= len(items) {
			return item, fmt.Errorf("feed item %d out of range (feed has %d items)", opts.FeedItem, len(items))
		}
		item = items[opts.FeedItem]
	case opts.ArticleURL != "":
		extracted, err := source.NewArticleExtractor().Run(input, opts.ArticleURL)
		if err != nil {
			return item, err
		}
		item = extracted
	default:
		item.Text = string(input)
	}

	if opts.Attachments != "" {
		data, err := os.ReadFile(opts.Attachments)
		if err != nil {
			return item, fmt.Errorf("failed to read attachments file: %w", err)
		}
		item.AttachmentsJSON = string(data)
	}
	if opts.PostID != 0 {
		item.PostID = opts.PostID
	}
	if opts.BlogID != 0 {
		item.BlogID = opts.BlogID
	}
	item.IsPrivate = item.IsPrivate || opts.Private

	return item, nil
}

// writerSurface prints delivered documents.
type writerSurface struct {
	w      io.Writer
	format string
	err    error
}

func (s *writerSurface) IsValid() bool {
	return s.w != nil
}

func (s *writerSurface) Load(result render.RenderResult) error {
	if s.format == "json" {
		enc := json.NewEncoder(s.w)
		enc.SetIndent("", "  ")
		s.err = enc.Encode(result)
	} else {
		_, s.err = io.WriteString(s.w, result.HTML+"\n")
	}
	if s.err != nil {
		s.err = fmt.Errorf("failed to write document: %w", s.err)
	}
	return s.err
}
