package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/linksum"
	lsetree "github.com/fwojciec/linksum/etree"
	"github.com/fwojciec/linksum/gemini"
	"github.com/fwojciec/linksum/goquery"
	lshttp "github.com/fwojciec/linksum/http"
	"github.com/fwojciec/linksum/htmltomarkdown"
	"github.com/fwojciec/linksum/openai"
	"github.com/fwojciec/linksum/pipeline"
	"github.com/fwojciec/linksum/readability"
	"github.com/fwojciec/linksum/rod"
	"github.com/fwojciec/linksum/site"
	lsslog "github.com/fwojciec/linksum/slog"
	"github.com/fwojciec/linksum/trafilatura"
	"github.com/fwojciec/linksum/yaml"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("linksum"),
		kong.Description("Extract readable article text from a web URL"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	cfg, err := yaml.LoadFile(cli.Config)
	if err != nil {
		return err
	}
	if cli.Backend != "" {
		cfg.Backend = cli.Backend
	}
	if cli.Timeout > 0 {
		cfg.FetchTimeoutSec = int(cli.Timeout.Seconds())
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var fetcher linksum.Fetcher = lshttp.NewFetcher(
		lshttp.WithTimeout(cfg.FetchTimeout()),
		lshttp.WithHostLimiter(lshttp.NewHostLimiter(1.0)),
	)
	defer fetcher.Close()
	if cli.Verbose {
		fetcher = lsslog.NewLoggingFetcher(fetcher, logger)
	}

	var extractor linksum.Extractor
	switch cfg.Backend {
	case linksum.BackendReadability:
		extractor = readability.NewExtractor()
	case linksum.BackendTrafilatura:
		extractor = trafilatura.NewExtractor()
	default:
		extractor = goquery.NewExtractor()
	}

	converter := htmltomarkdown.NewConverter()

	registry := site.NewRegistry(
		site.NewWeixin(fetcher),
		site.NewBilibili(fetcher),
	)
	registry.Register(site.NewShortLink(fetcher, func(ctx context.Context, url string) (*linksum.ExtractResult, error) {
		if result, err := registry.Resolve(ctx, url); result != nil || err != nil {
			return result, err
		}
		html, err := fetcher.Get(ctx, url, nil)
		if err != nil {
			return nil, err
		}
		return extractor.Extract(html)
	}))

	var renderer linksum.Renderer
	if !cli.NoRender {
		r, err := rod.NewRenderer(
			rod.WithRenderTimeout(cfg.RenderTimeout()),
			rod.WithSettleDelay(cfg.SettleDelay()),
			rod.WithMaxConcurrentPages(int64(cfg.MaxRenderers)),
		)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for the rendering tier")
			return err
		}
		defer r.Close()
		renderer = lsslog.NewLoggingRenderer(r, logger)
	}

	orchestrator := pipeline.NewOrchestrator(pipeline.OrchestratorParams{
		Classifier: &linksum.Classifier{
			AllowPrefixes: cfg.WhiteURLList,
			DenyPrefixes:  cfg.BlackURLList,
		},
		Parser:    lsetree.NewShareCardParser(),
		Fetcher:   fetcher,
		Extractor: extractor,
		Registry:  registry,
		Renderer:  renderer,
		Converter: converter,
		MaxWords:  cfg.MaxWords,
		Logger:    logger,
	})

	article, err := pipeline.Retry(ctx, pipeline.DefaultMaxRetries, func(ctx context.Context) (*linksum.Article, error) {
		return orchestrator.Extract(ctx, cli.URL)
	})
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", linksum.ErrorMessage(err))
		return err
	}

	text := article.Body
	if cli.Summarize {
		summarizer, err := newSummarizer(ctx, cfg)
		if err != nil {
			return err
		}
		if summarizer != nil {
			if summary, err := summarizer.Summarize(ctx, article.Body); err == nil {
				text = summary
			} else {
				fmt.Fprintf(stderr, "summarization failed: %v\n", err)
			}
		}
	}

	printArticle(stdout, article, text)

	return nil
}

// newSummarizer builds the configured summarization backend, or nil when
// summarization is disabled.
func newSummarizer(ctx context.Context, cfg linksum.Config) (linksum.Summarizer, error) {
	switch cfg.Summarizer {
	case linksum.SummarizerOpenAI:
		return openai.NewSummarizer(cfg.APIKey, cfg.APIBase, cfg.Model, cfg.Prompt), nil
	case linksum.SummarizerGemini:
		client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
		if err != nil {
			return nil, err
		}
		return gemini.NewSummarizer(client, cfg.Model, cfg.Prompt), nil
	default:
		return nil, nil
	}
}

func printArticle(stdout io.Writer, article *linksum.Article, text string) {
	if article.Title != "" {
		fmt.Fprintf(stdout, "# %s\n\n", article.Title)
	}
	if article.Author != "" || article.PublishedAt != "" {
		fmt.Fprintf(stdout, "%s %s\n\n", article.Author, article.PublishedAt)
	}
	fmt.Fprintln(stdout, text)
}
