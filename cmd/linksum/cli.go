package main

import "time"

// CLI defines the command-line interface.
type CLI struct {
	URL string `arg:"" help:"Article URL (or share-card payload) to extract."`

	Config    string        `help:"Path to YAML config file." default:"linksum.yaml"`
	Backend   string        `help:"Extractor backend: heuristic, readability, or trafilatura." default:""`
	NoRender  bool          `help:"Disable the JavaScript-rendering tier."`
	Summarize bool          `help:"Summarize the extracted text with the configured backend."`
	Timeout   time.Duration `help:"Override the fetch timeout."`
	Verbose   bool          `help:"Enable debug logging."`
}
