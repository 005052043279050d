// Command coalign builds a five-language parallel corpus from government
// DOCX documents. It provides commands for extracting and aligning document
// sets, consolidating them into per-language corpus files, and verifying the
// persisted corpus.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"coalign/core/para"
	"coalign/core/sqlite"
	"coalign/core/verify"
	"coalign/internal/config"
	"coalign/internal/logging"
	"coalign/internal/pipeline"
	"coalign/internal/report"
)

const version = "0.1.0"

// CLI defines the command-line interface for coalign.
var CLI struct {
	// Global flags
	Config    string `name:"config" short:"c" help:"Configuration file path" type:"path"`
	Input     string `name:"input" short:"i" help:"Input directory holding the source document folders" type:"path"`
	Output    string `name:"output" short:"o" help:"Output directory for aligned files and the corpus" type:"path"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"info" enum:"debug,info,warn,error"`
	LogFormat string `name:"log-format" help:"Log format (text, json)" default:"text" enum:"text,json"`

	Run         RunCmd         `cmd:"" help:"Extract, align, consolidate, and verify in one pass"`
	Extract     ExtractCmd     `cmd:"" help:"Extract and align document sets, writing per-document files"`
	Consolidate ConsolidateCmd `cmd:"" help:"Consolidate previously aligned documents into the corpus"`
	Verify      VerifyCmd      `cmd:"" help:"Recount the persisted corpus files and report divergence"`
	Version     VersionCmd     `cmd:"" help:"Print version information"`
}

// loadConfig resolves the effective configuration from the config file and
// global flag overrides.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if CLI.Config != "" {
		loaded, err := config.Load(CLI.Config)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if CLI.Input != "" {
		cfg.Input = CLI.Input
	}
	if CLI.Output != "" {
		cfg.Output = CLI.Output
	}
	if cfg.Input == "" {
		return config.Config{}, fmt.Errorf("no input directory: set --input or the input key in the configuration file")
	}
	return cfg, nil
}

func initLogging() {
	level := logging.LevelInfo
	switch CLI.LogLevel {
	case "debug":
		level = logging.LevelDebug
	case "warn":
		level = logging.LevelWarn
	case "error":
		level = logging.LevelError
	}
	format := logging.FormatText
	if CLI.LogFormat == "json" {
		format = logging.FormatJSON
	}
	logging.InitLogger(level, format)
}

// signalContext returns a context cancelled by SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// RunCmd executes the full pipeline.
type RunCmd struct{}

func (c *RunCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}
	summary, err := p.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Print(summary.Render())
	if !summary.Verification.OK {
		return fmt.Errorf("corpus verification failed")
	}
	return nil
}

// ExtractCmd runs extraction and alignment without consolidating.
type ExtractCmd struct{}

func (c *ExtractCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}
	outcome, err := p.Extract(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Run %s: %d documents aligned, %d incomplete sets skipped\n",
		outcome.RunID, len(outcome.Results), outcome.Incomplete)
	for _, doc := range outcome.Documents {
		if doc.Status == report.StatusAligned {
			fmt.Printf("  %s: %d paragraphs\n", doc.DocumentID, doc.Length)
		} else {
			fmt.Printf("  %s: %s (%s)\n", doc.DocumentID, doc.Status, doc.Reason)
		}
	}
	return nil
}

// ConsolidateCmd merges persisted aligned documents into the corpus files.
type ConsolidateCmd struct{}

func (c *ConsolidateCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}
	results, err := pipeline.LoadAligned(cfg.AlignedDir())
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no aligned documents under %s: run extract first", cfg.AlignedDir())
	}

	verification, err := p.Consolidate(results)
	if err != nil {
		return err
	}
	printVerification(verification.OK, verification.Counts)
	if !verification.OK {
		return fmt.Errorf("corpus verification failed")
	}
	fmt.Printf("Consolidated %d documents into %s\n", len(results), cfg.CorpusDir())
	return nil
}

// VerifyCmd recounts the persisted corpus files. With --aligned it also
// recounts every per-document aligned directory.
type VerifyCmd struct {
	Dir     string `arg:"" optional:"" help:"Corpus directory (default: <output>/corpus)" type:"path"`
	Aligned bool   `help:"Also verify each per-document aligned directory"`
}

func (c *VerifyCmd) Run() error {
	cfg := config.Default()
	if CLI.Config != "" {
		loaded, err := config.Load(CLI.Config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if CLI.Output != "" {
		cfg.Output = CLI.Output
	}

	dir := c.Dir
	if dir == "" {
		dir = cfg.CorpusDir()
	}

	failed := false
	if c.Aligned {
		docs, err := pipeline.LoadAligned(cfg.AlignedDir())
		if err != nil {
			return err
		}
		for _, doc := range docs {
			rep, err := verify.VerifyFiles(filepath.Join(cfg.AlignedDir(), doc.DocumentID))
			if err != nil {
				return err
			}
			if rep.OK {
				fmt.Printf("  %s: %d paragraphs OK\n", doc.DocumentID, doc.Length())
			} else {
				failed = true
				for _, m := range rep.Mismatches {
					fmt.Printf("  %s: %s has %d paragraphs, %s has %d\n",
						doc.DocumentID, m.A, m.Expected, m.B, m.Actual)
				}
			}
		}
	}

	rep, err := verify.VerifyFiles(dir)
	if err != nil {
		return err
	}
	printVerification(rep.OK, rep.Counts)
	if failed || !rep.OK {
		return fmt.Errorf("corpus verification failed")
	}
	return nil
}

func printVerification(ok bool, counts map[para.Language]int) {
	for _, lang := range para.Languages() {
		fmt.Printf("  %s: %d paragraphs\n", lang, counts[lang])
	}
	if ok {
		fmt.Println("Verification: OK")
	} else {
		fmt.Println("Verification: FAILED")
	}
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("coalign version %s (sqlite driver: %s)\n", version, sqlite.DriverType())
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("coalign"),
		kong.Description("Parallel corpus builder for five-language government documents"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	initLogging()
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
