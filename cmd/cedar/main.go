// Command cedar parses scripture citations from the command line and
// serves the parse API.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/CedarCite/core/canon"
	"github.com/FocuswithJustin/CedarCite/core/osisref"
	"github.com/FocuswithJustin/CedarCite/core/passage"
	"github.com/FocuswithJustin/CedarCite/internal/api"
	"github.com/FocuswithJustin/CedarCite/internal/config"
	"github.com/FocuswithJustin/CedarCite/internal/logging"
)

var CLI struct {
	Canon    string `help:"Path to an alternate canon file (.json, .json.xz, .xml, .db)." type:"path"`
	Checksum string `help:"Expected BLAKE3 checksum of the canon file."`

	Parse   ParseCmd   `cmd:"" help:"Parse a citation and print the reference tree."`
	Books   BooksCmd   `cmd:"" help:"List the books of the active canon."`
	Serve   ServeCmd   `cmd:"" help:"Run the parse API server."`
	Version VersionCmd `cmd:"" help:"Print the version."`
}

// ParseCmd parses one citation from its arguments.
type ParseCmd struct {
	Passage []string `arg:"" help:"Citation text, e.g. 'Gen. 1:15-18, 21; Matt 1'."`
	JSON    bool     `help:"Emit the tree as JSON."`
	Clean   bool     `help:"Prune invalid nodes before printing."`
	OSIS    bool     `help:"Treat the input as an OSIS id such as Gen.1.1-3."`
}

func (c *ParseCmd) Run() error {
	provider, err := loadCanon()
	if err != nil {
		return err
	}

	text := strings.Join(c.Passage, " ")
	if c.OSIS {
		ref, err := osisref.ParseRef(text)
		if err != nil {
			return err
		}
		text = ref.Citation()
	}

	books := passage.ParseBooks(text, provider)
	result := api.BuildPassageResult(text, books, c.Clean)

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printTree(result)
	if len(result.Errors) > 0 {
		return fmt.Errorf("%d problem(s) found", len(result.Errors))
	}
	return nil
}

func printTree(result api.PassageResult) {
	for _, b := range result.Books {
		name := b.Name
		if name == "" {
			name = "(unresolved)"
		}
		fmt.Println(name)
		for _, ch := range b.Chapters {
			fmt.Printf("  %d: %s\n", ch.Number, formatVerses(ch.Verses))
		}
	}
	if result.Removed > 0 {
		fmt.Printf("removed %d invalid node(s)\n", result.Removed)
	}
	for _, msg := range result.Errors {
		fmt.Fprintln(os.Stderr, "error:", msg)
	}
}

// formatVerses collapses consecutive verse numbers back into ranges
// for display: [15 16 17 18 21] prints as "15-18, 21".
func formatVerses(nums []int) string {
	if len(nums) == 0 {
		return "-"
	}
	var parts []string
	start := nums[0]
	prev := nums[0]
	flush := func() {
		if start == prev {
			parts = append(parts, fmt.Sprintf("%d", start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, prev))
		}
	}
	for _, n := range nums[1:] {
		if n == prev+1 {
			prev = n
			continue
		}
		flush()
		start, prev = n, n
	}
	flush()
	return strings.Join(parts, ", ")
}

// BooksCmd lists the active canon's books.
type BooksCmd struct{}

func (c *BooksCmd) Run() error {
	provider, err := loadCanon()
	if err != nil {
		return err
	}
	table, ok := provider.(*canon.Table)
	if !ok {
		return fmt.Errorf("canon provider cannot enumerate books")
	}
	for _, rec := range table.Records() {
		fmt.Printf("%-20s %-8s %3d chapters %5d verses\n",
			rec.Name, rec.ShortName, rec.Chapters(), rec.TotalVerses())
	}
	return nil
}

// ServeCmd runs the HTTP/WebSocket API.
type ServeCmd struct {
	Config string `help:"Path to a YAML config file." type:"path"`
	Port   int    `help:"Listen port (overrides config)."`
}

func (c *ServeCmd) Run() error {
	cfg := config.Default()
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if CLI.Canon == "" && cfg.Canon.Path != "" {
		CLI.Canon = cfg.Canon.Path
		CLI.Checksum = cfg.Canon.Checksum
	}

	logging.Init(logging.ParseLevel(cfg.Log.Level), logging.ParseFormat(cfg.Log.Format))

	provider, err := loadCanon()
	if err != nil {
		return err
	}

	srv := api.NewServer(api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Canon:          provider,
	})
	return srv.Start()
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println("cedar", api.Version)
	return nil
}

// loadCanon resolves the active canon provider from the global flags.
// The file format is chosen by extension; no flag means the built-in
// KJV canon.
func loadCanon() (canon.Provider, error) {
	path := CLI.Canon
	if path == "" {
		return canon.Default(), nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening canon: %w", err)
		}
		defer f.Close()
		return canon.LoadXML(f)
	case ".db", ".sqlite", ".sqlite3":
		return canon.LoadSQLite(path)
	default:
		if CLI.Checksum != "" {
			return canon.LoadFileChecked(path, CLI.Checksum)
		}
		return canon.LoadFile(path)
	}
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("cedar"),
		kong.Description("Scripture citation parser and reference API."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
