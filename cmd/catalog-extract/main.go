package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"catalog-extract/internal/config"
	"catalog-extract/internal/exporter"
	"catalog-extract/internal/extract"
	"catalog-extract/internal/fetch"
	"catalog-extract/internal/logger"
	"catalog-extract/internal/model"
	"catalog-extract/internal/tabular"
	"catalog-extract/internal/ui"
)

const (
	appName    = "Catalog Extract"
	appVersion = "1.0.0"
	appDesc    = "Reshapes supplier catalog CSV/XLSX exports into normalized product records"
)

var (
	configPath   string
	verbose      bool
	showVersion  bool
	outputDir    string
	formats      string
	excludePhoto bool
	noProgress   bool
)

func init() {
	flag.StringVar(&configPath, "config", "config.yaml", "Path to configuration file")
	flag.StringVar(&configPath, "c", "config.yaml", "Path to configuration file (shorthand)")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging (DEBUG level)")
	flag.BoolVar(&verbose, "v", false, "Enable verbose logging (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.StringVar(&outputDir, "output", "", "Override output directory from config")
	flag.StringVar(&formats, "format", "", "Comma-separated output formats (excel,json); empty uses the config")
	flag.BoolVar(&excludePhoto, "exclude-photo", false, "Blank the Photo field in the output")
	flag.BoolVar(&noProgress, "no-progress", false, "Disable progress bars")
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if showVersion {
		fmt.Printf("%s v%s\n%s\n", appName, appVersion, appDesc)
		return 0
	}

	source := flag.Arg(0)
	if source == "" {
		fmt.Println("Usage: catalog-extract [flags] <file-or-url>")
		flag.PrintDefaults()
		return 1
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load configuration: %v\n", err)
		return 1
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("❌ Invalid configuration: %v\n", err)
		return 1
	}
	if err := cfg.EnsureOutputDir(); err != nil {
		fmt.Printf("❌ %v\n", err)
		return 1
	}

	logPath := filepath.Join(cfg.Output.Dir, "catalog_extract.log")
	if err := logger.Init(os.Stdout, logPath, verbose); err != nil {
		fmt.Printf("❌ Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Close()

	if err := runExtraction(cfg, source); err != nil {
		logger.Error("Extraction failed: %v", err)
		return 1
	}

	logger.Info("✅ Extraction Complete. Check [%s] directory.", cfg.Output.Dir)
	return 0
}

func runExtraction(cfg *config.Config, source string) error {
	pipeline := ui.NewPipeline([]ui.Phase{
		ui.PhaseFetching,
		ui.PhaseParsing,
		ui.PhaseMapping,
		ui.PhaseBuilding,
		ui.PhaseNormalizing,
		ui.PhaseExporting,
	})
	if noProgress {
		pipeline.Disable()
	}

	// --- Phase 1: Fetching ---
	logger.Info("Phase 1: Fetching %s...", source)
	fetchBar := pipeline.NextPhase(1)
	body, err := readSource(cfg, source)
	if err != nil {
		return err
	}
	fetchBar.Finish()

	// --- Phase 2: Parsing ---
	logger.Info("Phase 2: Parsing...")
	parseBar := pipeline.NextPhase(1)
	raw, err := tabular.Parse(source, body)
	if err != nil {
		return err
	}
	parseBar.Finish()
	logger.Info("Parsed %d raw rows", raw.NumRows())

	opts := cfg.ExtractOptions(source)
	spec := defaultHeaderSpec()

	// --- Phase 3: Mapping ---
	logger.Info("Phase 3: Locating headers & mapping columns...")
	mapBar := pipeline.NextPhase(1)
	headerRow, subheaderRow := extract.LocateHeader(raw, opts.ScanLimit, opts.FallbackHeaderRow, opts.FallbackSubheaderRow)
	table := tabular.Reheader(raw, headerRow, subheaderRow)
	mapping := extract.BuildColumnMapping(table, spec)
	mapBar.Finish()
	logger.Info("Header at row %d, %d of %d columns mapped", headerRow, len(mapping), table.NumCols())

	// --- Phase 4: Building ---
	logger.Info("Phase 4: Building records...")
	buildBar := pipeline.NextPhase(table.NumRows())
	built := extract.BuildRecords(table, mapping)
	buildBar.SetTotal(len(built))
	buildBar.Add(len(built))
	buildBar.Finish()

	// --- Phase 5: Normalizing ---
	logger.Info("Phase 5: Normalizing %d records...", len(built))
	normBar := pipeline.NextPhase(1)
	extract.Normalize(built, table, opts)
	normBar.Finish()

	records := make([]model.Record, len(built))
	for i, br := range built {
		records[i] = br.Record
	}
	if excludePhoto {
		for _, rec := range records {
			if _, ok := rec["Photo"]; ok {
				rec["Photo"] = ""
			}
		}
	}

	// --- Phase 6: Exporting ---
	logger.Info("Phase 6: Exporting...")
	targetFormats := cfg.Output.Formats
	if formats != "" {
		targetFormats = strings.Split(formats, ",")
	}
	exporters := exporter.GetExporters(targetFormats)
	if len(exporters) == 0 {
		return fmt.Errorf("no valid output formats in %q", strings.Join(targetFormats, ","))
	}

	expBar := pipeline.NextPhase(len(exporters))
	var exportErrors []error
	for _, exp := range exporters {
		if err := exp.Export(records, cfg); err != nil {
			logger.Error("Export failed: %v", err)
			exportErrors = append(exportErrors, err)
		}
		expBar.Increment()
	}
	expBar.Finish()
	pipeline.Finish()

	if len(exportErrors) > 0 {
		return fmt.Errorf("one or more exports failed: %d errors", len(exportErrors))
	}
	return nil
}

// readSource loads the input from a URL or a local file path.
func readSource(cfg *config.Config, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		f := fetch.New(time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second)
		return f.Get(context.Background(), source)
	}
	return os.ReadFile(source)
}

// defaultHeaderSpec targets every expected output field by its own name,
// with the standard sub-header labels for the grouped ones. API callers
// send their own mapping; the CLI assumes a well-labeled sheet.
func defaultHeaderSpec() model.HeaderSpec {
	spec := make(model.HeaderSpec, 0, len(model.ExpectedFields))
	for _, field := range model.ExpectedFields {
		entry := model.HeaderEntry{Header: field, Selected: field}
		var subs []string
		switch field {
		case "Product size":
			subs = []string{"(CM)"}
		case "Measurement(cm)-1", "Measurement(cm)-2":
			subs = model.DimensionKeys
		case "Quantity (pc)":
			subs = model.ContainerKeys
		}
		for _, s := range subs {
			entry.SubHeaders = append(entry.SubHeaders, model.SubHeader{Name: s, Selected: s})
		}
		entry.UseSubheaders = len(entry.SubHeaders) > 0
		spec = append(spec, entry)
	}
	return spec
}
