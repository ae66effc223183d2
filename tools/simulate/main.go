package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"tariff-simulator/internal/ingestion/infrastructure/decoder"
	"tariff-simulator/internal/rating/domain"
	simapp "tariff-simulator/internal/simulation/application"
	"tariff-simulator/internal/simulation/domain"
	tariffapp "tariff-simulator/internal/tariffs/application"
	tarifffile "tariff-simulator/internal/tariffs/infrastructure/file"
	tariffsqlite "tariff-simulator/internal/tariffs/infrastructure/sqlite"
)

type config struct {
	filePath    string
	tariffsPath string
	catalogPath string
	importYAML  bool
	currentPlan string
	configPath  string
	asJSON      bool
}

func main() {
	cfg, err := parseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	if cfg.configPath != "" {
		_ = os.Setenv("SIMULATOR_CONFIG", cfg.configPath)
	}
	simCfg, err := simapp.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	if cfg.currentPlan == "" {
		cfg.currentPlan = simCfg.CurrentPlanName
	}

	ctx := context.Background()
	tariffs, err := loadTariffs(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tariffs:", err)
		os.Exit(2)
	}

	data, err := os.ReadFile(cfg.filePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read file:", err)
		os.Exit(2)
	}
	kind, ok := decoder.KindFromUpload(filepath.Base(cfg.filePath), "")
	if !ok {
		fmt.Fprintf(os.Stderr, "unsupported file type: %s\n", cfg.filePath)
		os.Exit(2)
	}

	engine, err := rating.NewEngine(simCfg.Taxes)
	if err != nil {
		fmt.Fprintln(os.Stderr, "engine:", err)
		os.Exit(2)
	}
	pipeline, err := simapp.NewPipeline(simCfg.Layout, engine)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pipeline:", err)
		os.Exit(2)
	}
	result, err := pipeline.Run(data, kind, tariffs, cfg.currentPlan)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", simapp.ErrorCode(err), err)
		os.Exit(1)
	}

	if cfg.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintln(os.Stderr, "encode:", err)
			os.Exit(1)
		}
		return
	}
	printResult(result)
}

func parseFlags() (config, error) {
	var cfg config
	flag.StringVar(&cfg.filePath, "file", "", "meter-reading export (.csv, .txt, .xlsx)")
	flag.StringVar(&cfg.tariffsPath, "tariffs", getenvDefault("TARIFFS_SEED_FILE", ""), "tariff YAML file")
	flag.StringVar(&cfg.catalogPath, "catalog", "", "SQLite tariff catalog path")
	flag.BoolVar(&cfg.importYAML, "import", false, "import the tariff YAML into the SQLite catalog before rating")
	flag.StringVar(&cfg.currentPlan, "current", "", "name of the current plan")
	flag.StringVar(&cfg.configPath, "config", "", "simulator YAML config (layout, taxes)")
	flag.BoolVar(&cfg.asJSON, "json", false, "print the result as JSON")
	flag.Parse()

	if cfg.filePath == "" {
		return cfg, errors.New("missing -file")
	}
	if cfg.tariffsPath == "" && cfg.catalogPath == "" {
		return cfg, errors.New("missing -tariffs or -catalog")
	}
	if cfg.importYAML && (cfg.tariffsPath == "" || cfg.catalogPath == "") {
		return cfg, errors.New("-import needs both -tariffs and -catalog")
	}
	return cfg, nil
}

func loadTariffs(ctx context.Context, cfg config) ([]rating.Tariff, error) {
	if cfg.catalogPath == "" {
		return tarifffile.LoadFile(cfg.tariffsPath)
	}

	catalog, err := tariffsqlite.Open(ctx, cfg.catalogPath)
	if err != nil {
		return nil, err
	}
	defer catalog.Close()

	service, err := tariffapp.NewService(catalog)
	if err != nil {
		return nil, err
	}
	if cfg.importYAML {
		seed, err := tarifffile.LoadFile(cfg.tariffsPath)
		if err != nil {
			return nil, err
		}
		added, err := service.Seed(ctx, seed)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "imported %d of %d tariffs into %s\n", added, len(seed), cfg.catalogPath)
	}
	return service.ListTariffs(ctx)
}

func printResult(result simulation.Result) {
	summary := result.Summary
	fmt.Printf("period:            %s (%d days, factor %.4f)\n", summary.Period, summary.ObservedDays, summary.AnnualizationFactor)
	fmt.Printf("annual kWh:        %.2f\n", summary.TotalConsumption)
	fmt.Printf("best option:       %s %.2f\n", summary.BestOption.Name, summary.BestOption.TotalCost)
	if summary.CurrentOption.Found {
		fmt.Printf("current option:    %s %.2f (rank %d)\n", summary.CurrentOption.Name, summary.CurrentOption.TotalCost, summary.CurrentOption.Rank)
	} else {
		fmt.Println("current option:    not in catalog")
	}
	fmt.Printf("estimated savings: %.2f\n\n", summary.BestOption.Savings)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "rank\tcompany\tfixed\tconsumption\tother\tsubtotal\tspecial tax\tvat\ttotal\t")
	for _, cost := range result.Details {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t\n",
			cost.Rank, cost.Name, cost.FixedFee, cost.ConsumptionCost, cost.OtherCosts,
			cost.Subtotal, cost.SpecialTax, cost.VAT, cost.TotalCost)
	}
	_ = w.Flush()
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
