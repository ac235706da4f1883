package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vanshika/fintrace/investigator/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		wallet      = flag.String("wallet", "", "investigated wallet address (random 0x address per report when empty)")
		mode        = flag.String("mode", string(cfg.Mode), "pattern to generate: "+modeList())
		reports     = flag.Int("reports", cfg.Reports, "number of payloads to generate")
		normalDays  = flag.Int("normal-days", cfg.NormalDays, "days of background activity mixed into non-normal modes")
		seed        = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir   = flag.String("output-dir", "data", "directory to write <report id>.json files")
		writeStdout = flag.Bool("stdout", false, "write the dataset to stdout instead of files")
	)
	flag.Parse()

	parsedMode, err := generator.ParseMode(*mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	genCfg := generator.Config{
		Wallet:     strings.TrimSpace(*wallet),
		Mode:       parsedMode,
		Reports:    *reports,
		NormalDays: *normalDays,
		Seed:       *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen := generator.New(genCfg)
	dataset, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *writeStdout {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(dataset); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write dataset to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	paths, err := generator.WriteDataset(dataset, *outputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d %s payloads into %s\n", len(paths), parsedMode, *outputDir)
}

func modeList() string {
	modes := generator.Modes()
	names := make([]string, 0, len(modes))
	for _, m := range modes {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}
