package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"a51-stream/internal/batch"
	"a51-stream/internal/config"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	key := flag.String("key", "", "Key: hex (GSM bit order) or binary digits")
	firstFrame := flag.Int64("frame", 0, "Frame number of the first file; later files count up")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	outputDir := flag.String("output", "", "Output directory (default: a51-out)")
	manifest := flag.String("manifest", "", "Decrypt the files listed in this manifest.json instead of encrypting arguments")

	flag.Parse()

	cfg, err := config.FromFile(*configFile, config.Flags{
		Key:       *key,
		Workers:   *workers,
		OutputDir: *outputDir,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	g, err := cfg.Geometry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	keyBits, err := cfg.KeyBitsSeq()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	batchCfg := batch.Config{
		Geometry:  g,
		Key:       keyBits,
		OutputDir: cfg.OutputDir,
		Workers:   cfg.Workers,
		Progress:  os.Stdout,
	}

	var jobs []batch.Job
	if *manifest != "" {
		entries, err := batch.ReadManifest(*manifest)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading manifest: %v\n", err)
			os.Exit(1)
		}
		jobs = batch.ManifestJobs(filepath.Dir(*manifest), entries)
		batchCfg.Decrypt = true
	} else {
		if *firstFrame < 0 {
			fmt.Fprintln(os.Stderr, "Error: -frame must not be negative")
			os.Exit(2)
		}
		jobs = batch.Jobs(flag.Args(), uint64(*firstFrame))
	}

	if len(jobs) == 0 {
		fmt.Println("No files to process.")
		os.Exit(0)
	}

	mode := "encrypt"
	if batchCfg.Decrypt {
		mode = "decrypt"
	}
	fmt.Printf("A5/1 batch %s\n", mode)
	fmt.Printf("Files: %d, Workers: %d\n", len(jobs), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := batch.Run(batchCfg, jobs)
	elapsed := time.Since(start)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	success := 0
	var failed []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed = append(failed, r)
		}
	}
	fmt.Printf("Processed: %d/%d\n", success, len(jobs))

	if !batchCfg.Decrypt {
		manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
		if err := batch.WriteManifest(manifestPath, results); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest: %v\n", err)
		} else {
			fmt.Printf("Manifest: %s\n", manifestPath)
		}
	}

	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		limit := 20
		if len(failed) < limit {
			limit = len(failed)
		}
		for _, r := range failed[:limit] {
			fmt.Printf("  frame %d %s: %s\n", r.Frame, r.Path, r.Error)
		}
		if len(failed) > limit {
			fmt.Printf("  ... and %d more\n", len(failed)-limit)
		}
		os.Exit(1)
	}
}
