package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"

	"github.com/studio360/invoice-parser/internal/batch"
	"github.com/studio360/invoice-parser/internal/pipeline"
	"github.com/studio360/invoice-parser/internal/schema"
	"github.com/studio360/invoice-parser/internal/sheet"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		in         = flag.String("in", "", "invoice file to parse: txt, csv or xlsx")
		dir        = flag.String("dir", "", "directory of invoice files to parse in parallel")
		structured = flag.String("structured", "", "optional JSON file with the upstream structured payload (single-file mode)")
		workers    = flag.Int("workers", 4, "worker count for directory mode")
		validate   = flag.Bool("validate", false, "validate output records against the JSON schema")
		compact    = flag.Bool("compact", false, "print compact JSON instead of indented")
	)
	flag.Parse()

	if (*in == "") == (*dir == "") {
		printError("Error: exactly one of -in or -dir is required\n")
		os.Exit(1)
	}

	_ = godotenv.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	pipe := pipeline.New(logger, pipeline.Config{})

	var out any
	if *in != "" {
		rec, err := parseOne(pipe, *in, *structured)
		if err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
		out = rec
	} else {
		results, err := parseDir(pipe, logger, *dir, *workers)
		if err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
		out = results
	}

	b, err := encode(out, *compact)
	if err != nil {
		printError("Error: encode output: %v\n", err)
		os.Exit(1)
	}

	if *validate {
		if err := validateOutput(out); err != nil {
			printError("Error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println(string(b))
}

func parseOne(pipe *pipeline.Pipeline, in, structured string) (any, error) {
	f, err := os.Open(in)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", in, err)
	}
	defer f.Close()

	text, err := sheet.FlattenUpload(in, f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", in, err)
	}

	var payloadJSON []byte
	if structured != "" {
		payloadJSON, err = os.ReadFile(structured)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", structured, err)
		}
	}
	rec, err := pipe.ParseJSON(text, payloadJSON)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func parseDir(pipe *pipeline.Pipeline, logger *slog.Logger, dir string, workers int) ([]batch.Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	runner := batch.NewRunner(pipe, logger, batch.WithWorkers(workers))
	return runner.Run(context.Background(), paths), nil
}

func encode(v any, compact bool) ([]byte, error) {
	if compact {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}

func validateOutput(v any) error {
	validateRecord := func(rec any) error {
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return schema.ValidateRecordJSON(b)
	}
	if results, ok := v.([]batch.Result); ok {
		for _, r := range results {
			if r.Err != nil {
				continue
			}
			if err := validateRecord(r.Record); err != nil {
				return fmt.Errorf("%s: %w", r.Path, err)
			}
		}
		return nil
	}
	return validateRecord(v)
}
