package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"evotimetable/internal/catalog"
	"evotimetable/internal/config"
	"evotimetable/internal/export"
	"evotimetable/internal/genetic"
)

func main() {
	// Define arguments; unset numeric arguments fall back to the environment
	// configuration, which in turn falls back to the defaults
	filePtr := flag.String("file", "", "Path to the JSON catalog file")
	outPtr := flag.String("out", "timetable.xlsx", "Path to the .xlsx file where the timetable will be written")
	seedPtr := flag.Int64("seed", 0, "Random seed; 0 keeps the configured value")
	populationPtr := flag.Int("population", 0, "Population size; 0 keeps the configured value")
	generationsPtr := flag.Int("generations", 0, "Maximum generations; 0 keeps the configured value")
	timeoutPtr := flag.Duration("timeout", 0, "Wall-clock bound for the run; 0 disables it")
	flag.Parse()

	// Validate arguments
	if *filePtr == "" {
		log.Fatal("an input file must be specified")
	} else if *outPtr == "" {
		log.Fatal("an output file must be specified")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}

	params := cfg.Parameters()
	if *seedPtr != 0 {
		params.Seed = *seedPtr
	} else if params.Seed == 0 {
		params.Seed = time.Now().UnixNano()
	}
	if *populationPtr > 0 {
		params.PopulationSize = *populationPtr
	}
	if *generationsPtr > 0 {
		params.MaxGenerations = *generationsPtr
	}

	// Extract input
	cat, err := catalog.CatalogFromJson(*filePtr)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}

	// Initialize engine
	engine, err := genetic.NewEngine(cat, params)
	if err != nil {
		log.Fatalf("invalid parameters: %v", err)
	}

	// An interrupt or the wall-clock bound cancels the run at the next
	// generation boundary; the engine still returns its best schedule so far
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *timeoutPtr > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeoutPtr)
		defer cancel()
	}

	// Evolve timetable
	result, err := engine.Run(ctx)
	if err != nil {
		validationErr := &genetic.ValidationError{}
		if errors.As(err, &validationErr) {
			log.Fatalf("catalog is infeasible: %v", err)
		}
		log.Fatalf("an error occurred during the run: %v", err)
	}

	fmt.Printf("Generations: %v\n", result.Generations)
	fmt.Printf("Termination: %v\n", result.Termination)
	fmt.Printf("Hard violations: %v\n", result.HardViolations)
	fmt.Printf("Soft penalty: %v\n", result.SoftPenalty)

	if err := export.WriteXLSX(*outPtr, result); err != nil {
		log.Fatalf("an error occurred while writing the output file: %v", err)
	}
	fmt.Printf("Timetable written to %v\n", *outPtr)

	if result.Warning != nil {
		fmt.Printf("Warning: %v\n", result.Warning)
		os.Exit(2)
	}
}
