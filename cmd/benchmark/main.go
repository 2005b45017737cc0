// ABOUTME: Command-line benchmark runner for the support pipeline
// ABOUTME: Replays routing scenarios against the live API and outputs JSON results

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/pitcrewhq/pitcrew/benchmarks/scenarios"
)

func main() {
	testID := flag.String("test", "", "Run specific test (specs, maintenance, troubleshoot, safety, human). If empty, runs all tests.")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (continuing anyway): %v", err)
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable is required for benchmarks")
	}

	fmt.Println("========================================")
	fmt.Println("Pitcrew Pipeline Benchmarks")
	fmt.Println("========================================")
	fmt.Println()

	runner, err := scenarios.NewBenchmarkRunner(apiKey, *verbose)
	if err != nil {
		log.Fatalf("Failed to create benchmark runner: %v", err)
	}

	var results []scenarios.TestResult

	if *testID == "" {
		fmt.Println("Running all benchmark scenarios...")
		fmt.Println()
		results, err = runner.RunAllTests()
		if err != nil {
			log.Fatalf("Benchmark failed: %v", err)
		}
	} else {
		scenario, ok := scenarios.ScenarioByID(*testID)
		if !ok {
			log.Fatalf("Unknown test ID: %s", *testID)
		}
		result, err := runner.RunTest(scenario)
		if err != nil {
			log.Fatalf("Benchmark failed: %v", err)
		}
		results = []scenarios.TestResult{result}
	}

	passed := 0
	for _, result := range results {
		fmt.Printf("%-14s %-26s %s (%.2f)\n", result.TestID, result.TestName, result.Status, result.OverallScore)
		if result.Status == "PASS" {
			passed++
		}
	}
	fmt.Printf("\n%d/%d scenarios passed\n", passed, len(results))

	if err := scenarios.SaveResults(results, *outputPath); err != nil {
		log.Fatalf("Failed to save results: %v", err)
	}
	fmt.Printf("Results written to %s\n", *outputPath)

	if passed < len(results) {
		os.Exit(1)
	}
}
