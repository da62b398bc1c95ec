package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/SrikarVamsi/Gem/config"
	"github.com/SrikarVamsi/Gem/scam"
	"github.com/SrikarVamsi/Gem/service"
	"github.com/SrikarVamsi/Gem/sources"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// One-shot pipeline run from the command line:
//
//	check-cli "claim text to verify"
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: No .env file found, using environment variables")
	}

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: check-cli <content to check>")
		os.Exit(1)
	}
	content := strings.Join(os.Args[1:], " ")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	verdictService := service.NewVerdictService(
		service.VerdictWithAPIKey(cfg.GeminiAPIKey),
		service.VerdictWithModelName(cfg.GeminiModel),
		service.VerdictWithPreviewChars(cfg.PreviewChars),
		service.VerdictWithLogger(logger),
	)
	defer verdictService.Close()

	checkService := service.NewCheckService(
		service.CheckWithFinder(sources.NewFinder(cfg.TrustedDomains, cfg.SearchTimeout, logger)),
		service.CheckWithFetcher(sources.NewFetcher(cfg.FetchTimeout, cfg.MaxSourceChars, logger)),
		service.CheckWithDetector(scam.NewDetector()),
		service.CheckWithSynthesizer(verdictService),
		service.CheckWithSearchLimit(cfg.SearchLimit),
		service.CheckWithLogger(logger),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := checkService.Check(ctx, service.CheckRequest{Content: content})
	if err != nil {
		log.Fatalf("Check failed: %v", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	fmt.Println(string(out))
}
