package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ledgerlens/receipt-engine/internal/common"
	"github.com/ledgerlens/receipt-engine/internal/imagegate"
	"github.com/ledgerlens/receipt-engine/internal/pipeline"
	"github.com/ledgerlens/receipt-engine/internal/vision/openai"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var (
		file    = flag.String("file", "", "path to the receipt image (jpeg/png/webp)")
		txType  = flag.String("type", pipeline.TransactionExpense, "expected transaction type: income|expense")
		class   = flag.String("class", pipeline.ClassificationPersonal, "expected classification: personal|business")
		envFile = flag.String("env", "", "optional .env file to load")
	)
	flag.Parse()

	if *file == "" {
		logger.Error("usage", "cmd", "extract-receipt -file <image> [-type expense] [-class personal]")
		os.Exit(2)
	}

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			logger.Error("load env file", "path", *envFile, "error", err)
			os.Exit(2)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		logger.Error("read image", "path", *file, "error", err)
		os.Exit(1)
	}

	gate := imagegate.New(imagegate.Config{
		MaxBytes:     cfg.Image.MaxBytes,
		AllowedTypes: cfg.Image.AllowedTypes,
		MaxDimension: cfg.Image.MaxDimension,
	}, logger)

	recognizer := openai.NewClient(openai.Config{
		APIKey:      cfg.Vision.APIKey,
		BaseURL:     cfg.Vision.BaseURL,
		Model:       cfg.Vision.Model,
		Temperature: cfg.Vision.Temperature,
		Timeout:     cfg.Vision.Timeout,
	}, logger)

	p := pipeline.New(pipeline.Config{
		DefaultCurrency: cfg.Vision.DefaultCurrency,
	}, gate, recognizer, logger)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Vision.Timeout)
	defer cancel()

	res, err := p.Extract(ctx, pipeline.Input{
		Image:           data,
		ContentType:     contentTypeForExt(*file),
		TransactionType: *txType,
		Classification:  *class,
	})
	if err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}

	decision := pipeline.NewGate(cfg.Gating).Evaluate(res)

	out := struct {
		Result   any `json:"result"`
		Decision any `json:"decision"`
	}{res, decision}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("encode output", "error", err)
		os.Exit(1)
	}
}

func contentTypeForExt(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
