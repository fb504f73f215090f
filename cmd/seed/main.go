package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math/rand/v2"
	"net/http"
	"os"

	"catalog-backend/infrastructure/config"
	"catalog-backend/infrastructure/di"

	"go.uber.org/zap"
)

// sample is what the seed writes when no file is given.
var sample = []map[string]any{
	{"title": "Item 1", "description": "Description for Item 1", "price": 19},
	{"title": "Item 2", "description": "Description for Item 2", "price": 29},
	{"title": "Item 3", "description": "Description for Item 3", "price": 39},
}

func main() {
	file := flag.String("file", "", "JSON array of product payloads to load instead of the sample set")
	flag.Parse()

	cfg, err := config.Load(config.WithoutNotifier())
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	logger := container.Logger

	payloads := sample
	if *file != "" {
		if payloads, err = readPayloads(*file); err != nil {
			logger.Fatal("Failed to read seed file", zap.String("file", *file), zap.Error(err))
		}
	}

	var created, skipped, failed int
	for _, payload := range payloads {
		if _, ok := payload["count"]; !ok {
			payload["count"] = rand.IntN(10)
		}
		body, err := json.Marshal(payload)
		if err != nil {
			logger.Error("Failed to encode payload", zap.Error(err))
			failed++
			continue
		}

		resp := container.CreateProduct.Handle(ctx, body)
		switch resp.StatusCode {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			skipped++
		default:
			logger.Error("Failed to seed product",
				zap.Int("status", resp.StatusCode),
				zap.Any("response", resp.Body),
			)
			failed++
		}
	}

	logger.Info("Seed completed",
		zap.String("products_table", cfg.ProductsTable),
		zap.String("stocks_table", cfg.StocksTable),
		zap.Int("created", created),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
	)
	container.Shutdown(ctx)
	if failed > 0 {
		os.Exit(1)
	}
}

func readPayloads(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var payloads []map[string]any
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, err
	}
	return payloads, nil
}
