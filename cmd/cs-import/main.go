package main

import (
	"context"
	"flag"
	"log"

	"crmstock/internal/client"
)

func main() {
	configPath := flag.String("config", "./import.json", "path to client config json")
	batchPath := flag.String("batch", "", "path to batch json file (required)")
	flag.Parse()

	if *batchPath == "" {
		log.Fatal("missing -batch")
	}

	cfg, err := client.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	batch, err := client.LoadBatch(*batchPath)
	if err != nil {
		log.Fatal(err)
	}

	c := client.New(cfg)
	ctx := context.Background()

	var failed int
	for _, rec := range batch.Customers {
		id, err := c.CreateCustomer(ctx, rec)
		if err != nil {
			log.Printf("customer %q: %v", rec.LegalName, err)
			failed++
			continue
		}
		log.Printf("customer %q registered with id %d", rec.LegalName, id)
	}
	for _, rec := range batch.Products {
		id, err := c.CreateProduct(ctx, rec)
		if err != nil {
			log.Printf("product %q: %v", rec.Item, err)
			failed++
			continue
		}
		log.Printf("product %q registered with id %d", rec.Item, id)
	}

	if failed > 0 {
		log.Fatalf("%d record(s) failed", failed)
	}
}
