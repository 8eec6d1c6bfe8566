// Command seedcatalog uploads a JSON array of product documents to the
// configured catalog database.
//
//	seedcatalog -file products.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"mahirash.com/app/internal/config"
	"mahirash.com/app/internal/modules/catalog"
)

type upserter interface {
	Upsert(ctx context.Context, raw catalog.RawProduct) error
}

func main() {
	file := flag.String("file", "", "JSON file with an array of product documents")
	flag.Parse()
	if *file == "" {
		log.Fatal("-file is required")
	}

	cfg := config.Load()
	items, err := catalog.LoadSeed(*file)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	opened, err := catalog.Open(ctx, cfg.Catalog)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	defer func() { _ = opened.Close(context.Background()) }()

	dst, ok := opened.Source.(upserter)
	if !ok {
		log.Fatalf("CATALOG_DRIVER=%s cannot be seeded", opened.Driver)
	}

	n := 0
	for _, raw := range items {
		// same check the storefront applies when reading
		if _, err := catalog.Normalize(raw); err != nil {
			log.Printf("skip %q: %v", raw.Name, err)
			continue
		}
		if err := dst.Upsert(ctx, raw); err != nil {
			log.Fatalf("upsert %s: %v", raw.ID, err)
		}
		n++
	}
	fmt.Printf("✓ %d products written to %s\n", n, opened.Driver)
}
