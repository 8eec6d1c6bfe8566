package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"mahirash.com/app/internal/config"
)

// Opened is a Source plus the function that releases its client.
type Opened struct {
	Driver string
	Source Source
	Close  func(ctx context.Context) error
}

// Open connects the driver named by cfg.Driver.
func Open(ctx context.Context, cfg config.CatalogConfig) (Opened, error) {
	noop := func(context.Context) error { return nil }

	switch cfg.Driver {
	case "", "firestore":
		if cfg.ProjectID == "" {
			return Opened{}, fmt.Errorf("CATALOG_DRIVER=firestore requires FIREBASE_PROJECT_ID")
		}
		fs, err := NewFirestore(ctx, FirestoreConfig{
			ProjectID:       cfg.ProjectID,
			CredentialsFile: cfg.CredentialsFile,
			Collection:      cfg.Collection,
		})
		if err != nil {
			return Opened{}, err
		}
		return Opened{Driver: "firestore", Source: fs, Close: func(context.Context) error { return fs.Close() }}, nil

	case "mongo":
		if cfg.MongoURI == "" {
			return Opened{}, fmt.Errorf("CATALOG_DRIVER=mongo requires MONGO_URI")
		}
		ms, err := NewMongo(ctx, MongoConfig{URI: cfg.MongoURI, Database: cfg.MongoDatabase, Collection: cfg.Collection})
		if err != nil {
			return Opened{}, err
		}
		return Opened{Driver: "mongo", Source: ms, Close: ms.Close}, nil

	case "memory":
		var items []RawProduct
		if cfg.SeedFile != "" {
			var err error
			if items, err = LoadSeed(cfg.SeedFile); err != nil {
				return Opened{}, err
			}
		}
		return Opened{Driver: "memory", Source: NewMemory(items...), Close: noop}, nil

	default:
		return Opened{}, fmt.Errorf("unknown CATALOG_DRIVER: %s", cfg.Driver)
	}
}

// LoadSeed reads a JSON array of product documents.
func LoadSeed(path string) ([]RawProduct, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	var items []RawProduct
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", path, err)
	}
	return items, nil
}
