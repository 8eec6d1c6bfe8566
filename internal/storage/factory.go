package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"mahirash.com/app/internal/config"
)

type FactoryResult struct {
	Driver  string
	Storage Storage
}

// FromConfig builds the driver named by cfg.Driver. db is only needed for
// the sql driver.
func FromConfig(ctx context.Context, cfg config.StorageConfig, db *gorm.DB) (FactoryResult, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = "local"
	}

	switch driver {
	case "local":
		dir := cfg.LocalDir
		if dir == "" {
			dir = "./storage/state"
		}
		return FactoryResult{Driver: "local", Storage: NewLocal(dir)}, nil

	case "s3":
		if cfg.S3Region == "" || cfg.S3Bucket == "" {
			return FactoryResult{}, fmt.Errorf("S3 config missing: S3_REGION, S3_BUCKET required")
		}
		s, err := NewS3(ctx, S3Config{Region: cfg.S3Region, Bucket: cfg.S3Bucket, Prefix: cfg.S3Prefix})
		if err != nil {
			return FactoryResult{}, err
		}
		return FactoryResult{Driver: "s3", Storage: s}, nil

	case "sql":
		if db == nil {
			return FactoryResult{}, fmt.Errorf("STORAGE_DRIVER=sql requires DB_DSN")
		}
		return FactoryResult{Driver: "sql", Storage: NewSQL(db)}, nil

	case "memory":
		return FactoryResult{Driver: "memory", Storage: NewMemory()}, nil

	default:
		return FactoryResult{}, fmt.Errorf("unknown STORAGE_DRIVER: %s", driver)
	}
}
