// Command migrate creates the orders and client_state tables.
package main

import (
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"mahirash.com/app/internal/config"
	"mahirash.com/app/internal/modules/orders"
	"mahirash.com/app/internal/storage"
)

func main() {
	cfg := config.Load()
	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	models := append(orders.Models(), &storage.ClientState{})
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	fmt.Println("✓ tables up to date: orders, order_items, client_state")
}
