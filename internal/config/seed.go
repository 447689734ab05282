package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"butcher_shop/internal/model"
	"butcher_shop/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

var sampleProducts = []model.Product{
	{Name: "Beef chuck(iroti)", Price: 8500, Image: strPtr("/images/dicedchucksteak_600x.webp"), Description: strPtr("Premium quality beef steak, perfect for grilling")},
	{Name: "Chicken Breast", Price: 4500, Image: strPtr("/images/Chicken-Breast-Kg-murukali-com-3453_512x512.webp"), Description: strPtr("Fresh chicken breast, ideal for healthy meals")},
	{Name: "Pork Ribs", Price: 6000, Image: strPtr("/images/fitmeat-schweinefleisch-st.louis-cut-ribs-1.jpg"), Description: strPtr("Tender pork ribs, great for BBQ")},
	{Name: "Ground Beef", Price: 5500, Image: strPtr("/images/9867ed76-505e-45ad-b076-11e5c83668a1.jpeg"), Description: strPtr("Fresh ground beef for burgers and meatballs")},
	{Name: "Lamb Ribs", Price: 9500, Image: strPtr("/images/Lamb-Ribs-Plain-600x600-1.jpg"), Description: strPtr("Succulent lamb ribs with rich flavor")},
	{Name: "Chicken Chest", Price: 8000, Image: strPtr("/images/Chicken-Chest--768x768.jpg"), Description: strPtr("Delicious Chicken Chest, perfect for special occasions")},
	{Name: "Fish fillet", Price: 6000, Image: strPtr("/images/Tilapia-Fish-Fillet-murukali-com-2356.webp"), Description: strPtr("Tender fish fillet, perfect for special occasions")},
	{Name: "Chicken Wings", Price: 7000, Image: strPtr("/images/raw-chicken-wings-1.jpg"), Description: strPtr("Tender chicken wings, perfect for grilling")},
	{Name: "Beef Steak", Price: 8500, Image: strPtr("/images/76893-how-to-cook-rump-steak.jpg"), Description: strPtr("Premium quality beef steak, perfect for grilling")},
	{Name: "Thompson Fish", Price: 10000, Image: strPtr("/images/Tomson-Fish1-scaled.jpg"), Description: strPtr("Fresh Thompson Fish, perfect for special occasions")},
	{Name: "Beef Ribs", Price: 7500, Image: strPtr("/images/SpareRibs.webp"), Description: strPtr("Tender Ribs, perfect for grilling")},
	{Name: "Whole Chicken", Price: 12000, Image: strPtr("/images/WhatsApp-Image-2024-10-16-at-19.19.55-500x500.jpeg"), Description: strPtr("Fresh Whole Chicken, perfect for special occasions")},
	{Name: "Chicken Legs", Price: 6500, Image: strPtr("/images/chicken-legs-2.jpeg"), Description: strPtr("Tender Chicken Legs, perfect for grilling")},
	{Name: "Beef Liver", Price: 9000, Image: strPtr("/images/WhatsApp-Image-2024-10-16-at-19.19.20-500x360.jpeg"), Description: strPtr("Fresh Beef Liver, perfect for special occasions")},
	{Name: "Goat Meat", Price: 10000, Image: strPtr("/images/WhatsApp-Image-2024-10-16-at-19.18.54-500x500.jpeg"), Description: strPtr("Fresh Goat Meat, perfect for special occasions")},
}

func strPtr(s string) *string { return &s }

// Seed ensures the default accounts, the sample catalog, and one sample order
// exist. It is safe to run on every boot.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	if err := seedUser(ctx, db, "admin", "admin123", model.RoleAdmin); err != nil {
		return err
	}
	if err := seedUser(ctx, db, "user", "user123", model.RoleUser); err != nil {
		return err
	}
	if err := seedProducts(ctx, db); err != nil {
		return err
	}
	return seedSampleOrder(ctx, db)
}

func seedUser(ctx context.Context, db *pgxpool.Pool, username, password, role string) error {
	var exists bool
	err := db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check %s user: %w", username, err)
	}
	if exists {
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash %s password: %w", username, err)
	}
	_, err = db.Exec(ctx, `INSERT INTO users (username, password_hash, role) VALUES ($1, $2, $3)`, username, hash, role)
	if err != nil {
		return fmt.Errorf("failed to create %s user: %w", username, err)
	}
	log.Printf("Seeded %s account (username: %s)", role, username)
	return nil
}

// seedProducts inserts the sample catalog only when the table is empty, so
// admin edits survive restarts.
func seedProducts(ctx context.Context, db *pgxpool.Pool) error {
	var count int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, p := range sampleProducts {
		_, err := db.Exec(ctx, `INSERT INTO products (name, price, image, description) VALUES ($1, $2, $3, $4)`,
			p.Name, p.Price, p.Image, p.Description)
		if err != nil {
			return fmt.Errorf("failed to insert sample product %q: %w", p.Name, err)
		}
	}
	log.Printf("Seeded %d sample products", len(sampleProducts))
	return nil
}

func seedSampleOrder(ctx context.Context, db *pgxpool.Pool) error {
	var exists bool
	err := db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE transaction_id LIKE 'TXN_SAMPLE_%')`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check sample order: %w", err)
	}
	if exists {
		return nil
	}

	items := []model.OrderItem{
		{ProductID: 1, Name: "Premium Beef", Price: 5000, Quantity: 2, Image: "/images/beef.jpg"},
		{ProductID: 2, Name: "Fresh Chicken", Price: 2500, Quantity: 2, Image: "/images/chicken.jpg"},
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal sample order items: %w", err)
	}

	txID := fmt.Sprintf("TXN_SAMPLE_%d", time.Now().UnixMilli())
	_, err = db.Exec(ctx, `INSERT INTO orders (
		transaction_id, customer_name, customer_email, customer_phone,
		customer_address, total, currency, items, status, delivery_status
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		txID,
		"John Uwimana",
		"customer@onegenesis.rw",
		"+250788123456",
		"Kigali - Gasabo - Kimironko, Near Kimironko Market",
		15000.0,
		"RWF",
		itemsJSON,
		model.OrderStatusPaid,
		model.DeliveryInProgress,
	)
	if err != nil {
		return fmt.Errorf("failed to create sample order: %w", err)
	}
	log.Println("Seeded sample order")
	return nil
}
