// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/domain/purchase"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db  *gorm.DB
	log *logrus.Logger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, log *logrus.Logger) *Migration {
	return &Migration{
		db:  db,
		log: log,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.log.Info("🔄 Running database auto-migrations...")

	// Dependency order
	models := []interface{}{
		&product.Product{},
		&purchase.Purchase{},
		&purchase.ProductPurchase{},
	}

	for _, model := range models {
		m.log.Debugf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.log.Info("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	m.log.Info("🔄 Creating additional database indexes...")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_name ON products(name)",
		"CREATE INDEX IF NOT EXISTS idx_purchases_updated_at ON purchases(updated_at DESC)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_product_purchases_purchase_product ON product_purchases(purchase_id, product_id)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.log.WithError(err).Warn("⚠️ Failed to create index")
			failCount++
		} else {
			successCount++
		}
	}

	m.log.Infof("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData fills an empty catalog with a few products
func (m *Migration) SeedInitialData() error {
	var count int64
	if err := m.db.Model(&product.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		m.log.Info("📦 Catalog already populated, skipping seed")
		return nil
	}

	m.log.Info("🌱 Seeding catalog...")

	products := []product.Product{
		{Name: "Ceramic Mug", Description: "Stoneware mug, 350 ml", Price: decimal.RequireFromString("9.99"), Quantity: 25, Image: "mug.jpg"},
		{Name: "Cotton T-Shirt", Description: "Organic cotton, unisex fit", Price: decimal.RequireFromString("15.50"), Quantity: 40, Image: "tshirt.jpg"},
		{Name: "Canvas Tote", Description: "Heavy canvas shopping bag", Price: decimal.RequireFromString("12.00"), Quantity: 30, Image: "tote.jpg"},
		{Name: "Notebook", Description: "A5 dotted notebook, 120 pages", Price: decimal.RequireFromString("7.25"), Quantity: 60, Image: "notebook.jpg"},
		{Name: "Water Bottle", Description: "Insulated steel bottle, 750 ml", Price: decimal.RequireFromString("24.90"), Quantity: 15, Image: "bottle.jpg"},
		{Name: "Desk Lamp", Description: "LED lamp with dimmer", Price: decimal.RequireFromString("39.00"), Quantity: 8, Image: "lamp.jpg"},
		{Name: "Poster", Description: "A2 art print", Price: decimal.RequireFromString("18.00"), Quantity: 3, Image: "poster.jpg"},
	}

	if err := m.db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	m.log.Infof("✅ Seeded %d products", len(products))
	return nil
}

// GetTableInfo logs the row count of every table
func (m *Migration) GetTableInfo() error {
	var tables []string

	if err := m.db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename").Scan(&tables).Error; err != nil {
		return err
	}

	totalRecords := int64(0)
	for _, table := range tables {
		var count int64
		m.db.Table(table).Count(&count)
		totalRecords += count

		m.log.WithFields(logrus.Fields{"table": table, "records": count}).Info("📊 Table info")
	}

	m.log.WithFields(logrus.Fields{"tables": len(tables), "records": totalRecords}).Info("📈 Database summary")
	return nil
}
