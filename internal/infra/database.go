package infra

import (
	"fmt"
	"time"

	"github.com/leaox77/Inventory-System-Backend/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the Postgres pool and runs migrations.
func NewDatabase(databaseURL string, env string) (*gorm.DB, error) {
	gormLevel := logger.Warn
	if env == "development" {
		gormLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(gormLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("conectar a postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("migrar esquema: %w", err)
	}
	return db, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Category{},
		&model.UnitType{},
		&model.Product{},
		&model.Branch{},
		&model.Client{},
		&model.Supplier{},
		&model.PaymentMethod{},
		&model.InventoryRecord{},
		&model.Sale{},
		&model.SaleDetail{},
		&model.PurchaseOrder{},
		&model.PurchaseOrderItem{},
	); err != nil {
		return err
	}

	// AutoMigrate does not emit CHECK constraints; the non-negative ledger
	// invariant gets schema backing here. Idempotent on re-run.
	patch := `
		DO $$ BEGIN
			ALTER TABLE inventory
				ADD CONSTRAINT chk_inventory_quantity_nonneg CHECK (quantity >= 0);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$;`
	if err := db.Exec(patch).Error; err != nil {
		log.Warn().Err(err).Msg("no se pudo aplicar constraint de inventario")
	}
	return nil
}
