// Package db содержит SQL-миграции сервисов, встроенные в бинарник.
package db

import "embed"

//go:embed migrations/inventory/*.sql
var InventoryMigrations embed.FS

//go:embed migrations/suppliers/*.sql
var SupplierMigrations embed.FS

const (
	InventoryMigrationsDir = "migrations/inventory"
	SupplierMigrationsDir  = "migrations/suppliers"
)
