package pgdb

import (
	"context"

	"github.com/DRSN-tech/inventory-backend/internal/domain"
	"github.com/DRSN-tech/inventory-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const (
	supplierColumns = `id, name, contact_person, phone, email, created_at, updated_at`

	// supplierUniquenessLockKey — ключ pg_advisory_xact_lock для проверок уникальности поставщиков.
	supplierUniquenessLockKey int64 = 0x5355_5050 // "SUPP"
)

// SupplierRepo реализует репозиторий поставщиков поверх PostgreSQL.
type SupplierRepo struct {
	pool *pgxpool.Pool
	conv converter.SupplierConverter
}

func NewSupplierRepo(pool *pgxpool.Pool, conv converter.SupplierConverter) *SupplierRepo {
	return &SupplierRepo{pool: pool, conv: conv}
}

func (s *SupplierRepo) Create(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, error) {
	model := s.conv.ToModel(supplier)
	query := `
		INSERT INTO suppliers (name, contact_person, phone, email)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + supplierColumns

	row := tr.QuerierFromCtx(ctx, s.pool).QueryRow(ctx, query,
		model.Name, model.ContactPerson, model.Phone, model.Email,
	)

	return s.scanOne(row)
}

func (s *SupplierRepo) GetByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`

	return s.scanOne(tr.QuerierFromCtx(ctx, s.pool).QueryRow(ctx, query, id))
}

func (s *SupplierRepo) List(ctx context.Context) ([]domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers ORDER BY id`

	rows, err := tr.QuerierFromCtx(ctx, s.pool).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.SupplierModel, 0)
	for rows.Next() {
		var model converter.SupplierModel
		if err := scanSupplier(rows, &model); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s.conv.ToArrEntity(models), nil
}

func (s *SupplierRepo) Update(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, error) {
	model := s.conv.ToModel(supplier)
	query := `
		UPDATE suppliers
		SET name = $2,
			contact_person = $3,
			phone = $4,
			email = $5,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + supplierColumns

	row := tr.QuerierFromCtx(ctx, s.pool).QueryRow(ctx, query,
		model.ID, model.Name, model.ContactPerson, model.Phone, model.Email,
	)

	return s.scanOne(row)
}

func (s *SupplierRepo) Delete(ctx context.Context, id int64) error {
	if _, err := tr.QuerierFromCtx(ctx, s.pool).Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// LockUniqueness берёт транзакционную advisory-блокировку, чтобы параллельные
// create/update не прошли проверку уникальности одновременно.
func (s *SupplierRepo) LockUniqueness(ctx context.Context) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, supplierUniquenessLockKey); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (s *SupplierRepo) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM suppliers WHERE name = $1 AND id <> $2)`, name, excludeID)
}

func (s *SupplierRepo) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM suppliers WHERE lower(email) = lower($1) AND id <> $2)`, email, excludeID)
}

func (s *SupplierRepo) exists(ctx context.Context, query string, value string, excludeID int64) (bool, error) {
	var exists bool
	if err := tr.QuerierFromCtx(ctx, s.pool).QueryRow(ctx, query, value, excludeID).Scan(&exists); err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return exists, nil
}

func (s *SupplierRepo) scanOne(row pgx.Row) (*domain.Supplier, error) {
	var model converter.SupplierModel
	if err := scanSupplier(row, &model); err != nil {
		return nil, mapError(whereami.WhereAmI(2), err)
	}

	return s.conv.ToEntity(&model), nil
}

func scanSupplier(row pgx.Row, model *converter.SupplierModel) error {
	return row.Scan(
		&model.ID, &model.Name, &model.ContactPerson, &model.Phone,
		&model.Email, &model.CreatedAt, &model.UpdatedAt,
	)
}
