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

const productColumns = `id, name, description, price, quantity_in_stock, supplier_id, created_at, updated_at`

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	model := p.conv.ToModel(product)
	query := `
		INSERT INTO products (name, description, price, quantity_in_stock, supplier_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + productColumns

	row := tr.QuerierFromCtx(ctx, p.pool).QueryRow(ctx, query,
		model.Name, model.Description, model.Price, model.QuantityInStock, model.SupplierID,
	)

	return p.scanOne(row)
}

func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	return p.scanOne(tr.QuerierFromCtx(ctx, p.pool).QueryRow(ctx, query, id))
}

// List возвращает все товары в порядке id.
func (p *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`

	rows, err := tr.QuerierFromCtx(ctx, p.pool).Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.ProductModel, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := scanProduct(rows, &model); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

// Update заменяет все изменяемые поля товара.
func (p *ProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	model := p.conv.ToModel(product)
	query := `
		UPDATE products
		SET name = $2,
			description = $3,
			price = $4,
			quantity_in_stock = $5,
			supplier_id = $6,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns

	row := tr.QuerierFromCtx(ctx, p.pool).QueryRow(ctx, query,
		model.ID, model.Name, model.Description, model.Price, model.QuantityInStock, model.SupplierID,
	)

	return p.scanOne(row)
}

// Delete удаляет товар; отсутствие строки ошибкой не считается.
func (p *ProductRepo) Delete(ctx context.Context, id int64) error {
	if _, err := tr.QuerierFromCtx(ctx, p.pool).Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// GetForUpdate читает товар и блокирует строку до конца текущей транзакции.
func (p *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`

	return p.scanOne(tx.QueryRow(ctx, query, id))
}

// UpdateQuantity записывает новый остаток. Вызывается после GetForUpdate в той же транзакции.
func (p *ProductRepo) UpdateQuantity(ctx context.Context, id int64, quantity int) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET quantity_in_stock = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns

	return p.scanOne(tx.QueryRow(ctx, query, id, int32(quantity)))
}

func (p *ProductRepo) scanOne(row pgx.Row) (*domain.Product, error) {
	var model converter.ProductModel
	if err := scanProduct(row, &model); err != nil {
		return nil, mapError(whereami.WhereAmI(2), err)
	}

	return p.conv.ToEntity(&model), nil
}

func scanProduct(row pgx.Row, model *converter.ProductModel) error {
	return row.Scan(
		&model.ID, &model.Name, &model.Description, &model.Price,
		&model.QuantityInStock, &model.SupplierID, &model.CreatedAt, &model.UpdatedAt,
	)
}
