package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/veloshop/storefront/internal/core/domain"
)

var ErrOptimisticLock = errors.New("optimistic lock conflict")

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, slug, price, image_url, category, inventory, created_at, updated_at
		FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Price, &p.ImageURL,
			&p.Category, &p.Inventory, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (m *MySQLAdapter) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	var p domain.Product
	err := m.db.QueryRowContext(ctx, `
		SELECT id, name, slug, price, image_url, category, inventory, created_at, updated_at
		FROM products WHERE id = ?`, productID,
	).Scan(&p.ID, &p.Name, &p.Slug, &p.Price, &p.ImageURL,
		&p.Category, &p.Inventory, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}

func (m *MySQLAdapter) GetInventory(ctx context.Context, productID int64) (int, bool, error) {
	var stock int
	err := m.db.QueryRowContext(ctx,
		`SELECT inventory FROM products WHERE id = ?`, productID,
	).Scan(&stock)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query inventory: %w", err)
	}
	return stock, true, nil
}

// AdjustInventory applies op in a single conditional UPDATE; the clamping
// happens inside the statement, so concurrent adjustments never interleave a
// read with a write. The version column is bumped on every adjustment, which
// also makes rows-affected a reliable existence check.
func (m *MySQLAdapter) AdjustInventory(ctx context.Context, productID int64, quantity int, op domain.StockOperation) (int, bool, error) {
	var stmt string
	switch op {
	case domain.StockIncrease:
		stmt = `UPDATE products SET inventory = inventory + ?, version = version + 1, updated_at = NOW() WHERE id = ?`
	case domain.StockDecrease:
		stmt = `UPDATE products SET inventory = GREATEST(inventory - ?, 0), version = version + 1, updated_at = NOW() WHERE id = ?`
	case domain.StockSet:
		stmt = `UPDATE products SET inventory = GREATEST(?, 0), version = version + 1, updated_at = NOW() WHERE id = ?`
	default:
		return 0, false, fmt.Errorf("unknown stock operation %q", op)
	}

	result, err := m.db.ExecContext(ctx, stmt, quantity, productID)
	if err != nil {
		return 0, false, fmt.Errorf("update inventory: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return 0, false, nil
	}

	return m.readBackInventory(ctx, productID)
}

func (m *MySQLAdapter) readBackInventory(ctx context.Context, productID int64) (int, bool, error) {
	var stock int
	err := m.db.QueryRowContext(ctx,
		`SELECT inventory FROM products WHERE id = ?`, productID,
	).Scan(&stock)
	if err != nil {
		return 0, false, fmt.Errorf("read back inventory: %w", err)
	}
	return stock, true, nil
}

func (m *MySQLAdapter) CreateOrder(ctx context.Context, order domain.Order) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, session_id, total, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		order.ID, order.SessionID, order.Total, order.Status,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, line := range order.Lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, name, unit_price, quantity)
			VALUES (?, ?, ?, ?, ?)`,
			order.ID, line.ProductID, line.Name, line.UnitPrice, line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE products
			SET inventory = inventory - ?, version = version + 1, updated_at = NOW()
			WHERE id = ? AND inventory >= ?`,
			line.Quantity, line.ProductID, line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("update inventory: %w", err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return ErrOptimisticLock
		}
	}

	return tx.Commit()
}
