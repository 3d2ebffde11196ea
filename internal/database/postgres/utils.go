package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/RecipeBOM_Go/internal/database/generated"
	"github.com/osse101/RecipeBOM_Go/internal/domain"
	"github.com/osse101/RecipeBOM_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// ---- Common Helper Functions ----

// txHelper wraps common transaction begin logic.
// Returns a transaction and queries instance with the transaction applied.
type txHelper struct {
	tx pgx.Tx
	q  *generated.Queries
}

// beginTx starts a new transaction and returns a txHelper for common operations.
// Use SafeRollback in defer to ensure proper cleanup.
func beginTx(ctx context.Context, db *pgxpool.Pool, q *generated.Queries) (*txHelper, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &txHelper{
		tx: tx,
		q:  q.WithTx(tx),
	}, nil
}

// Commit commits the transaction
func (h *txHelper) Commit(ctx context.Context) error {
	return h.tx.Commit(ctx)
}

// Tx returns the underlying transaction for SafeRollback
func (h *txHelper) Tx() pgx.Tx {
	return h.tx
}

// Queries returns the transaction-bound queries
func (h *txHelper) Queries() *generated.Queries {
	return h.q
}

// translateError maps unique violations onto domain errors and wraps everything else
func translateError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
		if pgErr.ConstraintName == ConstraintRequirementEdge {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateIngredient, pgErr.Detail)
		}
		return fmt.Errorf("%w: %s", domain.ErrDuplicateName, pgErr.Detail)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// itemExists reports whether the referenced row is present
func itemExists(ctx context.Context, q *generated.Queries, kind domain.ItemKind, id int64) (bool, error) {
	var err error
	switch kind {
	case domain.KindBase:
		_, err = q.GetBaseMaterialByID(ctx, id)
	case domain.KindMaterial:
		_, err = q.GetMaterialByID(ctx, id)
	case domain.KindProduct:
		_, err = q.GetProductByID(ctx, id)
	default:
		return false, fmt.Errorf("%w: %q", domain.ErrInvalidItemKind, kind)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up %s %d: %w", kind, id, err)
	}
	return true, nil
}

// likePattern builds an ILIKE substring pattern with wildcards in the keyword escaped
func likePattern(keyword string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(keyword)
	return "%" + escaped + "%"
}

func toInt32(v int) (int32, error) {
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("%w: output quantity %d out of range", domain.ErrInvalidQuantity, v)
	}
	return int32(v), nil
}

// ---- Row mapping ----

func mapBaseMaterial(row generated.BaseMaterial) *domain.BaseMaterial {
	return &domain.BaseMaterial{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		UnitCost:    row.Cost,
		CreatedAt:   row.CreatedAt.Time,
	}
}

func mapBaseMaterials(rows []generated.BaseMaterial) []domain.BaseMaterial {
	out := make([]domain.BaseMaterial, len(rows))
	for i, row := range rows {
		out[i] = *mapBaseMaterial(row)
	}
	return out
}

func mapMaterial(row generated.Material) *domain.Material {
	return &domain.Material{
		ID:             row.ID,
		Name:           row.Name,
		OutputQuantity: int(row.OutputQuantity),
		Description:    row.Description,
		UnitPrice:      row.Price,
		CreatedAt:      row.CreatedAt.Time,
	}
}

func mapMaterials(rows []generated.Material) []domain.Material {
	out := make([]domain.Material, len(rows))
	for i, row := range rows {
		out[i] = *mapMaterial(row)
	}
	return out
}

func mapProduct(row generated.Product) *domain.Product {
	return &domain.Product{
		ID:             row.ID,
		Name:           row.Name,
		OutputQuantity: int(row.OutputQuantity),
		Description:    row.Description,
		UnitPrice:      row.Price,
		CreatedAt:      row.CreatedAt.Time,
	}
}

func mapProducts(rows []generated.Product) []domain.Product {
	out := make([]domain.Product, len(rows))
	for i, row := range rows {
		out[i] = *mapProduct(row)
	}
	return out
}
