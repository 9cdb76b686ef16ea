package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/contabilizador/internal/domain"
	"github.com/jhoicas/contabilizador/internal/domain/entity"
	"github.com/jhoicas/contabilizador/internal/domain/repository"
	"github.com/jhoicas/contabilizador/pkg/textnorm"
)

var _ repository.AccountCatalogRepository = (*PUCCatalogRepo)(nil)

// Querier subconjunto de pgxpool.Pool y pgx.Tx que usa el repositorio.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PUCCatalogRepo implementa AccountCatalogRepository sobre la tabla puc_cuentas.
type PUCCatalogRepo struct {
	db Querier
}

// NewPUCCatalogRepository construye el repositorio.
func NewPUCCatalogRepository(db Querier) *PUCCatalogRepo {
	return &PUCCatalogRepo{db: db}
}

// Accounts lista las cuentas activas ordenadas por código.
func (r *PUCCatalogRepo) Accounts(ctx context.Context) ([]entity.Account, error) {
	const q = `
		SELECT codigo, descripcion, COALESCE(clase, '')
		FROM puc_cuentas
		WHERE activa = true
		ORDER BY codigo`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: list puc_cuentas: %v", domain.ErrCatalogUnavailable, err)
	}
	accounts, err := pgx.CollectRows(rows, scanAccount)
	if err != nil {
		return nil, fmt.Errorf("%w: scan puc_cuentas: %v", domain.ErrCatalogUnavailable, err)
	}
	return accounts, nil
}

// Codes devuelve el conjunto de códigos reducidos a dígitos.
func (r *PUCCatalogRepo) Codes(ctx context.Context) (map[string]struct{}, error) {
	accounts, err := r.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		if a.Code != "" {
			set[a.Code] = struct{}{}
		}
	}
	return set, nil
}

// Upsert inserta o actualiza las cuentas y las marca activas. Devuelve cuántas filas tocó.
func (r *PUCCatalogRepo) Upsert(ctx context.Context, accounts []entity.Account) (int64, error) {
	const q = `
		INSERT INTO puc_cuentas (codigo, descripcion, clase, activa)
		VALUES ($1, $2, NULLIF($3, ''), true)
		ON CONFLICT (codigo) DO UPDATE
		SET descripcion = EXCLUDED.descripcion, clase = EXCLUDED.clase, activa = true`
	var n int64
	for _, a := range accounts {
		code := textnorm.Digits(a.Code)
		if code == "" {
			continue
		}
		tag, err := r.db.Exec(ctx, q, code, a.Description, a.Class)
		if err != nil {
			return n, fmt.Errorf("upsert puc_cuentas %s: %w", code, err)
		}
		n += tag.RowsAffected()
	}
	return n, nil
}

func scanAccount(row pgx.CollectableRow) (entity.Account, error) {
	var a entity.Account
	if err := row.Scan(&a.Code, &a.Description, &a.Class); err != nil {
		return entity.Account{}, err
	}
	a.Code = textnorm.Digits(a.Code)
	return a, nil
}
