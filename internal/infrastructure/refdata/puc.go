package refdata

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/contabilizador/internal/domain"
	"github.com/jhoicas/contabilizador/internal/domain/entity"
)

// DefaultPUCSheet hoja del libro donde está el catálogo.
const DefaultPUCSheet = "PUC"

var reDigitRun = regexp.MustCompile(`\d+`)

// LoadPUCCatalog lee el catálogo PUC de un libro XLSX (columnas CUENTA, DESCRIPCION y
// opcionalmente CLASE). Los códigos se reducen a dígitos ("1405-1001" → "14051001").
func LoadPUCCatalog(_ context.Context, path, sheet string) ([]entity.Account, error) {
	if sheet == "" {
		sheet = DefaultPUCSheet
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCatalogUnavailable, path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: hoja %q de %s: %v", domain.ErrCatalogUnavailable, sheet, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: hoja %q vacía", domain.ErrCatalogUnavailable, sheet)
	}
	return parsePUCRows(rows[0], rows[1:])
}

func parsePUCRows(header []string, rows [][]string) ([]entity.Account, error) {
	iCode := columnIndex(header, "cuenta")
	if iCode < 0 {
		return nil, fmt.Errorf("%w: %w: CUENTA", domain.ErrCatalogUnavailable, domain.ErrMissingColumn)
	}
	iDesc := columnIndex(header, "descripcion", "nombre")
	iClass := columnIndex(header, "clase")

	seen := make(map[string]struct{}, len(rows))
	out := make([]entity.Account, 0, len(rows))
	for _, row := range rows {
		code := reDigitRun.FindString(entity.CleanAccountCode(cell(row, iCode)))
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, entity.Account{
			Code:        code,
			Description: cell(row, iDesc),
			Class:       cell(row, iClass),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// PUCCatalog catálogo PUC respaldado por un XLSX y memoizado por ruta.
type PUCCatalog struct {
	path  string
	cache *Cache[[]entity.Account]
}

// NewPUCCatalog crea el catálogo sobre la hoja indicada del libro.
func NewPUCCatalog(path, sheet string) *PUCCatalog {
	load := func(ctx context.Context, p string) ([]entity.Account, error) {
		return LoadPUCCatalog(ctx, p, sheet)
	}
	return &PUCCatalog{path: path, cache: NewCache[[]entity.Account](load)}
}

// Accounts implementa repository.AccountCatalogRepository.
func (c *PUCCatalog) Accounts(ctx context.Context) ([]entity.Account, error) {
	return c.cache.Get(ctx, c.path)
}

// Codes implementa repository.AccountCatalogRepository.
func (c *PUCCatalog) Codes(ctx context.Context) (map[string]struct{}, error) {
	accounts, err := c.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	return CodeSet(accounts), nil
}

// CodeSet conjunto de códigos de un catálogo.
func CodeSet(accounts []entity.Account) map[string]struct{} {
	set := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		set[a.Code] = struct{}{}
	}
	return set
}
