package refdata

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jhoicas/contabilizador/internal/domain"
	"github.com/jhoicas/contabilizador/internal/domain/entity"
	"github.com/jhoicas/contabilizador/pkg/logger"
	"github.com/jhoicas/contabilizador/pkg/textnorm"
)

type payableColumns struct {
	debit, payable, description int
}

func findPayableColumns(header []string) payableColumns {
	return payableColumns{
		debit:       columnContaining(header, "debito", "cuenta"),
		payable:     columnContaining(header, "ap", "cuenta"),
		description: columnContaining(header, "ap", "descr"),
	}
}

func checkPayableHeader(header []string) error {
	cols := findPayableColumns(header)
	var errs []error
	if cols.debit < 0 {
		errs = append(errs, fmt.Errorf("%w: Débito - Cuenta", domain.ErrMissingColumn))
	}
	if cols.payable < 0 {
		errs = append(errs, fmt.Errorf("%w: AP - Cuenta", domain.ErrMissingColumn))
	}
	return errors.Join(errs...)
}

// payableCandidate una cuenta por pagar observada con su descripción.
type payableCandidate struct {
	code, name string
}

// ranking cuenta ocurrencias por clave y elige el candidato más frecuente; en empate gana la
// descripción más larga y luego el código menor.
type ranking map[string]map[payableCandidate]int

func (r ranking) add(key string, c payableCandidate) {
	if r[key] == nil {
		r[key] = make(map[payableCandidate]int)
	}
	r[key][c]++
}

func (r ranking) best() map[string]payableCandidate {
	out := make(map[string]payableCandidate, len(r))
	for key, counts := range r {
		var top payableCandidate
		topN := -1
		for c, n := range counts {
			if n > topN ||
				(n == topN && len([]rune(c.name)) > len([]rune(top.name))) ||
				(n == topN && len([]rune(c.name)) == len([]rune(top.name)) && c.code+c.name < top.code+top.name) {
				top, topN = c, n
			}
		}
		out[key] = top
	}
	return out
}

// LoadPayablePairs construye los emparejamientos débito → cuenta por pagar a partir del
// histórico de asientos exportado en CSV.
func LoadPayablePairs(_ context.Context, path string) (*entity.PayablePairs, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: pares CxP %s: %v", domain.ErrReferenceData, path, err)
	}
	header, rows, _, err := readCSVWithFallback(raw, checkPayableHeader)
	if err != nil {
		return nil, fmt.Errorf("%w: pares CxP %s: %w", domain.ErrReferenceData, path, err)
	}
	return buildPayablePairs(header, rows), nil
}

func buildPayablePairs(header []string, rows [][]string) *entity.PayablePairs {
	cols := findPayableColumns(header)

	exact := ranking{}
	names := ranking{}
	prefixes := make(map[int]ranking, len(entity.PrefixLengths))
	for _, n := range entity.PrefixLengths {
		prefixes[n] = ranking{}
	}

	for _, row := range rows {
		deb := textnorm.Digits(cell(row, cols.debit))
		ap := textnorm.Digits(cell(row, cols.payable))
		if deb == "" || ap == "" {
			continue
		}
		c := payableCandidate{code: ap, name: cell(row, cols.description)}
		exact.add(deb, c)
		if c.name != "" {
			names.add(ap, payableCandidate{name: c.name})
		}
		for _, n := range entity.PrefixLengths {
			pref := deb
			if len(pref) > n {
				pref = pref[:n]
			}
			prefixes[n].add(pref, c)
		}
	}

	pairs := &entity.PayablePairs{
		Exact:    make(map[string]string),
		Prefixes: make(map[int]map[string]string, len(prefixes)),
		Names:    make(map[string]string),
	}
	for deb, c := range exact.best() {
		pairs.Exact[deb] = c.code
	}
	for n, r := range prefixes {
		m := make(map[string]string)
		for pref, c := range r.best() {
			m[pref] = c.code
		}
		pairs.Prefixes[n] = m
	}
	for ap, c := range names.best() {
		pairs.Names[ap] = c.name
	}
	return pairs
}

// PayablePairRepository pares de cuentas por pagar respaldados por archivo y memoizados.
type PayablePairRepository struct {
	path  string
	cache *Cache[*entity.PayablePairs]
	log   *logger.Logger
}

// NewPayablePairRepository crea el repositorio sobre una caché compartida.
func NewPayablePairRepository(path string, cache *Cache[*entity.PayablePairs], log *logger.Logger) *PayablePairRepository {
	if cache == nil {
		cache = NewCache[*entity.PayablePairs](LoadPayablePairs)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PayablePairRepository{path: path, cache: cache, log: log.Component("pares_cxp")}
}

// Pairs implementa repository.PayablePairRepository.
func (r *PayablePairRepository) Pairs(ctx context.Context) (*entity.PayablePairs, error) {
	p, err := r.cache.Get(ctx, r.path)
	if err != nil {
		r.log.Warn().Err(err).Str("path", r.path).Msg("no se pudieron cargar los pares CxP")
		return nil, err
	}
	return p, nil
}
