package refdata

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/contabilizador/internal/domain"
	"github.com/jhoicas/contabilizador/internal/domain/entity"
	"github.com/jhoicas/contabilizador/pkg/money"
)

// Encabezados aceptados (normalizados con headerKey).
var (
	tariffCIIUKeys     = []string{"ciiu", "codigociiu", "codigo", "actividadeconomica", "actividad"}
	tariffRateKeys     = []string{"tarifapormil", "reteicatarifa", "tarifa"}
	tariffBaseKeys     = []string{"baseminima", "base"}
	tariffBomberilKeys = []string{"bomberiltarifa", "bomberil", "tasabomberil"}

	reFourDigits = regexp.MustCompile(`\d{4}`)

	perMilleThreshold = decimal.RequireFromString("1.5")
	thousand          = decimal.NewFromInt(1000)
	hundred           = decimal.NewFromInt(100)
)

// TariffTable tabla CIIU → tarifa ICA ya normalizada a fracciones decimales.
type TariffTable struct {
	rows map[string]entity.ICATariff
}

// Lookup busca la tarifa de un CIIU de 4 dígitos.
func (t *TariffTable) Lookup(ciiu string) (entity.ICATariff, bool) {
	if t == nil {
		return entity.ICATariff{}, false
	}
	row, ok := t.rows[ciiu]
	return row, ok
}

// LoadTariffs lee la tabla de tarifas desde CSV o XLSX. Si el CSV no existe y hay un XLSX con
// el mismo nombre al lado, usa el XLSX.
func LoadTariffs(_ context.Context, path string) (*TariffTable, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" || ext == ".xlsm" {
		return loadTariffsXLSX(path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		alt := strings.TrimSuffix(path, filepath.Ext(path)) + ".xlsx"
		if errors.Is(err, os.ErrNotExist) && fileExists(alt) {
			return loadTariffsXLSX(alt)
		}
		return nil, fmt.Errorf("%w: tarifas ICA %s: %v", domain.ErrReferenceData, path, err)
	}
	header, rows, _, err := readCSVWithFallback(raw, checkTariffHeader)
	if err != nil {
		return nil, fmt.Errorf("%w: tarifas ICA %s: %w", domain.ErrReferenceData, path, err)
	}
	return buildTariffTable(header, rows), nil
}

func loadTariffsXLSX(path string) (*TariffTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: tarifas ICA %s: %v", domain.ErrReferenceData, path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: tarifas ICA %s sin hojas", domain.ErrReferenceData, path)
	}
	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: tarifas ICA %s: %v", domain.ErrReferenceData, path, err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: tarifas ICA %s vacía", domain.ErrReferenceData, path)
	}
	if err := checkTariffHeader(all[0]); err != nil {
		return nil, fmt.Errorf("%w: tarifas ICA %s: %w", domain.ErrReferenceData, path, err)
	}
	return buildTariffTable(all[0], all[1:]), nil
}

func checkTariffHeader(header []string) error {
	var errs []error
	if columnIndex(header, tariffCIIUKeys...) < 0 {
		errs = append(errs, fmt.Errorf("%w: ciiu", domain.ErrMissingColumn))
	}
	if columnIndex(header, tariffRateKeys...) < 0 {
		errs = append(errs, fmt.Errorf("%w: tarifa", domain.ErrMissingColumn))
	}
	return errors.Join(errs...)
}

// buildTariffTable normaliza cada fila. La primera fila de un CIIU gana.
func buildTariffTable(header []string, rows [][]string) *TariffTable {
	iCIIU := columnIndex(header, tariffCIIUKeys...)
	iRate := columnIndex(header, tariffRateKeys...)
	iBase := columnIndex(header, tariffBaseKeys...)
	iBomb := columnIndex(header, tariffBomberilKeys...)
	perMille := strings.Contains(headerKey(header[iRate]), "pormil")

	t := &TariffTable{rows: make(map[string]entity.ICATariff, len(rows))}
	for _, row := range rows {
		ciiu := reFourDigits.FindString(cell(row, iCIIU))
		if ciiu == "" {
			continue
		}
		if _, dup := t.rows[ciiu]; dup {
			continue
		}
		t.rows[ciiu] = entity.ICATariff{
			CIIU:         ciiu,
			Rate:         parseICARate(cell(row, iRate), perMille),
			MinimumBase:  money.ParseNonNegative(cell(row, iBase)),
			BomberilRate: parseBomberilRate(cell(row, iBomb)),
		}
	}
	return t
}

// parseICARate convierte la tarifa a fracción: "8.3%" → 0.083; columna por mil → /1000;
// sin indicación, un valor mayor a 1.5 se interpreta por mil (8.3 → 0.0083).
func parseICARate(raw string, perMille bool) decimal.Decimal {
	s := strings.ReplaceAll(strings.ReplaceAll(raw, " ", ""), ",", ".")
	if s == "" {
		return decimal.Zero
	}
	if strings.HasSuffix(s, "%") {
		v, err := decimal.NewFromString(strings.TrimSuffix(s, "%"))
		if err != nil {
			return decimal.Zero
		}
		return v.Div(hundred)
	}
	v, err := decimal.NewFromString(s)
	if err != nil || v.IsNegative() {
		return decimal.Zero
	}
	if perMille || v.GreaterThan(perMilleThreshold) {
		return v.Div(thousand)
	}
	return v
}

// parseBomberilRate la sobretasa es un porcentaje del ICA: 20 → 0.20; 0.2 se deja igual.
func parseBomberilRate(raw string) decimal.Decimal {
	s := strings.TrimSuffix(strings.ReplaceAll(strings.ReplaceAll(raw, " ", ""), ",", "."), "%")
	v, err := decimal.NewFromString(s)
	if err != nil || v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(decimal.NewFromInt(1)) {
		return v.Div(hundred)
	}
	return v
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

// TariffRepository tabla de tarifas ICA respaldada por archivo y memoizada por ruta.
type TariffRepository struct {
	path  string
	cache *Cache[*TariffTable]
}

// NewTariffRepository crea el repositorio sobre una caché compartida.
func NewTariffRepository(path string, cache *Cache[*TariffTable]) *TariffRepository {
	if cache == nil {
		cache = NewCache[*TariffTable](LoadTariffs)
	}
	return &TariffRepository{path: path, cache: cache}
}

// Tariff implementa repository.ICATariffRepository.
func (r *TariffRepository) Tariff(ctx context.Context, ciiu string) (entity.ICATariff, error) {
	t, err := r.cache.Get(ctx, r.path)
	if err != nil {
		return entity.ICATariff{}, err
	}
	row, ok := t.Lookup(ciiu)
	if !ok {
		return entity.ICATariff{}, fmt.Errorf("CIIU %s en %s: %w", ciiu, r.path, domain.ErrTariffNotFound)
	}
	return row, nil
}
