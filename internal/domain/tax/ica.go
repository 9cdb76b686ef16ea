package tax

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/contabilizador/internal/domain"
	"github.com/jhoicas/contabilizador/internal/domain/entity"
)

// Cuentas y municipio por defecto de reteICA y sobretasa bomberil.
const (
	DefaultICAMunicipality = "ibague"
	DefaultICAAccount      = "2368050000"
	DefaultBomberilAccount = "2368400000"
	ICAAccountName         = "ReteICA Ibagué"
	BomberilAccountName    = "Tasa bomberil Ibagué"
)

// TariffLookup consulta la tarifa ICA de una actividad económica. Un CIIU ausente de la tabla
// devuelve domain.ErrTariffNotFound; cualquier otro error es una falla al cargar la tabla.
type TariffLookup interface {
	Tariff(ctx context.Context, ciiu string) (entity.ICATariff, error)
}

// ICACalculator calcula reteICA y sobretasa bomberil del municipio configurado.
type ICACalculator struct {
	Municipality    string
	ICAAccount      string
	BomberilAccount string
	Tariffs         TariffLookup
}

// ICAResult valores calculados (cero si no aplica), cuentas y explicación de la decisión.
type ICAResult struct {
	ICA             decimal.Decimal
	Bomberil        decimal.Decimal
	ICAAccount      string
	BomberilAccount string
	City            string
	CIIU            string
	Reason          string
}

// Applied indica si se causó reteICA.
func (r ICAResult) Applied() bool {
	return r.ICA.IsPositive()
}

// NewICACalculator crea el calculador; los valores vacíos toman los de Ibagué.
func NewICACalculator(municipality, icaAccount, bomberilAccount string, tariffs TariffLookup) *ICACalculator {
	if municipality == "" {
		municipality = DefaultICAMunicipality
	}
	if icaAccount == "" {
		icaAccount = DefaultICAAccount
	}
	if bomberilAccount == "" {
		bomberilAccount = DefaultBomberilAccount
	}
	return &ICACalculator{
		Municipality:    municipality,
		ICAAccount:      icaAccount,
		BomberilAccount: bomberilAccount,
		Tariffs:         tariffs,
	}
}

// Compute evalúa las exclusiones en orden (territorialidad, autorretenedor de ICA, régimen
// simple, tarifa del CIIU, base mínima) y se detiene en la primera que aplique.
func (c *ICACalculator) Compute(ctx context.Context, f entity.InvoiceFields, base decimal.Decimal) (ICAResult, error) {
	res := ICAResult{ICAAccount: c.ICAAccount, BomberilAccount: c.BomberilAccount}

	city, decidable := ResolveCityForICA(f)
	res.City = city
	if !decidable {
		res.Reason = "flete sin origen legible: territorialidad indeterminada"
		return res, nil
	}
	if !SupplierInCity(city, c.Municipality) {
		res.Reason = fmt.Sprintf("ciudad %q fuera de %s", city, c.Municipality)
		return res, nil
	}
	if IsSelfWithholdingICA(f.TaxRegime) {
		res.Reason = "proveedor autorretenedor de ICA"
		return res, nil
	}
	if IsSimplifiedRegime(f.TaxRegime) {
		res.Reason = "proveedor en régimen simple"
		return res, nil
	}

	res.CIIU = ParseCIIU(f.EconomicActivity)
	if res.CIIU == "" {
		res.Reason = "actividad económica sin código CIIU"
		return res, nil
	}
	if c.Tariffs == nil {
		res.Reason = "sin tabla de tarifas ICA"
		return res, nil
	}
	tariff, err := c.Tariffs.Tariff(ctx, res.CIIU)
	if errors.Is(err, domain.ErrTariffNotFound) {
		res.Reason = fmt.Sprintf("CIIU %s sin tarifa", res.CIIU)
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("tarifa ICA CIIU %s: %w", res.CIIU, err)
	}
	if !tariff.Rate.IsPositive() {
		res.Reason = fmt.Sprintf("CIIU %s sin tarifa", res.CIIU)
		return res, nil
	}
	if base.LessThanOrEqual(tariff.MinimumBase) {
		res.Reason = fmt.Sprintf("base %s no supera la mínima %s", base.StringFixed(2), tariff.MinimumBase.StringFixed(2))
		return res, nil
	}

	res.ICA = base.Mul(tariff.Rate).Round(2)
	res.Bomberil = res.ICA.Mul(tariff.BomberilRate).Round(2)
	res.Reason = fmt.Sprintf("CIIU %s tarifa %s sobre base %s", res.CIIU, tariff.Rate.String(), base.StringFixed(2))
	return res, nil
}
