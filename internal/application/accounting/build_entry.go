package accounting

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/contabilizador/internal/domain"
	"github.com/jhoicas/contabilizador/internal/domain/entity"
	"github.com/jhoicas/contabilizador/internal/domain/repository"
	"github.com/jhoicas/contabilizador/internal/domain/tax"
	"github.com/jhoicas/contabilizador/pkg/dian"
	"github.com/jhoicas/contabilizador/pkg/logger"
	"github.com/jhoicas/contabilizador/pkg/money"
)

// Etapas del motor, en orden de ejecución.
const (
	StagePrincipal  = "debito_principal"
	StageIVA        = "iva_descontable"
	StageRetefuente = "retefuente"
	StageICA        = "reteica_bomberil"
	StageFomento    = "fomento_arrocero"
	StagePayable    = "cuenta_por_pagar"
)

// BuilderConfig parámetros del motor (cuentas por defecto y base mínima de retefuente).
type BuilderConfig struct {
	ICAMunicipality        string
	ICAAccount             string
	BomberilAccount        string
	PayableFallbackAccount string
	RetefuenteMinimumBase  decimal.Decimal
}

// EntryBuilder construye el asiento de una factura de proveedor. Es seguro para uso
// concurrente: no guarda estado entre facturas.
type EntryBuilder struct {
	cfg   BuilderConfig
	ica   *tax.ICACalculator
	pairs repository.PayablePairRepository
	log   *logger.Logger
	newID func() string
}

// NewEntryBuilder crea el motor. tariffs y pairs pueden ser nil: la etapa correspondiente
// se omite (ICA) o usa la cuenta por pagar por defecto.
func NewEntryBuilder(cfg BuilderConfig, tariffs repository.ICATariffRepository, pairs repository.PayablePairRepository, log *logger.Logger) *EntryBuilder {
	if cfg.PayableFallbackAccount == "" {
		cfg.PayableFallbackAccount = "220505"
	}
	if log == nil {
		log = logger.Nop()
	}
	var lookup tax.TariffLookup
	if tariffs != nil {
		lookup = tariffs
	}
	return &EntryBuilder{
		cfg:   cfg,
		ica:   tax.NewICACalculator(cfg.ICAMunicipality, cfg.ICAAccount, cfg.BomberilAccount, lookup),
		pairs: pairs,
		log:   log.Component("asiento"),
		newID: func() string { return uuid.New().String() },
	}
}

// buildState estado de una sola factura mientras se recorren las etapas.
type buildState struct {
	id         string
	fields     entity.InvoiceFields
	cls        entity.Classification
	category   tax.RetentionCategory
	base       decimal.Decimal
	thirdParty string

	lines    []entity.LedgerLine
	warnings []string
	trace    []entity.StageTrace

	retefuenteComputed decimal.Decimal
	icaComputed        decimal.Decimal
	bomberilComputed   decimal.Decimal
	fomentoDelta       decimal.Decimal
}

// Build recorre las cinco etapas y cierra con la cuenta por pagar. Solo falla si falta la
// cuenta débito; cualquier falla de una etapa se registra y el asiento se produce igual.
func (b *EntryBuilder) Build(ctx context.Context, fields entity.InvoiceFields, cls entity.Classification) (*entity.Asiento, error) {
	cls = cls.Normalized()
	if cls.DebitAccount == "" {
		return nil, fmt.Errorf("%w: cuenta débito vacía", domain.ErrInvalidInput)
	}

	st := &buildState{
		id:         b.newID(),
		fields:     fields,
		cls:        cls,
		thirdParty: thirdParty(fields),
	}
	st.category = tax.NormalizeCategory(cls.RetentionCategory, fields.Description, cls.DebitAccount)
	if st.category == tax.CategoryNone && strings.TrimSpace(cls.RetentionCategory) != "" {
		st.warn(fmt.Sprintf("categoría de retención no reconocida: %q", cls.RetentionCategory))
	}
	if dian.HasVerificationDigit(fields.SupplierNIT) {
		if err := dian.ValidateNITVerificationDigit(fields.SupplierNIT); err != nil {
			st.warn(fmt.Sprintf("NIT del proveedor %q: %v", fields.SupplierNIT, err))
		}
	}

	b.stage(ctx, st, StagePrincipal, b.principal)
	b.stage(ctx, st, StageIVA, b.iva)
	b.stage(ctx, st, StageRetefuente, b.retefuente)
	b.stage(ctx, st, StageICA, b.icaBomberil)
	b.stage(ctx, st, StageFomento, b.fomento)
	b.stage(ctx, st, StagePayable, b.payable)

	return &entity.Asiento{
		ID:       st.id,
		Lines:    st.lines,
		Warnings: st.warnings,
		Trace:    st.trace,
	}, nil
}

type stageFunc func(ctx context.Context, st *buildState) (applied bool, reason string, err error)

// stage ejecuta una etapa aislando errores y pánicos: la etapa queda sin líneas y el motor sigue.
func (b *EntryBuilder) stage(ctx context.Context, st *buildState, name string, fn stageFunc) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Str("asiento", st.id).Str("etapa", name).Interface("panic", r).Msg("etapa abortada")
			st.trace = append(st.trace, entity.StageTrace{Stage: name, Reason: fmt.Sprintf("falla interna: %v", r)})
			st.warn(fmt.Sprintf("%s: falla interna, etapa omitida", name))
		}
	}()

	applied, reason, err := fn(ctx, st)
	if err != nil {
		b.log.Warn().Err(err).Str("asiento", st.id).Str("etapa", name).Msg("etapa omitida")
		st.trace = append(st.trace, entity.StageTrace{Stage: name, Reason: err.Error()})
		st.warn(fmt.Sprintf("%s: %v", name, err))
		return
	}
	b.log.Debug().Str("asiento", st.id).Str("etapa", name).Bool("aplicada", applied).Msg(reason)
	st.trace = append(st.trace, entity.StageTrace{Stage: name, Applied: applied, Reason: reason})
}

func (st *buildState) warn(msg string) {
	st.warnings = append(st.warnings, msg)
}

// principal débito por subtotal + fletes. Si subtotal + fletes + IVA no coincide con el total,
// los fletes ya vienen incluidos y se usa solo el subtotal.
func (b *EntryBuilder) principal(_ context.Context, st *buildState) (bool, string, error) {
	f := st.fields
	st.base = f.Subtotal.Add(f.Fletes)
	reason := "subtotal + fletes"
	if !st.base.Add(f.IVA).Equal(f.Total) {
		st.base = f.Subtotal
		reason = "subtotal"
		if f.Fletes.IsPositive() {
			reason = "subtotal (fletes incluidos en el total)"
			st.warn(fmt.Sprintf("subtotal + fletes + IVA (%s) distinto del total (%s): se usa solo el subtotal",
				f.Subtotal.Add(f.Fletes).Add(f.IVA).StringFixed(2), f.Total.StringFixed(2)))
		}
	}
	if !st.base.IsPositive() {
		return false, "base cero", nil
	}

	line := entity.DebitLine(st.cls.DebitAccount, st.cls.DebitAccountName, st.base, st.thirdParty, f.Description)
	if st.cls.DebitAccount == tax.PaddyInventoryAccount {
		line.QuantityKg = money.SumPositiveQuantities(f.Quantity)
	}
	st.lines = append(st.lines, line)
	return true, reason, nil
}

func (b *EntryBuilder) iva(_ context.Context, st *buildState) (bool, string, error) {
	f := st.fields
	line := tax.BuildIVALine(st.cls.TransactionType, st.cls.DebitAccount, f.IVA, f.Subtotal, st.thirdParty, f.Description)
	if line == nil {
		if f.IVA.IsPositive() {
			st.warn(fmt.Sprintf("IVA %s no corresponde al 19%% ni al 5%% del subtotal: sin línea de IVA", f.IVA.StringFixed(2)))
			return false, "tarifa de IVA no detectada", nil
		}
		return false, "sin IVA", nil
	}
	st.lines = append(st.lines, *line)
	return true, line.Name, nil
}

func (b *EntryBuilder) retefuente(_ context.Context, st *buildState) (bool, string, error) {
	res := tax.ComputeRetefuente(tax.RetefuenteInput{
		Category:    st.category,
		Declared:    st.fields.Retefuente,
		Base:        st.base,
		MinimumBase: b.cfg.RetefuenteMinimumBase,
		Regime:      st.fields.TaxRegime,
		ThirdParty:  st.thirdParty,
	})
	if res.Line == nil {
		return false, res.Reason, nil
	}
	st.lines = append(st.lines, *res.Line)
	st.retefuenteComputed = res.Computed
	return true, res.Reason, nil
}

func (b *EntryBuilder) icaBomberil(ctx context.Context, st *buildState) (bool, string, error) {
	res, err := b.ica.Compute(ctx, st.fields, st.base)
	if err != nil {
		return false, "", err
	}
	if res.ICA.IsPositive() {
		st.lines = append(st.lines, entity.CreditLine(res.ICAAccount, tax.ICAAccountName, res.ICA, st.thirdParty, ""))
		st.icaComputed = res.ICA
	}
	if res.Bomberil.IsPositive() {
		st.lines = append(st.lines, entity.CreditLine(res.BomberilAccount, tax.BomberilAccountName, res.Bomberil, st.thirdParty, ""))
		st.bomberilComputed = res.Bomberil
	}
	return res.Applied(), res.Reason, nil
}

func (b *EntryBuilder) fomento(_ context.Context, st *buildState) (bool, string, error) {
	res := tax.ComputeFomento(st.fields, st.cls.DebitAccount, st.base, st.thirdParty)
	if !res.Applies {
		return false, res.Reason, nil
	}
	if res.Computed {
		st.fields.Fomento = res.Value
		st.fields.FomentoStated = true
		st.fomentoDelta = res.Delta
	}
	if res.Line == nil {
		return false, res.Reason, nil
	}
	st.lines = append(st.lines, *res.Line)
	return true, res.Reason, nil
}

// payable cuenta por pagar como residuo: total menos lo que el motor calculó. Los valores
// que ya vienen en la factura no se restan otra vez.
func (b *EntryBuilder) payable(ctx context.Context, st *buildState) (bool, string, error) {
	amount := st.fields.Total.
		Sub(st.fomentoDelta).
		Sub(st.retefuenteComputed)
	if st.icaComputed.IsPositive() && !st.fields.ReteICAInDoc.IsPositive() {
		amount = amount.Sub(st.icaComputed)
	}
	if st.bomberilComputed.IsPositive() && !st.fields.BomberilInDoc.IsPositive() {
		amount = amount.Sub(st.bomberilComputed)
	}

	var pairs entity.PayablePairs
	if b.pairs != nil {
		p, err := b.pairs.Pairs(ctx)
		if err != nil {
			b.log.Warn().Err(err).Str("asiento", st.id).Msg("pares CxP no disponibles, se usa la cuenta por defecto")
			st.warn(fmt.Sprintf("pares de cuentas por pagar no disponibles: %v", err))
		} else if p != nil {
			pairs = *p
		}
	}
	acc, mode := pairs.Resolve(st.cls.DebitAccount, b.cfg.PayableFallbackAccount)

	name := fmt.Sprintf("%s - %s - NIT %s", acc.Name, st.fields.Supplier, st.fields.SupplierNIT)
	st.lines = append(st.lines, entity.CreditLine(acc.Code, name, amount, st.thirdParty, ""))
	return true, fmt.Sprintf("cuenta %s (%s)", acc.Code, mode), nil
}

// thirdParty NIT formateado con dígito de verificación cuando es posible, si no el proveedor.
func thirdParty(f entity.InvoiceFields) string {
	if f.SupplierNIT == "" {
		return f.Supplier
	}
	if formatted, ok := dian.FormatNIT(f.SupplierNIT); ok {
		return formatted
	}
	return f.ThirdParty()
}
