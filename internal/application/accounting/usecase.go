package accounting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/contabilizador/internal/application/dto"
	"github.com/jhoicas/contabilizador/internal/application/ports"
	"github.com/jhoicas/contabilizador/internal/domain"
	"github.com/jhoicas/contabilizador/internal/domain/entity"
)

// AsientoUseCase construye y valida asientos para las interfaces HTTP y CLI.
type AsientoUseCase struct {
	builder   *EntryBuilder
	validator *AccountValidator
	pdf       ports.ComprobanteGenerator
	now       func() time.Time
}

// NewAsientoUseCase construye el caso de uso. pdf puede ser nil si no se exponen comprobantes.
func NewAsientoUseCase(builder *EntryBuilder, validator *AccountValidator, pdf ports.ComprobanteGenerator) *AsientoUseCase {
	return &AsientoUseCase{builder: builder, validator: validator, pdf: pdf, now: time.Now}
}

func (uc *AsientoUseCase) build(ctx context.Context, in dto.CreateAsientoRequest) (entity.InvoiceFields, *entity.Asiento, error) {
	if in.Clasificacion.Cuenta == "" {
		return entity.InvoiceFields{}, nil, fmt.Errorf("%w: clasificacion.cuenta es obligatoria", domain.ErrInvalidInput)
	}
	fields := entity.FieldsFromMap(in.Campos)
	asiento, err := uc.builder.Build(ctx, fields, in.Clasificacion.ToEntity())
	return fields, asiento, err
}

// Contabilizar construye el asiento de la factura y lo valida (balance y catálogo).
func (uc *AsientoUseCase) Contabilizar(ctx context.Context, in dto.CreateAsientoRequest) (*dto.AsientoResponse, error) {
	_, asiento, err := uc.build(ctx, in)
	if err != nil {
		return nil, err
	}

	invalid, diag := uc.validator.Validate(ctx, asiento.Lines)
	return &dto.AsientoResponse{
		ID:               asiento.ID,
		Lineas:           asiento.Lines,
		Balance:          toBalanceResponse(ValidateBalance(asiento.Lines)),
		CuentasInvalidas: invalid,
		Diagnostico:      diag,
		Advertencias:     asiento.Warnings,
		Trazas:           asiento.Trace,
	}, nil
}

// Comprobante construye el asiento y devuelve su comprobante contable en PDF.
func (uc *AsientoUseCase) Comprobante(ctx context.Context, in dto.CreateAsientoRequest) ([]byte, error) {
	if uc.pdf == nil {
		return nil, errors.New("comprobante: generador PDF no configurado")
	}
	fields, asiento, err := uc.build(ctx, in)
	if err != nil {
		return nil, err
	}
	header := ports.ComprobanteHeader{
		Proveedor:    fields.Supplier,
		Tercero:      thirdParty(fields),
		Descripcion:  fields.Description,
		TotalFactura: fields.Total,
		Fecha:        uc.now(),
	}
	return uc.pdf.GenerateComprobante(ctx, header, asiento)
}

// Validar revisa un asiento editado a mano.
func (uc *AsientoUseCase) Validar(ctx context.Context, in dto.ValidarAsientoRequest) (*dto.ValidacionResponse, error) {
	if len(in.Lineas) == 0 {
		return nil, fmt.Errorf("%w: el asiento no tiene líneas", domain.ErrInvalidInput)
	}
	lines := in.Lines()
	invalid, diag := uc.validator.Validate(ctx, lines)
	return &dto.ValidacionResponse{
		Balance:          toBalanceResponse(ValidateBalance(lines)),
		CuentasInvalidas: invalid,
		Diagnostico:      diag,
	}, nil
}

func toBalanceResponse(b BalanceResult) dto.BalanceResponse {
	return dto.BalanceResponse{
		Cuadra:       b.Balanced,
		TotalDebito:  b.TotalDebit,
		TotalCredito: b.TotalCredit,
		Diferencia:   b.Difference,
	}
}
