package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/contabilizador/internal/domain/entity"
)

// ComprobanteHeader datos de la factura de origen que se imprimen en el comprobante.
type ComprobanteHeader struct {
	Proveedor    string
	Tercero      string
	Descripcion  string
	TotalFactura decimal.Decimal
	Fecha        time.Time
}

// ComprobanteGenerator puerto de salida para la representación impresa del asiento.
type ComprobanteGenerator interface {
	GenerateComprobante(ctx context.Context, header ComprobanteHeader, asiento *entity.Asiento) ([]byte, error)
}
