// Package tax contiene las reglas de retención y de impuestos descontables que aplica el
// motor de contabilización de facturas de proveedor en Colombia: retención en la fuente,
// reteICA y sobretasa bomberil, IVA descontable y cuota de fomento arrocero.
//
// Todo el paquete es puro: no hace I/O. Las tablas que vienen de archivos (tarifas ICA por
// CIIU) se reciben a través de la interfaz TariffLookup.
package tax

// Cuentas PUC fijas del motor.
const (
	PaddyInventoryAccount = "14051001" // Inventario materia prima arroz paddy
	FomentoAccount        = "246005"
	FomentoAccountName    = "Cuota Fomento Arrocero"
	RetefuenteDefault     = "236520"
	RetefuenteDefaultName = "Retefuente registrada"
)
