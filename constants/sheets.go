package constants

// Workbook layout of the raw order store. Column order is load-bearing:
// rows are appended positionally and the backfill pass addresses cells by index.
const (
	OrdersSheet = "Pedidos"
	ShiftsSheet = "Turnos"
)

// OrderColumns is the column order of the Pedidos sheet.
var OrderColumns = []string{
	"ID_Pedido",
	"ID_Turno",
	"Hora_Aceptacion",
	"Hora_Entrega",
	"Nombre_Local",
	"Direccion_Local",
	"Tipo_Negocio",
	"Cadena",
	"CP_Local",
	"CP_Cliente",
	"Propina_Pedido",
}

// 1-based column indexes used by the backfill pass.
const (
	ColVendorName    = 5
	ColVendorAddress = 6
	ColBusinessType  = 7
	ColChain         = 8
)

// TimestampLayout is the canonical exchange form for all stored and
// OCR-derived timestamps (24-hour clock, zero-padded).
const TimestampLayout = "02/01/2006 15:04"

// DateLayout is the layout of a composed anchor date.
const DateLayout = "02/01/2006"

// ClockLayout parses a bare HH:MM clock value.
const ClockLayout = "15:04"
