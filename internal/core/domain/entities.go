package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// money is rendered as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

// Rol represents user role in the system
type Rol string

const (
	RolVendedor Rol = "VENDEDOR"
	RolAdmin    Rol = "ADMIN"
)

// ParseRol parses a role name case-insensitively
func ParseRol(s string) (Rol, bool) {
	switch Rol(strings.ToUpper(strings.TrimSpace(s))) {
	case RolVendedor:
		return RolVendedor, true
	case RolAdmin:
		return RolAdmin, true
	}
	return "", false
}

// EstadoOferta is the lifecycle state of an oferta
type EstadoOferta string

const (
	EstadoPendiente EstadoOferta = "PENDIENTE"
	EstadoAprobada  EstadoOferta = "APROBADA"
	EstadoRechazada EstadoOferta = "RECHAZADA"
	EstadoVendida   EstadoOferta = "VENDIDA"
	EstadoCancelada EstadoOferta = "CANCELADA"
)

// Estados lists every estado in display order
var Estados = []EstadoOferta{
	EstadoPendiente,
	EstadoAprobada,
	EstadoRechazada,
	EstadoVendida,
	EstadoCancelada,
}

// ParseEstado parses an estado name case-insensitively
func ParseEstado(s string) (EstadoOferta, bool) {
	e := EstadoOferta(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Estados {
		if e == known {
			return e, true
		}
	}
	return "", false
}

// IsFinal reports whether no further transition is allowed
func (e EstadoOferta) IsFinal() bool {
	return e == EstadoVendida || e == EstadoCancelada
}

// adminTransitions holds the estados an admin may move an oferta to
var adminTransitions = map[EstadoOferta][]EstadoOferta{
	EstadoPendiente: {EstadoAprobada, EstadoRechazada, EstadoVendida},
	EstadoAprobada:  {EstadoRechazada, EstadoVendida},
	EstadoRechazada: {EstadoAprobada},
}

// IsAdminTarget reports whether e is an estado an admin may assign
func IsAdminTarget(e EstadoOferta) bool {
	return e == EstadoAprobada || e == EstadoRechazada || e == EstadoVendida
}

// CanAdminTransition reports whether an admin may move from -> to
func CanAdminTransition(from, to EstadoOferta) bool {
	if from.IsFinal() {
		return false
	}
	for _, next := range adminTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanVendedorCancel reports whether the owner may cancel an oferta in estado e
func CanVendedorCancel(e EstadoOferta) bool {
	return e == EstadoPendiente
}

// IsEditable reports whether the owner may edit or delete the oferta
func (e EstadoOferta) IsEditable() bool {
	return e == EstadoPendiente
}

// PrecioTotal computes cantidad x precioUnitario rounded to cents
func PrecioTotal(cantidad, precioUnitario decimal.Decimal) decimal.Decimal {
	return cantidad.Mul(precioUnitario).Round(2)
}

// PromedioVenta divides total by count rounding half up to 2 decimals
func PromedioVenta(total decimal.Decimal, vendidas int64) decimal.Decimal {
	if vendidas <= 0 {
		return decimal.Zero
	}
	return total.DivRound(decimal.NewFromInt(vendidas), 2)
}
