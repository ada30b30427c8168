package entity

import "time"

// Estados del ciclo de vida de un envío. PENDING es el inicial;
// ACCEPTED y DENIED son terminales (nunca se sale de ellos).
const (
	ShipmentStatusPending  = "PENDING"
	ShipmentStatusAccepted = "ACCEPTED"
	ShipmentStatusDenied   = "DENIED"
)

// Shipment representa una solicitud de traslado de mercancía hacia una bodega
// destino, compuesta por uno o más traslados (Transfer). El envío es dueño
// exclusivo de sus traslados: borrar el envío borra sus traslados.
type Shipment struct {
	ID            string
	Status        string // PENDING, ACCEPTED, DENIED
	OrderNumber   string
	ToWarehouseID string    // bodega destino
	ExpectedDate  time.Time // fecha esperada de cumplimiento (solo fecha)
	CreatedBy     string    // UserID del solicitante
	Transfers     []Transfer
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsValidShipmentStatus indica si s es un estado conocido.
func IsValidShipmentStatus(s string) bool {
	switch s {
	case ShipmentStatusPending, ShipmentStatusAccepted, ShipmentStatusDenied:
		return true
	}
	return false
}

// IsTerminal indica si el envío alcanzó un estado definitivo.
func (s *Shipment) IsTerminal() bool {
	return s.Status == ShipmentStatusAccepted || s.Status == ShipmentStatusDenied
}

// CanTransitionTo valida la máquina de estados: las únicas transiciones
// legales son PENDING→ACCEPTED y PENDING→DENIED.
func (s *Shipment) CanTransitionTo(newStatus string) bool {
	if s.Status != ShipmentStatusPending {
		return false
	}
	return newStatus == ShipmentStatusAccepted || newStatus == ShipmentStatusDenied
}
