// Package notify consume los eventos de cambio de estado de envíos y avisa
// por correo al solicitante. Los errores de envío solo se registran: la
// notificación nunca afecta la transición ya confirmada.
package notify

import (
	"fmt"

	"github.com/jhoicas/Traslados-api/internal/application/shipment"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
	"github.com/jhoicas/Traslados-api/pkg/logger"
)

// Mailer envía un correo. Implementaciones: SMTPMailer (gomail) y LogMailer.
type Mailer interface {
	Send(to, subject, body string) error
}

// Dispatcher drena el canal de eventos y despacha una notificación por cada
// transición de estado.
type Dispatcher struct {
	events   <-chan shipment.StatusChangedEvent
	userRepo repository.UserRepository
	mailer   Mailer
	log      *logger.Logger
}

// NewDispatcher construye el despachador.
func NewDispatcher(
	events <-chan shipment.StatusChangedEvent,
	userRepo repository.UserRepository,
	mailer Mailer,
	log *logger.Logger,
) *Dispatcher {
	return &Dispatcher{events: events, userRepo: userRepo, mailer: mailer, log: log}
}

// Run consume eventos hasta que el canal se cierra. Pensado para correr en
// una goroutine propia desde main.
func (d *Dispatcher) Run() {
	for ev := range d.events {
		d.dispatch(ev)
	}
	d.log.Info().Msg("despachador de notificaciones detenido")
}

func (d *Dispatcher) dispatch(ev shipment.StatusChangedEvent) {
	user, err := d.userRepo.GetByID(ev.Shipment.CreatedBy)
	if err != nil || user == nil {
		d.log.Warn().
			Str("shipment_id", ev.Shipment.ID).
			Str("user_id", ev.Shipment.CreatedBy).
			Err(err).
			Msg("no se pudo resolver el solicitante del envío, notificación omitida")
		return
	}

	subject := fmt.Sprintf("Envío %s: %s", orderRef(ev), statusLabel(ev.NewStatus))
	body := fmt.Sprintf(
		"Hola %s,\n\n"+
			"El envío %s cambió de estado %s a %s el %s.\n"+
			"Fecha esperada de cumplimiento: %s.\n\n"+
			"Este es un mensaje automático, no responda a este correo.",
		user.Name,
		orderRef(ev),
		statusLabel(ev.OldStatus),
		statusLabel(ev.NewStatus),
		ev.At.Format("02/01/2006 15:04"),
		ev.Shipment.ExpectedDate.Format("02/01/2006"),
	)

	if err := d.mailer.Send(user.Email, subject, body); err != nil {
		d.log.Error().
			Str("shipment_id", ev.Shipment.ID).
			Str("to", user.Email).
			Err(err).
			Msg("error enviando notificación de envío")
		return
	}
	d.log.Info().
		Str("shipment_id", ev.Shipment.ID).
		Str("to", user.Email).
		Str("new_status", ev.NewStatus).
		Msg("notificación de envío despachada")
}

func orderRef(ev shipment.StatusChangedEvent) string {
	if ev.Shipment.OrderNumber != "" {
		return ev.Shipment.OrderNumber
	}
	return ev.Shipment.ID
}

// statusLabel traduce el estado para el correo.
func statusLabel(status string) string {
	switch status {
	case "PENDING":
		return "PENDIENTE"
	case "ACCEPTED":
		return "ACEPTADO"
	case "DENIED":
		return "DENEGADO"
	}
	return status
}
