package shipment

import (
	"time"

	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/pkg/logger"
)

// StatusChangedEvent se emite tras confirmar (commit) una transición de
// estado de un envío. Lleva el snapshot del envío ya transicionado más el
// estado anterior, suficiente para que el despachador de notificaciones
// arme el correo sin volver a consultar.
type StatusChangedEvent struct {
	Shipment  entity.Shipment
	OldStatus string
	NewStatus string
	At        time.Time
}

// Publisher publica eventos de cambio de estado por un canal con buffer.
// La publicación nunca bloquea al flujo de envíos: si el buffer está lleno
// el evento se descarta con un warning (la notificación es best-effort).
type Publisher struct {
	ch  chan StatusChangedEvent
	log *logger.Logger
}

// NewPublisher construye el publicador con el tamaño de buffer dado.
func NewPublisher(buffer int, log *logger.Logger) *Publisher {
	if buffer <= 0 {
		buffer = 64
	}
	return &Publisher{ch: make(chan StatusChangedEvent, buffer), log: log}
}

// Publish encola el evento sin bloquear.
func (p *Publisher) Publish(ev StatusChangedEvent) {
	select {
	case p.ch <- ev:
	default:
		p.log.Warn().
			Str("shipment_id", ev.Shipment.ID).
			Str("new_status", ev.NewStatus).
			Msg("buffer de eventos lleno, notificación descartada")
	}
}

// Events expone el canal de solo lectura para el consumidor.
func (p *Publisher) Events() <-chan StatusChangedEvent {
	return p.ch
}

// Close cierra el canal; el consumidor termina al drenarlo.
func (p *Publisher) Close() {
	close(p.ch)
}
