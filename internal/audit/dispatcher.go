package audit

import (
	"sync"

	"github.com/rs/zerolog/log"
)

type Event struct {
	BarbershopID uint
	UserID       *uint
	Action       string
	Entity       string
	EntityID     *uint
	Metadata     any
}

// Recorder é o que os casos de uso enxergam da auditoria.
type Recorder interface {
	Dispatch(ev Event)
}

type Writer interface {
	Write(ev Event) error
}

type Dispatcher struct {
	writer Writer
	queue  chan Event
	done   chan struct{}
	once   sync.Once

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(writer Writer, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}

	d := &Dispatcher{
		writer: writer,
		queue:  make(chan Event, size),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.writer.Write(ev); err != nil {
			log.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
	}
}

// Dispatch nunca bloqueia a requisição: com a fila cheia, ou depois de
// Close, o evento é descartado.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		log.Warn().Str("action", ev.Action).Msg("audit dispatcher closed, dropping event")
		return
	}

	select {
	case d.queue <- ev:
	default:
		log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close esvazia a fila e espera o worker terminar.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
	})
	<-d.done
}

// Discard ignora todos os eventos.
type Discard struct{}

func (Discard) Dispatch(Event) {}
