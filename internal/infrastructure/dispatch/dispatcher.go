// Package dispatch ejecuta en segundo plano las tareas que siguen a una orden
// confirmada (factura, mensaje compartido). Un fallo nunca afecta a la orden:
// se convierte en una Notification.
package dispatch

import (
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"
)

// Dispatcher pool de goroutines acotado sobre ants.
type Dispatcher struct {
	pool     *ants.Pool
	notifier *Notifier
	log      zerolog.Logger
	wg       sync.WaitGroup
}

// NewDispatcher crea el pool con size workers (size <= 0 usa 4).
func NewDispatcher(size int, notifier *Notifier, log zerolog.Logger) (*Dispatcher, error) {
	if size <= 0 {
		size = 4
	}
	pool, err := ants.NewPool(size,
		ants.WithNonblocking(true),
		ants.WithPanicHandler(func(p interface{}) {
			log.Error().Interface("panic", p).Msg("dispatch: pánico fuera de una tarea")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("dispatch: crear pool: %w", err)
	}
	return &Dispatcher{pool: pool, notifier: notifier, log: log}, nil
}

// Dispatch encola fn sin bloquear. Un error, un pánico, un pool lleno o cerrado terminan en el notificador.
func (d *Dispatcher) Dispatch(task, orderID string, fn func() error) {
	d.wg.Add(1)
	err := d.pool.Submit(func() {
		defer d.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				d.notifier.Notify(task, orderID, fmt.Sprintf("%s failed: %v", task, p))
			}
		}()
		if err := fn(); err != nil {
			d.notifier.Notify(task, orderID, fmt.Sprintf("%s failed: %v", task, err))
			return
		}
		d.log.Debug().Str("task", task).Str("order_id", orderID).Msg("tarea completada")
	})
	if err != nil {
		d.wg.Done()
		d.notifier.Notify(task, orderID, fmt.Sprintf("%s not scheduled: %v", task, err))
	}
}

// Wait bloquea hasta que terminen las tareas encoladas.
func (d *Dispatcher) Wait() { d.wg.Wait() }

// Close espera las tareas pendientes y libera el pool.
func (d *Dispatcher) Close() {
	d.wg.Wait()
	d.pool.Release()
}
