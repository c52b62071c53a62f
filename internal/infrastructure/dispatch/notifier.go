package dispatch

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Notification aviso no fatal de una tarea posterior al checkout que falló.
type Notification struct {
	At      time.Time `json:"at"`
	Task    string    `json:"task"`
	OrderID string    `json:"orderId"`
	Message string    `json:"message"`
}

// Notifier guarda los últimos avisos en memoria (cola acotada) y los registra en el log.
type Notifier struct {
	mu    sync.Mutex
	items []Notification
	max   int
	log   zerolog.Logger
	now   func() time.Time
}

// NewNotifier crea el notificador. max <= 0 usa 100.
func NewNotifier(max int, log zerolog.Logger) *Notifier {
	if max <= 0 {
		max = 100
	}
	return &Notifier{max: max, log: log, now: time.Now}
}

// Notify registra el fallo de una tarea. Si la cola está llena se descarta el más viejo.
func (n *Notifier) Notify(task, orderID, msg string) {
	n.log.Warn().Str("task", task).Str("order_id", orderID).Msg(msg)

	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, Notification{
		At:      n.now().UTC(),
		Task:    task,
		OrderID: orderID,
		Message: msg,
	})
	if over := len(n.items) - n.max; over > 0 {
		n.items = append([]Notification(nil), n.items[over:]...)
	}
}

// Drain devuelve y vacía los avisos pendientes, del más viejo al más nuevo.
func (n *Notifier) Drain() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.items
	n.items = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}

// Len avisos pendientes.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.items)
}
