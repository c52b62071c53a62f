package session

import (
	"sync"

	"github.com/jhoicas/organic-orders/internal/application/dto"
)

// artifacts guarda lo que producen las tareas posteriores al checkout.
// Lo escriben goroutines del pool, por eso tiene su propio lock.
type artifacts struct {
	mu       sync.RWMutex
	invoices map[string][]byte
	shares   map[string]dto.ShareResponse
}

func newArtifacts() *artifacts {
	return &artifacts{
		invoices: make(map[string][]byte),
		shares:   make(map[string]dto.ShareResponse),
	}
}

func (a *artifacts) putInvoice(id string, pdf []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.invoices[id] = pdf
}

func (a *artifacts) invoice(id string) ([]byte, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	b, ok := a.invoices[id]
	return b, ok
}

func (a *artifacts) putShare(id string, msg dto.ShareResponse) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.shares[id] = msg
}

func (a *artifacts) share(id string) (dto.ShareResponse, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	m, ok := a.shares[id]
	return m, ok
}

func (a *artifacts) forget(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.invoices, id)
	delete(a.shares, id)
}

func (a *artifacts) reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.invoices = make(map[string][]byte)
	a.shares = make(map[string]dto.ShareResponse)
}
