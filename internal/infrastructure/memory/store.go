// Package memory implementa los puertos de persistencia en memoria.
// Se usa en desarrollo local (STORAGE=memory) y en los tests de los casos de uso.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	appproc "github.com/jhoicas/supply-chain-api/internal/application/procurement"
	"github.com/jhoicas/supply-chain-api/internal/domain/entity"
)

type offerKey struct {
	agreementID int
	productID   int
}

type runKey struct {
	branchID int
	day      string
}

type state struct {
	products       map[int]entity.Product
	suppliers      map[int]entity.Supplier
	agreements     map[int]entity.SupplierAgreement
	offers         map[offerKey]entity.SupplierOffer
	discounts      []entity.DiscountRule
	shortageOrders map[string]entity.ShortageOrder
	periodicOrders map[string]entity.PeriodicOrder
	onTheWay       map[string]entity.OrderOnTheWay
	items          map[string]entity.InventoryItem
	purchaseOrders map[string]entity.PurchaseOrder
	runs           map[runKey]time.Time
}

func newState() *state {
	return &state{
		products:       map[int]entity.Product{},
		suppliers:      map[int]entity.Supplier{},
		agreements:     map[int]entity.SupplierAgreement{},
		offers:         map[offerKey]entity.SupplierOffer{},
		shortageOrders: map[string]entity.ShortageOrder{},
		periodicOrders: map[string]entity.PeriodicOrder{},
		onTheWay:       map[string]entity.OrderOnTheWay{},
		items:          map[string]entity.InventoryItem{},
		purchaseOrders: map[string]entity.PurchaseOrder{},
		runs:           map[runKey]time.Time{},
	}
}

// clone copia los mapas; los valores se reemplazan completos al escribir, nunca se mutan en sitio.
func (s *state) clone() *state {
	return &state{
		products:       maps.Clone(s.products),
		suppliers:      maps.Clone(s.suppliers),
		agreements:     maps.Clone(s.agreements),
		offers:         maps.Clone(s.offers),
		discounts:      append([]entity.DiscountRule(nil), s.discounts...),
		shortageOrders: maps.Clone(s.shortageOrders),
		periodicOrders: maps.Clone(s.periodicOrders),
		onTheWay:       maps.Clone(s.onTheWay),
		items:          maps.Clone(s.items),
		purchaseOrders: maps.Clone(s.purchaseOrders),
		runs:           maps.Clone(s.runs),
	}
}

// Store agrupa el estado en memoria de todos los repositorios.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	st   *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.st)
}

func (s *Store) write(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

var _ appproc.TxRunner = (*TxRunner)(nil)

// TxRunner simula transacciones sobre el Store: serializa las transacciones y restaura una copia
// del estado si fn devuelve error. Escrituras concurrentes fuera de la transacción se pierden
// en un rollback; suficiente para desarrollo y tests.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// RunProcurement ejecuta fn con repositorios del store y revierte si falla.
func (r *TxRunner) RunProcurement(ctx context.Context, fn func(repos appproc.TxRepos) error) error {
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	r.store.mu.RLock()
	snapshot := r.store.st.clone()
	r.store.mu.RUnlock()

	err := fn(appproc.TxRepos{
		ShortageOrders: NewShortageOrderRepository(r.store),
		PeriodicOrders: NewPeriodicOrderRepository(r.store),
		OnTheWay:       NewOrderOnTheWayRepository(r.store),
		Items:          NewItemRepository(r.store),
		Runs:           NewReplenishmentRunRepository(r.store),
	})
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		r.store.mu.Lock()
		r.store.st = snapshot
		r.store.mu.Unlock()
		return err
	}
	return nil
}
