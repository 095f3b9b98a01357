package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/application/ledger"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica transaccional: Run trabaja sobre una copia y
// solo publica los cambios si el callback termina sin error. Un fallo a mitad
// deja el estado original intacto, igual que un Rollback.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products   map[string]*entity.Product
	operations []*entity.Operation
	entries    []*entity.LedgerEntry
}

func newMemStore(products ...*entity.Product) *memStore {
	s := &memStore{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return s
}

func (s *memStore) clone() *memStore {
	c := &memStore{products: make(map[string]*entity.Product, len(s.products))}
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	c.operations = append(c.operations, s.operations...)
	c.entries = append(c.entries, s.entries...)
	return c
}

type fakeProductRepo struct {
	s *memStore
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(productID string, quantity int) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}

func (r *fakeProductRepo) UpdateLocation(productID string, locationID *string) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.LocationID = locationID
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) Delete(id string) error { return nil }

type fakeOperationRepo struct {
	s *memStore
}

func (r *fakeOperationRepo) Create(op *entity.Operation) error {
	cp := *op
	r.s.operations = append(r.s.operations, &cp)
	return nil
}

func (r *fakeOperationRepo) GetByID(id string) (*entity.Operation, error) { return nil, nil }
func (r *fakeOperationRepo) List(limit, offset int) ([]*entity.Operation, error) {
	return r.s.operations, nil
}
func (r *fakeOperationRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Operation, error) {
	return nil, nil
}

type fakeLedgerRepo struct {
	s          *memStore
	failCreate error
}

func (r *fakeLedgerRepo) Create(e *entity.LedgerEntry) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	cp := *e
	r.s.entries = append(r.s.entries, &cp)
	return nil
}

func (r *fakeLedgerRepo) ListByProduct(productID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.s.entries {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeLedgerRepo) GetLastByProduct(productID string) (*entity.LedgerEntry, error) {
	list, _ := r.ListByProduct(productID, 0, 0)
	if len(list) == 0 {
		return nil, nil
	}
	return list[len(list)-1], nil
}

func (r *fakeLedgerRepo) ListRecent(limit int) ([]*entity.LedgerEntry, error) {
	return r.s.entries, nil
}

type fakeTxRunner struct {
	store            *memStore
	failLedgerCreate error
}

func (tr *fakeTxRunner) Run(
	_ context.Context,
	fn func(repository.ProductRepository, repository.OperationRepository, repository.LedgerRepository) error,
) error {
	work := tr.store.clone()
	err := fn(
		&fakeProductRepo{s: work},
		&fakeOperationRepo{s: work},
		&fakeLedgerRepo{s: work, failCreate: tr.failLedgerCreate},
	)
	if err != nil {
		return err
	}
	*tr.store = *work
	return nil
}

func productoConStock(id string, quantity int) *entity.Product {
	return &entity.Product{ID: id, SKU: "SKU-" + id, Name: "Producto " + id, Quantity: quantity}
}

// ──────────────────────────────────────────────────────────────────────────────
// Política de signos
// ──────────────────────────────────────────────────────────────────────────────

func TestDeriveDelta(t *testing.T) {
	cases := []struct {
		opType string
		qty    int
		want   int
	}{
		{entity.OperationTypeReceipt, 10, 10},
		{entity.OperationTypeDelivery, 10, -10},
		{entity.OperationTypeTransfer, 4, -4},
		{entity.OperationTypeAdjustment, 7, 7},
		{"desconocido", 5, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ledger.DeriveDelta(tc.opType, tc.qty), "tipo %s", tc.opType)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de operaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyOperation_ReceiptSumaYDejaAsiento(t *testing.T) {
	store := newMemStore(productoConStock("p1", 10))
	uc := ledger.NewApplyOperationUseCase(&fakeTxRunner{store: store})

	op, err := uc.ApplyOperation(context.Background(), ledger.OperationInputDTO{
		Type:      entity.OperationTypeReceipt,
		ProductID: "p1",
		Quantity:  5,
		Reason:    "reposición semanal",
		UserID:    "user-1",
	})
	require.NoError(t, err)
	require.NotNil(t, op)

	assert.Equal(t, 15, store.products["p1"].Quantity)
	require.Len(t, store.operations, 1)
	assert.Equal(t, entity.OperationTypeReceipt, store.operations[0].Type)
	assert.Equal(t, "user-1", store.operations[0].PerformedBy)

	require.Len(t, store.entries, 1)
	entry := store.entries[0]
	assert.Equal(t, op.ID, entry.OperationID)
	assert.Equal(t, 5, entry.Change)
	assert.Equal(t, 15, entry.BalanceAfter)
}

func TestApplyOperation_DeliveryResta(t *testing.T) {
	store := newMemStore(productoConStock("p1", 10))
	uc := ledger.NewApplyOperationUseCase(&fakeTxRunner{store: store})

	_, err := uc.ApplyOperation(context.Background(), ledger.OperationInputDTO{
		Type:      entity.OperationTypeDelivery,
		ProductID: "p1",
		Quantity:  4,
		UserID:    "user-1",
	})
	require.NoError(t, err)

	assert.Equal(t, 6, store.products["p1"].Quantity)
	require.Len(t, store.entries, 1)
	assert.Equal(t, -4, store.entries[0].Change)
	assert.Equal(t, 6, store.entries[0].BalanceAfter)
}

// No hay piso en cero: una salida mayor que la existencia deja saldo negativo
// y el libro lo registra tal cual.
func TestApplyOperation_DeliveryPuedeDejarSaldoNegativo(t *testing.T) {
	store := newMemStore(productoConStock("p1", 3))
	uc := ledger.NewApplyOperationUseCase(&fakeTxRunner{store: store})

	_, err := uc.ApplyOperation(context.Background(), ledger.OperationInputDTO{
		Type:      entity.OperationTypeDelivery,
		ProductID: "p1",
		Quantity:  5,
		UserID:    "user-1",
	})
	require.NoError(t, err)

	assert.Equal(t, -2, store.products["p1"].Quantity)
	assert.Equal(t, -2, store.entries[0].BalanceAfter)
}

// adjustment aplica la magnitud siempre como positiva: una corrección a la
// baja no puede expresarse por esta vía.
func TestApplyOperation_AjusteSoloPositivo(t *testing.T) {
	store := newMemStore(productoConStock("p1", 10))
	uc := ledger.NewApplyOperationUseCase(&fakeTxRunner{store: store})

	_, err := uc.ApplyOperation(context.Background(), ledger.OperationInputDTO{
		Type:      entity.OperationTypeAdjustment,
		ProductID: "p1",
		Quantity:  3,
		Reason:    "conteo físico",
		UserID:    "user-1",
	})
	require.NoError(t, err)

	assert.Equal(t, 13, store.products["p1"].Quantity)
	assert.Equal(t, 3, store.entries[0].Change)
}

// Una secuencia de operaciones produce una cadena de asientos cuyo último
// balance coincide con la existencia del producto.
func TestApplyOperation_CadenaDeAsientosConsistente(t *testing.T) {
	store := newMemStore(productoConStock("p1", 0))
	uc := ledger.NewApplyOperationUseCase(&fakeTxRunner{store: store})
	ctx := context.Background()

	steps := []struct {
		opType string
		qty    int
	}{
		{entity.OperationTypeReceipt, 20},
		{entity.OperationTypeDelivery, 5},
		{entity.OperationTypeTransfer, 3},
		{entity.OperationTypeReceipt, 8},
		{entity.OperationTypeAdjustment, 2},
	}
	for _, st := range steps {
		_, err := uc.ApplyOperation(ctx, ledger.OperationInputDTO{
			Type: st.opType, ProductID: "p1", Quantity: st.qty, UserID: "user-1",
		})
		require.NoError(t, err)
	}

	require.Len(t, store.entries, len(steps))
	balance := 0
	for i, e := range store.entries {
		balance += e.Change
		assert.Equal(t, balance, e.BalanceAfter, "asiento %d", i)
	}
	assert.Equal(t, balance, store.products["p1"].Quantity)
	assert.Equal(t, 22, balance)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación y fallos
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyOperation_TipoInvalido(t *testing.T) {
	store := newMemStore(productoConStock("p1", 10))
	uc := ledger.NewApplyOperationUseCase(&fakeTxRunner{store: store})

	_, err := uc.ApplyOperation(context.Background(), ledger.OperationInputDTO{
		Type: "devolucion", ProductID: "p1", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, store.products["p1"].Quantity)
	assert.Empty(t, store.entries)
}

func TestApplyOperation_CantidadNoPositiva(t *testing.T) {
	store := newMemStore(productoConStock("p1", 10))
	uc := ledger.NewApplyOperationUseCase(&fakeTxRunner{store: store})

	for _, qty := range []int{0, -5} {
		_, err := uc.ApplyOperation(context.Background(), ledger.OperationInputDTO{
			Type: entity.OperationTypeReceipt, ProductID: "p1", Quantity: qty,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %d", qty)
	}
	assert.Equal(t, 10, store.products["p1"].Quantity)
}

func TestApplyOperation_ProductoInexistente(t *testing.T) {
	store := newMemStore()
	uc := ledger.NewApplyOperationUseCase(&fakeTxRunner{store: store})

	_, err := uc.ApplyOperation(context.Background(), ledger.OperationInputDTO{
		Type: entity.OperationTypeReceipt, ProductID: "no-existe", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un fallo al escribir el asiento revierte todo: ni cantidad actualizada ni
// operación registrada.
func TestApplyOperation_FalloEnAsientoHaceRollback(t *testing.T) {
	store := newMemStore(productoConStock("p1", 10))
	uc := ledger.NewApplyOperationUseCase(&fakeTxRunner{
		store:            store,
		failLedgerCreate: errors.New("constraint violation"),
	})

	_, err := uc.ApplyOperation(context.Background(), ledger.OperationInputDTO{
		Type: entity.OperationTypeReceipt, ProductID: "p1", Quantity: 5, UserID: "user-1",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransactionFailed)

	assert.Equal(t, 10, store.products["p1"].Quantity)
	assert.Empty(t, store.operations)
	assert.Empty(t, store.entries)
}
