package delivery_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appdelivery "github.com/tu-usuario/almacen-api/internal/application/delivery"
	"github.com/tu-usuario/almacen-api/internal/domain"
	deliverydomain "github.com/tu-usuario/almacen-api/internal/domain/delivery"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El runner trabaja sobre una copia y publica solo en éxito,
// replicando la semántica Commit/Rollback.
// ──────────────────────────────────────────────────────────────────────────────

type wfStore struct {
	deliveries map[string]*entity.Delivery
	products   map[string]*entity.Product
	locations  map[string]*entity.Location
	history    []*entity.MoveHistory
}

func newWFStore() *wfStore {
	return &wfStore{
		deliveries: make(map[string]*entity.Delivery),
		products:   make(map[string]*entity.Product),
		locations:  make(map[string]*entity.Location),
	}
}

func copyDelivery(d *entity.Delivery) *entity.Delivery {
	cp := *d
	cp.Items = append([]entity.DeliveryItem(nil), d.Items...)
	return &cp
}

func (s *wfStore) clone() *wfStore {
	c := newWFStore()
	for id, d := range s.deliveries {
		c.deliveries[id] = copyDelivery(d)
	}
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, l := range s.locations {
		cl := *l
		c.locations[id] = &cl
	}
	c.history = append(c.history, s.history...)
	return c
}

type fakeDeliveryRepo struct {
	s *wfStore
}

func (r *fakeDeliveryRepo) Create(d *entity.Delivery) error {
	for _, existing := range r.s.deliveries {
		if existing.Reference == d.Reference {
			return domain.ErrDuplicate
		}
	}
	r.s.deliveries[d.ID] = copyDelivery(d)
	return nil
}

func (r *fakeDeliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	d, ok := r.s.deliveries[id]
	if !ok {
		return nil, nil
	}
	return copyDelivery(d), nil
}

func (r *fakeDeliveryRepo) GetForUpdate(id string) (*entity.Delivery, error) {
	return r.GetByID(id)
}

func (r *fakeDeliveryRepo) UpdateHeader(d *entity.Delivery) error {
	existing, ok := r.s.deliveries[d.ID]
	if !ok {
		return domain.ErrNotFound
	}
	items := existing.Items
	r.s.deliveries[d.ID] = copyDelivery(d)
	r.s.deliveries[d.ID].Items = items
	return nil
}

func (r *fakeDeliveryRepo) ReplaceItems(deliveryID string, items []entity.DeliveryItem) error {
	d, ok := r.s.deliveries[deliveryID]
	if !ok {
		return domain.ErrNotFound
	}
	d.Items = append([]entity.DeliveryItem(nil), items...)
	return nil
}

func (r *fakeDeliveryRepo) UpdateStatus(deliveryID, status string) error {
	d, ok := r.s.deliveries[deliveryID]
	if !ok {
		return domain.ErrNotFound
	}
	d.Status = status
	return nil
}

func (r *fakeDeliveryRepo) List(status string, limit, offset int) ([]*entity.Delivery, error) {
	var out []*entity.Delivery
	for _, d := range r.s.deliveries {
		if status == "" || d.Status == status {
			out = append(out, copyDelivery(d))
		}
	}
	return out, nil
}

func (r *fakeDeliveryRepo) Delete(id string) error {
	delete(r.s.deliveries, id)
	return nil
}

type wfProductRepo struct {
	s *wfStore
}

func (r *wfProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *wfProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *wfProductRepo) GetBySKU(sku string) (*entity.Product, error) { return nil, nil }

func (r *wfProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *wfProductRepo) Update(p *entity.Product) error { return nil }

func (r *wfProductRepo) UpdateQuantity(productID string, quantity int) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}

func (r *wfProductRepo) UpdateLocation(productID string, locationID *string) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.LocationID = locationID
	return nil
}

func (r *wfProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

func (r *wfProductRepo) Delete(id string) error { return nil }

type fakeHistoryRepo struct {
	s          *wfStore
	failCreate error
}

func (r *fakeHistoryRepo) Create(e *entity.MoveHistory) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	cp := *e
	r.s.history = append(r.s.history, &cp)
	return nil
}

func (r *fakeHistoryRepo) List(limit, offset int) ([]*entity.MoveHistory, error) {
	return r.s.history, nil
}

func (r *fakeHistoryRepo) GetByDelivery(deliveryID string) (*entity.MoveHistory, error) {
	for _, e := range r.s.history {
		if e.DeliveryID == deliveryID {
			return e, nil
		}
	}
	return nil, nil
}

type fakeLocationRepo struct {
	s *wfStore
}

func (r *fakeLocationRepo) Create(l *entity.Location) error {
	cl := *l
	r.s.locations[l.ID] = &cl
	return nil
}

func (r *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	l, ok := r.s.locations[id]
	if !ok {
		return nil, nil
	}
	cl := *l
	return &cl, nil
}

func (r *fakeLocationRepo) Update(l *entity.Location) error { return nil }

func (r *fakeLocationRepo) List(limit, offset int) ([]*entity.Location, error) { return nil, nil }
func (r *fakeLocationRepo) ListByWarehouse(warehouseID string) ([]*entity.Location, error) {
	return nil, nil
}
func (r *fakeLocationRepo) Delete(id string) error { return nil }

type wfTxRunner struct {
	store             *wfStore
	failHistoryCreate error
}

func (tr *wfTxRunner) RunDelivery(
	_ context.Context,
	fn func(repository.DeliveryRepository, repository.ProductRepository, repository.MoveHistoryRepository) error,
) error {
	work := tr.store.clone()
	err := fn(
		&fakeDeliveryRepo{s: work},
		&wfProductRepo{s: work},
		&fakeHistoryRepo{s: work, failCreate: tr.failHistoryCreate},
	)
	if err != nil {
		return err
	}
	*tr.store = *work
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newWorkflow(store *wfStore) *appdelivery.WorkflowUseCase {
	return appdelivery.NewWorkflowUseCase(
		&wfTxRunner{store: store},
		&fakeDeliveryRepo{s: store},
		&fakeLocationRepo{s: store},
	)
}

func seedLocations(store *wfStore, ids ...string) {
	for _, id := range ids {
		store.locations[id] = &entity.Location{ID: id, Name: "Ubicación " + id, WarehouseID: "w1"}
	}
}

func seedProduct(store *wfStore, id string, quantity int, locationID string) {
	loc := locationID
	store.products[id] = &entity.Product{ID: id, SKU: "SKU-" + id, Quantity: quantity, LocationID: &loc}
}

func crearEntrega(t *testing.T, uc *appdelivery.WorkflowUseCase, items ...appdelivery.ItemInput) *entity.Delivery {
	t.Helper()
	d, err := uc.Create(context.Background(), appdelivery.CreateInputDTO{
		Reference:      "OUT-001",
		FromLocationID: "loc-a",
		ToLocationID:   "loc-b",
		Items:          items,
		UserID:         "user-1",
	})
	require.NoError(t, err)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación y edición en draft
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NaceEnDraft(t *testing.T) {
	store := newWFStore()
	seedLocations(store, "loc-a", "loc-b")
	seedProduct(store, "p1", 10, "loc-a")
	uc := newWorkflow(store)

	d := crearEntrega(t, uc, appdelivery.ItemInput{ProductID: "p1", Quantity: 2})

	assert.Equal(t, deliverydomain.StatusDraft, d.Status)
	assert.Equal(t, "user-1", d.ResponsibleID)
	require.Len(t, d.Items, 1)
	assert.Equal(t, "p1", d.Items[0].ProductID)

	stored := store.deliveries[d.ID]
	require.NotNil(t, stored)
	assert.Equal(t, deliverydomain.StatusDraft, stored.Status)
}

func TestCreate_ReferenciaDuplicada(t *testing.T) {
	store := newWFStore()
	seedLocations(store, "loc-a", "loc-b")
	uc := newWorkflow(store)

	crearEntrega(t, uc)
	_, err := uc.Create(context.Background(), appdelivery.CreateInputDTO{
		Reference:      "OUT-001",
		FromLocationID: "loc-a",
		ToLocationID:   "loc-b",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_UbicacionInexistente(t *testing.T) {
	store := newWFStore()
	seedLocations(store, "loc-a")
	uc := newWorkflow(store)

	_, err := uc.Create(context.Background(), appdelivery.CreateInputDTO{
		Reference:      "OUT-001",
		FromLocationID: "loc-a",
		ToLocationID:   "loc-fantasma",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_ItemsInvalidos(t *testing.T) {
	store := newWFStore()
	seedLocations(store, "loc-a", "loc-b")
	uc := newWorkflow(store)

	cases := map[string][]appdelivery.ItemInput{
		"cantidad cero":     {{ProductID: "p1", Quantity: 0}},
		"cantidad negativa": {{ProductID: "p1", Quantity: -2}},
		"producto repetido": {{ProductID: "p1", Quantity: 1}, {ProductID: "p1", Quantity: 2}},
		"producto vacío":    {{ProductID: "", Quantity: 1}},
	}
	for name, items := range cases {
		_, err := uc.Create(context.Background(), appdelivery.CreateInputDTO{
			Reference:      "OUT-X",
			FromLocationID: "loc-a",
			ToLocationID:   "loc-b",
			Items:          items,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
}

func TestUpdateDraft_ReemplazaItemsCompletos(t *testing.T) {
	store := newWFStore()
	seedLocations(store, "loc-a", "loc-b", "loc-c")
	uc := newWorkflow(store)

	d := crearEntrega(t, uc,
		appdelivery.ItemInput{ProductID: "p1", Quantity: 2},
		appdelivery.ItemInput{ProductID: "p2", Quantity: 3},
	)

	updated, err := uc.UpdateDraft(context.Background(), d.ID, appdelivery.UpdateInputDTO{
		FromLocationID: "loc-a",
		ToLocationID:   "loc-c",
		Items:          []appdelivery.ItemInput{{ProductID: "p3", Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, "loc-c", updated.ToLocationID)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "p3", updated.Items[0].ProductID)

	stored := store.deliveries[d.ID]
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "p3", stored.Items[0].ProductID)
}

func TestUpdateDraft_FueraDeDraftFalla(t *testing.T) {
	store := newWFStore()
	seedLocations(store, "loc-a", "loc-b")
	uc := newWorkflow(store)
	ctx := context.Background()

	d := crearEntrega(t, uc)
	_, err := uc.ChangeStatus(ctx, d.ID, deliverydomain.StatusWaiting)
	require.NoError(t, err)

	_, err = uc.UpdateDraft(ctx, d.ID, appdelivery.UpdateInputDTO{
		FromLocationID: "loc-a",
		ToLocationID:   "loc-b",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestUpdateDraft_EntregaInexistente(t *testing.T) {
	store := newWFStore()
	uc := newWorkflow(store)

	_, err := uc.UpdateDraft(context.Background(), "no-existe", appdelivery.UpdateInputDTO{
		FromLocationID: "loc-a",
		ToLocationID:   "loc-b",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cambios de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestChangeStatus_CicloCompletoHastaDone(t *testing.T) {
	store := newWFStore()
	seedLocations(store, "loc-a", "loc-b")
	seedProduct(store, "p1", 10, "loc-a")
	seedProduct(store, "p2", 5, "loc-a")
	uc := newWorkflow(store)
	ctx := context.Background()

	d := crearEntrega(t, uc,
		appdelivery.ItemInput{ProductID: "p1", Quantity: 2},
		appdelivery.ItemInput{ProductID: "p2", Quantity: 1},
	)

	for _, status := range []string{
		deliverydomain.StatusWaiting,
		deliverydomain.StatusReady,
		deliverydomain.StatusDone,
	} {
		updated, err := uc.ChangeStatus(ctx, d.ID, status)
		require.NoError(t, err, "transición a %s", status)
		assert.Equal(t, status, updated.Status)
	}

	// Al completar: historial registrado y productos reubicados al destino.
	require.Len(t, store.history, 1)
	assert.Equal(t, d.ID, store.history[0].DeliveryID)
	assert.Equal(t, "OUT-001", store.history[0].Reference)
	assert.Equal(t, "loc-a", store.history[0].FromLocationID)
	assert.Equal(t, "loc-b", store.history[0].ToLocationID)

	for _, pid := range []string{"p1", "p2"} {
		require.NotNil(t, store.products[pid].LocationID)
		assert.Equal(t, "loc-b", *store.products[pid].LocationID, "producto %s", pid)
	}
}

// Completar una entrega mueve ubicaciones, nunca cantidades.
func TestChangeStatus_DoneNoTocaCantidades(t *testing.T) {
	store := newWFStore()
	seedLocations(store, "loc-a", "loc-b")
	seedProduct(store, "p1", 10, "loc-a")
	uc := newWorkflow(store)
	ctx := context.Background()

	d := crearEntrega(t, uc, appdelivery.ItemInput{ProductID: "p1", Quantity: 4})
	for _, status := range []string{"waiting", "ready", "done"} {
		_, err := uc.ChangeStatus(ctx, d.ID, status)
		require.NoError(t, err)
	}

	assert.Equal(t, 10, store.products["p1"].Quantity)
}

func TestChangeStatus_Retrocesos(t *testing.T) {
	store := newWFStore()
	seedLocations(store, "loc-a", "loc-b")
	uc := newWorkflow(store)
	ctx := context.Background()

	d := crearEntrega(t, uc)

	_, err := uc.ChangeStatus(ctx, d.ID, deliverydomain.StatusWaiting)
	require.NoError(t, err)
	updated, err := uc.ChangeStatus(ctx, d.ID, deliverydomain.StatusDraft)
	require.NoError(t, err)
	assert.Equal(t, deliverydomain.StatusDraft, updated.Status)

	_, err = uc.ChangeStatus(ctx, d.ID, deliverydomain.StatusWaiting)
	require.NoError(t, err)
	_, err = uc.ChangeStatus(ctx, d.ID, deliverydomain.StatusReady)
	require.NoError(t, err)
	updated, err = uc.ChangeStatus(ctx, d.ID, deliverydomain.StatusWaiting)
	require.NoError(t, err)
	assert.Equal(t, deliverydomain.StatusWaiting, updated.Status)
}

func TestChangeStatus_SaltosProhibidos(t *testing.T) {
	store := newWFStore()
	seedLocations(store, "loc-a", "loc-b")
	uc := newWorkflow(store)
	ctx := context.Background()

	d := crearEntrega(t, uc)

	for _, target := range []string{deliverydomain.StatusReady, deliverydomain.StatusDone} {
		_, err := uc.ChangeStatus(ctx, d.ID, target)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "draft → %s", target)
	}
	assert.Equal(t, deliverydomain.StatusDraft, store.deliveries[d.ID].Status)
}

// Segundo intento de completar: el primero gana, el segundo relee done y la
// validación de transición lo rechaza.
func TestChangeStatus_SegundoDoneFalla(t *testing.T) {
	store := newWFStore()
	seedLocations(store, "loc-a", "loc-b")
	seedProduct(store, "p1", 10, "loc-a")
	uc := newWorkflow(store)
	ctx := context.Background()

	d := crearEntrega(t, uc, appdelivery.ItemInput{ProductID: "p1", Quantity: 1})
	for _, status := range []string{"waiting", "ready", "done"} {
		_, err := uc.ChangeStatus(ctx, d.ID, status)
		require.NoError(t, err)
	}

	_, err := uc.ChangeStatus(ctx, d.ID, deliverydomain.StatusDone)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// El historial no se duplica.
	assert.Len(t, store.history, 1)
}

func TestChangeStatus_EstadoDestinoInvalido(t *testing.T) {
	store := newWFStore()
	seedLocations(store, "loc-a", "loc-b")
	uc := newWorkflow(store)

	d := crearEntrega(t, uc)
	_, err := uc.ChangeStatus(context.Background(), d.ID, "cancelled")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un fallo al escribir el historial revierte la transición completa: el estado
// queda en ready y ningún producto cambia de ubicación.
func TestChangeStatus_FalloEnHistorialHaceRollback(t *testing.T) {
	store := newWFStore()
	seedLocations(store, "loc-a", "loc-b")
	seedProduct(store, "p1", 10, "loc-a")

	runner := &wfTxRunner{store: store}
	uc := appdelivery.NewWorkflowUseCase(runner, &fakeDeliveryRepo{s: store}, &fakeLocationRepo{s: store})
	ctx := context.Background()

	d := crearEntrega(t, uc, appdelivery.ItemInput{ProductID: "p1", Quantity: 1})
	for _, status := range []string{"waiting", "ready"} {
		_, err := uc.ChangeStatus(ctx, d.ID, status)
		require.NoError(t, err)
	}

	runner.failHistoryCreate = errors.New("disk full")
	_, err := uc.ChangeStatus(ctx, d.ID, deliverydomain.StatusDone)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransactionFailed)

	assert.Equal(t, deliverydomain.StatusReady, store.deliveries[d.ID].Status)
	assert.Empty(t, store.history)
	assert.Equal(t, "loc-a", *store.products["p1"].LocationID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrado y lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_SoloEnDraft(t *testing.T) {
	store := newWFStore()
	seedLocations(store, "loc-a", "loc-b")
	uc := newWorkflow(store)
	ctx := context.Background()

	d := crearEntrega(t, uc)
	_, err := uc.ChangeStatus(ctx, d.ID, deliverydomain.StatusWaiting)
	require.NoError(t, err)

	err = uc.Delete(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Contains(t, store.deliveries, d.ID)

	_, err = uc.ChangeStatus(ctx, d.ID, deliverydomain.StatusDraft)
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, d.ID))
	assert.NotContains(t, store.deliveries, d.ID)
}

func TestDelete_EntregaInexistente(t *testing.T) {
	store := newWFStore()
	uc := newWorkflow(store)
	assert.ErrorIs(t, uc.Delete(context.Background(), "no-existe"), domain.ErrNotFound)
}

func TestList_FiltroPorEstadoInvalido(t *testing.T) {
	store := newWFStore()
	uc := newWorkflow(store)
	_, err := uc.List(context.Background(), "cancelled", 10, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetByID_EntregaInexistente(t *testing.T) {
	store := newWFStore()
	uc := newWorkflow(store)
	_, err := uc.GetByID(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
