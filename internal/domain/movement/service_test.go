package movement

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"almacen/internal/core/apperror"
	"almacen/internal/core/entity"
	"almacen/internal/core/id"
	"almacen/internal/domain"
	"almacen/internal/domain/stock"
	"almacen/pkg/numerator"
)

// --- mocks ---

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memRepo struct {
	mu        sync.Mutex
	movements map[id.ID]*Movement
}

func newMemRepo() *memRepo {
	return &memRepo{movements: make(map[id.ID]*Movement)}
}

func (r *memRepo) Create(ctx context.Context, m *Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.movements[m.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, movementID id.ID) (*Movement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.movements[movementID]
	if !ok {
		return nil, apperror.NewNotFound("movement", movementID.String())
	}
	cp := *m
	return &cp, nil
}

func (r *memRepo) GetByIDForUpdate(ctx context.Context, movementID id.ID) (*Movement, error) {
	return r.GetByID(ctx, movementID)
}

func (r *memRepo) Update(ctx context.Context, m *Movement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.movements[m.ID]; !ok {
		return apperror.NewNotFound("movement", m.ID.String())
	}
	cp := *m
	r.movements[m.ID] = &cp
	return nil
}

func (r *memRepo) Delete(ctx context.Context, movementID id.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.movements[movementID]; !ok {
		return apperror.NewNotFound("movement", movementID.String())
	}
	delete(r.movements, movementID)
	return nil
}

func (r *memRepo) SumAdjustedQuantity(ctx context.Context, sourceID id.ID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum int64
	for _, m := range r.movements {
		if m.Type == TypeAjusteQuitar && m.SourceMovementID != nil && *m.SourceMovementID == sourceID {
			sum += m.Quantity
		}
	}
	return sum, nil
}

func (r *memRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Movement], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*Movement, 0, len(r.movements))
	for _, m := range r.movements {
		cp := *m
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Number < all[j].Number })
	total := int64(len(all))

	items := all
	if filter.Offset >= len(items) {
		items = nil
	} else {
		items = items[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(items) {
		items = items[:filter.Limit]
	}

	return domain.ListResult[*Movement]{
		Items:      items,
		TotalCount: total,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}, nil
}

func (r *memRepo) ListPending(ctx context.Context, filter ListFilter) (domain.ListResult[*Movement], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []*Movement
	for _, m := range r.movements {
		if m.IsPending() {
			cp := *m
			items = append(items, &cp)
		}
	}
	return domain.ListResult[*Movement]{Items: items, TotalCount: int64(len(items))}, nil
}

func (r *memRepo) ListReceptionsInStock(ctx context.Context, filter ListFilter) (domain.ListResult[*Movement], error) {
	return r.List(ctx, filter)
}

type balanceKey struct {
	dep  id.ID
	prod id.ID
}

type memStockRepo struct {
	mu       sync.Mutex
	balances map[balanceKey]int64
	entries  []entity.StockEntry
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{balances: make(map[balanceKey]int64)}
}

func (r *memStockRepo) GetBalance(ctx context.Context, dep, prod id.ID) (entity.StockBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return entity.StockBalance{DependencyID: dep, ProductID: prod, Quantity: r.balances[balanceKey{dep, prod}]}, nil
}

func (r *memStockRepo) GetBalanceForUpdate(ctx context.Context, dep, prod id.ID) (entity.StockBalance, error) {
	return r.GetBalance(ctx, dep, prod)
}

func (r *memStockRepo) ApplyDelta(ctx context.Context, dep, prod id.ID, delta int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[balanceKey{dep, prod}] += delta
	return nil
}

func (r *memStockRepo) InsertEntries(ctx context.Context, entries []entity.StockEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entries...)
	return nil
}

func (r *memStockRepo) ListBalances(ctx context.Context, dep *id.ID) ([]entity.StockBalance, error) {
	return nil, nil
}

func (r *memStockRepo) GetProductBalances(ctx context.Context, prod id.ID) ([]entity.StockBalance, error) {
	return nil, nil
}

type fixedCatalogs struct{}

func (fixedCatalogs) ProductInfo(ctx context.Context, productID id.ID) (string, string, error) {
	return "PRD01", "Arroz Grado 1", nil
}
func (fixedCatalogs) SupplierCode(ctx context.Context, supplierID id.ID) (string, error) {
	return "SUP01", nil
}
func (fixedCatalogs) AgreementCode(ctx context.Context, agreementID id.ID) (string, error) {
	return "AGR01", nil
}
func (fixedCatalogs) AnnexCode(ctx context.Context, annexID id.ID) (string, error) {
	return "ANX01", nil
}

type seqRow struct{ val int64 }

func (r *seqRow) Scan(dest ...any) error {
	if ptr, ok := dest[0].(*int64); ok {
		*ptr = r.val
	}
	return nil
}

type seqQuerier struct {
	mu  sync.Mutex
	val int64
}

func (q *seqQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.val++
	return &seqRow{val: q.val}
}

type fixture struct {
	svc       *Service
	repo      *memRepo
	stockRepo *memStockRepo
}

func newFixture() *fixture {
	repo := newMemRepo()
	stockRepo := newMemStockRepo()
	return &fixture{
		svc: NewService(
			repo,
			stock.NewService(stockRepo),
			fixedCatalogs{},
			numerator.New(&seqQuerier{}),
			passthroughTx{},
		),
		repo:      repo,
		stockRepo: stockRepo,
	}
}

// --- tests ---

func TestCreateFromDraft_Reception(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	d := validDraft(TypeRecepcion)
	m, err := f.svc.CreateFromDraft(ctx, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Number != "MOV-2026-00001" {
		t.Errorf("number = %s, want MOV-2026-00001", m.Number)
	}
	if m.Code != "2026-SUP01-AGR01-ANX01-PRD01" {
		t.Errorf("code = %s, want 2026-SUP01-AGR01-ANX01-PRD01", m.Code)
	}
	if !m.IsPending() {
		t.Error("new movement must be pending")
	}

	bal, _ := f.stockRepo.GetBalance(ctx, m.DependencyID, m.ProductID)
	if bal.Quantity != 0 {
		t.Errorf("pending movement must not touch stock, balance = %d", bal.Quantity)
	}
}

func TestCreateFromDraft_NonReceptionHasNoCode(t *testing.T) {
	f := newFixture()
	m, err := f.svc.CreateFromDraft(context.Background(), validDraft(TypeMerma))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Code != "" {
		t.Errorf("non-reception must have empty code, got %s", m.Code)
	}
}

func TestConfirm_ReceptionThenMerma(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	rec := validDraft(TypeRecepcion)
	rec.Quantity = 10
	created, err := f.svc.CreateFromDraft(ctx, rec)
	if err != nil {
		t.Fatalf("create reception: %v", err)
	}

	confirmed, err := f.svc.Confirm(ctx, created.ID)
	if err != nil {
		t.Fatalf("confirm reception: %v", err)
	}
	if !confirmed.IsConfirmed() {
		t.Error("movement not marked confirmed")
	}

	bal, _ := f.stockRepo.GetBalance(ctx, rec.DependencyID, rec.ProductID)
	if bal.Quantity != 10 {
		t.Errorf("balance after reception = %d, want 10", bal.Quantity)
	}

	merma := validDraft(TypeMerma)
	merma.DependencyID = rec.DependencyID
	merma.ProductID = rec.ProductID
	merma.Quantity = 3
	mm, err := f.svc.CreateFromDraft(ctx, merma)
	if err != nil {
		t.Fatalf("create merma: %v", err)
	}
	if _, err := f.svc.Confirm(ctx, mm.ID); err != nil {
		t.Fatalf("confirm merma: %v", err)
	}

	bal, _ = f.stockRepo.GetBalance(ctx, rec.DependencyID, rec.ProductID)
	if bal.Quantity != 7 {
		t.Errorf("balance after merma = %d, want 7", bal.Quantity)
	}

	if len(f.stockRepo.entries) != 2 {
		t.Errorf("expected 2 ledger entries, got %d", len(f.stockRepo.entries))
	}
}

func TestConfirm_AlreadyConfirmed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	m, _ := f.svc.CreateFromDraft(ctx, validDraft(TypeRecepcion))
	if _, err := f.svc.Confirm(ctx, m.ID); err != nil {
		t.Fatalf("first confirm: %v", err)
	}

	_, err := f.svc.Confirm(ctx, m.ID)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeMovementConfirmed {
		t.Fatalf("expected MOVEMENT_ALREADY_CONFIRMED, got %v", err)
	}

	bal, _ := f.stockRepo.GetBalance(ctx, m.DependencyID, m.ProductID)
	if bal.Quantity != m.Quantity {
		t.Errorf("double confirm must not double stock: balance = %d", bal.Quantity)
	}
}

func TestConfirm_InsufficientStock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// No stock at all: confirming an exit of 5 must fail with available 0.
	merma := validDraft(TypeMerma)
	merma.Quantity = 5
	m, err := f.svc.CreateFromDraft(ctx, merma)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = f.svc.Confirm(ctx, m.ID)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeInsufficientStock {
		t.Fatalf("expected INSUFFICIENT_STOCK, got %v", err)
	}
	if appErr.Details["product_name"] != "Arroz Grado 1" {
		t.Errorf("product_name = %v", appErr.Details["product_name"])
	}
	if appErr.Details["available"] != int64(0) {
		t.Errorf("available = %v, want 0", appErr.Details["available"])
	}
	if appErr.Details["requested"] != int64(5) {
		t.Errorf("requested = %v, want 5", appErr.Details["requested"])
	}

	// The movement stays pending, so the caller can delete it.
	got, err := f.svc.GetByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("get after failed confirm: %v", err)
	}
	if !got.IsPending() {
		t.Error("movement must remain pending after failed confirm")
	}
	if err := f.svc.Delete(ctx, m.ID); err != nil {
		t.Fatalf("delete recovery: %v", err)
	}
}

func TestConfirm_SequentialExhaustion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	rec := validDraft(TypeRecepcion)
	rec.Quantity = 5
	created, _ := f.svc.CreateFromDraft(ctx, rec)
	if _, err := f.svc.Confirm(ctx, created.ID); err != nil {
		t.Fatalf("confirm reception: %v", err)
	}

	exit := func() id.ID {
		d := validDraft(TypeDonacion)
		d.DependencyID = rec.DependencyID
		d.ProductID = rec.ProductID
		d.Quantity = 5
		m, err := f.svc.CreateFromDraft(ctx, d)
		if err != nil {
			t.Fatalf("create exit: %v", err)
		}
		return m.ID
	}

	first, second := exit(), exit()

	if _, err := f.svc.Confirm(ctx, first); err != nil {
		t.Fatalf("first exit should succeed: %v", err)
	}

	_, err := f.svc.Confirm(ctx, second)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeInsufficientStock {
		t.Fatalf("expected INSUFFICIENT_STOCK, got %v", err)
	}
	if appErr.Details["available"] != int64(0) {
		t.Errorf("available = %v, want 0", appErr.Details["available"])
	}
}

func TestDelete_PendingAndIdempotence(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	m, _ := f.svc.CreateFromDraft(ctx, validDraft(TypeMerma))

	if err := f.svc.Delete(ctx, m.ID); err != nil {
		t.Fatalf("delete pending: %v", err)
	}

	// Second delete reports NotFound; callers may treat it as success.
	err := f.svc.Delete(ctx, m.ID)
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected NotFound on second delete, got %v", err)
	}
}

func TestDelete_ConfirmedRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	m, _ := f.svc.CreateFromDraft(ctx, validDraft(TypeRecepcion))
	if _, err := f.svc.Confirm(ctx, m.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	err := f.svc.Delete(ctx, m.ID)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeMovementConfirmed {
		t.Fatalf("expected MOVEMENT_ALREADY_CONFIRMED, got %v", err)
	}
}

func TestCreateAdjustment_SplitAndResplit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	rec := validDraft(TypeRecepcion)
	rec.Quantity = 100
	created, _ := f.svc.CreateFromDraft(ctx, rec)
	if _, err := f.svc.Confirm(ctx, created.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	legs, err := f.svc.CreateAdjustment(ctx, AdjustmentRequest{
		SourceMovementID: created.ID,
		Destinations: []AdjustmentDestination{
			{DependencyID: id.New(), Quantity: 60},
		},
	})
	if err != nil {
		t.Fatalf("first split: %v", err)
	}
	if len(legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(legs))
	}

	remaining, err := f.svc.Remaining(ctx, created.ID)
	if err != nil {
		t.Fatalf("remaining: %v", err)
	}
	if remaining != 40 {
		t.Errorf("remaining = %d, want 40", remaining)
	}

	// 41 exceeds what is left after the first split.
	_, err = f.svc.CreateAdjustment(ctx, AdjustmentRequest{
		SourceMovementID: created.ID,
		Destinations: []AdjustmentDestination{
			{DependencyID: id.New(), Quantity: 41},
		},
	})
	if !apperror.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// 40 exactly exhausts it.
	if _, err := f.svc.CreateAdjustment(ctx, AdjustmentRequest{
		SourceMovementID: created.ID,
		Destinations: []AdjustmentDestination{
			{DependencyID: id.New(), Quantity: 40},
		},
	}); err != nil {
		t.Fatalf("second split: %v", err)
	}
}

func TestCreateAdjustment_RunsCreateHooks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	var beforeCalls, afterCalls int
	f.svc.Hooks().On(domain.BeforeCreate, func(ctx context.Context, m *Movement) error {
		beforeCalls++
		m.CreatedBy = "usr-1"
		m.UpdatedBy = "usr-1"
		return nil
	})
	f.svc.Hooks().On(domain.AfterCreate, func(ctx context.Context, m *Movement) error {
		afterCalls++
		return nil
	})

	rec := validDraft(TypeRecepcion)
	rec.Quantity = 50
	created, err := f.svc.CreateFromDraft(ctx, rec)
	if err != nil {
		t.Fatalf("create reception: %v", err)
	}
	if _, err := f.svc.Confirm(ctx, created.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	beforeCalls, afterCalls = 0, 0

	legs, err := f.svc.CreateAdjustment(ctx, AdjustmentRequest{
		SourceMovementID: created.ID,
		Destinations:     []AdjustmentDestination{{DependencyID: id.New(), Quantity: 20}},
	})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(legs))
	}

	// Each leg goes through the same hooks as a drafted movement.
	if beforeCalls != 2 {
		t.Errorf("BeforeCreate ran %d times, want 2", beforeCalls)
	}
	if afterCalls != 2 {
		t.Errorf("AfterCreate ran %d times, want 2", afterCalls)
	}
	for _, leg := range legs {
		got, err := f.repo.GetByID(ctx, leg.ID)
		if err != nil {
			t.Fatalf("get leg: %v", err)
		}
		if got.CreatedBy != "usr-1" {
			t.Errorf("leg %s created_by = %q, want usr-1", got.Type, got.CreatedBy)
		}
	}
}

func TestCreateAdjustment_RequiresConfirmedReception(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	pending, _ := f.svc.CreateFromDraft(ctx, validDraft(TypeRecepcion))
	_, err := f.svc.CreateAdjustment(ctx, AdjustmentRequest{
		SourceMovementID: pending.ID,
		Destinations:     []AdjustmentDestination{{DependencyID: id.New(), Quantity: 1}},
	})
	if err == nil {
		t.Fatal("expected error for pending source")
	}

	merma, _ := f.svc.CreateFromDraft(ctx, validDraft(TypeMerma))
	if _, err := f.svc.Confirm(ctx, merma.ID); err == nil {
		// merma with no stock fails to confirm; create stock first
		t.Fatal("merma confirm without stock should fail")
	}
	_, err = f.svc.CreateAdjustment(ctx, AdjustmentRequest{
		SourceMovementID: merma.ID,
		Destinations:     []AdjustmentDestination{{DependencyID: id.New(), Quantity: 1}},
	})
	if err == nil {
		t.Fatal("expected error for non-reception source")
	}
}

func TestConfirmAdjustmentLegs(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	rec := validDraft(TypeRecepcion)
	rec.Quantity = 100
	created, _ := f.svc.CreateFromDraft(ctx, rec)
	if _, err := f.svc.Confirm(ctx, created.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	destDep := id.New()
	legs, err := f.svc.CreateAdjustment(ctx, AdjustmentRequest{
		SourceMovementID: created.ID,
		Destinations:     []AdjustmentDestination{{DependencyID: destDep, Quantity: 30}},
	})
	if err != nil {
		t.Fatalf("split: %v", err)
	}

	for _, leg := range legs {
		if _, err := f.svc.Confirm(ctx, leg.ID); err != nil {
			t.Fatalf("confirm leg %s: %v", leg.Type, err)
		}
	}

	src, _ := f.stockRepo.GetBalance(ctx, rec.DependencyID, rec.ProductID)
	if src.Quantity != 70 {
		t.Errorf("source balance = %d, want 70", src.Quantity)
	}
	dst, _ := f.stockRepo.GetBalance(ctx, destDep, rec.ProductID)
	if dst.Quantity != 30 {
		t.Errorf("destination balance = %d, want 30", dst.Quantity)
	}
}
