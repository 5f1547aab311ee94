package ledger_test

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harenatech/harena-api/internal/application/audit"
	"github.com/harenatech/harena-api/internal/application/ledger"
	"github.com/harenatech/harena-api/internal/domain"
	"github.com/harenatech/harena-api/internal/domain/entity"
	"github.com/harenatech/harena-api/internal/domain/repository"
	"github.com/harenatech/harena-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doubles en mémoire des ports de persistance, avec la même sémantique que les
// implémentations SQL : incrément atomique, décrément conditionnel, rollback.
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

type fakeActifRepo struct {
	rows map[repository.ActifKey]*entity.Actif
	seq  int
}

func newFakeActifRepo() *fakeActifRepo {
	return &fakeActifRepo{rows: make(map[repository.ActifKey]*entity.Actif)}
}

func (f *fakeActifRepo) UpsertIncrement(_ context.Context, key repository.ActifKey, qty, prix decimal.Decimal) (*entity.Actif, error) {
	row, ok := f.rows[key]
	if !ok {
		f.seq++
		row = &entity.Actif{
			ID:        "actif-" + strconv.Itoa(f.seq),
			UserID:    key.UserID,
			SiteID:    key.SiteID,
			ProductID: key.ProductID,
			Quantite:  decimal.Zero,
			CreatedAt: time.Now(),
		}
		f.rows[key] = row
	}
	row.Quantite = row.Quantite.Add(qty)
	row.PrixUnitaire = prix
	row.IsActive = true
	row.ArchivedAt = nil
	row.UpdatedAt = time.Now()
	cp := *row
	return &cp, nil
}

func (f *fakeActifRepo) GetForUpdate(_ context.Context, key repository.ActifKey) (*entity.Actif, error) {
	row, ok := f.rows[key]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeActifRepo) Update(_ context.Context, actif *entity.Actif) error {
	key := repository.ActifKey{UserID: actif.UserID, SiteID: actif.SiteID, ProductID: actif.ProductID}
	cp := *actif
	f.rows[key] = &cp
	return nil
}

func (f *fakeActifRepo) ListByUser(_ context.Context, userID string, opts repository.ActifListOptions) ([]*entity.Actif, error) {
	var out []*entity.Actif
	for _, row := range f.rows {
		if row.UserID != userID {
			continue
		}
		if !opts.IncludeArchived && !row.IsActive {
			continue
		}
		if opts.SiteID != "" && row.SiteID != opts.SiteID {
			continue
		}
		cp := *row
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeActifRepo) CountByUser(ctx context.Context, userID string, opts repository.ActifListOptions) (int, error) {
	rows, _ := f.ListByUser(ctx, userID, opts)
	return len(rows), nil
}

type fakeDepotItemRepo struct {
	rows map[repository.DepotItemKey]*entity.DepotItem
	seq  int
}

func newFakeDepotItemRepo() *fakeDepotItemRepo {
	return &fakeDepotItemRepo{rows: make(map[repository.DepotItemKey]*entity.DepotItem)}
}

func (f *fakeDepotItemRepo) Get(_ context.Context, key repository.DepotItemKey) (*entity.DepotItem, error) {
	row, ok := f.rows[key]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeDepotItemRepo) GetForUpdate(ctx context.Context, key repository.DepotItemKey) (*entity.DepotItem, error) {
	return f.Get(ctx, key)
}

func (f *fakeDepotItemRepo) UpsertIncrement(_ context.Context, key repository.DepotItemKey, delta decimal.Decimal, prix *decimal.Decimal) (*entity.DepotItem, error) {
	row, ok := f.rows[key]
	if !ok {
		f.seq++
		row = &entity.DepotItem{
			ID:        "depot-item-" + strconv.Itoa(f.seq),
			OwnerID:   key.OwnerID,
			DepotID:   key.DepotID,
			ProductID: key.ProductID,
			Quantite:  decimal.Zero,
			CreatedAt: time.Now(),
		}
		f.rows[key] = row
	}
	row.Quantite = row.Quantite.Add(delta)
	if prix != nil {
		row.PrixUnitaire = *prix
	}
	row.LastUpdate = time.Now()
	cp := *row
	return &cp, nil
}

func (f *fakeDepotItemRepo) DecrementIfAvailable(_ context.Context, key repository.DepotItemKey, qty decimal.Decimal, prix *decimal.Decimal) (*entity.DepotItem, error) {
	row, ok := f.rows[key]
	if !ok || row.Quantite.LessThan(qty) {
		return nil, domain.ErrInsufficientStock
	}
	row.Quantite = row.Quantite.Sub(qty)
	if prix != nil {
		row.PrixUnitaire = *prix
	}
	row.LastUpdate = time.Now()
	cp := *row
	return &cp, nil
}

func (f *fakeDepotItemRepo) ListByOwner(_ context.Context, ownerID string, _, _ int) ([]*entity.DepotItem, error) {
	var out []*entity.DepotItem
	for _, row := range f.rows {
		if row.OwnerID == ownerID {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeDepotItemRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	rows, _ := f.ListByOwner(ctx, ownerID, 0, 0)
	return len(rows), nil
}

type fakeMovementRepo struct {
	rows []*entity.StockMovement
	seq  int
}

// Même contrat que l'adaptateur : l'identifiant est posé s'il manque, le reste
// de la ligne est inséré tel quel.
func (f *fakeMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		f.seq++
		m.ID = "movement-" + strconv.Itoa(f.seq)
	}
	cp := *m
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeMovementRepo) ListByOperator(_ context.Context, operatorID string, opts repository.MovementListOptions) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.rows {
		if m.OperatorID != operatorID {
			continue
		}
		if opts.ProductID != "" && m.ProductID != opts.ProductID {
			continue
		}
		if opts.SiteID != "" && m.OriginSiteID != opts.SiteID && m.DestSiteID != opts.SiteID {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeMovementRepo) CountByOperator(ctx context.Context, operatorID string, opts repository.MovementListOptions) (int, error) {
	rows, _ := f.ListByOperator(ctx, operatorID, opts)
	return len(rows), nil
}

func (f *fakeMovementRepo) SumBalancesByOperator(_ context.Context, operatorID string) ([]*entity.ProductBalance, error) {
	sums := make(map[string]decimal.Decimal)
	for _, m := range f.rows {
		if m.OperatorID != operatorID {
			continue
		}
		if m.Type == entity.MovementTypeDepot {
			sums[m.ProductID] = sums[m.ProductID].Add(m.Quantite)
		} else {
			sums[m.ProductID] = sums[m.ProductID].Sub(m.Quantite)
		}
	}
	var out []*entity.ProductBalance
	for id, balance := range sums {
		out = append(out, &entity.ProductBalance{ProductID: id, Balance: balance})
	}
	return out, nil
}

type fakeProductRepo struct {
	rows map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	f := &fakeProductRepo{rows: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		f.rows[p.ID] = &cp
	}
	return f
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) List(_ context.Context, opts repository.ProductListOptions) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.rows {
		if opts.OwnerID != "" && p.OwnerID != opts.OwnerID {
			continue
		}
		if opts.Etat != "" && p.Etat != opts.Etat {
			continue
		}
		if opts.Search != "" && !strings.Contains(strings.ToLower(p.Nom), strings.ToLower(opts.Search)) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeProductRepo) Count(ctx context.Context, opts repository.ProductListOptions) (int, error) {
	rows, _ := f.List(ctx, opts)
	return len(rows), nil
}

func (f *fakeProductRepo) SetValidation(_ context.Context, id string, validated bool) error {
	if row, ok := f.rows[id]; ok {
		row.ProductValidation = validated
	}
	return nil
}

func (f *fakeProductRepo) SetStocker(_ context.Context, id string) error {
	if row, ok := f.rows[id]; ok {
		row.IsStocker = true
	}
	return nil
}

type fakeSiteRepo struct {
	rows map[string]*entity.Site
}

func newFakeSiteRepo(sites ...*entity.Site) *fakeSiteRepo {
	f := &fakeSiteRepo{rows: make(map[string]*entity.Site)}
	for _, s := range sites {
		cp := *s
		f.rows[s.ID] = &cp
	}
	return f
}

func (f *fakeSiteRepo) Create(_ context.Context, s *entity.Site) error {
	cp := *s
	f.rows[s.ID] = &cp
	return nil
}

func (f *fakeSiteRepo) GetByID(_ context.Context, id string) (*entity.Site, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeSiteRepo) Update(_ context.Context, s *entity.Site) error {
	cp := *s
	f.rows[s.ID] = &cp
	return nil
}

func (f *fakeSiteRepo) Delete(_ context.Context, id string) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeSiteRepo) ListByOwner(_ context.Context, ownerID string, _, _ int) ([]*entity.Site, error) {
	var out []*entity.Site
	for _, s := range f.rows {
		if s.OwnerID == ownerID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeSiteRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	rows, _ := f.ListByOwner(ctx, ownerID, 0, 0)
	return len(rows), nil
}

// fakeTxRunner exécute fn sur les doubles partagés et restaure l'état complet
// si fn échoue, reproduisant le rollback SQL.
type fakeTxRunner struct {
	actifs     *fakeActifRepo
	depotItems *fakeDepotItemRepo
	movements  *fakeMovementRepo
	products   *fakeProductRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(repos ledger.TxRepos) error) error {
	savedActifs := snapshotActifs(r.actifs)
	savedItems := snapshotDepotItems(r.depotItems)
	savedMovements := snapshotMovements(r.movements)
	savedProducts := snapshotProducts(r.products)

	err := fn(ledger.TxRepos{
		Actifs:     r.actifs,
		DepotItems: r.depotItems,
		Movements:  r.movements,
		Products:   r.products,
	})
	if err != nil {
		r.actifs.rows = savedActifs
		r.depotItems.rows = savedItems
		r.movements.rows = savedMovements
		r.products.rows = savedProducts
	}
	return err
}

func snapshotActifs(f *fakeActifRepo) map[repository.ActifKey]*entity.Actif {
	out := make(map[repository.ActifKey]*entity.Actif, len(f.rows))
	for k, v := range f.rows {
		cp := *v
		out[k] = &cp
	}
	return out
}

func snapshotDepotItems(f *fakeDepotItemRepo) map[repository.DepotItemKey]*entity.DepotItem {
	out := make(map[repository.DepotItemKey]*entity.DepotItem, len(f.rows))
	for k, v := range f.rows {
		cp := *v
		out[k] = &cp
	}
	return out
}

func snapshotMovements(f *fakeMovementRepo) []*entity.StockMovement {
	out := make([]*entity.StockMovement, 0, len(f.rows))
	for _, v := range f.rows {
		cp := *v
		out = append(out, &cp)
	}
	return out
}

func snapshotProducts(f *fakeProductRepo) map[string]*entity.Product {
	out := make(map[string]*entity.Product, len(f.rows))
	for k, v := range f.rows {
		cp := *v
		out[k] = &cp
	}
	return out
}

type fakeAuditRepo struct {
	entries []*entity.AuditLog
}

func (f *fakeAuditRepo) Create(_ context.Context, l *entity.AuditLog) error {
	cp := *l
	f.entries = append(f.entries, &cp)
	return nil
}

func (f *fakeAuditRepo) List(_ context.Context, _, _ int) ([]*entity.AuditLog, error) {
	return f.entries, nil
}

func (f *fakeAuditRepo) Count(_ context.Context) (int, error) {
	return len(f.entries), nil
}

type notifyCall struct {
	UserID  string
	Titre   string
	Message string
}

type fakeNotifier struct {
	userCalls  []notifyCall
	adminCalls []notifyCall
}

func (f *fakeNotifier) NotifyUser(_ context.Context, userID, titre, message string, _ map[string]any) {
	f.userCalls = append(f.userCalls, notifyCall{UserID: userID, Titre: titre, Message: message})
}

func (f *fakeNotifier) NotifyAllAdmins(titre, message string, _ map[string]any) {
	f.adminCalls = append(f.adminCalls, notifyCall{Titre: titre, Message: message})
}

func newTestRecorder(repo *fakeAuditRepo) *audit.Recorder {
	return audit.NewRecorder(repo, testLogger())
}

type fakePassifRepo struct {
	rows map[repository.PassifKey]*entity.Passif
	seq  int
}

func newFakePassifRepo() *fakePassifRepo {
	return &fakePassifRepo{rows: make(map[repository.PassifKey]*entity.Passif)}
}

func (f *fakePassifRepo) UpsertIncrement(_ context.Context, key repository.PassifKey, qty, prix decimal.Decimal, raison string) (*entity.Passif, error) {
	row, ok := f.rows[key]
	if !ok {
		f.seq++
		row = &entity.Passif{
			ID:           "passif-" + strconv.Itoa(f.seq),
			DetentaireID: key.DetentaireID,
			SiteID:       key.SiteID,
			ProductID:    key.ProductID,
			AyantDroitID: key.AyantDroitID,
			Quantite:     decimal.Zero,
			PrixUnitaire: prix,
			CreatedAt:    time.Now(),
		}
		f.rows[key] = row
	}
	row.Quantite = row.Quantite.Add(qty)
	row.Raison = raison
	row.IsActive = true
	row.ArchivedAt = nil
	row.UpdatedAt = time.Now()
	cp := *row
	return &cp, nil
}

func (f *fakePassifRepo) FindOne(_ context.Context, key repository.PassifKey) (*entity.Passif, error) {
	row, ok := f.rows[key]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakePassifRepo) ListBySite(_ context.Context, siteID string, opts repository.PassifListOptions) ([]*entity.Passif, error) {
	var out []*entity.Passif
	for _, p := range f.rows {
		if p.SiteID != siteID {
			continue
		}
		if !opts.IncludeArchived && !p.IsActive {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakePassifRepo) CountBySite(ctx context.Context, siteID string, opts repository.PassifListOptions) (int, error) {
	rows, _ := f.ListBySite(ctx, siteID, opts)
	return len(rows), nil
}

type fakeUserRepo struct {
	rows map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	f := &fakeUserRepo{rows: make(map[string]*entity.User)}
	for _, u := range users {
		cp := *u
		f.rows[u.ID] = &cp
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	f.rows[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	row, ok := f.rows[id]
	if !ok || row.DeletedAt != nil {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.rows {
		if u.Email == email && u.DeletedAt == nil {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	f.rows[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) SoftDelete(_ context.Context, id string) error {
	if row, ok := f.rows[id]; ok {
		now := time.Now()
		row.DeletedAt = &now
	}
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.rows {
		if u.DeletedAt == nil {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int, error) {
	rows, _ := f.List(ctx, 0, 0)
	return len(rows), nil
}

var (
	_ repository.ActifRepository         = (*fakeActifRepo)(nil)
	_ repository.DepotItemRepository     = (*fakeDepotItemRepo)(nil)
	_ repository.StockMovementRepository = (*fakeMovementRepo)(nil)
	_ repository.ProductRepository       = (*fakeProductRepo)(nil)
	_ repository.SiteRepository          = (*fakeSiteRepo)(nil)
	_ repository.PassifRepository        = (*fakePassifRepo)(nil)
	_ repository.UserRepository          = (*fakeUserRepo)(nil)
	_ repository.AuditLogRepository      = (*fakeAuditRepo)(nil)
	_ ledger.TxRunner                    = (*fakeTxRunner)(nil)
	_ ledger.Notifier                    = (*fakeNotifier)(nil)
)
