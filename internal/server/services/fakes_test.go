package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/sellegate/internal/common"
	"github.com/dmitrijs2005/sellegate/internal/dbx"
	"github.com/dmitrijs2005/sellegate/internal/server/models"
	assessmentsrepo "github.com/dmitrijs2005/sellegate/internal/server/repositories/assessments"
	itemsrepo "github.com/dmitrijs2005/sellegate/internal/server/repositories/items"
	paymentsrepo "github.com/dmitrijs2005/sellegate/internal/server/repositories/payments"
	refreshtokensrepo "github.com/dmitrijs2005/sellegate/internal/server/repositories/refreshtokens"
	usersrepo "github.com/dmitrijs2005/sellegate/internal/server/repositories/users"
)

// stubTx replaces the transaction runner so service flows run against fakes
// without a real database. The fakes guard their own state with mutexes, so
// atomicity-sensitive tests still exercise the guarded updates.
func stubTx(t *testing.T) {
	t.Helper()
	orig := withTx
	withTx = func(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx dbx.DBTX) error) error {
		return fn(ctx, nil)
	}
	t.Cleanup(func() { withTx = orig })
}

// --- users ---

type fakeUsersRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return nil, common.ErrorEmailTaken
		}
		if existing.Username == u.Username {
			return nil, common.ErrorUsernameTaken
		}
	}
	u.CreatedAt = time.Now()
	cp := *u
	f.users[u.ID] = &cp
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return common.ErrorNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

// --- items ---

type fakeItemsRepo struct {
	mu    sync.Mutex
	items map[string]*models.Item
}

func newFakeItemsRepo() *fakeItemsRepo {
	return &fakeItemsRepo{items: map[string]*models.Item{}}
}

func (f *fakeItemsRepo) put(item *models.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *item
	f.items[item.ID] = &cp
}

func (f *fakeItemsRepo) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	item.CreatedAt = time.Now()
	item.IsVisible = true
	f.put(item)
	return item, nil
}

func (f *fakeItemsRepo) GetByID(ctx context.Context, id string) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *item
	return &cp, nil
}

func (f *fakeItemsRepo) Update(ctx context.Context, item *models.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.items[item.ID]
	if !ok {
		return common.ErrorNotFound
	}
	stored.Name = item.Name
	stored.Description = item.Description
	stored.Price = item.Price
	stored.ImgURL = item.ImgURL
	stored.IsVisible = item.IsVisible
	return nil
}

func (f *fakeItemsRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeItemsRepo) all() []*models.Item {
	result := make([]*models.Item, 0, len(f.items))
	for _, item := range f.items {
		cp := *item
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (f *fakeItemsRepo) ListAll(ctx context.Context) ([]*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.all(), nil
}

func (f *fakeItemsRepo) ListExcludingSeller(ctx context.Context, sellerID string) ([]*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Item
	for _, item := range f.all() {
		if item.SellerID != sellerID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (f *fakeItemsRepo) ListBySeller(ctx context.Context, sellerID string) ([]*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Item
	for _, item := range f.all() {
		if item.SellerID == sellerID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (f *fakeItemsRepo) ListSoldBySeller(ctx context.Context, sellerID string) ([]*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Item
	for _, item := range f.all() {
		if item.SellerID == sellerID && item.IsSold {
			result = append(result, item)
		}
	}
	return result, nil
}

func (f *fakeItemsRepo) ListByDelegationState(ctx context.Context, state string) ([]*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Item
	for _, item := range f.all() {
		if item.DelegationState == state {
			result = append(result, item)
		}
	}
	return result, nil
}

func (f *fakeItemsRepo) Search(ctx context.Context, query string) ([]*models.Item, error) {
	return f.ListAll(ctx)
}

func (f *fakeItemsRepo) MarkSold(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return common.ErrorNotFound
	}
	if item.IsSold {
		return common.ErrorItemAlreadySold
	}
	item.IsSold = true
	item.IsVisible = false
	return nil
}

func (f *fakeItemsRepo) SetDelegation(ctx context.Context, id string, state string, evaluatorID *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return common.ErrorNotFound
	}
	item.DelegationState = state
	item.EvaluatorID = evaluatorID
	return nil
}

// --- assessments ---

type fakeAssessmentsRepo struct {
	mu          sync.Mutex
	assessments map[string]*models.Assessment
}

func newFakeAssessmentsRepo() *fakeAssessmentsRepo {
	return &fakeAssessmentsRepo{assessments: map[string]*models.Assessment{}}
}

func (f *fakeAssessmentsRepo) Create(ctx context.Context, a *models.Assessment) (*models.Assessment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.CreatedAt = time.Now()
	cp := *a
	f.assessments[a.ID] = &cp
	return a, nil
}

func (f *fakeAssessmentsRepo) GetByID(ctx context.Context, id string) (*models.Assessment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.assessments[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAssessmentsRepo) ListByEvaluator(ctx context.Context, evaluatorID string) ([]*models.Assessment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Assessment
	for _, a := range f.assessments {
		if a.EvaluatorID == evaluatorID {
			cp := *a
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (f *fakeAssessmentsRepo) ListByItem(ctx context.Context, itemID string) ([]*models.Assessment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Assessment
	for _, a := range f.assessments {
		if a.ItemID == itemID {
			cp := *a
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (f *fakeAssessmentsRepo) Resolve(ctx context.Context, id string, state string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.assessments[id]
	if !ok {
		return common.ErrorNotFound
	}
	if a.State != models.AssessmentPending {
		return common.ErrorAssessmentResolved
	}
	a.State = state
	return nil
}

// --- payments ---

type fakePaymentsRepo struct {
	mu       sync.Mutex
	payments []*models.Payment
}

func newFakePaymentsRepo() *fakePaymentsRepo {
	return &fakePaymentsRepo{}
}

func (f *fakePaymentsRepo) Create(ctx context.Context, p *models.Payment) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.CreatedAt = time.Now()
	cp := *p
	f.payments = append(f.payments, &cp)
	return p, nil
}

func (f *fakePaymentsRepo) ListByUser(ctx context.Context, userID string) ([]*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Payment
	for _, p := range f.payments {
		if p.UserID == userID {
			cp := *p
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (f *fakePaymentsRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payments)
}

// --- refresh tokens ---

type fakeRefreshRepo struct {
	mu     sync.Mutex
	tokens map[string]*models.RefreshToken
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{tokens: map[string]*models.RefreshToken{}}
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = &models.RefreshToken{UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
	return nil
}

// --- manager ---

type fakeRepoManager struct {
	users         *fakeUsersRepo
	items         *fakeItemsRepo
	assessments   *fakeAssessmentsRepo
	payments      *fakePaymentsRepo
	refreshTokens *fakeRefreshRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:         newFakeUsersRepo(),
		items:         newFakeItemsRepo(),
		assessments:   newFakeAssessmentsRepo(),
		payments:      newFakePaymentsRepo(),
		refreshTokens: newFakeRefreshRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return m.users }

func (m *fakeRepoManager) Items(db dbx.DBTX) itemsrepo.Repository { return m.items }

func (m *fakeRepoManager) Assessments(db dbx.DBTX) assessmentsrepo.Repository {
	return m.assessments
}

func (m *fakeRepoManager) Payments(db dbx.DBTX) paymentsrepo.Repository { return m.payments }

func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository {
	return m.refreshTokens
}
