package httpapi

import (
	"context"

	"github.com/dmitrijs2005/sellegate/internal/logging"
	"github.com/dmitrijs2005/sellegate/internal/server/auth"
	"github.com/dmitrijs2005/sellegate/internal/server/models"
	"github.com/dmitrijs2005/sellegate/internal/server/services"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// ---- fakes ----

type fakeUsers struct {
	user    *models.User
	pair    *services.TokenPair
	err     error
	lastUpd services.ProfileUpdate
}

func (f *fakeUsers) Register(ctx context.Context, username, email, password string, isEvaluator bool) (*models.User, *services.TokenPair, error) {
	return f.user, f.pair, f.err
}
func (f *fakeUsers) Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error) {
	return f.user, f.pair, f.err
}
func (f *fakeUsers) RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	return f.pair, f.err
}
func (f *fakeUsers) GetUser(ctx context.Context, id string) (*models.User, error) {
	return f.user, f.err
}
func (f *fakeUsers) UpdateProfile(ctx context.Context, userID string, upd services.ProfileUpdate) (*models.User, error) {
	f.lastUpd = upd
	return f.user, f.err
}

type fakeItems struct {
	item       *models.Item
	list       []*models.Item
	err        error
	lastCaller string
	lastCreate services.ItemCreate
	lastUpd    models.ItemUpdate
	lastQuery  string
	lastState  string
}

func (f *fakeItems) Create(ctx context.Context, sellerID string, in services.ItemCreate) (*models.Item, error) {
	f.lastCaller, f.lastCreate = sellerID, in
	return f.item, f.err
}
func (f *fakeItems) Get(ctx context.Context, itemID string) (*models.Item, error) {
	return f.item, f.err
}
func (f *fakeItems) Update(ctx context.Context, itemID, callerID string, upd models.ItemUpdate) (*models.Item, error) {
	f.lastCaller, f.lastUpd = callerID, upd
	return f.item, f.err
}
func (f *fakeItems) Delete(ctx context.Context, itemID, callerID string) error {
	f.lastCaller = callerID
	return f.err
}
func (f *fakeItems) ListAll(ctx context.Context) ([]*models.Item, error) { return f.list, f.err }
func (f *fakeItems) Explore(ctx context.Context, callerID string) ([]*models.Item, error) {
	f.lastCaller = callerID
	return f.list, f.err
}
func (f *fakeItems) Mine(ctx context.Context, callerID string) ([]*models.Item, error) {
	f.lastCaller = callerID
	return f.list, f.err
}
func (f *fakeItems) MineSold(ctx context.Context, callerID string) ([]*models.Item, error) {
	f.lastCaller = callerID
	return f.list, f.err
}
func (f *fakeItems) Search(ctx context.Context, query string) ([]*models.Item, error) {
	f.lastQuery = query
	return f.list, f.err
}
func (f *fakeItems) Delegate(ctx context.Context, itemID, callerID string) (*models.Item, error) {
	f.lastCaller = callerID
	return f.item, f.err
}
func (f *fakeItems) ListByDelegationState(ctx context.Context, ident *auth.Identity, state string) ([]*models.Item, error) {
	f.lastState = state
	if !ident.IsEvaluator {
		return nil, f.err
	}
	return f.list, f.err
}

type fakeAssessments struct {
	assessment *models.Assessment
	list       []*models.Assessment
	err        error
	lastOwner  string
	lastID     string
}

func (f *fakeAssessments) Submit(ctx context.Context, ident *auth.Identity, in services.AssessmentCreate) (*models.Assessment, error) {
	return f.assessment, f.err
}
func (f *fakeAssessments) ListMine(ctx context.Context, ident *auth.Identity) ([]*models.Assessment, error) {
	return f.list, f.err
}
func (f *fakeAssessments) ListForItem(ctx context.Context, ownerID, itemID string) ([]*models.Assessment, error) {
	f.lastOwner, f.lastID = ownerID, itemID
	return f.list, f.err
}
func (f *fakeAssessments) Accept(ctx context.Context, ownerID, assessmentID string) error {
	f.lastOwner, f.lastID = ownerID, assessmentID
	return f.err
}
func (f *fakeAssessments) Reject(ctx context.Context, ownerID, assessmentID string) error {
	f.lastOwner, f.lastID = ownerID, assessmentID
	return f.err
}

type fakePurchases struct {
	payment   *models.Payment
	list      []*models.Payment
	err       error
	lastBuyer string
	lastItem  string
}

func (f *fakePurchases) Buy(ctx context.Context, buyerID, itemID string) (*models.Payment, error) {
	f.lastBuyer, f.lastItem = buyerID, itemID
	return f.payment, f.err
}
func (f *fakePurchases) Payments(ctx context.Context, userID string) ([]*models.Payment, error) {
	f.lastBuyer = userID
	return f.list, f.err
}
