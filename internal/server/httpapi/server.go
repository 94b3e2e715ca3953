// Package httpapi exposes the marketplace over HTTP: a chi router in front of
// the identity, item, assessment, and purchase services, with bearer-token
// authentication and a uniform JSON error envelope.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/sellegate/internal/logging"
	"github.com/dmitrijs2005/sellegate/internal/server/auth"
	"github.com/dmitrijs2005/sellegate/internal/server/models"
	"github.com/dmitrijs2005/sellegate/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// UserService is the identity surface the HTTP layer depends on.
type UserService interface {
	Register(ctx context.Context, username, email, password string, isEvaluator bool) (*models.User, *services.TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, upd services.ProfileUpdate) (*models.User, error)
}

// ItemService is the item ledger surface the HTTP layer depends on.
type ItemService interface {
	Create(ctx context.Context, sellerID string, in services.ItemCreate) (*models.Item, error)
	Get(ctx context.Context, itemID string) (*models.Item, error)
	Update(ctx context.Context, itemID, callerID string, upd models.ItemUpdate) (*models.Item, error)
	Delete(ctx context.Context, itemID, callerID string) error
	ListAll(ctx context.Context) ([]*models.Item, error)
	Explore(ctx context.Context, callerID string) ([]*models.Item, error)
	Mine(ctx context.Context, callerID string) ([]*models.Item, error)
	MineSold(ctx context.Context, callerID string) ([]*models.Item, error)
	Search(ctx context.Context, query string) ([]*models.Item, error)
	Delegate(ctx context.Context, itemID, callerID string) (*models.Item, error)
	ListByDelegationState(ctx context.Context, ident *auth.Identity, state string) ([]*models.Item, error)
}

// AssessmentService is the assessment workflow surface the HTTP layer depends on.
type AssessmentService interface {
	Submit(ctx context.Context, ident *auth.Identity, in services.AssessmentCreate) (*models.Assessment, error)
	ListMine(ctx context.Context, ident *auth.Identity) ([]*models.Assessment, error)
	ListForItem(ctx context.Context, ownerID, itemID string) ([]*models.Assessment, error)
	Accept(ctx context.Context, ownerID, assessmentID string) error
	Reject(ctx context.Context, ownerID, assessmentID string) error
}

// PurchaseService is the purchase engine surface the HTTP layer depends on.
type PurchaseService interface {
	Buy(ctx context.Context, buyerID, itemID string) (*models.Payment, error)
	Payments(ctx context.Context, userID string) ([]*models.Payment, error)
}

type Server struct {
	address     string
	logger      logging.Logger
	users       UserService
	items       ItemService
	assessments AssessmentService
	purchases   PurchaseService
	jwtSecret   []byte
	validate    *validator.Validate
}

func NewServer(address string, l logging.Logger, us UserService, is ItemService,
	as AssessmentService, ps PurchaseService, secretKey string) *Server {
	return &Server{
		address:     address,
		logger:      l.With("module", "http_server"),
		users:       us,
		items:       is,
		assessments: as,
		purchases:   ps,
		jwtSecret:   []byte(secretKey),
		validate:    validator.New(),
	}
}

// Router assembles all routes. Item reads and search are public; everything
// else requires a bearer token.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/refresh", s.handleRefresh)

	r.Get("/items", s.handleListItems)
	r.Get("/items/search", s.handleSearchItems)
	r.Get("/items/{id}", s.handleGetItem)

	r.Group(func(r chi.Router) {
		r.Use(s.withAuth)

		r.Get("/auth/me", s.handleMe)
		r.Patch("/auth/me", s.handleUpdateProfile)

		r.Post("/items", s.handleCreateItem)
		r.Get("/items/explore", s.handleExploreItems)
		r.Get("/items/mine", s.handleMyItems)
		r.Get("/items/mine/sold", s.handleMySoldItems)
		r.Patch("/items/{id}", s.handleUpdateItem)
		r.Delete("/items/{id}", s.handleDeleteItem)
		r.Post("/items/{id}/delegate", s.handleDelegateItem)
		r.Post("/items/{id}/buy", s.handleBuyItem)
		r.Get("/items/{id}/assessments", s.handleItemAssessments)

		r.Get("/evaluation/items", s.handleItemsToEvaluate)
		r.Post("/evaluation/assessments", s.handleSubmitAssessment)
		r.Get("/evaluation/assessments/mine", s.handleMyAssessments)
		r.Post("/evaluation/assessments/{id}/accept", s.handleAcceptAssessment)
		r.Post("/evaluation/assessments/{id}/reject", s.handleRejectAssessment)

		r.Get("/payments", s.handleMyPayments)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{Addr: s.address, Handler: s.Router()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
