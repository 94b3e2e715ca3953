package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/sellegate/internal/server/models"
	"github.com/dmitrijs2005/sellegate/internal/server/services"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ident := identityFromContext(ctx)

	var req itemCreateRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	item, err := s.items.Create(ctx, ident.UserID, services.ItemCreate{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		ImgURL:          req.ImgURL,
		DelegationState: req.DelegationState,
	})
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.logger.Info(ctx, "Item created", "id", item.ID)
	s.writeJSON(w, http.StatusCreated, toItemResponse(item))
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	item, err := s.items.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toItemResponse(item))
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ident := identityFromContext(ctx)

	var req itemUpdateRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	item, err := s.items.Update(ctx, chi.URLParam(r, "id"), ident.UserID, models.ItemUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImgURL:      req.ImgURL,
		IsVisible:   req.IsVisible,
	})
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toItemResponse(item))
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ident := identityFromContext(ctx)

	if err := s.items.Delete(ctx, chi.URLParam(r, "id"), ident.UserID); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := s.items.ListAll(ctx)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toItemResponses(items))
}

func (s *Server) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := s.items.Search(ctx, r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toItemResponses(items))
}

func (s *Server) handleExploreItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ident := identityFromContext(ctx)

	items, err := s.items.Explore(ctx, ident.UserID)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toItemResponses(items))
}

func (s *Server) handleMyItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ident := identityFromContext(ctx)

	items, err := s.items.Mine(ctx, ident.UserID)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toItemResponses(items))
}

func (s *Server) handleMySoldItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ident := identityFromContext(ctx)

	items, err := s.items.MineSold(ctx, ident.UserID)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toItemResponses(items))
}

func (s *Server) handleDelegateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ident := identityFromContext(ctx)

	item, err := s.items.Delegate(ctx, chi.URLParam(r, "id"), ident.UserID)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toItemResponse(item))
}

func (s *Server) handleItemsToEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ident := identityFromContext(ctx)

	state := r.URL.Query().Get("state")
	if state == "" {
		state = models.DelegationPending
	}

	items, err := s.items.ListByDelegationState(ctx, ident, state)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toItemResponses(items))
}
