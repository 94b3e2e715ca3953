package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/sellegate/internal/server/services"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	user, pair, err := s.users.Register(ctx, req.Username, req.Email, req.Password, req.IsEvaluator)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.logger.Info(ctx, "Registered", "username", req.Username)
	s.writeJSON(w, http.StatusCreated, authResponse{
		User:   toUserResponse(user),
		Tokens: tokenPairResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken},
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	user, pair, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, authResponse{
		User:   toUserResponse(user),
		Tokens: tokenPairResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken},
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req refreshRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	pair, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ident := identityFromContext(ctx)

	user, err := s.users.GetUser(ctx, ident.UserID)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ident := identityFromContext(ctx)

	var req profileUpdateRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	user, err := s.users.UpdateProfile(ctx, ident.UserID, services.ProfileUpdate{
		Username: req.Username,
		Email:    req.Email,
		Bio:      req.Bio,
	})
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toUserResponse(user))
}
