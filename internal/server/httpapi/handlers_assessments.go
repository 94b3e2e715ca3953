package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/sellegate/internal/server/services"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleSubmitAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ident := identityFromContext(ctx)

	var req assessmentCreateRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	assessment, err := s.assessments.Submit(ctx, ident, services.AssessmentCreate{
		ItemID:  req.ItemID,
		Name:    req.Name,
		Message: req.Message,
		Price:   req.Price,
	})
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.logger.Info(ctx, "Assessment submitted", "id", assessment.ID, "item", req.ItemID)
	s.writeJSON(w, http.StatusCreated, toAssessmentResponse(assessment))
}

func (s *Server) handleMyAssessments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ident := identityFromContext(ctx)

	list, err := s.assessments.ListMine(ctx, ident)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toAssessmentResponses(list))
}

func (s *Server) handleItemAssessments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ident := identityFromContext(ctx)

	list, err := s.assessments.ListForItem(ctx, ident.UserID, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toAssessmentResponses(list))
}

func (s *Server) handleAcceptAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ident := identityFromContext(ctx)

	if err := s.assessments.Accept(ctx, ident.UserID, chi.URLParam(r, "id")); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

func (s *Server) handleRejectAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ident := identityFromContext(ctx)

	if err := s.assessments.Reject(ctx, ident.UserID, chi.URLParam(r, "id")); err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}
