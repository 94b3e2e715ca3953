package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleBuyItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ident := identityFromContext(ctx)

	payment, err := s.purchases.Buy(ctx, ident.UserID, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.logger.Info(ctx, "Item sold", "item", payment.ItemID, "payment", payment.ID)
	s.writeJSON(w, http.StatusCreated, toPaymentResponse(payment))
}

func (s *Server) handleMyPayments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ident := identityFromContext(ctx)

	payments, err := s.purchases.Payments(ctx, ident.UserID)
	if err != nil {
		s.writeError(ctx, w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toPaymentResponses(payments))
}
