package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/sellegate/internal/common"
	"github.com/dmitrijs2005/sellegate/internal/server/models"
)

type registerRequest struct {
	Username    string `json:"username" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	IsEvaluator bool   `json:"isEvaluator"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type profileUpdateRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Bio      *string `json:"bio"`
}

type itemCreateRequest struct {
	Name            string  `json:"name" validate:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	ImgURL          *string `json:"imgUrl"`
	DelegationState string  `json:"delegationState" validate:"omitempty,oneof=Independent Pending Approved Rejected"`
}

type itemUpdateRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	ImgURL      *string  `json:"imgUrl"`
	IsVisible   *bool    `json:"isVisible"`
}

type assessmentCreateRequest struct {
	ItemID  string  `json:"itemId" validate:"required"`
	Name    string  `json:"name" validate:"required"`
	Message string  `json:"message"`
	Price   float64 `json:"price" validate:"required,gt=0"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type userResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Bio         string `json:"bio"`
	IsEvaluator bool   `json:"isEvaluator"`
	CreatedAt   string `json:"createdAt"`
}

type authResponse struct {
	User   userResponse      `json:"user"`
	Tokens tokenPairResponse `json:"tokens"`
}

type itemResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	ImgURL          *string `json:"imgUrl"`
	SellerID        string  `json:"sellerId"`
	SellerName      string  `json:"sellerName"`
	CreatedAt       string  `json:"createdAt"`
	IsSold          bool    `json:"isSold"`
	IsVisible       bool    `json:"isVisible"`
	DelegationState string  `json:"delegationState"`
	EvaluatorID     *string `json:"evaluatorId"`
}

type assessmentResponse struct {
	ID          string  `json:"id"`
	ItemID      string  `json:"itemId"`
	EvaluatorID string  `json:"evaluatorId"`
	Name        string  `json:"name"`
	Message     string  `json:"message"`
	Price       float64 `json:"price"`
	State       string  `json:"state"`
	CreatedAt   string  `json:"createdAt"`
}

type paymentResponse struct {
	ID         string  `json:"id"`
	ItemID     string  `json:"itemId"`
	UserID     string  `json:"userId"`
	ItemName   string  `json:"itemName"`
	TotalPrice float64 `json:"totalPrice"`
	CreatedAt  string  `json:"createdAt"`
}

// timestamps are rendered date-only everywhere
func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Bio:         u.Bio,
		IsEvaluator: u.IsEvaluator,
		CreatedAt:   formatDate(u.CreatedAt),
	}
}

func toItemResponse(item *models.Item) itemResponse {
	return itemResponse{
		ID:              item.ID,
		Name:            item.Name,
		Description:     item.Description,
		Price:           item.Price,
		ImgURL:          item.ImgURL,
		SellerID:        item.SellerID,
		SellerName:      item.SellerName,
		CreatedAt:       formatDate(item.CreatedAt),
		IsSold:          item.IsSold,
		IsVisible:       item.IsVisible,
		DelegationState: item.DelegationState,
		EvaluatorID:     item.EvaluatorID,
	}
}

func toItemResponses(items []*models.Item) []itemResponse {
	result := make([]itemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, toItemResponse(item))
	}
	return result
}

func toAssessmentResponse(a *models.Assessment) assessmentResponse {
	return assessmentResponse{
		ID:          a.ID,
		ItemID:      a.ItemID,
		EvaluatorID: a.EvaluatorID,
		Name:        a.Name,
		Message:     a.Message,
		Price:       a.Price,
		State:       a.State,
		CreatedAt:   formatDate(a.CreatedAt),
	}
}

func toAssessmentResponses(list []*models.Assessment) []assessmentResponse {
	result := make([]assessmentResponse, 0, len(list))
	for _, a := range list {
		result = append(result, toAssessmentResponse(a))
	}
	return result
}

func toPaymentResponse(p *models.Payment) paymentResponse {
	return paymentResponse{
		ID:         p.ID,
		ItemID:     p.ItemID,
		UserID:     p.UserID,
		ItemName:   p.ItemName,
		TotalPrice: p.TotalPrice,
		CreatedAt:  formatDate(p.CreatedAt),
	}
}

func toPaymentResponses(list []*models.Payment) []paymentResponse {
	result := make([]paymentResponse, 0, len(list))
	for _, p := range list {
		result = append(result, toPaymentResponse(p))
	}
	return result
}

// decode unmarshals and validates a request body. Failures surface as
// validation errors in the 400 envelope.
func (s *Server) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", common.ErrorValidation)
	}
	if err := s.validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}
