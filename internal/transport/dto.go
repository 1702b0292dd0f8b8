package transport

import (
	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/models"
)

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ResetRequest struct {
	Email string `json:"email"`
}

type ResetConsumeRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type AddToCartRequest struct {
	ItemID uuid.UUID `json:"item_id"`
}

type ItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
	LargeImage  string `json:"large_image"`
}

type ItemPatchRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
}

type PermissionsRequest struct {
	Permissions []domain.Permission `json:"permissions"`
}

type AccountResponse struct {
	ID          uuid.UUID           `json:"id"`
	Email       string              `json:"email"`
	Name        string              `json:"name"`
	Permissions []domain.Permission `json:"permissions"`
}

func NewAccountResponse(a *models.Account) *AccountResponse {
	if a == nil {
		return nil
	}
	return &AccountResponse{
		ID:          a.ID,
		Email:       a.Email,
		Name:        a.Name,
		Permissions: []domain.Permission(a.Permissions),
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}
