package authorservice

import (
	"time"

	"github.com/sushihentaime/blogfiles/internal/store"
)

type Author struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Surname     string    `json:"surname"`
	Email       string    `json:"email"`
	DateOfBirth string    `json:"dateOfBirth,omitempty"`
	Avatar      string    `json:"avatar,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateAuthorRequest struct {
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	DateOfBirth string `json:"dateOfBirth"`
	Avatar      string `json:"avatar"`
}

// UpdateAuthorRequest carries the fields to overwrite; nil fields are kept.
type UpdateAuthorRequest struct {
	Name        *string `json:"name"`
	Surname     *string `json:"surname"`
	Email       *string `json:"email"`
	DateOfBirth *string `json:"dateOfBirth"`
	Avatar      *string `json:"avatar"`
}

type AuthorModel struct {
	authors *store.Collection[Author]
}

type AuthorService struct {
	m     *AuthorModel
	now   func() time.Time
	newID func() string
}
