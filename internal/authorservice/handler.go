package authorservice

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sushihentaime/blogfiles/internal/common"
	"github.com/sushihentaime/blogfiles/internal/store"
)

func NewAuthorService(s store.Store) *AuthorService {
	return &AuthorService{
		m:     newAuthorModel(s),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

func (s *AuthorService) CreateAuthor(ctx context.Context, req *CreateAuthorRequest) (*Author, error) {
	if err := validateCreateAuthor(req); err != nil {
		return nil, err
	}

	now := s.now()
	author := &Author{
		ID:          s.newID(),
		Name:        req.Name,
		Surname:     req.Surname,
		Email:       strings.ToLower(req.Email),
		DateOfBirth: req.DateOfBirth,
		Avatar:      req.Avatar,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.m.insert(ctx, author); err != nil {
		return nil, err
	}

	return author, nil
}

func (s *AuthorService) GetAuthors(ctx context.Context) ([]Author, error) {
	return s.m.getAuthors(ctx)
}

func (s *AuthorService) GetAuthorByID(ctx context.Context, id string) (*Author, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	return s.m.getAuthorByID(ctx, id)
}

// UpdateAuthor overwrites the supplied fields and refreshes updatedAt.
func (s *AuthorService) UpdateAuthor(ctx context.Context, id string, req *UpdateAuthorRequest) (*Author, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	if err := validateUpdateAuthor(req); err != nil {
		return nil, err
	}

	return s.m.updateAuthor(ctx, id, func(author *Author) {
		if req.Name != nil {
			author.Name = *req.Name
		}
		if req.Surname != nil {
			author.Surname = *req.Surname
		}
		if req.Email != nil {
			author.Email = strings.ToLower(*req.Email)
		}
		if req.DateOfBirth != nil {
			author.DateOfBirth = *req.DateOfBirth
		}
		if req.Avatar != nil {
			author.Avatar = *req.Avatar
		}
		author.UpdatedAt = s.now()
	})
}

func (s *AuthorService) DeleteAuthor(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	return s.m.deleteAuthor(ctx, id)
}

// EmailFor resolves the author reference stored on a blog post. The reference
// is tried as an author id first, then as "name surname" or a bare name, ignoring
// case. common.ErrRecordNotFound is returned when nobody matches.
func (s *AuthorService) EmailFor(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", common.NotFoundError{Resource: "author", ID: ref}
	}

	authors, err := s.m.getAuthors(ctx)
	if err != nil {
		return "", err
	}

	if i := indexOf(authors, ref); i != -1 {
		return authors[i].Email, nil
	}

	for _, a := range authors {
		full := strings.TrimSpace(a.Name + " " + a.Surname)
		if strings.EqualFold(full, ref) || strings.EqualFold(a.Name, ref) {
			return a.Email, nil
		}
	}

	return "", common.NotFoundError{Resource: "author", ID: ref}
}
