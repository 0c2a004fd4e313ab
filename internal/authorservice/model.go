package authorservice

import (
	"context"

	"github.com/sushihentaime/blogfiles/internal/common"
	"github.com/sushihentaime/blogfiles/internal/store"
)

func newAuthorModel(s store.Store) *AuthorModel {
	return &AuthorModel{authors: store.NewCollection[Author](s, store.KindAuthors)}
}

func notFound(id string) error {
	return common.NotFoundError{Resource: "author", ID: id}
}

func indexOf(authors []Author, id string) int {
	for i := range authors {
		if authors[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *AuthorModel) insert(ctx context.Context, author *Author) error {
	return m.authors.Mutate(ctx, func(authors []Author) ([]Author, error) {
		return append(authors, *author), nil
	})
}

func (m *AuthorModel) getAuthors(ctx context.Context) ([]Author, error) {
	return m.authors.All(ctx)
}

func (m *AuthorModel) getAuthorByID(ctx context.Context, id string) (*Author, error) {
	authors, err := m.authors.All(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(authors, id)
	if i == -1 {
		return nil, notFound(id)
	}

	return &authors[i], nil
}

func (m *AuthorModel) updateAuthor(ctx context.Context, id string, fn func(author *Author)) (*Author, error) {
	var updated Author

	err := m.authors.Mutate(ctx, func(authors []Author) ([]Author, error) {
		i := indexOf(authors, id)
		if i == -1 {
			return nil, notFound(id)
		}

		fn(&authors[i])
		updated = authors[i]
		return authors, nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (m *AuthorModel) deleteAuthor(ctx context.Context, id string) error {
	return m.authors.Mutate(ctx, func(authors []Author) ([]Author, error) {
		remaining := make([]Author, 0, len(authors))
		for _, a := range authors {
			if a.ID != id {
				remaining = append(remaining, a)
			}
		}

		if len(remaining) == len(authors) {
			return nil, notFound(id)
		}

		return remaining, nil
	})
}
