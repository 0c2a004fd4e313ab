package blogservice

import (
	"context"

	"github.com/sushihentaime/blogfiles/internal/common"
	"github.com/sushihentaime/blogfiles/internal/store"
)

const resourceName = "blog post"

func newBlogModel(s store.Store) *BlogModel {
	return &BlogModel{posts: store.NewCollection[BlogPost](s, store.KindBlogPosts)}
}

func notFound(id string) error {
	return common.NotFoundError{Resource: resourceName, ID: id}
}

func indexOf(posts []BlogPost, id string) int {
	for i := range posts {
		if posts[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *BlogModel) insert(ctx context.Context, post *BlogPost) error {
	return m.posts.Mutate(ctx, func(posts []BlogPost) ([]BlogPost, error) {
		return append(posts, *post), nil
	})
}

func (m *BlogModel) getBlogPosts(ctx context.Context) ([]BlogPost, error) {
	posts, err := m.posts.All(ctx)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		if posts[i].Comments == nil {
			posts[i].Comments = []Comment{}
		}
	}

	return posts, nil
}

func (m *BlogModel) getBlogPostByID(ctx context.Context, id string) (*BlogPost, error) {
	posts, err := m.getBlogPosts(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(posts, id)
	if i == -1 {
		return nil, notFound(id)
	}

	return &posts[i], nil
}

// updateBlogPost applies fn to the post with the given id and persists the
// collection. Nothing is written when the post is missing or fn fails.
func (m *BlogModel) updateBlogPost(ctx context.Context, id string, fn func(post *BlogPost) error) (*BlogPost, error) {
	var updated BlogPost

	err := m.posts.Mutate(ctx, func(posts []BlogPost) ([]BlogPost, error) {
		i := indexOf(posts, id)
		if i == -1 {
			return nil, notFound(id)
		}

		if posts[i].Comments == nil {
			posts[i].Comments = []Comment{}
		}

		if err := fn(&posts[i]); err != nil {
			return nil, err
		}

		updated = posts[i]
		return posts, nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// deleteBlogPost removes the post and, with it, its comments.
func (m *BlogModel) deleteBlogPost(ctx context.Context, id string) error {
	return m.posts.Mutate(ctx, func(posts []BlogPost) ([]BlogPost, error) {
		remaining := make([]BlogPost, 0, len(posts))
		for _, p := range posts {
			if p.ID != id {
				remaining = append(remaining, p)
			}
		}

		if len(remaining) == len(posts) {
			return nil, notFound(id)
		}

		return remaining, nil
	})
}
