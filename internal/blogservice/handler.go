package blogservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sushihentaime/blogfiles/internal/common"
	"github.com/sushihentaime/blogfiles/internal/mediaservice"
	"github.com/sushihentaime/blogfiles/internal/store"
)

// NewBlogService wires the blog service. uploader stores cover images; mb may be
// nil, in which case no events are published.
func NewBlogService(s store.Store, uploader mediaservice.Uploader, mb common.MessageProducer, logger *slog.Logger) *BlogService {
	if logger == nil {
		logger = slog.Default()
	}

	return &BlogService{
		m:        newBlogModel(s),
		uploader: uploader,
		mb:       mb,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// CreateBlogPost validates the request and stores a new post with a fresh id,
// matching timestamps and no comments.
func (s *BlogService) CreateBlogPost(ctx context.Context, req *CreateBlogPostRequest) (*BlogPost, error) {
	if err := validateCreateBlogPost(req); err != nil {
		return nil, err
	}

	now := s.now()
	post := &BlogPost{
		ID:        s.newID(),
		Category:  req.Category,
		Title:     req.Title,
		Cover:     req.Cover,
		ReadTime:  req.ReadTime,
		Author:    req.Author,
		Content:   sanitizeContent(req.Content),
		CreatedAt: now,
		UpdatedAt: now,
		Comments:  []Comment{},
	}

	if err := s.m.insert(ctx, post); err != nil {
		return nil, err
	}

	s.publish(ctx, common.PostCreatedKey, PostCreatedEvent{
		PostID:    post.ID,
		Title:     post.Title,
		Category:  post.Category,
		Author:    post.Author,
		CreatedAt: post.CreatedAt,
	})

	return post, nil
}

// GetBlogPosts returns the whole collection as stored.
func (s *BlogService) GetBlogPosts(ctx context.Context) ([]BlogPost, error) {
	return s.m.getBlogPosts(ctx)
}

// GetBlogPostByID returns a blog post by its ID.
func (s *BlogService) GetBlogPostByID(ctx context.Context, id string) (*BlogPost, error) {
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	return s.m.getBlogPostByID(ctx, id)
}

// UpdateBlogPost overwrites the supplied fields and refreshes updatedAt. The id,
// createdAt and comments of the post are never touched.
func (s *BlogService) UpdateBlogPost(ctx context.Context, id string, req *UpdateBlogPostRequest) (*BlogPost, error) {
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	if err := validateUpdateBlogPost(req); err != nil {
		return nil, err
	}

	return s.m.updateBlogPost(ctx, id, func(post *BlogPost) error {
		if req.Category != nil {
			post.Category = *req.Category
		}
		if req.Title != nil {
			post.Title = *req.Title
		}
		if req.Cover != nil {
			post.Cover = *req.Cover
		}
		if req.ReadTime != nil {
			rt := *req.ReadTime
			post.ReadTime = &rt
		}
		if req.Author != nil {
			post.Author = *req.Author
		}
		if req.Content != nil {
			post.Content = sanitizeContent(*req.Content)
		}
		post.UpdatedAt = s.now()
		return nil
	})
}

// DeleteBlogPost removes a blog post together with its comments.
func (s *BlogService) DeleteBlogPost(ctx context.Context, id string) error {
	if err := validateID(id, "id"); err != nil {
		return err
	}

	return s.m.deleteBlogPost(ctx, id)
}

// SetCover stores the uploaded image as <id><ext> and points the post's cover at it.
func (s *BlogService) SetCover(ctx context.Context, id string, upload *CoverUpload) (*BlogPost, error) {
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	return s.m.updateBlogPost(ctx, id, func(post *BlogPost) error {
		name, body, contentType, err := mediaservice.CoverFilename(post.ID, upload.Filename, upload.Body)
		if err != nil {
			return err
		}

		if upload.ContentType != "" && upload.ContentType != "application/octet-stream" {
			contentType = upload.ContentType
		}

		url, err := s.uploader.Upload(ctx, name, contentType, body)
		if err != nil {
			return err
		}

		post.Cover = url
		post.UpdatedAt = s.now()
		return nil
	})
}

// AddComment appends a comment with a fresh id to the post and returns the post.
func (s *BlogService) AddComment(ctx context.Context, id string, req *CreateCommentRequest) (*BlogPost, error) {
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	now := s.now()
	comment := Comment{
		ID:        s.newID(),
		Author:    req.Author,
		Text:      req.Text,
		Rate:      req.Rate,
		CreatedAt: now,
		Extra:     req.Extra,
	}

	post, err := s.m.updateBlogPost(ctx, id, func(post *BlogPost) error {
		if err := validateCreateComment(req); err != nil {
			return err
		}

		post.Comments = append(post.Comments, comment)
		post.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, common.CommentAddedKey, CommentAddedEvent{
		PostID:        post.ID,
		PostTitle:     post.Title,
		PostAuthor:    post.Author,
		CommentID:     comment.ID,
		CommentAuthor: comment.Author,
		CommentText:   comment.Text,
		CreatedAt:     comment.CreatedAt,
	})

	return post, nil
}

// GetComments returns the comments of a post in insertion order.
func (s *BlogService) GetComments(ctx context.Context, id string) ([]Comment, error) {
	post, err := s.GetBlogPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return post.Comments, nil
}

// DeleteComment drops the comment with commentID from the post. An unknown
// comment id leaves the comments as they are and is not an error; only a
// missing post is reported.
func (s *BlogService) DeleteComment(ctx context.Context, id, commentID string) (*BlogPost, error) {
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	return s.m.updateBlogPost(ctx, id, func(post *BlogPost) error {
		remaining := make([]Comment, 0, len(post.Comments))
		for _, c := range post.Comments {
			if c.ID != commentID {
				remaining = append(remaining, c)
			}
		}

		if len(remaining) != len(post.Comments) {
			post.UpdatedAt = s.now()
		}
		post.Comments = remaining
		return nil
	})
}
