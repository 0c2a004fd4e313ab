package blogservice

import (
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/sushihentaime/blogfiles/internal/common"
	"github.com/sushihentaime/blogfiles/internal/mediaservice"
	"github.com/sushihentaime/blogfiles/internal/store"
)

type ReadTime struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"`
}

type BlogPost struct {
	ID       string    `json:"id"`
	Category string    `json:"category"`
	Title    string    `json:"title"`
	Cover    string    `json:"cover,omitempty"`
	ReadTime *ReadTime `json:"readTime,omitempty"`
	// Author references an author record by id, or names the author directly.
	Author string `json:"author"`
	// Content is stored in Markdown format.
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Comments  []Comment `json:"comments"`
}

type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author,omitempty"`
	Text      string    `json:"text"`
	Rate      int       `json:"rate,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	// Extra holds free-form fields supplied by the commenter. They are
	// written inline next to the known fields.
	Extra map[string]json.RawMessage `json:"-"`
}

type CreateBlogPostRequest struct {
	Category string    `json:"category"`
	Title    string    `json:"title"`
	Cover    string    `json:"cover"`
	ReadTime *ReadTime `json:"readTime"`
	Author   string    `json:"author"`
	Content  string    `json:"content"`
}

// UpdateBlogPostRequest carries the fields to overwrite; nil fields are kept.
type UpdateBlogPostRequest struct {
	Category *string   `json:"category"`
	Title    *string   `json:"title"`
	Cover    *string   `json:"cover"`
	ReadTime *ReadTime `json:"readTime"`
	Author   *string   `json:"author"`
	Content  *string   `json:"content"`
}

type CreateCommentRequest struct {
	Author string                     `json:"author"`
	Text   string                     `json:"text"`
	Rate   int                        `json:"rate"`
	Extra  map[string]json.RawMessage `json:"-"`
}

// CoverUpload is an uploaded cover image as received from the client.
type CoverUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type BlogModel struct {
	posts *store.Collection[BlogPost]
}

type BlogService struct {
	m        *BlogModel
	uploader mediaservice.Uploader
	mb       common.MessageProducer
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}
