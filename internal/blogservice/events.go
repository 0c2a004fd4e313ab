package blogservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/sushihentaime/blogfiles/internal/common"
)

type PostCreatedEvent struct {
	PostID    string    `json:"postId"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

type CommentAddedEvent struct {
	PostID        string    `json:"postId"`
	PostTitle     string    `json:"postTitle"`
	PostAuthor    string    `json:"postAuthor"`
	CommentID     string    `json:"commentId"`
	CommentAuthor string    `json:"commentAuthor"`
	CommentText   string    `json:"commentText"`
	CreatedAt     time.Time `json:"createdAt"`
}

// publish sends the event after the change has been persisted. A failure is
// logged and otherwise ignored.
func (s *BlogService) publish(ctx context.Context, key common.BindingKey, event any) {
	if s.mb == nil {
		return
	}

	msg, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("could not marshal event", slog.String("key", string(key)), slog.String("error", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.mb.Publish(ctx, msg, key, common.BlogExchange); err != nil {
		s.logger.Error("could not publish event", slog.String("key", string(key)), slog.String("error", err.Error()))
	}
}
