package mailservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/exp/rand"

	"github.com/sushihentaime/blogfiles/internal/blogservice"
	"github.com/sushihentaime/blogfiles/internal/common"
)

const (
	commentTemplate = "comment_notification.html"
	maxRetries      = 5
)

func NewMailService(mb common.MessageConsumer, resolver RecipientResolver, cfg MailConfig, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:        mb,
		m:         NewMailer(cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Sender, NewTemplate()),
		resolver:  resolver,
		logger:    logger,
		postURL:   strings.TrimRight(cfg.PostURL, "/"),
		baseDelay: 500 * time.Millisecond,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// SendCommentNotifications consumes comment events and mails the author of the
// commented post. It returns once the consumer is running.
func (s *MailService) SendCommentNotifications() error {
	msgs, err := s.mb.Consume(common.CommentAddedKey, common.BlogExchange, common.CommentAddedQueue)
	if err != nil {
		return fmt.Errorf("could not consume comment events: %w", err)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				s.handleCommentAdded(msg.Body)
				_ = msg.Ack(false)

			case <-s.ctx.Done():
				s.logger.Info("stopping comment notifications due to context cancellation")
				return
			}
		}
	}()

	return nil
}

func (s *MailService) handleCommentAdded(body []byte) {
	var event blogservice.CommentAddedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
		return
	}

	recipient, err := s.resolver.EmailFor(s.ctx, event.PostAuthor)
	if err != nil {
		if errors.Is(err, common.ErrRecordNotFound) {
			s.logger.Info("no recipient for comment notification", slog.String("author", event.PostAuthor))
			return
		}
		s.logger.Error("could not resolve recipient", slog.String("author", event.PostAuthor), slog.String("error", err.Error()))
		return
	}

	author := event.CommentAuthor
	if author == "" {
		author = "Someone"
	}

	payload := commentNotification{
		PostTitle:     event.PostTitle,
		PostURL:       s.postURL + "/" + event.PostID,
		CommentAuthor: author,
		CommentText:   event.CommentText,
	}

	// using exponential backoff with jitter
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = s.m.send(recipient, payload, commentTemplate)
		if err == nil {
			s.logger.Info("comment notification sent", slog.String("email", recipient), slog.String("post_id", event.PostID))
			return
		}

		delay := time.Duration(rand.Int63n(int64(s.baseDelay) << uint(attempt)))
		s.logger.Info("delaying comment notification", slog.String("email", recipient), slog.Int("attempt", attempt), slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			return
		}
	}

	s.logger.Error("could not send comment notification", slog.String("email", recipient), slog.String("error", err.Error()))
}

// Close stops the consumer and waits for the message in flight.
func (s *MailService) Close() {
	s.cancel()
	s.wg.Wait()
}
