package mailservice

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/blogfiles/internal/blogservice"
	"github.com/sushihentaime/blogfiles/internal/common"
)

func testEvent(t *testing.T) []byte {
	t.Helper()

	body, err := json.Marshal(blogservice.CommentAddedEvent{
		PostID:        "post-1",
		PostTitle:     "Hello",
		PostAuthor:    "Ada Lovelace",
		CommentID:     "c-1",
		CommentAuthor: "bob",
		CommentText:   "nice post",
		CreatedAt:     time.Now(),
	})
	require.NoError(t, err)
	return body
}

func newTestService(mc common.MessageConsumer, mailer Mailer, resolver RecipientResolver) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:        mc,
		m:         mailer,
		resolver:  resolver,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		postURL:   "http://localhost:3002/blogPosts",
		baseDelay: time.Millisecond,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func TestSendCommentNotifications(t *testing.T) {
	mockMC := &MockMessageConsumer{Bodies: [][]byte{testEvent(t)}}
	mockMC.On("Consume", common.CommentAddedKey, common.BlogExchange, common.CommentAddedQueue).Return(nil)

	mockResolver := new(MockResolver)
	mockResolver.On("EmailFor", "Ada Lovelace").Return("ada@example.com", nil)

	mockMailer := new(MockMailer)

	s := newTestService(mockMC, mockMailer, mockResolver)
	t.Cleanup(s.Close)

	require.NoError(t, s.SendCommentNotifications())

	// the consumer goroutine exits once the delivery channel is drained
	s.wg.Wait()

	assert.Equal(t, []string{"ada@example.com"}, mockMailer.Recipients())

	mockMailer.mu.Lock()
	payload := mockMailer.data[0].(commentNotification)
	mockMailer.mu.Unlock()
	assert.Equal(t, "http://localhost:3002/blogPosts/post-1", payload.PostURL)
	assert.Equal(t, "bob", payload.CommentAuthor)

	mockMC.AssertExpectations(t)
	mockResolver.AssertExpectations(t)
}

func TestSendCommentNotificationsRetries(t *testing.T) {
	mockMC := &MockMessageConsumer{Bodies: [][]byte{testEvent(t)}}
	mockMC.On("Consume", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	mockResolver := new(MockResolver)
	mockResolver.On("EmailFor", "Ada Lovelace").Return("ada@example.com", nil)

	mockMailer := &MockMailer{failures: 2}

	s := newTestService(mockMC, mockMailer, mockResolver)
	t.Cleanup(s.Close)

	require.NoError(t, s.SendCommentNotifications())

	s.wg.Wait()

	assert.Equal(t, []string{"ada@example.com"}, mockMailer.Recipients())
	assert.Equal(t, 3, mockMailer.Attempts())
}

func TestSendCommentNotificationsSkipsUnknownAuthor(t *testing.T) {
	mockMC := &MockMessageConsumer{Bodies: [][]byte{[]byte("not json"), testEvent(t)}}
	mockMC.On("Consume", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	mockResolver := new(MockResolver)
	mockResolver.On("EmailFor", "Ada Lovelace").Return("", common.NotFoundError{Resource: "author", ID: "Ada Lovelace"})

	mockMailer := new(MockMailer)

	s := newTestService(mockMC, mockMailer, mockResolver)
	t.Cleanup(s.Close)

	require.NoError(t, s.SendCommentNotifications())

	s.wg.Wait()

	mockResolver.AssertNumberOfCalls(t, "EmailFor", 1)
	assert.Equal(t, 0, mockMailer.Attempts())
}

func TestSendCommentNotificationsConsumeError(t *testing.T) {
	mockMC := new(MockMessageConsumer)
	mockMC.On("Consume", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("channel closed"))

	s := newTestService(mockMC, new(MockMailer), new(MockResolver))
	t.Cleanup(s.Close)

	assert.Error(t, s.SendCommentNotifications())
}
