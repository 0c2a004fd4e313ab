package mailservice

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/go-mail/mail/v2"

	"github.com/sushihentaime/blogfiles/internal/common"
)

type MailService struct {
	mb        common.MessageConsumer
	m         Mailer
	resolver  RecipientResolver
	logger    MailLogger
	postURL   string
	baseDelay time.Duration
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
	// PostURL is the base URL posts are linked from, e.g. http://localhost:3002/blogPosts.
	PostURL string
}

type MailLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

// RecipientResolver maps the author reference of a blog post to an email address.
type RecipientResolver interface {
	EmailFor(ctx context.Context, ref string) (string, error)
}

type Mail struct {
	mu     sync.Mutex
	dialer Dialer
	parser TemplateParser
	sender string
}

type Mailer interface {
	send(recipient string, data any, templateFile string) error
}

type Template struct{}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type TemplateParser interface {
	ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error)
}

type commentNotification struct {
	PostTitle     string
	PostURL       string
	CommentAuthor string
	CommentText   string
}
