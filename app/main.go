package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sushihentaime/blogfiles/internal/authorservice"
	"github.com/sushihentaime/blogfiles/internal/blogservice"
	"github.com/sushihentaime/blogfiles/internal/common"
	"github.com/sushihentaime/blogfiles/internal/mailservice"
	"github.com/sushihentaime/blogfiles/internal/mediaservice"
	"github.com/sushihentaime/blogfiles/internal/store"
)

type application struct {
	config        *Config
	logger        *slog.Logger
	blogService   *blogservice.BlogService
	authorService *authorservice.AuthorService
	mailService   *mailservice.MailService
	broker        *common.MessageBroker
}

func main() {
	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(cfg.Environment)

	if err := run(cfg, logger); err != nil {
		logger.Error("failed to run the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newLogger(env string) *slog.Logger {
	if env == "development" {
		return slog.New(slog.NewTextHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func run(cfg *Config, logger *slog.Logger) error {
	s, closeStore, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("could not open the %s store: %w", cfg.StoreDriver, err)
	}
	defer closeStore()

	if cfg.CacheTTL > 0 {
		s = store.NewCachedStore(s, common.NewCache(cfg.CacheTTL, 2*cfg.CacheTTL))
	}

	uploader, err := newUploader(cfg)
	if err != nil {
		return fmt.Errorf("could not set up %s cover storage: %w", cfg.CoverStorage, err)
	}

	app := &application{
		config:        cfg,
		logger:        logger,
		authorService: authorservice.NewAuthorService(s),
	}

	// The message broker is optional; without it no events are published.
	var producer common.MessageProducer
	if cfg.MQHost != "" {
		URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
		broker, err := common.NewMessageBroker(URI)
		if err != nil {
			return fmt.Errorf("could not connect to the message broker: %w", err)
		}
		defer broker.Close()

		if err := common.SetupBlogExchange(broker); err != nil {
			return fmt.Errorf("could not set up the blog exchange: %w", err)
		}

		app.broker = broker
		producer = broker

		if cfg.MailHost != "" {
			if err := common.SetupCommentQueue(broker); err != nil {
				return fmt.Errorf("could not set up the comment queue: %w", err)
			}

			app.mailService = mailservice.NewMailService(broker, app.authorService, mailservice.MailConfig{
				Host:     cfg.MailHost,
				Port:     cfg.MailPort,
				Username: cfg.MailUser,
				Password: cfg.MailPassword,
				Sender:   cfg.MailSender,
				PostURL:  cfg.PublicURL + "/blogPosts",
			}, logger)

			if err := app.mailService.SendCommentNotifications(); err != nil {
				return err
			}
		}
	}

	app.blogService = blogservice.NewBlogService(s, uploader, producer, logger)

	return app.serve()
}

// openStore returns the configured store and a function releasing it.
func openStore(cfg *Config) (store.Store, func(), error) {
	switch cfg.StoreDriver {
	case "file", "":
		return store.NewFileStore(cfg.DataDir), func() {}, nil
	case "postgres":
		db, err := common.NewDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, 10, 5, 15*time.Minute)
		if err != nil {
			return nil, nil, err
		}

		dsn := common.PostgresURI(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
		m, err := common.MigrateDB("file://migrations", dsn)
		if err != nil {
			common.CloseDB(db)
			return nil, nil, fmt.Errorf("could not migrate: %w", err)
		}
		m.Close()

		return store.NewPostgresStore(db), func() { common.CloseDB(db) }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func newUploader(cfg *Config) (mediaservice.Uploader, error) {
	switch cfg.CoverStorage {
	case "disk", "":
		return mediaservice.NewDiskStorage(cfg.PublicDir, cfg.PublicURL), nil
	case "minio":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return mediaservice.NewMinIOStorage(ctx, mediaservice.MinIOConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			Bucket:    cfg.MinIOBucket,
			UseSSL:    cfg.MinIOUseSSL,
		})
	default:
		return nil, fmt.Errorf("unknown cover storage %q", cfg.CoverStorage)
	}
}
