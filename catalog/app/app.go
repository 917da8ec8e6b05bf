package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/home-library/catalog/config"
	"github.com/Astemirdum/home-library/catalog/internal/handler"
	"github.com/Astemirdum/home-library/catalog/internal/repository"
	"github.com/Astemirdum/home-library/catalog/internal/server"
	"github.com/Astemirdum/home-library/catalog/internal/service"
	"github.com/Astemirdum/home-library/catalog/migrations"
	"github.com/Astemirdum/home-library/pkg/auth"
	"github.com/Astemirdum/home-library/pkg/auth0"
	"github.com/Astemirdum/home-library/pkg/kafka"
	"github.com/Astemirdum/home-library/pkg/logger"
	"github.com/Astemirdum/home-library/pkg/postgres"
	"go.uber.org/zap"
)

type publisher interface {
	service.Publisher
	Close() error
}

func Run(cfg config.Config) error {
	log := logger.NewLogger(cfg.Log, "catalog")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %v", err)
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("repo %v", err)
	}
	tokens, err := newTokenValidator(cfg)
	if err != nil {
		return fmt.Errorf("token validator %v", err)
	}
	pub, err := newPublisher(cfg.Kafka, log)
	if err != nil {
		return fmt.Errorf("kafka %v", err)
	}

	svc := service.NewService(repo, repo, auth.NewPolicy(cfg.Access.AdminGroup), pub, log)
	h := handler.New(svc, tokens, log)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	if err = pub.Close(); err != nil {
		log.Error("publisher close", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
	return nil
}

func newTokenValidator(cfg config.Config) (auth.TokenValidator, error) {
	if cfg.Auth0.Enable {
		return auth0.NewValidator(cfg.Auth0)
	}
	return auth.NewHMACValidator(cfg.Auth)
}

func newPublisher(cfg kafka.Config, log *zap.Logger) (publisher, error) {
	if !cfg.Enabled() {
		log.Info("kafka disabled, events are dropped")
		return kafka.NopPublisher{}, nil
	}
	producer, err := kafka.NewProducer(cfg)
	if err != nil {
		return nil, err
	}
	return kafka.NewPublisher(producer, cfg.Topic), nil
}
