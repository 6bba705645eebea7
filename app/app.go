package app

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookhaven/library-service/config"
	"github.com/bookhaven/library-service/internal/handler"
	"github.com/bookhaven/library-service/internal/repository"
	"github.com/bookhaven/library-service/internal/server"
	"github.com/bookhaven/library-service/internal/service"
	"github.com/bookhaven/library-service/pkg/kafka"
	"github.com/bookhaven/library-service/pkg/logger"
	"github.com/bookhaven/library-service/pkg/mongodb"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "library")

	db, err := mongodb.NewMongoDB(context.Background(), &cfg.Database)
	if err != nil {
		return errors.Wrap(err, "db init")
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return errors.Wrap(err, "repo")
	}

	events := service.EventLog(service.NopEventLog{})
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			return errors.Wrap(err, "kafka.NewProducer")
		}
		defer producer.Close() //nolint:errcheck
		events = service.NewEventLog(producer, kafka.LoanEventsTopic)
	}

	svc := service.NewService(repo, events, log)
	h := handler.New(svc, cfg.Auth, log)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))

	g, gctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server run")
		}
		return nil
	})
	g.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		select {
		case termSig := <-sig:
			log.Debug("Graceful shutdown", zap.Any("signal", termSig))
		case <-gctx.Done():
		}

		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()

		if err := srv.Stop(closeCtx); err != nil {
			log.Error("srv.Stop", zap.Error(err))
		}
		return db.Client().Disconnect(closeCtx)
	})
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Graceful shutdown finished")
	return nil
}
