package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	"github.com/coachdesk/notifier/internal/api/handlers/notification"
	"github.com/coachdesk/notifier/internal/api/router"
	"github.com/coachdesk/notifier/internal/api/server"
	"github.com/coachdesk/notifier/internal/config"
	"github.com/coachdesk/notifier/internal/model"
	"github.com/coachdesk/notifier/internal/repository/inapp"
	notifrepo "github.com/coachdesk/notifier/internal/repository/notification"
	"github.com/coachdesk/notifier/internal/repository/preference"
	"github.com/coachdesk/notifier/internal/sender"
	notifsvc "github.com/coachdesk/notifier/internal/service/notification"
	"github.com/coachdesk/notifier/internal/worker"
	"github.com/coachdesk/notifier/pkg/email"
	"github.com/coachdesk/notifier/pkg/webpush"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()
	val := validator.New()

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Database.Slaves))
	for _, s := range cfg.Database.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	notificationRepo := notifrepo.NewRepository(db)
	preferenceRepo := preference.NewRepository(db)
	inappRepo := inapp.NewRepository(db)

	dbNum, err := strconv.Atoi(cfg.Redis.Database)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to parse redis database")
	}

	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, dbNum)
	if err = rdb.Ping(ctx).Err(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}

	smtpPort, err := strconv.Atoi(cfg.Email.SMTPPort)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to parse email smtp port")
	}

	emailClient := email.NewClient(
		cfg.Email.SMTPHost,
		smtpPort,
		cfg.Email.Username,
		cfg.Email.Password,
		cfg.Email.From,
	)
	pushClient := webpush.NewClient(
		cfg.Push.Subscriber,
		cfg.Push.VAPIDPublicKey,
		cfg.Push.VAPIDPrivateKey,
		cfg.Push.TTLSeconds,
	)

	senders := map[model.Channel]sender.Sender{
		model.ChannelEmail: sender.NewEmailSender(preferenceRepo, emailClient),
		model.ChannelPush:  sender.NewPushSender(preferenceRepo, pushClient),
		model.ChannelInApp: sender.NewInAppSender(inappRepo),
	}

	service := notifsvc.NewService(notificationRepo, preferenceRepo, inappRepo, senders, rdb, notifsvc.Options{
		BatchSize:         cfg.Scheduler.BatchSize,
		DueBuffer:         cfg.Scheduler.DueBuffer,
		DispatchPause:     cfg.Scheduler.DispatchPause,
		DefaultMaxRetries: cfg.Scheduler.DefaultMaxRetries,
	})

	scheduler := worker.New(service, cfg.Scheduler.Interval, cfg.Scheduler.CleanupInterval, cfg.Retry)
	go scheduler.Run(ctx)

	notifHandler := notification.NewHandler(service, scheduler, val, cfg)

	r := router.New(notifHandler)
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	if err := db.Master.Close(); err != nil {
		zlog.Logger.Printf("failed to close master DB: %v", err)
	}

	for i, s := range db.Slaves {
		if err := s.Close(); err != nil {
			zlog.Logger.Printf("failed to close slave DB %d: %v", i, err)
		}
	}
}
