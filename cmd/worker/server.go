package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"soundreel-backend/internal/config"
	"soundreel-backend/internal/infrastructure/email"
	"soundreel-backend/internal/infrastructure/email/job"
	"soundreel-backend/pkg/logger"
)

// Run starts the asynq consumer that delivers notification emails. The API
// enqueues; this binary is the only thing that talks SMTP.
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	sender := email.NewSMTPSender(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.From)
	handler := job.NewNotificationHandler(sender)

	mux := asynq.NewServeMux()
	mux.Handle(email.TypeNotification, handler)

	go func() {
		logger.Info("worker starting", map[string]interface{}{
			"redis":       cfg.Redis.Host,
			"environment": cfg.App.Environment,
		})

		if err := srv.Run(mux); err != nil {
			log.Fatalf("Failed to start worker: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down worker", nil)
	srv.Shutdown()
	logger.Info("worker exited", nil)
}
