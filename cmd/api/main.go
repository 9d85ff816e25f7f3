package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/sba-tracking/internal/config"
	"github.com/xavierca1/sba-tracking/internal/infra/database"
	"github.com/xavierca1/sba-tracking/internal/infra/http/handlers"
	"github.com/xavierca1/sba-tracking/internal/infra/mail"
	"github.com/xavierca1/sba-tracking/internal/infra/queue"
	"github.com/xavierca1/sba-tracking/internal/infra/worker"
	"github.com/xavierca1/sba-tracking/internal/logger"
	"github.com/xavierca1/sba-tracking/internal/usecase"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogConsole)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Database
	db, err := database.NewDBConnection(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to prepare schema")
	}

	repo := database.NewQuestionnaireRepository(db)

	// 2. Notifications
	mailSender := mail.NewEmailSender(
		cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom, cfg.SalesInbox,
	)

	var publisher usecase.SubmissionPublisher
	var brokerConn *amqp091.Connection
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("failed to set up RabbitMQ")
		}
		defer rabbitMQ.Close()

		brokerConn = rabbitMQ.Conn
		publisher = queue.NewProducer(rabbitMQ.Ch)

		if mailSender.Configured() {
			consumerCh, err := rabbitMQ.Conn.Channel()
			if err != nil {
				logger.Log.Fatal().Err(err).Msg("failed to open consumer channel")
			}
			w := queue.NewWorker(consumerCh, mailSender)
			go func() {
				if err := w.Start(ctx, queue.QueueName); err != nil {
					logger.Log.Error().Err(err).Msg("submission worker exited")
				}
			}()
		} else {
			logger.Log.Warn().Msg("mail not configured, submission events stay queued")
		}
	} else {
		logger.Log.Warn().Msg("RABBITMQ_URL not set, submission events disabled")
	}

	// 3. Use cases
	createUC := usecase.NewCreateQuestionnaireUseCase(repo, publisher, cfg.PublicBaseURL)
	getUC := usecase.NewGetQuestionnaireUseCase(repo)
	updateUC := usecase.NewUpdateQuestionnaireUseCase(repo)
	statusUC := usecase.NewUpdateStatusUseCase(repo)
	appointmentUC := usecase.NewUpdateAppointmentUseCase(repo)
	analyticsUC := usecase.NewAnalyticsUseCase(repo)

	go worker.NewAggregateGaugesWorker(analyticsUC, cfg.GaugeRefreshInterval).Start(ctx)

	// 4. Handlers
	questionnaireHandler := handlers.NewQuestionnaireHandler(createUC, getUC, updateUC)
	defer questionnaireHandler.Close()

	router := newRouter(routes{
		questionnaire: questionnaireHandler,
		status:        handlers.NewStatusHandler(statusUC),
		appointment:   handlers.NewAppointmentHandler(appointmentUC),
		analytics:     handlers.NewAnalyticsHandler(analyticsUC),
		health:        handlers.NewHealthHandler(db, brokerConn, mailSender.Configured()),
	}, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error().Err(err).Msg("forced shutdown")
	}
}
