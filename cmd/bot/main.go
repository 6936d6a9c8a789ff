package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/tables-trainer-bot/internal/config"
	"github.com/aliskhannn/tables-trainer-bot/internal/delivery/telegram"
	"github.com/aliskhannn/tables-trainer-bot/internal/domain/practice"
	"github.com/aliskhannn/tables-trainer-bot/internal/infra/postgres"
	"github.com/aliskhannn/tables-trainer-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/tables-trainer-bot/internal/logger"
	"github.com/aliskhannn/tables-trainer-bot/internal/service"
	"github.com/aliskhannn/tables-trainer-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.BotDebug

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Начать тренировку",
		},
		{
			Command:     "practice",
			Description: "Вернуться к тренировке",
		},
		{
			Command:     "stats",
			Description: "Статистика",
		},
		{
			Command:     "help",
			Description: "Помощь",
		},
	}

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	lg.Info("authorized", zap.String("account", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	practiceStorage := storage.NewPracticeStorage(func() *practice.Session {
		return practice.NewSession()
	})

	// History is optional; the services stay nil without a database.
	var (
		users    telegram.UserService
		history  telegram.HistoryService
		recorder service.ResultRecorder
	)

	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB.URL, postgres.PoolConfig{
			MaxConns:        cfg.DB.MaxConnections,
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			lg.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		tr := postgres.NewTransactor(pool)
		userRepo := repository.NewUserRepository(pool)
		resultRepo := repository.NewResultRepository(pool)

		historyService := service.NewHistoryService(tr, resultRepo)

		users = service.NewUserService(userRepo, lg)
		history = historyService
		recorder = historyService
	} else {
		lg.Info("DATABASE_URL is not set, practice history is disabled")
	}

	practiceService := service.NewPracticeService(practiceStorage, recorder, lg)

	sweeper := service.NewSweeper(practiceStorage, cfg.Practice.SessionTTL, cfg.Practice.SweepInterval, lg)
	go sweeper.Start(ctx)

	handler := telegram.NewHandler(bot, lg, practiceService, users, history)
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("handler stopped", zap.Error(err))
	}

	bot.StopReceivingUpdates()
	lg.Info("shutdown signal received")
}
