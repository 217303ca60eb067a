package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/ellavondegurechaff/questline/questline"
	"github.com/ellavondegurechaff/questline/questline/commands"
	"github.com/ellavondegurechaff/questline/questline/database"
	"github.com/ellavondegurechaff/questline/questline/database/repositories"
	"github.com/ellavondegurechaff/questline/questline/handlers"
	"github.com/ellavondegurechaff/questline/questline/logger"
	"github.com/ellavondegurechaff/questline/questline/services"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := questline.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}

	slog.SetDefault(slog.New(logger.NewHandler(cfg.Log.Level)))

	slog.Info("Starting Questline bot",
		slog.String("version", version),
		slog.String("commit", commit))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dbStartTime := time.Now()
	db, err := database.New(ctx, database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	})
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("type", "db"),
			slog.Any("error", err),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema",
			slog.String("type", "db"),
			slog.Any("error", err))
		os.Exit(-1)
	}

	slog.Info("Database connected",
		slog.String("type", "db"),
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	b := questline.New(*cfg, version, commit)
	b.DB = db

	b.UserRepository = repositories.NewUserRepository(db.BunDB())
	b.QuestRepository = repositories.NewQuestRepository(db.BunDB())
	b.GroupRepository = repositories.NewPartnerGroupRepository(db.BunDB())
	b.SubmissionRepository = repositories.NewSubmissionRepository(db.BunDB())

	b.Messenger = services.NewDiscordMessenger()
	b.EvidenceStore = services.NewEvidenceStore(
		cfg.Spaces.Key,
		cfg.Spaces.Secret,
		cfg.Spaces.Region,
		cfg.Spaces.Bucket,
		cfg.Spaces.EvidenceRoot,
	)

	classifier := services.NewHTTPClassifier(
		cfg.Classifier.BaseURL,
		time.Duration(cfg.Classifier.TimeoutSeconds)*time.Second,
	)
	notifier := services.NewNotifier(b.UserRepository, b.SubmissionRepository, b.Messenger)

	b.Resolver = services.NewIdentityResolver(b.UserRepository, b.GroupRepository)
	b.Guard = services.NewAdmissionGuard(b.QuestRepository, b.SubmissionRepository, b.GroupRepository, b.UserRepository)
	b.Lifecycle = services.NewLifecycleService(b.SubmissionRepository, b.QuestRepository, b.UserRepository, classifier, notifier)
	b.Coordinator = services.NewCoordinator(b.Guard, b.UserRepository, b.GroupRepository, b.SubmissionRepository, b.Lifecycle)

	h := handler.New()
	h.Command("/submit", handlers.WrapWithLogging("submit", commands.SubmitHandler(b)))
	h.Command("/submissions", handlers.WrapWithLogging("submissions", commands.SubmissionsHandler(b)))
	h.Command("/review", handlers.WrapWithLogging("review", commands.ReviewHandler(b)))
	h.Command("/optout", handlers.WrapWithLogging("optout", commands.OptOutHandler(b)))
	h.Command("/deletesubmission", handlers.WrapWithLogging("deletesubmission", commands.DeleteSubmissionHandler(b)))
	h.Command("/version", commands.VersionHandler(b))

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady)); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("component", "bot_setup"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds),
		)
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("component", "command_sync"),
				slog.String("status", "failed"),
			)
		}
	}

	gatewayCtx, gatewayCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer gatewayCancel()
	if err = b.Client.OpenGateway(gatewayCtx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("component", "gateway"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	slog.Info("Bot is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down bot...")
}
