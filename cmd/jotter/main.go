package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/jotterhq/jotter/internal/config"
	"github.com/jotterhq/jotter/internal/db"
	"github.com/jotterhq/jotter/internal/filestore"
	"github.com/jotterhq/jotter/internal/handler"
	"github.com/jotterhq/jotter/internal/job"
	"github.com/jotterhq/jotter/internal/middleware"
	"github.com/jotterhq/jotter/internal/repo"
	"github.com/jotterhq/jotter/internal/schedule"
	"github.com/jotterhq/jotter/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "jotter",
		Short: "jotter backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run jotter server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			dbConn, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(dbConn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, dbConn)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, dbConn *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("file_store", cfg.FileStore.Type),
	)

	userRepo := repo.NewUserRepo(dbConn)
	docRepo := repo.NewDocumentRepo(dbConn)
	versionRepo := repo.NewVersionRepo(dbConn)
	folderRepo := repo.NewFolderRepo(dbConn)
	tagRepo := repo.NewTagRepo(dbConn)
	shareRepo := repo.NewShareRepo(dbConn)
	commentRepo := repo.NewCommentRepo(dbConn)
	assetRepo := repo.NewAssetRepo(dbConn)

	var mailSender service.IEmailSender
	if cfg.Mail.Host != "" {
		mailSender = service.NewSMTPSender(cfg.Mail)
	} else {
		mailSender = service.NewNoopSender()
	}

	authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))
	documentService := service.NewDocumentService(dbConn, docRepo, versionRepo, folderRepo, tagRepo, userRepo)
	folderService := service.NewFolderService(folderRepo, docRepo)
	tagService := service.NewTagService(tagRepo, docRepo)
	shareService := service.NewShareService(shareRepo, docRepo, mailSender, cfg.WebURL)
	commentService := service.NewCommentService(commentRepo, docRepo, userRepo, shareService, mailSender, cfg.WebURL)

	store, err := filestore.Create(cfg.FileStore.Type, cfg.FileStore.Data)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}
	assetService := service.NewAssetService(assetRepo, store)

	deps := &handler.RouterDeps{
		JWTSecret: []byte(cfg.JWTSecret),
		Auth:      authService,
		Documents: documentService,
		Folders:   folderService,
		Tags:      tagService,
		Shares:    shareService,
		Comments:  commentService,
		Assets:    assetService,
	}

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.Add(cfg.Jobs.ShareSweepSpec, job.NewShareSweepJob(shareService)); err != nil {
		return fmt.Errorf("register share sweep job: %w", err)
	}
	if err := scheduler.Add(cfg.Jobs.TrashPurgeSpec, job.NewTrashPurgeJob(documentService, cfg.Jobs.TrashRetentionDays)); err != nil {
		return fmt.Errorf("register trash purge job: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(cfg.CORSOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
