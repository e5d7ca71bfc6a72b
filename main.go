package main

import (
	"log"
	"os"

	api "taskboard-backend/cmd/api"
	auditdomain "taskboard-backend/internal/audit/domain"
	auditusecase "taskboard-backend/internal/audit/usecase"
	authdomain "taskboard-backend/internal/auth/domain"
	authusecase "taskboard-backend/internal/auth/usecase"
	boarddomain "taskboard-backend/internal/board/domain"
	boardusecase "taskboard-backend/internal/board/usecase"
	"taskboard-backend/pkg/config"
	"taskboard-backend/pkg/database"
	"taskboard-backend/pkg/eventlog"
	"taskboard-backend/pkg/logger"
)

func main() {
	configPath := os.Getenv("TASKBOARD_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	logg := logger.New(cfg.Log.Level, cfg.Server.ProductionMode)

	// Initialize database
	db, err := database.New(&cfg.Database, logg)
	if err != nil {
		logg.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()

	// Provision schema
	if err := db.CreateTables(
		&authdomain.User{}, &authdomain.Session{},
		&authdomain.Group{}, &authdomain.GroupMember{},
		&boarddomain.Column{}, &boarddomain.Task{}, &boarddomain.TaskCounter{},
		&boarddomain.Comment{}, &boarddomain.Attachment{}, &boarddomain.Dependency{},
		&boarddomain.Setting{},
		&auditdomain.ActivityLog{},
	); err != nil {
		logg.Fatal("Failed to migrate database: ", err)
	}

	// External append-only event log
	sink, err := eventlog.NewFileSink(cfg.EventLog.Path)
	if err != nil {
		logg.Fatal("Failed to open event log: ", err)
	}
	defer sink.Close()

	// Wire services (dependency injection)
	auditLogger := auditusecase.NewLogger(sink, logg)
	authUc := authusecase.NewAuthUsecase(db, auditLogger, logg)
	groupUc := authusecase.NewGroupUsecase(db, logg)
	boardSvc := boardusecase.NewService(db, auditLogger, logg)

	// Seed the initial admin account and default board
	if cfg.Admin.Username != "" {
		if err := authUc.SeedAdmin(cfg.Admin.Username, cfg.Admin.DisplayName, cfg.Admin.Password); err != nil {
			logg.Warn("Failed to seed admin account: ", err)
		}
	}
	if err := boardSvc.EnsureDefaultColumns(); err != nil {
		logg.Warn("Failed to seed default columns: ", err)
	}

	handler, err := api.NewHandler(cfg, authUc, groupUc, boardSvc, db, logg)
	if err != nil {
		logg.Fatal("Failed to assemble HTTP handler: ", err)
	}

	addr := cfg.Server.Address()
	logg.Info("Server starting on ", addr)
	if err := handler.Start(addr); err != nil {
		logg.Fatal("Failed to start server: ", err)
	}
}
