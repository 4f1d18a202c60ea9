package main

import (
	"context"
	"log"
	"time"

	"github.com/princinho/pepinterview/config"
	"github.com/princinho/pepinterview/controllers"
	"github.com/princinho/pepinterview/database"
	"github.com/princinho/pepinterview/router"
	"github.com/princinho/pepinterview/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.MongoURI, cfg.DatabaseName)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Disconnect(shutdownCtx)
	}()

	if err := db.EnsureIndexes(ctx); err != nil {
		log.Printf("ensure indexes: %v", err)
	}

	users := db.Users()
	if err := utils.SeedAdminUser(ctx, users, cfg.Admin); err != nil {
		log.Printf("Admin seed skipped: %v", err)
	}

	store, err := utils.NewObjectStore(ctx, cfg.Storage)
	if err != nil {
		log.Printf("Object storage disabled: %v", err)
	}

	mailer := utils.NewMailer(cfg.Mailer)
	if mailer == nil {
		log.Println("Mailer not configured, reset links are returned in API responses")
	}

	app := &controllers.App{
		Config:        cfg,
		Users:         users,
		Interviews:    db.Interviews(),
		Notifications: db.Notifications(),
		LoginLogs:     db.LoginLogs(),
		Mailer:        mailer,
		Storage:       store,
		Files:         utils.NewFileValidator(cfg.Storage),
		Hub:           controllers.NewNotificationHub(cfg.AllowedOrigins),
	}

	r := router.New(app)
	log.Printf("Server listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
