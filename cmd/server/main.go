// DiagListApp - suspension diagnostic checklist for a car workshop
// Optimized for a single on-premises workstation
package main

import (
	"context"
	"runtime"

	"diaglistapp/internal/catalog"
	"diaglistapp/internal/config"
	"diaglistapp/internal/diag"
	"diaglistapp/internal/domain"
	"diaglistapp/internal/notify"
	"diaglistapp/internal/orders"
	"diaglistapp/internal/repository"
	"diaglistapp/internal/repository/sqlite"
	"diaglistapp/internal/server"
	"diaglistapp/internal/templates"
	"diaglistapp/internal/vin"

	"github.com/sirupsen/logrus"
)

func main() {
	// Limit CPU usage, the app shares the desk with heavier tools
	runtime.GOMAXPROCS(1)

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Load configuration
	cfg, err := config.Load("config.json")
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if cfg.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	log.WithFields(logrus.Fields{
		"workshop": cfg.Workshop.Name,
		"debug":    cfg.Debug,
	}).Info("starting")

	// Initialize database
	db, err := sqlite.New(cfg.GetDatabasePath())
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}
	log.Info("database initialized")

	// Initialize repositories and workflow managers
	blobs := sqlite.NewBlobRepo(db)
	repos := &repository.Repositories{
		Orders: repository.NewOrderCollection(blobs),
		Diags:  repository.NewDiagCollection(blobs),
	}
	orderMgr := orders.NewManager(repos.Orders)
	diagMgr := diag.NewManager(repos.Diags)

	// Car reference data lives in memory for the process lifetime
	cars := catalog.New(catalog.Seed())

	// Notification pollers, one per role
	pollers := map[string]*notify.Poller{
		domain.RoleExecutor: notify.NewExecutorPoller(orderMgr, domain.StatusPending,
			notify.NopPlayer{}, log.WithField("poller", "executor")),
		domain.RoleManager: notify.NewManagerPoller(orderMgr, domain.StatusCompleted,
			notify.NopPlayer{}, log.WithField("poller", "manager")),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	for _, p := range pollers {
		p.Start(ctx)
	}
	defer func() {
		for _, p := range pollers {
			p.Stop()
		}
	}()

	// Initialize template manager
	tmpl, err := templates.NewManager("./templates", cfg.Debug)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize templates")
	}
	log.Info("templates loaded")

	// Create and run the server
	srv := server.New(cfg, orderMgr, diagMgr, cars, vin.New(), pollers, tmpl, log)

	log.WithField("address", cfg.Address()).Info("server listening")

	if err := srv.Run(); err != nil {
		log.WithError(err).Fatal("server error")
	}
}
