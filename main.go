// Command taskwire serves a small HTTP API over the taskwarrior JSON codec:
// it imports, validates and normalizes task exports, migrates legacy depends
// payloads to the current format, and keeps an audit trail of everything that
// passed through.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/taskwire/taskwire/store"
	"github.com/taskwire/taskwire/utils"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

// Config holds all configuration parameters.
type Config struct {
	AllowedUsers  string
	DatabasePath  string
	Port          int
	RateLimit     int
	RetentionDays int
}

var config Config

func init() {
	flag.StringVar(&config.AllowedUsers, "allowed-users", "", "Comma-separated list of allowed users in the format 'username:password'")
	flag.StringVar(&config.DatabasePath, "database-path", "", "Path to the SQLite snapshot database file")
	flag.IntVar(&config.Port, "port", 8080, "Port to run the server on")
	flag.IntVar(&config.RateLimit, "rate-limit", 60, "Maximum requests per minute on the /api/v1 group")
	flag.IntVar(&config.RetentionDays, "retention-days", 90, "Days to keep task snapshots before the daily prune job deletes them")
}

func setupRouter(accounts gin.Accounts, st *store.Store) *gin.Engine {
	app := gin.Default()

	app.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	h := &handlers{store: st}

	api := app.Group("/api", gin.BasicAuth(accounts))
	v1 := api.Group("/v1")
	v1.Use(utils.RateLimitMiddleware(config.RateLimit, time.Minute))

	v1.POST("/import", h.HandleImport)
	v1.POST("/convert", h.HandleConvert)
	v1.GET("/fetch", h.HandleFetch)
	v1.GET("/recent", h.HandleRecent)

	return app
}

func startPruneJob(st *store.Store, retention time.Duration) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("@daily", func() {
		n, err := st.Prune(retention)
		if err != nil {
			log.Errorf("Snapshot prune failed: %v", err)
			return
		}
		log.Infof("Pruned %d snapshots older than %s", n, retention)
	})
	if err != nil {
		log.Fatalf("Failed to schedule prune job: %v", err)
	}
	c.Start()
	return c
}

func main() {
	log.Infof("Server starting time: %s", time.Now().Format(time.RFC3339))
	flag.Parse()

	if config.AllowedUsers == "" {
		log.Fatal("No allowed users provided. Use --allowed-users flag to specify them.")
	}
	accounts, err := utils.ParseAllowedUsers(config.AllowedUsers)
	if err != nil {
		log.Fatalf("Failed to parse allowed users: %v", err)
	}
	log.Infof("Allowed users (hidden passwords): %s", utils.RedactedUserNames(accounts))

	if config.DatabasePath == "" {
		log.Fatal("No database path provided. Use --database-path flag to specify it.")
	}
	st, err := store.Open(config.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open snapshot store: %v", err)
	}
	log.Infof("Snapshot store ready at %s", config.DatabasePath)

	pruner := startPruneJob(st, time.Duration(config.RetentionDays)*24*time.Hour)
	defer pruner.Stop()

	gin.SetMode(gin.ReleaseMode)
	app := setupRouter(accounts, st)
	listenAddr := fmt.Sprintf(":%d", config.Port)
	log.Infof("Gin has started in %s mode on %s", gin.Mode(), listenAddr)

	if err := app.Run(listenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
