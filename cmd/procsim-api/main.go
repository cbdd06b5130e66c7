// Command procsim-api exposes the simulator over HTTP: trigger a run
// with a chosen policy and retrieve its rendered log later, the way a
// classroom might share runs without everyone installing the CLI.
package main

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/edirooss/procsim/internal/runlog"
	"github.com/edirooss/procsim/kernel"
	"github.com/edirooss/procsim/logfmt"
	"github.com/edirooss/procsim/processor"
	"github.com/edirooss/procsim/redis"
	"github.com/edirooss/procsim/sched"
)

func main() {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.TimeKey = ""
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	logConfig.DisableCaller = true
	log := zap.Must(logConfig.Build())
	defer log.Sync()
	log = log.Named("procsim-api")

	isDev := os.Getenv("ENV") == "dev"
	redisAddr := envOr("REDIS_ADDR", "localhost:6379")

	client := redis.NewClient(redisAddr, 0, log)
	defer client.Close()

	store := runlog.NewStore(client, log)

	sessionSvc, err := runlog.NewSessionService(isDev, redisAddr)
	if err != nil {
		log.Fatal("session store init failed", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"127.0.0.1"})

	r.Use(gin.Recovery())

	r.Use(secure.New(secure.Config{
		SSLRedirect:           !isDev,
		STSSeconds:            31536000,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ContentSecurityPolicy: "default-src 'self'",
	}))

	if isDev {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.Use(sessionSvc.Middleware())

	r.GET("/api/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.POST("/api/runs", func(c *gin.Context) {
		var req struct {
			Policy    string `json:"policy"`
			Timeslice int    `json:"timeslice"`
			Remaining int    `json:"remaining"`
			CPUSlices int    `json:"cpu_slices"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if req.Timeslice <= 0 {
			req.Timeslice = 3
		}
		if req.CPUSlices <= 0 {
			req.CPUSlices = 10
		}

		var s kernel.Scheduler
		switch req.Policy {
		case "priority-queue":
			s = sched.NewPriorityQueue(req.Timeslice, req.Remaining)
		case "cfs":
			s = sched.NewCFS(req.CPUSlices, req.Remaining)
		default:
			s = sched.NewRoundRobin(req.Timeslice, req.Remaining)
		}

		logs := processor.Run(s, demoScenario, processor.WithLogger(log))
		text := logfmt.Format(logs)

		id, err := store.Save(c.Request.Context(), text)
		if err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		sess := sessions.Default(c)
		if err := sessionSvc.SetLastRun(sess, id); err != nil {
			log.Warn("failed to remember last run", zap.Error(err))
		}

		c.JSON(http.StatusCreated, gin.H{"id": id})
	})

	r.GET("/api/runs", func(c *gin.Context) {
		ids, err := store.List(c.Request.Context())
		if err != nil {
			c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ids": ids})
	})

	r.GET("/api/runs/:id", func(c *gin.Context) {
		text, err := store.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, runlog.ErrNotFound) {
				status = http.StatusNotFound
			}
			c.Error(err)
			c.JSON(status, gin.H{"message": err.Error()})
			return
		}
		if err := sessionSvc.SetLastRun(sessions.Default(c), c.Param("id")); err != nil {
			log.Warn("failed to remember last run", zap.Error(err))
		}
		c.String(http.StatusOK, text)
	})

	r.GET("/api/runs/last", func(c *gin.Context) {
		sess := sessions.Default(c)
		id, ok := sessionSvc.LastRun(sess)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "no run viewed yet"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	addr := envOr("LISTEN_ADDR", ":8080")
	log.Info("listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func demoScenario(p *processor.Process) {
	p.Fork(func(child *processor.Process) {
		child.Exec()
		child.Exec()
		child.Wait(1)
	}, 0)
	p.Sleep(10)
	p.Signal(1)
	p.Exec()
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
