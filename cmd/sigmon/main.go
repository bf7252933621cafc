package main

import (
	"context"
	"flag"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/sigctl"
	"github.com/danmuck/sigctl/internal/config"
	"github.com/danmuck/sigctl/internal/observability"
)

var startedAt = time.Now()

// sigmon serves the protocol state and metrics of a demo workload that
// keeps entering protected regions, so interrupt behavior can be
// watched from a browser or scraped.
func main() {
	configPath := flag.String("config", "", "path to sigmon config.toml")
	flag.Parse()

	observability.InitLogger("sigmon")

	cfg := config.DefaultMonitorConfig()
	if *configPath != "" {
		loaded, err := config.LoadMonitorConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("load config")
		}
		cfg = loaded
	}

	if err := sigctl.Setup(); err != nil {
		log.Fatal().Err(err).Msg("sigctl setup")
	}
	go demoWorkload(time.Duration(cfg.DemoTickMS) * time.Millisecond)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CorsOrigins,
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(startedAt).String(),
			"service": "sigmon",
		})
	})
	r.GET("/state", func(c *gin.Context) {
		s := sigctl.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"depth":          s.Depth,
			"pending":        int(s.Pending),
			"blocked":        s.Blocked,
			"inside_handler": s.InsideHandler,
			"message":        s.Message,
			"occurred":       errString(sigctl.Occurred()),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	log.Info().Str("addr", cfg.ListenAddr).Msg("sigmon listening")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("serve")
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// demoWorkload holds a protected region open for most of every tick so
// incoming SIGINT/SIGALRM land inside one.
func demoWorkload(tick time.Duration) {
	for {
		err := sigctl.Protect("sigmon demo workload", func(ctx context.Context) error {
			deadline := time.Now().Add(tick)
			for time.Now().Before(deadline) {
				if err := sigctl.Check(); err != nil {
					return err
				}
				select {
				case <-ctx.Done():
				case <-time.After(tick / 10):
				}
			}
			return nil
		})
		if err != nil {
			log.Warn().Err(err).Msg("demo region interrupted")
		}
		time.Sleep(tick / 5)
	}
}
