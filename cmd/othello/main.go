package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/othello/internal/config"
	"github.com/iamasit07/othello/internal/repository/file"
	"github.com/iamasit07/othello/internal/repository/redis"
	"github.com/iamasit07/othello/internal/service/game"
	"github.com/iamasit07/othello/internal/transport/cli"
	transportHttp "github.com/iamasit07/othello/internal/transport/http"
	"github.com/iamasit07/othello/internal/transport/websocket"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	help := flag.Bool("help", false, "print the rules and commands")
	flag.Parse()
	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(1)
	}
	if *help {
		cli.PrintHelp(os.Stdout)
		return
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found")
	}

	cfg := config.LoadConfig()
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("value", cfg.LogLevel).Msg("invalid LOG_LEVEL, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Save store: Redis when configured and reachable, files otherwise
	var store game.SaveStore = file.NewStore(cfg.SaveDir)
	if cfg.SaveBackend == config.BackendRedis {
		client, err := redis.Connect(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("redis setup failed")
		}
		if client != nil {
			cache := redis.NewRedisCache(client)
			defer cache.Close()
			store = redis.NewSaveStore(cache, 0)
		}
	}

	// 2. Game controller and its freeze clock
	ctrl := game.NewController(store, cfg.TickInterval,
		game.WithFreezeRange(game.FreezeRange{
			Min:        cfg.FreezeMin,
			MaxInit:    cfg.FreezeMaxInit,
			MaxPersist: cfg.FreezeMaxPersist,
		}),
	)
	ctrl.Start(ctx)
	defer ctrl.Close()

	// 3. Optional spectator server
	var srv *http.Server
	connManager := websocket.NewConnectionManager()
	if cfg.SpectatorAddr != "" {
		gin.SetMode(gin.ReleaseMode)
		ctrl.Subscribe(connManager)
		srv = &http.Server{
			Addr:    cfg.SpectatorAddr,
			Handler: transportHttp.NewRouter(ctrl, connManager, cfg.SpectatorOrigins),
		}
		go func() {
			log.Info().Str("addr", cfg.SpectatorAddr).Msg("spectator server starting")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("spectator server failed")
			}
		}()
	}

	// 4. Console
	repl := cli.NewREPL(ctrl, os.Stdin, os.Stdout, cfg.DefaultBoardSize)
	done := make(chan error, 1)
	go func() { done <- repl.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			log.Error().Err(err).Msg("console stopped")
		}
	case <-ctx.Done():
	}

	if srv != nil {
		connManager.CloseAll("game closed")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("spectator server forced to shutdown")
		}
	}
	log.Debug().Msg("exited")
}
