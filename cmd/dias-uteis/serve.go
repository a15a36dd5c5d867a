package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/username/dias-uteis/internal/auth"
	"github.com/username/dias-uteis/internal/config"
	"github.com/username/dias-uteis/internal/daemon"
	"github.com/username/dias-uteis/internal/holiday"
	"github.com/username/dias-uteis/internal/httpapi"
	"github.com/username/dias-uteis/internal/session"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	var addr string
	var tray bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive calendar over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("tray") {
				cfg.Server.SystemTray = tray
			}

			var creds *auth.Credentials
			if cfg.Auth.File != "" {
				creds, err = auth.LoadFile(cfg.Auth.File)
				if err != nil {
					return err
				}
			}
			authenticator := auth.NewAuthenticator(creds, logger)

			holidays := holiday.NewCalendar(logger)
			sessions := session.NewStore(holidays, session.Defaults{
				Year:          cfg.Calendar.Year,
				HoursPerDay:   cfg.Calendar.GetHoursPerDay(),
				MaxRangeYears: cfg.Calendar.GetMaxRangeYears(),
			}, logger)

			pages, err := httpapi.NewPages()
			if err != nil {
				return err
			}

			handler := httpapi.NewHandler(sessions, holidays, pages, logger)
			router := httpapi.NewRouter(handler, httpapi.RouterOptions{
				CORSOrigins: cfg.Server.CORSOrigins,
				Protect:     authenticator.Middleware,
				Logger:      logger,
			})

			server := &http.Server{
				Addr:         cfg.Server.Addr,
				Handler:      router,
				ReadTimeout:  cfg.Server.GetReadTimeout(),
				WriteTimeout: cfg.Server.GetWriteTimeout(),
			}

			logger.Info("Starting calendar server",
				zap.String("addr", cfg.Server.Addr),
				zap.Bool("auth", authenticator.Enabled()),
				zap.Bool("system_tray", cfg.Server.SystemTray))

			d := daemon.NewDaemon(server, sessions, daemon.Options{
				SweepInterval:  cfg.Server.GetSweepInterval(),
				SessionIdleTTL: cfg.Server.GetSessionIdleTTL(),
				SystemTray:     cfg.Server.SystemTray,
			}, logger)
			return d.Start()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&tray, "tray", false, "Show system tray icon (Windows only)")

	return cmd
}
