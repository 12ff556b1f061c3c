package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Xunop/e-library/internal/config"
	"github.com/Xunop/e-library/internal/log"
	"github.com/Xunop/e-library/internal/server"
	"github.com/Xunop/e-library/internal/store"
	"github.com/Xunop/e-library/internal/store/db"
	"github.com/Xunop/e-library/internal/version"
)

var (
	configFile string
	v          = viper.New()

	rootCmd = &cobra.Command{
		Use:           "e-library",
		Short:         "e-library is a multilingual e-book link library",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := config.LoadConfig(v, configFile)
			if err != nil {
				return errors.Wrap(err, "failed to load config")
			}
			log.Init(opts)
			defer log.Sync()

			return run(opts)
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.GetCurrentVersion())
		},
	}
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "config file (toml, yaml or json)")
	flags.String("host", "", "host to listen on")
	flags.Int("port", 0, "port to listen on")
	flags.String("data", "", "data directory holding the database")
	flags.String("log-level", "", "log level: debug, info, warn or error")

	for key, name := range map[string]string{
		"host":      "host",
		"port":      "port",
		"data":      "data",
		"log_level": "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(versionCmd)
}

func run(opts *config.Options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := db.NewDB(opts.DSN)
	if err != nil {
		log.Error("Error connecting to database", zap.String("dsn", opts.DSN), zap.Error(err))
		return err
	}
	defer d.Close()

	if err := d.EnsureSchema(ctx); err != nil {
		log.Error("Error creating database schema", zap.String("dsn", opts.DSN), zap.Error(err))
		return err
	}

	s := store.NewStore(d.DB)
	if err := s.Ping(); err != nil {
		log.Error("Error pinging database", zap.Error(err))
		return err
	}

	srv, err := server.StartServer(opts, s)
	if err != nil {
		log.Error("Error creating server", zap.Error(err))
		return err
	}
	log.Info("Server started", zap.String("addr", srv.Addr), zap.String("version", version.GetCurrentVersion()), zap.String("data", opts.Data))

	<-ctx.Done()
	log.Info("Shutting down server")
	if err := server.Shutdown(srv, time.Duration(opts.ShutdownTimeout)*time.Second); err != nil {
		log.Error("Error shutting down server", zap.Error(err))
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
