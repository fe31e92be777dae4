package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"sited"
	"sited/config"
)

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: time.DateTime,
	})
	logrus.SetOutput(os.Stdout)
}

func main() {
	var cmd = &cobra.Command{Use: "sited"}
	var f flags

	cmd.PersistentFlags().StringVar(&f.configPath, "config", "config/config.yaml", "path to a config.yaml file")
	cmd.PersistentFlags().BoolVar(&f.debug, "debug", false, "verbose error pages and template auto-reload")
	cmd.PersistentFlags().StringVar(&f.listen, "listen", "", "address to listen on, overrides http.listen")

	mustReadConfig := func(c *cobra.Command) *config.Config {
		f.configSet = c.Flags().Changed("config")
		f.debugSet = c.Flags().Changed("debug")

		cfg, err := f.readConfig()
		if err != nil {
			logrus.Fatalln(err)
		}
		if cfg.Debug {
			logrus.SetLevel(logrus.DebugLevel)
		}
		return cfg
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Runs a server",
		Long:  `Serves the index page and the static directory until interrupted`,
		Run: func(c *cobra.Command, args []string) {
			// Handle interrupt signals
			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

			config := mustReadConfig(c)
			d := server.New(config)

			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				<-interrupt
				cancel()
			}()
			if err := d.Run(ctx); err != nil {
				logrus.Fatal(err)
			}
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Checks the site layout",
		Long:  "Verifies that the templates and static directories exist and the index template parses",
		Run: func(c *cobra.Command, args []string) {
			config := mustReadConfig(c)
			if err := server.New(config).Check(); err != nil {
				logrus.Fatal(err)
			}
			logrus.Info("Site layout is valid")
		},
	})

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// flags holds the command line overrides. They win over the environment,
// which wins over the config file.
type flags struct {
	configPath string
	configSet  bool
	debug      bool
	debugSet   bool
	listen     string
}

func (f *flags) readConfig() (*config.Config, error) {
	if f.configPath == "" {
		return nil, fmt.Errorf("--config required")
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("Failed to load .env, err=%v", err)
	}

	cfg, err := config.Load(f.configPath, f.configSet)
	if err != nil {
		return nil, err
	}
	if f.debugSet {
		cfg.Debug = f.debug
	}
	if f.listen != "" {
		cfg.Http.Listen = f.listen
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
