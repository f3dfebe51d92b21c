package main

import (
	"log"

	"github.com/fadilmartias/resume-matcher/internal/config"
	"github.com/fadilmartias/resume-matcher/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const app = "resume-matcher"

var rootCmd = &cobra.Command{
	Use:           app,
	Short:         "resume-matcher stores a resume, rewrites it for a job and ranks job postings against it",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

// Execute runs the root command. Without a subcommand the HTTP server starts.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		log.Println(err)
	}
	return err
}

func init() {
	cobra.OnInitialize(loadDotEnv)

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}
}

// bootstrap builds the logger and the configuration shared by every command.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}
	l, err := logger.New(cfg.App.JSONLog, cfg.App.Debug)
	if err != nil {
		return nil, nil, err
	}
	return cfg, l, nil
}
