package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bookward/resources"
	"github.com/bookward/resources/fsstore"
)

var rootCmd = &cobra.Command{
	Use:   "resq",
	Short: "Resource store query tool",
	Long:  "CLI for inspecting and reading resources from a filesystem-backed store.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/resq/config.yaml)")
	rootCmd.PersistentFlags().String("root", "", "store root directory (default: current directory)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfg := rootCmd.PersistentFlags().Lookup("config").Value.String(); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("RESQ")
	viper.AutomaticEnv()
	viper.SetDefault("root", ".")

	viper.ReadInConfig()

	if viper.GetBool("verbose") {
		if logger, err := zap.NewDevelopment(); err == nil {
			resources.SetLogger(logger)
		}
	}
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "resq")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "resq")
	}
	return ".resq"
}

// openStore mounts a store on the configured root directory.
func openStore() (*fsstore.Store, error) {
	store, err := fsstore.New(viper.GetString("root"))
	if err != nil {
		return nil, err
	}
	if !store.IsAvailable() {
		return nil, errors.New("store root does not exist: " + viper.GetString("root"))
	}
	return store, nil
}
