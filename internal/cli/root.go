// Package cli wires the kartrace commands together.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"kartrace/internal/config"
	"kartrace/internal/log"
)

const envPrefix = "KART"

// Version is stamped at build time.
var Version = "dev"

var cfgFile string

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "kartrace",
		Short:   "Top-down kart racing on editable tracks",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return log.InitLogger(config.Current.LogLevel, config.Current.LogFormat)
		},
		SilenceUsage: true,
	}
}

// Execute adds the extra commands (the desktop host lives outside this
// package) and runs the root command.
func Execute(extra ...*cobra.Command) {
	rootCmd.AddCommand(extra...)
	err := rootCmd.Execute()
	log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.kartrace.yml)")
	pf.StringVar(&config.Current.DB, "db", config.Current.DB,
		"SQLite results database, empty disables recording")
	pf.StringVar(&config.Current.LogLevel, "log-level", config.Current.LogLevel,
		"log level (debug, info, warn, error)")
	pf.StringVar(&config.Current.LogFormat, "log-format", config.Current.LogFormat,
		"log format (text, json)")
	config.AddRaceFlags(pf, &config.Current)

	rootCmd.AddCommand(NewSimCmd())
	rootCmd.AddCommand(NewPlotCmd())
	rootCmd.AddCommand(NewResultsCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".kartrace")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	bindFlags(rootCmd, viper.GetViper())
	for _, cmd := range rootCmd.Commands() {
		bindFlags(cmd, viper.GetViper())
	}
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --max-speed to KART_MAX_SPEED
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		if !f.Changed && v.IsSet(f.Name) {
			if err := cmd.Flags().Set(f.Name, flagValue(v.Get(f.Name))); err != nil {
				fmt.Fprintf(os.Stderr, "Could set flag value for %s: %v", f.Name, err)
			}
		}
	})
}

// flagValue renders a viper value the way pflag parses it. YAML lists
// become comma separated so slice flags accept them.
func flagValue(val any) string {
	if list, ok := val.([]any); ok {
		return strings.Join(lo.Map(list, func(x any, _ int) string {
			return fmt.Sprintf("%v", x)
		}), ",")
	}
	return fmt.Sprintf("%v", val)
}
