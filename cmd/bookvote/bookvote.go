package bookvote

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dasdy/bookvote/client"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile     string
	baseURL     string
	csrfToken   string
	csrfHeader  string
	timeout     time.Duration
	storagePath string
	noJournal   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bookvote",
	Short: "Vote on bookmarks from the terminal",
	Long: `Bookvote toggles up and down votes on listed bookmarks and sends them to the
bookmarks server, showing the rating it returns. Every submission is kept in a local
journal so that the vote indicators survive restarts.`,
	PersistentPreRun: bindFlags,
	SilenceUsage:     true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.bookvote.toml)")
	flags.StringVarP(&baseURL, "base-url", "u", "http://localhost:5000", "Address of the bookmarks server")
	flags.StringVar(&csrfToken, "csrf-token", "", "CSRF token attached to state-changing requests")
	flags.StringVar(&csrfHeader, "csrf-header", client.DefaultCSRFHeader, "Header carrying the CSRF token")
	flags.DurationVar(&timeout, "timeout", client.DefaultTimeout, "Timeout of a single vote request")
	flags.StringVarP(&storagePath, "storage", "s", "./votes.sqlite", "Path of the vote journal")
	flags.BoolVar(&noJournal, "no-journal", false, "If provided, votes are not journaled and indicators start inactive")
}

func initConfig() {
	if cfgFile != "" {
		slog.Debug("Using config file", "path", cfgFile)
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".bookvote" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("toml")
		viper.SetConfigName(".bookvote")
	}
	// BOOKVOTE_CSRFTOKEN, BOOKVOTE_BASEURL, ...
	viper.SetEnvPrefix("bookvote")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			createExampleConfig()
		} else {
			slog.Error("Error reading config file", "error", err)
			os.Exit(1)
		}
	}
}

func createExampleConfig() {
	exampleConfig := `
baseUrl = "http://localhost:5000"
csrfToken = ""
storage = "./votes.sqlite"
`
	configPath := "./.bookvote.toml"

	err := os.WriteFile(configPath, []byte(exampleConfig), 0o600)
	if err != nil {
		slog.Warn("Could not create example config file", "error", err)

		return
	}

	slog.Info("Example config file created", "path", configPath)
}

// set values to the PFlag variables from config, if they are set. Priority is still given to explicitly provided CLI flags.
func bindFlags(cmd *cobra.Command, _ []string) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// If using camelCase in the config file, replace hyphens with a camelCased string.
		// Since viper does case-insensitive comparisons, we don't need to bother fixing the case, and only need to remove the hyphens.
		configName := strings.ReplaceAll(f.Name, "-", "")

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && viper.IsSet(configName) {
			val := viper.Get(configName)

			err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val))
			if err != nil {
				slog.Error("Error setting flag from config", "flag", f.Name, "error", err)
				panic(err)
			}

			slog.Debug("Flag set to config value", "flag", f.Name, "config", configName)
		}
	})
}
