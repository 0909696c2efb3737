package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bdsqqq/resource-pack-backporter/pkg/dlogger"
)

// params holds the CLI surface, populated by flags and viper defaults.
var params struct {
	verbose  bool
	noClear  bool
	logLevel string
}

// used to patch over calls to os.Exit() during test
var osExit = os.Exit

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "backport <input-dir> <output-dir>",
	Short: "Backport a conditional-model resource pack to the legacy format",
	Long: `Backport converts an item's conditional 3-D model description, a tree of
nested selectors keyed by render context, stored enchantment and component
presence, into the flat artifacts an older rendering pipeline understands:
predicate-ordered model overrides and legacy metadata-matching property files.
`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBackport(args[0], args[1])
	},
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		osExit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&params.verbose, "verbose", "v", false,
		"enable debug logging with console output")
	rootCmd.PersistentFlags().BoolVar(&params.noClear, "no-clear", false,
		"keep existing files in the output directory")
	rootCmd.PersistentFlags().StringVar(&params.logLevel, "log-level", "",
		"log level: debug, info, warn, error or none")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("log-level", dlogger.LogLevelInfo)
	if cfg := os.Getenv("BACKPORT_CONFIG"); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.backport")
		viper.SetConfigName("backport")
	}
	viper.SetEnvPrefix("backport")
	viper.AutomaticEnv()
	// A missing config file is fine; defaults apply.
	_ = viper.ReadInConfig()
}
