package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config to the user config directory",
	Long: `Write the built-in default config to
$XDG_CONFIG_HOME/blockfall/blocks.yaml. An existing file is kept.`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		path, err := config.WriteUserConfig()
		if err != nil {
			fail("%v", err)
		}
		fmt.Println(path)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective config after flags are applied",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		cfg, err := loadConfig()
		if err != nil {
			fail("%v", err)
		}
		out, err := config.Marshal(cfg)
		if err != nil {
			fail("%v", err)
		}
		if path := config.UserConfigPath(); path != "" && flagConfig == "" {
			fmt.Printf("# loaded from %s\n", path)
		}
		fmt.Print(string(out))
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
