package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dockframe/internal/cli/styles"
	"github.com/bnema/dockframe/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long:  `Show the active config file and generate its JSON schema.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file and layout store in use",
	RunE:  runConfigPath,
}

var schemaDir string

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print or write the config JSON schema",
	Long: `Print the JSON schema of config.toml to stdout, or write schema.json to
the directory given with --dir for editor completion.`,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSchemaCmd)
	configSchemaCmd.Flags().StringVar(&schemaDir, "dir", "", "write schema.json into this directory")
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	renderer := styles.NewConfigRenderer(a.Theme)
	backend := string(a.Config.Persistence.Backend)
	switch a.Config.Persistence.Backend {
	case config.BackendSQLite:
		backend += " " + a.Config.Persistence.SQLitePath
	case config.BackendRedis:
		backend += " " + a.Config.Persistence.RedisAddr
	}
	fmt.Fprint(cmd.OutOrStdout(), renderer.RenderConfigInfo(a.Manager.GetConfigFile(), backend))
	return nil
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	if schemaDir == "" {
		data, err := config.Schema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	path, err := config.GenerateSchemaFile(schemaDir)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), styles.NewConfigRenderer(styles.NewTheme()).RenderSchemaWritten(path))
	return nil
}
