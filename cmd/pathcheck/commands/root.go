// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands contains the Cobra commands for the pathcheck CLI.
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd constructs the pathcheck root command. The root itself
// runs the validation pass: a single command with no required flags,
// safe to drop into a non-interactive CI step.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("PATHCHECK_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:   "pathcheck",
		Short: "Validate learning-path references against the content corpus",
		Long: "pathcheck walks every learning-path manifest, resolves each referenced\n" +
			"(topic, depth) page and topic metadata file against the trees on disk,\n" +
			"and reports broken references. Exit code 0 means no blocking invalid\n" +
			"references; 1 means at least one; 2 means a fatal error.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runValidate,
	}

	viper.SetEnvPrefix("PATHCHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	cmd.Flags().String("content-root", "content/", "root of the content tree")
	cmd.Flags().String("metadata-root", "metadata/topics/", "root of the topic metadata tree")
	cmd.Flags().String("paths-root", "learning-paths/", "directory of learning-path manifests")
	cmd.Flags().String("format", "text", "report format (text or json)")
	_ = viper.BindPFlag("content-root", cmd.Flags().Lookup("content-root"))
	_ = viper.BindPFlag("metadata-root", cmd.Flags().Lookup("metadata-root"))
	_ = viper.BindPFlag("paths-root", cmd.Flags().Lookup("paths-root"))
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of pathcheck",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pathcheck version %s\n", version)
		},
	})
	cmd.AddCommand(NewRenameCommand())

	return cmd
}
