// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/depthguide/pathcheck/cmd/pathcheck/internal/clierr"
	"github.com/depthguide/pathcheck/internal/manifest"
	"github.com/depthguide/pathcheck/internal/report"
)

// NewRenameCommand returns the `pathcheck rename` command. It applies
// an explicit slug mapping to the manifest documents rather than doing
// textual find/replace, so partial-word matches cannot happen.
func NewRenameCommand() *cobra.Command {
	var (
		pathsRoot string
		pairs     []string
		mapFile   string
		write     bool
	)

	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rewrite topic slugs across learning-path manifests",
		Long: "Applies an old-slug to new-slug mapping to every manifest under the\n" +
			"paths root. Without --write it only reports what would change.",
		RunE: func(cmd *cobra.Command, args []string) error {
			mapping := manifest.Mapping{}
			if mapFile != "" {
				fromFile, err := manifest.LoadMappingFile(mapFile)
				if err != nil {
					return clierr.Wrap(report.ExitFatal, "loading mapping file", err)
				}
				mapping = fromFile
			}
			fromPairs, err := manifest.ParsePairs(pairs)
			if err != nil {
				return clierr.Wrap(report.ExitFatal, "parsing --map", err)
			}
			for old, repl := range fromPairs {
				mapping[old] = repl
			}
			if len(mapping) == 0 {
				return clierr.New(report.ExitFatal, "no mapping given (use --map or --map-file)")
			}

			files, err := manifestFiles(pathsRoot)
			if err != nil {
				return clierr.Wrap(report.ExitFatal, "listing manifests", err)
			}

			total := 0
			for _, f := range files {
				changed, err := manifest.RewriteFile(f, mapping, write)
				if err != nil {
					return clierr.Wrap(report.ExitFatal, "rewriting "+f, err)
				}
				if changed > 0 {
					total += changed
					verb := "would rewrite"
					if write {
						verb = "rewrote"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %d step(s)\n", f, verb, changed)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d step(s) affected across %d manifest(s)\n", total, len(files))
			return nil
		},
	}

	cmd.Flags().StringVar(&pathsRoot, "paths-root", "learning-paths/", "directory of learning-path manifests")
	cmd.Flags().StringArrayVar(&pairs, "map", nil, "slug mapping as old=new (repeatable)")
	cmd.Flags().StringVar(&mapFile, "map-file", "", "YAML file of old: new slug mappings")
	cmd.Flags().BoolVar(&write, "write", false, "persist rewrites to disk")

	return cmd
}

func manifestFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".json", ".yaml", ".yml":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
