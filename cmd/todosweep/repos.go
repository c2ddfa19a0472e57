package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/superrepo/todosweep/internal/config"
	"github.com/superrepo/todosweep/internal/gitmeta"
	"github.com/superrepo/todosweep/internal/report"
)

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "List the repositories a scan would cover",
	Long: `List the sibling repositories under the configured root, in the order
the scan visits them. Useful for checking the enumeration rules (self
exclusion, version-control detection) before running a scan.`,
	Args: cobra.NoArgs,
	RunE: runRepos,
}

func init() {
	rootCmd.AddCommand(reposCmd)
	reposCmd.Flags().StringVar(&scanRoot, "root", "", "Root directory containing the repositories (default: parent directory)")
	reposCmd.Flags().StringVar(&scanSelf, "self", "", "Directory name to exclude (default: current directory name)")
}

func runRepos(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(&config.Config{Root: scanRoot, Self: scanSelf, Verbose: GetVerbose()})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	repoList, err := enumerate(cfg)
	if err != nil {
		return err
	}
	if len(repoList) == 0 {
		fmt.Printf("No repositories found under %s\n", cfg.Root)
		return nil
	}

	table := report.NewTable(os.Stdout, "NAME", "PATH", "REMOTE")
	for _, repo := range repoList {
		remoteCol := "-"
		if remote := gitmeta.Detect(repo.Path); remote != nil {
			remoteCol = remote.Host + "/" + remote.OrgRepo
		}
		table.AddRow(repo.Name, repo.Path, remoteCol)
	}
	return table.Render()
}
