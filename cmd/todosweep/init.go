package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/superrepo/todosweep/embedded"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter .todosweep/config.yaml",
	Long: `Set up the current directory for todosweep by writing a commented
starter config to .todosweep/config.yaml.

Run it from the directory that sits next to your repositories. An
existing config is never overwritten unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	dir := filepath.Join(cwd, ".todosweep")
	path := filepath.Join(dir, "config.yaml")

	if _, err := os.Stat(path); err == nil && !initForce {
		fmt.Printf("%s already exists (use --force to overwrite)\n", path)
		return nil
	}

	if GetDryRun() {
		fmt.Printf("[dry-run] Would write %s\n", path)
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, embedded.ConfigTemplate, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}
