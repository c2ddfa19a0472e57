package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/superrepo/todosweep/internal/config"
	"github.com/superrepo/todosweep/internal/extract"
	"github.com/superrepo/todosweep/internal/gitmeta"
	"github.com/superrepo/todosweep/internal/report"
	"github.com/superrepo/todosweep/internal/repos"
	"github.com/superrepo/todosweep/internal/types"
	"github.com/superrepo/todosweep/internal/walker"
	"github.com/superrepo/todosweep/internal/worker"
)

var (
	scanRoot           string
	scanSelf           string
	scanRepos          string
	scanOut            string
	scanOutJSON        string
	scanMarkers        string
	scanIncludeExt     string
	scanExtraExclude   string
	scanMaxFileSize    int64
	scanNoRemoteLinks  bool
	scanBranch         string
	scanTimestamp      bool
	scanJobs           int
	scanFailOnCritical bool
)

var (
	summaryColor  = color.New(color.FgGreen)
	criticalColor = color.New(color.FgRed, color.Bold)
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan repositories and write the consolidated TODO report",
	Long: `Scan every sibling repository under the root for marker comments
(TODO, FIXME, BUG by default), classify each by criticality, and write
one deterministic Markdown dashboard.

The scan itself never fails because of what it finds: critical markers
are report content, not errors. Exit status is non-zero only when the
root cannot be enumerated or the report cannot be written. Use
--fail-on-critical to opt into CI gating on findings.

Examples:
  todosweep scan
  todosweep scan --root .. --out TODO.md
  todosweep scan --repos api,frontend --markers TODO,FIXME
  todosweep scan --out-json todos.json --fail-on-critical`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVar(&scanRoot, "root", "", "Root directory containing the repositories (default: parent directory)")
	scanCmd.Flags().StringVar(&scanSelf, "self", "", "Directory name to exclude from the scan (default: current directory name)")
	scanCmd.Flags().StringVar(&scanRepos, "repos", "", "Comma-separated repository names to scan (default: all siblings)")
	scanCmd.Flags().StringVar(&scanOut, "out", "", "Output Markdown path (default: TODO.md)")
	scanCmd.Flags().StringVar(&scanOutJSON, "out-json", "", "Optional JSON output path")
	scanCmd.Flags().StringVar(&scanMarkers, "markers", "", "Comma-separated markers to search for (default: TODO,FIXME,BUG)")
	scanCmd.Flags().StringVar(&scanIncludeExt, "include-ext", "", "Comma-separated file extensions to include")
	scanCmd.Flags().StringVar(&scanExtraExclude, "extra-exclude", "", "Comma-separated extra directories to exclude")
	scanCmd.Flags().Int64Var(&scanMaxFileSize, "max-file-size", 0, "Per-file size ceiling in bytes (default: 1 MiB)")
	scanCmd.Flags().BoolVar(&scanNoRemoteLinks, "no-remote-links", false, "Disable building remote links to lines")
	scanCmd.Flags().StringVar(&scanBranch, "branch", "", "Branch name for remote links (default: detected per repository)")
	scanCmd.Flags().BoolVar(&scanTimestamp, "timestamp", false, "Add a generation timestamp to the report (breaks byte-identical reruns)")
	scanCmd.Flags().IntVar(&scanJobs, "jobs", 0, "Per-file scan concurrency (default: number of CPUs)")
	scanCmd.Flags().BoolVar(&scanFailOnCritical, "fail-on-critical", false, "Exit non-zero when critical markers are found (CI gating)")
}

// scanFlagOverrides collects the scan flags into a config overlay. Unset
// flags stay at their zero values so the merge keeps lower-priority layers.
func scanFlagOverrides() *config.Config {
	return &config.Config{
		Root:             scanRoot,
		Self:             scanSelf,
		Repos:            splitFlagList(scanRepos),
		Out:              scanOut,
		OutJSON:          scanOutJSON,
		Markers:          splitFlagList(scanMarkers),
		IncludeExts:      splitFlagList(scanIncludeExt),
		ExtraExcludeDirs: splitFlagList(scanExtraExclude),
		MaxFileSize:      scanMaxFileSize,
		NoRemoteLinks:    scanNoRemoteLinks,
		Branch:           scanBranch,
		Timestamp:        scanTimestamp,
		Jobs:             scanJobs,
		FailOnCritical:   scanFailOnCritical,
		Verbose:          GetVerbose(),
	}
}

// splitFlagList parses a comma-separated flag value into trimmed entries.
func splitFlagList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(scanFlagOverrides())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if GetDryRun() {
		repoList, err := enumerate(cfg)
		if err != nil {
			return err
		}
		fmt.Printf("[dry-run] Would scan %d repositories under %s and write %s\n",
			len(repoList), cfg.Root, cfg.Out)
		return nil
	}

	rep, err := executeScan(cfg)
	if err != nil {
		return err
	}

	if err := report.NewMarkdownRenderer().WriteFile(cfg.Out, rep); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if cfg.OutJSON != "" {
		if err := report.WriteJSON(cfg.OutJSON, rep); err != nil {
			return fmt.Errorf("write json report: %w", err)
		}
	}

	//nolint:errcheck // console output
	summaryColor.Printf("Wrote %s (items: %d)\n", cfg.Out, rep.Total)
	if cfg.OutJSON != "" {
		fmt.Printf("Wrote %s\n", cfg.OutJSON)
	}
	if rep.HasCritical {
		classifier := extract.NewClassifier(cfg.Critical.Words, cfg.Critical.Window)
		//nolint:errcheck // console output
		criticalColor.Fprintf(os.Stderr, "Critical markers detected (keywords: %s)\n",
			strings.Join(classifier.Words(), ", "))
		if cfg.FailOnCritical {
			return types.ErrCriticalFound
		}
	}
	return nil
}

// enumerate lists and filters the repositories for a scan.
func enumerate(cfg *config.Config) ([]repos.Repo, error) {
	repoList, err := repos.List(cfg.Root, cfg.Self)
	if err != nil {
		return nil, err
	}
	return repos.Filter(repoList, cfg.Repos), nil
}

// executeScan runs the full pipeline: enumerate, walk, extract, classify,
// aggregate. Only enumeration failure is fatal; unreadable repositories and
// files are skipped. The report is returned unwritten so callers (and tests)
// decide what to do with it.
func executeScan(cfg *config.Config) (*types.Report, error) {
	kinds := types.DefaultKinds
	if len(cfg.Markers) > 0 {
		kinds = types.ParseKinds(strings.Join(cfg.Markers, ","))
	}

	extractor, err := extract.NewExtractor(kinds)
	if err != nil {
		return nil, fmt.Errorf("build extractor: %w", err)
	}
	classifier := extract.NewClassifier(cfg.Critical.Words, cfg.Critical.Window)
	policy := walker.NewPolicy(cfg.ExtraExcludeDirs, cfg.IncludeExts, cfg.MaxFileSize)

	repoList, err := enumerate(cfg)
	if err != nil {
		return nil, err
	}

	pool := newScanPool(cfg.Jobs)
	var all []types.Marker
	names := make([]string, 0, len(repoList))

	for _, repo := range repoList {
		names = append(names, repo.Name)

		var remote *gitmeta.Remote
		if !cfg.NoRemoteLinks {
			remote = gitmeta.Detect(repo.Path)
		}

		files, err := walker.Files(repo.Path, policy)
		if err != nil {
			// Passed enumeration but unreadable: skip the repository.
			VerbosePrintf("Skipping %s: %v\n", repo.Name, err)
			continue
		}
		VerbosePrintf("Scanning %s (%d files)\n", repo.Name, len(files))

		results := pool.Process(files, func(rel string) ([]types.Marker, error) {
			return scanFile(repo, rel, extractor, classifier, remote, cfg.Branch)
		})
		for _, res := range results {
			if res.Err != nil {
				continue // unreadable file: skip
			}
			all = append(all, res.Value...)
		}
	}

	rep := report.Aggregate(cfg.Root, names, kinds, all)
	if cfg.Timestamp {
		rep.GeneratedAt = time.Now()
	}
	return rep, nil
}

// newScanPool builds the per-file worker pool.
func newScanPool(jobs int) *worker.Pool[string, []types.Marker] {
	return worker.NewPool[string, []types.Marker](jobs)
}

// scanFile extracts, classifies, and links the markers of one file.
func scanFile(repo repos.Repo, rel string, extractor *extract.Extractor, classifier extract.Classifier, remote *gitmeta.Remote, branch string) ([]types.Marker, error) {
	f, err := os.Open(filepath.Join(repo.Path, filepath.FromSlash(rel)))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", rel, err)
	}
	defer func() {
		_ = f.Close() //nolint:errcheck // read-only, close best-effort
	}()

	found, err := extractor.Scan(f)
	if err != nil {
		return found, err
	}

	for i := range found {
		found[i].Repo = repo.Name
		found[i].File = rel
		found[i].Critical = classifier.Critical(found[i].Text)
		found[i].Link = remote.LineLink(branch, rel, found[i].Line)
	}
	return found, nil
}
