package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sigseek/sigseek"
	"github.com/sigseek/sigseek/pkg/signature"
	"github.com/sigseek/sigseek/pkg/types"
)

var (
	scanSignaturesPath string
	scanWindowSize     int
	scanCacheCapacity  int
	scanBackwards      bool
	scanAll            bool
	scanFrom           int64
	scanTo             int64
	scanMaxInMemory    int64
)

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Scan a file for byte signatures",
	Long: `Scan a binary file for byte signatures from the builtin catalogue or a
custom YAML catalogue. Small files are scanned in memory through the fast
array path; larger files stream through the windowed reader.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanSignaturesPath, "signatures", "", "Path to a custom signature catalogue (YAML)")
	scanCmd.Flags().IntVar(&scanWindowSize, "window-size", 0, "Reader window size in bytes (default 4096)")
	scanCmd.Flags().IntVar(&scanCacheCapacity, "cache-capacity", 0, "Windows retained by the reader cache (default 32)")
	scanCmd.Flags().BoolVar(&scanBackwards, "backwards", false, "Search from the end of the file towards the start")
	scanCmd.Flags().BoolVar(&scanAll, "all", false, "Report every match instead of only the first")
	scanCmd.Flags().Int64Var(&scanFrom, "from", 0, "First position to search from")
	scanCmd.Flags().Int64Var(&scanTo, "to", -1, "Last position to search to (-1 = end of file)")
	scanCmd.Flags().Int64Var(&scanMaxInMemory, "max-in-memory", 16*1024*1024, "Files up to this size are scanned in memory")
}

func runScan(cmd *cobra.Command, args []string) error {
	target := args[0]

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("target does not exist: %s", target)
	}

	signatures, err := loadCatalogue(scanSignaturesPath)
	if err != nil {
		return fmt.Errorf("loading signatures: %w", err)
	}
	patterns, err := signature.Patterns(signatures)
	if err != nil {
		return fmt.Errorf("loading signatures: %w", err)
	}

	searcher, err := sigseek.NewSearcher(patterns)
	if err != nil {
		return fmt.Errorf("creating searcher: %w", err)
	}

	var results []types.SearchResult
	if info.Size() <= scanMaxInMemory {
		results, err = scanInMemory(searcher, target)
	} else {
		results, err = scanWindowed(searcher, target)
	}
	if err != nil {
		return fmt.Errorf("scanning %s: %w", target, err)
	}

	return report(cmd, target, results)
}

// scanInMemory reads the whole file and uses the array search path,
// narrowing the pattern set with the Aho-Corasick prefilter first.
func scanInMemory(searcher *sigseek.Searcher, target string) ([]types.SearchResult, error) {
	content, err := os.ReadFile(target)
	if err != nil {
		return nil, err
	}

	candidates := searcher.Contains(content)
	if len(candidates) == 0 {
		return types.NoResults(), nil
	}
	narrowed, err := sigseek.NewSearcher(candidates)
	if err != nil {
		return nil, err
	}

	from, to := searchBounds(int64(len(content)))
	switch {
	case scanAll:
		return narrowed.FindAll(content, from, to)
	case scanBackwards:
		return narrowed.SearchBackwards(content, to, from)
	default:
		return narrowed.SearchForwards(content, from, to)
	}
}

// scanWindowed streams the file through a windowed reader.
func scanWindowed(searcher *sigseek.Searcher, target string) ([]types.SearchResult, error) {
	var opts []sigseek.Option
	if scanWindowSize > 0 {
		opts = append(opts, sigseek.WithWindowSize(scanWindowSize))
	}
	if scanCacheCapacity > 0 {
		opts = append(opts, sigseek.WithCacheCapacity(scanCacheCapacity))
	}

	rd, err := sigseek.NewFileReader(target, opts...)
	if err != nil {
		return nil, err
	}
	defer rd.Close()

	from, to := searchBounds(rd.Length())
	switch {
	case scanAll:
		return searcher.FindAllReader(rd, from, to)
	case scanBackwards:
		return searcher.SearchReaderBackwards(rd, to, from)
	default:
		return searcher.SearchReaderForwards(rd, from, to)
	}
}

func searchBounds(length int64) (from, to int64) {
	from = scanFrom
	to = scanTo
	if to < 0 || to >= length {
		to = length - 1
	}
	return from, to
}

func report(cmd *cobra.Command, target string, results []types.SearchResult) error {
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(out, "%s: no signatures found\n", target)
		}
		return nil
	}

	idColor := color.New(color.FgCyan)
	offsetColor := color.New(color.FgYellow)
	for _, r := range results {
		fmt.Fprintf(out, "%s  %s  %s [%d:%d)\n",
			offsetColor.Sprintf("%10d", r.Start),
			idColor.Sprint(r.Pattern.ID),
			r.Pattern.Name, r.Start, r.End)
	}
	if !quiet {
		fmt.Fprintf(out, "\n%d match(es) in %s\n", len(results), target)
	}
	return nil
}
