package commands

import (
	"fmt"

	"github.com/health-center-lookup/internal/dataset"
	"github.com/spf13/cobra"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Audit the dataset",
	Long:  "Print the load report and the pairs of center names that look like the same center.",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "exit with an error when near-duplicates are found")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	engine, err := openEngine(cfg, logger)
	if err != nil {
		return err
	}

	ds := engine.Dataset()
	w := cmd.OutOrStdout()
	r := ds.Report
	fmt.Fprintf(w, "source:     %s\n", cfg.Data.Path)
	fmt.Fprintf(w, "strategy:   %s\n", r.Strategy)
	fmt.Fprintf(w, "rows:       %d\n", r.Rows)
	fmt.Fprintf(w, "dropped:    %d\n", r.Dropped)
	fmt.Fprintf(w, "duplicates: %d\n", r.Duplicates)
	fmt.Fprintf(w, "kept:       %d\n", r.Kept)
	fmt.Fprintf(w, "districts:  %d\n", len(ds.Vocabulary.Districts))

	opts := dataset.QualityOptions{
		MaxDistance:    cfg.Quality.MaxDistance,
		MinJaroWinkler: cfg.Quality.MinJaroWinkler,
	}
	pairs := ds.NearDuplicateNames(opts)
	fmt.Fprintf(w, "near-duplicate names: %d\n", len(pairs))
	for _, p := range pairs {
		fmt.Fprintf(w, "  %q ~ %q (distance %d, jaro-winkler %.3f)\n", p.First, p.Second, p.Distance, p.JaroWinkler)
	}

	if checkStrict && len(pairs) > 0 {
		return fmt.Errorf("%d near-duplicate center names", len(pairs))
	}
	return nil
}
