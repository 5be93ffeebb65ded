package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"declscope/internal/index"
)

var scanQuiet bool

// scanCmd represents the scan command.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Extract all exported declarations and print them as JSON",
	Long: `Run one extraction pass over the configured source tree and print every
exported declaration to stdout as JSON. Useful for piping into jq or for
inspecting what the MCP server will serve.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVarP(&scanQuiet, "quiet", "q", false, "suppress the progress bar")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if scanQuiet {
			return
		}
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("Parsing files"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
			)
		}
		_ = bar.Set(done)
	}

	engine := newEngine(cfg, log, index.WithProgress(progress))

	decls, err := engine.ExtractAll(ctx)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(decls); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
