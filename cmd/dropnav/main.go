package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/nicobailon/dropnav/internal/config"
	"github.com/nicobailon/dropnav/internal/deps"
	"github.com/nicobailon/dropnav/internal/history"
	"github.com/nicobailon/dropnav/internal/logging"
	"github.com/nicobailon/dropnav/internal/source"
	"github.com/nicobailon/dropnav/internal/tui"
	"github.com/nicobailon/dropnav/pkg/version"
)

var (
	execFlag    string
	virtualFlag bool
	titleFlag   string
	filterFlag  bool
	idFlag      string
	noHistory   bool
)

// errCancelled ends the program with status 130 and no output.
var errCancelled = errors.New("cancelled")

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errCancelled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dropnav [file]",
	Short: "Pick one item from a list with a keyboard-driven drop-down",
	Long: `dropnav shows a drop-down over the rows of a file, a command's output or
stdin and prints the value of the picked row to stdout.

Lines starting with "# " are group headers, lines starting with "~" are
disabled, and "value<TAB>label" shows label for value. YAML files may
nest items under headers.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.Flags().StringVarP(&execFlag, "exec", "e", "", "Read items from the output of a shell command")
	rootCmd.Flags().BoolVar(&virtualFlag, "virtual", false, "Always use a windowed list")
	rootCmd.Flags().StringVarP(&titleFlag, "title", "t", "", "Title shown above the list")
	rootCmd.Flags().BoolVarP(&filterFlag, "filter", "f", false, "Show a fuzzy filter input")
	rootCmd.Flags().StringVar(&idFlag, "id", "", "Registry key for the selection")
	rootCmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not preselect or record the last pick")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Configure(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile, JSON: cfg.LogJSON})
	return cfg, nil
}

func ensureDeps(commands ...string) error {
	missing := deps.Check(commands...)
	if len(missing) == 0 {
		return nil
	}
	for _, dep := range missing {
		fmt.Fprintf(os.Stderr, "Missing dependency: %s (%s)\n", dep.Name, deps.InstallHint(dep))
	}
	return fmt.Errorf("missing required dependencies")
}

// pickLoader chooses the item source. Piped stdin is used only when no
// file or command is given.
func pickLoader(args []string) (source.Loader, bool, error) {
	piped := !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd())
	switch {
	case execFlag != "" && len(args) > 0:
		return nil, false, fmt.Errorf("give either a file or --exec, not both")
	case execFlag != "":
		if err := ensureDeps("sh"); err != nil {
			return nil, false, err
		}
		wd, _ := os.Getwd()
		return source.ExecLoader{Command: execFlag, Dir: wd}, piped, nil
	case len(args) > 0:
		return source.FileLoader{Path: args[0]}, piped, nil
	case piped:
		return source.ReaderLoader{Name: "stdin", Reader: os.Stdin}, true, nil
	}
	return nil, false, fmt.Errorf("no items: pass a file, --exec, or pipe rows on stdin")
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loader, piped, err := pickLoader(args)
	if err != nil {
		return err
	}

	var store *history.Store
	if !noHistory {
		store, _ = history.Load()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var progOpts []tea.ProgramOption
	if piped {
		progOpts = append(progOpts, tea.WithInputTTY())
	}

	app := tui.New(cfg, loader, tui.Options{
		Title:   titleFlag,
		Filter:  filterFlag,
		Virtual: virtualFlag,
		ID:      idFlag,
		History: store,
	})
	result, err := app.Run(ctx, progOpts...)
	if err != nil {
		return err
	}
	if result == nil {
		return errCancelled
	}
	fmt.Println(result.Value)
	return nil
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the last pick of each item source",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			return err
		}
		store, err := history.Load()
		if err != nil {
			return err
		}
		forget, _ := cmd.Flags().GetString("clear")
		if forget != "" {
			store.Remove(forget)
			return store.Save()
		}
		limit, _ := cmd.Flags().GetInt("limit")
		entries := store.Recent(limit)
		if len(entries) == 0 {
			fmt.Println("No history yet.")
			return nil
		}
		for _, e := range entries {
			label := ""
			if e.Label != "" && e.Label != e.Value {
				label = " (" + e.Label + ")"
			}
			fmt.Printf(" %-30s %-20s%s  %s\n", e.Source, e.Value, label, formatAge(time.Since(e.LastAccess)))
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Version)
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Number of entries to show")
	historyCmd.Flags().String("clear", "", "Forget the last pick of a source")
}

func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	return fmt.Sprintf("%dd ago", int(d.Hours()/24))
}
