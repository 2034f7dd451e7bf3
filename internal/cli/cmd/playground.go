package cmd

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/dockframe/internal/bootstrap"
	"github.com/bnema/dockframe/internal/cli/model"
	"github.com/bnema/dockframe/internal/infrastructure/persistence/memory"
	"github.com/bnema/dockframe/internal/logging"
)

var playgroundPersist bool

var playgroundCmd = &cobra.Command{
	Use:   "playground",
	Short: "Drive frames from the terminal",
	Long: `Open a terminal canvas running the real frame manager. Add frames, then
detach, dock, maximize, move and throw them from the keyboard.

Layouts are kept in memory unless --persist is given, in which case the
configured store is used.`,
	Args: cobra.NoArgs,
	RunE: runPlayground,
}

func init() {
	rootCmd.AddCommand(playgroundCmd)
	playgroundCmd.Flags().BoolVar(&playgroundPersist, "persist", false, "store layouts in the configured backend")
}

func runPlayground(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	// The TUI owns the terminal; keep log output off it.
	ctx, cancel := context.WithCancel(logging.WithContext(a.Ctx(), logging.NewFromConfigValues("disabled", "console")))
	defer cancel()

	opts := bootstrap.Options{Config: a.Config}
	if !playgroundPersist {
		opts.Store = memory.NewKVStore()
	}
	rt, err := bootstrap.NewRuntime(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = rt.Run(ctx)
	}()

	p := tea.NewProgram(model.NewPlaygroundModel(ctx, rt, a.Theme), tea.WithAltScreen())
	_, err = p.Run()

	cancel()
	wg.Wait()
	return err
}
