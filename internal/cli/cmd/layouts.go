package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/dockframe/internal/cli/styles"
	"github.com/bnema/dockframe/internal/domain/entity"
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "Manage stored floating layouts",
	Long:  `List, forget or clear the floating layouts persisted in the configured store.`,
}

var layoutsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored layouts",
	Args:  cobra.NoArgs,
	RunE:  runLayoutsList,
}

var layoutsForgetCmd = &cobra.Command{
	Use:   "forget <frame-id>...",
	Short: "Remove the stored layout of one or more frames",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLayoutsForget,
}

var layoutsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every stored layout",
	Args:  cobra.NoArgs,
	RunE:  runLayoutsClear,
}

func init() {
	rootCmd.AddCommand(layoutsCmd)
	layoutsCmd.AddCommand(layoutsListCmd)
	layoutsCmd.AddCommand(layoutsForgetCmd)
	layoutsCmd.AddCommand(layoutsClearCmd)
}

func runLayoutsList(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	uc, closeStore, err := a.OpenLayouts(a.Ctx())
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	entries, err := uc.List(a.Ctx())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), styles.NewLayoutsRenderer(a.Theme).RenderList(entries))
	return nil
}

func runLayoutsForget(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	uc, closeStore, err := a.OpenLayouts(a.Ctx())
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	renderer := styles.NewLayoutsRenderer(a.Theme)
	for _, arg := range args {
		id := entity.FrameID(arg)
		if err := uc.Forget(a.Ctx(), id); err != nil {
			return fmt.Errorf("forget %s: %w", id, err)
		}
		fmt.Fprint(cmd.OutOrStdout(), renderer.RenderForgotten(id))
	}
	return nil
}

func runLayoutsClear(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	uc, closeStore, err := a.OpenLayouts(a.Ctx())
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	n, err := uc.Clear(a.Ctx())
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), styles.NewLayoutsRenderer(a.Theme).RenderCleared(n))
	return nil
}
