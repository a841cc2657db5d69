package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"commitview/internal/api"
	"commitview/internal/config"
	"commitview/internal/diffview"
	"commitview/internal/ui"
)

const defaultDiffWidth = 160

func newDiffCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "diff owner/repo@sha file",
		Short: "Print the before/after columns of one file in a commit",
		Args:  cobra.ExactArgs(2),
		RunE:  runDiff,
	}
	cmd.Flags().IntP("width", "w", defaultDiffWidth, "Total width of both columns")
	cmd.Flags().Bool("pager", false, "Show the result in the ov pager")
	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	t, err := parseTarget(args[0])
	if err != nil {
		return err
	}
	if t.SHA == "" {
		return errors.New("diff needs a commit: owner/repo@sha")
	}

	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer setupLogging(cmd, cfg.Log).Close()

	client, err := api.NewClientFromConfig(cfg.API, nil)
	if err != nil {
		return err
	}
	content, err := client.GetFileDiff(cmd.Context(), t.Owner, t.Repo, t.SHA, args[1])
	if err != nil {
		return err
	}

	width, _ := cmd.Flags().GetInt("width")
	out := renderDiff(cfg.UI, diffview.Render(&content), width)

	if usePager, _ := cmd.Flags().GetBool("pager"); usePager {
		return ui.RunPager(out)
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

func renderDiff(settings config.UISettings, view diffview.SplitView, width int) string {
	frame := diffview.NewFrame(settings)
	// a tall terminal keeps every row in the body
	frame.SetSize(width, 1<<20)
	frame.SetView(view)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-*s   %s\n", (width-5)/2, view.Old.Title, view.New.Title))
	b.WriteString(frame.Body())
	b.WriteString("\n")
	return b.String()
}
