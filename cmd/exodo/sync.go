package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Veraticus/exodo/internal/cli"
	"github.com/Veraticus/exodo/internal/cloudsync"
	"github.com/Veraticus/exodo/internal/common"
	"github.com/Veraticus/exodo/internal/service"
)

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy data between the local database and the remote backend",
		Long: `Copy every collection between the local database and the configured remote
backend. Records are upserted by ID, so running a sync twice is harmless;
nothing is deleted on the receiving side.`,
	}

	push := &cobra.Command{
		Use:   "push",
		Short: "Upload local data to the remote backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd, true)
		},
	}
	pull := &cobra.Command{
		Use:   "pull",
		Short: "Download remote data into the local database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd, false)
		},
	}
	for _, c := range []*cobra.Command{push, pull} {
		c.Flags().Int("chunk-size", cloudsync.DefaultChunkSize, "Records per upsert call")
		c.Flags().Bool("no-progress", false, "Hide progress bars")
	}

	cmd.AddCommand(push, pull)
	return cmd
}

func runSync(cmd *cobra.Command, push bool) error {
	chunk, _ := cmd.Flags().GetInt("chunk-size")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Chunks already written stay in place; run the sync again to finish.")
	ctx := handler.HandleInterrupts(cmd.Context())

	sel, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sel.Close() }()

	if sel.Remote == nil {
		return common.NewUserError("remote backend is not configured or unreachable; set remote.url, remote.key and remote.user_id", common.ErrRemoteUnavailable)
	}

	var from, to service.Backend = sel.Local, sel.Remote
	direction := "Uploading"
	if !push {
		from, to = sel.Remote, sel.Local
		direction = "Downloading"
	}

	out := cmd.OutOrStdout()
	syncer := &cloudsync.Syncer{From: from, To: to, ChunkSize: chunk}
	if !noProgress && !jsonOutput() {
		syncer.Progress = func(table string, total int) cloudsync.Progress {
			return cli.NewProgressBar(cmd.ErrOrStderr(), total, fmt.Sprintf("%s %s %s", cli.SyncIcon, direction, table))
		}
	}

	rep, err := syncer.Run(ctx)
	if err != nil {
		if handler.WasInterrupted() || ctx.Err() != nil {
			return fmt.Errorf("sync interrupted after %d record(s): %w", rep.Written, err)
		}
		return fmt.Errorf("sync failed: %w", err)
	}

	return render(cmd, rep, func(w io.Writer) error {
		rows := make([][]string, 0, len(rep.Tables))
		for _, t := range rep.Tables {
			rows = append(rows, []string{t.Table, fmt.Sprint(t.Total), fmt.Sprint(t.Written), fmt.Sprint(t.FailedChunks)})
		}
		if err := printLine(w, cli.RenderTable([]string{"TABLE", "TOTAL", "WRITTEN", "FAILED CHUNKS"}, rows)); err != nil {
			return err
		}
		if rep.Failed > 0 {
			return printLine(out, cli.FormatWarning(fmt.Sprintf("%d chunk(s) failed; see the log and run the sync again", rep.Failed)))
		}
		return printLine(out, cli.FormatSuccess(fmt.Sprintf("Synced %d record(s)", rep.Written)))
	})
}
