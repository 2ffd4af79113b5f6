//go:build linux

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tracekit/nvtrace/pkg/board"
	"github.com/tracekit/nvtrace/pkg/profiler"
)

type opts struct {
	boardPath string
	outPath   string
	duration  time.Duration
	fastHz    uint32
	mediumHz  uint32
	slowHz    uint32
	logLevel  string
	dashboard bool
}

func main() {
	var o opts

	root := &cobra.Command{
		Use:   "nvprofiler",
		Short: "High-frequency GPU/CPU/EMC/power/thermal profiler for Jetson Orin boards",
		Long: `nvprofiler samples GPU load, CPU utilization, EMC utilization, power-rail
voltage/current/power, RAM usage, and thermal zones at up to kilohertz rates
and writes a single self-describing binary trace file.

* GitHub: https://github.com/tracekit/nvtrace`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), o)
		},
	}

	root.Flags().StringVar(&o.boardPath, "board", "", "path to a board YAML description (required)")
	root.Flags().StringVarP(&o.outPath, "out", "o", "trace.bin", "output trace file path")
	root.Flags().DurationVarP(&o.duration, "duration", "d", 0, "how long to profile (0 = until Ctrl-C)")
	root.Flags().Uint32Var(&o.fastHz, "fast-hz", 1000, "fast-tier sampling rate")
	root.Flags().Uint32Var(&o.mediumHz, "medium-hz", 100, "medium-tier sampling rate")
	root.Flags().Uint32Var(&o.slowHz, "slow-hz", 10, "slow-tier sampling rate")
	root.Flags().StringVar(&o.logLevel, "log-level", "info", "debug, info, warn, or error")
	root.Flags().BoolVar(&o.dashboard, "ui", false, "show a live terminal dashboard while profiling")
	_ = root.MarkFlagRequired("board")

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, o opts) error {
	cfg, err := board.Load(o.boardPath)
	if err != nil {
		return fmt.Errorf("load board: %w", err)
	}

	printHostBanner(cfg)

	logCfg := profiler.LogConfig{Level: o.logLevel, Pretty: true, Output: os.Stderr}

	p, err := profiler.Open(o.outPath, cfg, o.fastHz, o.mediumHz, o.slowHz, logCfg)
	if err != nil {
		return fmt.Errorf("open profiler: %w", err)
	}
	defer p.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if o.dashboard {
		if err := runDashboard(ctx, o, p); err != nil {
			return err
		}
		return p.Close()
	}
	if err := runPlain(ctx, o, p); err != nil {
		return err
	}
	return p.Close()
}

func runPlain(ctx context.Context, o opts, p *profiler.Profiler) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ELAPSED\tFAST\tMEDIUM\tSLOW\tSYNC\tOVERFLOW")

	var deadline <-chan time.Time
	if o.duration > 0 {
		t := time.NewTimer(o.duration)
		defer t.Stop()
		deadline = t.C
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return printFinalStatus(tw, p)
		case <-deadline:
			return printFinalStatus(tw, p)
		case <-ticker.C:
			st := p.Status()
			overflow := st.FastOverflow + st.MediumOverflow + st.SlowOverflow + st.SyncOverflow
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\n",
				time.Since(start).Round(time.Second), st.FastSamples, st.MediumSamples, st.SlowSamples, st.SyncPoints, overflow)
			tw.Flush()
		}
	}
}

func printFinalStatus(tw *tabwriter.Writer, p *profiler.Profiler) error {
	st := p.Status()
	fmt.Fprintf(tw, "final\t%d\t%d\t%d\t%d\t%d\n",
		st.FastSamples, st.MediumSamples, st.SlowSamples, st.SyncPoints,
		st.FastOverflow+st.MediumOverflow+st.SlowOverflow+st.SyncOverflow)
	tw.Flush()
	return nil
}
