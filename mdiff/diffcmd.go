package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mdiff.dev/mdiff/engine"
	"mdiff.dev/mdiff/moved"
	"mdiff.dev/mdiff/render"
)

type options struct {
	unified   int
	context   int
	brief     bool
	allSpace  bool
	spaceChg  bool
	blanks    bool
	minimal   bool
	patience  bool
	histogram bool
	movedMode string
	movedWs   string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "mdiff [flags] FILE1 FILE2",
		Short:        "Compare two files line by line, flagging moved blocks",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, opts, args)
		},
	}

	fl := cmd.Flags()
	fl.IntVarP(&opts.unified, "unified", "u", 3, "output N lines of unified context")
	fl.IntVarP(&opts.context, "context", "c", 3, "output N lines of context")
	fl.Lookup("unified").NoOptDefVal = "3"
	fl.Lookup("context").NoOptDefVal = "3"
	fl.BoolVarP(&opts.brief, "brief", "q", false, "report only whether the files differ")
	fl.BoolVarP(&opts.allSpace, "ignore-all-space", "w", false, "ignore all whitespace")
	fl.BoolVarP(&opts.spaceChg, "ignore-space-change", "b", false, "ignore changes in the amount of whitespace")
	fl.BoolVarP(&opts.blanks, "ignore-blank-lines", "B", false, "ignore changes that consist of blank lines")
	fl.BoolVar(&opts.minimal, "minimal", false, "produce a minimal diff")
	fl.BoolVar(&opts.patience, "patience", false, "use the patience diff algorithm")
	fl.BoolVar(&opts.histogram, "histogram", false, "use the histogram diff algorithm")
	fl.StringVar(&opts.movedMode, "moved", "no", "detect moved blocks (no, plain, blocks, zebra, dimmed-zebra)")
	fl.Lookup("moved").NoOptDefVal = "plain"
	fl.StringVar(&opts.movedWs, "moved-ws", "", "whitespace handling for moved blocks (ignore-all, ignore-change, ignore-at-eol)")
	fl.BoolVarP(&opts.verbose, "verbose", "v", false, "log move detection diagnostics to stderr")
	return cmd
}

func runDiff(cmd *cobra.Command, opts *options, args []string) error {
	if opts.patience && opts.histogram {
		return fmt.Errorf("only one diff algorithm can be specified")
	}

	context := opts.unified
	if !cmd.Flags().Changed("unified") && cmd.Flags().Changed("context") {
		context = opts.context
	}
	if context < 0 {
		return fmt.Errorf("invalid number of context lines: %d", context)
	}

	mode, err := moved.ParseMode(opts.movedMode)
	if err != nil {
		return err
	}
	ws := moved.WsNone
	if opts.movedWs != "" {
		if ws, err = moved.ParseWsMode(opts.movedWs); err != nil {
			return err
		}
	}

	if opts.verbose {
		log.SetLevel(log.DebugLevel)
	}

	a, err := os.ReadFile(args[0])
	if err != nil {
		return &troubleError{fmt.Errorf("cannot read file %s: %v", args[0], err)}
	}
	b, err := os.ReadFile(args[1])
	if err != nil {
		return &troubleError{fmt.Errorf("cannot read file %s: %v", args[1], err)}
	}

	eopts := engine.Options{
		IgnoreAllSpace:    opts.allSpace,
		IgnoreSpaceChange: opts.spaceChg,
		IgnoreBlankLines:  opts.blanks,
		Minimal:           opts.minimal,
	}
	switch {
	case opts.patience:
		eopts.Algorithm = engine.Patience
	case opts.histogram:
		eopts.Algorithm = engine.Histogram
	}

	var mctx *moved.Context
	if mode != moved.ModeNo {
		mctx = moved.NewContext(mode, ws)
		if err := mctx.Collect(a, b, eopts); err != nil {
			return &troubleError{fmt.Errorf("collecting blocks for move detection: %v", err)}
		}
		log.WithFields(log.Fields{
			"mode":     mode,
			"deleted":  mctx.BlockCount(moved.Deleted),
			"inserted": mctx.BlockCount(moved.Inserted),
			"matched":  mctx.MatchedPairs(),
		}).Debug("collected moved blocks")
	}

	r := &render.Renderer{
		Out:     cmd.OutOrStdout(),
		OldName: args[0],
		NewName: args[1],
		Context: context,
		Brief:   opts.brief,
		Color:   stdoutIsTerminal(),
		Moved:   mctx,
	}
	differ, err := r.Run(a, b, eopts)
	if err != nil {
		return &troubleError{err}
	}
	if opts.brief && differ {
		fmt.Fprintf(cmd.OutOrStdout(), "Files %s and %s differ\n", args[0], args[1])
		exitCode = 1
	}
	return nil
}

func stdoutIsTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
