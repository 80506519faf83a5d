package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iafilius/BenchmarkPlotter/src/config"
	"github.com/iafilius/BenchmarkPlotter/src/logging"
	"github.com/iafilius/BenchmarkPlotter/src/render"
	"github.com/iafilius/BenchmarkPlotter/src/speedup"
)

// cliFlags holds raw flag values. Only flags the user set override the
// options file.
type cliFlags struct {
	configPath string
	opts       config.Options
}

func newRootCmd() *cobra.Command {
	f := &cliFlags{opts: config.Defaults()}
	root := &cobra.Command{
		Use:           "benchplot",
		Short:         "Render benchmark CSV results as PNG charts",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "YAML options file")
	pf.StringVar(&f.opts.LogLevel, "log-level", f.opts.LogLevel, "log level: debug, info, warn, error")

	root.AddCommand(newRenderCmd(f), newSpeedupCmd(f))
	return root
}

func newRenderCmd(f *cliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <csv_file>",
		Short: "Draw the chart set for a thread_scaling or workload CSV",
		Long: `Draw the chart set for one benchmark CSV. The file name selects the set:
names containing "scaling" get speedup, efficiency, time and comparison
charts; names containing "workload" get speedup, time and efficiency
charts. Charts go to <dir of csv>/plots unless --out-dir is given.`,
		Args: withUsage(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			res, err := render.Render(args[0], opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range res.Charts {
				fmt.Fprintf(out, "✓ Chart saved to: %s\n", p)
			}
			if res.Summary != "" {
				fmt.Fprintf(out, "✓ Summary saved to: %s\n", res.Summary)
			}
			fmt.Fprintf(out, "✓ %d %s charts written to %s\n", len(res.Charts), res.Mode, res.OutDir)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.opts.OutDir, "out-dir", "", "output directory (default <dir of csv>/plots)")
	fl.IntVar(&f.opts.Width, "width", f.opts.Width, "chart width in pixels")
	fl.IntVar(&f.opts.Height, "height", f.opts.Height, "chart height in pixels")
	fl.BoolVar(&f.opts.Summary, "summary", false, "also write <stem>_summary.txt")
	return cmd
}

func newSpeedupCmd(f *cliFlags) *cobra.Command {
	var ngram, threads int
	cmd := &cobra.Command{
		Use:   "speedup <ngram> <threads>",
		Short: "Draw speedup-only charts for thread_scaling_<n>gram.csv and workload_<n>gram_t<threads>.csv",
		Args: withUsage(func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(2)(cmd, args); err != nil {
				return err
			}
			var err error
			if ngram, err = positiveInt("ngram", args[0]); err != nil {
				return err
			}
			threads, err = positiveInt("threads", args[1])
			return err
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			_, err = speedup.Run(ngram, threads, opts.ResultsDir, cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().StringVar(&f.opts.ResultsDir, "results-dir", f.opts.ResultsDir, "directory holding the CSVs and receiving the charts")
	return cmd
}

// resolve layers defaults, the options file and explicitly set flags, then
// applies the log level.
func (f *cliFlags) resolve(cmd *cobra.Command) (config.Options, error) {
	o := config.Defaults()
	if f.configPath != "" {
		var err error
		if o, err = config.LoadFile(f.configPath, o); err != nil {
			return o, err
		}
	}
	fl := cmd.Flags()
	if fl.Changed("out-dir") {
		o.OutDir = f.opts.OutDir
	}
	if fl.Changed("width") {
		o.Width = f.opts.Width
	}
	if fl.Changed("height") {
		o.Height = f.opts.Height
	}
	if fl.Changed("summary") {
		o.Summary = f.opts.Summary
	}
	if fl.Changed("log-level") {
		o.LogLevel = f.opts.LogLevel
	}
	if fl.Changed("results-dir") {
		o.ResultsDir = f.opts.ResultsDir
	}
	if err := o.Validate(); err != nil {
		return o, err
	}
	logging.SetLogLevel(o.LogLevel)
	logging.Debugf("options: %+v", o)
	return o, nil
}

// withUsage prints the command usage to stderr when its arguments are
// rejected. Runtime errors print only the message.
func withUsage(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		err := v(cmd, args)
		if err != nil {
			fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
		}
		return err
	}
}

func positiveInt(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return n, nil
}
