package pdbclean

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrew-torda/pdbclean/pkg/common"
	"github.com/andrew-torda/pdbclean/pkg/config"
	"github.com/andrew-torda/pdbclean/pkg/logging"
	"github.com/andrew-torda/pdbclean/pkg/metrics"
)

const longHelp = `pdbclean reads a PDB file written by Discovery Studio and writes one
that gromacs (pdb2gmx) will read. It renames

  HIS to HID, HIE or HIP, depending on whether HD1, HE2 or both are there
  ASP to ASH if it has HD2
  GLU to GLH if it has HE2
  the terminal oxygens 1OCT and 2OCT to OC1 and OC2

The title from the first line gets "by supernova" on the end.
Input may be gzipped. If no output name is given, the result goes
to new.pdb.`

// app is the state shared by the commands of one run.
type app struct {
	cfgFile string
	cfg     config.Config
	legacy  bool
	flags   config.Config // values of the global flags, used if Changed
	log     *logging.Logger
	met     *metrics.Metrics
	started bool // a command got as far as doing work
}

// NewRootCmd builds the command tree. Each call gives a fresh one, so
// tests can run commands side by side.
func NewRootCmd() *cobra.Command { return new(app).rootCmd() }

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pdbclean [input.pdb [output.pdb]]",
		Short: "Rename residues and atoms in a PDB file for gromacs",
		Long:  longHelp,
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return a.runClean(cmd, args)
		},
		PersistentPreRunE: a.setup,
		SilenceErrors:     true,
	}
	dflt := config.Default()
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "read settings from a .yaml, .yml or .toml file")
	pf.StringVar(&a.flags.Log, "log", dflt.Log, `log to "stdout", "stderr", a file, or "" for nowhere`)
	pf.StringVar(&a.flags.LogLevel, "log-level", dflt.LogLevel, "debug, info, warn or error")
	pf.StringVar(&a.flags.MetricsFile, "metrics-file", "", "write prometheus metrics to this file at the end")
	pf.StringVar(&a.flags.Layout, "layout", dflt.Layout, "legacy or standard column layout")
	pf.BoolVar(&a.legacy, "legacy", false, "behave exactly like the old cleaner")

	root.AddCommand(a.cleanCmd(), a.infoCmd(), a.batchCmd(), a.watchCmd())
	return root
}

// setup merges defaults, the config file and flags, then opens the log.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true
	a.cfg = config.Default()
	if a.cfgFile != "" {
		var err error
		if a.cfg, err = config.Load(a.cfgFile); err != nil {
			return err
		}
	}
	fl := cmd.Flags()
	if a.legacy {
		a.cfg.SetLegacy()
	}
	if fl.Changed("log") {
		a.cfg.Log = a.flags.Log
	}
	if fl.Changed("log-level") {
		a.cfg.LogLevel = a.flags.LogLevel
	}
	if fl.Changed("metrics-file") {
		a.cfg.MetricsFile = a.flags.MetricsFile
	}
	if fl.Changed("layout") {
		a.cfg.Layout = a.flags.Layout
	}
	if fl.Changed("jobs") {
		a.cfg.Jobs = a.flags.Jobs
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	var err error
	if a.log, err = logging.New(a.cfg.Log, a.cfg.LogLevel); err != nil {
		return err
	}
	a.met = metrics.New()
	a.log.Debug("starting", "command", cmd.Name(), "layout", a.cfg.Layout, "seed", a.cfg.Seed)
	return nil
}

// options turns the merged config into conversion options.
func (a *app) options() (Options, error) {
	var opts Options
	var err error
	if opts.Build, err = a.cfg.BuildOptions(); err != nil {
		return opts, err
	}
	if opts.Layout, err = a.cfg.LayoutValue(); err != nil {
		return opts, err
	}
	opts.ReadMode, err = a.cfg.ReadModeValue()
	return opts, err
}

// finish writes the metrics and closes the log. It runs whether or not
// the command worked.
func (a *app) finish() error {
	if a.log == nil {
		return nil
	}
	err := a.met.WriteFile(a.cfg.MetricsFile)
	if err != nil {
		a.log.Error("writing metrics", "file", a.cfg.MetricsFile, "err", err)
	}
	if e := a.log.Close(); err == nil {
		err = e
	}
	return err
}

// convertOne converts a file and does the logging and counting.
func (a *app) convertOne(in, out string, opts Options) (*Result, error) {
	jlog := a.log.Job(in)
	t0 := time.Now()
	res, err := ConvertFile(in, out, opts)
	if err != nil {
		a.met.Failed()
		jlog.Error("conversion failed", "err", err, "malformed", isMalformed(err))
		return nil, err
	}
	a.met.Converted(res.NRecord(), res.Report, time.Since(t0))
	jlog.Info("converted", "output", out, "records", res.NRecord(),
		"residues", res.Report.NResidue, "renamed", res.Report.NRenamed(),
		"oc1", res.Report.NOC1, "oc2", res.Report.NOC2)
	return res, nil
}

// MyMain runs the command line and gives back an exit code.
func MyMain(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := new(app)
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	if e := a.finish(); err == nil {
		err = e
	}
	if err == nil {
		return common.ExitSuccess
	}
	fmt.Fprintln(stderr, err)
	if !a.started {
		return common.ExitUsageError
	}
	return common.ExitFailure
}

// Main is MyMain with the real command line, stopped by an interrupt.
func Main() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return MyMain(ctx, os.Args[1:], os.Stdout, os.Stderr)
}
