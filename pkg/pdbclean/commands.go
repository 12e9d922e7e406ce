package pdbclean

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/andrew-torda/pdbclean/pdb/geom"
	"github.com/andrew-torda/pdbclean/pkg/config"
)

func (a *app) cleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean input.pdb [output.pdb]",
		Short: "Convert one file (what pdbclean does with arguments)",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  a.runClean,
	}
}

func (a *app) runClean(cmd *cobra.Command, args []string) error {
	a.started = true
	opts, err := a.options()
	if err != nil {
		return err
	}
	out := a.cfg.Output
	if len(args) > 1 {
		out = args[1]
	}
	_, err = a.convertOne(args[0], out, opts)
	return err
}

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info input.pdb",
		Short: "Print what a conversion would do, without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runInfo,
	}
}

func (a *app) runInfo(cmd *cobra.Command, args []string) error {
	a.started = true
	opts, err := a.options()
	if err != nil {
		return err
	}
	text, err := ReadInput(args[0], opts.ReadMode)
	if err != nil {
		return err
	}
	res, err := Clean(text, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return printInfo(cmd, args[0], res)
}

// printInfo writes the summary. Renames come in a fixed order.
func printInfo(cmd *cobra.Command, name string, res *Result) error {
	doc, rep := res.Doc, res.Report
	cmd.Printf("file     %s\n", name)
	cmd.Printf("title    %s\n", doc.Title)
	cmd.Printf("records  %d\n", res.NRecord())
	cmd.Printf("residues %d\n", doc.NResidue())
	cmd.Printf("chains   %s\n", strings.Join(doc.Chains(), " "))
	for _, k := range []string{"HID", "HIE", "HIP", "GLH", "ASH"} {
		if n := rep.Renames[k]; n > 0 {
			cmd.Printf("%-8s %d\n", k, n)
		}
	}
	if rep.NOC1+rep.NOC2 > 0 {
		cmd.Printf("OC1      %d\nOC2      %d\n", rep.NOC1, rep.NOC2)
	}
	mat := geom.Coords(doc)
	c, err := geom.Centroid(mat)
	if errors.Is(err, geom.ErrNoAtoms) {
		return nil
	}
	lo, hi, _ := geom.BBox(mat)
	rg, _ := geom.Rgyr(mat)
	cmd.Printf("centroid %8.3f %8.3f %8.3f\n", c.X, c.Y, c.Z)
	cmd.Printf("box      %8.3f %8.3f %8.3f\n", hi.X-lo.X, hi.Y-lo.Y, hi.Z-lo.Z)
	cmd.Printf("rgyr     %8.3f\n", rg)
	return nil
}

func (a *app) batchCmd() *cobra.Command {
	var outDir string
	var keepGoing bool
	cmd := &cobra.Command{
		Use:   "batch -o dir input.pdb...",
		Short: "Convert many files at once, each into the output directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBatch(cmd, outDir, keepGoing, args)
		},
	}
	cmd.Flags().StringVarP(&outDir, "outdir", "o", "", "directory for the results")
	cmd.Flags().IntVarP(&a.flags.Jobs, "jobs", "j", config.Default().Jobs, "files converted at once")
	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "do not stop at the first failure")
	_ = cmd.MarkFlagRequired("outdir")
	return cmd
}

// runBatch converts every input. Without keepGoing, the first failure
// stops any conversion not yet started. Either way, every failure is
// reported.
func (a *app) runBatch(cmd *cobra.Command, outDir string, keepGoing bool, ins []string) error {
	a.started = true
	opts, err := a.options()
	if err != nil {
		return err
	}
	if err := uniqueOuts(outDir, ins); err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	var mu sync.Mutex
	var errs []error
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(a.cfg.Jobs)
	for _, in := range ins {
		in := in
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			_, err := a.convertOne(in, OutName(outDir, in), opts)
			if err == nil {
				return nil
			}
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
			if keepGoing {
				return nil
			}
			return err
		})
	}
	g.Wait()
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d files failed: %w", len(errs), len(ins), errors.Join(errs...))
	}
	if err := cmd.Context().Err(); err != nil {
		return err
	}
	cmd.Printf("converted %d files into %s\n", len(ins), outDir)
	return nil
}

// uniqueOuts fails if two inputs would be written to the same file,
// as with a/x.pdb and b/x.pdb.gz.
func uniqueOuts(outDir string, ins []string) error {
	seen := make(map[string]string, len(ins))
	for _, in := range ins {
		out := OutName(outDir, in)
		if prev, ok := seen[out]; ok {
			return fmt.Errorf("%s and %s would both be written to %s", prev, in, out)
		}
		seen[out] = in
	}
	return nil
}
