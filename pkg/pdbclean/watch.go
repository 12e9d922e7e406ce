package pdbclean

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// settle is how long a file must be left alone before we convert it.
// Editors often write a file in several steps.
const settle = 100 * time.Millisecond

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch input.pdb [output.pdb]",
		Short: "Convert again every time the input changes, until interrupted",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  a.runWatch,
	}
}

func (a *app) runWatch(cmd *cobra.Command, args []string) error {
	a.started = true
	opts, err := a.options()
	if err != nil {
		return err
	}
	in, out := args[0], a.cfg.Output
	if len(args) > 1 {
		out = args[1]
	}
	a.log.Info("watching", "input", in, "output", out)
	return Watch(cmd.Context(), in, func() {
		a.convertOne(in, out, opts) // failures are logged, we keep watching
	})
}

// Watch calls fn once, then again whenever fname is written or
// replaced, until ctx is done. The directory is watched rather than
// the file, since many editors save by renaming a new file over the
// old one.
func Watch(ctx context.Context, fname string, fn func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	target := filepath.Clean(fname)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return err
	}
	fn()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(settle)
			} else {
				timer.Reset(settle)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		case <-fire:
			fire = nil
			fn()
		}
	}
}
