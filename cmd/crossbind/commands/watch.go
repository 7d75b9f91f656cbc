package commands

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crossbind/crossbind/logger"
)

// debounce rapid editor write bursts into one regeneration
const watchDebouncePeriod = 500 * time.Millisecond

// WatchCmd re-runs generation whenever the scanned tree or the type
// database changes on disk.
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run generation whenever the inputs change",
	Long: `Watch the scanned tree and type database files and re-run the
conversion pipeline on every change. Requires --output so regenerations
do not interleave on stdout.

Example:
  crossbind watch --tree scan.json --typedb typedb.toml -o out.bridge`,
	RunE: runWatch,
}

func init() {
	WatchCmd.Flags().AddFlagSet(GenerateCmd.Flags())
}

func runWatch(cmd *cobra.Command, args []string) error {
	v, err := generateSettings(cmd)
	if err != nil {
		return err
	}
	if v.GetString("output") == "" {
		return fmt.Errorf("watch mode requires --output")
	}

	// First run up front so a broken setup fails immediately
	if err := generateOnce(v); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	for _, path := range []string{v.GetString("tree"), v.GetString("typedb")} {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
	}

	pterm.Printf("%s %s\n", pterm.LightCyan("Watching:"), pterm.White(
		v.GetString("tree")+", "+v.GetString("typedb")))

	return watchLoop(watcher, v)
}

func watchLoop(watcher *fsnotify.Watcher, v *viper.Viper) error {
	var debounceTimer *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebouncePeriod, func() {
				logger.Infow("Input changed, regenerating", "file", event.Name)
				if err := generateOnce(v); err != nil {
					// Keep watching: the next save may fix the input
					pterm.Printf("%s %v\n", pterm.Red("✗ Generation failed:"), err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("Watcher error", "error", err)
		}
	}
}
