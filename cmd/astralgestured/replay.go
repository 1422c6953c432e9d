package main

import (
	"encoding/json"
	"fmt"

	"github.com/frudas24/astralgesture/internal/config"
	"github.com/frudas24/astralgesture/internal/control"
	"github.com/frudas24/astralgesture/internal/gesture"
	"github.com/frudas24/astralgesture/internal/logging"
	"github.com/frudas24/astralgesture/internal/replay"
	"github.com/spf13/cobra"
)

var (
	replaySettings string
	replayJSON     bool
	replayVerbose  bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <trace.yaml>",
	Short: "Replay a recorded pointer trace and print the emitted commands",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

func init() {
	replayCmd.Flags().StringVarP(&replaySettings, "settings", "s", "", "Gesture settings file (defaults when empty)")
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "Print control-channel frames instead of text")
	replayCmd.Flags().BoolVarP(&replayVerbose, "verbose", "v", false, "Log engine diagnostics to stderr")
}

// runReplay prints every command a trace produces, as text or JSON frames.
func runReplay(cmd *cobra.Command, args []string) error {
	trace, err := replay.Load(args[0])
	if err != nil {
		return err
	}
	settings := gesture.DefaultSettings()
	if replaySettings != "" {
		file, err := config.LoadFile(replaySettings)
		if err != nil {
			return err
		}
		if settings, err = file.ToSettings(); err != nil {
			return err
		}
	}

	log := logging.Discard()
	if replayVerbose {
		log = logging.New(cmd.ErrOrStderr(), "debug", false)
	}
	lines, err := replay.Run(trace, settings, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !replayJSON {
		for _, l := range lines {
			fmt.Fprintln(out, l)
		}
		return nil
	}
	enc := json.NewEncoder(out)
	for _, l := range lines {
		frame := control.Frame{T: control.FrameError}
		if l.Err != nil {
			frame.Error = l.Err.Error()
		} else {
			frame = control.FrameFor(l.Command)
		}
		if err := enc.Encode(struct {
			AtMS int64 `json:"atMs"`
			control.Frame
		}{l.At.Milliseconds(), frame}); err != nil {
			return err
		}
	}
	return nil
}
