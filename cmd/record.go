package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/xrsim/xrsim/codec"
	"github.com/xrsim/xrsim/xr"
)

// frameRecorder streams animation frames to a file as a sequence of
// deterministically encoded CBOR values.
type frameRecorder struct {
	file *os.File
	enc  *codec.Encoder
}

func newFrameRecorder(path string) (*frameRecorder, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating recording: %w", err)
	}
	return &frameRecorder{file: file, enc: codec.NewEncoder(file)}, nil
}

func (r *frameRecorder) Record(frame *xr.Frame) error {
	return r.enc.Encode(frame)
}

func (r *frameRecorder) Close() error {
	return r.file.Close()
}

// readRecording decodes every frame from a recording file.
func readRecording(path string) ([]xr.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening recording: %w", err)
	}
	defer file.Close()

	var frames []xr.Frame
	dec := codec.NewDecoder(file)
	for {
		var frame xr.Frame
		if err := dec.Decode(&frame); err != nil {
			if errors.Is(err, io.EOF) {
				return frames, nil
			}
			return nil, fmt.Errorf("decoding frame %d: %w", len(frames), err)
		}
		frames = append(frames, frame)
	}
}

// replayCmd prints the frames of a recording produced by `run --record`
var replayCmd = &cobra.Command{
	Use:   "replay <recording>",
	Short: "Print the frames of a recorded scenario",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		frames, err := readRecording(args[0])
		if err != nil {
			logrus.Fatalf("Unable to read recording: %v", err)
		}
		for i, frame := range frames {
			logrus.Infof("frame %03d: inputs=%d updates=%d hits=%d time=%d",
				i, len(frame.Inputs), len(frame.Events), len(frame.HitTestResults), frame.TimeNs)
			for _, hit := range frame.HitTestResults {
				logrus.Infof("  hit %d at (%.3f, %.3f, %.3f)",
					hit.ID, hit.Space.Translation.X, hit.Space.Translation.Y, hit.Space.Translation.Z)
			}
		}
		logrus.Infof("Replayed %d frames.", len(frames))
	},
}

// init attaches `replay` as a subcommand to `root`
func init() {
	rootCmd.AddCommand(replayCmd)
}
