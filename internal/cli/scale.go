package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/scancmdr/internal/calibration"
	"github.com/roach88/scancmdr/internal/source"
)

// ScaleOptions holds flags for the scale command.
type ScaleOptions struct {
	*RootOptions
	Points int // records to read, 0 for all
}

// ScaleResult is the estimated scale of a calibration file.
type ScaleResult struct {
	Scale  int64 `json:"scale"`
	Points int   `json:"points"`
}

func (r ScaleResult) String() string {
	return fmt.Sprintf("Scale: %d device units per pixel (%d calibration point(s))", r.Scale, r.Points)
}

// NewScaleCommand creates the scale command.
func NewScaleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScaleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "scale <calibration-file>",
		Short: "Estimate the pixel to device scale from calibration points",
		Long: `Read a calibration file of "deviceX deviceY pixelX pixelY" lines and
print the device units per pixel it implies.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScale(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Points, "points", "n", 0, "number of calibration points to read (0 reads all)")

	return cmd
}

func runScale(opts *ScaleOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	pts, err := source.ReadCalibration(path, opts.Points)
	if err != nil {
		return fail(formatter, err)
	}
	formatter.VerboseLog("Read %d calibration point(s) from %s", len(pts), path)

	scale, err := calibration.EstimateScale(pts)
	if err != nil {
		return fail(formatter, err)
	}
	return formatter.Success(ScaleResult{Scale: scale, Points: len(pts)})
}
