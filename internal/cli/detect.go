package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ironsheep/line-tools-mcp/internal/config"
	"github.com/ironsheep/line-tools-mcp/internal/detection"
	"github.com/ironsheep/line-tools-mcp/internal/geometry"
	"github.com/ironsheep/line-tools-mcp/internal/segments"
)

// inputFlags selects where candidate segments come from.
type inputFlags struct {
	input     string
	image     string
	algorithm string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "-", "JSON array of segments, - for stdin")
	cmd.Flags().StringVar(&f.image, "image", "", "extract segments from this image instead of --input")
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", "", "segment extraction algorithm: hough or contours")
}

// load returns the raw candidates and a frame id for log correlation.
func (f *inputFlags) load(cmd *cobra.Command, cfg config.Config) ([]geometry.Line, string, error) {
	frameID := uuid.NewString()
	if f.image != "" {
		lines, err := segmentsFromImage(f.image, f.algorithm, cfg)
		return lines, frameID, err
	}
	if f.algorithm != "" {
		return nil, "", errors.New("--algorithm requires --image")
	}

	var r io.Reader = cmd.InOrStdin()
	if f.input != "-" {
		file, err := os.Open(f.input)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open input: %w", err)
		}
		defer file.Close()
		r = file
	}

	var lines []geometry.Line
	if err := json.NewDecoder(r).Decode(&lines); err != nil {
		return nil, "", fmt.Errorf("failed to decode segments: %w", err)
	}
	return lines, frameID, nil
}

func segmentsFromImage(path, algorithm string, cfg config.Config) ([]geometry.Line, error) {
	opts := cfg.Segments
	if algorithm != "" {
		alg, err := segments.ParseAlgorithm(algorithm)
		if err != nil {
			return nil, err
		}
		opts.Algorithm = alg
	}
	src, err := segments.New(opts)
	if err != nil {
		return nil, err
	}
	img, err := segments.NewImageCache().Load(path)
	if err != nil {
		return nil, err
	}
	return src.Segments(img)
}

func newDetector(cmd *cobra.Command) (*detection.Detector, config.Config, error) {
	ctx := cmd.Context()
	cfg := configFromContext(ctx)
	dc, err := cfg.Detection()
	if err != nil {
		return nil, cfg, err
	}
	d, err := detection.NewDetector(dc, loggerFromContext(ctx))
	return d, cfg, err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newDetectCmd() *cobra.Command {
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Deduplicate segments and run the configured filter chains",
		Long: `Detect classifies the candidate segments, eliminates near-duplicates and
runs every operator chain from [filter] in the configuration, printing the
resulting lines as JSON.`,
		Example: `  line-tools-mcp detect --input frame.json
  line-tools-mcp detect --image target.png --algorithm contours`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, cfg, err := newDetector(cmd)
			if err != nil {
				return err
			}
			raw, frameID, err := in.load(cmd, cfg)
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			lines, err := d.Lines(raw)
			if err != nil {
				return err
			}
			prog.done("detected lines", "frame", frameID, "candidates", len(raw), "lines", len(lines))

			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"frame_id": frameID,
				"lines":    lines,
			})
		},
	}
	in.register(cmd)
	return cmd
}

type squareOutput struct {
	FrameID string           `json:"frame_id"`
	Found   bool             `json:"found"`
	Corners []geometry.Point `json:"corners"`
	Center  *geometry.Point  `json:"center,omitempty"`
}

func newSquareCmd() *cobra.Command {
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "square",
		Short: "Reconstruct the target square from segments",
		Long: `Square deduplicates the candidate segments, picks the leftmost, rightmost,
topmost and bottommost lines and intersects them. When a boundary is missing
found is false and the corners are empty; the exit status is still zero.`,
		Example: `  line-tools-mcp square --input frame.json
  line-tools-mcp square --image target.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, cfg, err := newDetector(cmd)
			if err != nil {
				return err
			}
			raw, frameID, err := in.load(cmd, cfg)
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			sq, found := d.Square(raw)
			prog.done("square reconstruction", "frame", frameID, "candidates", len(raw), "found", found)

			out := squareOutput{FrameID: frameID, Found: found, Corners: sq.Corners}
			if out.Corners == nil {
				out.Corners = []geometry.Point{}
			}
			if c, ok := sq.Center(); ok {
				out.Center = &c
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	in.register(cmd)
	return cmd
}
