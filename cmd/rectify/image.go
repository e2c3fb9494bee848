package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/rectify"
	"github.com/tsawler/rectify/geometry"
	"github.com/tsawler/rectify/ocr"
)

func imageCmd() *cobra.Command {
	var corners string
	var out string
	var maxDim int
	var runOCR bool
	var lang string

	cmd := &cobra.Command{
		Use:   "image <file>",
		Short: "Rectify a single image file",
		Long: `Rectify a single image file using four corner coordinates.

Corners are given as eight comma-separated numbers in top-left,
top-right, bottom-right, bottom-left order:

  rectify image scan.jpg --corners 85,307,1432,255,1531,1880,102,1969 -o flat.jpg

With --ocr the rectified image is recognized locally instead of
written out, and the text is printed to stdout. Local recognition
requires a binary built with the "ocr" build tag.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline := rectify.FromFile(args[0])

			if corners != "" {
				points, err := parseCorners(corners)
				if err != nil {
					return err
				}
				pipeline = pipeline.CornerPoints(points)
			}
			if maxDim > 0 {
				pipeline = pipeline.MaxDimension(maxDim)
			}

			if runOCR {
				engine, err := ocr.NewTesseract()
				if err != nil {
					return err
				}
				defer engine.Close()
				if lang != "" {
					if err := engine.SetLanguage(lang); err != nil {
						return err
					}
				}

				text, err := pipeline.WithOCR(engine).Text(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}

			data, err := pipeline.Image()
			if err != nil {
				return err
			}
			if out == "" {
				out = derivedOutputName(args[0])
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&corners, "corners", "c", "", "eight comma-separated numbers: x0,y0,x1,y1,x2,y2,x3,y3")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: <name>_rectified.<ext>)")
	cmd.Flags().IntVar(&maxDim, "max-dimension", 0, "downscale so the longer side is at most this many pixels")
	cmd.Flags().BoolVar(&runOCR, "ocr", false, "recognize text instead of writing the image")
	cmd.Flags().StringVar(&lang, "lang", "", "recognition language, e.g. eng or eng+kor")

	return cmd
}

// parseCorners converts "x0,y0,...,x3,y3" into four points.
func parseCorners(s string) ([]geometry.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 8 {
		return nil, fmt.Errorf("corners must be 8 comma-separated numbers, got %d", len(parts))
	}

	points := make([]geometry.Point, 4)
	for i := 0; i < 4; i++ {
		x, err := strconv.ParseFloat(strings.TrimSpace(parts[2*i]), 64)
		if err != nil {
			return nil, fmt.Errorf("corner %d: invalid x %q", i, parts[2*i])
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(parts[2*i+1]), 64)
		if err != nil {
			return nil, fmt.Errorf("corner %d: invalid y %q", i, parts[2*i+1])
		}
		points[i] = geometry.Point{X: x, Y: y}
	}
	return points, nil
}

// derivedOutputName appends _rectified before the file extension.
func derivedOutputName(path string) string {
	ext := ""
	base := path
	if i := strings.LastIndex(path, "."); i > 0 {
		base, ext = path[:i], path[i:]
	}
	return base + "_rectified" + ext
}
