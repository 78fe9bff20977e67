package main

import (
	"encoding/binary"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/GreatValueCreamSoda/gossimu2/internal/colorspace"
	"github.com/GreatValueCreamSoda/gossimu2/internal/decode"
	"github.com/GreatValueCreamSoda/gossimu2/internal/metrics"
)

func newImageCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image <source> <distorted>",
		Short: "Score a distorted still image against its source",
		Long: "Decodes two PNG or JPEG images and prints their " +
			"SSIMULACRA2 score. Both images are treated as sRGB.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := ctx.setup(); err != nil {
				return err
			}

			srcFrame, srcColor, err := loadImage(args[0])
			if err != nil {
				return err
			}
			dstFrame, dstColor, err := loadImage(args[1])
			if err != nil {
				return err
			}

			scorer, err := metrics.NewSSIMU2(1, srcColor, dstColor)
			if err != nil {
				return err
			}
			defer scorer.Close()

			score, err := scorer.Score(srcFrame, dstFrame)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Score: %.8f\n", score)
			return nil
		},
	}
	return cmd
}

// loadImage decodes one still image into 16-bit planar RGB, the widest
// layout every supported input converts to without loss.
func loadImage(path string) (*decode.Frame, colorspace.Config, error) {
	var cfg colorspace.Config

	f, err := os.Open(path)
	if err != nil {
		return nil, cfg, fmt.Errorf("%w: %w", decode.ErrDecoderInit, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, cfg, fmt.Errorf("%w: decode %s: %w",
			decode.ErrDecoderInit, path, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	frame := &decode.Frame{}
	for p := range frame.Data {
		frame.Data[p] = make([]byte, width*height*2)
		frame.LineSize[p] = int64(width * 2)
	}

	offset := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			binary.LittleEndian.PutUint16(frame.Data[0][offset:], uint16(r))
			binary.LittleEndian.PutUint16(frame.Data[1][offset:], uint16(g))
			binary.LittleEndian.PutUint16(frame.Data[2][offset:], uint16(b))
			offset += 2
		}
	}

	cfg = colorspace.Config{
		Width:     width,
		Height:    height,
		BitDepth:  16,
		RGB:       true,
		FullRange: true,
		Matrix:    colorspace.MatrixIdentity,
		Transfer:  colorspace.TransferSRGB,
		Primaries: colorspace.PrimariesBT709,
		ChromaLoc: colorspace.ChromaLeft,
	}
	return frame, cfg, nil
}
