package colorspace_test

import (
	"testing"

	"github.com/GreatValueCreamSoda/gossimu2/internal/colorspace"
)

func Test_GuessMatrix_Resolutions(t *testing.T) {
	cases := []struct {
		width, height int
		want          colorspace.Matrix
	}{
		{3840, 2160, colorspace.MatrixBT709},
		{1920, 1080, colorspace.MatrixBT709},
		{1280, 720, colorspace.MatrixBT709},
		{1280, 480, colorspace.MatrixBT709}, // width alone qualifies
		{960, 578, colorspace.MatrixBT709},  // height > 576 alone qualifies
		{720, 576, colorspace.MatrixBT470BG},
		{704, 576, colorspace.MatrixBT470BG},
		{720, 480, colorspace.MatrixST170M},
		{640, 480, colorspace.MatrixST170M},
		{352, 240, colorspace.MatrixST170M},
	}

	for _, tc := range cases {
		got := colorspace.GuessMatrix(tc.width, tc.height)
		if got != tc.want {
			t.Errorf("GuessMatrix(%d, %d) = %v, want %v",
				tc.width, tc.height, got, tc.want)
		}
	}
}

func Test_GuessPrimaries_BT2020MatrixWins(t *testing.T) {
	// A BT.2020 family matrix forces BT.2020 primaries at any resolution.
	for _, m := range []colorspace.Matrix{colorspace.MatrixBT2020NCL, colorspace.MatrixBT2020CL} {
		for _, res := range [][2]int{{3840, 2160}, {1920, 1080}, {640, 480}, {100, 100}} {
			got := colorspace.GuessPrimaries(m, res[0], res[1])
			if got != colorspace.PrimariesBT2020 {
				t.Fatalf("GuessPrimaries(%v, %d, %d) = %v, want bt2020",
					m, res[0], res[1], got)
			}
		}
	}
}

func Test_GuessPrimaries_Resolutions(t *testing.T) {
	cases := []struct {
		matrix        colorspace.Matrix
		width, height int
		want          colorspace.Primaries
	}{
		{colorspace.MatrixBT709, 640, 480, colorspace.PrimariesBT709},
		{colorspace.MatrixST170M, 1920, 1080, colorspace.PrimariesBT709},
		{colorspace.MatrixBT470BG, 720, 576, colorspace.PrimariesBT470BG},
		{colorspace.MatrixST170M, 720, 480, colorspace.PrimariesST170M},
		{colorspace.MatrixST170M, 720, 488, colorspace.PrimariesST170M},
		{colorspace.MatrixST170M, 720, 400, colorspace.PrimariesBT709}, // fallback
	}

	for _, tc := range cases {
		got := colorspace.GuessPrimaries(tc.matrix, tc.width, tc.height)
		if got != tc.want {
			t.Errorf("GuessPrimaries(%v, %d, %d) = %v, want %v",
				tc.matrix, tc.width, tc.height, got, tc.want)
		}
	}
}

func Test_Resolve_FillsUnspecified(t *testing.T) {
	s := colorspace.Stream{
		Width:        1920,
		Height:       1080,
		BitDepth:     10,
		SubsamplingX: 1,
		SubsamplingY: 1,
		Matrix:       colorspace.MatrixUnspecified,
		Transfer:     colorspace.TransferUnspecified,
		Primaries:    colorspace.PrimariesUnspecified,
	}

	cfg := colorspace.Resolve(s, colorspace.NewOverrides())

	if cfg.Matrix != colorspace.MatrixBT709 {
		t.Fatalf("matrix = %v, want bt709", cfg.Matrix)
	}
	if cfg.Transfer != colorspace.TransferBT1886 {
		t.Fatalf("transfer = %v, want bt1886", cfg.Transfer)
	}
	if cfg.Primaries != colorspace.PrimariesBT709 {
		t.Fatalf("primaries = %v, want bt709", cfg.Primaries)
	}
	if cfg.ChromaLoc != colorspace.ChromaLeft {
		t.Fatalf("chroma location = %v, want left", cfg.ChromaLoc)
	}
	if cfg.FullRange {
		t.Fatal("full range should stay false without metadata or override")
	}
	if cfg.BitDepth != 10 || cfg.SubsamplingX != 1 || cfg.SubsamplingY != 1 {
		t.Fatalf("geometry not carried through: %+v", cfg)
	}
}

func Test_Resolve_KeepsStreamMetadata(t *testing.T) {
	s := colorspace.Stream{
		Width:     720,
		Height:    576,
		BitDepth:  8,
		Matrix:    colorspace.MatrixBT709, // declared, heuristic must not run
		Transfer:  colorspace.TransferSRGB,
		Primaries: colorspace.PrimariesP3Display,
		FullRange: true,
		ChromaLoc: colorspace.ChromaTopLeft,
	}

	cfg := colorspace.Resolve(s, colorspace.NewOverrides())

	if cfg.Matrix != colorspace.MatrixBT709 ||
		cfg.Transfer != colorspace.TransferSRGB ||
		cfg.Primaries != colorspace.PrimariesP3Display {
		t.Fatalf("declared colorimetry rewritten: %+v", cfg)
	}
	if !cfg.FullRange {
		t.Fatal("full range flag dropped")
	}
	if cfg.ChromaLoc != colorspace.ChromaTopLeft {
		t.Fatalf("chroma location = %v, want top-left", cfg.ChromaLoc)
	}
}

func Test_Resolve_OverridesWin(t *testing.T) {
	s := colorspace.Stream{
		Width:    1920,
		Height:   1080,
		BitDepth: 8,
		Matrix:   colorspace.MatrixBT709,
		Transfer: colorspace.TransferBT1886,
		// primaries unspecified: the override below must shortcut inference
		Primaries: colorspace.PrimariesUnspecified,
	}

	o := colorspace.NewOverrides()
	o.Matrix = colorspace.MatrixBT2020NCL
	o.Primaries = colorspace.PrimariesBT2020
	o.FullRange = true

	cfg := colorspace.Resolve(s, o)

	if cfg.Matrix != colorspace.MatrixBT2020NCL {
		t.Fatalf("matrix = %v, want bt2020-ncl", cfg.Matrix)
	}
	if cfg.Primaries != colorspace.PrimariesBT2020 {
		t.Fatalf("primaries = %v, want bt2020", cfg.Primaries)
	}
	if cfg.Transfer != colorspace.TransferBT1886 {
		t.Fatalf("transfer = %v, want bt1886 (no override given)", cfg.Transfer)
	}
	if !cfg.FullRange {
		t.Fatal("full range override dropped")
	}
}

func Test_Resolve_OverriddenMatrixDrivesPrimariesGuess(t *testing.T) {
	// SD stream, matrix overridden to a BT.2020 variant: primaries
	// inference must see the overridden matrix, not the stream's.
	s := colorspace.Stream{
		Width:     720,
		Height:    480,
		BitDepth:  8,
		Matrix:    colorspace.MatrixUnspecified,
		Transfer:  colorspace.TransferUnspecified,
		Primaries: colorspace.PrimariesUnspecified,
	}

	o := colorspace.NewOverrides()
	o.Matrix = colorspace.MatrixBT2020NCL

	cfg := colorspace.Resolve(s, o)
	if cfg.Primaries != colorspace.PrimariesBT2020 {
		t.Fatalf("primaries = %v, want bt2020", cfg.Primaries)
	}
}
