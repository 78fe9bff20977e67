package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/GreatValueCreamSoda/gossimu2/internal/colorspace"
)

// The colorimetry override flags parse straight into colorspace values so
// an unrecognized token fails at flag-parse time with the flag named in
// the error.
var (
	_ pflag.Value = matrixValue{}
	_ pflag.Value = transferValue{}
	_ pflag.Value = primariesValue{}
)

type matrixValue struct{ m *colorspace.Matrix }

func (v matrixValue) Type() string { return "matrix" }

func (v matrixValue) String() string {
	if *v.m == colorspace.MatrixUnspecified {
		return ""
	}
	return (*v.m).String()
}

func (v matrixValue) Set(s string) error {
	m, err := colorspace.ParseMatrix(s)
	if err != nil {
		return err
	}
	*v.m = m
	return nil
}

type transferValue struct{ t *colorspace.Transfer }

func (v transferValue) Type() string { return "transfer" }

func (v transferValue) String() string {
	if *v.t == colorspace.TransferUnspecified {
		return ""
	}
	return (*v.t).String()
}

func (v transferValue) Set(s string) error {
	t, err := colorspace.ParseTransfer(s)
	if err != nil {
		return err
	}
	*v.t = t
	return nil
}

type primariesValue struct{ p *colorspace.Primaries }

func (v primariesValue) Type() string { return "primaries" }

func (v primariesValue) String() string {
	if *v.p == colorspace.PrimariesUnspecified {
		return ""
	}
	return (*v.p).String()
}

func (v primariesValue) Set(s string) error {
	p, err := colorspace.ParsePrimaries(s)
	if err != nil {
		return err
	}
	*v.p = p
	return nil
}

// registerOverrideFlags wires one stream's colorimetry overrides under a
// src- or dst- prefix.
func registerOverrideFlags(cmd *cobra.Command, prefix string,
	o *colorspace.Overrides) {
	cmd.Flags().Var(matrixValue{&o.Matrix}, prefix+"-matrix",
		"override the "+prefix+" matrix coefficients (e.g. bt709)")
	cmd.Flags().Var(transferValue{&o.Transfer}, prefix+"-transfer",
		"override the "+prefix+" transfer characteristics (e.g. bt1886)")
	cmd.Flags().Var(primariesValue{&o.Primaries}, prefix+"-primaries",
		"override the "+prefix+" color primaries (e.g. bt709)")
	cmd.Flags().BoolVar(&o.FullRange, prefix+"-full-range", false,
		"treat the "+prefix+" stream as full range")
}
