package cmd

import "github.com/ardnew/worldc/pkg"

var (
	ErrOpenSource  = pkg.NewError("open source")
	ErrWriteOutput = pkg.NewError("write output")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
	ErrEvaluate    = pkg.NewError("evaluate expression")
)
