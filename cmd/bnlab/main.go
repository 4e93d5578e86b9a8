package main

import (
	"errors"
	"flag"
	"io"
	"os"

	"github.com/GoSim-25-26J-441/titanic-bn/internal/pipeline"
	"github.com/GoSim-25-26J-441/titanic-bn/pkg/config"
	"github.com/GoSim-25-26J-441/titanic-bn/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses flags, resolves the model and executes the pipeline. It
// returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	var modelPath string
	var dataPath string
	var diagramPath string
	var reportJSON string
	var logLevel string
	var logFormat string

	fs := flag.NewFlagSet("bnlab", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&modelPath, "model", "", "model file (.yaml or .hcl); the built-in model is used when empty")
	fs.StringVar(&dataPath, "data", "", "passenger CSV, overrides the model's dataset path")
	fs.StringVar(&diagramPath, "diagram", "", "PNG output path, overrides the model; empty disables the diagram")
	fs.StringVar(&reportJSON, "report-json", "", "also write the report as JSON to this path")
	fs.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&logFormat, "log-format", config.DefaultLogFormat, "log format (text, json)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	logger.SetDefault(logger.New(logLevel, logFormat, stderr))

	var model *config.Model
	var err error
	if modelPath != "" {
		model, err = config.LoadModel(modelPath)
	} else {
		model, err = config.DefaultModel()
	}
	if err != nil {
		logger.Error("failed to load model", "error", err)
		return 1
	}

	// Flags win over the model file
	if set["data"] {
		model.Dataset.Path = dataPath
	}
	if set["diagram"] {
		model.Render.Path = diagramPath
	}
	if set["log-level"] {
		model.LogLevel = logLevel
	}
	if set["log-format"] {
		model.LogFormat = logFormat
	}
	if err := model.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		return 1
	}
	logger.SetDefault(logger.New(model.LogLevel, model.LogFormat, stderr))

	if _, err := pipeline.Run(model, pipeline.Options{ReportJSON: reportJSON}, stdout); err != nil {
		logger.Error("run failed", "error", err)
		return 1
	}
	return 0
}
