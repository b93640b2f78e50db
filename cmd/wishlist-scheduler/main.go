package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iwvelando/wishlist-scheduler/internal/config"
	"github.com/iwvelando/wishlist-scheduler/internal/logging"
	"github.com/iwvelando/wishlist-scheduler/internal/wishlist"
	"github.com/iwvelando/wishlist-scheduler/pkg/constants"
	"github.com/iwvelando/wishlist-scheduler/pkg/output"
	"github.com/iwvelando/wishlist-scheduler/pkg/validation"
	"go.uber.org/zap"
)

// readRequest decodes a schedule request from path, or from stdin when path is "-".
func readRequest(path string) (wishlist.Request, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return wishlist.Request{}, fmt.Errorf("failed to open request %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var req wishlist.Request
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return wishlist.Request{}, fmt.Errorf("failed to decode request: %w", err)
	}
	return req, nil
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	requestLocation := flag.String("request", "request.json", "path to the schedule request JSON, or - for stdin")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	if err := validation.ValidateLogLevel(*logLevel); err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"invalid log level\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	req, err := readRequest(*requestLocation)
	if err != nil {
		logger.Fatal("failed to read schedule request",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	ctx := context.Background()
	svc, cleanup, err := wishlist.Setup(ctx, logger, conf)
	defer cleanup()
	if err != nil {
		logger.Fatal("failed to set up scheduler",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	resp, err := svc.Schedule(ctx, req)
	if err != nil {
		logger.Fatal("failed to build schedule",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		err = output.PrettyFormat(os.Stdout, resp)
	case constants.OutputFormatJSON:
		err = output.JSONFormat(os.Stdout, resp)
	}
	if err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
