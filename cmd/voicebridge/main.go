// Command voicebridge translates spoken audio from the command line:
// record from the microphone or load a file, then write the translated
// speech to a WAV file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/voicebridge/bootstrap"
	"github.com/kbukum/voicebridge/config"
	"github.com/kbukum/voicebridge/device"
	"github.com/kbukum/voicebridge/errors"
	"github.com/kbukum/voicebridge/pipeline"
	"github.com/kbukum/voicebridge/sink"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		source        = flag.String("source", "", "source language code (e.g. pt-BR)")
		target        = flag.String("target", "", "target language code (e.g. en)")
		input         = flag.String("input", "", "input audio file; records from the microphone when empty")
		output        = flag.String("output", "", "output WAV path (default from config)")
		devicePref    = flag.String("device", "", "compute device: auto, cpu, or gpu")
		recordSeconds = flag.Float64("record-duration", 5.0, "fixed recording length in seconds")
		untilSilence  = flag.Bool("record-until-silence", false, "record until sustained silence instead of a fixed duration")
		listLanguages = flag.Bool("list-languages", false, "print supported languages and exit")
		configFile    = flag.String("config", "", "config file path")
	)
	flag.Parse()

	var loadOpts []config.LoaderOption
	if *configFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(*configFile))
	}
	cfg, err := config.Load("voicebridge", loadOpts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}
	if *output == "" {
		*output = cfg.Output
	}
	if *devicePref == "" {
		*devicePref = cfg.Device
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, sink.NewFileSink(*output))
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		return 1
	}
	defer app.Shutdown(context.Background())

	if *listLanguages {
		fmt.Println("Supported languages:")
		for _, spec := range app.Languages.List() {
			fmt.Printf("  %-8s %s\n", spec.Code, spec.DisplayName)
		}
		return 0
	}

	if *source == "" || *target == "" {
		fmt.Fprintln(os.Stderr, "both -source and -target are required")
		flag.Usage()
		return 2
	}

	req := pipeline.Request{
		Source: *source,
		Target: *target,
		Device: device.Preference(*devicePref),
	}
	switch {
	case *input != "":
		req.Input = pipeline.AudioInput{Path: *input}
	case *untilSilence:
		fmt.Println("Recording... speak now, stop speaking to finish.")
		req.Input = pipeline.AudioInput{Record: &pipeline.RecordPolicy{UntilSilence: true}}
	default:
		fmt.Printf("Recording for %.1f seconds...\n", *recordSeconds)
		req.Input = pipeline.AudioInput{Record: &pipeline.RecordPolicy{
			Duration: time.Duration(*recordSeconds * float64(time.Second)),
		}}
	}

	outcome := app.Orchestrator.Run(ctx, req)
	if !outcome.OK() {
		failure := outcome.Failure()
		fmt.Fprintf(os.Stderr, "error [%s/%s]: %s\n", failure.Stage, failure.Code, failure.Message)
		if failure.Retryable {
			fmt.Fprintln(os.Stderr, "this error may be transient; try again")
		}
		return exitCode(failure.Code)
	}

	result := outcome.Result()
	fmt.Printf("Heard:      %s\n", result.SourceText)
	fmt.Printf("Translated: %s\n", result.TranslatedText)
	fmt.Printf("Saved to:   %s (%.1fs total)\n", result.Destination, result.Timings.Total.Seconds())
	return 0
}

// exitCode maps failure classes to distinct exit codes for scripting.
func exitCode(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeUnsupportedLanguage, errors.ErrCodeIdenticalLanguagePair, errors.ErrCodeInvalidRequest:
		return 2
	case errors.ErrCodeCaptureTimeout, errors.ErrCodeDeviceUnavailable, errors.ErrCodeEmptyInput:
		return 3
	case errors.ErrCodeModelUnavailable, errors.ErrCodeInferenceError:
		return 4
	case errors.ErrCodeWriteError:
		return 5
	default:
		return 1
	}
}
