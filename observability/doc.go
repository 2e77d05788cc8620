// Package observability provides OpenTelemetry metrics and health
// reporting for the translation pipeline.
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("voicebridge"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewPipelineMetrics(observability.Meter("voicebridge"))
//	metrics.RecordStage(ctx, "asr", duration)
package observability
