// Package telemetry provides observability for progcheck runs.
//
// It bundles structured logging (zerolog), metrics (Prometheus) and tracing
// (OpenTelemetry). Metrics are kept in a private registry so that several
// instances can coexist in tests; watch mode serves them over HTTP.
//
//	tel, err := telemetry.NewTelemetry(telemetry.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer tel.Shutdown(ctx)
//
//	ctx, span := tel.Tracer.StartCheckSpan(ctx, runID, siteDir)
//	defer span.End()
package telemetry
