// Package app wires the listings analyzer HTTP server together: telemetry,
// the analysis service, middleware and routes.
//
// # Initialization Flow
//
//  1. Initialize OpenTelemetry from the telemetry section of the config
//  2. Create the analysis metrics and the analysis service
//  3. Build the chi router with middleware and handlers
//  4. Create the http.Server from the server section
//
// # Usage
//
//	application, err := app.NewApplication(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	return application.Run(ctx)
//
// Run returns once the context is cancelled and in-flight requests have
// drained, or when the listener fails. The package never calls os.Exit.
package app
