/*


Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package telemetry installs the process-wide otel TracerProvider that
// internal/reconciler's tracing middleware records spans against. It plays
// the role the teacher's darkowlzz/operator-toolkit telemetry/export
// Jaeger installer played, rebuilt on the plain otel SDK since Kubimo's
// reconciler harness replaces that toolkit's reconcile framework outright
// (see DESIGN.md).
package telemetry

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// Shutdown flushes and stops the installed TracerProvider.
type Shutdown func(context.Context) error

// Install sets the global otel TracerProvider for serviceName, exporting
// spans to an OTLP/HTTP collector when OTEL_EXPORTER_OTLP_ENDPOINT is set in
// the environment, and to stdout otherwise so a bare install still emits
// visible spans.
func Install(ctx context.Context, serviceName string) (Shutdown, error) {
	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		semconv.ServiceNameKey.String(serviceName),
	))
	if err != nil {
		return nil, errors.Wrap(err, "telemetry: build resource")
	}

	exporter, err := newExporter(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "telemetry: build exporter")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

func newExporter(ctx context.Context) (sdktrace.SpanExporter, error) {
	if endpoint, ok := os.LookupEnv("OTEL_EXPORTER_OTLP_ENDPOINT"); ok && endpoint != "" {
		return otlptracehttp.New(ctx)
	}
	return stdouttrace.New(stdouttrace.WithoutTimestamps())
}
