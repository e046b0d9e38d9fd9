// Package telemetry counts parser and serializer activity. Metrics go
// through the global OTel meter, which is a no-op unless a meter provider
// is installed, and session statistics can optionally be pushed to
// InfluxDB.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/bhrm-tools/npced"

// Metrics holds the instrument handles. The zero value is unusable, use
// NewMetrics.
type Metrics struct {
	linesParsed    metric.Int64Counter
	spawnsParsed   metric.Int64Counter
	rawsParsed     metric.Int64Counter
	nearMisses     metric.Int64Counter
	serializations metric.Int64Counter
}

// NewMetrics registers the instruments on the global meter provider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	m := &Metrics{}
	var err error

	if m.linesParsed, err = meter.Int64Counter("npced.parser.lines",
		metric.WithDescription("Lines seen by the parser")); err != nil {
		return nil, err
	}
	if m.spawnsParsed, err = meter.Int64Counter("npced.parser.spawns",
		metric.WithDescription("Spawn commands parsed")); err != nil {
		return nil, err
	}
	if m.rawsParsed, err = meter.Int64Counter("npced.parser.raws",
		metric.WithDescription("Lines kept as raw passthrough")); err != nil {
		return nil, err
	}
	if m.nearMisses, err = meter.Int64Counter("npced.parser.near_misses",
		metric.WithDescription("Spawn keywords with unparseable arguments")); err != nil {
		return nil, err
	}
	if m.serializations, err = meter.Int64Counter("npced.serializer.runs",
		metric.WithDescription("Command file serializations")); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordParse records one parse pass over a map file.
func (m *Metrics) RecordParse(ctx context.Context, mapFile string, lines, spawns, raws, nearMisses int) {
	attrs := metric.WithAttributes(attribute.String("map_file", mapFile))
	m.linesParsed.Add(ctx, int64(lines), attrs)
	m.spawnsParsed.Add(ctx, int64(spawns), attrs)
	m.rawsParsed.Add(ctx, int64(raws), attrs)
	m.nearMisses.Add(ctx, int64(nearMisses), attrs)
}

// RecordSerialize records one serialization.
func (m *Metrics) RecordSerialize(ctx context.Context, mapFile string) {
	m.serializations.Add(ctx, 1, metric.WithAttributes(attribute.String("map_file", mapFile)))
}
