package status

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/lixenwraith/cutin-killer"

// Exporter mirrors the registry into OpenTelemetry observable gauges
// Gauges are registered for keys present at Bind time; values are read on collection
type Exporter struct {
	meter        metric.Meter
	registration metric.Registration
}

// NewExporter creates an exporter on the global meter provider, or a noop meter when disabled
func NewExporter(enabled bool) *Exporter {
	var meter metric.Meter
	if enabled {
		meter = otel.GetMeterProvider().Meter(meterName)
	} else {
		meter = noop.NewMeterProvider().Meter(meterName)
	}
	return &Exporter{meter: meter}
}

// Bind registers one gauge per metric currently in r
func (e *Exporter) Bind(r *Registry) error {
	type intGauge struct {
		g metric.Int64ObservableGauge
		v *atomic.Int64
	}
	type floatGauge struct {
		g metric.Float64ObservableGauge
		v *AtomicFloat
	}

	var (
		ints   []intGauge
		floats []floatGauge
		insts  []metric.Observable
		err    error
	)

	r.Ints.Range(func(k string, v *atomic.Int64) {
		if err != nil {
			return
		}
		var g metric.Int64ObservableGauge
		g, err = e.meter.Int64ObservableGauge(instrumentName(k))
		if err == nil {
			ints = append(ints, intGauge{g, v})
			insts = append(insts, g)
		}
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		if err != nil {
			return
		}
		var g metric.Float64ObservableGauge
		g, err = e.meter.Float64ObservableGauge(instrumentName(k))
		if err == nil {
			floats = append(floats, floatGauge{g, v})
			insts = append(insts, g)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to create gauge: %w", err)
	}
	if len(insts) == 0 {
		return nil
	}

	reg, err := e.meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		for _, ig := range ints {
			o.ObserveInt64(ig.g, ig.v.Load())
		}
		for _, fg := range floats {
			o.ObserveFloat64(fg.g, fg.v.Get())
		}
		return nil
	}, insts...)
	if err != nil {
		return fmt.Errorf("failed to register gauge callback: %w", err)
	}
	e.registration = reg
	return nil
}

// Close unregisters the collection callback
func (e *Exporter) Close() error {
	if e.registration == nil {
		return nil
	}
	return e.registration.Unregister()
}

// instrumentName maps registry keys like "npc.active" onto otel naming
func instrumentName(key string) string {
	return "cutin." + strings.ReplaceAll(key, " ", "_")
}
