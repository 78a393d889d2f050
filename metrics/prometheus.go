// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/locktrip/go-locktrip/log"
)

const namespace = "loc_metrics"

var logger = log.WithContext("pkg", "metrics")

// InitializePrometheusMetrics sets prometheus as the metrics implementation.
// Meters created before initialization stay no-op; package level meters
// should therefore be declared via LazyLoad.
func InitializePrometheusMetrics() {
	// don't allow for reset
	if _, ok := metrics.(*prometheusMetrics); !ok {
		metrics = &prometheusMetrics{}
	}
}

type prometheusMetrics struct {
	meters sync.Map
}

func (p *prometheusMetrics) getOrCreate(name string, create func() any) any {
	if meter, ok := p.meters.Load(name); ok {
		return meter
	}
	meter, _ := p.meters.LoadOrStore(name, create())
	return meter
}

func (p *prometheusMetrics) GetOrCreateCountMeter(name string) CountMeter {
	return p.getOrCreate(name, func() any {
		meter := prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name})
		if err := prometheus.Register(meter); err != nil {
			logger.Warn("unable to register metric", "name", name, "err", err)
		}
		return &promCountMeter{meter}
	}).(CountMeter)
}

func (p *prometheusMetrics) GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter {
	return p.getOrCreate(name, func() any {
		meter := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name}, labels)
		if err := prometheus.Register(meter); err != nil {
			logger.Warn("unable to register metric", "name", name, "err", err)
		}
		return &promCountVecMeter{meter}
	}).(CountVecMeter)
}

func (p *prometheusMetrics) GetOrCreateGaugeMeter(name string) GaugeMeter {
	return p.getOrCreate(name, func() any {
		meter := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name})
		if err := prometheus.Register(meter); err != nil {
			logger.Warn("unable to register metric", "name", name, "err", err)
		}
		return &promGaugeMeter{meter}
	}).(GaugeMeter)
}

func (p *prometheusMetrics) GetOrCreateGaugeVecMeter(name string, labels []string) GaugeVecMeter {
	return p.getOrCreate(name, func() any {
		meter := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: namespace, Name: name}, labels)
		if err := prometheus.Register(meter); err != nil {
			logger.Warn("unable to register metric", "name", name, "err", err)
		}
		return &promGaugeVecMeter{meter}
	}).(GaugeVecMeter)
}

func (p *prometheusMetrics) GetOrCreateHistogramMeter(name string, buckets []int64) HistogramMeter {
	return p.getOrCreate(name, func() any {
		floatBuckets := make([]float64, len(buckets))
		for i, b := range buckets {
			floatBuckets[i] = float64(b)
		}
		meter := prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Buckets:   floatBuckets,
		})
		if err := prometheus.Register(meter); err != nil {
			logger.Warn("unable to register metric", "name", name, "err", err)
		}
		return &promHistogramMeter{meter}
	}).(HistogramMeter)
}

func (p *prometheusMetrics) GetOrCreateHistogramVecMeter(name string, labels []string, buckets []int64) HistogramVecMeter {
	return p.getOrCreate(name, func() any {
		floatBuckets := make([]float64, len(buckets))
		for i, b := range buckets {
			floatBuckets[i] = float64(b)
		}
		meter := prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Buckets:   floatBuckets,
		}, labels)
		if err := prometheus.Register(meter); err != nil {
			logger.Warn("unable to register metric", "name", name, "err", err)
		}
		return &promHistogramVecMeter{meter}
	}).(HistogramVecMeter)
}

func (p *prometheusMetrics) GetOrCreateHandler() http.Handler {
	return promhttp.Handler()
}

type promCountMeter struct {
	counter prometheus.Counter
}

func (m *promCountMeter) Add(v int64) { m.counter.Add(float64(v)) }

type promCountVecMeter struct {
	counter *prometheus.CounterVec
}

func (m *promCountVecMeter) AddWithLabel(v int64, labels map[string]string) {
	m.counter.With(labels).Add(float64(v))
}

type promGaugeMeter struct {
	gauge prometheus.Gauge
}

func (m *promGaugeMeter) Add(v int64) { m.gauge.Add(float64(v)) }
func (m *promGaugeMeter) Set(v int64) { m.gauge.Set(float64(v)) }

type promGaugeVecMeter struct {
	gauge *prometheus.GaugeVec
}

func (m *promGaugeVecMeter) AddWithLabel(v int64, labels map[string]string) {
	m.gauge.With(labels).Add(float64(v))
}

func (m *promGaugeVecMeter) SetWithLabel(v int64, labels map[string]string) {
	m.gauge.With(labels).Set(float64(v))
}

type promHistogramMeter struct {
	histogram prometheus.Histogram
}

func (m *promHistogramMeter) Observe(v int64) { m.histogram.Observe(float64(v)) }

type promHistogramVecMeter struct {
	histogram *prometheus.HistogramVec
}

func (m *promHistogramVecMeter) ObserveWithLabels(v int64, labels map[string]string) {
	m.histogram.With(labels).Observe(float64(v))
}
