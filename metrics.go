// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// snapshotter is satisfied by *Session.
type snapshotter interface {
	Snapshot() TreeSnapshot
}

// treeCollector exports the tree size and operation counters. Values are
// read from a session snapshot at scrape time.
type treeCollector struct {
	source snapshotter

	records    *prometheus.Desc
	height     *prometheus.Desc
	operations *prometheus.Desc
	rotations  *prometheus.Desc
}

func newTreeCollector(source snapshotter) *treeCollector {
	return &treeCollector{
		source: source,
		records: prometheus.NewDesc("roster_tree_records",
			"Number of records held in the tree.", nil, nil),
		height: prometheus.NewDesc("roster_tree_height",
			"Height of the tree, counting a lone root as 1.", nil, nil),
		operations: prometheus.NewDesc("roster_tree_operations_total",
			"Tree operations by kind and outcome.", []string{"op", "outcome"}, nil),
		rotations: prometheus.NewDesc("roster_tree_rotations_total",
			"Rebalancing rotations by kind.", []string{"kind"}, nil),
	}
}

func (c *treeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.records
	ch <- c.height
	ch <- c.operations
	ch <- c.rotations
}

func (c *treeCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.source.Snapshot()
	st := snap.Stats

	ch <- prometheus.MustNewConstMetric(c.records, prometheus.GaugeValue, float64(snap.Len))
	ch <- prometheus.MustNewConstMetric(c.height, prometheus.GaugeValue, float64(snap.Height))

	ch <- prometheus.MustNewConstMetric(c.operations, prometheus.CounterValue, float64(st.Inserts), "insert", "ok")
	ch <- prometheus.MustNewConstMetric(c.operations, prometheus.CounterValue, float64(st.DuplicateKeys), "insert", "duplicate")
	ch <- prometheus.MustNewConstMetric(c.operations, prometheus.CounterValue, float64(st.Deletes), "delete", "ok")
	ch <- prometheus.MustNewConstMetric(c.operations, prometheus.CounterValue, float64(st.MissingKeys), "delete", "missing")

	ch <- prometheus.MustNewConstMetric(c.rotations, prometheus.CounterValue, float64(st.SingleRotations), "single")
	ch <- prometheus.MustNewConstMetric(c.rotations, prometheus.CounterValue, float64(st.DoubleRotations), "double")
}

func newMetricsRegistry(source snapshotter) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(newTreeCollector(source))
	return reg
}

// serveMetrics exposes reg on addr under /metrics. The returned server is
// already listening in the background; callers shut it down when done.
func serveMetrics(addr string, reg *prometheus.Registry, logger zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
		}
	}()
	return srv
}
