// Copyright (c) 2015-2025 MinIO, Inc.
//
// This file is part of MinIO Object Storage stack
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package cmd

import (
	"github.com/bucketctl/bucketctl/pkg/probe"
	"github.com/prometheus/client_golang/prometheus"
)

// Operation counters, written to --metrics-file when the command exits.
var (
	globalMetricsRegistry = prometheus.NewRegistry()

	operationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: globalAppName,
		Name:      "operations_total",
		Help:      "Object store operations by outcome.",
	}, []string{"operation", "status"})

	transferredBytesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: globalAppName,
		Name:      "transferred_bytes_total",
		Help:      "Bytes moved between the local filesystem and the object store.",
	}, []string{"direction"})
)

func init() {
	globalMetricsRegistry.MustRegister(operationsTotal, transferredBytesTotal)
}

// recordOperation counts one operation and the bytes it moved.
func recordOperation(operation string, size int64, err *probe.Error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	operationsTotal.WithLabelValues(operation, status).Inc()
	if err != nil || size <= 0 {
		return
	}
	switch operation {
	case "upload":
		transferredBytesTotal.WithLabelValues("upload").Add(float64(size))
	case "download":
		transferredBytesTotal.WithLabelValues("download").Add(float64(size))
	}
}

// recordBatch counts every non skipped item of a batch.
func recordBatch(r *BatchResult) {
	if r == nil || r.DryRun {
		return
	}
	for _, item := range r.Items {
		if item.Skipped {
			continue
		}
		recordOperation(r.Op, item.Size, item.Err)
	}
}

// writeMetrics saves the counters in the Prometheus text format. A
// temporary file is renamed into place, as the textfile collector expects.
func writeMetrics(path string) *probe.Error {
	if path == "" {
		return nil
	}
	return probe.NewError(prometheus.WriteToTextfile(path, globalMetricsRegistry))
}

// flushMetrics writes the counters when --metrics-file is set.
func flushMetrics() {
	if globalMetricsFilePath == "" {
		return
	}
	errorIf(writeMetrics(globalMetricsFilePath).Trace(globalMetricsFilePath), "Unable to write metrics.")
}
