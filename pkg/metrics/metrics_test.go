package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordTransition(t *testing.T) {
	m := NewWithRegisterer("test", prometheus.NewRegistry())

	m.RecordTransition("pending", "approved")
	m.RecordTransition("pending", "approved")
	m.RecordTransition("approved", "cancelled")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingTransitions.WithLabelValues("pending", "approved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingTransitions.WithLabelValues("approved", "cancelled")))
}

func TestRecordTransition_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.RecordTransition("pending", "rejected") })
}
