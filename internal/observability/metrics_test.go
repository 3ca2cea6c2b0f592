package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	t.Parallel()

	m := NewMetrics()

	m.RecordAction("login")
	m.RecordAction("login")
	m.RecordAction("getTeas")
	require.Equal(t, int64(2), m.ActionCount("login"))
	require.Equal(t, int64(1), m.ActionCount("getTeas"))
	require.Equal(t, int64(0), m.ActionCount("signup"))

	m.RecordRequest("/", "POST", 200, time.Millisecond)
	m.RecordRequest("/", "POST", 200, time.Millisecond)
	m.RecordRequest("/", "POST", 404, time.Millisecond)
	require.Equal(t, int64(2), m.RequestCount("/", "POST", 200))
	require.Equal(t, int64(1), m.RequestCount("/", "POST", 404))

	m.RecordError("/", "POST", "INTERNAL_ERROR")
	require.Equal(t, int64(1), m.ErrorCount("/", "POST", "INTERNAL_ERROR"))
}

func TestMetrics_NilReceiver(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.RecordAction("login")
	m.RecordRequest("/", "POST", 200, 0)
	m.RecordError("/", "POST", "INTERNAL_ERROR")
	require.Equal(t, int64(0), m.ActionCount("login"))
	require.Equal(t, int64(0), m.RequestCount("/", "POST", 200))
	require.Equal(t, int64(0), m.ErrorCount("/", "POST", "INTERNAL_ERROR"))
}
