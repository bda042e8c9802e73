package metric

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry_Handler(t *testing.T) {
	registry := NewMetricsRegistry()
	registry.CoreMetrics().RecordSerialization("Person")

	server := httptest.NewServer(registry.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `semld_serializer_documents_total{type="Person"} 1`)
}

func TestMetricsRegistry_WriteText(t *testing.T) {
	registry := NewMetricsRegistry()
	registry.CoreMetrics().RecordCycleBroken()
	registry.CoreMetrics().RecordParseError()

	var buf bytes.Buffer
	require.NoError(t, registry.WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, "# TYPE semld_expander_cycles_broken_total counter")
	assert.Contains(t, out, "semld_expander_cycles_broken_total 1")
	assert.Contains(t, out, "semld_graph_parse_errors_total 1")
}
