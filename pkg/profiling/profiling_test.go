package profiling

import (
	"testing"

	"github.com/grafana/pyroscope-go"
	"github.com/oreline/careers-api/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfileTypes_Default(t *testing.T) {
	got, err := parseProfileTypes("")
	require.NoError(t, err)
	assert.Equal(t, defaultProfileTypes, got)
}

func TestParseProfileTypes_CustomDeduplicates(t *testing.T) {
	got, err := parseProfileTypes("cpu, mutex,cpu,,")
	require.NoError(t, err)

	assert.Equal(t, []pyroscope.ProfileType{
		pyroscope.ProfileCPU,
		pyroscope.ProfileMutexCount,
		pyroscope.ProfileMutexDuration,
	}, got)
}

func TestParseProfileTypes_Invalid(t *testing.T) {
	_, err := parseProfileTypes("cpu,unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported O11Y_PROFILING_SAMPLE_TYPES")
}

func TestBuildApplicationName(t *testing.T) {
	obs := config.ObservabilityConfig{
		ServiceName:      "careers-api",
		ServiceNamespace: "oreline-web",
		ServiceVersion:   "1.2.0",
	}

	got := buildApplicationName("", obs, "production")
	assert.Equal(t, "careers-api{service_name=careers-api,namespace=oreline-web,environment=production,service_version=1.2.0}", got)

	obs.ServiceInstanceID = "pod-7"
	got = buildApplicationName("careers", obs, "staging")
	assert.Equal(t, "careers{service_name=careers-api,namespace=oreline-web,environment=staging,service_version=1.2.0,instance=pod-7}", got)
}

func TestInitProfiler_DisabledIsNoop(t *testing.T) {
	stop, err := InitProfiler(config.ProfilingConfig{Enabled: false}, config.ObservabilityConfig{}, "development")
	require.NoError(t, err)
	require.NotNil(t, stop)
	stop()
}

func TestInitProfiler_EnabledRequiresEndpoint(t *testing.T) {
	_, err := InitProfiler(config.ProfilingConfig{Enabled: true, Endpoint: "  "}, config.ObservabilityConfig{}, "production")
	require.Error(t, err)
}
