package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleVersion(t *testing.T) {
	t.Run("build-time version wins", func(t *testing.T) {
		prev := Version
		Version = "1.4.2"
		t.Cleanup(func() { Version = prev })
		t.Setenv("VERSION", "from-env")

		rr := httptest.NewRecorder()
		HandleVersion()(rr, httptest.NewRequest(http.MethodGet, "/version", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var info VersionInfo
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
		assert.Equal(t, "1.4.2", info.Version)
		assert.Equal(t, runtime.Version(), info.GoVersion)
	})

	t.Run("falls back to VERSION", func(t *testing.T) {
		t.Setenv("VERSION", "from-env")

		assert.Equal(t, "from-env", currentVersion().Version)
	})
}
