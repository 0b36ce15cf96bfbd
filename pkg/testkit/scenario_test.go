// Package testkit_test is the framework's self-test: a tiny handler plus a
// scenario directory exercising the loader, the assertions, and the
// outgoing-HTTP mock transport.
package testkit_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vendrahttp "github.com/vendralabs/vendra/pkg/http"
	"github.com/vendralabs/vendra/pkg/testkit"
)

// testHandler backs the self-test scenarios. /relay makes an outbound call
// through Vendra's HTTP client so the mock transport has something to catch.
var testHandler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.URL.Path {
	case "/health":
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	case "/relay":
		res, err := vendrahttp.Post("https://partner.example/notify").
			Body(map[string]string{"ping": "pong"}).
			Send()
		if err != nil || !res.OK() {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"relayed":false}`)) //nolint:errcheck
			return
		}
		w.Write([]byte(`{"relayed":true}`)) //nolint:errcheck
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`)) //nolint:errcheck
	}
})

func TestRunDir(t *testing.T) {
	testkit.RunDir(t, testHandler, "testdata")
}

func TestLoadScenario_Validation(t *testing.T) {
	s, err := testkit.LoadScenario("testdata/relay.json")
	require.NoError(t, err)

	assert.Equal(t, "POST", s.RequestMethod)
	assert.Equal(t, "/relay", s.RequestURL)
	assert.True(t, s.IsMockRequired)
	require.Len(t, s.HTTPMockSteps, 1)
	assert.Equal(t, "https://partner.example/", s.HTTPMockSteps[0].MatchURL)

	_, err = testkit.LoadScenario("testdata/bodies/relay_res.json")
	assert.Error(t, err, "a bare body file must not parse as a scenario")
}
