package jobs

import (
	"io"
	gohttp "net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendralabs/vendra/app/store"
	vendrahttp "github.com/vendralabs/vendra/pkg/http"
)

// roundTripFunc lets a test intercept outbound HTTP.
type roundTripFunc func(*gohttp.Request) (*gohttp.Response, error)

func (f roundTripFunc) RoundTrip(r *gohttp.Request) (*gohttp.Response, error) { return f(r) }

func interceptHTTP(t *testing.T, fn roundTripFunc) {
	t.Helper()
	vendrahttp.DefaultClient.Transport = fn
	t.Cleanup(vendrahttp.ResetTransport)
}

func TestLowStockAlertJob_SendsSlackAlert(t *testing.T) {
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.test/T000/B000")
	t.Setenv("ALERT_WEBHOOK_URL", "")
	t.Setenv("LOW_STOCK_THRESHOLD", "5")

	st := store.NewMemoryStore()
	p, err := st.AddProduct("Webcam", 2, 59.00)
	require.NoError(t, err)

	var gotURL, gotBody string
	interceptHTTP(t, func(r *gohttp.Request) (*gohttp.Response, error) {
		gotURL = r.URL.String()
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		return &gohttp.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader("ok")),
			Header:     gohttp.Header{},
		}, nil
	})

	require.NoError(t, NewLowStockAlertJob(st, p.ID).Handle())

	assert.Equal(t, "https://hooks.slack.test/T000/B000", gotURL)
	assert.Contains(t, gotBody, "Webcam")
	assert.Contains(t, gotBody, "Low stock warning")
}

func TestLowStockAlertJob_AboveThresholdIsSilent(t *testing.T) {
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.test/T000/B000")
	t.Setenv("LOW_STOCK_THRESHOLD", "5")

	st := store.NewMemoryStore()
	p, err := st.AddProduct("Webcam", 50, 59.00)
	require.NoError(t, err)

	interceptHTTP(t, func(r *gohttp.Request) (*gohttp.Response, error) {
		t.Fatalf("unexpected outbound request to %s", r.URL)
		return nil, nil
	})

	assert.NoError(t, NewLowStockAlertJob(st, p.ID).Handle())
}

func TestLowStockAlertJob_DeletedProductIsSilent(t *testing.T) {
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.test/T000/B000")

	st := store.NewMemoryStore()
	interceptHTTP(t, func(r *gohttp.Request) (*gohttp.Response, error) {
		t.Fatalf("unexpected outbound request to %s", r.URL)
		return nil, nil
	})

	assert.NoError(t, NewLowStockAlertJob(st, 404).Handle())
}

func TestLowStockAlertJob_WebhookChannel(t *testing.T) {
	t.Setenv("SLACK_WEBHOOK_URL", "")
	t.Setenv("ALERT_WEBHOOK_URL", "https://ops.example.test/hooks/stock")
	t.Setenv("LOW_STOCK_THRESHOLD", "5")

	st := store.NewMemoryStore()
	p, err := st.AddProduct("Tripod", 1, 25.00)
	require.NoError(t, err)

	var gotURL, gotBody string
	interceptHTTP(t, func(r *gohttp.Request) (*gohttp.Response, error) {
		gotURL = r.URL.String()
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		return &gohttp.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader("ok")),
			Header:     gohttp.Header{},
		}, nil
	})

	require.NoError(t, NewLowStockAlertJob(st, p.ID).Handle())

	assert.Equal(t, "https://ops.example.test/hooks/stock", gotURL)
	assert.Contains(t, gotBody, `"event":"inventory.low_stock"`)
	assert.Contains(t, gotBody, `"quantity":1`)
}

func TestSaleAuditJob_NoExporterIsNoop(t *testing.T) {
	SetExporter(nil)
	assert.NoError(t, (&SaleAuditJob{}).Handle())
}
