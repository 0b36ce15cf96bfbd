// Package jobs holds the background jobs dispatched after a sale commits.
// They run on the queue workers, never on the request path: a failing job
// can delay an audit record or an alert, but it can never undo a sale.
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vendralabs/vendra/app/models"
	"github.com/vendralabs/vendra/app/store"
	"github.com/vendralabs/vendra/config"
	"github.com/vendralabs/vendra/pkg/auditlog"
	"github.com/vendralabs/vendra/pkg/cache"
	"github.com/vendralabs/vendra/pkg/notification"
	"github.com/vendralabs/vendra/pkg/queue"
)

// Register makes every job type known to the queue so workers can
// deserialize them. Call once at boot, before StartWorkers.
func Register() {
	queue.Register("*jobs.SaleAuditJob", func() queue.Job { return &SaleAuditJob{} })
	queue.Register("*jobs.LowStockAlertJob", func() queue.Job { return &LowStockAlertJob{} })
}

// ------------------- Sale audit -------------------

var (
	exporterMu sync.RWMutex
	exporter   *auditlog.Exporter
)

// SetExporter installs the MongoDB receipt exporter. Pass nil to disable;
// audit jobs then succeed as no-ops.
func SetExporter(e *auditlog.Exporter) {
	exporterMu.Lock()
	defer exporterMu.Unlock()
	exporter = e
}

// SaleAuditJob exports one sale receipt to the MongoDB audit trail.
type SaleAuditJob struct {
	Sale models.Sale `json:"sale"`
}

func (j *SaleAuditJob) Handle() error {
	exporterMu.RLock()
	e := exporter
	exporterMu.RUnlock()
	if e == nil {
		return nil
	}

	e.Export(auditlog.Receipt{
		SaleID:      j.Sale.ID,
		ProductID:   j.Sale.ProductID,
		ProductName: j.Sale.ProductName,
		Quantity:    j.Sale.QuantitySold,
		TotalAmount: j.Sale.TotalAmount,
		SaleDate:    j.Sale.SaleDate,
		RecordedAt:  time.Now(),
	})
	return nil
}

// ------------------- Low-stock alert -------------------

// alertCooldown bounds how often one product may alert. The Redis SetNX key
// expires after this; with no Redis every dispatch alerts.
const alertCooldown = 6 * time.Hour

// LowStockAlertJob notifies operators when a product's stock has dropped to
// or below the configured threshold. The store is re-read at run time so a
// restock between dispatch and execution suppresses a stale alert.
type LowStockAlertJob struct {
	ProductID uint `json:"productId"`

	// set by the dispatcher, not serialized
	store store.Store
}

// NewLowStockAlertJob builds an alert job bound to the given store.
func NewLowStockAlertJob(s store.Store, productID uint) *LowStockAlertJob {
	return &LowStockAlertJob{ProductID: productID, store: s}
}

var jobStore store.Store

// UseStore installs the store used by alert jobs that were rebuilt from the
// queue registry and so lost their bound store.
func UseStore(s store.Store) { jobStore = s }

func (j *LowStockAlertJob) Handle() error {
	st := j.store
	if st == nil {
		st = jobStore
	}
	if st == nil {
		return fmt.Errorf("low-stock alert: no store bound for product %d", j.ProductID)
	}

	p, err := st.GetProduct(j.ProductID)
	if err != nil {
		// Product deleted since dispatch; nothing to alert on.
		return nil
	}
	if p.Quantity > config.LowStockThreshold() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf("vendra:alert:low_stock:%d", p.ID)
	fresh, err := cache.SetNX(ctx, key, time.Now().Unix(), alertCooldown)
	if err != nil || !fresh {
		// Already alerted within the cooldown window.
		return nil
	}

	for _, e := range notification.Send(&lowStockNotification{product: p}) {
		if e != nil {
			return e
		}
	}
	return nil
}

// lowStockNotification renders the alert for Slack and plain webhooks.
type lowStockNotification struct {
	product models.Product
}

func (n *lowStockNotification) Via() []string {
	var channels []string
	if config.SlackWebhookURL() != "" {
		channels = append(channels, "slack")
	}
	if config.AlertWebhookURL() != "" {
		channels = append(channels, "webhook")
	}
	return channels
}

func (n *lowStockNotification) ToSlack() notification.SlackData {
	return notification.SlackData{
		WebhookURL: config.SlackWebhookURL(),
		Text:       "Low stock warning",
		Attachments: []notification.SlackAttachment{{
			Color:  "warning",
			Title:  n.product.Name,
			Text:   fmt.Sprintf("Only %d unit(s) left (threshold %d)", n.product.Quantity, config.LowStockThreshold()),
			Footer: "vendra inventory",
		}},
	}
}

func (n *lowStockNotification) ToWebhook() notification.WebhookData {
	return notification.WebhookData{
		URL: config.AlertWebhookURL(),
		Payload: map[string]interface{}{
			"event":     "inventory.low_stock",
			"productId": n.product.ID,
			"name":      n.product.Name,
			"quantity":  n.product.Quantity,
			"threshold": config.LowStockThreshold(),
		},
	}
}
