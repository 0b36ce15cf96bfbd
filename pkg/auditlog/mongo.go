// Package auditlog asynchronously exports committed sale receipts to a
// MongoDB collection. It is designed for zero impact on the sale path:
//
//   - Receipts are enqueued into a buffered channel (non-blocking).
//   - A single background goroutine drains the channel and performs
//     InsertMany in configurable batch sizes (default 50).
//   - If the channel is full, the receipt is silently dropped; the store
//     remains the source of truth, the audit trail is best-effort.
//   - Graceful shutdown: call Close() to flush and disconnect.
package auditlog

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	queueSize = 4096 // buffered channel capacity
	batchSize = 50   // maximum documents per InsertMany
	drainTick = 2 * time.Second
)

// Receipt is the shape written to MongoDB for every committed sale.
type Receipt struct {
	SaleID      uint      `bson:"saleId"`
	ProductID   uint      `bson:"productId"`
	ProductName string    `bson:"productName"`
	Quantity    int       `bson:"quantitySold"`
	TotalAmount float64   `bson:"totalAmount"`
	SaleDate    time.Time `bson:"saleDate"`
	RecordedAt  time.Time `bson:"recordedAt"`
}

// Exporter batches sale receipts into MongoDB in the background.
type Exporter struct {
	col    *mongo.Collection
	client *mongo.Client
	queue  chan Receipt
	done   chan struct{}
}

// NewExporter connects to uri/db/collection and starts the drain loop.
// The caller must eventually call Close().
func NewExporter(uri, db, collection string) (*Exporter, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("auditlog: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("auditlog: ping: %w", err)
	}

	col := client.Database(db).Collection(collection)

	// Time-based index so the audit trail can be queried by date range.
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "saleDate", Value: -1}},
	})

	e := &Exporter{
		col:    col,
		client: client,
		queue:  make(chan Receipt, queueSize),
		done:   make(chan struct{}),
	}

	go e.drainLoop()
	return e, nil
}

// Export enqueues a receipt. It never blocks; when the queue is full the
// receipt is dropped.
func (e *Exporter) Export(r Receipt) {
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now()
	}
	select {
	case e.queue <- r:
	default:
		// dropped — the audit trail must never block a sale
	}
}

// drainLoop runs in the background, flushing queued receipts into MongoDB.
func (e *Exporter) drainLoop() {
	ticker := time.NewTicker(drainTick)
	defer ticker.Stop()

	batch := make([]interface{}, 0, batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, _ = e.col.InsertMany(ctx, batch) // errors are intentionally ignored
		batch = batch[:0]
	}

	for {
		select {
		case doc := <-e.queue:
			batch = append(batch, doc)
			if len(batch) >= batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-e.done:
			// Drain remaining items before exit.
			for len(e.queue) > 0 {
				batch = append(batch, <-e.queue)
			}
			flush()
			return
		}
	}
}

// Close flushes pending receipts and disconnects from MongoDB.
// Safe to call multiple times.
func (e *Exporter) Close() {
	select {
	case <-e.done:
	default:
		close(e.done)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = e.client.Disconnect(ctx)
}
