package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	imagesUploadedTotal   atomic.Uint64
	imagesRejectedTotal   atomic.Uint64
	imagesDeletedTotal    atomic.Uint64
	messagesCreatedTotal  atomic.Uint64
	messagesDeletedTotal  atomic.Uint64
	storageFailuresTotal  atomic.Uint64
	validationErrorsTotal atomic.Uint64

	uploadSize = newHistogram([]float64{16 << 10, 64 << 10, 256 << 10, 1 << 20, 2 << 20, 5 << 20})
)

// IncImageUploaded increments the stored image counter.
func IncImageUploaded() {
	imagesUploadedTotal.Add(1)
}

// IncImageRejected increments the rejected upload counter.
func IncImageRejected() {
	imagesRejectedTotal.Add(1)
}

// IncImageDeleted increments the deleted image counter.
func IncImageDeleted() {
	imagesDeletedTotal.Add(1)
}

// IncMessageCreated increments the stored message counter.
func IncMessageCreated() {
	messagesCreatedTotal.Add(1)
}

// IncMessageDeleted increments the deleted message counter.
func IncMessageDeleted() {
	messagesDeletedTotal.Add(1)
}

// IncStorageFailure increments the storage failure counter.
func IncStorageFailure() {
	storageFailuresTotal.Add(1)
}

// IncValidationError increments the rejected payload counter.
func IncValidationError() {
	validationErrorsTotal.Add(1)
}

// ObserveUploadBytes records the size of an accepted upload.
func ObserveUploadBytes(size int) {
	if size < 0 {
		size = 0
	}
	uploadSize.Observe(float64(size))
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "images_uploaded_total", "Total images stored", imagesUploadedTotal.Load())
	writeCounter(&buf, "images_rejected_total", "Total uploads rejected before storage", imagesRejectedTotal.Load())
	writeCounter(&buf, "images_deleted_total", "Total images deleted", imagesDeletedTotal.Load())
	writeCounter(&buf, "messages_created_total", "Total messages stored", messagesCreatedTotal.Load())
	writeCounter(&buf, "messages_deleted_total", "Total messages deleted", messagesDeletedTotal.Load())
	writeCounter(&buf, "storage_failures_total", "Total storage backend failures", storageFailuresTotal.Load())
	writeCounter(&buf, "validation_errors_total", "Total payloads rejected by validation", validationErrorsTotal.Load())
	writeHistogram(&buf, "image_upload_bytes", "Accepted upload size in bytes", uploadSize.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe counts value into the first bucket whose bound holds it; writeHistogram accumulates.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
