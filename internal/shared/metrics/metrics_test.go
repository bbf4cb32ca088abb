package metrics

import (
	"bytes"
	"strings"
	"testing"
)

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	var buf bytes.Buffer
	writeHistogram(&buf, "sample", "Sample", h.Snapshot())
	out := buf.String()

	for _, want := range []string{
		`sample_bucket{le="10"} 1`,
		`sample_bucket{le="100"} 2`,
		`sample_bucket{le="+Inf"} 3`,
		"sample_sum 555",
		"sample_count 3",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderIncludesCounters(t *testing.T) {
	before := imagesUploadedTotal.Load()
	IncImageUploaded()
	if imagesUploadedTotal.Load() != before+1 {
		t.Fatalf("expected counter to increase")
	}
	out := Render()
	for _, name := range []string{"images_uploaded_total", "storage_failures_total", "image_upload_bytes_count"} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in rendered metrics", name)
		}
	}
}
