package pipeline

import (
	"testing"
	"time"
)

func TestAdaptiveBatchSizeGrowsWhenFast(t *testing.T) {
	b := NewAdaptiveBatchSize(3, 1, 32, 8, 16, 0.3)
	for i := 0; i < 5; i++ {
		b.ReportBatch(2 * time.Millisecond)
	}
	if b.BatchSize() <= 3 {
		t.Errorf("expected batch size to grow above initial 3 when consistently fast, got %d", b.BatchSize())
	}
}

func TestAdaptiveBatchSizeShrinksWhenSlow(t *testing.T) {
	b := NewAdaptiveBatchSize(8, 1, 32, 8, 16, 0.3)
	for i := 0; i < 5; i++ {
		b.ReportBatch(40 * time.Millisecond)
	}
	if b.BatchSize() >= 8 {
		t.Errorf("expected batch size to shrink below initial 8 when consistently slow, got %d", b.BatchSize())
	}
}

func TestAdaptiveBatchSizeRespectsMinAndMax(t *testing.T) {
	b := NewAdaptiveBatchSize(1, 1, 4, 8, 16, 0.3)
	for i := 0; i < 50; i++ {
		b.ReportBatch(1 * time.Millisecond)
	}
	if b.BatchSize() > 4 {
		t.Errorf("batch size should be capped at max 4, got %d", b.BatchSize())
	}

	b2 := NewAdaptiveBatchSize(4, 2, 32, 8, 16, 0.3)
	for i := 0; i < 50; i++ {
		b2.ReportBatch(100 * time.Millisecond)
	}
	if b2.BatchSize() < 2 {
		t.Errorf("batch size should floor at min 2, got %d", b2.BatchSize())
	}
}
