package matcher

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func makeDocs(n int) []Document {
	docs := make([]Document, n)
	for i := range docs {
		docs[i] = Document{
			ID:         fmt.Sprintf("doc-%02d", i),
			Citations:  []string{"Smith（2O2O）", "Unknown（1900）"},
			References: []string{"Smith, J. (2020).", "Doe, A. (2019)."},
		}
	}
	return docs
}

func TestBatch_PreservesOrder(t *testing.T) {
	docs := makeDocs(12)
	m := New(DefaultOptions(), nil)

	for _, workers := range []int{1, 3, 16} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			reports, err := m.Batch(context.Background(), docs, workers)
			if err != nil {
				t.Fatalf("Batch: %v", err)
			}
			if len(reports) != len(docs) {
				t.Fatalf("got %d reports, want %d", len(reports), len(docs))
			}
			for i, r := range reports {
				if r.ID != docs[i].ID {
					t.Errorf("reports[%d].ID = %q, want %q", i, r.ID, docs[i].ID)
				}
				if r.Report.Stats.Matched != 1 || r.Report.Stats.Corrected != 1 {
					t.Errorf("reports[%d] stats = %+v", i, r.Report.Stats)
				}
			}
		})
	}
}

func TestBatch_MatchesSequentialRun(t *testing.T) {
	docs := makeDocs(4)
	m := New(DefaultOptions(), nil)

	reports, err := m.Batch(context.Background(), docs, 2)
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	for i, doc := range docs {
		want := m.Run(doc.Citations, doc.References)
		if reports[i].Report.Stats != want.Stats {
			t.Errorf("doc %d: stats %+v, want %+v", i, reports[i].Report.Stats, want.Stats)
		}
	}
}

func TestBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(DefaultOptions(), nil).Batch(ctx, makeDocs(3), 2)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Batch error = %v, want context.Canceled", err)
	}
}

func TestBatch_InvalidWorkers(t *testing.T) {
	if _, err := New(DefaultOptions(), nil).Batch(context.Background(), makeDocs(1), 0); err == nil {
		t.Error("expected error for zero workers")
	}
}

func TestBatch_Empty(t *testing.T) {
	reports, err := New(DefaultOptions(), nil).Batch(context.Background(), nil, 4)
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("got %d reports, want 0", len(reports))
	}
}
