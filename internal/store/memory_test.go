package store

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryStoreContract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		return NewMemoryStore()
	})
}

func TestMemoryStoreSeedsMessages(t *testing.T) {
	s := NewMemoryStore("first", "second")
	msgs, err := s.ListMessages(context.Background())
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(msgs) != 2 || msgs[0].ID != 1 || msgs[1].Text != "second" {
		t.Fatalf("unexpected seed: %+v", msgs)
	}
	msg, err := s.AddMessage(context.Background(), "third")
	if err != nil {
		t.Fatalf("add message: %v", err)
	}
	if msg.ID != 3 {
		t.Fatalf("expected id 3 after seed, got %d", msg.ID)
	}
}

func TestMemoryStoreHonorsCanceledContext(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.AddImage(ctx, "a.png", "YQ=="); err == nil {
		t.Fatalf("expected error for canceled context")
	}
	count, _ := s.CountImages(context.Background())
	if count != 0 {
		t.Fatalf("expected no image stored, got %d", count)
	}
}

func TestMemoryStoreConcurrentAddsGetDistinctIDs(t *testing.T) {
	s := NewMemoryStore()
	const workers = 50

	var wg sync.WaitGroup
	ids := make(chan int64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			img, err := s.AddImage(context.Background(), "c.png", "Yw==")
			if err != nil {
				t.Errorf("add image: %v", err)
				return
			}
			ids <- img.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	count, _ := s.CountImages(context.Background())
	if count != workers || len(seen) != workers {
		t.Fatalf("expected %d images, got count=%d ids=%d", workers, count, len(seen))
	}
}
