package store

import (
	"context"
	"errors"
	"math"
	"testing"
)

// runStoreContract exercises behavior every Store backend must share. newStore must return an
// empty store with no seeded messages.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		s := newStore(t)
		got, err := s.ListImages(ctx, 1, 10)
		if err != nil {
			t.Fatalf("list images: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", got)
		}
		count, err := s.CountImages(ctx)
		if err != nil {
			t.Fatalf("count images: %v", err)
		}
		if count != 0 {
			t.Fatalf("expected 0 images, got %d", count)
		}
	})

	t.Run("pages newest first", func(t *testing.T) {
		s := newStore(t)
		for _, name := range []string{"a.png", "b.png", "c.png"} {
			if _, err := s.AddImage(ctx, name, "aGk="); err != nil {
				t.Fatalf("add %s: %v", name, err)
			}
		}
		assertFilenames(t, s, 1, 2, "c.png", "b.png")
		assertFilenames(t, s, 2, 2, "a.png")
		assertFilenames(t, s, 3, 2)
		assertFilenames(t, s, 1, 10, "c.png", "b.png", "a.png")
		assertFilenames(t, s, 1, math.MaxInt, "c.png", "b.png", "a.png")
	})

	t.Run("huge page is empty", func(t *testing.T) {
		s := newStore(t)
		if _, err := s.AddImage(ctx, "a.png", "YQ=="); err != nil {
			t.Fatalf("add image: %v", err)
		}
		for _, args := range [][2]int{{math.MaxInt, 2}, {math.MaxInt, 1}, {math.MaxInt/2 + 2, 2}} {
			got, err := s.ListImages(ctx, args[0], args[1])
			if err != nil {
				t.Fatalf("ListImages(%d, %d): %v", args[0], args[1], err)
			}
			if got == nil || len(got) != 0 {
				t.Fatalf("ListImages(%d, %d): expected empty page, got %+v", args[0], args[1], got)
			}
		}
	})

	t.Run("image round trip", func(t *testing.T) {
		s := newStore(t)
		img, err := s.AddImage(ctx, "pic.png", "iVBORw0KGgo=")
		if err != nil {
			t.Fatalf("add image: %v", err)
		}
		if img.ID < 1 || img.Filename != "pic.png" || img.Data != "iVBORw0KGgo=" {
			t.Fatalf("unexpected image: %+v", img)
		}
		got, err := s.ListImages(ctx, 1, 1)
		if err != nil {
			t.Fatalf("list images: %v", err)
		}
		if len(got) != 1 || got[0] != img {
			t.Fatalf("expected %+v, got %+v", img, got)
		}
	})

	t.Run("delete image once", func(t *testing.T) {
		s := newStore(t)
		img, err := s.AddImage(ctx, "x.png", "eA==")
		if err != nil {
			t.Fatalf("add image: %v", err)
		}
		deleted, err := s.DeleteImage(ctx, img.ID)
		if err != nil || !deleted {
			t.Fatalf("first delete: deleted=%v err=%v", deleted, err)
		}
		deleted, err = s.DeleteImage(ctx, img.ID)
		if err != nil || deleted {
			t.Fatalf("second delete: deleted=%v err=%v", deleted, err)
		}
		deleted, err = s.DeleteImage(ctx, 999)
		if err != nil || deleted {
			t.Fatalf("unknown delete: deleted=%v err=%v", deleted, err)
		}
	})

	t.Run("count after adds and deletes", func(t *testing.T) {
		s := newStore(t)
		var ids []int64
		for i := 0; i < 7; i++ {
			img, err := s.AddImage(ctx, "n.png", "bg==")
			if err != nil {
				t.Fatalf("add image: %v", err)
			}
			ids = append(ids, img.ID)
		}
		for _, id := range ids[:3] {
			if ok, err := s.DeleteImage(ctx, id); err != nil || !ok {
				t.Fatalf("delete %d: ok=%v err=%v", id, ok, err)
			}
		}
		count, err := s.CountImages(ctx)
		if err != nil {
			t.Fatalf("count images: %v", err)
		}
		if count != 4 {
			t.Fatalf("expected 4 images, got %d", count)
		}
	})

	t.Run("ids are not reused", func(t *testing.T) {
		s := newStore(t)
		first, _ := s.AddImage(ctx, "1.png", "MQ==")
		if _, err := s.DeleteImage(ctx, first.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		second, err := s.AddImage(ctx, "2.png", "Mg==")
		if err != nil {
			t.Fatalf("add image: %v", err)
		}
		if second.ID <= first.ID {
			t.Fatalf("expected id above %d, got %d", first.ID, second.ID)
		}
	})

	t.Run("messages", func(t *testing.T) {
		s := newStore(t)
		msg, err := s.AddMessage(ctx, "hi")
		if err != nil {
			t.Fatalf("add message: %v", err)
		}
		if msg.ID != 1 || msg.Text != "hi" {
			t.Fatalf("unexpected message: %+v", msg)
		}
		if ok, err := s.DeleteMessage(ctx, 1); err != nil || !ok {
			t.Fatalf("first delete: ok=%v err=%v", ok, err)
		}
		if ok, err := s.DeleteMessage(ctx, 1); err != nil || ok {
			t.Fatalf("second delete: ok=%v err=%v", ok, err)
		}
		msgs, err := s.ListMessages(ctx)
		if err != nil {
			t.Fatalf("list messages: %v", err)
		}
		if msgs == nil || len(msgs) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", msgs)
		}
	})

	t.Run("messages listed in id order", func(t *testing.T) {
		s := newStore(t)
		for _, text := range []string{"one", "two", "three"} {
			if _, err := s.AddMessage(ctx, text); err != nil {
				t.Fatalf("add message: %v", err)
			}
		}
		msgs, err := s.ListMessages(ctx)
		if err != nil {
			t.Fatalf("list messages: %v", err)
		}
		if len(msgs) != 3 || msgs[0].Text != "one" || msgs[2].Text != "three" {
			t.Fatalf("unexpected messages: %+v", msgs)
		}
	})

	t.Run("invalid window", func(t *testing.T) {
		s := newStore(t)
		for _, args := range [][2]int{{0, 10}, {1, 0}, {-1, 5}} {
			_, err := s.ListImages(ctx, args[0], args[1])
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("ListImages(%d, %d): expected ErrInvalidInput, got %v", args[0], args[1], err)
			}
		}
	})
}

func assertFilenames(t *testing.T, s Store, page, limit int, want ...string) {
	t.Helper()
	got, err := s.ListImages(context.Background(), page, limit)
	if err != nil {
		t.Fatalf("list page %d limit %d: %v", page, limit, err)
	}
	if len(got) != len(want) {
		t.Fatalf("page %d limit %d: expected %d images, got %d", page, limit, len(want), len(got))
	}
	for i, name := range want {
		if got[i].Filename != name {
			t.Fatalf("page %d limit %d index %d: expected %s, got %s", page, limit, i, name, got[i].Filename)
		}
	}
}
