package repository

import (
	"context"
	"testing"
)

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	data, err := kv.Get(ctx, "resume")
	if err != nil || data != nil {
		t.Fatalf("missing key: data=%q err=%v", data, err)
	}

	if err := kv.Set(ctx, "resume", []byte("blob")); err != nil {
		t.Fatal(err)
	}
	data, _ = kv.Get(ctx, "resume")
	if string(data) != "blob" {
		t.Errorf("got %q", data)
	}

	// Stored bytes are isolated from caller slices.
	src := []byte("mutable")
	kv.Set(ctx, "resume", src)
	src[0] = 'X'
	data, _ = kv.Get(ctx, "resume")
	if string(data) != "mutable" {
		t.Errorf("stored value aliased the caller slice: %q", data)
	}
	data[0] = 'Y'
	again, _ := kv.Get(ctx, "resume")
	if string(again) != "mutable" {
		t.Errorf("returned value aliased the stored slice: %q", again)
	}
}
