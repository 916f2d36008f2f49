package driver

import (
	"context"
	"testing"
)

func openTestCache(t *testing.T) *LiftCache {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenLiftCache("crest")
	if err != nil {
		t.Fatalf("OpenLiftCache failed: %v", err)
	}
	return cache
}

func TestLiftCacheRoundTrip(t *testing.T) {
	cache := openTestCache(t)

	key := Digest{1, 2, 3}
	in := &Payload{
		Schema: liftCacheSchemaVersion,
		Module: "demo",
		Rounds: 2,
		Lifted: []LiftedEntry{
			{Name: "inner", OldSym: 2, NewSym: 9, Captured: []uint32{3}},
		},
	}
	if err := cache.Put(key, in); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	var out Payload
	ok, err := cache.Get(key, &out)
	if err != nil || !ok {
		t.Fatalf("Get = (%v, %v), want hit", ok, err)
	}
	if out.Module != in.Module || out.Rounds != in.Rounds || len(out.Lifted) != 1 {
		t.Fatalf("payload mismatch: %+v", out)
	}
	if syms := out.Lifted[0].CapturedSyms(); len(syms) != 1 || uint32(syms[0]) != 3 {
		t.Fatalf("captured symbols = %v", syms)
	}
}

func TestLiftCacheMiss(t *testing.T) {
	cache := openTestCache(t)

	var out Payload
	ok, err := cache.Get(Digest{9}, &out)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Fatalf("hit for a key that was never written")
	}
}

func TestLiftCacheRejectsStaleSchema(t *testing.T) {
	cache := openTestCache(t)

	key := Digest{4}
	if err := cache.Put(key, &Payload{Schema: liftCacheSchemaVersion + 1, Module: "old"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	var out Payload
	ok, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Fatalf("stale schema served as a hit")
	}
}

func TestLiftCacheDropAll(t *testing.T) {
	cache := openTestCache(t)

	key := Digest{7}
	if err := cache.Put(key, &Payload{Schema: liftCacheSchemaVersion, Module: "demo"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll failed: %v", err)
	}

	var out Payload
	ok, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get after DropAll failed: %v", err)
	}
	if ok {
		t.Fatalf("entry survived DropAll")
	}
}

func TestEliminateModuleWritesReport(t *testing.T) {
	cache := openTestCache(t)

	opts := Options{Cache: cache}
	opts.Lift.Validate = true

	m := buildNestedModule("cached")
	res, err := opts.EliminateModule(context.Background(), m)
	if err != nil {
		t.Fatalf("EliminateModule failed: %v", err)
	}

	// The report is keyed by the rewritten module's digest.
	var out Payload
	ok, err := cache.Get(ModuleDigest(m), &out)
	if err != nil || !ok {
		t.Fatalf("report lookup = (%v, %v), want hit", ok, err)
	}
	if out.Module != "cached" || len(out.Lifted) != len(res.Result.Lifted) {
		t.Fatalf("cached report mismatch: %+v", out)
	}
}
