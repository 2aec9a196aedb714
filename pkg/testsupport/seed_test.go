package testsupport

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-catalog-sync/catalog"
	"github.com/goliatone/go-catalog-sync/kv/memory"
	"github.com/goliatone/go-catalog-sync/record"
)

func newService() *catalog.Service {
	store := memory.New()
	codec := record.NewJSONCodec()
	return catalog.NewService(
		record.NewRepository(store, codec, catalog.CategoryHandlers()),
		record.NewRepository(store, codec, catalog.ItemHandlers()),
		record.NewRepository(store, codec, catalog.OrderHandlers()),
	)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	categories, items, err := Seed(ctx, svc)
	if err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}
	if want := len(SampleCategories()); categories != want {
		t.Fatalf("expected %d categories, got %d", want, categories)
	}
	if want := len(SampleItems(func(string) string { return "" })); items != want {
		t.Fatalf("expected %d items, got %d", want, items)
	}

	// Every sample item with a category name must resolve to a real category.
	listed, err := svc.ListItems(ctx, "")
	if err != nil {
		t.Fatalf("ListItems returned error: %v", err)
	}
	uncategorized := 0
	for _, item := range listed {
		if item.CategoryID == "" {
			uncategorized++
			continue
		}
		if _, err := svc.GetCategory(ctx, item.CategoryID); err != nil {
			t.Fatalf("item %q references missing category %q: %v", item.Names["en"], item.CategoryID, err)
		}
	}
	if uncategorized != 1 {
		t.Fatalf("expected exactly one uncategorized sample item, got %d", uncategorized)
	}
}

func TestSeed_IsRerunSafeOnFreshStore(t *testing.T) {
	ctx := context.Background()

	// Two independent stores seed to identical counts.
	c1, i1, err := Seed(ctx, newService())
	if err != nil {
		t.Fatalf("first seed failed: %v", err)
	}
	c2, i2, err := Seed(ctx, newService())
	if err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	if c1 != c2 || i1 != i2 {
		t.Fatalf("seed counts diverged: (%d,%d) vs (%d,%d)", c1, i1, c2, i2)
	}
}

func TestLoadFixtureJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")

	fixture := []catalog.Item{{Names: map[string]string{"en": "Flat White"}, Price: 3.80}}
	data, err := json.Marshal(fixture)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var loaded []catalog.Item
	LoadFixtureJSON(t, path, &loaded)

	if len(loaded) != 1 || loaded[0].Names["en"] != "Flat White" {
		t.Fatalf("unexpected fixture contents: %+v", loaded)
	}
}

func TestFixturePath(t *testing.T) {
	if got, want := FixturePath("items.json"), filepath.Join("testdata", "items.json"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
