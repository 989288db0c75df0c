package cached

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/store"
)

type fakeProductStore struct {
	store.ProductStore
	gets int
	p    *models.Product
}

func (f *fakeProductStore) GetProductByID(ctx context.Context, exec store.Querier, id uuid.UUID) (*models.Product, error) {
	f.gets++
	return f.p, nil
}

func (f *fakeProductStore) UpdateProduct(ctx context.Context, exec store.Querier, p *models.Product) error {
	return nil
}

func TestProductStoreCachesReads(t *testing.T) {
	id := uuid.New()
	fake := &fakeProductStore{p: &models.Product{ID: id, Name: "Glenfiddich 12"}}
	cached := NewProductStore(fake, time.Minute)

	for i := 0; i < 3; i++ {
		p, err := cached.GetProductByID(context.Background(), nil, id)
		if err != nil {
			t.Fatal(err)
		}
		if p.Name != "Glenfiddich 12" {
			t.Fatalf("unexpected product name %q", p.Name)
		}
	}
	if fake.gets != 1 {
		t.Fatalf("expected 1 underlying fetch, got %d", fake.gets)
	}
}

func TestProductStoreInvalidatesOnUpdate(t *testing.T) {
	id := uuid.New()
	fake := &fakeProductStore{p: &models.Product{ID: id, Name: "Glenfiddich 12"}}
	cached := NewProductStore(fake, time.Minute)

	if _, err := cached.GetProductByID(context.Background(), nil, id); err != nil {
		t.Fatal(err)
	}
	if err := cached.UpdateProduct(context.Background(), nil, &models.Product{ID: id, Name: "Glenfiddich 12 Renamed"}); err != nil {
		t.Fatal(err)
	}

	fake.p = &models.Product{ID: id, Name: "Glenfiddich 12 Renamed", ABV: sql.NullFloat64{Float64: 40, Valid: true}}
	p, err := cached.GetProductByID(context.Background(), nil, id)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Glenfiddich 12 Renamed" {
		t.Fatalf("expected refreshed product after invalidation, got %q", p.Name)
	}
	if fake.gets != 2 {
		t.Fatalf("expected 2 underlying fetches (one before, one after invalidation), got %d", fake.gets)
	}
}
