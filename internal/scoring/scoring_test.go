package scoring

import (
	"database/sql"
	"testing"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
)

func TestScoreBuckets(t *testing.T) {
	tests := []struct {
		name string
		p    models.Product
		want int
	}{
		{"empty product scores zero", models.Product{}, 0},
		{
			"identification only",
			models.Product{Name: "Glenfiddich 12", BrandID: sql.NullString{String: "b1", Valid: true}},
			15,
		},
		{
			"basic info only",
			models.Product{
				ProductType: models.ProductTypeWhiskey,
				ABV:         sql.NullFloat64{Float64: 40, Valid: true},
				Description: sql.NullString{String: "a fine dram", Valid: true},
			},
			15,
		},
		{
			"source count 2 scores 5, not 10",
			models.Product{SourceCount: 2},
			5,
		},
		{
			"source count 3 scores full 10",
			models.Product{SourceCount: 3},
			10,
		},
		{
			"all buckets full caps at 100",
			fullyPopulatedProduct(),
			100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(&tt.p); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func fullyPopulatedProduct() models.Product {
	p := models.Product{
		Name:        "Glenfiddich 12",
		BrandID:     sql.NullString{String: "b1", Valid: true},
		ProductType: models.ProductTypeWhiskey,
		ABV:         sql.NullFloat64{Float64: 40, Valid: true},
		Description: sql.NullString{String: "a fine dram", Valid: true},
		SourceCount: 3,
	}
	p.PalateFlavors = []string{"vanilla"}
	p.PalateDescription = sql.NullString{String: "sweet", Valid: true}
	p.MidPalateEvolution = sql.NullString{String: "builds", Valid: true}
	p.Mouthfeel = sql.NullString{String: "oily", Valid: true}
	p.NoseDescription = sql.NullString{String: "fruity", Valid: true}
	p.PrimaryAromas = []string{"apple"}
	p.FinishDescription = sql.NullString{String: "long", Valid: true}
	p.FinishFlavors = []string{"oak"}
	p.FinishLength = sql.NullString{String: "long", Valid: true}
	p.BestPrice = sql.NullFloat64{Float64: 45.0, Valid: true}
	p.Images = []byte(`["x"]`)
	p.Ratings = []byte(`[4.5]`)
	p.Awards = []byte(`["gold"]`)
	return p
}

func TestStatusMandatoryPalateRule(t *testing.T) {
	tests := []struct {
		name      string
		score     int
		hasPalate bool
		manual    models.ProductStatusEnum
		want      models.ProductStatusEnum
	}{
		{"below 30 is incomplete regardless of palate", 10, true, "", models.ProductStatusIncomplete},
		{"29 is incomplete", 29, true, "", models.ProductStatusIncomplete},
		{"30 is partial", 30, false, "", models.ProductStatusPartial},
		{"59 is partial", 59, true, "", models.ProductStatusPartial},
		{"60 with palate is complete", 60, true, "", models.ProductStatusComplete},
		{"79 with palate is complete", 79, true, "", models.ProductStatusComplete},
		{"60 without palate stays partial", 60, false, "", models.ProductStatusPartial},
		{"99 without palate stays partial", 99, false, "", models.ProductStatusPartial},
		{"80 with palate is verified", 80, true, "", models.ProductStatusVerified},
		{"100 with palate is verified", 100, true, "", models.ProductStatusVerified},
		{"100 without palate never promotes past partial", 100, false, "", models.ProductStatusPartial},
		{"manually rejected stays rejected regardless of score", 100, true, models.ProductStatusRejected, models.ProductStatusRejected},
		{"manually merged stays merged regardless of score", 80, true, models.ProductStatusMerged, models.ProductStatusMerged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &models.Product{Status: tt.manual}
			if tt.hasPalate {
				p.PalateDescription = sql.NullString{String: "sweet", Valid: true}
			}
			if got := Status(p, tt.score); got != tt.want {
				t.Errorf("Status(score=%d, hasPalate=%v) = %v, want %v", tt.score, tt.hasPalate, got, tt.want)
			}
		})
	}
}

func TestApplySetsScoreAndStatus(t *testing.T) {
	p := &models.Product{
		Name:              "Glenfiddich 12",
		ProductType:       models.ProductTypeWhiskey,
		ABV:               sql.NullFloat64{Float64: 40, Valid: true},
		PalateDescription: sql.NullString{String: "sweet", Valid: true},
	}
	Apply(p)
	if p.CompletenessScore == 0 {
		t.Fatal("Apply() left CompletenessScore at zero")
	}
	if p.Status == "" {
		t.Fatal("Apply() left Status unset")
	}
}
