// Package models defines the typed columnar entities of the data model (§3):
// Source, CrawlJob, Product (with its tasting profile and type-specific
// detail records), Award, FieldProvenance, Brand, QueueEntry, CrawlError and
// CostRecord. Fields are typed columns throughout — enrichment outputs whose
// schema is genuinely open (images, ratings, award metadata) are the only
// opaque JSON columns, per the "never opaque blobs" design note (§9).
package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Brand is a shared brand/distillery name referenced by Product.
type Brand struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	Country   sql.NullString `db:"country" json:"country,omitempty"`
	Region    sql.NullString `db:"region" json:"region,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Source is a crawlable origin (§3).
type Source struct {
	ID   uuid.UUID          `db:"id" json:"id"`
	Name string             `db:"name" json:"name"`
	Slug string             `db:"slug" json:"slug"`
	BaseURL  string         `db:"base_url" json:"baseUrl"`
	Category SourceCategoryEnum `db:"category" json:"category"`
	ProductTypes pq.StringArray `db:"product_types" json:"productTypes"`

	Priority          int `db:"priority" json:"priority"`
	CrawlFrequencyHours int `db:"crawl_frequency_hours" json:"crawlFrequencyHours"`
	RateLimitRPM      int `db:"rate_limit_requests_per_minute" json:"rateLimitRequestsPerMinute"`

	RequiresJS            bool `db:"requires_js" json:"requiresJs"`
	RequiresProxy         bool `db:"requires_proxy" json:"requiresProxy"`
	RequiresManagedProxy  bool `db:"requires_managed_proxy" json:"requiresManagedProxy"`
	AgeGateMechanism      AgeGateMechanismEnum `db:"age_gate_mechanism" json:"ageGateMechanism"`
	AgeGateCookies        json.RawMessage      `db:"age_gate_cookies" json:"ageGateCookies,omitempty"`

	DiscoveryProvenance DiscoveryProvenanceEnum `db:"discovery_provenance" json:"discoveryProvenance"`

	RobotsOK bool `db:"robots_ok" json:"robotsOk"`
	TosOK    bool `db:"tos_ok" json:"tosOk"`

	Active       bool         `db:"active" json:"active"`
	LastCrawlAt  sql.NullTime `db:"last_crawl_at" json:"lastCrawlAt,omitempty"`
	NextCrawlAt  sql.NullTime `db:"next_crawl_at" json:"nextCrawlAt,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// IsDue reports whether the Source is due for a crawl: active and either
// never crawled or now >= next_crawl_at (§3 invariant).
func (s *Source) IsDue(now time.Time) bool {
	if !s.Active {
		return false
	}
	if !s.NextCrawlAt.Valid {
		return true
	}
	return !now.Before(s.NextCrawlAt.Time)
}

// ScheduleNext advances last/next crawl timestamps after a completed run.
func (s *Source) ScheduleNext(now time.Time) {
	s.LastCrawlAt = sql.NullTime{Time: now, Valid: true}
	freq := s.CrawlFrequencyHours
	if freq <= 0 {
		freq = 24
	}
	s.NextCrawlAt = sql.NullTime{Time: now.Add(time.Duration(freq) * time.Hour), Valid: true}
}

// CrawlJob is one execution against a Source (§3).
type CrawlJob struct {
	ID       uuid.UUID          `db:"id" json:"id"`
	SourceID uuid.UUID          `db:"source_id" json:"sourceId"`
	Status   CrawlJobStatusEnum `db:"status" json:"status"`

	PagesCrawled    int `db:"pages_crawled" json:"pagesCrawled"`
	ProductsFound   int `db:"products_found" json:"productsFound"`
	ProductsNew     int `db:"products_new" json:"productsNew"`
	ProductsUpdated int `db:"products_updated" json:"productsUpdated"`
	ErrorCount      int `db:"error_count" json:"errorCount"`

	StartedAt   sql.NullTime `db:"started_at" json:"startedAt,omitempty"`
	CompletedAt sql.NullTime `db:"completed_at" json:"completedAt,omitempty"`
	DurationMS  int64        `db:"duration_ms" json:"durationMs"`

	ResultSummary string `db:"result_summary" json:"resultSummary,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// TastingProfile holds the optional, fully typed tasting columns (§3).
type TastingProfile struct {
	ColorDescription sql.NullString `db:"color_description" json:"colorDescription,omitempty"`
	ColorIntensity   sql.NullString `db:"color_intensity" json:"colorIntensity,omitempty"`
	Clarity          sql.NullString `db:"clarity" json:"clarity,omitempty"`
	Viscosity        sql.NullString `db:"viscosity" json:"viscosity,omitempty"`

	NoseDescription sql.NullString `db:"nose_description" json:"noseDescription,omitempty"`
	PrimaryAromas   pq.StringArray `db:"primary_aromas" json:"primaryAromas,omitempty"`
	NoseIntensity   sql.NullString `db:"nose_intensity" json:"noseIntensity,omitempty"`
	SecondaryAromas pq.StringArray `db:"secondary_aromas" json:"secondaryAromas,omitempty"`
	NoseEvolution   sql.NullString `db:"nose_evolution" json:"noseEvolution,omitempty"`

	InitialTaste        sql.NullString `db:"initial_taste" json:"initialTaste,omitempty"`
	MidPalateEvolution  sql.NullString `db:"mid_palate_evolution" json:"midPalateEvolution,omitempty"`
	PalateDescription   sql.NullString `db:"palate_description" json:"palateDescription,omitempty"`
	PalateFlavors       pq.StringArray `db:"palate_flavors" json:"palateFlavors,omitempty"`
	FlavorIntensity     sql.NullString `db:"flavor_intensity" json:"flavorIntensity,omitempty"`
	Complexity          sql.NullString `db:"complexity" json:"complexity,omitempty"`
	Mouthfeel           sql.NullString `db:"mouthfeel" json:"mouthfeel,omitempty"`

	FinishDescription sql.NullString `db:"finish_description" json:"finishDescription,omitempty"`
	FinishFlavors     pq.StringArray `db:"finish_flavors" json:"finishFlavors,omitempty"`
	FinishLength      sql.NullString `db:"finish_length" json:"finishLength,omitempty"`
	FinishWarmth      sql.NullString `db:"finish_warmth" json:"finishWarmth,omitempty"`
	FinishDryness     sql.NullString `db:"finish_dryness" json:"finishDryness,omitempty"`
	FinishEvolution   sql.NullString `db:"finish_evolution" json:"finishEvolution,omitempty"`
	FinishFinalNotes  sql.NullString `db:"finish_final_notes" json:"finishFinalNotes,omitempty"`

	OverallBalance          sql.NullString `db:"overall_balance" json:"overallBalance,omitempty"`
	OverallComplexity       sql.NullString `db:"overall_complexity" json:"overallComplexity,omitempty"`
	OverallUniqueness       sql.NullString `db:"overall_uniqueness" json:"overallUniqueness,omitempty"`
	OverallDrinkability     sql.NullString `db:"overall_drinkability" json:"overallDrinkability,omitempty"`
	PriceQualityRatio       sql.NullString `db:"price_quality_ratio" json:"priceQualityRatio,omitempty"`
	ExperienceLevel         sql.NullString `db:"experience_level" json:"experienceLevel,omitempty"`
	ServingRecommendation   sql.NullString `db:"serving_recommendation" json:"servingRecommendation,omitempty"`
	FoodPairings            pq.StringArray `db:"food_pairings" json:"foodPairings,omitempty"`
}

// HasPalate implements the mandatory-palate-rule predicate of §4.10/GLOSSARY:
// non-empty(palate_flavors) or non-empty(palate_description) or non-empty(initial_taste).
func (t *TastingProfile) HasPalate() bool {
	if t == nil {
		return false
	}
	if len(t.PalateFlavors) > 0 {
		return true
	}
	if t.PalateDescription.Valid && t.PalateDescription.String != "" {
		return true
	}
	if t.InitialTaste.Valid && t.InitialTaste.String != "" {
		return true
	}
	return false
}

// Product is the central entity of §3.
type Product struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
	GTIN sql.NullString `db:"gtin" json:"gtin,omitempty"`
	BrandID sql.NullString `db:"brand_id" json:"brandId,omitempty"`

	// BrandName is only populated by queries that join the brand table (the
	// Matcher's candidate lookup needs the display name, not the FK). It is
	// never written back; product's own columns never include it.
	BrandName sql.NullString `db:"brand_name" json:"brandName,omitempty"`

	ProductType ProductTypeEnum `db:"product_type" json:"productType"`

	ABV          sql.NullFloat64 `db:"abv" json:"abv,omitempty"`
	VolumeML     sql.NullInt64   `db:"volume_ml" json:"volumeMl,omitempty"`
	AgeStatement sql.NullString  `db:"age_statement" json:"ageStatement,omitempty"`

	Country     sql.NullString `db:"country" json:"country,omitempty"`
	Region      sql.NullString `db:"region" json:"region,omitempty"`
	Category    sql.NullString `db:"category" json:"category,omitempty"`
	Description sql.NullString `db:"description" json:"description,omitempty"`

	PrimaryCask     pq.StringArray `db:"primary_cask" json:"primaryCask,omitempty"`
	FinishingCask   pq.StringArray `db:"finishing_cask" json:"finishingCask,omitempty"`
	WoodType        pq.StringArray `db:"wood_type" json:"woodType,omitempty"`
	CaskTreatment   pq.StringArray `db:"cask_treatment" json:"caskTreatment,omitempty"`

	TastingProfile

	BestPrice sql.NullFloat64 `db:"best_price" json:"bestPrice,omitempty"`
	Images    json.RawMessage `db:"images" json:"images,omitempty"`
	Ratings   json.RawMessage `db:"ratings" json:"ratings,omitempty"`
	Awards    json.RawMessage `db:"awards" json:"awards,omitempty"`

	CompletenessScore int               `db:"completeness_score" json:"completenessScore"`
	Status            ProductStatusEnum `db:"status" json:"status"`
	SourceCount       int               `db:"source_count" json:"sourceCount"`
	VerifiedFields    pq.StringArray    `db:"verified_fields" json:"verifiedFields,omitempty"`
	ExtractionConfidence sql.NullFloat64 `db:"extraction_confidence" json:"extractionConfidence,omitempty"`

	DiscoverySource  string         `db:"discovery_source" json:"discoverySource"`
	DiscoverySources pq.StringArray `db:"discovery_sources" json:"discoverySources,omitempty"`

	Fingerprint     string          `db:"fingerprint" json:"fingerprint"`
	MatchConfidence sql.NullFloat64 `db:"match_confidence" json:"matchConfidence,omitempty"`

	HasConflicts   bool            `db:"has_conflicts" json:"hasConflicts"`
	ConflictDetails json.RawMessage `db:"conflict_details" json:"conflictDetails,omitempty"`

	AwardCount   int `db:"award_count" json:"awardCount"`
	RatingCount  int `db:"rating_count" json:"ratingCount"`
	PriceCount   int `db:"price_count" json:"priceCount"`
	MentionCount int `db:"mention_count" json:"mentionCount"`

	SourceURL string `db:"source_url" json:"sourceUrl"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// WhiskeyDetails is the exclusive whiskey detail record of §3.
type WhiskeyDetails struct {
	ProductID uuid.UUID `db:"product_id" json:"productId"`

	WhiskeyType WhiskeyTypeEnum `db:"whiskey_type" json:"whiskeyType"`
	Distillery  sql.NullString  `db:"distillery" json:"distillery,omitempty"`
	MashBill    sql.NullString  `db:"mash_bill" json:"mashBill,omitempty"`

	CaskStrength     bool `db:"cask_strength" json:"caskStrength"`
	SingleCask       bool `db:"single_cask" json:"singleCask"`
	Peated           bool `db:"peated" json:"peated"`
	NaturalColor     bool `db:"natural_color" json:"naturalColor"`
	NonChillFiltered bool `db:"non_chill_filtered" json:"nonChillFiltered"`

	PeatLevel sql.NullString `db:"peat_level" json:"peatLevel,omitempty"`
	PeatPPM   sql.NullFloat64 `db:"peat_ppm" json:"peatPpm,omitempty"`

	VintageYear  sql.NullInt64 `db:"vintage_year" json:"vintageYear,omitempty"`
	BottlingYear sql.NullInt64 `db:"bottling_year" json:"bottlingYear,omitempty"`
	BatchNumber  sql.NullString `db:"batch_number" json:"batchNumber,omitempty"`
	CaskNumber   sql.NullString `db:"cask_number" json:"caskNumber,omitempty"`
}

// PortWineDetails is the exclusive port detail record of §3.
type PortWineDetails struct {
	ProductID uuid.UUID `db:"product_id" json:"productId"`

	Style PortStyleEnum `db:"style" json:"style"`

	IndicationAge  sql.NullString `db:"indication_age" json:"indicationAge,omitempty"`
	HarvestYear    sql.NullInt64  `db:"harvest_year" json:"harvestYear,omitempty"`
	BottlingYear   sql.NullInt64  `db:"bottling_year" json:"bottlingYear,omitempty"`
	ProducerHouse  sql.NullString `db:"producer_house" json:"producerHouse,omitempty"`
	Quinta         sql.NullString `db:"quinta" json:"quinta,omitempty"`
	DouroSubregion sql.NullString `db:"douro_subregion" json:"douroSubregion,omitempty"`
	GrapeVarieties pq.StringArray `db:"grape_varieties" json:"grapeVarieties,omitempty"`
	DecantingRequired bool        `db:"decanting_required" json:"decantingRequired"`
	DrinkingWindow sql.NullString `db:"drinking_window" json:"drinkingWindow,omitempty"`
}

// Award is one competition medal attached to a Product (§3). Dedup key:
// (normalized_competition, year, normalized_medal, product).
type Award struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	ProductID   uuid.UUID      `db:"product_id" json:"productId"`
	Competition string         `db:"competition" json:"competition"`
	Year        int            `db:"year" json:"year"`
	Medal       string         `db:"medal" json:"medal"`
	Score       sql.NullFloat64 `db:"score" json:"score,omitempty"`
	AwardCategory sql.NullString `db:"award_category" json:"awardCategory,omitempty"`
	AwardImageURL sql.NullString `db:"award_image_url" json:"awardImageUrl,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
}

// FieldProvenance is one (product, field, source) observation (§3). Unique
// key: (product, field_name, source).
type FieldProvenance struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ProductID  uuid.UUID `db:"product_id" json:"productId"`
	FieldName  string    `db:"field_name" json:"fieldName"`
	Source     string    `db:"source" json:"source"`
	RawValue   string    `db:"raw_value" json:"rawValue"`
	Confidence float64   `db:"confidence" json:"confidence"`
	ExtractedAt time.Time `db:"extracted_at" json:"extractedAt"`
}

// QueueEntry is a URL in the Frontier (§3/§4.3).
type QueueEntry struct {
	ID       uuid.UUID `db:"id" json:"id"`
	QueueID  string    `db:"queue_id" json:"queueId"`
	URL      string    `db:"url" json:"url"`
	Priority int       `db:"priority" json:"priority"`
	Metadata json.RawMessage `db:"metadata" json:"metadata,omitempty"`

	Attempts int  `db:"attempts" json:"attempts"`
	Done     bool `db:"done" json:"done"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// QueueEntryMetadata is the typed shape of QueueEntry.Metadata (§3: "search
// type, upstream skeleton id, product-name hint").
type QueueEntryMetadata struct {
	SearchType  string     `json:"searchType,omitempty"`
	SkeletonID  *uuid.UUID `json:"skeletonId,omitempty"`
	NameHint    string     `json:"nameHint,omitempty"`
	FieldTarget string     `json:"fieldTarget,omitempty"`
}

// CrawlError is a persisted failure record (§3/§7).
type CrawlError struct {
	ID         uuid.UUID            `db:"id" json:"id"`
	SourceID   uuid.NullUUID        `db:"source_id" json:"sourceId,omitempty"`
	URL        string               `db:"url" json:"url"`
	Kind       CrawlErrorKindEnum   `db:"kind" json:"kind"`
	Message    string               `db:"message" json:"message"`
	StackTrace sql.NullString       `db:"stack_trace" json:"stackTrace,omitempty"`
	Tier       sql.NullInt64        `db:"tier" json:"tier,omitempty"`
	HTTPStatus sql.NullInt64        `db:"http_status" json:"httpStatus,omitempty"`
	Headers    json.RawMessage      `db:"headers" json:"headers,omitempty"`
	Timestamp  time.Time            `db:"timestamp" json:"timestamp"`
	Resolved   bool                 `db:"resolved" json:"resolved"`
}

// CostRecord is a metering event for an external service (§3/§5).
type CostRecord struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	Service      CostServiceEnum `db:"service" json:"service"`
	CostCents    int             `db:"cost_cents" json:"costCents"`
	RequestCount int             `db:"request_count" json:"requestCount"`
	CrawlJobID   uuid.NullUUID   `db:"crawl_job_id" json:"crawlJobId,omitempty"`
	Timestamp    time.Time       `db:"timestamp" json:"timestamp"`
}
