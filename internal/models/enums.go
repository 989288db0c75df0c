package models

// ProductTypeEnum is the product category a Source, Product, or extraction
// schema applies to.
// @enum string
// @example whiskey
type ProductTypeEnum string

const (
	ProductTypeWhiskey  ProductTypeEnum = "whiskey"   // @enum whiskey
	ProductTypePortWine ProductTypeEnum = "port_wine" // @enum port_wine
)

// SourceCategoryEnum classifies a crawlable origin.
type SourceCategoryEnum string

const (
	SourceCategoryRetailer   SourceCategoryEnum = "retailer"
	SourceCategoryProducer   SourceCategoryEnum = "producer"
	SourceCategoryCompetition SourceCategoryEnum = "competition"
	SourceCategoryReview     SourceCategoryEnum = "review"
	SourceCategoryNews       SourceCategoryEnum = "news"
	SourceCategoryDatabase   SourceCategoryEnum = "database"
)

// DiscoveryProvenanceEnum records how a Source entered the system.
type DiscoveryProvenanceEnum string

const (
	DiscoveryProvenanceManual      DiscoveryProvenanceEnum = "manual"
	DiscoveryProvenanceHub         DiscoveryProvenanceEnum = "hub"
	DiscoveryProvenanceSearch      DiscoveryProvenanceEnum = "search"
	DiscoveryProvenanceCompetition DiscoveryProvenanceEnum = "competition"
)

// AgeGateMechanismEnum describes how a Source's age gate is satisfied.
type AgeGateMechanismEnum string

const (
	AgeGateNone   AgeGateMechanismEnum = "none"
	AgeGateCookie AgeGateMechanismEnum = "cookie"
	AgeGateForm   AgeGateMechanismEnum = "form"
)

// CrawlJobStatusEnum is the CrawlJob state machine of §3/§5.
type CrawlJobStatusEnum string

const (
	CrawlJobPending   CrawlJobStatusEnum = "pending"
	CrawlJobRunning   CrawlJobStatusEnum = "running"
	CrawlJobCompleted CrawlJobStatusEnum = "completed"
	CrawlJobFailed    CrawlJobStatusEnum = "failed"
	CrawlJobCancelled CrawlJobStatusEnum = "cancelled"
)

// ProductStatusEnum is the lifecycle status of §4.10.
type ProductStatusEnum string

const (
	ProductStatusSkeleton   ProductStatusEnum = "skeleton"
	ProductStatusIncomplete ProductStatusEnum = "incomplete"
	ProductStatusPartial    ProductStatusEnum = "partial"
	ProductStatusComplete   ProductStatusEnum = "complete"
	ProductStatusVerified   ProductStatusEnum = "verified"
	ProductStatusRejected   ProductStatusEnum = "rejected"
	ProductStatusMerged     ProductStatusEnum = "merged"
)

// FetchTierEnum is the Fetch Router strategy level (§4.1).
type FetchTierEnum int

const (
	FetchTierPlainHTTP      FetchTierEnum = 1
	FetchTierHeadlessBrowser FetchTierEnum = 2
	FetchTierManagedProxy   FetchTierEnum = 3
)

// CostServiceEnum identifies the metered external service of a CostRecord.
type CostServiceEnum string

const (
	CostServiceSerpAPI      CostServiceEnum = "serpapi"
	CostServiceManagedProxy CostServiceEnum = "managed_proxy"
	CostServiceAI           CostServiceEnum = "ai"
)

// CrawlErrorKindEnum is the error taxonomy of §7.
type CrawlErrorKindEnum string

const (
	CrawlErrorConnection CrawlErrorKindEnum = "connection"
	CrawlErrorTimeout    CrawlErrorKindEnum = "timeout"
	CrawlErrorBlocked    CrawlErrorKindEnum = "blocked"
	CrawlErrorAgeGate    CrawlErrorKindEnum = "age_gate"
	CrawlErrorRateLimit  CrawlErrorKindEnum = "rate_limit"
	CrawlErrorParse      CrawlErrorKindEnum = "parse"
	CrawlErrorAPI        CrawlErrorKindEnum = "api"
	CrawlErrorUnknown    CrawlErrorKindEnum = "unknown"
)

// WhiskeyTypeEnum enumerates whiskey sub-categories (§3).
type WhiskeyTypeEnum string

const (
	WhiskeyTypeBourbon           WhiskeyTypeEnum = "bourbon"
	WhiskeyTypeRye               WhiskeyTypeEnum = "rye"
	WhiskeyTypeScotchSingleMalt  WhiskeyTypeEnum = "scotch_single_malt"
	WhiskeyTypeScotchBlend       WhiskeyTypeEnum = "scotch_blend"
	WhiskeyTypeTennessee         WhiskeyTypeEnum = "tennessee"
	WhiskeyTypeJapanese          WhiskeyTypeEnum = "japanese"
	WhiskeyTypeIrishSingleMalt   WhiskeyTypeEnum = "irish_single_malt"
	WhiskeyTypeIrishSinglePot    WhiskeyTypeEnum = "irish_single_pot_still"
	WhiskeyTypeIrishBlend        WhiskeyTypeEnum = "irish_blend"
)

// PeatLevelEnum is WhiskeyDetails.peat_level.
type PeatLevelEnum string

const (
	PeatLevelNone   PeatLevelEnum = "none"
	PeatLevelLight  PeatLevelEnum = "light"
	PeatLevelMedium PeatLevelEnum = "medium"
	PeatLevelHeavy  PeatLevelEnum = "heavy"
)

// PortStyleEnum is PortWineDetails.style.
type PortStyleEnum string

const (
	PortStyleRuby         PortStyleEnum = "ruby"
	PortStyleTawny        PortStyleEnum = "tawny"
	PortStyleVintage      PortStyleEnum = "vintage"
	PortStyleLBV          PortStyleEnum = "lbv"
	PortStyleColheita     PortStyleEnum = "colheita"
	PortStyleWhite        PortStyleEnum = "white"
	PortStyleRose         PortStyleEnum = "rose"
	PortStyleCrusted      PortStyleEnum = "crusted"
	PortStyleSingleQuinta PortStyleEnum = "single_quinta"
	PortStyleGarrafeira   PortStyleEnum = "garrafeira"
	PortStyleReserve      PortStyleEnum = "reserve"
)

// DouroSubregionEnum is PortWineDetails.douro_subregion.
type DouroSubregionEnum string

const (
	DouroSubregionBaixoCorgo  DouroSubregionEnum = "baixo_corgo"
	DouroSubregionCimaCorgo   DouroSubregionEnum = "cima_corgo"
	DouroSubregionDouroSuperior DouroSubregionEnum = "douro_superior"
)

// MatchMethodEnum is the Matcher's (§4.8) resolution method.
type MatchMethodEnum string

const (
	MatchMethodGTIN        MatchMethodEnum = "gtin"
	MatchMethodFingerprint MatchMethodEnum = "fingerprint"
	MatchMethodFuzzy       MatchMethodEnum = "fuzzy"
	MatchMethodNone        MatchMethodEnum = "none"
)

// AlertSeverityEnum is the Health Monitor's alert severity (§4.11).
type AlertSeverityEnum string

const (
	AlertSeverityInfo     AlertSeverityEnum = "info"
	AlertSeverityWarning  AlertSeverityEnum = "warning"
	AlertSeverityCritical AlertSeverityEnum = "critical"
)
