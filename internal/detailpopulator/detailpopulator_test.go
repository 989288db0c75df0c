package detailpopulator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
)

func TestInferWhiskeyTypeByCategory(t *testing.T) {
	assert.Equal(t, models.WhiskeyTypeBourbon, InferWhiskeyType("Old No. 7", "Bourbon Whiskey"))
	assert.Equal(t, models.WhiskeyTypeRye, InferWhiskeyType("Rittenhouse", "Rye Whiskey"))
	assert.Equal(t, models.WhiskeyTypeTennessee, InferWhiskeyType("Jack Daniel's", "Tennessee Whiskey"))
}

func TestInferWhiskeyTypeFallsBackToName(t *testing.T) {
	assert.Equal(t, models.WhiskeyTypeJapanese, InferWhiskeyType("Yamazaki 12", ""))
	assert.Equal(t, models.WhiskeyTypeScotchSingleMalt, InferWhiskeyType("Glenfiddich 12 Year Old Single Malt", ""))
}

func TestInferWhiskeyTypeScotchBlendVsSingleMalt(t *testing.T) {
	assert.Equal(t, models.WhiskeyTypeScotchBlend, InferWhiskeyType("Famous Blend Scotch", ""))
	assert.Equal(t, models.WhiskeyTypeScotchSingleMalt, InferWhiskeyType("Macallan Scotch", ""))
}

func TestInferWhiskeyTypeIrishVariants(t *testing.T) {
	assert.Equal(t, models.WhiskeyTypeIrishSinglePot, InferWhiskeyType("Redbreast Single Pot Still", ""))
	assert.Equal(t, models.WhiskeyTypeIrishBlend, InferWhiskeyType("Jameson Irish Blend", ""))
	assert.Equal(t, models.WhiskeyTypeIrishSingleMalt, InferWhiskeyType("Green Spot Irish Whiskey", ""))
}

func TestInferWhiskeyTypeUnknownReturnsEmpty(t *testing.T) {
	assert.Equal(t, models.WhiskeyTypeEnum(""), InferWhiskeyType("Mystery Cask No. 4", ""))
}

func TestInferPortStyleByCategoryThenName(t *testing.T) {
	assert.Equal(t, models.PortStyleVintage, InferPortStyle("Graham's 2015", "Vintage Port"))
	assert.Equal(t, models.PortStyleTawny, InferPortStyle("10 Year Old Tawny", ""))
	assert.Equal(t, models.PortStyleLBV, InferPortStyle("Quinta do Noval LBV", ""))
}

func TestInferPortStyleDefaultsToRuby(t *testing.T) {
	assert.Equal(t, models.PortStyleRuby, InferPortStyle("House Port", ""))
}

func TestInferProducerHouseMatchesKnownHouse(t *testing.T) {
	assert.Equal(t, "Fonseca", InferProducerHouse("Fonseca Bin No. 27", ""))
}

func TestInferProducerHouseFallsBackToProducerThenName(t *testing.T) {
	assert.Equal(t, "Some Importer", InferProducerHouse("Unbranded Ruby Port", "Some Importer"))
	assert.Equal(t, "Unbranded", InferProducerHouse("Unbranded Ruby Port", ""))
	assert.Equal(t, "Unknown Producer", InferProducerHouse("", ""))
}

func TestPopulateWhiskeyReturnsOnlyWhiskeyDetails(t *testing.T) {
	whiskey, port := Populate(models.ProductTypeWhiskey, "Glenfiddich 12 Single Malt", "Scotch", "Glenfiddich")
	assert.Nil(t, port)
	if assert.NotNil(t, whiskey) {
		assert.Equal(t, models.WhiskeyTypeScotchSingleMalt, whiskey.WhiskeyType)
		assert.True(t, whiskey.Distillery.Valid)
		assert.Equal(t, "Glenfiddich", whiskey.Distillery.String)
	}
}

func TestPopulatePortReturnsOnlyPortDetails(t *testing.T) {
	whiskey, port := Populate(models.ProductTypePortWine, "Taylor's 20 Year Old Tawny", "Port", "")
	assert.Nil(t, whiskey)
	if assert.NotNil(t, port) {
		assert.Equal(t, models.PortStyleTawny, port.Style)
		assert.Equal(t, "Taylor", port.ProducerHouse.String)
	}
}

func TestPopulateUnknownProductTypeReturnsNothing(t *testing.T) {
	whiskey, port := Populate(models.ProductTypeEnum("gin"), "Some Gin", "", "")
	assert.Nil(t, whiskey)
	assert.Nil(t, port)
}
