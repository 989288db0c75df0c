package competition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIWSCParserHappyPathSingleGoldRow(t *testing.T) {
	html := `<div class="award-result">
		<div class="result-product">Glenfiddich 18 Year Old</div>
		<div class="result-medal">Gold</div>
		<div class="result-producer">William Grant &amp; Sons</div>
		<div class="result-score">97</div>
	</div>`

	recs, err := iwscParser{}.Parse(html, 2024)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, "Glenfiddich 18 Year Old", rec.ProductName)
	assert.Equal(t, "Gold", rec.Medal)
	assert.Equal(t, "William Grant & Sons", rec.Producer)
	assert.Equal(t, IWSC, rec.Competition)
	assert.Equal(t, 2024, rec.Year)
	assert.True(t, rec.HasScore)
	assert.Equal(t, 97.0, rec.Score)
}

func TestIWSCParserFiltersWineryRowKeepsProductRow(t *testing.T) {
	html := `<div class="award-result">
		<div class="result-product">Winery Gurjaani 2024</div>
		<div class="result-medal">Bronze</div>
		<div class="result-producer">Gurjaani Wine Cellars</div>
	</div>
	<div class="award-result">
		<div class="result-product">Highland Park 12 Year</div>
		<div class="result-medal">Gold</div>
		<div class="result-producer">Highland Park Distillery</div>
	</div>`

	recs, err := iwscParser{}.Parse(html, 2024)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Highland Park 12 Year", recs[0].ProductName)
	assert.Equal(t, "Gold", recs[0].Medal)
}

func TestIWSCParserFallsBackToGenericTableWalk(t *testing.T) {
	html := `<table>
		<tr><td>Macallan 18</td><td>Double Gold</td><td>98/100</td></tr>
		<tr><td>Chateau Something</td><td>Silver</td></tr>
	</table>`

	recs, err := iwscParser{}.Parse(html, 2023)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Macallan 18", recs[0].ProductName)
	assert.Equal(t, "Double Gold", recs[0].Medal)
	assert.Equal(t, 98.0, recs[0].Score)
}

func TestNormalizeMedalPrefersMoreSpecificSubstring(t *testing.T) {
	assert.Equal(t, "Double Gold", NormalizeMedal("double gold medal"))
	assert.Equal(t, "Gold", NormalizeMedal("GOLD"))
	assert.Equal(t, "Best in Class", NormalizeMedal("Best In Class Winner"))
}

func TestIsValidProductNameRejectsWineryAndCorporateSuffix(t *testing.T) {
	assert.False(t, IsValidProductName("Domaine de la Romanee", false))
	assert.False(t, IsValidProductName("Acme Spirits Inc", false))
	assert.True(t, IsValidProductName("Glenfiddich 18 Year Old", false))
}

func TestIsValidProductNameWineTaggedPortException(t *testing.T) {
	assert.True(t, IsValidProductName("Quinta do Noval Vintage Port", true))
}
