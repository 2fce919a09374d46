package catalog_test

import (
	"testing"

	"diaglistapp/internal/catalog"

	"github.com/stretchr/testify/assert"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Entry{
		{Make: "Toyota", Model: "Camry", FrontSuspension: "mcpherson", RearSuspension: "independent"},
		{Make: "Toyota", Model: "Corolla", FrontSuspension: "mcpherson", RearSuspension: "torsion-beam"},
		{Make: "BMW", Model: "X5", FrontSuspension: "double-wishbone", RearSuspension: "multi-link"},
	})
}

func TestMakesSortedAndUnique(t *testing.T) {
	c := testCatalog()
	assert.Equal(t, []string{"BMW", "Toyota"}, c.Makes())
}

func TestFindIsCaseInsensitive(t *testing.T) {
	c := testCatalog()

	entry := c.Find("toyota", "CAMRY")
	assert.NotNil(t, entry)
	assert.Equal(t, "mcpherson", entry.FrontSuspension)
	assert.Equal(t, "independent", entry.RearSuspension)

	assert.Nil(t, c.Find("Toyota", "Supra"))
}

func TestModelsByMake(t *testing.T) {
	c := testCatalog()

	assert.Len(t, c.ModelsByMake("Toyota"), 2)
	assert.Len(t, c.ModelsByMake("bmw"), 1)
	assert.Empty(t, c.ModelsByMake("Lada"))
}

func TestAddNewMakeAndModel(t *testing.T) {
	c := testCatalog()

	c.Add(catalog.Entry{Make: "Lada", Model: "Vesta", FrontSuspension: "mcpherson", RearSuspension: "torsion-beam"})
	assert.Equal(t, []string{"BMW", "Lada", "Toyota"}, c.Makes())
	assert.NotNil(t, c.Find("Lada", "Vesta"))
}

func TestAddSkipsExistingModel(t *testing.T) {
	c := testCatalog()

	c.Add(catalog.Entry{Make: "toyota", Model: "camry", FrontSuspension: "dependent", RearSuspension: "dependent"})

	// The original entry wins
	entry := c.Find("Toyota", "Camry")
	assert.NotNil(t, entry)
	assert.Equal(t, "mcpherson", entry.FrontSuspension)
	assert.Len(t, c.ModelsByMake("Toyota"), 2)
}

func TestSearchMatchesMakeOrModel(t *testing.T) {
	c := testCatalog()

	assert.Len(t, c.Search("toy", 0), 2)
	assert.Len(t, c.Search("x5", 0), 1)
	assert.Empty(t, c.Search("tesla", 0))
}

func TestSearchCapsResults(t *testing.T) {
	c := testCatalog()
	assert.Len(t, c.Search("o", 1), 1)
}

func TestSeedHasKnownEntries(t *testing.T) {
	c := catalog.New(catalog.Seed())

	entry := c.Find("Toyota", "Land Cruiser")
	assert.NotNil(t, entry)
	assert.Equal(t, "independent", entry.FrontSuspension)
	assert.Equal(t, "dependent", entry.RearSuspension)
}
