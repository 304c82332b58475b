package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ougirez/agrodash/internal/domain"
)

func TestModuleFor(t *testing.T) {
	tests := []struct {
		item     string
		variable string
		want     domain.Module
		ok       bool
	}{
		{"wht", "area", domain.ModuleCrop, true},
		{"ric", "prod", domain.ModuleCrop, true},
		{"rum", "cons", domain.ModuleAnimal, true},
		{"dry", "yild", domain.ModuleAnimal, true},
		{"sgc", "prod", domain.ModuleBioenergy, true},
		{"crp", "land", domain.ModuleLandCover, true},
		// Grassland is dual owned: land classification vs grazing area.
		{"grs", "land", domain.ModuleLandCover, true},
		{"grs", "area", domain.ModuleAnimal, true},
		{"xyz", "prod", "", false},
	}

	for _, tt := range tests {
		got, ok := ModuleFor(tt.item, tt.variable)
		assert.Equal(t, tt.ok, ok, "%s/%s", tt.item, tt.variable)
		if tt.ok {
			assert.Equal(t, tt.want, got, "%s/%s", tt.item, tt.variable)
		}
	}
}

func TestUnitFor(t *testing.T) {
	tests := []struct {
		variable string
		want     string
	}{
		{"area", "ha"},
		{"land", "ha"},
		{"yild", "t/ha"},
		{"prod", "t"},
		{"nett", "t"},
	}

	for _, tt := range tests {
		got, ok := UnitFor(tt.variable)
		require.True(t, ok, tt.variable)
		assert.Equal(t, tt.want, got, tt.variable)
	}

	_, ok := UnitFor("bogus")
	assert.False(t, ok)
}

func TestModuleSets(t *testing.T) {
	items := ModuleItems(domain.ModuleCrop)
	codes := make([]string, 0, len(items))
	for _, it := range items {
		codes = append(codes, it.Code)
	}
	assert.ElementsMatch(t, []string{"wht", "ric", "cgr", "osd", "vfn"}, codes)

	// Land cover tracks a single variable.
	vars := ModuleVariables(domain.ModuleLandCover)
	require.Len(t, vars, 1)
	assert.Equal(t, "land", vars[0].Code)

	assert.True(t, ModuleHasVariable(domain.ModuleCrop, "feed"))
	assert.False(t, ModuleHasVariable(domain.ModuleAnimal, "feed"))
	assert.False(t, ModuleHasVariable(domain.ModuleLandCover, "prod"))

	assert.True(t, ModuleHasItem(domain.ModuleAnimal, "grs"))
	assert.True(t, ModuleHasItem(domain.ModuleLandCover, "grs"))
	assert.False(t, ModuleHasItem(domain.ModuleCrop, "grs"))
}

func TestRegions(t *testing.T) {
	regions := Regions()
	require.Len(t, regions, 19)
	assert.Equal(t, "ame", regions[0].Code)
	assert.Equal(t, "wld", regions[len(regions)-1].Code)

	name, ok := RegionName("usa")
	require.True(t, ok)
	assert.Equal(t, "United States", name)

	assert.True(t, KnownRegion("bra"))
	assert.False(t, KnownRegion("zzz"))
}

func TestValidYear(t *testing.T) {
	assert.True(t, ValidYear(2000))
	assert.True(t, ValidYear(2040))
	assert.False(t, ValidYear(1999))
	assert.False(t, ValidYear(2041))
}
