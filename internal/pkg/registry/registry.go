// Package registry holds the static GLOBIOM code tables: item codes and
// their owning module, variable codes and their canonical unit, and the
// region reference set. The tables are process-wide read-only state;
// lookups are total and report misses with an ok flag since unknown codes
// are expected and counted on the ingestion hot path.
package registry

import "github.com/ougirez/agrodash/internal/domain"

const (
	YearMin = 2000
	YearMax = 2040
)

// Code pairs a short canonical code with its display label.
type Code struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// itemModules maps each item code to its owning module. "grs" is absent
// here on purpose: grassland is the one dual-owned code, resolved in
// ModuleFor by variable (land classification vs grazing area).
var itemModules = map[string]domain.Module{
	"wht": domain.ModuleCrop,
	"ric": domain.ModuleCrop,
	"cgr": domain.ModuleCrop,
	"osd": domain.ModuleCrop,
	"vfn": domain.ModuleCrop,
	"rum": domain.ModuleAnimal,
	"nrm": domain.ModuleAnimal,
	"dry": domain.ModuleAnimal,
	"sgc": domain.ModuleBioenergy,
	"pfb": domain.ModuleBioenergy,
	"crp": domain.ModuleLandCover,
	"for": domain.ModuleLandCover,
	"nld": domain.ModuleLandCover,
}

var itemLabels = map[string]string{
	"wht": "Wheat",
	"ric": "Rice",
	"cgr": "Coarse Grains",
	"osd": "Oilseeds",
	"vfn": "Vegetables, Fruits & Nuts",
	"rum": "Ruminant Meat",
	"nrm": "Non-Ruminant Meat & Eggs",
	"dry": "Dairy",
	"grs": "Grassland",
	"sgc": "Sugarcane",
	"pfb": "Plant-Based Fiber",
	"crp": "Cropland",
	"for": "Forest",
	"nld": "Other Natural Land",
}

var variableLabels = map[string]string{
	"area": "Harvested Area",
	"prod": "Production",
	"yild": "Yield",
	"cons": "Total Consumption",
	"food": "Food Consumption",
	"feed": "Feed Use",
	"othu": "Other Uses",
	"expo": "Exports",
	"impo": "Imports",
	"nett": "Net Trade",
	"land": "Land Area",
}

// variableUnits is the canonical variable -> unit mapping. A fact's unit
// is never independently settable, it is always derived from here.
var variableUnits = map[string]string{
	"area": "ha",
	"land": "ha",
	"yild": "t/ha",
	"prod": "t",
	"cons": "t",
	"food": "t",
	"feed": "t",
	"othu": "t",
	"expo": "t",
	"impo": "t",
	"nett": "t",
}

var moduleItems = map[domain.Module][]string{
	domain.ModuleCrop:      {"wht", "ric", "cgr", "osd", "vfn"},
	domain.ModuleAnimal:    {"rum", "nrm", "dry", "grs"},
	domain.ModuleBioenergy: {"sgc", "pfb"},
	domain.ModuleLandCover: {"crp", "for", "grs", "nld"},
}

var moduleVariables = map[domain.Module][]string{
	domain.ModuleCrop:      {"area", "prod", "yild", "cons", "food", "feed", "othu", "expo", "impo", "nett"},
	domain.ModuleAnimal:    {"area", "prod", "yild", "cons", "food", "othu", "expo", "impo", "nett"},
	domain.ModuleBioenergy: {"area", "prod", "yild", "cons", "othu", "expo", "impo", "nett"},
	domain.ModuleLandCover: {"land"},
}

// regionNames is the canonical region reference set, seeded into the
// regions table at setup. Codes such as "wld" are pre-aggregated rollups
// ingested as flat reference data, not re-derived from finer regions.
var regionNames = map[string]string{
	"ame": "Africa & Middle East",
	"anz": "Oceania",
	"bra": "Brazil",
	"can": "Canada",
	"chn": "China",
	"eue": "EU Central/East",
	"eur": "Europe",
	"fsu": "Former USSR",
	"ind": "India",
	"men": "Middle East & North Africa",
	"nam": "North America",
	"oam": "Other Americas",
	"oas": "Other Asia",
	"osa": "Rest of South Asia",
	"sas": "South Asia",
	"sea": "Southeast Asia",
	"ssa": "Sub-Saharan Africa",
	"usa": "United States",
	"wld": "World",
}

var regionOrder = []string{
	"ame", "anz", "bra", "can", "chn", "eue", "eur", "fsu", "ind", "men",
	"nam", "oam", "oas", "osa", "sas", "sea", "ssa", "usa", "wld",
}

// HeadlineVariables are the variables-of-interest summed across all
// modules for the headline cards.
var HeadlineVariables = []string{"yild", "cons", "nett", "prod"}

// ModuleFor resolves which module owns an item code. Grassland is dual
// owned: variable "land" is a land-cover classification, any other
// variable is grazing data belonging to the animal module.
func ModuleFor(item, variable string) (domain.Module, bool) {
	if item == "grs" {
		if variable == "land" {
			return domain.ModuleLandCover, true
		}
		return domain.ModuleAnimal, true
	}
	m, ok := itemModules[item]
	return m, ok
}

// KnownItem reports whether the item code belongs to any module's set.
func KnownItem(item string) bool {
	if item == "grs" {
		return true
	}
	_, ok := itemModules[item]
	return ok
}

// UnitFor returns the canonical unit for a variable code.
func UnitFor(variable string) (string, bool) {
	u, ok := variableUnits[variable]
	return u, ok
}

func ItemLabel(item string) (string, bool) {
	l, ok := itemLabels[item]
	return l, ok
}

func VariableLabel(variable string) (string, bool) {
	l, ok := variableLabels[variable]
	return l, ok
}

// ModuleHasItem reports whether the item code is in the module's allowed set.
func ModuleHasItem(m domain.Module, item string) bool {
	for _, it := range moduleItems[m] {
		if it == item {
			return true
		}
	}
	return false
}

// ModuleHasVariable reports whether the variable code is in the module's
// allowed set.
func ModuleHasVariable(m domain.Module, variable string) bool {
	for _, v := range moduleVariables[m] {
		if v == variable {
			return true
		}
	}
	return false
}

// ModuleItems returns the module's item codes with labels, in canonical order.
func ModuleItems(m domain.Module) []Code {
	items := moduleItems[m]
	out := make([]Code, 0, len(items))
	for _, it := range items {
		out = append(out, Code{Code: it, Label: itemLabels[it]})
	}
	return out
}

// ModuleVariables returns the module's variable codes with labels.
func ModuleVariables(m domain.Module) []Code {
	vars := moduleVariables[m]
	out := make([]Code, 0, len(vars))
	for _, v := range vars {
		out = append(out, Code{Code: v, Label: variableLabels[v]})
	}
	return out
}

// KnownRegion reports whether the code is in the region reference set.
func KnownRegion(code string) bool {
	_, ok := regionNames[code]
	return ok
}

func RegionName(code string) (string, bool) {
	n, ok := regionNames[code]
	return n, ok
}

// Regions returns the seed set in canonical code order.
func Regions() []Code {
	out := make([]Code, 0, len(regionOrder))
	for _, c := range regionOrder {
		out = append(out, Code{Code: c, Label: regionNames[c]})
	}
	return out
}

// ValidYear reports whether the projection year is inside the modeled range.
func ValidYear(y domain.Year) bool {
	return y >= YearMin && y <= YearMax
}
