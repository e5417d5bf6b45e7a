package analysis

import (
	"sort"
	"strings"
)

// Regions of Brazil.
const (
	Norte       = "Norte"
	Nordeste    = "Nordeste"
	Sudeste     = "Sudeste"
	Sul         = "Sul"
	CentroOeste = "Centro-Oeste"
)

type federativeUnit struct {
	abbr   string
	name   string
	region string
}

var federativeUnits = []federativeUnit{
	{"AC", "Acre", Norte},
	{"AM", "Amazonas", Norte},
	{"AP", "Amapá", Norte},
	{"PA", "Pará", Norte},
	{"RO", "Rondônia", Norte},
	{"RR", "Roraima", Norte},
	{"TO", "Tocantins", Norte},
	{"AL", "Alagoas", Nordeste},
	{"BA", "Bahia", Nordeste},
	{"CE", "Ceará", Nordeste},
	{"MA", "Maranhão", Nordeste},
	{"PB", "Paraíba", Nordeste},
	{"PE", "Pernambuco", Nordeste},
	{"PI", "Piauí", Nordeste},
	{"RN", "Rio Grande do Norte", Nordeste},
	{"SE", "Sergipe", Nordeste},
	{"ES", "Espírito Santo", Sudeste},
	{"MG", "Minas Gerais", Sudeste},
	{"RJ", "Rio de Janeiro", Sudeste},
	{"SP", "São Paulo", Sudeste},
	{"DF", "Distrito Federal", CentroOeste},
	{"GO", "Goiás", CentroOeste},
	{"MT", "Mato Grosso", CentroOeste},
	{"MS", "Mato Grosso do Sul", CentroOeste},
	{"PR", "Paraná", Sul},
	{"RS", "Rio Grande do Sul", Sul},
	{"SC", "Santa Catarina", Sul},
}

var regionByState = func() map[string]string {
	m := make(map[string]string, 2*len(federativeUnits))
	for _, u := range federativeUnits {
		m[u.abbr] = u.region
		m[u.name] = u.region
	}
	return m
}()

// RegionOf returns the region of a state given by name ("Bahia") or
// abbreviation ("BA").
func RegionOf(state string) (string, bool) {
	s := strings.TrimSpace(state)
	if r, ok := regionByState[s]; ok {
		return r, true
	}
	r, ok := regionByState[strings.ToUpper(s)]
	return r, ok
}

// RegionYear is a total for one region and year.
type RegionYear struct {
	Region string
	Year   int
	Value  float64
}

// SumByRegionYear totals state-year values per region, ordered by region
// then year. States with no region are left out and returned sorted.
func SumByRegionYear(totals []StateYear) (rows []RegionYear, unmapped []string) {
	type key struct {
		region string
		year   int
	}
	sums := make(map[key]float64)
	skipped := make(map[string]struct{})
	for _, t := range totals {
		region, ok := RegionOf(t.State)
		if !ok {
			skipped[t.State] = struct{}{}
			continue
		}
		sums[key{region, t.Year}] += t.Value
	}

	for k, v := range sums {
		rows = append(rows, RegionYear{Region: k.region, Year: k.year, Value: v})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Region != rows[j].Region {
			return rows[i].Region < rows[j].Region
		}
		return rows[i].Year < rows[j].Year
	})
	for s := range skipped {
		unmapped = append(unmapped, s)
	}
	sort.Strings(unmapped)
	return rows, unmapped
}
