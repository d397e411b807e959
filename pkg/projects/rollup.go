package projects

// Tableau10 is the categorical palette used for years.
var Tableau10 = []string{
	"#4e79a7", "#f28e2c", "#e15759", "#76b7b2", "#59a14f",
	"#edc949", "#af7aa1", "#ff9da7", "#9c755f", "#bab0ab",
}

// YearCount is the number of projects in one year.
type YearCount struct {
	Year  string `json:"year"  yaml:"year"`
	Count int    `json:"count" yaml:"count"`
}

// RollupByYear counts projects per year in order of first appearance.
func RollupByYear(list []Project) []YearCount {
	index := make(map[string]int)

	var out []YearCount

	for _, p := range list {
		y := string(p.Year)

		i, ok := index[y]
		if !ok {
			i = len(out)
			index[y] = i
			out = append(out, YearCount{Year: y})
		}

		out[i].Count++
	}

	return out
}

// Colors assigns each year a palette color by its ordinal among the years
// of the full project list, so a year keeps its color across filters.
type Colors struct {
	ordinal map[string]int
}

// NewColors builds the year color scale from the full project list.
func NewColors(all []Project) Colors {
	c := Colors{ordinal: make(map[string]int)}

	for _, p := range all {
		y := string(p.Year)
		if _, ok := c.ordinal[y]; !ok {
			c.ordinal[y] = len(c.ordinal)
		}
	}

	return c
}

// Of returns the color for year. Years outside the domain extend it.
func (c Colors) Of(year string) string {
	i, ok := c.ordinal[year]
	if !ok {
		i = len(c.ordinal)
		c.ordinal[year] = i
	}

	return Tableau10[i%len(Tableau10)]
}
