package model

// ExtenderStrategy selects how an existing case study is extended
type ExtenderStrategy int

const (
	ExtendSimpleAdd ExtenderStrategy = iota + 1
	ExtendDistribAdd
	ExtendSmoothPlot
	ExtendPerYearAdd
	ExtendReleaseAdd
)

var extenderStrategies = newEnumTable("ExtenderStrategy", map[ExtenderStrategy]string{
	ExtendSimpleAdd:  "simple_add",
	ExtendDistribAdd: "distrib_add",
	ExtendSmoothPlot: "smooth_plot",
	ExtendPerYearAdd: "per_year_add",
	ExtendReleaseAdd: "release_add",
})

func (s ExtenderStrategy) String() string {
	return extenderStrategies.name(s)
}

// ParseExtenderStrategy looks up an extender strategy by name
func ParseExtenderStrategy(name string) (ExtenderStrategy, error) {
	return extenderStrategies.parse(name)
}

// ExtenderStrategyNames lists all valid strategy names
func ExtenderStrategyNames() []string {
	return extenderStrategies.allNames()
}
