package complaint

import "fmt"

// routeFunc picks the resolving department given the student's home department.
type routeFunc func(home Department) Department

func fixed(d Department) routeFunc {
	return func(Department) Department { return d }
}

func homeDepartment(home Department) Department {
	return home
}

// routingTable maps every category to its resolving department.
// Academic and personnel issues stay with the student's own department.
var routingTable = map[Category]routeFunc{
	CategoryInfrastructure: fixed(DepartmentMaintenance),
	CategoryAcademics:      homeDepartment,
	CategoryRagging:        fixed(DepartmentAntiRagging),
	CategoryStaffRelated:   homeDepartment,
	CategoryOthers:         fixed(DepartmentAdministration),
}

func init() {
	if missing := unroutedCategories(); len(missing) > 0 {
		panic(fmt.Sprintf("complaint: routing table has no entry for categories %v", missing))
	}
}

func unroutedCategories() []Category {
	var missing []Category
	for _, c := range AllCategories {
		if _, ok := routingTable[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

// ResolveDepartment returns the department that owns a complaint of the given
// category filed by a student of the given home department.
// It panics on a category missing from the routing table.
func ResolveDepartment(category Category, home Department) Department {
	route, ok := routingTable[category]
	if !ok {
		panic(fmt.Sprintf("complaint: no routing for category %q", category))
	}
	return route(home)
}
