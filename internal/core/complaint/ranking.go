package complaint

import "sort"

// SortByPriority returns a copy ordered HIGH, MEDIUM, LOW.
// Equal priorities keep their input order.
func SortByPriority(complaints []Complaint) []Complaint {
	out := make([]Complaint, len(complaints))
	copy(out, complaints)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Weight() > out[j].Priority.Weight()
	})
	return out
}
