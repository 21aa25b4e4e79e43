package scoring

// gradeBands maps overall-score thresholds to letter grades, descending
var gradeBands = []struct {
	min   int
	grade string
}{
	{90, "A+"},
	{82, "A"},
	{75, "B+"},
	{68, "B"},
	{60, "C+"},
	{52, "C"},
	{42, "D+"},
	{32, "D"},
}

// GradeFor maps an overall score to its letter grade
func GradeFor(overall int) string {
	for _, b := range gradeBands {
		if overall >= b.min {
			return b.grade
		}
	}
	return "F"
}
