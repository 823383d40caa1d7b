package db

import (
	"fmt"
	"strings"

	"github.com/databricks-chaima/appsOPM2025/internal/domain/inspections"
)

// Placeholder renders the bind marker for the n-th argument (1-based).
type Placeholder func(n int) string

// Question is the mysql/sqlite marker style.
func Question(int) string { return "?" }

// Dollar is the postgres marker style.
func Dollar(n int) string { return fmt.Sprintf("$%d", n) }

// likeEscape is used instead of the dialect default so escaping behaves the
// same on postgres, mysql and sqlite.
const likeEscape = "#"

// BuildFilter translates a FilterSet into a conjunctive predicate over the
// inspections table aliased as i. It returns the JOIN clause needed for
// region filtering (empty otherwise), the WHERE body (empty when the filter
// is empty, meaning all rows match) and the bind arguments in marker order.
// Values are always bound, never concatenated into the query text.
func BuildFilter(f inspections.FilterSet, ph Placeholder) (join, where string, args []any) {
	var terms []string

	add := func(expr string, value any) {
		args = append(args, value)
		terms = append(terms, fmt.Sprintf(expr, ph(len(args))))
	}

	if f.Region != "" {
		join = "JOIN factories f ON i.factory_id = f.factory_id"
		add("f.region = %s", f.Region)
	}
	if f.Factory != "" {
		add("i.factory_id = %s", f.Factory)
	}
	if f.Camera != "" {
		add("i.camera_id = %s", f.Camera)
	}
	if f.Prediction != "" {
		add("i.prediction = %s", f.Prediction)
	}
	if f.DefectType != "" {
		add("i.defect_type = %s", f.DefectType)
	}
	if f.Search != "" {
		add("i.inspection_id LIKE %s ESCAPE '"+likeEscape+"'", "%"+EscapeLike(f.Search)+"%")
	}
	if f.DateFrom != "" {
		add("i.date >= %s", f.DateFrom)
	}
	if f.DateTo != "" {
		add("i.date <= %s", f.DateTo)
	}

	return join, strings.Join(terms, " AND "), args
}

// EscapeLike neutralizes LIKE wildcards in user search input.
func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, likeEscape, likeEscape+likeEscape)
	s = strings.ReplaceAll(s, "%", likeEscape+"%")
	s = strings.ReplaceAll(s, "_", likeEscape+"_")
	return s
}
