package course

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"go-coursecreator/internal/features/aicc"
)

// ListQuery holds the local filters applied to the fetched course set
type ListQuery struct {
	Status     string
	Action     string
	CourseSize string
	Search     string
	Ordering   string
}

// FilterCourses keeps courses matching every non-empty filter. Status,
// action and course_size match exactly; search is a case-insensitive
// substring match over topic and instructions.
func FilterCourses(courses []aicc.Course, q ListQuery) []aicc.Course {
	search := strings.ToLower(q.Search)
	out := make([]aicc.Course, 0, len(courses))
	for _, c := range courses {
		if !matchExact(c, "status", q.Status) || !matchExact(c, "action", q.Action) || !matchExact(c, "course_size", q.CourseSize) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(stringField(c, "topic")), search) &&
			!strings.Contains(strings.ToLower(stringField(c, "instructions")), search) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchExact(c aicc.Course, key, want string) bool {
	if want == "" {
		return true
	}
	got, ok := c[key].(string)
	return ok && got == want
}

func stringField(c aicc.Course, key string) string {
	s, _ := c[key].(string)
	return s
}

// SortCourses orders courses by a field name, descending when prefixed
// with "-". A missing field sorts as "". When two values cannot be
// compared the input order is returned together with the error.
func SortCourses(courses []aicc.Course, ordering string) ([]aicc.Course, error) {
	if ordering == "" || ordering == "-" {
		return courses, nil
	}
	field, desc := strings.CutPrefix(ordering, "-")

	sorted := slices.Clone(courses)
	var sortErr error
	slices.SortStableFunc(sorted, func(a, b aicc.Course) int {
		if sortErr != nil {
			return 0
		}
		n, err := compareValues(sortValue(a, field), sortValue(b, field))
		if err != nil {
			sortErr = err
			return 0
		}
		if desc {
			return -n
		}
		return n
	})
	if sortErr != nil {
		return courses, fmt.Errorf("cannot order by %q: %w", field, sortErr)
	}
	return sorted, nil
}

func sortValue(c aicc.Course, field string) any {
	if v, ok := c[field]; ok {
		return v
	}
	return ""
}

func compareValues(a, b any) (int, error) {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y), nil
		}
	case float64:
		if y, ok := b.(float64); ok {
			return cmp.Compare(x, y), nil
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0, nil
			case !x:
				return -1, nil
			default:
				return 1, nil
			}
		}
	}
	return 0, fmt.Errorf("mismatched types %T and %T", a, b)
}

// Reshape copies a course record, adding attachment_count and renaming
// created_at to created.
func Reshape(c aicc.Course) map[string]any {
	out := make(map[string]any, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	out["attachment_count"] = AttachmentCount(c["attachment_path"])
	if created, ok := out["created_at"]; ok {
		out["created"] = created
		delete(out, "created_at")
	}
	return out
}

// AttachmentCount counts the non-empty entries of a comma-separated path list
func AttachmentCount(paths any) int {
	s, ok := paths.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return 0
	}
	count := 0
	for _, p := range strings.Split(s, ",") {
		if strings.TrimSpace(p) != "" {
			count++
		}
	}
	return count
}
