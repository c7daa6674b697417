// Package placement decides where a course document is filed in the object store.
//
// A course offered by every department is "general", one offered by several (but not all)
// departments is "shared", and one offered by a single department is filed under that
// department's name. Staging objects live under the "temp/" prefix; the permanent key is the
// staging key with that prefix removed.
package placement

import (
	"errors"
	"fmt"
	"strings"

	"coursedocs/internal/model"
)

// StagingPrefix is the leading path segment of every staging key.
const StagingPrefix = "temp"

var (
	// ErrNoDepartmentCoverage means the course is attached to no department and cannot hold documents.
	ErrNoDepartmentCoverage = errors.New("course is not offered by any department")
	// ErrCoverageExceedsTotal means the catalogue is inconsistent: a course claims more departments than exist.
	ErrCoverageExceedsTotal = errors.New("course department coverage exceeds total departments")
	// ErrNotStagingPath is returned when a key does not start with the staging prefix.
	ErrNotStagingPath = errors.New("not a staging path")
	// ErrMalformedPath is returned by ParsePath for keys that do not have the expected shape.
	ErrMalformedPath = errors.New("malformed document path")
)

// Kind is a course's department-coverage category.
type Kind int

const (
	General Kind = iota + 1
	Shared
	Specific
)

func (k Kind) String() string {
	switch k {
	case General:
		return "general"
	case Shared:
		return "shared"
	case Specific:
		return "specific"
	}
	return "unknown"
}

// Classification is the result of Classify. Department is set only for Specific.
type Classification struct {
	Kind       Kind
	Department string
}

// Segment is the path segment the classification contributes to a document key.
func (c Classification) Segment() string {
	if c.Kind == Specific {
		return strings.ReplaceAll(c.Department, " ", "-")
	}
	return c.Kind.String()
}

// Classify maps a course's department coverage against the total number of departments.
// The equality test runs first, so a course in the only department of a one-department
// catalogue is general.
func Classify(coverage []model.Department, totalDepartments int) (Classification, error) {
	d := len(coverage)
	switch {
	case d == 0:
		return Classification{}, ErrNoDepartmentCoverage
	case d > totalDepartments:
		return Classification{}, fmt.Errorf("%w: %d of %d", ErrCoverageExceedsTotal, d, totalDepartments)
	case d == totalDepartments:
		return Classification{Kind: General}, nil
	case d > 1:
		return Classification{Kind: Shared}, nil
	default:
		return Classification{Kind: Specific, Department: coverage[0].Name}, nil
	}
}

// Location is the course-derived part of a document key.
type Location struct {
	Level      string
	Semester   model.Semester
	CourseCode string
}

// LocationOf extracts the key-relevant fields of a course.
func LocationOf(c *model.Course) Location {
	return Location{Level: c.Level, Semester: c.Semester, CourseCode: c.Code}
}

// StagingPath builds temp/{level}/{semester}-semester/{segment}/{COURSE_CODE}/{name}.
func StagingPath(loc Location, c Classification, canonicalName string) string {
	return strings.Join([]string{
		StagingPrefix,
		loc.Level,
		string(loc.Semester) + "-semester",
		c.Segment(),
		strings.ToUpper(loc.CourseCode),
		canonicalName,
	}, "/")
}

// PermanentPath drops the leading staging segment and keeps everything after it.
func PermanentPath(stagingPath string) (string, error) {
	rest, ok := strings.CutPrefix(stagingPath, StagingPrefix+"/")
	if !ok || rest == "" {
		return "", fmt.Errorf("%w: %q", ErrNotStagingPath, stagingPath)
	}
	return rest, nil
}

// ParsedPath is a document key split back into its parts.
type ParsedPath struct {
	Staging  bool
	Location Location
	Segment  string
	Name     string
}

// ParsePath splits a staging or permanent key back into its components.
func ParsePath(p string) (ParsedPath, error) {
	var out ParsedPath
	if rest, ok := strings.CutPrefix(p, StagingPrefix+"/"); ok {
		out.Staging = true
		p = rest
	}
	parts := strings.Split(p, "/")
	if len(parts) != 5 {
		return ParsedPath{}, fmt.Errorf("%w: %q", ErrMalformedPath, p)
	}
	for _, part := range parts {
		if part == "" {
			return ParsedPath{}, fmt.Errorf("%w: %q", ErrMalformedPath, p)
		}
	}
	sem, ok := strings.CutSuffix(parts[1], "-semester")
	if !ok {
		return ParsedPath{}, fmt.Errorf("%w: %q", ErrMalformedPath, p)
	}
	out.Location = Location{Level: parts[0], Semester: model.Semester(sem), CourseCode: parts[3]}
	out.Segment = parts[2]
	out.Name = parts[4]
	return out, nil
}
