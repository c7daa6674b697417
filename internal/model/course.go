package model

// Semester tags the half of the academic year a course runs in.
type Semester string

const (
	SemesterFirst  Semester = "first"
	SemesterSecond Semester = "second"
)

// Course is owned by the catalogue; documents are filed against it.
type Course struct {
	ID       string   `json:"id"`
	Code     string   `json:"course_code"`
	Level    string   `json:"level"`
	Semester Semester `json:"semester"`
}

// Department offers courses. Only its name matters to document placement.
type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
