package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var termPattern = regexp.MustCompile(`^\d{4}/\d{4}$`)

// Canonical category values stored on documents.
const (
	CategoryLectureMaterial = "lecture-material"
	CategoryNote            = "note"
	CategoryPastQuestions   = "past-questions"
)

// categories maps every accepted lower-case spelling to its canonical value.
var categories = map[string]string{
	"lecture material": CategoryLectureMaterial,
	"lecture-material": CategoryLectureMaterial,
	"note":             CategoryNote,
	"past question":    CategoryPastQuestions,
	"past questions":   CategoryPastQuestions,
	"past-question":    CategoryPastQuestions,
	"past-questions":   CategoryPastQuestions,
}

// Metadata holds the submission-time fields that describe a document.
type Metadata struct {
	Category string `json:"category" validate:"required,doc_category"`
	TermTag  string `json:"term_tag" validate:"omitempty,term_tag"`
}

// IsPastQuestion reports whether category denotes a past-question paper, which requires a term tag.
func IsPastQuestion(category string) bool {
	c := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(category)), " ", "-")
	return c == "past-question" || c == "past-questions"
}

// MetadataValidator validates Metadata with struct tags and a cross-field term rule.
type MetadataValidator struct {
	validate *validator.Validate
}

// NewMetadataValidator registers the document rules on a fresh go-playground validator.
func NewMetadataValidator() *MetadataValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("doc_category", func(fl validator.FieldLevel) bool {
		_, ok := categories[fl.Field().String()]
		return ok
	})
	_ = v.RegisterValidation("term_tag", func(fl validator.FieldLevel) bool {
		return termPattern.MatchString(fl.Field().String())
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		m := sl.Current().Interface().(Metadata)
		if IsPastQuestion(m.Category) && m.TermTag == "" {
			sl.ReportError(m.TermTag, "term_tag", "TermTag", "term_required", "")
		}
	}, Metadata{})
	return &MetadataValidator{validate: v}
}

// Validate normalizes in and checks it. The category is lower-cased, trimmed and mapped to its
// canonical spelling; the term is trimmed. It returns the normalized record, or Errors with one
// entry per offending field.
func (m *MetadataValidator) Validate(in Metadata) (Metadata, error) {
	out := Metadata{
		Category: strings.ToLower(strings.TrimSpace(in.Category)),
		TermTag:  strings.TrimSpace(in.TermTag),
	}
	if canon, ok := categories[out.Category]; ok {
		out.Category = canon
	}
	err := m.validate.Struct(out)
	if err == nil {
		return out, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Metadata{}, err
	}
	fes := make(Errors, 0, len(verrs))
	for _, e := range verrs {
		fes = append(fes, toFieldError(e))
	}
	return Metadata{}, fes
}

func toFieldError(e validator.FieldError) *FieldError {
	switch e.Tag() {
	case "required":
		return &FieldError{Field: e.Field(), Code: CodeInvalidCategory, Message: "category is required"}
	case "doc_category":
		return &FieldError{Field: e.Field(), Code: CodeInvalidCategory,
			Message: "category must be one of: lecture-material, note, past-questions"}
	case "term_tag":
		return &FieldError{Field: e.Field(), Code: CodeInvalidTermFormat, Message: "term tag must look like YYYY/YYYY"}
	case "term_required":
		return &FieldError{Field: e.Field(), Code: CodeMissingTerm, Message: "term tag is required for past questions"}
	default:
		return &FieldError{Field: e.Field(), Code: Code(strings.ToUpper(e.Tag())), Message: e.Field() + " is invalid"}
	}
}
