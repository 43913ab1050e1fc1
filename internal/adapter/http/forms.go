package httpadapter

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"mesa-console/internal/adapter/http/views"
	"mesa-console/internal/i18n"
)

const dateLayout = "2006-01-02"

// newValidator reports field errors under the form input names, so
// AgencyID becomes agencyId and DestinationURL becomes destinationUrl.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return formName(f.Name)
	})
	return v
}

func formName(field string) string {
	for _, suffix := range []string{"URL", "ID"} {
		if len(field) > len(suffix) && strings.HasSuffix(field, suffix) {
			field = strings.TrimSuffix(field, suffix) + suffix[:1] + strings.ToLower(suffix[1:])
		}
	}
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// formReader reads typed values from a posted form and remembers values
// that could not be parsed.
type formReader struct {
	r    *http.Request
	loc  *i18n.Localizer
	errs views.FieldErrors
}

func newFormReader(r *http.Request) (*formReader, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &formReader{r: r, loc: stateFrom(r.Context()).loc, errs: views.FieldErrors{}}, nil
}

func (f *formReader) str(name string) string {
	return strings.TrimSpace(f.r.PostForm.Get(name))
}

func (f *formReader) integer(name string) int64 {
	s := f.str(name)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f.invalid(name, "validation.number")
	}
	return v
}

func (f *formReader) decimal(name string) float64 {
	s := f.str(name)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		f.invalid(name, "validation.number")
	}
	return v
}

// optionalID returns nil for an empty or zero value.
func (f *formReader) optionalID(name string) *int64 {
	if v := f.integer(name); v > 0 {
		return &v
	}
	return nil
}

func (f *formReader) date(name string) time.Time {
	s := f.str(name)
	if s == "" {
		return time.Time{}
	}
	v, err := time.Parse(dateLayout, s)
	if err != nil {
		f.invalid(name, "validation.date")
	}
	return v
}

func (f *formReader) invalid(name, key string) {
	if _, ok := f.errs[name]; !ok {
		f.errs[name] = f.loc.T(key)
	}
}

// check validates in and returns every field error, parse errors first.
// It returns nil when the input is acceptable.
func (h *Handler) check(f *formReader, in any) views.FieldErrors {
	err := h.validate.Struct(in)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if _, ok := f.errs[fe.Field()]; ok {
				continue
			}
			key := "validation." + fe.Tag()
			if !f.loc.Has(key) {
				key = "validation.invalid"
			}
			f.errs[fe.Field()] = f.loc.T(key, i18n.Params{"param": fe.Param()})
		}
	}
	if len(f.errs) == 0 {
		return nil
	}
	return f.errs
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
