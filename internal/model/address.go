// Package model defines the address records printed on a label.
package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/letterpack/letterpack/internal/text"
)

// DefaultHonorific is the courtesy suffix printed after a recipient's name
const DefaultHonorific = "様"

// Address is one party of a label. Values are built with New and treated
// as read-only afterwards; an empty optional field means absent.
type Address struct {
	PostalCode string `json:"postal_code" validate:"required"`
	Address1   string `json:"address1" validate:"required"`
	Address2   string `json:"address2,omitempty"`
	Address3   string `json:"address3,omitempty"`
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone,omitempty"`
	Honorific  string `json:"honorific,omitempty"`
}

// New trims every field, folds the phone number to ASCII and checks that
// the postal code, first address line and name are present. The postal code
// is kept as entered.
func New(a Address) (Address, error) {
	a = Address{
		PostalCode: strings.TrimSpace(a.PostalCode),
		Address1:   strings.TrimSpace(a.Address1),
		Address2:   strings.TrimSpace(a.Address2),
		Address3:   strings.TrimSpace(a.Address3),
		Name:       strings.TrimSpace(a.Name),
		Phone:      text.NormalizeWidth(a.Phone),
		Honorific:  strings.TrimSpace(a.Honorific),
	}
	if err := a.Validate(); err != nil {
		return Address{}, err
	}
	return a, nil
}

// MustNew is like New but panics on invalid input. Intended for fixtures.
func MustNew(a Address) Address {
	out, err := New(a)
	if err != nil {
		panic(err)
	}
	return out
}

// Lines returns the non-empty address lines in order
func (a Address) Lines() []string {
	lines := make([]string, 0, 3)
	for _, l := range []string{a.Address1, a.Address2, a.Address3} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// HasPhone reports whether a phone number should be printed
func (a Address) HasPhone() bool { return a.Phone != "" }

// HasHonorific reports whether space is reserved for an honorific
func (a Address) HasHonorific() bool { return a.Honorific != "" }

// String returns a single-line summary for logs
func (a Address) String() string {
	return fmt.Sprintf("〒%s %s %s", a.PostalCode, strings.Join(a.Lines(), " "), a.Name)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate reports every missing required field
func (a Address) Validate() error {
	err := validatorInstance().Struct(a)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating address: %w", err)
	}
	out := &ValidationError{}
	for _, e := range verrs {
		out.Fields = append(out.Fields, e.Field())
	}
	return out
}

// ValidationError lists the required fields an Address is missing
type ValidationError struct {
	// Side is "to" or "from" when known
	Side   string
	Fields []string
}

func (e *ValidationError) Error() string {
	prefix := "address"
	if e.Side != "" {
		prefix = e.Side + " address"
	}
	return fmt.Sprintf("%s: missing required field(s): %s", prefix, strings.Join(e.Fields, ", "))
}

// WithSide returns a copy of err tagged with side when err is a *ValidationError
func WithSide(err error, side string) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		cp := *verr
		cp.Side = side
		return &cp
	}
	return err
}
