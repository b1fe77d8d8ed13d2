package store

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	inverrors "github.com/abgdnv/bgrs/internal/inventory/errors"
	"github.com/go-playground/validator/v10"
)

// Field ceilings, in bytes.
const (
	MaxNameBytes        = 63
	MaxDescriptionBytes = 1023
	MaxCategoryBytes    = 63
	MaxNoteBytes        = 255
)

// DefaultCategory replaces an empty category when a record is read back from disk.
const DefaultCategory = "Divers"

// Fields holds the mutable attributes of a record.
// A zero ExpiresAt means the record never expires; the epoch itself is read as zero
// and earlier instants are rejected.
type Fields struct {
	Name        string    `validate:"required,maxbytes=63"`
	Description string    `validate:"maxbytes=1023"`
	Category    string    `validate:"maxbytes=63"`
	Quantity    int       `validate:"min=0"`
	UnitPrice   float64   `validate:"min=0,finite"`
	ExpiresAt   time.Time `validate:"notbeforeepoch"`
	Note        string    `validate:"maxbytes=255"`
}

// Record represents a product entry in the inventory.
type Record struct {
	ID uint32
	Fields
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// validator's max counts runes, the ceilings are bytes
	if err := v.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic(fmt.Sprintf("register maxbytes validation: %v", err))
	}
	// a non-finite price cannot be written with two decimals
	if err := v.RegisterValidation("finite", finite); err != nil {
		panic(fmt.Sprintf("register finite validation: %v", err))
	}
	if err := v.RegisterValidation("notbeforeepoch", notBeforeEpoch); err != nil {
		panic(fmt.Sprintf("register notbeforeepoch validation: %v", err))
	}
	return v
}

func finite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

func notBeforeEpoch(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	return ok && (t.IsZero() || t.Unix() >= 0)
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// NewRecord builds a record from the given fields.
// Returns ErrValidation if any field breaks its invariant.
func NewRecord(id uint32, fields Fields) (Record, error) {
	fields = fields.normalized()
	if err := fields.Validate(); err != nil {
		return Record{}, err
	}
	return Record{ID: id, Fields: fields}, nil
}

// Validate checks every field against its invariant without modifying anything.
func (f Fields) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		problems := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			rule := fieldErr.Tag()
			if fieldErr.Param() != "" {
				rule += "=" + fieldErr.Param()
			}
			problems = append(problems, fieldErr.Field()+" failed on rule: "+rule)
		}
		return fmt.Errorf("%w: %s", inverrors.ErrValidation, strings.Join(problems, ", "))
	}
	return fmt.Errorf("%w: %v", inverrors.ErrValidation, err)
}

// normalized trims the name and maps the epoch to "no expiry", which is how it is persisted.
func (f Fields) normalized() Fields {
	f.Name = strings.TrimSpace(f.Name)
	if !f.ExpiresAt.IsZero() && f.ExpiresAt.Unix() == 0 {
		f.ExpiresAt = time.Time{}
	}
	return f
}

// HasExpiry reports whether the record carries an expiry date.
func (r Record) HasExpiry() bool {
	return !r.ExpiresAt.IsZero()
}

// ExpiredAt reports whether the record expired strictly before now.
func (r Record) ExpiredAt(now time.Time) bool {
	return r.HasExpiry() && r.ExpiresAt.Before(now)
}
