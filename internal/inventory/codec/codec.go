// Package codec converts inventory records to and from persisted text lines.
//
// A line holds exactly eight fields separated by '|':
//
//	id|name|description|category|quantity|price|expiry|note
//
// price is written with two decimals, expiry as unix seconds (0 = no expiry).
// Field values are not escaped: a value containing '|' corrupts its line.
package codec

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	inverrors "github.com/abgdnv/bgrs/internal/inventory/errors"
	"github.com/abgdnv/bgrs/internal/inventory/store"
)

const (
	// Delimiter separates fields on a line.
	Delimiter = "|"
	// FieldCount is the number of fields a line must carry.
	FieldCount = 8
)

// Encode renders a record as one line, without the trailing newline.
// An empty category is written as store.DefaultCategory.
func Encode(r store.Record) string {
	category := r.Category
	if category == "" {
		category = store.DefaultCategory
	}
	var expiry int64
	if r.HasExpiry() {
		expiry = r.ExpiresAt.Unix()
	}
	return strings.Join([]string{
		strconv.FormatUint(uint64(r.ID), 10),
		r.Name,
		r.Description,
		category,
		strconv.Itoa(r.Quantity),
		strconv.FormatFloat(r.UnitPrice, 'f', 2, 64),
		strconv.FormatInt(expiry, 10),
		r.Note,
	}, Delimiter)
}

// Decode parses one line into a record.
//
// Returns ErrCorruptLine if the line has fewer than FieldCount fields; empty
// fields still count, tokens past the last field are ignored. Numeric fields are
// parsed leniently: the leading number is used and text without one reads as 0.
// The decoded fields then go through record construction, so a value breaking a
// field invariant (negative quantity, name too long) returns ErrValidation.
func Decode(line string) (store.Record, error) {
	tokens := strings.Split(line, Delimiter)
	if len(tokens) < FieldCount {
		return store.Record{}, fmt.Errorf("%w: expected %d fields, got %d", inverrors.ErrCorruptLine, FieldCount, len(tokens))
	}

	category := tokens[3]
	if category == "" {
		category = store.DefaultCategory
	}
	fields := store.Fields{
		Name:        tokens[1],
		Description: tokens[2],
		Category:    category,
		Quantity:    parseInt(tokens[4]),
		UnitPrice:   parseFloat(tokens[5]),
		ExpiresAt:   parseExpiry(tokens[6]),
		Note:        tokens[7],
	}
	return store.NewRecord(parseID(tokens[0]), fields)
}

// parseID reads an unsigned id. Signs are not accepted, so "-1" reads as 0.
func parseID(s string) uint32 {
	digits := leadingDigits(strings.TrimLeft(s, " \t"))
	id, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(id)
}

func parseInt(s string) int {
	s = strings.TrimLeft(s, " \t")
	sign := signPrefix(s)
	n, err := strconv.ParseInt(sign+leadingDigits(s[len(sign):]), 10, 0)
	if err != nil {
		return 0
	}
	return int(n)
}

func parseExpiry(s string) time.Time {
	s = strings.TrimLeft(s, " \t")
	sign := signPrefix(s)
	secs, err := strconv.ParseInt(sign+leadingDigits(s[len(sign):]), 10, 64)
	if err != nil || secs == 0 {
		return time.Time{}
	}
	return time.Unix(secs, 0)
}

func parseFloat(s string) float64 {
	s = strings.TrimLeft(s, " \t")
	sign := signPrefix(s)
	rest := s[len(sign):]

	intPart := leadingDigits(rest)
	number := intPart
	rest = rest[len(intPart):]
	if strings.HasPrefix(rest, ".") {
		frac := leadingDigits(rest[1:])
		if intPart != "" || frac != "" {
			number += "." + frac
			rest = rest[1+len(frac):]
		}
	}
	if number == "" || number == "." {
		return 0
	}
	if len(rest) > 1 && (rest[0] == 'e' || rest[0] == 'E') {
		expSign := signPrefix(rest[1:])
		if expDigits := leadingDigits(rest[1+len(expSign):]); expDigits != "" {
			number += "e" + expSign + expDigits
		}
	}

	f, err := strconv.ParseFloat(sign+number, 64)
	if err != nil {
		return 0
	}
	return f
}

func signPrefix(s string) string {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		return s[:1]
	}
	return ""
}

func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}
