package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/abgdnv/bgrs/internal/inventory/codec"
)

const dateLayout = "2006-01-02"

// prompter asks questions on out and reads one answer line at a time from in.
// Every reader re-asks until it gets a valid answer and returns io.EOF once the input ends.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// line prints prompt and returns the next input line without its line ending.
func (p *prompter) line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	text, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || text == "") {
		return "", err
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.TrimSuffix(text, "\r"), nil
}

// text reads a free-text answer of at most maxBytes bytes.
// With a non-nil current, an empty answer keeps *current.
func (p *prompter) text(prompt string, maxBytes int, required bool, current *string) (string, error) {
	for {
		answer, err := p.line(prompt)
		if err != nil {
			return "", err
		}
		answer = strings.TrimSpace(answer)
		switch {
		case answer == "" && current != nil:
			return *current, nil
		case answer == "" && required:
			fmt.Fprintln(p.out, "[!] A value is required.")
		case len(answer) > maxBytes:
			fmt.Fprintf(p.out, "[!] Too long: %d bytes, at most %d allowed.\n", len(answer), maxBytes)
		case strings.Contains(answer, codec.Delimiter):
			fmt.Fprintf(p.out, "[!] The character %q is not allowed.\n", codec.Delimiter)
		default:
			return answer, nil
		}
	}
}

// quantity reads an integer between 0 and MaxInt32.
func (p *prompter) quantity(prompt string, current *int) (int, error) {
	for {
		answer, err := p.line(prompt)
		if err != nil {
			return 0, err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" && current != nil {
			return *current, nil
		}
		n, err := strconv.ParseInt(answer, 10, 64)
		if err != nil || n < 0 || n > math.MaxInt32 {
			fmt.Fprintf(p.out, "[!] Enter a whole number between 0 and %d.\n", math.MaxInt32)
			continue
		}
		return int(n), nil
	}
}

// price reads a finite non-negative number.
func (p *prompter) price(prompt string, current *float64) (float64, error) {
	for {
		answer, err := p.line(prompt)
		if err != nil {
			return 0, err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" && current != nil {
			return *current, nil
		}
		f, err := strconv.ParseFloat(answer, 64)
		if err != nil || f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
			fmt.Fprintln(p.out, "[!] Enter a positive price, e.g. 4.50.")
			continue
		}
		return f, nil
	}
}

// expiry reads unix seconds or a YYYY-MM-DD date (UTC). 0 means no expiry.
// With a nil current an empty answer also means no expiry.
func (p *prompter) expiry(prompt string, current *time.Time) (time.Time, error) {
	for {
		answer, err := p.line(prompt)
		if err != nil {
			return time.Time{}, err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			if current != nil {
				return *current, nil
			}
			return time.Time{}, nil
		}
		if t, err := time.ParseInLocation(dateLayout, answer, time.UTC); err == nil {
			return t, nil
		}
		secs, err := strconv.ParseInt(answer, 10, 64)
		if err != nil || secs < 0 {
			fmt.Fprintln(p.out, "[!] Enter a date as YYYY-MM-DD, a unix timestamp, or 0 for none.")
			continue
		}
		if secs == 0 {
			return time.Time{}, nil
		}
		return time.Unix(secs, 0), nil
	}
}

// id reads a record id. It does not re-ask: an invalid id is reported through ok.
func (p *prompter) id(prompt string) (id uint32, ok bool, err error) {
	answer, err := p.line(prompt)
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseUint(strings.TrimSpace(answer), 10, 32)
	if err != nil || n == 0 {
		return 0, false, nil
	}
	return uint32(n), true, nil
}
