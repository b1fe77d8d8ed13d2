package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/abgdnv/bgrs/internal/inventory/persistence"
	"github.com/abgdnv/bgrs/internal/inventory/service"
	"github.com/abgdnv/bgrs/internal/inventory/store"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPath = "inventory.txt"

func newTestService() *service.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewService(persistence.NewGateway(afero.NewMemMapFs(), logger), nil, nil, logger)
}

// runMenu feeds the answers to a menu, one per line, and returns what it printed.
func runMenu(t *testing.T, svc service.InventoryService, answers ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(answers, "\n") + "\n")
	menu := NewMenu(svc, in, &out, testPath, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, menu.Run(context.Background()))
	return out.String()
}

func Test_Menu_AddAndList(t *testing.T) {
	// given
	svc := newTestService()
	// when
	out := runMenu(t, svc,
		"2", "Gauze", "Sterile", "Dressing", "5", "1.5", "2099-01-31", "keep dry",
		"1",
		"9",
	)
	// then
	assert.Contains(t, out, "Product added with ID 1.")
	assert.Contains(t, out, "Goodbye.")
	r, err := svc.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, store.Fields{
		Name: "Gauze", Description: "Sterile", Category: "Dressing", Quantity: 5, UnitPrice: 1.5,
		ExpiresAt: time.Date(2099, time.January, 31, 0, 0, 0, 0, time.UTC), Note: "keep dry",
	}, r.Fields)
	assert.Contains(t, out, "2099-01-31")
}

func Test_Menu_InvalidAnswersAreAskedAgain(t *testing.T) {
	// given
	svc := newTestService()
	// when
	out := runMenu(t, svc,
		"2", "", "Bad|name", "Gauze", "", "", "-3", "abc", "4", "-1", "2.25", "tomorrow", "0", "",
		"9",
	)
	// then
	assert.Contains(t, out, "[!] A value is required.")
	assert.Contains(t, out, `[!] The character "|" is not allowed.`)
	assert.Contains(t, out, "[!] Enter a whole number between 0 and 2147483647.")
	assert.Contains(t, out, "[!] Enter a positive price")
	assert.Contains(t, out, "[!] Enter a date as YYYY-MM-DD")
	r, err := svc.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, store.Fields{Name: "Gauze", Quantity: 4, UnitPrice: 2.25}, r.Fields)
}

func Test_Menu_TextTooLong(t *testing.T) {
	// given
	svc := newTestService()
	// when
	out := runMenu(t, svc,
		"2", strings.Repeat("n", store.MaxNameBytes+1), "Gauze", "", "", "1", "1", "0", "",
		"9",
	)
	// then
	assert.Contains(t, out, "[!] Too long: 64 bytes, at most 63 allowed.")
	assert.Contains(t, out, "Product added with ID 1.")
}

func Test_Menu_ModifyKeepsValuesOnEmptyAnswer(t *testing.T) {
	// given
	svc := newTestService()
	original, err := svc.Add(store.Fields{
		Name: "Gauze", Description: "Sterile", Category: "Dressing", Quantity: 5, UnitPrice: 1.5,
		ExpiresAt: time.Date(2099, time.January, 31, 0, 0, 0, 0, time.UTC), Note: "keep dry",
	})
	require.NoError(t, err)
	// when
	out := runMenu(t, svc,
		"4", "1", "", "", "", "7", "", "", "",
		"9",
	)
	// then
	assert.Contains(t, out, "Product 1 modified.")
	assert.Contains(t, out, "Quantity [5]: ")
	r, err := svc.FindByID(1)
	require.NoError(t, err)
	expected := original.Fields
	expected.Quantity = 7
	assert.Equal(t, expected, r.Fields)
}

func Test_Menu_UnknownIDs(t *testing.T) {
	testCases := []struct {
		name     string
		answers  []string
		expected string
	}{
		{name: "Delete unknown", answers: []string{"3", "9", "9"}, expected: "[!] No product with this ID."},
		{name: "Modify unknown", answers: []string{"4", "9", "9"}, expected: "[!] No product with this ID."},
		{name: "Delete garbage", answers: []string{"3", "abc", "9"}, expected: "[!] Invalid ID."},
		{name: "Unknown choice", answers: []string{"42", "9"}, expected: "[!] Unknown choice."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			out := runMenu(t, newTestService(), tc.answers...)
			// then
			assert.Contains(t, out, tc.expected)
		})
	}
}

func Test_Menu_DeleteAndSearch(t *testing.T) {
	// given
	svc := newTestService()
	_, err := svc.GenerateSamples()
	require.NoError(t, err)
	// when
	out := runMenu(t, svc,
		"5", "2",
		"5", "potion",
		"5", "nothing like this",
		"3", "1",
		"9",
	)
	// then
	assert.Contains(t, out, "Duct tape")
	assert.Contains(t, out, "Potion de Soin Ultime")
	assert.Contains(t, out, "No matching product.")
	assert.Contains(t, out, "Product 1 deleted.")
	_, err = svc.FindByID(1)
	assert.Error(t, err)
}

func Test_Menu_SaveAndLoad(t *testing.T) {
	// given
	svc := newTestService()
	// when
	out := runMenu(t, svc, "8", "6", "7", "1", "9")
	// then
	assert.Contains(t, out, "6 sample product(s) added.")
	assert.Contains(t, out, "Inventory saved to inventory.txt.")
	assert.Contains(t, out, "6 product(s) loaded from inventory.txt.")
	assert.Len(t, svc.List(), 6)
}

func Test_Menu_SweepsBeforeEachAction(t *testing.T) {
	// given
	svc := newTestService()
	_, err := svc.Add(store.Fields{Name: "Old", ExpiresAt: time.Unix(1, 0)})
	require.NoError(t, err)
	// when
	out := runMenu(t, svc, "1", "9")
	// then
	assert.Contains(t, out, "1 expired product(s) removed.")
	assert.Contains(t, out, "The inventory is empty.")
}

func Test_Menu_EndOfInputQuits(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "Empty input", input: ""},
		{name: "In the middle of an add", input: "2\nGauze\n"},
		{name: "No trailing newline", input: "1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			menu := NewMenu(newTestService(), strings.NewReader(tc.input), io.Discard, testPath, slog.New(slog.NewTextHandler(io.Discard, nil)))
			// when
			err := menu.Run(context.Background())
			// then
			assert.NoError(t, err)
		})
	}
}

func Test_Menu_CancelledContext(t *testing.T) {
	// given
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	menu := NewMenu(newTestService(), strings.NewReader("1\n"), io.Discard, testPath, slog.New(slog.NewTextHandler(io.Discard, nil)))
	// when
	err := menu.Run(ctx)
	// then
	assert.ErrorIs(t, err, context.Canceled)
}
