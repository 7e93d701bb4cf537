package app_test

import (
	"net/url"
	"regexp"
	"strings"
	"testing"

	"hotel_listings/internal/app"
)

var hotelIDPattern = regexp.MustCompile(`^h[0-9a-f]{12}$`)

func stringsReader(s string) *strings.Reader { return strings.NewReader(s) }

func TestNewHotelID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := app.NewHotelID()
		if !hotelIDPattern.MatchString(id) {
			t.Fatalf("bad id %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Sea View Inn":       "sea-view-inn",
		"  Café  du  Monde ": "cafe-du-monde",
		"":                   "",
		"   ":                "",
	}
	for in, want := range cases {
		if got := app.Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPayloadFromForm(t *testing.T) {
	p := app.PayloadFromForm(url.Values{
		"title":     {"Inn"},
		"amenities": {"a", "b"},
		"empty":     {},
	})
	if f := p.Get("title"); f.Kind != app.FieldText || f.Text != "Inn" {
		t.Fatalf("title = %+v", f)
	}
	if f := p.Get("amenities"); f.Kind != app.FieldValue {
		t.Fatalf("repeated key should be a sequence: %+v", f)
	}
	if p.Get("empty").Present() || p.Get("missing").Present() {
		t.Fatalf("absent keys must not be present")
	}
}

func TestPayloadFromJSON_NullIsAbsent(t *testing.T) {
	p := app.PayloadFromJSON(map[string]any{"title": nil, "address": ""})
	if p.Get("title").Present() {
		t.Fatalf("null should be absent")
	}
	if f := p.Get("address"); f.Kind != app.FieldText || f.Text != "" {
		t.Fatalf("empty string should stay text: %+v", f)
	}
}
