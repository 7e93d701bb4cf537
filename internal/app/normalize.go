package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"hotel_listings/internal/domain"
)

// Largest integer a float64 carries exactly; counts above it are rejected.
const maxExactInt = 1 << 53

/********** scalar fields **********/

// intField parses a non-negative integer from text ("2", "2.0") or a native number.
// supplied is false when the field is absent or blank.
func intField(name string, f Field) (n int, supplied bool, err error) {
	if f.blank() {
		return 0, false, nil
	}
	var x float64
	switch f.Kind {
	case FieldText:
		s := strings.TrimSpace(f.Text)
		if i, err := strconv.Atoi(s); err == nil {
			return nonNegative(name, i)
		}
		p, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, true, domain.Invalid(name, "%q is not an integer", f.Text)
		}
		x = p
	default:
		v, ok := numberOf(f.Value)
		if !ok {
			return 0, true, domain.Invalid(name, "expected an integer")
		}
		x = v
	}
	if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) || math.Abs(x) > maxExactInt {
		return 0, true, domain.Invalid(name, "expected an integer")
	}
	return nonNegative(name, int(x))
}

func nonNegative(name string, n int) (int, bool, error) {
	if n < 0 {
		return 0, true, domain.Invalid(name, "must not be negative")
	}
	return n, true, nil
}

func floatField(name string, f Field) (float64, bool, error) {
	if f.blank() {
		return 0, false, nil
	}
	var x float64
	switch f.Kind {
	case FieldText:
		p, err := strconv.ParseFloat(strings.TrimSpace(f.Text), 64)
		if err != nil {
			return 0, true, domain.Invalid(name, "%q is not a number", f.Text)
		}
		x = p
	default:
		v, ok := numberOf(f.Value)
		if !ok {
			return 0, true, domain.Invalid(name, "expected a number")
		}
		x = v
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, true, domain.Invalid(name, "expected a finite number")
	}
	return x, true, nil
}

func textField(name string, f Field) (string, bool, error) {
	switch f.Kind {
	case FieldAbsent:
		return "", false, nil
	case FieldText:
		return f.Text, true, nil
	default:
		return "", true, domain.Invalid(name, "expected a string")
	}
}

// numberOf accepts the shapes a decoded JSON number can take.
func numberOf(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}

/********** collection fields **********/

// amenitiesField: native list of strings, a JSON array in text, or comma separated text
// split literally (no trimming, no dedupe).
func amenitiesField(f Field) ([]string, bool, error) {
	if f.blank() {
		return nil, false, nil
	}
	raw := f.Value
	if f.Kind == FieldText {
		if !strings.HasPrefix(strings.TrimSpace(f.Text), "[") {
			return strings.Split(f.Text, ","), true, nil
		}
		v, err := decodeJSONText(f.Text)
		if err != nil {
			return nil, true, domain.Invalid("amenities", "malformed JSON: %v", err)
		}
		raw = v
	}
	switch t := raw.(type) {
	case []string:
		return append([]string{}, t...), true, nil
	case []any:
		out := make([]string, 0, len(t))
		for i, it := range t {
			s, ok := it.(string)
			if !ok {
				return nil, true, domain.Invalid(fmt.Sprintf("amenities[%d]", i), "expected a string")
			}
			out = append(out, s)
		}
		return out, true, nil
	}
	return nil, true, domain.Invalid("amenities", "expected a list of strings")
}

// hostInfoField accepts a JSON object, as text or native. Anything else is rejected.
func hostInfoField(f Field) (map[string]any, bool, error) {
	if f.blank() {
		return nil, false, nil
	}
	raw := f.Value
	if f.Kind == FieldText {
		v, err := decodeJSONText(f.Text)
		if err != nil {
			return nil, true, domain.Invalid("host_information", "malformed JSON: %v", err)
		}
		raw = v
	}
	m, ok := raw.(map[string]any)
	if !ok || m == nil {
		return nil, true, domain.Invalid("host_information", "expected an object")
	}
	return m, true, nil
}

// roomsField maps a JSON array (text or native) of raw rooms into canonical rooms
// owned by hotelSlug.
func roomsField(f Field, hotelSlug string) ([]domain.Room, bool, error) {
	if f.blank() {
		return nil, false, nil
	}
	raw := f.Value
	if f.Kind == FieldText {
		v, err := decodeJSONText(f.Text)
		if err != nil {
			return nil, true, domain.Invalid("rooms", "malformed JSON: %v", err)
		}
		raw = v
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, true, domain.Invalid("rooms", "expected a list of rooms")
	}
	out := make([]domain.Room, 0, len(list))
	for i, it := range list {
		obj, ok := it.(map[string]any)
		if !ok {
			return nil, true, domain.Invalid(fmt.Sprintf("rooms[%d]", i), "expected an object")
		}
		room, err := mapRoom(i, obj, hotelSlug)
		if err != nil {
			return nil, true, err
		}
		out = append(out, room)
	}
	return out, true, nil
}

func mapRoom(i int, obj map[string]any, hotelSlug string) (domain.Room, error) {
	prefix := fmt.Sprintf("rooms[%d].", i)

	title, _, err := textField(prefix+"room_title", fieldOf(obj["room_title"]))
	if err != nil {
		return domain.Room{}, err
	}
	image, _, err := textField(prefix+"room_image", fieldOf(obj["room_image"]))
	if err != nil {
		return domain.Room{}, err
	}
	beds, _, err := intField(prefix+"bedroom_count", fieldOf(obj["bedroom_count"]))
	if err != nil {
		return domain.Room{}, err
	}
	return domain.Room{
		HotelSlug:    hotelSlug,
		RoomSlug:     Slugify(title),
		RoomImage:    image,
		RoomTitle:    title,
		BedroomCount: beds,
	}, nil
}

// decodeJSONText decodes exactly one JSON value, keeping numbers as json.Number.
func decodeJSONText(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return v, nil
}
