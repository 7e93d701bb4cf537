package app

import (
	"strings"

	"hotel_listings/internal/domain"
)

// BuildHotel assembles a new document from a create payload and the public paths of
// already stored uploads. It performs no I/O.
func BuildHotel(p RawPayload, images []string, newID func() string) (domain.Hotel, error) {
	if newID == nil {
		newID = NewHotelID
	}
	h := domain.Hotel{
		ID:              newID(),
		Images:          append([]string{}, images...),
		Amenities:       []string{},
		HostInformation: map[string]any{},
		Rooms:           []domain.Room{},
	}

	var err error
	if h.Title, _, err = textField("title", p.Get("title")); err != nil {
		return domain.Hotel{}, err
	}
	h.Slug = hotelSlug(h.Title, h.ID)

	if err := applyScalars(&h, p); err != nil {
		return domain.Hotel{}, err
	}

	if v, ok, err := amenitiesField(p.Get("amenities")); err != nil {
		return domain.Hotel{}, err
	} else if ok {
		h.Amenities = v
	}
	if v, ok, err := hostInfoField(p.Get("host_information")); err != nil {
		return domain.Hotel{}, err
	} else if ok {
		h.HostInformation = v
	}
	if v, ok, err := roomsField(p.Get("rooms"), h.Slug); err != nil {
		return domain.Hotel{}, err
	} else if ok {
		h.Rooms = v
	}

	if err := validateHotel(h); err != nil {
		return domain.Hotel{}, err
	}
	return h, nil
}

// hotelSlug falls back to the id when the title has nothing sluggable.
func hotelSlug(title, id string) string {
	if s := Slugify(title); s != "" {
		return s
	}
	return strings.ToLower(id)
}

// applyScalars sets every supplied text and numeric field on h. Absent fields are left alone,
// which serves both the create defaults and the update merge.
func applyScalars(h *domain.Hotel, p RawPayload) error {
	texts := []struct {
		name string
		dst  *string
	}{
		{"description", &h.Description},
		{"address", &h.Address},
	}
	for _, t := range texts {
		v, ok, err := textField(t.name, p.Get(t.name))
		if err != nil {
			return err
		}
		if ok {
			*t.dst = v
		}
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"guest_count", &h.GuestCount},
		{"bedroom_count", &h.BedroomCount},
		{"bathroom_count", &h.BathroomCount},
	}
	for _, n := range ints {
		v, ok, err := intField(n.name, p.Get(n.name))
		if err != nil {
			return err
		}
		if ok {
			*n.dst = v
		}
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"latitude", &h.Latitude},
		{"longitude", &h.Longitude},
	}
	for _, f := range floats {
		v, ok, err := floatField(f.name, p.Get(f.name))
		if err != nil {
			return err
		}
		if ok {
			*f.dst = v
		}
	}
	return nil
}
