package app

import (
	"hotel_listings/internal/domain"
)

// MergeHotel applies a partial update field by field. hotel_id, slug and images are
// never taken from the patch, and unknown keys are ignored. existing is not modified.
func MergeHotel(existing domain.Hotel, patch RawPayload) (domain.Hotel, error) {
	h := existing.Clone()

	if v, ok, err := textField("title", patch.Get("title")); err != nil {
		return domain.Hotel{}, err
	} else if ok {
		h.Title = v
	}

	if err := applyScalars(&h, patch); err != nil {
		return domain.Hotel{}, err
	}

	if v, ok, err := amenitiesField(patch.Get("amenities")); err != nil {
		return domain.Hotel{}, err
	} else if ok {
		h.Amenities = v
	}
	// Replaced wholesale, never deep merged.
	if v, ok, err := hostInfoField(patch.Get("host_information")); err != nil {
		return domain.Hotel{}, err
	} else if ok {
		h.HostInformation = v
	}
	if v, ok, err := roomsField(patch.Get("rooms"), existing.Slug); err != nil {
		return domain.Hotel{}, err
	} else if ok {
		h.Rooms = v
	}

	if err := validateHotel(h); err != nil {
		return domain.Hotel{}, err
	}
	return h, nil
}
