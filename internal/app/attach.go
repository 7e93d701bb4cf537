package app

import "hotel_listings/internal/domain"

// AttachImages appends paths after the existing images, keeping order and duplicates.
func AttachImages(existing domain.Hotel, paths []string) (domain.Hotel, error) {
	if len(paths) == 0 {
		return domain.Hotel{}, domain.Invalid("images", "no images uploaded")
	}
	h := existing.Clone()
	h.Images = append(h.Images, paths...)
	return h, nil
}
