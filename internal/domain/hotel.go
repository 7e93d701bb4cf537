package domain

// Hotel is the persisted document. JSON names are the on-disk and wire names.
type Hotel struct {
	ID              string         `json:"hotel_id" validate:"required"`
	Slug            string         `json:"slug" validate:"required"`
	Images          []string       `json:"images"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	GuestCount      int            `json:"guest_count" validate:"gte=0"`
	BedroomCount    int            `json:"bedroom_count" validate:"gte=0"`
	BathroomCount   int            `json:"bathroom_count" validate:"gte=0"`
	Amenities       []string       `json:"amenities"`
	HostInformation map[string]any `json:"host_information"`
	Address         string         `json:"address"`
	Latitude        float64        `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude       float64        `json:"longitude" validate:"gte=-180,lte=180"`
	Rooms           []Room         `json:"rooms" validate:"dive"`
}

// Room is embedded in a Hotel and not addressable on its own.
type Room struct {
	HotelSlug    string `json:"hotel_slug"`
	RoomSlug     string `json:"room_slug"`
	RoomImage    string `json:"room_image,omitempty"`
	RoomTitle    string `json:"room_title"`
	BedroomCount int    `json:"bedroom_count" validate:"gte=0"`
}

// Clone returns a copy that shares no slices or maps with h.
func (h Hotel) Clone() Hotel {
	out := h
	out.Images = append([]string(nil), h.Images...)
	out.Amenities = append([]string(nil), h.Amenities...)
	out.Rooms = append([]Room(nil), h.Rooms...)
	if h.HostInformation != nil {
		out.HostInformation = make(map[string]any, len(h.HostInformation))
		for k, v := range h.HostInformation {
			out.HostInformation[k] = v
		}
	}
	if out.Images == nil {
		out.Images = []string{}
	}
	if out.Amenities == nil {
		out.Amenities = []string{}
	}
	if out.Rooms == nil {
		out.Rooms = []Room{}
	}
	return out
}
