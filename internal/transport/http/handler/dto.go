package handler

import (
	"time"

	"github.com/go-trip-booking/internal/domain"
)

const dateLayout = "2006-01-02"

// LocationDTO is the wire form of a trip location.
type LocationDTO struct {
	City      string   `json:"city"`
	Country   string   `json:"country"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// PriceDTO is the wire form of a price.
type PriceDTO struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted"`
}

// TripDTO is the wire form of a trip aggregate.
type TripDTO struct {
	ID                  string      `json:"id"`
	Title               string      `json:"title"`
	Description         string      `json:"description"`
	ImageURL            string      `json:"image_url,omitempty"`
	Location            LocationDTO `json:"location"`
	StartDate           string      `json:"start_date"`
	EndDate             string      `json:"end_date"`
	DurationDays        int         `json:"duration_days"`
	Price               PriceDTO    `json:"price"`
	MaxParticipants     int         `json:"max_participants"`
	CurrentParticipants int         `json:"current_participants"`
	AvailableSpots      int         `json:"available_spots"`
	Rating              float64     `json:"rating"`
	Tags                []string    `json:"tags,omitempty"`
	Status              string      `json:"status"`
	CancelReason        string      `json:"cancel_reason,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

func newLocationDTO(l domain.Location) LocationDTO {
	dto := LocationDTO{City: l.City(), Country: l.Country()}
	if c := l.Coordinates(); c != nil {
		lat, lng := c.Latitude, c.Longitude
		dto.Latitude, dto.Longitude = &lat, &lng
	}
	return dto
}

func newTripDTO(t domain.Trip) TripDTO {
	return TripDTO{
		ID:           t.ID().String(),
		Title:        t.Title(),
		Description:  t.Description(),
		ImageURL:     t.ImageURL(),
		Location:     newLocationDTO(t.Location()),
		StartDate:    t.Dates().Start().Format(dateLayout),
		EndDate:      t.Dates().End().Format(dateLayout),
		DurationDays: t.Dates().DurationInDays(),
		Price: PriceDTO{
			Amount:    t.Price().Amount(),
			Currency:  t.Price().Currency(),
			Formatted: t.Price().Format(),
		},
		MaxParticipants:     t.MaxParticipants(),
		CurrentParticipants: t.CurrentParticipants(),
		AvailableSpots:      t.AvailableSpots(),
		Rating:              t.Rating(),
		Tags:                t.Tags(),
		Status:              string(t.Status()),
		CancelReason:        t.CancelReason(),
		CreatedAt:           t.CreatedAt(),
		UpdatedAt:           t.UpdatedAt(),
	}
}

func newTripListEnvelope(trips []domain.Trip) TripListEnvelope {
	out := make([]TripDTO, len(trips))
	for i, t := range trips {
		out[i] = newTripDTO(t)
	}
	return TripListEnvelope{Count: len(out), Data: out}
}

// AddressDTO is the wire form of a postal address.
type AddressDTO struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
	Formatted  string `json:"formatted"`
}

// PreferencesDTO is the wire form of user preferences.
type PreferencesDTO struct {
	Notifications domain.NotificationPreferences `json:"notifications"`
	Theme         domain.ThemePreferences        `json:"theme"`
	Language      string                         `json:"language"`
	Timezone      string                         `json:"timezone"`
}

// UserDTO is the wire form of a user aggregate. Credentials never leave the
// domain layer.
type UserDTO struct {
	ID          string         `json:"id"`
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	FullName    string         `json:"full_name"`
	Role        string         `json:"role"`
	Active      bool           `json:"active"`
	Address     *AddressDTO    `json:"address,omitempty"`
	PhoneNumber string         `json:"phone_number,omitempty"`
	Preferences PreferencesDTO `json:"preferences"`
	CreatedAt   time.Time      `json:"created_at"`
}

func newUserDTO(u domain.User) UserDTO {
	prefs := u.Preferences()
	dto := UserDTO{
		ID:        u.ID().String(),
		Username:  u.Username(),
		Email:     u.Email().String(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		FullName:  u.FullName(),
		Role:      u.Role(),
		Active:    u.IsActive(),
		Preferences: PreferencesDTO{
			Notifications: prefs.Notifications(),
			Theme:         prefs.Theme(),
			Language:      prefs.Language(),
			Timezone:      prefs.Timezone(),
		},
		CreatedAt: u.CreatedAt(),
	}
	if addr := u.Address(); addr != nil {
		dto.Address = &AddressDTO{
			Street:     addr.Street(),
			City:       addr.City(),
			State:      addr.State(),
			Country:    addr.Country(),
			PostalCode: addr.PostalCode(),
			Formatted:  addr.Format(),
		}
	}
	if phone := u.Phone(); phone != nil {
		dto.PhoneNumber = phone.Format()
	}
	return dto
}
