package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a favourite flight does not exist or belongs
// to another user.
var ErrNotFound = errors.New("favorite flight not found")

// FlightDetail describes one leg of a saved itinerary
type FlightDetail struct {
	Airline                string `json:"airline" bson:"airline" validate:"required"`
	SourceAirportCode      string `json:"sourceAirportCode" bson:"source_airport_code" validate:"required"`
	DestinationAirportCode string `json:"destinationAirportCode" bson:"destination_airport_code" validate:"required"`
	DepartureDate          string `json:"departureDate" bson:"departure_date" validate:"required"`
	ClassOfService         string `json:"classOfService" bson:"class_of_service" validate:"required"`
	FlightNumber           string `json:"flightNumber" bson:"flight_number" validate:"required"`
	BookingReference       string `json:"bookingReference,omitempty" bson:"booking_reference,omitempty"`
}

// FavoriteFlight is an outbound leg, an optional return leg and the quoted
// total price, saved by a user
type FavoriteFlight struct {
	ID           string        `json:"id"`
	UserID       string        `json:"user_id"`
	Outbound     FlightDetail  `json:"outbound"`
	ReturnFlight *FlightDetail `json:"returnFlight,omitempty"`
	TotalPrice   float64       `json:"total_price"`
	CreatedAt    time.Time     `json:"created_at"`
}
