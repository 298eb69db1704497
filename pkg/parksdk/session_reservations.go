package parksdk

import (
	"context"
	"net/http"
	"net/url"
)

// Reservation operations are stateless pass-throughs: nothing is cached
// locally and every list view re-fetches from the backend.

// CreateReservation books a parking spot via POST /reservations/. Requires a
// live credential.
func (s *Session) CreateReservation(ctx context.Context, r Reservation) (*Reservation, error) {
	if r.CarPlate == "" || r.Date == "" {
		return nil, newValidationError("car plate and date are required")
	}
	if r.Email == "" {
		r.Email = s.email
	}

	resp, err := s.client.doAuthRequest(ctx, http.MethodPost, "/reservations/", r)
	if err != nil {
		return nil, err
	}

	var created Reservation
	if err := decodeJSON(resp, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

// ListReservations returns the user's reservations via
// GET /reservations/?email=. Requires a live credential.
func (s *Session) ListReservations(ctx context.Context, email string) ([]Reservation, error) {
	resp, err := s.client.doAuthRequest(
		ctx,
		http.MethodGet,
		"/reservations/?email="+url.QueryEscape(email),
		nil,
	)
	if err != nil {
		return nil, err
	}

	var reservations []Reservation
	if err := decodeJSON(resp, &reservations); err != nil {
		return nil, err
	}

	return reservations, nil
}

// DeleteReservation cancels a reservation via DELETE /reservations/{id}.
// The backend confirms with an empty 204; anything else is parsed as a
// detail-bearing rejection. Requires a live credential.
func (s *Session) DeleteReservation(ctx context.Context, reservationID string) error {
	if reservationID == "" {
		return newValidationError("reservation id is required")
	}

	resp, err := s.client.doAuthRequest(
		ctx,
		http.MethodDelete,
		"/reservations/"+url.PathEscape(reservationID),
		nil,
	)
	if err != nil {
		return err
	}

	return checkStatus2xx(resp)
}
