package parksdk

// ============================================================================
// Cached Record Types
// ============================================================================

// Credential is the bearer token pair presented on protected calls as
// "Authorization: {TokenType} {Token}". The zero value means no session is
// active; absence of a stored token is the sole signal the client is
// anonymous. No expiry is tracked client-side - expiry is detected
// reactively when the backend answers 401.
type Credential struct {
	Token     string `json:"access_token"`
	TokenType string `json:"token_type"`
}

// IsZero reports whether no credential is present.
func (c Credential) IsZero() bool { return c.Token == "" }

// Profile is the locally cached representation of a user's account
// attributes, keyed by normalized (lower-cased) email. Entries deliberately
// survive logout so a returning user gets an instant first render.
type Profile struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phoneNumber"`
	CarPlateIDs []string `json:"carPlateIds"`

	// NeedsSync marks a local edit that has not been confirmed by the
	// backend yet. The pending-change sync pass pushes flagged entries and
	// clears the flag on success.
	NeedsSync bool `json:"needsSync,omitempty"`
}

// ============================================================================
// Wire Types
// ============================================================================

// detailResponse is the backend's uniform failure payload.
type detailResponse struct {
	Detail string `json:"detail"`
}

// User is the backend's account record as it appears in login responses.
type User struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	CarPlateIDs []string `json:"car_plate_ids"`
	Role        string   `json:"role,omitempty"`
}

// RegisterRequest is the POST /register/ payload.
type RegisterRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	CarPlateIDs []string `json:"car_plate_ids"`
	Role        string   `json:"role"`
	Password    string   `json:"password"`
}

// RegisterResponse is the POST /register/ success payload: a message plus
// the created user's fields inlined.
type RegisterResponse struct {
	Message string `json:"message"`
	User
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the POST /login/ success payload.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}

// UpdateProfileRequest is the PUT /profile/update/ payload.
type UpdateProfileRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	CarPlateIDs []string `json:"car_plate_ids"`
}

// UpdateProfileResponse echoes the updated fields. CarPlateIDs is the
// backend's authoritative plate list after the update.
type UpdateProfileResponse struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	CarPlateIDs []string `json:"car_plate_ids"`
}

// platesResponse is the GET /car-plates/{email} payload.
type platesResponse struct {
	CarPlateIDs []string `json:"car_plate_ids"`
}

// addPlateRequest is the POST /car-plates/{email} payload.
type addPlateRequest struct {
	NewPlate string `json:"new_plate"`
}

// Reservation is a parking reservation. Reservations are owned entirely by
// the backend and never cached locally; every list view re-fetches.
type Reservation struct {
	ReservationID string `json:"reservation_id,omitempty"`
	Email         string `json:"email,omitempty"`
	CarPlate      string `json:"car_plate"`
	ParkingSpotID string `json:"parking_spot_id,omitempty"`

	// Date is the reservation day in YYYY-MM-DD form.
	Date string `json:"date"`

	// HourRange is the [start, end] pair in HH:MM form.
	HourRange [2]string `json:"hour_range"`
}
