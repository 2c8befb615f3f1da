package patient

import "time"

// Patient is a person receiving care at the clinic.
type Patient struct {
	ID        int64      `json:"id"`
	LastName  string     `json:"last_name"`
	FirstName string     `json:"first_name"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Gender    *string    `json:"gender,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	Email     *string    `json:"email,omitempty"`
	Address   *string    `json:"address,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Filter narrows patient listings. Term is a case-insensitive substring
// matched against last name, first name, email and phone.
type Filter struct {
	Term string
}
