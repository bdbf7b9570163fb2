package domain

// EnforceRequest asks whether Role may perform Action on Resource. Subject is
// the user id and only appears in logs; policies are written per role.
type EnforceRequest struct {
	Subject  string
	Role     string
	Resource string
	Action   string
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
