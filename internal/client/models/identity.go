package models

// Identity describes the signed-in user. It is re-derived on each successful
// authentication or profile refresh, never edited in place. At most one
// Identity is active at a time.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	AvatarURL   string `json:"avatarURL,omitempty"`
}
