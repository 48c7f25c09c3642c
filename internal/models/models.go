package models

// Coord is a lat/lon pair. The engine treats coordinates as a flat plane;
// the distance helpers in internal/geo do the rest.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Role distinguishes the two kinds of user records the engine tracks.
type Role string

const (
	RoleRider  Role = "rider"
	RoleDriver Role = "driver"
)

// User is the shared identity record. Driver-specific state lives on Driver,
// which embeds a User rather than subclassing one.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  Role   `json:"role"`
}

// Rider is a user who requests rides. Identity only.
type Rider struct {
	User
}

func NewRider(id, name, phone string) *Rider {
	return &Rider{User: User{ID: id, Name: name, Phone: phone, Role: RoleRider}}
}
