package domain

import "time"

// MemberView is a read-only projection of a user for directory display.
type MemberView struct {
	Username     string    `json:"username" db:"username"`
	KnownAs      *string   `json:"known_as" db:"known_as"`
	Age          int       `json:"age" db:"age"`
	Gender       string    `json:"gender" db:"gender"`
	Introduction *string   `json:"introduction" db:"introduction"`
	LookingFor   *string   `json:"looking_for" db:"looking_for"`
	Interests    *string   `json:"interests" db:"interests"`
	City         *string   `json:"city" db:"city"`
	Country      *string   `json:"country" db:"country"`
	Created      time.Time `json:"created" db:"created"`
	LastActive   time.Time `json:"last_active" db:"last_active"`
	PhotoURL     *string   `json:"photo_url" db:"photo_url"`
	Photos       []Photo   `json:"photos,omitempty" db:"-"`
}

const (
	OrderByCreated    = "created"
	OrderByLastActive = "last_active"
)

// UserParams describes one directory query: filters, ordering and paging.
type UserParams struct {
	CurrentUsername string
	Gender          string
	MinAge          int
	MaxAge          int
	OrderBy         string
	Page            int
	PageSize        int
}

// NewUserParams returns query params with the directory defaults applied.
func NewUserParams() UserParams {
	return UserParams{
		MinAge:   18,
		MaxAge:   100,
		OrderBy:  OrderByLastActive,
		Page:     1,
		PageSize: 10,
	}
}
