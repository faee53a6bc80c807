package domain

import "time"

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Gender       string    `json:"gender" db:"gender"`
	DateOfBirth  time.Time `json:"date_of_birth" db:"date_of_birth"`
	KnownAs      *string   `json:"known_as" db:"known_as"`
	Introduction *string   `json:"introduction" db:"introduction"`
	LookingFor   *string   `json:"looking_for" db:"looking_for"`
	Interests    *string   `json:"interests" db:"interests"`
	City         *string   `json:"city" db:"city"`
	Country      *string   `json:"country" db:"country"`
	Created      time.Time `json:"created" db:"created"`
	LastActive   time.Time `json:"last_active" db:"last_active"`
	Photos       []Photo   `json:"photos" db:"-"`
}

// Age computes full years elapsed since the user's date of birth.
func (u *User) Age() int {
	return ageAt(u.DateOfBirth, time.Now())
}

func ageAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if dob.AddDate(age, 0, 0).After(now) {
		age--
	}
	return age
}

// MainPhoto returns the photo currently flagged as main, or nil.
func (u *User) MainPhoto() *Photo {
	for i := range u.Photos {
		if u.Photos[i].IsMain {
			return &u.Photos[i]
		}
	}
	return nil
}

// PhotoByID returns the photo with the given id, or nil.
func (u *User) PhotoByID(photoID int) *Photo {
	for i := range u.Photos {
		if u.Photos[i].ID == photoID {
			return &u.Photos[i]
		}
	}
	return nil
}
