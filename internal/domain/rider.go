package domain

// RiderRef is a (display name, profile URL) pair discovered on a ranking
// page before the profile itself has been fetched. The URL is the stable
// identity; the display name is the site's "SURNAME Firstname" form.
type RiderRef struct {
	Name string
	URL  string
}

// Rider is one time-trial specialist's profile. All numeric fields are
// required on a valid profile page; a profile missing any of them is
// dropped rather than stored partially.
type Rider struct {
	URL         string
	FirstName   string
	LastName    string
	FullName    string
	Nationality string
	BirthYear   int
	Height      float64
	Weight      float64
	OneDay      int
	GC          int
	TimeTrial   int
	Sprint      int
	Climber     int
	PhotoURL    string
}
