package types

// Country is the root of the geography hierarchy.
type Country struct {
	ID   int64  `json:"id"`
	Name string `json:"name"` // required, at most 50 characters
}

// Town belongs to a Country. Teams are based in towns.
type Town struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CountryID int64  `json:"country_id"`
}
