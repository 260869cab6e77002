package types

// Color is a kit color. Every team references two of them.
type Color struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Team is a football club. Both kit colors are protected: a Color in use by
// any team cannot be deleted.
type Team struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	LogoURL             string `json:"logo_url"` // ASCII only
	Initials            string `json:"initials"` // at most 3 characters
	PrimaryKitColorID   int64  `json:"primary_kit_color_id"`
	SecondaryKitColorID int64  `json:"secondary_kit_color_id"`
	TownID              int64  `json:"town_id"`
}
