package domain

// CreateInput is the payload for reporting an incident
type CreateInput struct {
	Type        string  `json:"type" validate:"required,oneof=theft assault harassment vandalism suspicious other" example:"theft"`
	Severity    string  `json:"severity" validate:"required,oneof=low medium high" example:"medium"`
	Lat         float64 `json:"lat" validate:"gte=-90,lte=90" example:"37.7793"`
	Lon         float64 `json:"lon" validate:"gte=-180,lte=180" example:"-122.4193"`
	Description string  `json:"description,omitempty" validate:"omitempty,max=500" example:"bike stolen outside the library"`
}

// RecentInput filters the recent incident listing
type RecentInput struct {
	Hours int `json:"hours,omitempty" validate:"omitempty,min=1,max=2160" example:"24"`
	Limit int `json:"limit,omitempty" validate:"omitempty,min=1,max=500" example:"100"`
}

// RecentOutput carries the listing plus the staleness signal the caller
// must surface when the data source could not be reached
type RecentOutput struct {
	Incidents []Incident `json:"incidents"`
	Stale     bool       `json:"stale"`
}
