package domain

// NearInput bounds a proximity lookup
type NearInput struct {
	Lat    float64 `json:"lat" validate:"gte=-90,lte=90" example:"37.7749"`
	Lon    float64 `json:"lon" validate:"gte=-180,lte=180" example:"-122.4194"`
	Radius float64 `json:"radius_m" validate:"omitempty,gt=0,lte=5000" example:"500"`
	Kind   string  `json:"kind" validate:"omitempty,oneof=police hospital" example:"police"`
}

// NearOutput lists resources within the radius, nearest first
type NearOutput struct {
	Resources []Near `json:"resources"`
	Stale     bool   `json:"stale,omitempty"`
}
