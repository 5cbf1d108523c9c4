package model

import "time"

// Settings rows are singletons: a fixed primary key of 1, updated in place.

// EventSettings holds the headline event configuration. Start time feeds
// ticket and certificate display.
type EventSettings struct {
	ID           uint      `json:"-" gorm:"primaryKey"`
	EventName    string    `json:"event_name" gorm:"size:255;not null"`
	Tagline      string    `json:"tagline,omitempty" gorm:"size:500"`
	StartsAt     time.Time `json:"starts_at"`
	Venue        string    `json:"venue" gorm:"size:500"`
	HeroImageURL string    `json:"hero_image_url,omitempty" gorm:"size:512"`
	ContactPhone string    `json:"contact_phone,omitempty" gorm:"size:20"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LocationSettings holds route and venue map configuration.
type LocationSettings struct {
	ID               uint      `json:"-" gorm:"primaryKey"`
	RouteName        string    `json:"route_name" gorm:"size:255"`
	RouteDescription string    `json:"route_description" gorm:"size:2000"`
	RouteMapURL      string    `json:"route_map_url,omitempty" gorm:"size:512"`
	StartPoint       string    `json:"start_point" gorm:"size:500"`
	EndPoint         string    `json:"end_point" gorm:"size:500"`
	DistanceKM       int       `json:"distance_km"`
	UpdatedAt        time.Time `json:"updated_at"`
}
