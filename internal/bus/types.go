package bus

// Status describes where a bus is relative to the rider's stop.
type Status string

const (
	StatusArrivingShortly Status = "arriving_shortly"
	StatusOnTime          Status = "on_time"
	StatusAtStop          Status = "at_stop"
)

// Known bus types, in display precedence order.
const (
	TypeExpress = "Express"
	TypeAC      = "AC"
	TypeNonAC   = "Non-AC"
	TypeLocal   = "Local"
)

var typePrecedence = map[string]int{
	TypeExpress: 1,
	TypeAC:      2,
	TypeNonAC:   3,
	TypeLocal:   4,
}

// TypePrecedence returns the sort rank for a bus type. Types outside the
// known set rank after all known types.
func TypePrecedence(busType string) int {
	if p, ok := typePrecedence[busType]; ok {
		return p
	}
	return len(typePrecedence) + 1
}

// BusRecord is one scheduled or simulated bus trip. ID is the primary key
// within a registry; BusNumber is the human-facing identifier used for
// tracking lookups.
type BusRecord struct {
	ID              string  `json:"id" validate:"required"`
	RouteName       string  `json:"routeName"`
	BusNumber       string  `json:"busNumber" validate:"required"`
	Occupancy       int     `json:"occupancy" validate:"gte=0,lte=100"`
	StartLocation   string  `json:"startLocation" validate:"required"`
	EndLocation     string  `json:"endLocation" validate:"required"`
	CurrentStop     string  `json:"currentStop"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	BusType         string  `json:"busType"`
	Fare            float64 `json:"fare" validate:"gte=0"`
	ETA             int     `json:"eta" validate:"gte=0"`
	Status          Status  `json:"status" validate:"oneof=arriving_shortly on_time at_stop"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	SMSNotification bool    `json:"smsNotification"`
}
