package registry

import "github.com/krisgarg25/safar/internal/bus"

// Seed returns the demonstration fleet the registry starts with. Three
// buses run Connaught Place to Dwarka on route 42; one runs India Gate to
// Gurgaon on route 25.
func Seed() []bus.BusRecord {
	return []bus.BusRecord{
		{
			ID:              "1",
			RouteName:       "Bus 42",
			BusNumber:       "PB2613",
			Occupancy:       25,
			StartLocation:   "Connaught Place",
			EndLocation:     "Dwarka",
			CurrentStop:     "Rajiv Chowk Stop",
			StartTime:       "16:30",
			EndTime:         "17:30",
			BusType:         bus.TypeExpress,
			Fare:            55,
			ETA:             0,
			Status:          bus.StatusArrivingShortly,
			Latitude:        30.7904,
			Longitude:       76.4985,
			SMSNotification: true,
		},
		{
			ID:              "2",
			RouteName:       "Bus 42",
			BusNumber:       "PB2614",
			Occupancy:       30,
			StartLocation:   "Connaught Place",
			EndLocation:     "Dwarka",
			CurrentStop:     "Rajiv Chowk Stop",
			StartTime:       "17:00",
			EndTime:         "18:00",
			BusType:         bus.TypeExpress,
			Fare:            55,
			ETA:             5,
			Status:          bus.StatusOnTime,
			Latitude:        30.7904,
			Longitude:       76.4985,
			SMSNotification: false,
		},
		{
			ID:              "3",
			RouteName:       "Bus 42",
			BusNumber:       "PB2615",
			Occupancy:       35,
			StartLocation:   "Connaught Place",
			EndLocation:     "Dwarka",
			CurrentStop:     "Rajiv Chowk Stop",
			StartTime:       "17:30",
			EndTime:         "18:30",
			BusType:         bus.TypeExpress,
			Fare:            55,
			ETA:             0,
			Status:          bus.StatusAtStop,
			Latitude:        30.7904,
			Longitude:       76.4985,
			SMSNotification: true,
		},
		{
			ID:              "4",
			RouteName:       "Bus 25",
			BusNumber:       "DL8C2341",
			Occupancy:       45,
			StartLocation:   "India Gate",
			EndLocation:     "Gurgaon",
			CurrentStop:     "ITO Metro Station",
			StartTime:       "18:00",
			EndTime:         "19:15",
			BusType:         bus.TypeAC,
			Fare:            75,
			ETA:             8,
			Status:          bus.StatusOnTime,
			Latitude:        28.6282,
			Longitude:       77.2420,
			SMSNotification: true,
		},
	}
}
