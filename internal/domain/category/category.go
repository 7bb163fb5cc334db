package category

import "fmt"

// Category is one of the fixed DMV knowledge areas.
// The domain is closed: every attempt, question, and breakdown entry
// carries one of the values below. Parse rejects anything else so a
// typo can never create a phantom category.
type Category string

const (
	TrafficSigns Category = "traffic_signs"
	TrafficLaws  Category = "traffic_laws"
	SafeDriving  Category = "safe_driving"
	RightOfWay   Category = "right_of_way"
	AlcoholDrugs Category = "alcohol_drugs"
	Parking      Category = "parking"
)

// All returns the category domain in its canonical order.
// Breakdowns and exports iterate this order so output is stable.
func All() []Category {
	return []Category{
		TrafficSigns,
		TrafficLaws,
		SafeDriving,
		RightOfWay,
		AlcoholDrugs,
		Parking,
	}
}

// Parse validates a raw string against the category domain.
func Parse(s string) (Category, error) {
	c := Category(s)
	switch c {
	case TrafficSigns, TrafficLaws, SafeDriving, RightOfWay, AlcoholDrugs, Parking:
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// DisplayName returns the human-readable name used by the mobile client.
func (c Category) DisplayName() string {
	switch c {
	case TrafficSigns:
		return "Traffic Signs"
	case TrafficLaws:
		return "Traffic Laws"
	case SafeDriving:
		return "Safe Driving"
	case RightOfWay:
		return "Right of Way"
	case AlcoholDrugs:
		return "Alcohol & Drugs"
	case Parking:
		return "Parking"
	}
	return string(c)
}
