package ratings

import "cafeteria-backend/internal/models"

// Stats aggregates ratings over the five scored categories. Overall is the
// mean of the five category averages, not of all raw scores.
type Stats struct {
	Total          int     `json:"total"`
	Overall        float64 `json:"overall"`
	Service        float64 `json:"service"`
	ProductQuality float64 `json:"product_quality"`
	ProductPricing float64 `json:"product_pricing"`
	Ambience       float64 `json:"ambience"`
	PrepTime       float64 `json:"prep_time"`
}

func Compute(ratings []models.Rating) Stats {
	if len(ratings) == 0 {
		return Stats{}
	}

	var service, quality, pricing, ambience, prep int
	for _, r := range ratings {
		service += r.Service
		quality += r.ProductQuality
		pricing += r.ProductPricing
		ambience += r.Ambience
		prep += r.PrepTime
	}

	n := float64(len(ratings))
	s := Stats{
		Total:          len(ratings),
		Service:        float64(service) / n,
		ProductQuality: float64(quality) / n,
		ProductPricing: float64(pricing) / n,
		Ambience:       float64(ambience) / n,
		PrepTime:       float64(prep) / n,
	}
	s.Overall = (s.Service + s.ProductQuality + s.ProductPricing + s.Ambience + s.PrepTime) / 5
	return s
}
