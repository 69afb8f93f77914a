package ratings

import (
	"math"
	"testing"

	"cafeteria-backend/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil)
	if s.Total != 0 || s.Overall != 0 {
		t.Fatalf("empty stats = %+v, want all zeros", s)
	}
}

func TestComputeAverages(t *testing.T) {
	ratings := []models.Rating{
		{Service: 5, ProductQuality: 4, ProductPricing: 3, Ambience: 5, PrepTime: 4},
		{Service: 3, ProductQuality: 4, ProductPricing: 5, Ambience: 3, PrepTime: 2},
	}

	s := Compute(ratings)

	if s.Total != 2 {
		t.Errorf("total = %d, want 2", s.Total)
	}
	if !almostEqual(s.Service, 4.0) {
		t.Errorf("service = %f, want 4.0", s.Service)
	}
	if !almostEqual(s.ProductQuality, 4.0) {
		t.Errorf("product quality = %f, want 4.0", s.ProductQuality)
	}
	if !almostEqual(s.ProductPricing, 4.0) {
		t.Errorf("product pricing = %f, want 4.0", s.ProductPricing)
	}
	if !almostEqual(s.Ambience, 4.0) {
		t.Errorf("ambience = %f, want 4.0", s.Ambience)
	}
	if !almostEqual(s.PrepTime, 3.0) {
		t.Errorf("prep time = %f, want 3.0", s.PrepTime)
	}
	if !almostEqual(s.Overall, (4.0+4.0+4.0+4.0+3.0)/5) {
		t.Errorf("overall = %f, want mean of the five category averages", s.Overall)
	}
}

func TestComputeSingleRating(t *testing.T) {
	s := Compute([]models.Rating{{Service: 2, ProductQuality: 2, ProductPricing: 2, Ambience: 2, PrepTime: 2}})
	if !almostEqual(s.Overall, 2.0) {
		t.Errorf("overall = %f, want 2.0", s.Overall)
	}
}
