package rating_test

import (
	"testing"

	"github.com/XavierBriggs/gridiron/internal/rating"
	"github.com/XavierBriggs/gridiron/pkg/models"
)

func TestEffectiveRating(t *testing.T) {
	tests := []struct {
		name     string
		overall  int
		injuries []models.Injury
		want     int
	}{
		{
			name:    "healthy player passes through",
			overall: 87,
			want:    87,
		},
		{
			name:    "healed injury ignored",
			overall: 87,
			injuries: []models.Injury{
				{Name: "ankle sprain", WeeksOut: 0, Impact: 0.2},
			},
			want: 87,
		},
		{
			name:    "single injury discounts",
			overall: 80,
			injuries: []models.Injury{
				{Name: "hamstring", WeeksOut: 2, Impact: 0.25},
			},
			want: 60,
		},
		{
			name:    "stacked injuries capped at 0.85",
			overall: 90,
			injuries: []models.Injury{
				{Name: "ACL", WeeksOut: 8, Impact: 0.6},
				{Name: "shoulder", WeeksOut: 3, Impact: 0.5},
			},
			want: 40, // 90*0.15=13.5, floored
		},
		{
			name:    "floor holds at 40",
			overall: 45,
			injuries: []models.Injury{
				{Name: "concussion", WeeksOut: 1, Impact: 0.5},
			},
			want: 40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &models.Player{Overall: tt.overall, Injuries: tt.injuries}
			if got := rating.EffectiveRating(p); got != tt.want {
				t.Errorf("EffectiveRating() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEffectiveRatingMonotonicInImpact(t *testing.T) {
	prev := 100
	for impact := 0.0; impact <= 1.0; impact += 0.05 {
		p := &models.Player{
			Overall:  85,
			Injuries: []models.Injury{{WeeksOut: 1, Impact: impact}},
		}
		got := rating.EffectiveRating(p)
		if got > prev {
			t.Fatalf("rating rose from %d to %d as impact grew to %.2f", prev, got, impact)
		}
		if got < 40 {
			t.Fatalf("rating %d below floor at impact %.2f", got, impact)
		}
		prev = got
	}
}

func TestCanPlay(t *testing.T) {
	healthy := &models.Player{Injuries: []models.Injury{{WeeksOut: 0, Impact: 0.3}}}
	if !rating.CanPlay(healthy) {
		t.Error("player with only healed injuries should be available")
	}

	out := &models.Player{Injuries: []models.Injury{{WeeksOut: 1, Impact: 0.1}}}
	if rating.CanPlay(out) {
		t.Error("player with remaining weeks out should be unavailable")
	}
}
