package development

import "github.com/XavierBriggs/gridiron/pkg/models"

// AgeCurve parameterizes a position's growth/decline arc
type AgeCurve struct {
	PeakStart  int
	PeakEnd    int
	CliffAge   int
	GrowthRate float64
}

var ageCurves = map[models.Position]AgeCurve{
	models.QB: {PeakStart: 26, PeakEnd: 33, CliffAge: 36, GrowthRate: 1.15},
	models.RB: {PeakStart: 23, PeakEnd: 27, CliffAge: 29, GrowthRate: 1.25},
	models.WR: {PeakStart: 24, PeakEnd: 29, CliffAge: 31, GrowthRate: 1.20},
	models.TE: {PeakStart: 25, PeakEnd: 29, CliffAge: 32, GrowthRate: 1.15},
	models.OL: {PeakStart: 26, PeakEnd: 31, CliffAge: 34, GrowthRate: 1.10},
	models.DL: {PeakStart: 25, PeakEnd: 30, CliffAge: 33, GrowthRate: 1.15},
	models.LB: {PeakStart: 24, PeakEnd: 29, CliffAge: 32, GrowthRate: 1.20},
	models.CB: {PeakStart: 24, PeakEnd: 28, CliffAge: 31, GrowthRate: 1.25},
	models.S:  {PeakStart: 25, PeakEnd: 29, CliffAge: 32, GrowthRate: 1.20},
	models.K:  {PeakStart: 27, PeakEnd: 35, CliffAge: 39, GrowthRate: 1.05},
	models.P:  {PeakStart: 27, PeakEnd: 35, CliffAge: 39, GrowthRate: 1.05},
}

var fallbackCurve = AgeCurve{PeakStart: 25, PeakEnd: 30, CliffAge: 33, GrowthRate: 1.15}

// CurveFor returns the age curve for a position
func CurveFor(pos models.Position) AgeCurve {
	if c, ok := ageCurves[pos]; ok {
		return c
	}
	return fallbackCurve
}

// AgeFactor is the age multiplier on weekly experience.
// Four regimes: flat growth before 22, approach-to-peak, in-peak 1.0,
// linear decline to 0.5 at the cliff, then a steep falloff floored at 0.1.
func AgeFactor(pos models.Position, age int) float64 {
	c := CurveFor(pos)
	switch {
	case age < 22:
		return c.GrowthRate
	case age < c.PeakStart:
		// partial growth: interpolate from GrowthRate down to 1.0 at peak start
		span := float64(c.PeakStart - 22)
		progress := float64(age-22) / span
		return c.GrowthRate + (1.0-c.GrowthRate)*progress
	case age <= c.PeakEnd:
		return 1.0
	case age <= c.CliffAge:
		span := float64(c.CliffAge - c.PeakEnd)
		return 1.0 - 0.5*float64(age-c.PeakEnd)/span
	default:
		f := 0.5 - 0.15*float64(age-c.CliffAge)
		if f < 0.1 {
			f = 0.1
		}
		return f
	}
}

// physicalRatings are the sub-attributes age regression erodes first
var physicalRatings = []string{"speed", "strength", "agility", "elusiveness", "throwPower", "passRush", "kickPower"}

// mentalRatings only erode past the cliff age
var mentalRatings = []string{"awareness", "intelligence"}

// breakoutTargets are the sub-ratings a development event boosts, per position
var breakoutTargets = map[models.Position][]string{
	models.QB: {"throwPower", "throwAccuracy", "awareness"},
	models.RB: {"speed", "elusiveness", "strength"},
	models.WR: {"catching", "routeRunning", "speed"},
	models.TE: {"catching", "routeRunning", "blocking"},
	models.OL: {"blocking", "strength"},
	models.DL: {"passRush", "strength", "tackling"},
	models.LB: {"tackling", "awareness", "speed"},
	models.CB: {"coverage", "speed", "awareness"},
	models.S:  {"coverage", "tackling", "awareness"},
	models.K:  {"kickPower", "kickAccuracy"},
	models.P:  {"kickPower", "kickAccuracy"},
}
