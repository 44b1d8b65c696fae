package sim

import (
	"math"
	"math/rand"

	"github.com/XavierBriggs/gridiron/pkg/models"
)

// Usage shares: non-starters at the skill positions receive a fixed fraction
// of the starter's generated line instead of independent rolls, which keeps
// team totals coherent.
var usageShares = map[models.Position][]float64{
	models.RB: {1.0, 0.45},
	models.WR: {1.0, 0.65, 0.35},
	models.TE: {1.0, 0.40},
}

// generateTeamStats fills stats.game for one side of a game. Each position
// group uses a closed-form formula over team score, the opposing defensive
// (or offensive, for defenders) strength, and the player's sub-ratings.
func generateTeamStats(rng *rand.Rand, chart depthChart, plan models.GamePlan, teamScore int, oppDefense, oppOffense float64) {
	if qbs := chart[models.QB]; len(qbs) > 0 {
		generateQBStats(rng, qbs[0], plan, teamScore, oppDefense)
	}
	generateSharedGroup(rng, chart[models.RB], models.RB, plan, teamScore, oppDefense)
	generateSharedGroup(rng, chart[models.WR], models.WR, plan, teamScore, oppDefense)
	generateSharedGroup(rng, chart[models.TE], models.TE, plan, teamScore, oppDefense)

	for _, pos := range models.DefensivePositions {
		for _, p := range chart[pos] {
			generateDefenderStats(rng, p, oppOffense)
		}
	}

	if ks := chart[models.K]; len(ks) > 0 {
		generateKickerStats(rng, ks[0], teamScore)
	}
	if ps := chart[models.P]; len(ps) > 0 {
		generatePunterStats(rng, ps[0], teamScore)
	}
}

func generateQBStats(rng *rand.Rand, qb *models.Player, plan models.GamePlan, teamScore int, defense float64) {
	attempts := 28 + (teamScore-21)/2 + randBetween(rng, -4, 4)
	switch plan.Offense {
	case "air_raid":
		attempts += 6
	case "ground_and_pound":
		attempts -= 6
	}
	attempts = clampInt(attempts, 18, 48)

	compPct := 55.0 +
		float64(qb.Rating("throwAccuracy")-75)/2 +
		float64(qb.Rating("awareness")-75)/4 -
		(defense-75)/3 +
		randFloat(rng, -5, 5)
	compPct = clampFloat(compPct, 45, 85)

	completions := int(math.Round(float64(attempts) * compPct / 100))
	yardsPerCompletion := clampFloat(9.5+float64(qb.Rating("throwPower")-75)/20-(defense-75)/25, 6, 13)
	yards := int(math.Round(float64(completions) * yardsPerCompletion))

	tds := clampInt(teamScore/9+randBetween(rng, -1, 1), 0, 7)

	intBase := 1.2 - float64(qb.Rating("awareness")-75)/50 + (defense-75)/60
	switch plan.Risk {
	case "aggressive":
		intBase += 0.5
	case "conservative":
		intBase -= 0.4
	}
	ints := clampInt(int(math.Round(intBase+randFloat(rng, -0.8, 0.8))), 0, 4)

	qb.Stats.Game = models.StatLine{
		"passAtt": attempts,
		"passCmp": completions,
		"passYds": yards,
		"passTD":  tds,
		"passInt": ints,
	}

	// QBs scramble for a handful of yards
	if scramble := randBetween(rng, -2, 18); scramble > 0 {
		qb.Stats.Game["rushYds"] = scramble
		qb.Stats.Game["rushAtt"] = clampInt(scramble/5+1, 1, 6)
	}
}

// generateSharedGroup rolls the starter's line and hands each backup its
// fixed usage-share fraction of it
func generateSharedGroup(rng *rand.Rand, group []*models.Player, pos models.Position, plan models.GamePlan, teamScore int, defense float64) {
	if len(group) == 0 {
		return
	}

	var starterLine models.StatLine
	switch pos {
	case models.RB:
		starterLine = rollRBLine(rng, group[0], plan, teamScore, defense)
	case models.WR:
		starterLine = rollReceiverLine(rng, group[0], teamScore, defense, false)
	case models.TE:
		starterLine = rollReceiverLine(rng, group[0], teamScore, defense, true)
	}
	group[0].Stats.Game = starterLine

	shares := usageShares[pos]
	for i := 1; i < len(group); i++ {
		if i >= len(shares) {
			break
		}
		group[i].Stats.Game = scaleLine(starterLine, shares[i])
	}
}

func rollRBLine(rng *rand.Rand, rb *models.Player, plan models.GamePlan, teamScore int, defense float64) models.StatLine {
	carries := 16 + randBetween(rng, -3, 4)
	switch plan.Offense {
	case "ground_and_pound":
		carries += 6
	case "air_raid":
		carries -= 4
	}
	carries = clampInt(carries, 8, 32)

	perCarry := clampFloat(4.2+
		float64(rb.Rating("speed")-75)/30+
		float64(rb.Rating("elusiveness")-75)/40-
		(defense-75)/25, 2.0, 6.8)
	rushYds := int(math.Round(float64(carries) * perCarry))
	rushTD := clampInt(teamScore/14+randBetween(rng, 0, 1), 0, 4)

	line := models.StatLine{
		"rushAtt": carries,
		"rushYds": rushYds,
		"rushTD":  rushTD,
	}

	if rec := clampInt(2+(rb.Rating("catching")-70)/15+randBetween(rng, 0, 2), 0, 7); rec > 0 {
		line["rec"] = rec
		line["recYds"] = int(math.Round(float64(rec) * clampFloat(7+float64(rb.Rating("speed")-75)/20, 4, 11)))
	}
	return line
}

func rollReceiverLine(rng *rand.Rand, wr *models.Player, teamScore int, defense float64, tightEnd bool) models.StatLine {
	targets := 8 + (wr.Rating("routeRunning")-75)/10 + randBetween(rng, -2, 3)
	if tightEnd {
		targets -= 2
	}
	targets = clampInt(targets, 3, 15)

	catchPct := clampFloat(55+
		float64(wr.Rating("catching")-75)/2-
		(defense-75)/4, 40, 80)
	receptions := clampInt(int(math.Round(float64(targets)*catchPct/100)), 1, targets)

	perCatch := clampFloat(12+float64(wr.Rating("speed")-75)/12, 8, 19)
	if tightEnd {
		perCatch = clampFloat(perCatch-2.5, 7, 14)
	}
	recYds := int(math.Round(float64(receptions) * perCatch))
	recTD := clampInt(teamScore/17+randBetween(rng, 0, 1), 0, 3)

	return models.StatLine{
		"targets": targets,
		"rec":     receptions,
		"recYds":  recYds,
		"recTD":   recTD,
	}
}

// generateDefenderStats rolls an independent line for every dressed defender,
// driven by the opposing offense's strength
func generateDefenderStats(rng *rand.Rand, p *models.Player, oppOffense float64) {
	// stronger opposing offenses run more plays, which means more tackles
	pressure := (oppOffense - 75) / 15

	line := models.StatLine{}
	switch p.Position {
	case models.DL:
		line["tackles"] = clampInt(3+(p.Rating("tackling")-75)/10+int(pressure)+randBetween(rng, -1, 2), 0, 9)
		line["sacks"] = clampInt(int(math.Round(float64(p.Rating("passRush")-70)/10+randFloat(rng, -0.8, 1.2))), 0, 3)
	case models.LB:
		line["tackles"] = clampInt(6+(p.Rating("tackling")-75)/8+int(pressure)+randBetween(rng, -2, 3), 1, 14)
		line["sacks"] = clampInt(int(math.Round(float64(p.Rating("passRush")-75)/12+randFloat(rng, -0.9, 0.9))), 0, 2)
		if rng.Float64() < float64(p.Rating("coverage")-70)/400 {
			line["defInt"] = 1
		}
	case models.CB, models.S:
		line["tackles"] = clampInt(3+(p.Rating("tackling")-75)/12+randBetween(rng, -1, 3), 0, 9)
		line["passDef"] = clampInt((p.Rating("coverage")-70)/8+randBetween(rng, 0, 2), 0, 5)
		if rng.Float64() < float64(p.Rating("coverage")-65)/300 {
			line["defInt"] = 1
		}
	}
	p.Stats.Game = line
}

// generateKickerStats derives the kicking line from the team score and the
// kicker's power/accuracy pair
func generateKickerStats(rng *rand.Rand, k *models.Player, teamScore int) {
	fgAtt := clampInt(teamScore/12+randBetween(rng, 0, 2), 0, 6)
	fgPct := clampFloat(70+float64(k.Rating("kickAccuracy")-75)/2, 55, 98)
	fgMade := 0
	for i := 0; i < fgAtt; i++ {
		if rng.Float64()*100 < fgPct {
			fgMade++
		}
	}

	xpAtt := clampInt(teamScore/8, 0, 8)
	xpMade := xpAtt
	if xpAtt > 0 && k.Rating("kickAccuracy") < 70 && rng.Float64() < 0.15 {
		xpMade--
	}

	longBase := 45 + (k.Rating("kickPower")-75)/3
	k.Stats.Game = models.StatLine{
		"fgAtt":  fgAtt,
		"fgMade": fgMade,
		"xpAtt":  xpAtt,
		"xpMade": xpMade,
	}
	if fgMade > 0 {
		k.Stats.Game["fgLong"] = clampInt(longBase+randBetween(rng, -8, 8), 20, 62)
	}
}

func generatePunterStats(rng *rand.Rand, p *models.Player, teamScore int) {
	// high-scoring offenses punt less
	punts := clampInt(6-teamScore/12+randBetween(rng, 0, 2), 1, 9)
	avg := clampFloat(42+float64(p.Rating("kickPower")-75)/5, 36, 52)
	p.Stats.Game = models.StatLine{
		"punts":   punts,
		"puntYds": int(math.Round(float64(punts) * avg)),
	}
}

func scaleLine(line models.StatLine, share float64) models.StatLine {
	out := make(models.StatLine, len(line))
	for k, v := range line {
		if scaled := int(math.Round(float64(v) * share)); scaled > 0 {
			out[k] = scaled
		}
	}
	return out
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func randFloat(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}
