package sim

const (
	MinRoundKills = 4
	MaxRoundKills = 6
)

// Engine resolves rounds, maps and series from a single random stream.
// An Engine is not safe for concurrent use.
type Engine struct {
	src Source
}

func NewEngine(src Source) *Engine {
	return &Engine{src: src}
}

// WinProbability is the chance that the side with powerA takes a round. The
// cubic exponent turns small power gaps into lopsided odds.
func WinProbability(powerA, powerB float64) float64 {
	if powerA+powerB <= 0 {
		return 0.5
	}
	a3 := powerA * powerA * powerA
	b3 := powerB * powerB * powerB
	p := a3 / (a3 + b3)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// SimulateRound plays one round between a and b, crediting kills, deaths and
// assists on the two teams. It reports whether a won.
func (e *Engine) SimulateRound(a, b *Team) bool {
	p := WinProbability(a.Power(e.src), b.Power(e.src))
	aWins := e.src.Float64() < p

	winner, loser := a, b
	if !aWins {
		winner, loser = b, a
	}

	kills := MinRoundKills + e.src.IntN(MaxRoundKills-MinRoundKills+1)
	for range kills {
		winner.creditPlayer(e.src).Kills++
	}
	for range kills {
		loser.anyPlayer(e.src).Deaths++
	}

	assists := e.src.IntN(kills/2 + 1)
	for range assists {
		winner.creditPlayer(e.src).Assists++
	}

	return aWins
}
