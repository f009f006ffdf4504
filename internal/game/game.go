// Package game runs a match between two players: rounds of turns, where each
// turn stops a live counter once per target, and round results that turn
// score differences into vitality damage and penalties.
package game

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/agusespa/tickduel/internal/player"
	"github.com/agusespa/tickduel/internal/scoring"
	"github.com/agusespa/tickduel/internal/ui"
	"github.com/agusespa/tickduel/pkg/config"
	"github.com/agusespa/tickduel/pkg/counter"
	"github.com/agusespa/tickduel/pkg/observer"
)

// PenaltyAmount is subtracted from the attribute the round winner picks.
const PenaltyAmount = 5

var penaltyOptions = []string{"-5 speed", "-5 strength"}

// Counter is the part of the counter engine a turn needs.
type Counter interface {
	Start(interval time.Duration) error
	Stop() (value, miss uint32)
	Snapshot() counter.Snapshot
	Wait()
}

type Option func(*Game)

// WithRand sets the source used to draw targets.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) {
		g.rng = r
	}
}

// WithCounterFactory replaces the counter created for every target.
func WithCounterFactory(f func() Counter) Option {
	return func(g *Game) {
		g.newCounter = f
	}
}

// WithRenderer draws the live counter with r instead of the console's own
// renderer.
func WithRenderer(r observer.Renderer) Option {
	return func(g *Game) {
		g.renderer = r
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(g *Game) {
		g.log = log
	}
}

type Game struct {
	id          ulid.ULID
	players     [2]*player.Player
	targetCount int
	refresh     time.Duration

	console    *ui.Console
	rng        *rand.Rand
	newCounter func() Counter
	renderer   observer.Renderer
	log        zerolog.Logger

	over      bool
	winnerIdx int
}

// New prepares a match from cfg. Both players start with the same attributes.
func New(cfg *config.Config, console *ui.Console, opts ...Option) *Game {
	g := &Game{
		id: newID(),
		players: [2]*player.Player{
			player.New(cfg.Player1, cfg.Vitality, cfg.Speed, cfg.Strength),
			player.New(cfg.Player2, cfg.Vitality, cfg.Speed, cfg.Strength),
		},
		targetCount: cfg.Objectives,
		refresh:     time.Duration(cfg.RefreshMS) * time.Millisecond,
		console:     console,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		log:         zerolog.Nop(),
		winnerIdx:   -1,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.With().Str("match", g.id.String()).Logger()
	if g.newCounter == nil {
		log := g.log
		g.newCounter = func() Counter {
			return counter.New(counter.WithLogger(log))
		}
	}
	return g
}

func (g *Game) ID() string {
	return g.id.String()
}

func (g *Game) Players() [2]*player.Player {
	return g.players
}

// Over reports whether the match has ended.
func (g *Game) Over() bool {
	return g.over || !g.players[0].Alive() || !g.players[1].Alive()
}

// Winner returns the player who won, or nil while the match is still going.
func (g *Game) Winner() *player.Player {
	if g.winnerIdx >= 0 {
		return g.players[g.winnerIdx]
	}
	switch {
	case !g.players[0].Alive():
		return g.players[1]
	case !g.players[1].Alive():
		return g.players[0]
	}
	return nil
}

// Run plays rounds until the match is over and then asks whether to start a
// new one.
func (g *Game) Run() (bool, error) {
	g.log.Info().
		Str("player1", g.players[0].Name).
		Str("player2", g.players[1].Name).
		Int("objectives", g.targetCount).
		Msg("match started")

	g.console.Heading("Game Start", 1)

	for round := 1; !g.Over(); round++ {
		g.console.Heading(fmt.Sprintf("Round %d", round), 2)

		p1Score, err := g.PlayTurn(0)
		if err != nil {
			return false, err
		}
		p2Score, err := g.PlayTurn(1)
		if err != nil {
			return false, err
		}

		if err := g.ProcessRoundResult(p1Score, p2Score); err != nil {
			return false, err
		}

		g.log.Debug().Int("round", round).Uint32("score1", p1Score).Uint32("score2", p2Score).Msg("round finished")
		g.console.Heading(fmt.Sprintf("END of Round %d", round), 2)
	}

	g.console.Heading("Game Over", 1)

	winner := g.Winner()
	if winner == nil {
		return false, logicError("match ended without a winner")
	}
	g.console.Printf("Winner: %s\n", winner.Name)
	g.log.Info().Str("winner", winner.Name).Msg("match finished")

	return g.console.Confirm("Start a new game?")
}

// PlayTurn runs one turn for the player at idx and returns the rounded-up
// average of the target scores.
func (g *Game) PlayTurn(idx int) (uint32, error) {
	p := g.players[idx]
	g.console.Printf("%s's turn (Vitality=%d, Speed=%d, Strength=%d)\n", p.Name, p.Vitality, p.Speed, p.Strength)

	targets := g.GenerateTargets()
	g.console.Printf("→ Objectives: %s\n", formatTargets(targets))
	g.console.Println("→ Press ENTER to start the turn..")

	if err := g.console.WaitForEnter(); err != nil {
		return 0, err
	}

	scores := make([]uint32, 0, len(targets))
	for _, target := range targets {
		score, err := g.playTarget(p, target)
		if err != nil {
			return 0, err
		}
		scores = append(scores, score)
	}

	avg := scoring.Average(scores)
	g.console.Println("# End of turn #")
	g.console.Printf("→ Average score: %d\n", avg)

	g.log.Debug().Str("player", p.Name).Uints32("scores", scores).Uint32("average", avg).Msg("turn finished")
	return avg, nil
}

// playTarget runs the counter for a single target: start the counter, watch
// it live, stop on ENTER, join both loops and score the final snapshot.
func (g *Game) playTarget(p *player.Player, target uint32) (uint32, error) {
	if g.console.Terminal() {
		// the live line overwrites this prompt in place
		g.console.Printf("Press ENTER to stop the counter...")
	} else {
		g.console.Println("Press ENTER to stop the counter...")
	}

	c := g.newCounter()
	if err := c.Start(p.TickInterval()); err != nil {
		return 0, errors.Wrapf(err, "failed to start counter for %s", p.Name)
	}

	r := g.renderer
	if r == nil {
		r = g.console.Renderer()
	}
	watch := observer.Observe(c, target, r, observer.WithInterval(g.refresh))

	inputErr := g.console.WaitForEnter()
	value, miss := c.Stop()
	if err := watch.Wait(); err != nil {
		g.log.Warn().Err(err).Uint32("target", target).Msg("live display failed")
	}
	c.Wait()

	if inputErr != nil {
		return 0, inputErr
	}

	if g.console.Terminal() {
		// ENTER moved the cursor below the live line
		g.console.Printf("\x1B[A\r\x1B[K")
	}

	score := scoring.Score(target, value, p.Strength, miss)
	g.console.Printf("→ Objective %d: Miss = %d | Counter = %d // Score = (%d + %d) / %d = %d\n",
		target, miss, value, scoring.BaseScore(target, value), p.Strength, miss+1, score)

	return score, nil
}

// GenerateTargets draws one target in [0, MaxValue] per objective.
func (g *Game) GenerateTargets() []uint32 {
	targets := make([]uint32, g.targetCount)
	for i := range targets {
		targets[i] = uint32(g.rng.Intn(counter.MaxValue + 1))
	}
	return targets
}

// ProcessRoundResult applies the score difference to the round loser and, if
// the loser survives, lets the winner pick a penalty.
func (g *Game) ProcessRoundResult(p1Score, p2Score uint32) error {
	var winner, loser int
	switch {
	case p1Score > p2Score:
		winner, loser = 0, 1
	case p2Score > p1Score:
		winner, loser = 1, 0
	default:
		g.console.Println("The round is a draw. No vitality lost.")
		return nil
	}

	scores := [2]uint32{p1Score, p2Score}
	diff := scores[winner] - scores[loser]
	g.players[loser].DecreaseVitality(diff)
	g.console.Printf("%s wins the round. %s loses %d vitality points.\n",
		g.players[winner].Name, g.players[loser].Name, diff)

	if !g.players[loser].Alive() {
		return nil
	}
	return g.applyPenalty(winner, loser)
}

func (g *Game) applyPenalty(winner, loser int) error {
	w, l := g.players[winner], g.players[loser]
	g.console.Printf("%s, you must choose which poison to apply to %s:\n", w.Name, l.Name)

	choice, err := g.console.Choice("Choose a penalty:", penaltyOptions)
	if err != nil {
		return err
	}

	switch choice {
	case 0:
		l.DecreaseSpeed(PenaltyAmount)
		g.console.Printf("%s's speed reduced by %d!\n", l.Name, PenaltyAmount)
		if l.Speed == 0 {
			g.console.Printf("Game Over! %s has lost because their speed reached 0!\n", l.Name)
			g.over = true
			g.winnerIdx = winner
		}
	case 1:
		l.DecreaseStrength(PenaltyAmount)
		g.console.Printf("%s's strength reduced by %d!\n", l.Name, PenaltyAmount)
	default:
		return logicError("unknown penalty choice %d", choice)
	}

	g.log.Debug().Str("winner", w.Name).Str("loser", l.Name).Str("penalty", penaltyOptions[choice]).Msg("penalty applied")
	return nil
}

func formatTargets(targets []uint32) string {
	parts := make([]string, len(targets))
	for i, t := range targets {
		parts[i] = fmt.Sprint(t)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

var entropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)

func newID() ulid.ULID {
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
}
