package ranker

import (
	"errors"
	"fmt"
	"sort"

	"github.com/garlicgarrison/go-chess"
	"github.com/garlicgarrison/opening-scanner/explorer"
	"github.com/garlicgarrison/opening-scanner/stockpool"
)

var ErrNoData = errors.New("no data for position")

// mateValue folds a forced mate into the centipawn scale so mates sort
// above and below every real evaluation; closer mates sort as more
// extreme.
const mateValue = 100000

// Provider supplies per-move popularity counts for a position key.
type Provider interface {
	MovesFor(fen string) ([]explorer.CandidateMove, error)
}

// Evaluator scores one candidate move from a position, White's
// perspective.
type Evaluator interface {
	ScoreMove(pos *chess.Position, move *chess.Move, depth int) (*stockpool.Score, error)
}

// EnginePool hands out evaluators under acquire/release discipline.
type EnginePool interface {
	Acquire() Evaluator
	Release(Evaluator) error
}

/*
	Entry is one ranked move. CP is the engine score in centipawns from
	White's perspective; Mate means the engine found a forced mate and
	CP is meaningless. scoreVal and sortKey are the derived sorting
	values: scoreVal is White-perspective with mates folded in, sortKey
	is scoreVal seen from the side to move.
*/
type Entry struct {
	SAN        string
	UCI        string
	Popularity int
	CP         int
	Mate       bool

	scoreVal int
	sortKey  int
}

// Eval renders the engine score for display, in pawns with two
// decimals, or "Mate" for a forced mate.
func (e Entry) Eval() string {
	if e.Mate {
		return "Mate"
	}
	return fmt.Sprintf("%.2f", float64(e.CP)/100)
}

type Ranker struct {
	provider Provider
	pool     EnginePool
	depth    int
}

func New(provider Provider, pool EnginePool, depth int) *Ranker {
	return &Ranker{
		provider: provider,
		pool:     pool,
		depth:    depth,
	}
}

/*
	Rank fetches the candidate moves for the position, scores each legal
	candidate with one engine instance, and returns the top n entries in
	sorted order. n > 0 selects the best moves for the side to move,
	n < 0 the worst, n == 0 an empty selection without touching the
	provider or the engine. One instance is acquired for the whole pass
	and released on every exit path; any evaluation failure aborts the
	pass with no partial result.
*/
func (r *Ranker) Rank(pos *chess.Position, n int) ([]Entry, error) {
	if n == 0 {
		return []Entry{}, nil
	}

	candidates, err := r.provider.MovesFor(pos.String())
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoData
	}

	instance := r.pool.Acquire()
	defer r.pool.Release(instance)

	valid := pos.ValidMoves()
	entries := []Entry{}
	for _, candidate := range candidates {
		move := matchValid(valid, candidate.UCI)
		if move == nil {
			// stale explorer data, not legal here
			continue
		}

		score, err := instance.ScoreMove(pos, move, r.depth)
		if err != nil {
			return nil, err
		}

		entry := Entry{
			SAN:        candidate.SAN,
			UCI:        candidate.UCI,
			Popularity: candidate.Popularity(),
		}
		if score.Mate != 0 {
			entry.Mate = true
			if score.Mate > 0 {
				entry.scoreVal = mateValue - score.Mate
			} else {
				entry.scoreVal = -mateValue - score.Mate
			}
		} else {
			entry.CP = score.CP
			entry.scoreVal = score.CP
		}
		if pos.Turn() == chess.White {
			entry.sortKey = entry.scoreVal
		} else {
			entry.sortKey = -entry.scoreVal
		}

		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, ErrNoData
	}

	return selectTop(entries, n), nil
}

func matchValid(valid []*chess.Move, uci string) *chess.Move {
	for _, move := range valid {
		if move.String() == uci {
			return move
		}
	}
	return nil
}

/*
	selectTop sorts entries in place and returns the first |n|. For
	n > 0 the order is best-first by sortKey with popularity breaking
	ties; for n < 0 worst-first by sortKey with the raw White score
	breaking ties, descending.
*/
func selectTop(entries []Entry, n int) []Entry {
	limit := n
	if n > 0 {
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].sortKey != entries[j].sortKey {
				return entries[i].sortKey > entries[j].sortKey
			}
			return entries[i].Popularity > entries[j].Popularity
		})
	} else {
		limit = -n
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].sortKey != entries[j].sortKey {
				return entries[i].sortKey < entries[j].sortKey
			}
			return entries[i].scoreVal > entries[j].scoreVal
		})
	}

	if limit > len(entries) {
		limit = len(entries)
	}
	return entries[:limit]
}
