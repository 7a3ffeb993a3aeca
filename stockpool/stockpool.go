package stockpool

import (
	"errors"
	"strconv"
	"time"

	"github.com/garlicgarrison/go-chess"
	"github.com/garlicgarrison/go-chess/uci"
	guuid "github.com/google/uuid"
)

var (
	ErrPathNotFound  = errors.New("path not found")
	ErrWrongInstance = errors.New("wrong instance released")
)

/*
	Score is an engine verdict for a single move, from White's
	perspective. Mate != 0 means a forced mate in that many moves was
	found and CP carries no meaning.
*/
type Score struct {
	CP   int
	Mate int
}

type Instance struct {
	id     guuid.UUID
	Engine *uci.Engine
}

/*
	ScoreMove evaluates one candidate move from the given position,
	restricting the engine's search to that move. The raw UCI score is
	reported from the side to move, so it is flipped to White's
	perspective when Black is to move.
*/
func (i *Instance) ScoreMove(pos *chess.Position, move *chess.Move, depth int) (*Score, error) {
	cmdPos := uci.CmdPosition{Position: pos}
	cmdGo := uci.CmdGo{
		Depth:       depth,
		SearchMoves: []*chess.Move{move},
	}

	if err := i.Engine.Run(cmdPos, cmdGo); err != nil {
		return nil, err
	}

	res := i.Engine.SearchResults()
	score := &Score{
		CP:   res.Info.Score.CP,
		Mate: res.Info.Score.Mate,
	}
	if pos.Turn() == chess.Black {
		score.CP = -score.CP
		score.Mate = -score.Mate
	}

	return score, nil
}

type Pool struct {
	idSet   map[guuid.UUID]bool
	pool    chan *Instance
	threads int
	timeout int
}

func NewPool(path string, limit, threads, timeout int) (*Pool, error) {
	idSet := make(map[guuid.UUID]bool)
	ch := make(chan *Instance, limit)

	for i := 0; i < limit; i++ {
		eng, err := uci.New(path)
		if err != nil {
			closeInstances(ch)
			return nil, ErrPathNotFound
		}

		err = eng.Run(
			uci.CmdUCI,
			uci.CmdSetOption{
				Name:  "Threads",
				Value: strconv.FormatInt(int64(threads), 10),
			},
			uci.CmdIsReady,
			uci.CmdUCINewGame,
		)
		if err != nil {
			eng.Close()
			closeInstances(ch)
			return nil, err
		}

		id := guuid.New()
		idSet[id] = true
		ch <- &Instance{
			id:     id,
			Engine: eng,
		}
	}

	return &Pool{
		idSet:   idSet,
		pool:    ch,
		threads: threads,
		timeout: timeout,
	}, nil
}

func (p *Pool) Acquire() *Instance {
	for {
		select {
		case instance := <-p.pool:
			return instance
		default:
			time.Sleep(time.Duration(p.timeout) * time.Millisecond)
		}
	}
}

func (p *Pool) Release(i *Instance) error {
	_, ok := p.idSet[i.id]
	if !ok {
		return ErrWrongInstance
	}

	p.pool <- i
	return nil
}

// Close shuts down every idle engine process in the pool.
func (p *Pool) Close() {
	closeInstances(p.pool)
}

func closeInstances(ch chan *Instance) {
	for {
		select {
		case instance := <-ch:
			if instance.Engine != nil {
				instance.Engine.Close()
			}
		default:
			return
		}
	}
}

