package scanner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/garlicgarrison/go-chess"

	"github.com/garlicgarrison/opening-scanner/explorer"
	"github.com/garlicgarrison/opening-scanner/opening"
	"github.com/garlicgarrison/opening-scanner/ranker"
	"github.com/garlicgarrison/opening-scanner/stockpool"
)

const (
	colorReset    = "\033[0m"
	colorBoldBlue = "\033[1;34m"
	colorYellow   = "\033[1;33m"
	colorGreen    = "\033[1;32m"
)

/*
	Scanner is the interactive session: one tree, one depth-first
	cursor, and the external helpers for ranking and export. Every
	command runs to completion before the next line is read; a failed
	command is reported and the loop keeps accepting input.
*/
type Scanner struct {
	cfg  Config
	tree *opening.Tree
	nav  *opening.Navigator

	pool *stockpool.Pool
	rank *ranker.Ranker

	in  *bufio.Scanner
	out io.Writer
}

func New(cfg Config, tree *opening.Tree, in io.Reader, out io.Writer) *Scanner {
	return &Scanner{
		cfg:  cfg,
		tree: tree,
		nav:  opening.NewNavigator(tree),
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

// Close shuts down the engine pool if one was started.
func (s *Scanner) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Scanner) Run() error {
	fmt.Fprintln(s.out, "Entering opening scanner interactive mode.")
	fmt.Fprintln(s.out, "Type a command (print, fen, add, next, terminal, top, tree, output, quit).")

	for {
		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			fmt.Fprintln(s.out, "\nExiting.")
			return s.in.Err()
		}

		raw := strings.TrimSpace(s.in.Text())
		if raw == "" {
			continue
		}

		cmd, arg := splitCommand(raw)
		if cmd == "quit" {
			return nil
		}
		s.dispatch(cmd, arg)
	}
}

// splitCommand separates the first whitespace-delimited token from the
// rest of the line.
func splitCommand(raw string) (string, string) {
	if i := strings.IndexAny(raw, " \t"); i >= 0 {
		return raw[:i], strings.TrimSpace(raw[i+1:])
	}
	return raw, ""
}

func (s *Scanner) dispatch(cmd, arg string) {
	switch {
	case cmd == "fen":
		s.cmdFEN()
	case cmd == "print":
		s.cmdPrint()
	case cmd == "add" && arg != "":
		s.cmdAdd(arg)
	case cmd == "next":
		s.cmdNext()
	case cmd == "terminal":
		s.cmdTerminal()
	case cmd == "top":
		s.cmdTop(arg)
	case cmd == "tree":
		s.tree.Print(s.out)
	case cmd == "output" && arg != "":
		s.cmdOutput(arg)
	default:
		fmt.Fprintln(s.out, "Unknown command or missing argument.")
	}
}

func (s *Scanner) cmdFEN() {
	fmt.Fprintln(s.out, s.nav.Current().Position().String())
}

func (s *Scanner) cmdPrint() {
	pos := s.nav.Current().Position()

	fmt.Fprintf(s.out, "%s=== Current Position ===%s\n", colorBoldBlue, colorReset)
	fmt.Fprintf(s.out, "%sFEN:%s %s\n", colorYellow, colorReset, pos.String())

	fmt.Fprintf(s.out, "\n%sBoard:%s\n", colorGreen, colorReset)
	fmt.Fprintln(s.out, pos.Board().Draw())

	status := "Non-terminal"
	if s.nav.Current().Terminal() {
		status = "Terminal"
	}
	fmt.Fprintf(s.out, "\nStatus: %s\n\n", status)
}

// cmdAdd attaches each comma-separated move to the current node. The
// cursor does not move.
func (s *Scanner) cmdAdd(arg string) {
	for _, raw := range strings.Split(arg, ",") {
		raw = strings.TrimSpace(raw)

		child, err := s.tree.AddMove(s.nav.Current(), raw)
		if err != nil {
			fmt.Fprintf(s.out, "'%s' is not a valid move.\n", raw)
			continue
		}
		fmt.Fprintf(s.out, "Added move: %s\n", child.Move().String())
	}
}

func (s *Scanner) cmdNext() {
	step, node := s.nav.Advance()
	switch step {
	case opening.Descended:
		fmt.Fprintf(s.out, "Moved to next node. Current FEN:\n%s\n", node.Position().String())
	case opening.Backtracked:
		fmt.Fprintf(s.out, "Moved to next sibling. FEN:\n%s\n", node.Position().String())
	case opening.Exhausted:
		fmt.Fprintln(s.out, "All nodes are terminal.")
		s.offerExport()
	}
}

func (s *Scanner) offerExport() {
	fmt.Fprint(s.out, "Would you like to output the PGN file? (y/n) ")
	if !s.in.Scan() {
		return
	}
	choice := strings.ToLower(strings.TrimSpace(s.in.Text()))
	if !strings.HasPrefix(choice, "y") {
		return
	}

	fmt.Fprint(s.out, "Output file name: ")
	if !s.in.Scan() {
		return
	}
	filename := strings.TrimSpace(s.in.Text())
	if filename != "" {
		s.cmdOutput(filename)
	}
}

func (s *Scanner) cmdTerminal() {
	s.tree.MarkTerminal(s.nav.Current())
	fmt.Fprintln(s.out, "Marked as terminal")
}

func (s *Scanner) cmdTop(arg string) {
	n := 5
	if arg != "" {
		parsed, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintln(s.out, "Usage: top <X> (integer, positive or negative)")
			return
		}
		n = parsed
	}

	pos := s.nav.Current().Position()
	direction := "Best"
	count := n
	if n < 0 {
		direction = "Worst"
		count = -n
	}
	side := "white"
	if pos.Turn() == chess.Black {
		side = "black"
	}

	// an empty selection needs neither the explorer nor an engine
	if n == 0 {
		fmt.Fprintf(s.out, "%s %d moves for %s:\n", direction, count, side)
		return
	}

	fmt.Fprintf(s.out, "Fetching move stats for FEN:\n%s\n", pos.String())

	if err := s.ensureRanker(); err != nil {
		fmt.Fprintf(s.out, "engine error -- %s\n", err)
		return
	}

	entries, err := s.rank.Rank(pos, n)
	if err != nil {
		if errors.Is(err, ranker.ErrNoData) {
			fmt.Fprintln(s.out, "No data available for this position")
		} else {
			fmt.Fprintf(s.out, "top error -- %s\n", err)
		}
		return
	}

	fmt.Fprintf(s.out, "%s %d moves for %s:\n", direction, count, side)
	for _, entry := range entries {
		fmt.Fprintf(s.out, "%-6s | popularity=%5d | eval=%s\n", entry.SAN, entry.Popularity, entry.Eval())
	}
}

// ensureRanker starts the engine pool on first use so sessions that
// never rank moves do not need an engine binary.
func (s *Scanner) ensureRanker() error {
	if s.rank != nil {
		return nil
	}

	pool, err := stockpool.NewPool(s.cfg.EnginePath, s.cfg.PoolLimit, s.cfg.EngineThreads, s.cfg.PoolTimeoutMS)
	if err != nil {
		return err
	}

	s.pool = pool
	s.rank = ranker.New(explorer.NewClient(s.cfg.Explorer), enginePool{pool: pool}, s.cfg.EngineDepth)
	return nil
}

// enginePool adapts the stockfish pool to the ranker's acquire/release
// surface.
type enginePool struct {
	pool *stockpool.Pool
}

func (p enginePool) Acquire() ranker.Evaluator {
	return p.pool.Acquire()
}

func (p enginePool) Release(e ranker.Evaluator) error {
	instance, ok := e.(*stockpool.Instance)
	if !ok {
		return stockpool.ErrWrongInstance
	}
	return p.pool.Release(instance)
}

func (s *Scanner) cmdOutput(filename string) {
	fmt.Fprintf(s.out, "Writing PGN database to %s ...\n", filename)

	f, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(s.out, "output error -- %s\n", err)
		return
	}
	defer f.Close()

	count, err := s.tree.Export(f)
	if err != nil {
		fmt.Fprintf(s.out, "output error -- %s\n", err)
		return
	}

	fmt.Fprintf(s.out, "Wrote %d games to %s\n", count, filename)
}
