package scanner

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garlicgarrison/opening-scanner/opening"
)

func runSession(t *testing.T, startingMoves []string, input string) string {
	t.Helper()

	tree, err := opening.NewTree(startingMoves)
	require.NoError(t, err)

	var out bytes.Buffer
	s := New(DefaultConfig(), tree, strings.NewReader(input), &out)
	defer s.Close()

	require.NoError(t, s.Run())
	return out.String()
}

func TestSessionAddNextTerminal(t *testing.T) {
	out := runSession(t, nil, "add e4\nnext\nterminal\nnext\nn\nquit\n")

	assert.Contains(t, out, "Added move: e2e4")
	assert.Contains(t, out, "Moved to next node. Current FEN:")
	assert.Contains(t, out, "Marked as terminal")
	assert.Contains(t, out, "All nodes are terminal.")
	assert.Contains(t, out, "(y/n)")
}

func TestSessionUnknownCommand(t *testing.T) {
	out := runSession(t, nil, "bogus\nquit\n")
	assert.Contains(t, out, "Unknown command or missing argument.")
}

func TestSessionMissingArgument(t *testing.T) {
	out := runSession(t, nil, "add\nquit\n")
	assert.Contains(t, out, "Unknown command or missing argument.")

	out = runSession(t, nil, "output\nquit\n")
	assert.Contains(t, out, "Unknown command or missing argument.")
}

func TestSessionInvalidMove(t *testing.T) {
	out := runSession(t, nil, "add zz9\nquit\n")
	assert.Contains(t, out, "'zz9' is not a valid move.")
}

func TestSessionAddList(t *testing.T) {
	out := runSession(t, nil, "add e4, d4, zz\ntree\nquit\n")

	assert.Contains(t, out, "Added move: e2e4")
	assert.Contains(t, out, "Added move: d2d4")
	assert.Contains(t, out, "'zz' is not a valid move.")
	assert.Contains(t, out, "Total lines: 2")
}

func TestSessionFEN(t *testing.T) {
	out := runSession(t, nil, "fen\nquit\n")
	assert.Contains(t, out, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
}

func TestSessionStartingMoves(t *testing.T) {
	out := runSession(t, []string{"e4", "e5"}, "fen\nquit\n")
	assert.Contains(t, out, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w")
}

func TestSessionPrint(t *testing.T) {
	out := runSession(t, nil, "print\nquit\n")
	assert.Contains(t, out, "=== Current Position ===")
	assert.Contains(t, out, "Status: Non-terminal")

	out = runSession(t, nil, "terminal\nprint\nquit\n")
	assert.Contains(t, out, "Status: Terminal")
}

func TestSessionTopUsage(t *testing.T) {
	out := runSession(t, nil, "top five\nquit\n")
	assert.Contains(t, out, "Usage: top <X> (integer, positive or negative)")
}

func TestSessionTopZeroSkipsEngine(t *testing.T) {
	tree, err := opening.NewTree(nil)
	require.NoError(t, err)

	var out bytes.Buffer
	s := New(DefaultConfig(), tree, strings.NewReader(""), &out)
	defer s.Close()

	s.dispatch("top", "0")

	assert.Contains(t, out.String(), "Best 0 moves for white:")
	assert.NotContains(t, out.String(), "Fetching move stats")
	assert.Nil(t, s.pool)
	assert.Nil(t, s.rank)
}

func TestSessionOutput(t *testing.T) {
	file := filepath.Join(t.TempDir(), "lines.pgn")
	out := runSession(t, nil, "add e4, d4\nnext\nterminal\noutput "+file+"\nquit\n")

	assert.Contains(t, out, "Writing PGN database to "+file)
	assert.Contains(t, out, "Wrote 2 games to "+file)

	written, err := ioutil.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(written), "1. e4")
	assert.Contains(t, string(written), "1. d4")
}

func TestSessionExportPromptOnExhaustion(t *testing.T) {
	file := filepath.Join(t.TempDir(), "done.pgn")
	out := runSession(t, nil, "add e4\nnext\nterminal\nnext\ny\n"+file+"\nquit\n")

	assert.Contains(t, out, "All nodes are terminal.")
	assert.Contains(t, out, "Output file name:")
	assert.Contains(t, out, "Wrote 1 games to "+file)

	written, err := ioutil.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(written), "1. e4")
}
