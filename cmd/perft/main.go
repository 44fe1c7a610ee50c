// perft is a move generation debugging tool. See:
// https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

var (
	depth       = flag.Int("depth", 4, "Search depth")
	position    = flag.String("fen", "", "Start position (default to standard)")
	divide      = flag.Bool("divide", false, "Divide counts by initial move")
	showVersion = flag.Bool("version", false, "Print the tool version and exit")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	if *position == "" {
		*position = board.StartFEN
	}

	pos, err := board.ParseFEN(*position)
	if err != nil {
		logw.Exitf(ctx, "Invalid fen %q: %v", *position, err)
	}

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		nodes := perft(pos, i, *divide && i == *depth)
		duration := time.Since(start)

		fmt.Printf("perft,%v,%v,%v,%v\n", *position, i, nodes, duration.Microseconds())
	}
}

// perft counts the leaf nodes of the legal move tree rooted at pos to the
// given depth, optionally printing the per-root-move split (divide).
func perft(pos *board.Position, depth int, divide bool) int64 {
	if depth == 0 {
		return 1
	}

	var nodes int64
	for _, m := range pos.AllMoves() {
		pos.Make(m)
		count := perft(pos, depth-1, false)
		pos.Unmake()

		if divide {
			fmt.Printf("%v: %v\n", m, count)
		}
		nodes += count
	}
	return nodes
}
