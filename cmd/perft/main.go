package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/benbeisheim/chessrules/internal/rules"
	"github.com/fatih/color"
)

func main() {
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	board := flag.Bool("board", false, "Print the starting board before counting")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	position := rules.StartingPosition()
	rights := rules.CastlingRights{}

	if *board {
		color.New(color.FgCyan).Println(position.String())
	}

	move := color.New(color.FgYellow).SprintFunc()
	total := color.New(color.FgGreen, color.Bold).SprintFunc()

	start := time.Now()
	if *divide {
		split := rules.Divide(position, rights, rules.White, *depth)
		moves := make([]rules.Move, 0, len(split))
		for m := range split {
			moves = append(moves, m)
		}
		sort.Slice(moves, func(i, j int) bool { return moves[i].String() < moves[j].String() })

		sum := 0
		for _, m := range moves {
			fmt.Printf("%s: %d\n", move(m.String()), split[m])
			sum += split[m]
		}
		fmt.Printf("Total: %s (%s)\n", total(sum), time.Since(start))
		return
	}

	nodes := rules.Perft(position, rights, rules.White, *depth)
	elapsed := time.Since(start)
	nps := float64(nodes) / elapsed.Seconds()
	fmt.Printf("perft(%d) = %s in %s (%.0f nps)\n", *depth, total(nodes), elapsed, nps)
}
