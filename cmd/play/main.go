package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/okonek/mathsprint/internal/client"
	"github.com/okonek/mathsprint/internal/config"
	"github.com/okonek/mathsprint/internal/game"
	"github.com/okonek/mathsprint/internal/game/runner"
	"github.com/okonek/mathsprint/internal/logger"
	"github.com/okonek/mathsprint/internal/repository/local"
	"github.com/okonek/mathsprint/internal/worker"
)

// console funnels stdin through a single goroutine so the game loop can
// select between player input and the session clock.
type console struct {
	lines chan string
}

func newConsole() *console {
	c := &console{lines: make(chan string)}
	go func() {
		defer close(c.lines)
		in := bufio.NewScanner(os.Stdin)
		for in.Scan() {
			c.lines <- in.Text()
		}
	}()
	return c
}

func (c *console) prompt(label string) (string, bool) {
	fmt.Print(label)
	line, ok := <-c.lines
	return strings.TrimSpace(line), ok
}

func main() {
	localPlay := flag.Bool("local", false, "play against the local scores file instead of the server")
	consolation := flag.Bool("consolation", false, "award a consolation point and reveal the answer on mistakes")
	flag.Parse()

	cfg := config.Load()
	logger.SetDefault(logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithOutput(os.Stderr),
		logger.WithColors(false),
	))

	var scores client.ScoreClient
	if *localPlay {
		scores = client.NewStoreClient(local.NewStore(cfg.ScoresPath))
	} else {
		scores = client.New(cfg.ServerURL)
	}

	rules := game.RetryRules
	if *consolation {
		rules = game.ConsolationRules
	}

	pool := worker.NewPool(cfg.SubmitWorkerCount, cfg.SubmitQueueSize)
	pool.Start(context.Background())
	defer pool.Stop()

	term := newConsole()
	session := game.NewSession(rules, rand.New(rand.NewSource(time.Now().UnixNano())))

	for {
		if !play(session, scores, pool, term) {
			return
		}
		answer, ok := term.prompt("Play again? (y/n) ")
		if !ok || (answer != "y" && answer != "yes") {
			return
		}
		session.Reset()
	}
}

// play runs one full game. It returns false when stdin is exhausted.
func play(session *game.Session, scores client.ScoreClient, pool *worker.Pool, term *console) bool {
	fmt.Println("=== MathSprint ===")

	for session.State() == game.StateStart {
		name, ok := term.prompt("Enter your name: ")
		if !ok {
			return false
		}
		if err := session.Start(name); err != nil {
			fmt.Println(err)
		}
	}

	for session.State() == game.StateModeSelection {
		fmt.Println("Choose a mode:")
		for i, mode := range game.KnownModes() {
			fmt.Printf("  %d) %s\n", i+1, mode)
		}
		choice, ok := term.prompt("> ")
		if !ok {
			return false
		}
		mode, err := pickMode(choice)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if err := session.ChooseMode(mode); err != nil {
			fmt.Println(err)
		}
	}

	r := runner.New(session, scores, pool)
	r.StartClock(context.Background())

	fmt.Printf("Go, %s! You have %d seconds.\n", session.PlayerName(), game.SessionSeconds)

game:
	for {
		problem, input, score, remaining, _ := r.Snapshot()
		fmt.Printf("[%3ds | %d pts] %d + %d = %s\n", remaining, score, problem.First, problem.Second, input)

		select {
		case <-r.Done():
			break game
		case line, ok := <-term.lines:
			if !ok {
				r.Abort()
				break game
			}
			fb, err := r.Submit(strings.TrimSpace(line))
			if err != nil {
				// The timer beat the answer; the game is over.
				break game
			}
			fmt.Println(fb.Message)
		}
	}

	summary, err := r.Settle(context.Background())
	if err != nil {
		fmt.Println("(could not reach the score server; your score may not be saved)")
	}

	fmt.Println("\n=== Time's up! ===")
	fmt.Printf("Final score: %d\n", summary.Score)
	fmt.Printf("Personal best: %d\n", summary.PersonalBest)
	if summary.IsNewHighScore {
		fmt.Println("*** NEW HIGH SCORE! ***")
	}
	if len(summary.Leaderboard) > 0 {
		fmt.Println("\nLeaderboard:")
		for i, entry := range summary.Leaderboard {
			fmt.Printf("  %2d. %-20s %d\n", i+1, entry.PlayerName, entry.Score)
		}
	}
	return true
}

func pickMode(choice string) (game.Mode, error) {
	for i, mode := range game.KnownModes() {
		if choice == fmt.Sprint(i+1) {
			return mode, nil
		}
	}
	return game.ParseMode(choice)
}
