// bricks is a terminal brick breaker.
//
// Usage:
//
//	bricks play              - Play in this terminal
//	bricks serve             - Start SSH server for remote play
//	bricks scores            - Show high scores
//	bricks inspect <file>    - Decode a save file
//	bricks saves             - List database save slots
//
// Global flags:
//
//	--config <path>      - Game config YAML
//	--difficulty <name>  - easy, normal or hard
//	--seed <value>       - Set RNG seed for reproducible boards
//	--rate <steps>       - Physics steps per second (default from config)
//	--db <path>          - Database path (default: ~/.bricks/bricks.db)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagSeed       int64
	flagRate       int
	flagDBPath     string
	flagLogLevel   string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bricks",
	Short: "Bricks - break blocks in your terminal",
	Long: `Bricks is a terminal brick breaker with 21 levels, gold stars,
falling chocolate bonuses and save games.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  scores   - View high scores
  inspect  - Decode a save file
  saves    - List database save slots

Examples:
  bricks play
  bricks play --difficulty easy --spectate :8081
  bricks serve --ssh :2222
  bricks scores
  bricks inspect ~/.bricks/save.mdds`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagRate, "rate", 0, "Physics steps per second (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bricks/bricks.db", "Path to scores and saves database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable the level skip key")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(inspectCmd)
}
