package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bricks/internal/games/bricks"
	"github.com/vovakirdan/tui-bricks/internal/savefile"
	"github.com/vovakirdan/tui-bricks/internal/storage"
)

var (
	flagSlot bool
	flagJSON bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file|slot>",
	Short: "Decode a save",
	Long: `Decode a save file (or, with --slot, a database save slot) and
print its contents.

Examples:
  bricks inspect ~/.bricks/save.mdds
  bricks inspect --slot default
  bricks inspect --json save.mdds`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&flagSlot, "slot", false, "Read a database slot instead of a file")
	inspectCmd.Flags().BoolVar(&flagJSON, "json", false, "Print JSON")
}

func runInspect(cmd *cobra.Command, args []string) error {
	var (
		st  savefile.State
		err error
	)
	if flagSlot {
		store, openErr := storage.Open(flagDBPath)
		if openErr != nil {
			return fmt.Errorf("error opening database: %w", openErr)
		}
		defer store.Close()
		st, err = store.Slot(args[0]).ReadSave(cmd.Context())
	} else {
		var fs *savefile.FileStore
		fs, err = savefile.NewFileStore(args[0])
		if err == nil {
			st, err = fs.ReadSave(cmd.Context())
		}
	}
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}

	collision, bounceRight, flagErr := bricks.CollisionFromFlags(st.Flags)

	fmt.Printf("Level      %d\n", st.Level)
	fmt.Printf("Score      %d\n", st.Score)
	fmt.Printf("Lives      %d\n", st.Lives)
	fmt.Printf("Destroyed  %d (remaining %d)\n", st.Destroyed, len(st.Blocks))
	fmt.Printf("Clock      %d (gold since %d, gold %v)\n", st.Time, st.GoldTime, st.Gold)
	fmt.Printf("Ball       (%.2f, %.2f) vx %.3f down %v right %v\n", st.BallX, st.BallY, st.VX, st.Down, st.Right)
	fmt.Printf("Paddle     (%.2f, %.2f) center %.2f\n", st.PaddleX, st.PaddleY, st.PaddleCenterX)
	if flagErr != nil {
		fmt.Printf("Collision  invalid: %v\n", flagErr)
	} else {
		fmt.Printf("Collision  %v (paddle bounce right %v)\n", collision, bounceRight)
	}

	counts := map[bricks.Kind]int{}
	for _, b := range st.Blocks {
		counts[bricks.Kind(b.Kind)]++
	}
	fmt.Printf("Blocks     %d normal, %d choco, %d star, %d heart\n",
		counts[bricks.KindNormal], counts[bricks.KindChoco], counts[bricks.KindStar], counts[bricks.KindHeart])
	return nil
}
