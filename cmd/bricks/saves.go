package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bricks/internal/storage"
)

var flagDeleteSlot string

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List database save slots",
	Long: `List the save slots stored in the database. SSH players get a
slot named "ssh:<user>".

Examples:
  bricks saves
  bricks saves --delete ssh:alice`,
	Args: cobra.NoArgs,
	RunE: runSaves,
}

func init() {
	savesCmd.Flags().StringVar(&flagDeleteSlot, "delete", "", "Delete the named slot")
	rootCmd.AddCommand(savesCmd)
}

func runSaves(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer store.Close()

	if flagDeleteSlot != "" {
		if err := store.DeleteSave(cmd.Context(), flagDeleteSlot); err != nil {
			return err
		}
		fmt.Printf("Deleted slot %q\n", flagDeleteSlot)
		return nil
	}

	saves, err := store.ListSaves(cmd.Context())
	if err != nil {
		return fmt.Errorf("error listing saves: %w", err)
	}
	if len(saves) == 0 {
		fmt.Println("No saves in the database.")
		return nil
	}

	fmt.Printf("  %-20s  %-5s  %-8s  %-6s  %s\n", "Slot", "Level", "Score", "Bytes", "Updated")
	fmt.Printf("  %-20s  %-5s  %-8s  %-6s  %s\n", "----", "-----", "-----", "-----", "-------")
	for _, s := range saves {
		fmt.Printf("  %-20s  %-5d  %-8d  %-6d  %s\n",
			s.Slot, s.Level, s.Score, s.Size, s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
