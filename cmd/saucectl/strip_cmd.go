package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	sauce "github.com/textmode-tools/gosauce"
)

var commentsOnly bool

var stripCmd = &cobra.Command{
	Use:   "strip <file>",
	Short: "Remove the SAUCE record (or just its comments) from a file",
	Args:  cobra.ExactArgs(1),
	Run:   runStrip,
}

func init() {
	stripCmd.Flags().BoolVar(&commentsOnly, "comments-only", false, "remove only the comment block, keeping the record")
}

func runStrip(cmd *cobra.Command, args []string) {
	path := args[0]

	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		log.Fatalf("cannot open %s: %v", path, err)
	}
	defer file.Close()

	if commentsOnly {
		if err := sauce.RemoveCommentsFile(file); err != nil {
			log.Fatalf("failed to remove comments from %s: %v", path, err)
		}
		return
	}

	if err := sauce.RemoveSauceFile(file); err != nil {
		log.Fatalf("failed to remove SAUCE from %s: %v", path, err)
	}
}
