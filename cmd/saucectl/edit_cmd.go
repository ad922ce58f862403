package main

import (
	"errors"
	"log"
	"os"

	"github.com/spf13/cobra"

	sauce "github.com/textmode-tools/gosauce"
	"github.com/textmode-tools/gosauce/internal/editor"
)

var editCmd = &cobra.Command{
	Use:   "edit <file>",
	Short: "Interactively edit a file's SAUCE record",
	Args:  cobra.ExactArgs(1),
	Run:   runEdit,
}

// stdio adapts the process's stdin/stdout into a single io.ReadWriter,
// the same shape a network session hands the editor.
type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

func runEdit(cmd *cobra.Command, args []string) {
	path := args[0]

	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		log.Fatalf("cannot open %s: %v", path, err)
	}
	defer file.Close()

	block, err := sauce.ReadSauce(file)
	if err != nil {
		if !errors.Is(err, sauce.ErrNoSauce) {
			log.Fatalf("%s: %v", path, err)
		}
		block = sauce.NewBlock(sauce.MediaInfo{}, "", "", "", "", nil)
	}

	result, err := editor.Run(stdio{}, block)
	if err != nil {
		log.Fatalf("editor error: %v", err)
	}
	if result == nil {
		return
	}

	if err := sauce.WriteFile(file, result); err != nil {
		log.Fatalf("failed to save %s: %v", path, err)
	}
}
