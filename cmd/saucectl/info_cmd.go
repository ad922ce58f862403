package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	sauce "github.com/textmode-tools/gosauce"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Decode and print a file's SAUCE record",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func runInfo(cmd *cobra.Command, args []string) {
	path := args[0]

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("cannot open %s: %v", path, err)
	}
	defer file.Close()

	block, err := sauce.ReadSauce(file)
	if err != nil {
		log.Fatalf("%s: %v", path, err)
	}

	body := fmt.Sprintf("Title:  %s\nAuthor: %s\nGroup:  %s\n\n%s", block.Title, block.Author, block.Group, formatDetails(block))

	style := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1)

	fmt.Println(style.Render(body))
}

func formatDetails(block *sauce.SauceBlock) string {
	details := block.Details()

	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := ""
	for _, k := range keys {
		out += fmt.Sprintf("%s: %v\n", k, details[k])
	}
	return out
}
