// Package editor is the interactive terminal form for editing a
// SauceBlock's text fields and comments, grounded on the teacher's
// bubbletea usage and expanded with a real huh form.
package editor

import (
	"errors"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	sauce "github.com/textmode-tools/gosauce"
)

// Run drives a form over rw pre-filled from block's title, author,
// group, and comments. It returns the edited block, or (nil, nil) if
// the user aborted (Esc/Ctrl-C).
func Run(rw io.ReadWriter, block *sauce.SauceBlock) (*sauce.SauceBlock, error) {
	title := block.Title
	author := block.Author
	group := block.Group
	comments := strings.Join(block.Comments, "\n")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				CharLimit(35).
				Value(&title),
			huh.NewInput().
				Title("Author").
				CharLimit(20).
				Value(&author),
			huh.NewInput().
				Title("Group").
				CharLimit(20).
				Value(&group),
			huh.NewText().
				Title("Comments (one line per row)").
				Value(&comments),
		),
	).WithProgramOptions(tea.WithInput(rw), tea.WithOutput(rw))

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}

	if form.State == huh.StateAborted {
		return nil, nil
	}

	block.Title = title
	block.Author = author
	block.Group = group
	block.ClearComments()
	if comments != "" {
		block.AddComments(strings.Split(comments, "\n")...)
	}

	return block, nil
}
