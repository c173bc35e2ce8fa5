package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// defaultSavePath is where the editor saves when no input file was given.
const defaultSavePath = "door.toml"

// editCommand creates the interactive layout editor command.
func (c *CLI) editCommand() *cobra.Command {
	var (
		in   inputFlags
		save string
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Tune a layout interactively",
		Long: `Tune a layout interactively.

Starts a terminal editor over the options from --input and flags. Arrow keys
select and adjust a value, and the door drawing, warnings and summary update
on every change. Press s to save the options as TOML (to --save, the input
file, or door.toml).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := in.options(cmd.Flags())
			if err != nil {
				return err
			}
			path := save
			if path == "" {
				path = in.input
			}
			if path == "" {
				path = defaultSavePath
			}

			model := NewEditorModel(opts, path)
			final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(EditorModel); ok && m.Status != "" {
				if strings.HasPrefix(m.Status, "save failed") {
					printError("%s", m.Status)
				} else {
					printInfo("%s", m.Status)
				}
			}
			return nil
		},
	}

	in.register(cmd.Flags())
	cmd.Flags().StringVar(&save, "save", "", "file the editor saves to (default: --input or door.toml)")

	return cmd
}
