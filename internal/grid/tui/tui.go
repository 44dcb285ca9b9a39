// Package tui is the terminal front end for grid edit sessions. It drives a
// session directly, with no HTTP server involved, and blocks until the user
// exits the editor.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Radaos/griddle/internal/grid/entity"
	"github.com/Radaos/griddle/internal/grid/sheetio"
	"github.com/Radaos/griddle/internal/grid/usecase"
)

// Edit opens the editor on rows and returns the final table when the user
// exits. The rules for opening a session apply: rows must be non-nil and at
// least 2x2 after padding.
func Edit(title string, rows [][]string, rule entity.AccessRule) (entity.Table, error) {
	session, err := usecase.NewSession("local", title, rows, rule)
	if err != nil {
		return entity.Table{}, err
	}

	program := tea.NewProgram(newModel(session, title), tea.WithAltScreen())
	out, err := program.Run()
	if err != nil {
		return entity.Table{}, fmt.Errorf("run editor: %w", err)
	}

	final, ok := out.(model)
	if !ok || !final.finished {
		// The program ended without a clean exit, e.g. a kill signal. The
		// session still holds the committed table.
		return session.Exit()
	}
	return final.final, nil
}

// EditFile opens the editor on a CSV file and writes the final table back to
// the same file on exit.
func EditFile(path string) error {
	table, err := sheetio.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	final, err := Edit(path, table.Records(), entity.AccessRule{Mode: entity.EditModeAll})
	if err != nil {
		return err
	}

	if err := sheetio.WriteFile(path, final); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
