package editor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"cigen/internal/detect"
	"cigen/internal/document"
	"cigen/internal/platform"
)

// Run launches the interactive editor for the project in dir. When the user
// writes (W), the previewed CI file lands at the platform's conventional path
// and the preset choices are saved to cigen.yaml. Returns the written paths.
func Run(dir string, target platform.Platform) ([]string, error) {
	res, err := detect.Project(dir)
	if err != nil {
		if errors.Is(err, detect.ErrNoProject) {
			// The editor still works without detection; every preset just
			// starts disabled.
			res = &detect.Result{Type: detect.Unknown}
		} else {
			return nil, err
		}
	}

	state := New(res, dir, target)

	docPath := filepath.Join(dir, document.DefaultPath)
	if _, statErr := os.Stat(docPath); statErr == nil {
		doc, err := document.Load(docPath)
		if err != nil {
			return nil, err
		}
		if err := state.ApplyDocument(doc); err != nil {
			return nil, fmt.Errorf("%s: %w", docPath, err)
		}
	}

	prog := tea.NewProgram(NewModel(state), tea.WithAltScreen())
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("run editor: %w", err)
	}

	fm, ok := final.(Model)
	if !ok || !fm.State().ShouldWrite {
		return nil, nil
	}
	if err := fm.State().WriteOutput(); err != nil {
		return nil, err
	}
	return []string{fm.State().Target.OutputPath(), document.DefaultPath}, nil
}
