package wizard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/augmentlab/ftkit/internal/augment"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ErrNoTasks is returned when the picker is given nothing to choose from.
var ErrNoTasks = errors.New("no tasks to pick from")

// PickTasks asks which batch tasks to run. Every task starts selected, so
// submitting without changes keeps the whole batch.
func PickTasks(in io.Reader, out io.Writer, tasks []augment.Task) ([]augment.Task, error) {
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}

	selected := make([]int, len(tasks))
	options := make([]huh.Option[int], len(tasks))
	for i, task := range tasks {
		selected[i] = i
		options[i] = huh.NewOption(OptionLabel(task), i)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Tasks to augment").
				Description("Deselect anything you do not want to fill this time").
				Value(&selected).
				Options(options...).
				Validate(func(v []int) error {
					if len(v) == 0 {
						return fmt.Errorf("select at least one task")
					}
					return nil
				}),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("task picker failed: %w", err)
	}

	return Selected(tasks, selected), nil
}

// Selected returns the tasks at the given indexes in batch order. Unknown
// and repeated indexes are ignored.
func Selected(tasks []augment.Task, indexes []int) []augment.Task {
	want := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		want[i] = true
	}
	var picked []augment.Task
	for i, task := range tasks {
		if want[i] {
			picked = append(picked, task)
		}
	}
	return picked
}

// OptionLabel renders a task as a picker line.
func OptionLabel(t augment.Task) string {
	var b strings.Builder
	b.WriteString(t.Label())
	if t.Type != "" {
		fmt.Fprintf(&b, " [%s]", t.Type)
	}
	if t.Minimum > 0 {
		fmt.Fprintf(&b, " min %d", t.Minimum)
	}
	if len(t.Required) > 0 {
		fmt.Fprintf(&b, " requires %q", strings.Join(t.Required, ", "))
	}
	return b.String()
}
