package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ilgaz/tempo/internal/store"
)

func ToCSV(tasks []store.Task, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Date", "Project", "Task", "Hours", "Minutes", "Total (min)", "Duration", "Notes"}); err != nil {
		return err
	}

	for _, t := range tasks {
		row := []string{
			fmt.Sprintf("%d", t.ID),
			t.Date,
			t.ProjectName,
			t.Name,
			fmt.Sprintf("%d", t.Hours),
			fmt.Sprintf("%d", t.Minutes),
			fmt.Sprintf("%d", t.TotalMinutes),
			formatMinutes(t.TotalMinutes),
			t.Notes,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatMinutes(total int) string {
	return fmt.Sprintf("%dh %02dm", total/60, total%60)
}
