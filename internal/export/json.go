package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ilgaz/tempo/internal/store"
)

type jsonExport struct {
	ExportedAt string     `json:"exported_at"`
	Count      int        `json:"count"`
	Tasks      []jsonTask `json:"tasks"`
}

type jsonTask struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"`
	Project      string `json:"project"`
	ProjectID    int64  `json:"project_id"`
	Name         string `json:"name"`
	Hours        int    `json:"hours"`
	Minutes      int    `json:"minutes"`
	TotalMinutes int    `json:"total_minutes"`
	Duration     string `json:"duration"`
	Notes        string `json:"notes,omitempty"`
}

func ToJSON(tasks []store.Task, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(tasks),
	}

	for _, t := range tasks {
		out.Tasks = append(out.Tasks, jsonTask{
			ID:           t.ID,
			Date:         t.Date,
			Project:      t.ProjectName,
			ProjectID:    t.ProjectID,
			Name:         t.Name,
			Hours:        t.Hours,
			Minutes:      t.Minutes,
			TotalMinutes: t.TotalMinutes,
			Duration:     formatMinutes(t.TotalMinutes),
			Notes:        t.Notes,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
