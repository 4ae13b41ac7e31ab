package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ilgaz/tempo/internal/config"
	"github.com/ilgaz/tempo/internal/export"
	"github.com/ilgaz/tempo/internal/store"
	"github.com/ilgaz/tempo/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "tempo",
	Short: "Terminal time tracker",
	Long:  `Tempo logs tasks against projects and shows daily, weekly and monthly totals.`,
	Run: func(cmd *cobra.Command, args []string) {
		s := mustOpen()
		defer s.Close()

		user, err := s.CurrentUser()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading session: %v\n", err)
			os.Exit(1)
		}

		app := tui.NewApp(s, user)
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export the signed-in user's task history",
	Long: `Export your task history to CSV or JSON.

Examples:
  tempo export tasks.csv
  tempo export --format json tasks.json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := mustOpen()
		defer s.Close()

		user, err := s.CurrentUser()
		if err != nil || user == nil {
			fmt.Fprintln(os.Stderr, "Nobody is signed in. Run 'tempo' and sign in first.")
			os.Exit(1)
		}

		tasks, err := s.ListTasks(user.ID, store.TaskFilter{Desc: true})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		path := args[0]
		format, _ := cmd.Flags().GetString("format")
		if format == "" {
			format = "csv"
			if strings.HasSuffix(path, ".json") {
				format = "json"
			}
		}

		switch format {
		case "csv":
			err = export.ToCSV(tasks, path)
		case "json":
			err = export.ToJSON(tasks, path)
		default:
			fmt.Fprintf(os.Stderr, "Unknown format %q (expected csv or json)\n", format)
			os.Exit(1)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported %d tasks to %s\n", len(tasks), path)
	},
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Run: func(cmd *cobra.Command, args []string) {
		s := mustOpen()
		defer s.Close()

		all, _ := cmd.Flags().GetBool("all")
		projects, err := s.ListProjects(!all)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		for _, p := range projects {
			fmt.Printf("%-4d %-28s %s\n", p.ID, p.Name, p.Status)
		}
	},
}

var projectsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := mustOpen()
		defer s.Close()

		icon, _ := cmd.Flags().GetString("icon")
		p, err := s.CreateProject(args[0], icon)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created project %q (id %d)\n", p.Name, p.ID)
	},
}

func mustOpen() *store.Store {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	dbPath, err := cfg.DBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return s
}

func init() {
	exportCmd.Flags().String("format", "", "Export format: csv or json (default from file extension)")
	projectsListCmd.Flags().Bool("all", false, "Include archived projects")
	projectsAddCmd.Flags().String("icon", "", "Icon identifier, e.g. briefcase or plane-takeoff")

	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsAddCmd)

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(projectsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
