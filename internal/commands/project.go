package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"storyarch/internal/models"
	"storyarch/internal/util"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long:  "Create, list, open, and delete projects",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new project",
	Long:  "Create a new project owned by the acting user",
	RunE: func(cmd *cobra.Command, args []string) error {
		creator, err := currentUser()
		if err != nil {
			return err
		}

		// Get project details from flags or prompt
		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")
		dateFlag, _ := cmd.Flags().GetString("date")
		serviceFlags, _ := cmd.Flags().GetStringArray("service")
		members, _ := cmd.Flags().GetStringSlice("member")

		scanner := bufio.NewScanner(cmd.InOrStdin())

		// If name wasn't provided via flag, prompt for it
		if name == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Project name: ")
			if scanner.Scan() {
				name = strings.TrimSpace(scanner.Text())
			}

			if name == "" {
				return fmt.Errorf("project name is required")
			}
		}

		date, err := util.ParseDate(dateFlag, time.Now())
		if err != nil {
			return err
		}

		services, err := parseServices(serviceFlags)
		if err != nil {
			return err
		}

		if len(members) == 0 {
			members = nil
		}

		registry, err := openRegistry()
		if err != nil {
			return err
		}

		id, err := registry.CreateProject(name, description, creator, date, services, members)
		if err != nil {
			return fmt.Errorf("error creating project: %w", err)
		}

		if _, err := registry.SaveSnapshot(); err != nil {
			return fmt.Errorf("error saving projects: %w", err)
		}

		out := cmd.OutOrStdout()
		successColor.Fprintln(out, "Project created successfully!")
		fmt.Fprintf(out, "ID: %s\n", util.FormatID(id))
		fmt.Fprintf(out, "Name: %s\n", strings.ToLower(name))

		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects by creator",
	Long:  "List all projects created by a user (the acting user by default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		creator, _ := cmd.Flags().GetString("creator")
		if creator == "" {
			var err error
			if creator, err = currentUser(); err != nil {
				return err
			}
		}

		registry, err := openRegistry()
		if err != nil {
			return err
		}

		projects := registry.ProjectsByCreator(creator)
		if len(projects) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No projects found for %s. Create one with 'storyarch project create'\n", creator)
			return nil
		}

		printProjectList(cmd.OutOrStdout(), "Projects", projects)
		return nil
	},
}

var projectSharedCmd = &cobra.Command{
	Use:   "shared",
	Short: "List projects shared with you",
	Long:  "List all projects where the acting user is a team member",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := currentUser()
		if err != nil {
			return err
		}

		registry, err := openRegistry()
		if err != nil {
			return err
		}

		projects := registry.SharedProjects(user)
		if len(projects) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No projects are shared with %s\n", user)
			return nil
		}

		printProjectList(cmd.OutOrStdout(), "Shared projects", projects)
		return nil
	},
}

var projectOpenCmd = &cobra.Command{
	Use:   "open [project_id]",
	Short: "Open a project",
	Long:  "Show a project you created or that is shared with you",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := currentUser()
		if err != nil {
			return err
		}

		registry, err := openRegistry()
		if err != nil {
			return err
		}

		opened, err := registry.OpenProject(args[0], user)
		if err != nil {
			return fmt.Errorf("error opening project: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, p := range opened {
			headerColor.Fprintf(out, "Project Details:\n\n")
			printProject(out, p)
		}
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete [project_id]",
	Short: "Delete project",
	Long:  "Delete a project you created",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID := args[0]

		user, err := currentUser()
		if err != nil {
			return err
		}

		registry, err := openRegistry()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		// Confirm deletion
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			warnColor.Fprintf(out, "Are you sure you want to delete project %s? (y/n): ", projectID)
			scanner := bufio.NewScanner(cmd.InOrStdin())
			confirmation := ""
			if scanner.Scan() {
				confirmation = strings.TrimSpace(scanner.Text())
			}
			if confirmation != "y" && confirmation != "Y" {
				fmt.Fprintln(out, "Project deletion cancelled.")
				return nil
			}
		}

		if err := registry.DeleteProject(projectID, user); err != nil {
			return fmt.Errorf("error deleting project: %w", err)
		}

		if _, err := registry.SaveSnapshot(); err != nil {
			return fmt.Errorf("error saving projects: %w", err)
		}

		successColor.Fprintln(out, "Project deleted successfully!")
		return nil
	},
}

// parseServices turns repeated key=value flags into illustration services.
// No flags gives an empty, non-nil set.
func parseServices(values []string) (models.IllustrationServices, error) {
	services := make(models.IllustrationServices, len(values))
	for _, v := range values {
		key, value, ok := strings.Cut(v, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid service %q, expected key=value", v)
		}
		services[key] = value
	}
	return services, nil
}

func printProjectList(out io.Writer, title string, projects map[int]*models.Project) {
	headerColor.Fprintf(out, "%s:\n\n", title)
	for i, p := range util.SortedProjects(projects) {
		fmt.Fprintf(out, "%d. %s (ID: %s)\n", i+1, p.Name, util.FormatID(p.ID))
		fmt.Fprintf(out, "   Creator: %s\n", p.Creator)
		fmt.Fprintf(out, "   Created: %s\n", p.CreatedDate.Format(util.DateLayout))
		fmt.Fprintln(out)
	}
}

func printProject(out io.Writer, p *models.Project) {
	fmt.Fprintf(out, "ID: %s\n", util.FormatID(p.ID))
	fmt.Fprintf(out, "Name: %s\n", p.Name)
	fmt.Fprintf(out, "Description: %s\n", p.Description)
	fmt.Fprintf(out, "Creator: %s\n", p.Creator)
	fmt.Fprintf(out, "Created: %s\n", p.CreatedDate.Format(util.DateLayout))
	fmt.Fprintf(out, "Illustration services: %s\n", util.FormatServices(p.IllustrationServices))
	fmt.Fprintf(out, "Team: %s\n", util.FormatMembers(p.TeamMembers))
}

func init() {
	rootCmd.AddCommand(projectCmd)

	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectSharedCmd)
	projectCmd.AddCommand(projectOpenCmd)
	projectCmd.AddCommand(projectDeleteCmd)

	projectCreateCmd.Flags().String("name", "", "Project name")
	projectCreateCmd.Flags().String("description", "", "Project description")
	projectCreateCmd.Flags().String("date", "", "Project date as YYYY-MM-DD (default today)")
	projectCreateCmd.Flags().StringArray("service", nil, "Illustration service setting as key=value (repeatable)")
	projectCreateCmd.Flags().StringSlice("member", nil, "Team member to share the project with (repeatable)")

	projectListCmd.Flags().String("creator", "", "List projects of this creator instead of the acting user")

	projectDeleteCmd.Flags().Bool("force", false, "Force deletion without confirmation")
}
