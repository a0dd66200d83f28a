package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/grans-labs/grans-cli/internal/core/domain"
)

var (
	browsePeopleCompany string
	browseEventCalendar string
	browseEventDates    dateFlags
	browseTemplateCat   string
	browseRecipeVis     string
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse people, calendars, events, templates and recipes",
}

var browsePeopleCmd = &cobra.Command{
	Use:   "people",
	Short: "Browse the people directory",
}

var browsePeopleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List people",
	Args:  cobra.NoArgs,
	RunE:  runBrowsePeopleList,
}

var browsePeopleFindCmd = &cobra.Command{
	Use:   "find [query]",
	Short: "Find people by name or email",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrowsePeopleFind,
}

var browseCalendarsCmd = &cobra.Command{
	Use:   "calendars",
	Short: "Browse synced calendars",
}

var browseCalendarsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List calendars",
	Args:  cobra.NoArgs,
	RunE:  runBrowseCalendarsList,
}

var browseEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Browse calendar events",
}

var browseEventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events, newest first",
	Args:  cobra.NoArgs,
	RunE:  runBrowseEventsList,
}

var browseTemplatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Browse panel templates",
}

var browseTemplatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates",
	Args:  cobra.NoArgs,
	RunE:  runBrowseTemplatesList,
}

var browseTemplatesShowCmd = &cobra.Command{
	Use:   "show [query]",
	Short: "Show a template by id or title",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrowseTemplatesShow,
}

var browseRecipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Browse recipes",
}

var browseRecipesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipes",
	Args:  cobra.NoArgs,
	RunE:  runBrowseRecipesList,
}

var browseRecipesShowCmd = &cobra.Command{
	Use:   "show [query]",
	Short: "Show a recipe by id or slug",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrowseRecipesShow,
}

func init() {
	browsePeopleListCmd.Flags().StringVar(&browsePeopleCompany, "company", "", "filter by company substring")
	browseEventsListCmd.Flags().StringVar(&browseEventCalendar, "calendar", "", "filter by calendar id substring")
	browseEventDates.register(browseEventsListCmd.Flags())
	browseTemplatesListCmd.Flags().StringVar(&browseTemplateCat, "category", "", "filter by exact category")
	browseRecipesListCmd.Flags().StringVar(&browseRecipeVis, "visibility", "", "filter by visibility (public or private)")

	browsePeopleCmd.AddCommand(browsePeopleListCmd)
	browsePeopleCmd.AddCommand(browsePeopleFindCmd)
	browseCalendarsCmd.AddCommand(browseCalendarsListCmd)
	browseEventsCmd.AddCommand(browseEventsListCmd)
	browseTemplatesCmd.AddCommand(browseTemplatesListCmd)
	browseTemplatesCmd.AddCommand(browseTemplatesShowCmd)
	browseRecipesCmd.AddCommand(browseRecipesListCmd)
	browseRecipesCmd.AddCommand(browseRecipesShowCmd)

	browseCmd.AddCommand(browsePeopleCmd)
	browseCmd.AddCommand(browseCalendarsCmd)
	browseCmd.AddCommand(browseEventsCmd)
	browseCmd.AddCommand(browseTemplatesCmd)
	browseCmd.AddCommand(browseRecipesCmd)
	rootCmd.AddCommand(browseCmd)
}

func runBrowsePeopleList(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	people, err := browseService.ListPeople(context.Background(), browsePeopleCompany)
	if err != nil {
		return fmt.Errorf("listing people: %w", err)
	}
	return printPeople(cmd, people)
}

func runBrowsePeopleFind(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	people, err := browseService.FindPeople(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("finding people: %w", err)
	}
	return printPeople(cmd, people)
}

func printPeople(cmd *cobra.Command, people []domain.Person) error {
	if flagJSON {
		return outputJSON(cmd, people)
	}

	if len(people) == 0 {
		cmd.Println("No people found.")
		return nil
	}
	for i := range people {
		line := styled(titleStyle, people[i].Name)
		if people[i].Email != "" {
			line += "  <" + people[i].Email + ">"
		}
		cmd.Println(line)
		if people[i].CompanyName != "" || people[i].JobTitle != "" {
			cmd.Printf("  %s\n", styled(dimStyle, joinNonEmpty(people[i].JobTitle, people[i].CompanyName)))
		}
	}
	return nil
}

func runBrowseCalendarsList(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	calendars, err := browseService.ListCalendars(context.Background())
	if err != nil {
		return fmt.Errorf("listing calendars: %w", err)
	}

	if flagJSON {
		return outputJSON(cmd, calendars)
	}

	if len(calendars) == 0 {
		cmd.Println("No calendars found.")
		return nil
	}
	for i := range calendars {
		marker := ""
		if calendars[i].Primary != nil && *calendars[i].Primary {
			marker = "  " + styled(labelStyle, "(primary)")
		}
		cmd.Printf("%s  %s%s\n",
			styled(titleStyle, calendars[i].Summary),
			styled(dimStyle, calendars[i].ID),
			marker)
	}
	return nil
}

func runBrowseEventsList(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	rng, err := browseEventDates.buildRange(time.Now(), userLocation)
	if err != nil {
		return err
	}

	events, err := browseService.ListEvents(context.Background(), browseEventCalendar, rng)
	if err != nil {
		return fmt.Errorf("listing events: %w", err)
	}

	if flagJSON {
		return outputJSON(cmd, events)
	}

	if len(events) == 0 {
		cmd.Println("No events found.")
		return nil
	}
	for i := range events {
		cmd.Printf("%s  %s\n",
			styled(dimStyle, formatDate(events[i].StartTime)),
			styled(titleStyle, events[i].Summary))
	}
	return nil
}

func runBrowseTemplatesList(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	templates, err := browseService.ListTemplates(context.Background(), browseTemplateCat)
	if err != nil {
		return fmt.Errorf("listing templates: %w", err)
	}

	if flagJSON {
		return outputJSON(cmd, templates)
	}

	if len(templates) == 0 {
		cmd.Println("No templates found.")
		return nil
	}
	for i := range templates {
		cmd.Printf("%s  %s\n",
			styled(titleStyle, templates[i].Title),
			styled(dimStyle, templates[i].Category))
	}
	return nil
}

func runBrowseTemplatesShow(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	tmpl, err := browseService.ShowTemplate(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("showing template %q: %w", args[0], err)
	}

	if flagJSON {
		return outputJSON(cmd, tmpl)
	}

	cmd.Println(styled(titleStyle, tmpl.Title))
	if tmpl.Category != "" {
		cmd.Printf("%s %s\n", styled(labelStyle, "Category:"), tmpl.Category)
	}
	if tmpl.Description != "" {
		cmd.Println(tmpl.Description)
	}
	for _, section := range tmpl.Sections {
		if section.Title != nil {
			cmd.Printf("  %s\n", styled(titleStyle, *section.Title))
		}
		if section.Description != "" {
			cmd.Printf("    %s\n", section.Description)
		}
	}
	return nil
}

func runBrowseRecipesList(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	recipes, err := browseService.ListRecipes(context.Background(), browseRecipeVis)
	if err != nil {
		return fmt.Errorf("listing recipes: %w", err)
	}

	if flagJSON {
		return outputJSON(cmd, recipes)
	}

	if len(recipes) == 0 {
		cmd.Println("No recipes found.")
		return nil
	}
	for i := range recipes {
		cmd.Printf("%s  %s\n",
			styled(titleStyle, recipes[i].Slug),
			styled(dimStyle, recipes[i].Visibility))
	}
	return nil
}

func runBrowseRecipesShow(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	recipe, err := browseService.ShowRecipe(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("showing recipe %q: %w", args[0], err)
	}

	if flagJSON {
		return outputJSON(cmd, recipe)
	}

	cmd.Println(styled(titleStyle, recipe.Slug))
	if recipe.CreatorName != "" {
		cmd.Printf("%s %s\n", styled(labelStyle, "Creator:"), recipe.CreatorName)
	}
	if recipe.Config != nil {
		if recipe.Config.Description != "" {
			cmd.Println(recipe.Config.Description)
		}
		if recipe.Config.Instructions != "" {
			cmd.Println()
			cmd.Println(recipe.Config.Instructions)
		}
	}
	return nil
}

// joinNonEmpty joins the non-empty parts with a comma.
func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}
