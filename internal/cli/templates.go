package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/reteki/outreach/internal/config"
	"github.com/reteki/outreach/internal/outreach"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect and reset per-role prompt templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List roles and whether their templates are customized",
	Args:  cobra.NoArgs,
	RunE:  runTemplatesList,
}

var templatesShowChannel string

var templatesShowCmd = &cobra.Command{
	Use:   "show <role>",
	Short: "Print the effective template for a role",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplatesShow,
}

var templatesResetAll bool

var templatesResetCmd = &cobra.Command{
	Use:   "reset [role]",
	Short: "Restore the default template for a role (or --all)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTemplatesReset,
}

func init() {
	templatesShowCmd.Flags().StringVarP(&templatesShowChannel, "channel", "c", "", "Only print the template for this channel")
	templatesResetCmd.Flags().BoolVar(&templatesResetAll, "all", false, "Reset every role")

	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesShowCmd)
	templatesCmd.AddCommand(templatesResetCmd)
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	tmpl := loadTemplates(db)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "ROLE\tNAME\tCUSTOMIZED")
	for _, t := range tmpl.All() {
		custom := "no"
		if t != tmpl.Default(t.Role) {
			custom = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Role, t.DisplayName, custom)
	}
	return tw.Flush()
}

func runTemplatesShow(cmd *cobra.Command, args []string) error {
	role, err := outreach.ParseRole(args[0])
	if err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	t := loadTemplates(db).Get(role)

	out := cmd.OutOrStdout()
	if templatesShowChannel != "" {
		channel, err := outreach.ParseChannel(templatesShowChannel)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, t.For(channel))
		return nil
	}

	fmt.Fprintf(out, "## %s (%s)\n\n%s\n\n", t.DisplayName, t.Role, t.Description)
	fmt.Fprintf(out, "### %s\n\n%s\n\n", outreach.ChannelNetworkMessage, t.NetworkMessageTemplate)
	fmt.Fprintf(out, "### %s\n\n%s\n", outreach.ChannelEmail, t.EmailTemplate)
	return nil
}

func runTemplatesReset(cmd *cobra.Command, args []string) error {
	if templatesResetAll == (len(args) == 1) {
		return fmt.Errorf("give a role or --all")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	tmpl := loadTemplates(db)

	if templatesResetAll {
		if err := tmpl.ResetAll(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "all templates reset")
		return nil
	}

	role, err := outreach.ParseRole(args[0])
	if err != nil {
		return err
	}
	if _, err := tmpl.Reset(role); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s reset\n", role)
	return nil
}
