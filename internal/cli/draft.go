package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/reteki/outreach/internal/config"
	"github.com/reteki/outreach/internal/outreach"
	"github.com/spf13/cobra"
)

// --- extract command ---

var extractFile string

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a structured profile from pasted text",
	Long:  "Read raw profile text (a pasted LinkedIn page, a bio) from --file or stdin and print the extracted profile as JSON.",
	Args:  cobra.NoArgs,
	RunE:  runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd.InOrStdin(), extractFile)
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

	eng, err := newEngine(cmd.Context(), cfg, loadTemplates(db))
	if err != nil {
		return err
	}

	profile, err := eng.Extract(cmd.Context(), string(text))
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	return printJSON(cmd.OutOrStdout(), profile)
}

// --- generate command ---

var (
	generateRole    string
	generateChannel string
	generateProfile string
	generateDryRun  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft a message for a profile",
	Long:  "Compose the role/channel prompt for a profile JSON file and ask the model for a draft. With --dry-run the composed prompt is printed and no model call is made.",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	role, err := outreach.ParseRole(generateRole)
	if err != nil {
		return err
	}
	channel, err := outreach.ParseChannel(generateChannel)
	if err != nil {
		return err
	}

	data, err := readInput(cmd.InOrStdin(), generateProfile)
	if err != nil {
		return err
	}
	var profile outreach.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return fmt.Errorf("parse profile: %w", err)
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

	out := cmd.OutOrStdout()
	if generateDryRun {
		composed := newComposer(cfg, tmpl).Compose(cmd.Context(), profile, role, channel)
		fmt.Fprintln(out, composed.Prompt)
		return nil
	}

	eng, err := newEngine(cmd.Context(), cfg, tmpl)
	if err != nil {
		return err
	}
	draft, err := eng.Draft(cmd.Context(), profile, role, channel)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if !draft.ShouldGenerate {
		fmt.Fprintln(os.Stderr, draft.Notice)
		return nil
	}
	fmt.Fprintln(out, draft.Message)
	if draft.OverBudget {
		fmt.Fprintf(os.Stderr, "warning: %d characters, budget for %s is %d\n", draft.Length, channel, draft.Budget)
	}
	return nil
}

func init() {
	extractCmd.Flags().StringVarP(&extractFile, "file", "f", "", "Read profile text from file instead of stdin")

	generateCmd.Flags().StringVarP(&generateRole, "role", "r", string(outreach.RoleOther), "Prospect role")
	generateCmd.Flags().StringVarP(&generateChannel, "channel", "c", string(outreach.ChannelNetworkMessage), "Channel: network-message or email")
	generateCmd.Flags().StringVarP(&generateProfile, "profile", "p", "", "Profile JSON file (\"-\" for stdin)")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Print the composed prompt without calling the model")
	cobra.CheckErr(generateCmd.MarkFlagRequired("profile"))
}

// readInput reads path, or stdin when path is empty or "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
