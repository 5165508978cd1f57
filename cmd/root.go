package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"docwriter/internal/config"
	"docwriter/internal/editor"
	"docwriter/internal/generator"
	"docwriter/internal/llm"
	"docwriter/internal/locator"
	"docwriter/internal/mcp"
	"docwriter/internal/parser"
	"docwriter/internal/state"
	"docwriter/internal/style"
	"docwriter/internal/updater"
	"docwriter/internal/usage"
)

// Version info, set by main from ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "docwriter",
	Short: "AI documentation comment generator for source code",
	Long:  "A CLI tool that locates functions in source files and generates documentation comments for them using an LLM",
}

var functionCmd = &cobra.Command{
	Use:   "function",
	Short: "Document the function at a given line of a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv(cmd, false)
		if err != nil {
			return err
		}

		file, _ := cmd.Flags().GetString("file")
		line, _ := cmd.Flags().GetInt("line")

		doc, err := editor.LoadDocument(file)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result, err := env.gen.ForFunction(ctx, doc, line, locator.DetectLanguage(file))
		if err != nil {
			return reportError(err)
		}
		return emit(cmd, doc, result.InsertionLine, result.Text, result.SourceName)
	},
}

var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "Document every undocumented function in a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv(cmd, false)
		if err != nil {
			return err
		}

		file, _ := cmd.Flags().GetString("file")
		doc, err := editor.LoadDocument(file)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		results, err := env.gen.ForFile(ctx, doc, locator.DetectLanguage(file))
		if err != nil {
			return reportError(err)
		}
		if len(results) == 0 {
			fmt.Println("✓ Nothing to do: every function is already documented")
			return nil
		}

		write, _ := cmd.Flags().GetBool("write")
		if write {
			doc.ApplyResults(results)
			if err := doc.Save(); err != nil {
				return err
			}
			fmt.Printf("✓ Documented %d functions in %s\n", len(results), file)
			return nil
		}
		for _, r := range results {
			fmt.Printf("--- %s (line %d) ---\n%s\n", r.SourceName, r.InsertionLine, r.Text)
		}
		return nil
	},
}

var selectionCmd = &cobra.Command{
	Use:   "selection",
	Short: "Document an explicit line range of a file verbatim",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv(cmd, false)
		if err != nil {
			return err
		}

		file, _ := cmd.Flags().GetString("file")
		start, _ := cmd.Flags().GetInt("start")
		end, _ := cmd.Flags().GetInt("end")

		// Without --file the selection is read whole from stdin.
		var doc *editor.Document
		if file == "" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read selection from stdin: %w", err)
			}
			doc = editor.NewDocument("", string(data))
			start, end = 0, doc.LineCount()-1
		} else {
			var err error
			doc, err = editor.LoadDocument(file)
			if err != nil {
				return err
			}
			if start < 0 || end < start || end >= doc.LineCount() {
				return fmt.Errorf("invalid selection %d-%d for a %d-line file", start, end, doc.LineCount())
			}
		}

		var selected []string
		for i := start; i <= end; i++ {
			selected = append(selected, doc.Line(i))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		lang, _ := cmd.Flags().GetString("lang")
		result, err := env.gen.ForSelection(ctx, doc, strings.Join(selected, "\n"), start, selectionLanguage(file, lang))
		if err != nil {
			return reportError(err)
		}
		return emit(cmd, doc, result.InsertionLine, result.Text, result.SourceName)
	},
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Document every undocumented function under a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv(cmd, false)
		if err != nil {
			return err
		}

		dir, _ := cmd.Flags().GetString("dir")
		write, _ := cmd.Flags().GetBool("write")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		fmt.Printf("Documenting project at: %s\n", dir)
		perFile, err := env.gen.ForProject(ctx, dir)
		if err != nil {
			return reportError(err)
		}
		if len(perFile) == 0 {
			fmt.Println("✓ Nothing to do: every function is already documented")
			return nil
		}

		total := 0
		for _, fr := range perFile {
			total += len(fr.Results)
			if write {
				doc, err := editor.LoadDocument(fr.Path)
				if err != nil {
					fmt.Fprintf(os.Stderr, "✗ Failed to reopen %s: %v\n", fr.Path, err)
					continue
				}
				doc.ApplyResults(fr.Results)
				if err := doc.Save(); err != nil {
					fmt.Fprintf(os.Stderr, "✗ Failed to write %s: %v\n", fr.Path, err)
					continue
				}
				fmt.Printf("✓ %s: %d functions documented\n", fr.Path, len(fr.Results))
			} else {
				fmt.Printf("→ %s: %d functions would be documented\n", fr.Path, len(fr.Results))
			}
		}
		fmt.Printf("✓ Done: %d functions across %d files\n", total, len(perFile))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show today's and total usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv(cmd, true)
		if err != nil {
			return err
		}

		stats := env.tracker.Snapshot()
		fmt.Printf("Requests today: %d\n", stats.RequestsToday)
		fmt.Printf("Requests total: %d\n", stats.RequestsTotal)
		if stats.UsingSharedPool {
			fmt.Printf("Shared pool:    %d/%d used\n", stats.RequestsToday, stats.DailyLimit)
		} else {
			fmt.Println("Shared pool:    off (personal API key configured)")
		}
		return nil
	},
}

// mcpCmd is assigned in init to avoid an initialization cycle: its RunE
// calls buildEnv, which compares against mcpCmd.
var mcpCmd *cobra.Command

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the personal API key",
}

var setKeyCmd = &cobra.Command{
	Use:   "set-key [key]",
	Short: "Store a personal API key in the system keychain",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		secrets, err := openSecrets()
		if err != nil {
			return err
		}

		var key string
		if len(args) == 1 {
			key = args[0]
		} else {
			fmt.Print("API key: ")
			if _, err := fmt.Scanln(&key); err != nil {
				return fmt.Errorf("failed to read key: %w", err)
			}
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("empty API key")
		}

		if err := secrets.SetAPIKey(key); err != nil {
			return err
		}
		fmt.Println("✓ API key stored")
		return nil
	},
}

var getKeyCmd = &cobra.Command{
	Use:   "get",
	Short: "Show whether a personal API key is configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		if key := config.APIKeyFromEnv(); key != "" {
			fmt.Printf("✓ API key configured via environment (%s)\n", maskKey(key))
			return nil
		}
		secrets, err := openSecrets()
		if err != nil {
			return err
		}
		if key := secrets.APIKey(); key != "" {
			fmt.Printf("✓ API key configured (%s)\n", maskKey(key))
			return nil
		}
		fmt.Println("No API key configured, the shared pool is used")
		return nil
	},
}

var deleteKeyCmd = &cobra.Command{
	Use:   "delete-key",
	Short: "Remove the stored personal API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		secrets, err := openSecrets()
		if err != nil {
			return err
		}
		if err := secrets.DeleteAPIKey(); err != nil {
			return err
		}
		fmt.Println("✓ API key removed, shared pool will be used")
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update docwriter to the latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		u := updater.NewUpdater(Version)
		release, available, err := u.CheckForUpdate()
		if err != nil {
			return err
		}
		if !available {
			fmt.Printf("✓ Already up to date (%s)\n", Version)
			return nil
		}
		fmt.Printf("→ New version available: %s\n", release.TagName)
		if !editor.Confirm("Install now?") {
			return nil
		}
		return u.Update(release)
	},
}

// env bundles everything a command needs after configuration is resolved.
type env struct {
	gen     *generator.Generator
	tracker *usage.Tracker
}

// buildEnv loads config, opens state, resolves the credential, and wires the
// generator. statsOnly skips the style-flag validation for commands that
// never generate.
func buildEnv(cmd *cobra.Command, statsOnly bool) (*env, error) {
	// Load shared config (~/.docwriter/config.json) so settings from that
	// file are visible as env vars when running via CLI.
	if err := config.LoadFromUserConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
	}
	settings := config.LoadSettings()
	applyFlagOverrides(cmd, &settings)

	if !statsOnly && settings.Style != "" && !style.IsValid(style.Style(settings.Style)) {
		return nil, fmt.Errorf("unknown documentation style %q", settings.Style)
	}

	storePath, err := state.DefaultPath()
	if err != nil {
		return nil, err
	}
	store, err := state.Open(storePath)
	if err != nil {
		return nil, err
	}
	showFirstRunHint(store)

	apiKey := config.APIKeyFromEnv()
	if apiKey == "" {
		apiKey = state.NewSecrets(store).APIKey()
	}
	sharedPool := apiKey == ""
	if sharedPool && !settings.UseSharedPool && !statsOnly {
		return nil, fmt.Errorf("no API key configured and the shared pool is disabled: run 'docwriter config set-key'")
	}

	client := llm.NewClient(llm.Options{
		APIKey:  apiKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
	tracker := usage.NewTracker(store, sharedPool)

	var engine generator.Engine
	if precise, _ := cmd.Flags().GetBool("precise"); precise {
		engine = parser.NewEngine()
	}
	confirm := editor.Confirm
	if cmd == mcpCmd {
		confirm = func(string) bool { return true }
	}

	gen := generator.New(client, tracker, generator.Options{
		Settings: settings,
		Engine:   engine,
		Confirm:  confirm,
		Progress: editor.Progress,
		Logger:   slog.New(slog.NewTextHandler(os.Stderr, nil)),
	})
	return &env{gen: gen, tracker: tracker}, nil
}

func applyFlagOverrides(cmd *cobra.Command, settings *config.Settings) {
	if cmd.Flags().Changed("style") {
		settings.Style, _ = cmd.Flags().GetString("style")
	}
	if cmd.Flags().Changed("examples") {
		settings.IncludeExamples, _ = cmd.Flags().GetBool("examples")
	}
	if cmd.Flags().Changed("types") {
		settings.IncludeTypes, _ = cmd.Flags().GetBool("types")
	}
}

// selectionLanguage prefers an explicit --lang, then the file extension.
func selectionLanguage(file, lang string) locator.Language {
	if lang != "" {
		return locator.Language(lang)
	}
	return locator.DetectLanguage(file)
}

// maskKey keeps only the first and last four characters visible.
func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func openSecrets() (*state.Secrets, error) {
	storePath, err := state.DefaultPath()
	if err != nil {
		return nil, err
	}
	store, err := state.Open(storePath)
	if err != nil {
		return nil, err
	}
	return state.NewSecrets(store), nil
}

func showFirstRunHint(store *state.Store) {
	if store.GetBool("first_run_done", false) {
		return
	}
	fmt.Fprintln(os.Stderr, "→ First run: using the shared pool (20 requests/day).")
	fmt.Fprintln(os.Stderr, "  Set a personal API key with 'docwriter config set-key' for unlimited use.")
	_ = store.Set("first_run_done", true)
}

// emit prints a single result or applies it in place with --write.
func emit(cmd *cobra.Command, doc *editor.Document, line int, text, name string) error {
	write, _ := cmd.Flags().GetBool("write")
	if !write {
		fmt.Println(text)
		return nil
	}
	doc.InsertAbove(line, text)
	if err := doc.Save(); err != nil {
		return err
	}
	fmt.Printf("✓ Documented %s (inserted at line %d)\n", name, line)
	return nil
}

// reportError maps the error taxonomy to user-facing outcomes. Warnings and
// clean stops are printed and swallowed; real failures propagate.
func reportError(err error) error {
	switch {
	case errors.Is(err, generator.ErrNoFunction):
		fmt.Println("⚠ No function found at this position")
		return nil
	case errors.Is(err, generator.ErrDeclined):
		fmt.Println("Keeping existing documentation")
		return nil
	case errors.Is(err, context.Canceled):
		fmt.Println("Cancelled")
		return nil
	case llm.IsAuthError(err):
		return fmt.Errorf("authentication failed: configure a personal API key with 'docwriter config set-key' or DOCWRITER_API_KEY")
	case llm.IsQuotaError(err):
		return fmt.Errorf("quota exceeded: try again later or configure a personal API key with 'docwriter config set-key'")
	default:
		return err
	}
}

func addGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().String("style", "", "Documentation style override (jsdoc, tsdoc, javadoc, google, numpy, rustdoc, godoc, xmldoc, phpdoc, yard, swift)")
	cmd.Flags().Bool("examples", false, "Include a usage example in the generated comment")
	cmd.Flags().Bool("types", false, "Include type annotations in the generated comment")
	cmd.Flags().Bool("precise", false, "Use grammar-based parsing where available instead of heuristics")
	cmd.Flags().Bool("write", false, "Apply the edit in place instead of printing it")
}

func init() {
	mcpCmd = &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The connected editor confirms replacements on its side before
			// calling the tool, so the server never prompts.
			env, err := buildEnv(cmd, false)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			return mcp.NewServer(env.gen, Version).Run(ctx)
		},
	}

	functionCmd.Flags().String("file", "", "Source file to document")
	functionCmd.Flags().Int("line", 0, "Cursor line (0-indexed)")
	functionCmd.MarkFlagRequired("file")
	addGenerationFlags(functionCmd)

	fileCmd.Flags().String("file", "", "Source file to document")
	fileCmd.MarkFlagRequired("file")
	addGenerationFlags(fileCmd)

	selectionCmd.Flags().String("file", "", "Source file containing the selection (omit to read stdin)")
	selectionCmd.Flags().Int("start", 0, "First selected line (0-indexed)")
	selectionCmd.Flags().Int("end", 0, "Last selected line (0-indexed, inclusive)")
	selectionCmd.Flags().String("lang", "", "Language ID for stdin selections (e.g. javascript, python)")
	addGenerationFlags(selectionCmd)

	projectCmd.Flags().String("dir", ".", "Project root directory")
	addGenerationFlags(projectCmd)

	mcpCmd.Flags().Bool("precise", false, "Use grammar-based parsing where available instead of heuristics")

	configCmd.AddCommand(setKeyCmd)
	configCmd.AddCommand(getKeyCmd)
	configCmd.AddCommand(deleteKeyCmd)

	rootCmd.AddCommand(functionCmd)
	rootCmd.AddCommand(fileCmd)
	rootCmd.AddCommand(selectionCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(updateCmd)
}

func Execute() error {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildTime)
	return rootCmd.Execute()
}
