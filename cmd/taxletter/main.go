package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"taxletter/internal/config"
	"taxletter/internal/document"
	"taxletter/internal/export"
	"taxletter/internal/factcheck"
	"taxletter/internal/generate"
	"taxletter/internal/importer"
	"taxletter/internal/server"
	"taxletter/internal/sources"
	"taxletter/internal/store"
	doctemplate "taxletter/internal/template"
	"taxletter/internal/validate"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "taxletter",
	Short:   "Editor für kommunale Steuer-Newsletter",
	Long:    "taxletter rendert Dokumentvorlagen, prüft Entwürfe und exportiert Newsletter für die kommunale Steuerverwaltung.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(factcheckCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("taxletter", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/taxletter/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to configure feeds, the generation service, and template directories.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show draft and template status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		registry, err := buildRegistry()
		if err != nil {
			return err
		}

		fmt.Printf("Database: %s\n\n", db.Path())
		fmt.Printf("Templates: %d\n", len(registry.All()))
		for _, def := range registry.All() {
			fmt.Printf("  %s %s\n", def.Icon, def.ID)
		}

		draft, ok, err := db.LoadDraft()
		if err != nil {
			return err
		}
		fmt.Println("\nDraft:")
		if !ok {
			fmt.Println("  none")
			return nil
		}
		fmt.Printf("  Type: %s\n", draft.DocumentType)
		fmt.Printf("  Size: %d bytes\n", len(draft.Content))
		fmt.Printf("  Updated: %s\n", draft.UpdatedAt)
		return nil
	},
}

// --- templates command ---

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List available document templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := buildRegistry()
		if err != nil {
			return err
		}

		fmt.Println("Vorlagen:")
		fmt.Println()
		for _, def := range registry.All() {
			fmt.Printf("  %s %-22s %s\n", def.Icon, def.ID, def.Name)
			fmt.Printf("     %s\n", def.Description)
		}
		return nil
	},
}

var templatesShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show the fields of a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := buildRegistry()
		if err != nil {
			return err
		}

		fields, ok := registry.Fields(args[0])
		if !ok {
			return unknownTemplateError(registry, args[0])
		}

		fmt.Printf("Felder von %s:\n\n", args[0])
		for _, f := range fields {
			mark := " "
			if f.Required {
				mark = "*"
			}
			fmt.Printf("  %s %-22s %s (%s)\n", mark, f.Name, f.Label, f.Type)
			for _, o := range f.Options {
				fmt.Printf("      - %s: %s\n", o.Value, o.Text)
			}
		}
		return nil
	},
}

func init() {
	templatesCmd.AddCommand(templatesShowCmd)
}

// --- render command ---

var (
	renderDataPath string
	renderSet      []string
	renderOut      string
)

var renderCmd = &cobra.Command{
	Use:   "render [template-id]",
	Short: "Render a template with field values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := buildRegistry()
		if err != nil {
			return err
		}

		values, err := loadValues(renderDataPath, renderSet)
		if err != nil {
			return err
		}

		result := registry.Validate(args[0], values)
		if !result.Valid {
			for _, msg := range result.Errors {
				fmt.Fprintf(os.Stderr, "  %s\n", msg)
			}
			if _, ok := registry.Get(args[0]); !ok {
				return unknownTemplateError(registry, args[0])
			}
			return fmt.Errorf("%d Pflichtfelder fehlen", len(result.Errors))
		}

		html, err := registry.Render(args[0], values)
		if err != nil {
			return unknownTemplateError(registry, args[0])
		}

		if renderOut != "" {
			if err := os.WriteFile(renderOut, []byte(html), 0o644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			fmt.Printf("Wrote %s\n", renderOut)
			return nil
		}
		fmt.Println(html)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderDataPath, "data", "d", "", "JSON file with field values")
	renderCmd.Flags().StringArrayVar(&renderSet, "set", nil, "Field value as key=value (repeatable)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Write output to file instead of stdout")
}

// loadValues merges a JSON value file with --set overrides.
func loadValues(path string, set []string) (map[string]string, error) {
	values := map[string]string{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading data file: %w", err)
		}
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("parsing data file: %w", err)
		}
	}
	for _, kv := range set {
		key, value, found := strings.Cut(kv, "=")
		if !found {
			return nil, fmt.Errorf("invalid --set value %q, expected key=value", kv)
		}
		values[key] = value
	}
	return values, nil
}

func unknownTemplateError(registry *doctemplate.Registry, id string) error {
	suggestions := registry.Suggest(id)
	if len(suggestions) == 0 {
		return fmt.Errorf("template %q not found", id)
	}
	return fmt.Errorf("template %q not found, did you mean: %s", id, strings.Join(suggestions, ", "))
}

// --- validate command ---

var validateVersion string

var validateCmd = &cobra.Command{
	Use:   "validate [document.json]",
	Short: "Run the editorial checks on a document file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading document: %w", err)
		}
		var doc document.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing document: %w", err)
		}

		validator := validate.New()
		if cfg.Validation.MinContentLength > 0 {
			validator.MinContentLength = cfg.Validation.MinContentLength
		}

		issues := validator.Run(&doc, validateVersion)
		if len(issues) == 0 {
			fmt.Println("Keine Probleme gefunden.")
			return nil
		}

		for _, issue := range issues {
			fmt.Printf("  [%s] %s\n", issue.Severity, issue.Message)
		}
		summary := validate.Summarize(issues)
		fmt.Printf("\n%d Fehler, %d Warnungen, %d Hinweise\n", summary.Errors, summary.Warnings, summary.Infos)
		if summary.Errors > 0 {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateVersion, "version-name", document.VersionKompakt, "Document version to check (kompakt or detail)")
}

// --- factcheck command ---

var factcheckScope string

var factcheckCmd = &cobra.Command{
	Use:   "factcheck [file]",
	Short: "Extract claims from a text file and run the mock verification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}

		checker := newChecker()
		result, err := checker.Check(context.Background(), factcheckScope, string(data))
		if err != nil {
			return err
		}

		fmt.Printf("Prüfung (%s), Gesamtwertung %.0f%%\n\n", result.Scope, result.OverallScore*100)
		for _, claim := range result.Claims {
			fmt.Printf("  [%s] %.0f%% %s\n", claim.Status, claim.Confidence*100, claim.Statement)
		}
		fmt.Println("\nEmpfehlungen:")
		for _, rec := range result.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}
		return nil
	},
}

func init() {
	factcheckCmd.Flags().StringVar(&factcheckScope, "scope", document.VersionKompakt, "Scope label for the check")
}

// --- export command ---

var (
	exportFormat string
	exportTitle  string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export document content to html, markdown, json or markup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}

		now := time.Now()
		var file *export.File
		switch export.Format(exportFormat) {
		case export.FormatHTML:
			file, err = export.HTML(exportTitle, string(data), now)
		case export.FormatMarkdown:
			file = export.Markdown(string(data), now)
		case export.FormatJSON:
			file, err = export.JSON(json.RawMessage(data), now)
		case export.FormatMarkup:
			file = export.Markup(exportTitle, string(data), now)
		case export.FormatPDF:
			return fmt.Errorf("PDF-Export wird später verfügbar sein")
		default:
			return fmt.Errorf("unknown format %q", exportFormat)
		}
		if err != nil {
			return err
		}

		target := exportOut
		if target == "" {
			target = file.Name
		}
		if err := os.WriteFile(target, file.Content, 0o644); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		fmt.Printf("Wrote %s (%d bytes)\n", target, len(file.Content))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "html", "Export format: html, markdown, json, markup")
	exportCmd.Flags().StringVarP(&exportTitle, "title", "t", "Steuer-Newsletter", "Document title")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (defaults to a stamped name)")
}

// --- import command ---

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a file as the current draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}

		result, err := importer.Import(args[0], data)
		if err != nil {
			return err
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.SaveDraft(result.Content, string(document.TypeNewsletter)); err != nil {
			return err
		}
		fmt.Printf("Imported %s as %s draft (%d bytes)\n", args[0], result.Kind, len(result.Content))
		return nil
	},
}

// --- generate command ---

var (
	generateType     string
	generateTemplate string
)

var generateCmd = &cobra.Command{
	Use:   "generate [data.json]",
	Short: "Call the generation service with a data file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading data file: %w", err)
		}
		var data map[string]any
		if err := json.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("parsing data file: %w", err)
		}

		client := newGenerator()
		html, err := client.Generate(context.Background(), generateType, generate.Request{
			Data:     data,
			Template: generateTemplate,
		})
		if err != nil {
			return err
		}
		fmt.Println(html)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateType, "type", string(document.TypeNewsletter), "Document type: newsletter or internal")
	generateCmd.Flags().StringVar(&generateTemplate, "template", "", "Template id to pass to the service")
}

// --- sources command ---

var sourcesLimit int

var sourcesCmd = &cobra.Command{
	Use:   "sources [query]",
	Short: "Suggest citations from the configured publisher feeds",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fetcher := newSourceFetcher()
		suggestions := fetcher.Suggest(context.Background(), strings.Join(args, " "), sourcesLimit)
		if len(suggestions) == 0 {
			fmt.Println("Keine passenden Einträge gefunden.")
			return nil
		}

		for _, s := range suggestions {
			date := ""
			if !s.Published.IsZero() {
				date = s.Published.Format("02.01.2006")
			}
			fmt.Printf("  [%s] %s %s\n      %s\n", s.Feed, date, s.Title, s.Link)
		}
		return nil
	},
}

func init() {
	sourcesCmd.Flags().IntVarP(&sourcesLimit, "limit", "n", 10, "Maximum number of suggestions")
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local editor server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		registry, err := buildRegistry()
		if err != nil {
			return err
		}

		validator := validate.New()
		if cfg.Validation.MinContentLength > 0 {
			validator.MinContentLength = cfg.Validation.MinContentLength
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(server.Deps{
			Store:     db,
			Registry:  registry,
			Validator: validator,
			Checker:   newChecker(),
			Slots:     factcheck.NewSlots(time.Duration(cfg.FactCheck.CacheTTLMin) * time.Minute),
			Generator: newGenerator(),
			Sources:   newSourceFetcher(),
		}, port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (defaults to config)")
}

// --- shared helpers ---

func openStore() (*store.DB, error) {
	return store.Open(cfg.DatabasePath())
}

// buildRegistry loads the built-in templates plus any YAML definitions from
// the configured template directory.
func buildRegistry() (*doctemplate.Registry, error) {
	registry := doctemplate.NewRegistry()
	if cfg.Templates.Dir == "" {
		return registry, nil
	}

	entries, err := os.ReadDir(cfg.Templates.Dir)
	if err != nil {
		return nil, fmt.Errorf("reading template directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		def, err := doctemplate.LoadFile(filepath.Join(cfg.Templates.Dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("loading template %s: %w", entry.Name(), err)
		}
		if err := registry.Register(def); err != nil {
			return nil, fmt.Errorf("registering template %s: %w", entry.Name(), err)
		}
	}
	return registry, nil
}

func newChecker() factcheck.Checker {
	seed := cfg.FactCheck.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	checker := factcheck.NewMockChecker(seed)
	checker.Delay = time.Duration(cfg.FactCheck.DelayMS) * time.Millisecond
	return checker
}

func newGenerator() *generate.Client {
	client := generate.NewClient(cfg.Generation.BaseURL)
	client.Endpoints[string(document.TypeNewsletter)] = cfg.Generation.NewsletterPath
	client.Endpoints[string(document.TypeInternal)] = cfg.Generation.InternalPath
	return client
}

func newSourceFetcher() *sources.Fetcher {
	feeds := make([]sources.Feed, 0, len(cfg.Sources.Feeds))
	for _, f := range cfg.Sources.Feeds {
		feeds = append(feeds, sources.Feed{Name: f.Name, URL: f.URL})
	}
	return sources.NewFetcher(feeds)
}
