package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"gridedit/internal/dblib"
	"gridedit/internal/grid"
)

func main() {
	err := rootCmd.Execute()
	shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridedit",
	Short: "gridedit is an editable data grid for the terminal",
	Long: `gridedit shows a small set of records (id, name, age) in a grid and lets
you select, add, edit and delete them with the keyboard or the mouse.
Records live in memory only; nothing is written back to the seed source.

Examples:
  gridedit
  gridedit --seed people.yaml
  gridedit -d people.db -t people
  gridedit -d crm -c "select id, name, age from contacts where age > 18"
  gridedit show --seed people.yaml`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runEditor,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the initial records as a table and exit",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

var (
	config     Config
	seedPath   string
	dbTypeName string
	ageUnit    string
	vimMode    bool
	logFile    string
	logLevel   string

	settings  *Settings
	logCloser io.Closer
)

func init() {
	flags := rootCmd.PersistentFlags()
	// -h is the database host
	flags.BoolP("help", "", false, "help for gridedit")
	flags.StringVar(&seedPath, "seed", "", "YAML file with the initial records")
	flags.StringVarP(&config.Database, "database", "d", "", "Database to import the initial records from")
	flags.StringVarP(&config.Host, "host", "h", "", "Database host")
	flags.StringVarP(&config.Port, "port", "p", "", "Database port")
	flags.StringVarP(&config.Username, "username", "U", "", "Database username")
	flags.StringVarP(&config.Password, "password", "W", "", "Database password")
	flags.StringVarP(&config.Table, "table", "t", "", "Table holding id, name and age columns")
	flags.StringVarP(&config.Command, "command", "c", "", "SELECT statement returning id, name and age columns")
	flags.StringVar(&dbTypeName, "type", "", "Database type: sqlite, postgres or mysql (default: detected)")
	flags.StringVar(&ageUnit, "age-unit", defaultAgeUnit, "Suffix shown after ages")
	flags.StringVar(&logFile, "log-file", "", "Write logs to this file")
	flags.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")

	rootCmd.Flags().BoolVar(&vimMode, "vim", false, "Navigate with h, j, k and l")

	rootCmd.AddCommand(showCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	closer, err := setupLogging(logFile, logLevel)
	if err != nil {
		return err
	}
	logCloser = closer

	settings, err = LoadSettings()
	if err != nil {
		logger.Warn("using default settings", "err", err)
		settings = defaultSettings()
	}
	if !settings.FirstRunComplete {
		settings.FirstRunComplete = true
		if err := SaveSettings(settings); err != nil {
			logger.Warn("could not save settings", "err", err)
		}
	}

	InitBreadcrumbs(100)
	if settings.TelemetryEnabled && settings.SentryDSN != "" {
		if err := InitSentry(settings.SentryDSN); err != nil {
			logger.Warn("telemetry disabled", "err", err)
		}
	}

	if dbTypeName != "" {
		t, err := dblib.ParseDatabaseType(dbTypeName)
		if err != nil {
			return err
		}
		config.DBTypeOverride = &t
	}
	if !config.enabled() && (config.Table != "" || config.Command != "") {
		return fmt.Errorf("--table and --command need --database")
	}
	if config.enabled() && seedPath != "" {
		return fmt.Errorf("use either --seed or --database, not both")
	}
	return nil
}

func shutdown() {
	FlushAndShutdown()
	if logCloser != nil {
		logCloser.Close()
	}
}

// columns returns the grid columns, with --age-unit overriding the saved setting.
func columns(cmd *cobra.Command) []grid.Column {
	unit := ageUnit
	if !cmd.Flags().Changed("age-unit") && settings != nil {
		unit = settings.AgeUnit
	}
	return grid.DefaultColumns(unit)
}

func title() string {
	switch {
	case config.enabled():
		name := config.Database
		if config.Table != "" {
			name += "." + config.Table
		}
		return fmt.Sprintf("%s %s", config.detectDatabaseType().Icon(), name)
	case seedPath != "":
		return filepath.Base(seedPath)
	}
	return "people"
}

func runEditor(cmd *cobra.Command, _ []string) error {
	state, err := loadInitialState(cmd.Context(), seedPath, &config)
	if err != nil {
		return err
	}

	vim := vimMode
	if !cmd.Flags().Changed("vim") && settings != nil {
		vim = settings.VimMode
	}
	logger.Info("starting editor", "records", len(state.Records), "vim", vim)

	editor := NewEditor(state, columns(cmd), EditorOptions{Title: title(), VimMode: vim})
	return editor.Run()
}

func runShow(cmd *cobra.Command, _ []string) error {
	state, err := loadInitialState(cmd.Context(), seedPath, &config)
	if err != nil {
		return err
	}
	return renderView(cmd.OutOrStdout(), grid.Project(state, columns(cmd)))
}
