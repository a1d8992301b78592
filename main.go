// Command wordle plays, solves and evaluates word-guessing puzzles.
//
//	wordle play      guess the secret yourself (default)
//	wordle solve     watch the solver guess it
//	wordle helper    get suggestions for a game played elsewhere
//	wordle evaluate  let the solver play every word and summarise
//	wordle serve     HTTP API
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/cache"
	"github.com/robalobadob/wordle/apps/go-solver/internal/config"
	"github.com/robalobadob/wordle/apps/go-solver/internal/vocab"
)

var (
	configPath string
	wordsFile  string
	cacheDir   string
	logLevel   string
	rebuild    bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:               "wordle",
	Short:             "Word-guessing puzzle with a coverage-graph solver",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "wordle.yaml", "YAML config file (optional)")
	rootCmd.PersistentFlags().StringVar(&wordsFile, "words", "", "word list, one word per line (default: embedded list)")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "cache directory (default from config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "trace|debug|info|warn|error")
	rootCmd.PersistentFlags().BoolVar(&rebuild, "rebuild", false, "ignore cached vocabulary, index and coverage")

	addSecretFlags(rootCmd)
	rootCmd.AddCommand(playCmd, solveCmd, helperCmd, evaluateCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("wordle failed")
	}
}

// setup loads configuration, applies flag overrides and configures logging.
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("words") {
		c.WordsFile = wordsFile
	}
	if flags.Changed("cache-dir") {
		c.Cache.Dir = cacheDir
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if err := c.Validate(); err != nil {
		return err
	}

	lvl, _ := zerolog.ParseLevel(c.LogLevel)
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg = c
	return nil
}

// openCache opens the configured cache backend. The returned func releases it.
func openCache() (cache.Store, func(), error) {
	switch cfg.Cache.Backend {
	case config.BackendSQLite:
		st, err := cache.OpenSQLite(cfg.SQLiteDSN())
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite cache: %w", err)
		}
		return st, func() { _ = st.Close() }, nil
	default:
		return cache.NewFileStore(cfg.CacheDir()), func() {}, nil
	}
}

// loadVocabulary builds the vocabulary through the cache.
func loadVocabulary(st cache.Store) (*vocab.Vocabulary, error) {
	return vocab.New(vocab.Options{
		Alphabet:   cfg.Alphabet,
		WordLength: cfg.WordLength,
		Source:     cfg.WordsFile,
		Cache:      st,
		Rebuild:    rebuild,
	})
}
