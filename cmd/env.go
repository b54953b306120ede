package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/spf13/cobra"

	"github.com/yarlson/taskdesk/internal/config"
	"github.com/yarlson/taskdesk/internal/provider"
	"github.com/yarlson/taskdesk/internal/taskstore"
)

// env is what every command needs: config, logger, dataset and provider.
type env struct {
	workDir  string
	cfg      *config.Config
	log      lgr.L
	store    *taskstore.MemoryStore
	provider provider.Provider
	kind     string
}

// loadEnv resolves config and flags into an env. Logs go to logOut.
func loadEnv(cmd *cobra.Command, logOut io.Writer) (*env, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.LoadConfigWithFile(workDir, GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cfg)

	log := newLogger(logOut, cfg.Log)
	if cfg.Source != "" {
		log.Logf("[DEBUG] config loaded from %s", cfg.Source)
	}

	kind, err := provider.Resolve(flagProvider, cfg.Provider.Kind)
	if err != nil {
		return nil, err
	}

	e := &env{workDir: workDir, cfg: cfg, log: log, kind: kind}

	if kind == provider.Remote {
		client, err := provider.NewHTTPClient(cfg.Server.Remote, nil)
		if err != nil {
			return nil, err
		}
		log.Logf("[DEBUG] using remote provider at %s", cfg.Server.Remote)
		e.provider = client
		return e, nil
	}

	store, err := openStore(cfg.Dataset, log)
	if err != nil {
		return nil, err
	}
	e.store = store
	e.provider = provider.NewMock(store,
		provider.WithLatency(latency(cfg.Provider)),
		provider.WithLogger(log),
	)
	return e, nil
}

// applyFlags lets persistent flags override config values.
func applyFlags(cfg *config.Config) {
	if flagDataset != "" {
		cfg.Dataset.Path = flagDataset
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagNoLatency {
		cfg.Provider.TasksLatency = 0
		cfg.Provider.CountsLatency = 0
		cfg.Provider.UpdateLatency = 0
	}
}

func latency(p config.ProviderConfig) provider.Latency {
	return provider.Latency{
		Tasks:  p.TasksLatency,
		Counts: p.CountsLatency,
		Update: p.UpdateLatency,
	}
}

// openStore loads the dataset file, or generates one when no path is set.
func openStore(ds config.DatasetConfig, log lgr.L) (*taskstore.MemoryStore, error) {
	if ds.Path == "" {
		log.Logf("[DEBUG] generating %d tasks from seed %d", ds.SeedCount, ds.Seed)
		return taskstore.NewMemoryStore(taskstore.Generate(ds.SeedCount, ds.Seed, time.Now()))
	}

	store, err := taskstore.NewMemoryStore(nil)
	if err != nil {
		return nil, err
	}
	result, err := taskstore.ImportFromYAML(store, ds.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	for _, ie := range result.Errors {
		log.Logf("[WARN] skipped task %q: %s", ie.ID, ie.Reason)
	}
	log.Logf("[DEBUG] loaded %d tasks from %s", result.Imported, ds.Path)
	return store, nil
}

// persist writes the dataset back to its file. Generated and remote datasets
// are not written.
func (e *env) persist() error {
	if e.store == nil || e.cfg.Dataset.Path == "" {
		return nil
	}
	tasks, err := e.store.List()
	if err != nil {
		return err
	}
	if err := taskstore.WriteYAMLFile(e.cfg.Dataset.Path, tasks); err != nil {
		return err
	}
	e.log.Logf("[INFO] saved %d tasks to %s", len(tasks), e.cfg.Dataset.Path)
	return nil
}

func newLogger(w io.Writer, cfg config.LogConfig) lgr.L {
	opts := []lgr.Option{lgr.Out(w), lgr.Err(w), lgr.Msec, lgr.LevelBraces}
	if cfg.Debug() {
		opts = append(opts, lgr.Debug)
	}
	return lgr.New(opts...)
}
