package main

import (
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/AuroraMediaLabs/pipedash/backend"
	"github.com/AuroraMediaLabs/pipedash/config"
	"github.com/AuroraMediaLabs/pipedash/logger"
	"github.com/AuroraMediaLabs/pipedash/profile"
	"github.com/AuroraMediaLabs/pipedash/profile/jsonfile"
	"github.com/AuroraMediaLabs/pipedash/profile/memory"
	"github.com/AuroraMediaLabs/pipedash/profile/redisrepo"
)

var (
	cfgPath string
	verbose bool

	cfg          *config.Config
	client       *backend.Client
	profileStore *profile.Store
)

var rootCmd = &cobra.Command{
	Use:           "pipedash",
	Short:         "Pipedash - workflow and job tooling for the augmentation backend",
	Version:       GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: false,
	Long: `Pipedash drives a multi-stage video/image augmentation backend from the
command line: browse media, manage workflow profiles, submit jobs, and follow
their progress.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			logger.SetVerbose(true)
		}
		var err error
		if cfgPath != "" {
			cfg, err = config.Load(cfgPath)
		} else {
			cfg = config.Default()
		}
		if err != nil {
			return err
		}
		if !verbose {
			logger.SetLevelName(cfg.Logging.Level)
		}

		client = backend.NewClient(cfg.Backend.BaseURL)
		repo, err := buildProfileRepository(cfg)
		if err != nil {
			return err
		}
		profileStore = profile.NewStore(repo)
		return nil
	},
}

// buildProfileRepository wires the configured profile storage backend.
func buildProfileRepository(cfg *config.Config) (profile.Repository, error) {
	switch cfg.Profiles.Storage {
	case config.StorageMemory:
		return memory.NewRepository(), nil
	case config.StorageFile:
		return jsonfile.NewRepository(cfg.Profiles.Path), nil
	case config.StorageRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Profiles.RedisAddr})
		var opts []redisrepo.Option
		if cfg.Profiles.RedisKey != "" {
			opts = append(opts, redisrepo.WithKey(cfg.Profiles.RedisKey))
		}
		return redisrepo.NewRepository(rdb, opts...), nil
	default:
		return nil, fmt.Errorf("unknown profile storage %q", cfg.Profiles.Storage)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to pipedash config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func Execute() {
	rootCmd.SetVersionTemplate(GetVersionInfo() + "\n")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
