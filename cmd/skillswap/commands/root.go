package commands

import (
	"context"
	"errors"
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Rrens/skill-swap/internal/config"
	"github.com/Rrens/skill-swap/internal/domain"
	"github.com/Rrens/skill-swap/internal/logger"
	"github.com/Rrens/skill-swap/internal/repository"
	"github.com/Rrens/skill-swap/internal/security"
	"github.com/Rrens/skill-swap/internal/service"
	"github.com/Rrens/skill-swap/internal/store"
)

var (
	verbose bool
	appCtx  *app
)

type app struct {
	cfg       *config.Config
	kv        domain.KVStore
	logs      io.Closer
	store     *store.Store
	hasher    *security.PasswordHasher
	identity  *service.IdentityService
	directory *service.DirectoryService
	requests  *service.RequestService
}

// Execute runs the CLI with os.Args
func Execute() error {
	defer closeApp()
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "skillswap",
		Short:        "Find people to trade skills with",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !verbose {
				cfg.Logging.Level = "warn"
			}

			logs, err := logger.Setup(cfg.Logging, cfg.Env)
			if err != nil {
				return err
			}

			kv, err := repository.Open(cmd.Context(), cfg)
			if err != nil {
				logs.Close()
				return err
			}

			st := store.New(kv, cfg.Storage.KeyPrefix)
			hasher := security.NewPasswordHasher(cfg.Auth.BcryptCost)
			directory := service.NewDirectoryService(st)

			appCtx = &app{
				cfg:       cfg,
				kv:        kv,
				logs:      logs,
				store:     st,
				hasher:    hasher,
				identity:  service.NewIdentityService(st, hasher),
				directory: directory,
				requests:  service.NewRequestService(st, directory),
			}

			if cfg.Seed.Enabled {
				return st.Seed(cmd.Context(), hasher.Hash)
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at the configured level instead of warn")

	root.AddCommand(
		registerCmd(),
		loginCmd(),
		logoutCmd(),
		whoamiCmd(),
		profileCmd(),
		usersCmd(),
		requestsCmd(),
		seedCmd(),
	)
	return root
}

func closeApp() {
	if appCtx == nil {
		return
	}
	_ = appCtx.kv.Close()
	_ = appCtx.logs.Close()
	appCtx = nil
}

var errNotLoggedIn = errors.New("not logged in, run `skillswap login` first")

// currentUser returns the session user or errNotLoggedIn
func currentUser(ctx context.Context) (*domain.User, error) {
	user, err := appCtx.identity.Current(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errNotLoggedIn
	}
	return user, nil
}
