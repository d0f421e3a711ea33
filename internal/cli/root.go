package cli

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"os"

	"github.com/martijn/skyboard/internal/adapter/openweather"
	"github.com/martijn/skyboard/internal/core/repository"
	"github.com/martijn/skyboard/internal/core/service"
	"github.com/martijn/skyboard/internal/infrastructure/sqlite"
	"github.com/martijn/skyboard/internal/logging"
	"github.com/martijn/skyboard/pkg/config"
	"github.com/spf13/cobra"
)

const sessionSecretBytes = 32

var (
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "skyboard",
	Short: "Skyboard - personal weather dashboard",
	Long: `Skyboard is a small personal weather dashboard.

It provides:
- User registration and session-based login
- A per-user default city
- Current conditions and 5-day forecasts from OpenWeatherMap`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err = logging.Init(os.Stderr, cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML, optional)")
}

// initServices initializes all services
func initServices(ctx context.Context) (*Services, error) {
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	userRepo := sqlite.NewUserRepository(db)
	sessionRepo := sqlite.NewSessionRepository(db)

	secret, err := sessionSecret(cfg.SessionSecret)
	if err != nil {
		db.Close()
		return nil, err
	}

	weatherClient := openweather.NewClient(
		cfg.OpenWeatherBaseURL,
		cfg.OpenWeatherAPIKey,
		cfg.OpenWeatherUnits,
		cfg.OpenWeatherTimeout,
	)

	authService := service.NewAuthService(userRepo, sessionRepo, secret, cfg.SessionTTL)
	userService := service.NewUserService(userRepo)
	weatherService := service.NewWeatherService(weatherClient, logger)

	return &Services{
		DB:             db,
		UserRepo:       userRepo,
		AuthService:    authService,
		UserService:    userService,
		WeatherService: weatherService,
	}, nil
}

// sessionSecret returns the configured secret, or a random one that lives
// as long as the process (sessions do not survive a restart).
func sessionSecret(configured string) ([]byte, error) {
	if configured != "" {
		return []byte(configured), nil
	}

	secret := make([]byte, sessionSecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate session secret: %w", err)
	}
	return secret, nil
}

// Services holds all initialized services
type Services struct {
	DB             *sqlite.DB
	UserRepo       repository.UserRepository
	AuthService    *service.AuthService
	UserService    *service.UserService
	WeatherService *service.WeatherService
}

// Close closes all resources
func (s *Services) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}
