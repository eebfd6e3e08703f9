package config

import (
	"fmt"
	"net"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/inarow/internal/apperror"
	"github.com/rocketscienceinc/inarow/internal/entity"
)

// MaxSearchCells bounds the board size a bot may play on; the search is exhaustive.
// Nine cells keeps the opening move to a few seconds; twelve took minutes.
const MaxSearchCells = 9

type Config struct {
	LogLevel          string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	Board             Board    `yaml:"board"`
	Players           []Player `yaml:"players" validate:"len=2,unique=ID,dive"`
	Color             bool     `yaml:"color" env:"COLOR"`
	Redis             Redis    `yaml:"redis"`
	SQLiteStoragePath string   `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH"`
	ResumeGameID      string   `yaml:"resume-game-id" env:"RESUME_GAME_ID"`
	HistorySize       int      `yaml:"history-size" env:"HISTORY_SIZE" env-default:"5" validate:"gte=0"`
}

type Board struct {
	Rows      int `yaml:"rows" env:"BOARD_ROWS" env-default:"3" validate:"gt=0"`
	Columns   int `yaml:"columns" env:"BOARD_COLUMNS" env-default:"3" validate:"gt=0"`
	WinLength int `yaml:"win-length" env:"BOARD_WIN_LENGTH" env-default:"3" validate:"gt=0"`
}

type Player struct {
	ID   int    `yaml:"id"`
	Kind string `yaml:"kind" validate:"oneof=human bot"`
}

type Redis struct {
	Enabled     bool          `yaml:"enabled" env:"REDIS_ENABLED"`
	Host        string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port        string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB          int           `yaml:"db" env:"REDIS_DB" validate:"gte=0"`
	SnapshotTTL time.Duration `yaml:"snapshot-ttl" env:"REDIS_SNAPSHOT_TTL" env-default:"24h" validate:"gte=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if err := validate.Struct(that); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidConfig, err)
	}

	for _, player := range that.Players {
		if player.Kind != entity.KindBot {
			continue
		}

		if cells := that.Board.Rows * that.Board.Columns; cells > MaxSearchCells {
			return fmt.Errorf("%w: bot cannot search a board of %d cells (max %d)",
				apperror.ErrInvalidConfig, cells, MaxSearchCells)
		}
	}

	return nil
}

// Participants returns the players in turn order.
func (that *Config) Participants() []entity.Player {
	players := make([]entity.Player, 0, len(that.Players))
	for _, player := range that.Players {
		players = append(players, entity.Player{ID: entity.ParticipantID(player.ID), Kind: player.Kind})
	}
	return players
}

// GetRedisAddr returns host:port, or "" when either part is missing.
func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}
	return net.JoinHostPort(that.Host, that.Port)
}
