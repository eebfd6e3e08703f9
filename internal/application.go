package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/inarow/internal/config"
	"github.com/rocketscienceinc/inarow/internal/entity"
	"github.com/rocketscienceinc/inarow/internal/render"
	"github.com/rocketscienceinc/inarow/internal/repository"
	"github.com/rocketscienceinc/inarow/internal/repository/storage"
	"github.com/rocketscienceinc/inarow/internal/service"
	"github.com/rocketscienceinc/inarow/internal/usecase"
)

var (
	ErrAddrNotFound  = errors.New("redis address string is empty")
	ErrResumeNoRedis = errors.New("resuming a game requires redis")
	ErrUnknownPlayer = errors.New("unknown player kind")
)

// RunApp - runs one game in the terminal.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	gameRepo, closeGames, err := initGameRepository(ctx, conf)
	if err != nil {
		return err
	}
	defer closeGames(log)

	resultRepo, closeResults, err := initResultRepository(ctx, conf)
	if err != nil {
		return err
	}
	defer closeResults(log)

	output := initOutput(conf, os.Stdout)
	renderer := render.New(output)

	seats, err := initSeats(logger, conf.Participants(), os.Stdin, output, renderer)
	if err != nil {
		return err
	}

	gameManager := usecase.NewGameManager(logger, gameRepo, resultRepo)

	var (
		game    *entity.Game
		outcome entity.GameOutcome
	)

	if conf.ResumeGameID != "" {
		if !conf.Redis.Enabled {
			return ErrResumeNoRedis
		}

		log.Info("Resuming game", "game_id", conf.ResumeGameID)
		game, outcome, err = gameManager.Resume(ctx, conf.ResumeGameID, seats)
	} else {
		game, err = gameManager.NewGame(ctx, conf.Board.Rows, conf.Board.Columns, conf.Board.WinLength, participantIDs(seats))
		if err != nil {
			return fmt.Errorf("could not create game: %w", err)
		}

		outcome, err = gameManager.Play(ctx, game, seats)
	}

	if errors.Is(err, context.Canceled) {
		log.Info("Game interrupted")
		return nil
	}

	if err != nil {
		return fmt.Errorf("game failed: %w", err)
	}

	fmt.Fprintf(output, "\nFinal state:\n%s", renderer.Render(game.Board))
	printVerdict(output, outcome)

	return printHistory(ctx, output, resultRepo, conf.HistorySize)
}

func initGameRepository(ctx context.Context, conf *config.Config) (repository.GameRepository, func(*slog.Logger), error) {
	if !conf.Redis.Enabled {
		return repository.NewMemoryGameRepository(), func(*slog.Logger) {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString, conf.Redis.Password, conf.Redis.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return repository.NewGameRepository(redisStorage.Connection, conf.Redis.SnapshotTTL), func(log *slog.Logger) {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}, nil
}

func initResultRepository(ctx context.Context, conf *config.Config) (repository.ResultRepository, func(*slog.Logger), error) {
	if conf.SQLiteStoragePath == "" {
		return repository.NewDiscardResultRepository(), func(*slog.Logger) {}, nil
	}

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
	}

	if err = sqliteStorage.Init(ctx); err != nil {
		_ = sqliteStorage.Close()
		return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
	}

	return repository.NewResultRepository(sqliteStorage.Connection), func(log *slog.Logger) {
		if err := sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}, nil
}

func initOutput(conf *config.Config, w io.Writer) *termenv.Output {
	if !conf.Color {
		return termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	}

	return termenv.NewOutput(w)
}

// initSeats builds a mover per player; a bot plays against the other configured player.
// Humans share one line source so neither buffers lines typed for the other.
func initSeats(logger *slog.Logger, players []entity.Player, in io.Reader, out io.Writer, renderer *render.Renderer) ([]usecase.Seat, error) {
	seats := make([]usecase.Seat, 0, len(players))
	input := service.NewInputLines(in)

	for i, player := range players {
		var mover service.Mover

		switch player.Kind {
		case entity.KindHuman:
			mover = service.NewHumanService(logger, player.ID, input, out, renderer)
		case entity.KindBot:
			opponent := players[(i+1)%len(players)].ID
			mover = service.NewBotService(logger, player.ID, opponent)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, player.Kind)
		}

		seats = append(seats, usecase.Seat{Participant: player.ID, Mover: mover})
	}

	return seats, nil
}

func participantIDs(seats []usecase.Seat) []entity.ParticipantID {
	ids := make([]entity.ParticipantID, 0, len(seats))
	for _, seat := range seats {
		ids = append(ids, seat.Participant)
	}
	return ids
}

func printVerdict(w io.Writer, outcome entity.GameOutcome) {
	if winner, ok := outcome.Winner(); ok {
		fmt.Fprintf(w, "Congratulations, Player %d. You Win!\n", winner)
		return
	}

	fmt.Fprintln(w, "Draw! You are equally good!")
}

func printHistory(ctx context.Context, w io.Writer, resultRepo repository.ResultRepository, limit int) error {
	if limit == 0 {
		return nil
	}

	results, err := resultRepo.ListRecent(ctx, limit)
	if err != nil {
		return fmt.Errorf("could not list results: %w", err)
	}

	if len(results) == 0 {
		return nil
	}

	fmt.Fprintln(w, "\nRecent games:")
	for _, result := range results {
		if result.Winner != nil {
			fmt.Fprintf(w, "%s  %dx%d/%d  player %d won in %d moves\n", result.FinishedAt.Format("2006-01-02 15:04"),
				result.Rows, result.Columns, result.WinLength, *result.Winner, result.Moves)
			continue
		}

		fmt.Fprintf(w, "%s  %dx%d/%d  draw after %d moves\n", result.FinishedAt.Format("2006-01-02 15:04"),
			result.Rows, result.Columns, result.WinLength, result.Moves)
	}

	return nil
}
