package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/gildedrose/internal/domain/models"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates we do not yet support the requested command.
var ErrUnsupportedCommand = errors.New("unsupported command")

// HelpMessage lists the commands the innkeeper can send.
const HelpMessage = "Supported: /stock, /advance, /add <sell_in> <quality> <name>, /help."

// InventoryAdapter defines the stock operations required by the dispatcher.
type InventoryAdapter interface {
	Stock(ctx context.Context) (models.Stock, error)
	AdvanceDay(ctx context.Context) (models.StockReport, error)
	AddItem(ctx context.Context, name string, sellIn, quality int) (*models.Item, error)
}

// ReportingAdapter defines the formatting functions required by the dispatcher.
type ReportingAdapter interface {
	FormatStock(stock models.Stock) string
	FormatDailySummary(report models.StockReport) string
}

// Dispatcher executes parsed commands and returns the reply text.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	inventory InventoryAdapter
	reporting ReportingAdapter
	logger    *zap.Logger
}

// NewService constructs a command dispatcher.
func NewService(inventory InventoryAdapter, reporting ReportingAdapter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		inventory: inventory,
		reporting: reporting,
		logger:    logger,
	}
}

// HandleCommand runs the command against the stock and formats the reply.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Any("args", cmd.Args))

	switch cmd.Type {
	case models.CommandStock:
		stock, err := s.inventory.Stock(ctx)
		if err != nil {
			return "", err
		}
		return s.reporting.FormatStock(stock), nil
	case models.CommandAdvance:
		report, err := s.inventory.AdvanceDay(ctx)
		if err != nil {
			return "", err
		}
		s.logger.Info("stock advanced on request", zap.String("sender", sender), zap.Int("day", report.Day))
		return s.reporting.FormatDailySummary(report), nil
	case models.CommandAdd:
		name, sellIn, quality, err := parseAddArgs(cmd.Args)
		if err != nil {
			return "", err
		}
		item, err := s.inventory.AddItem(ctx, name, sellIn, quality)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Added %s (sell in %d, quality %d).", item.Name, item.SellIn, item.Quality), nil
	case models.CommandHelp:
		return HelpMessage, nil
	default:
		return "", ErrUnsupportedCommand
	}
}

func parseAddArgs(args []string) (string, int, int, error) {
	if len(args) < 3 {
		return "", 0, 0, ErrInvalidArguments
	}

	sellIn, err := strconv.Atoi(args[0])
	if err != nil {
		return "", 0, 0, ErrInvalidArguments
	}

	quality, err := strconv.Atoi(args[1])
	if err != nil {
		return "", 0, 0, ErrInvalidArguments
	}

	return strings.Join(args[2:], " "), sellIn, quality, nil
}
