package items

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/distatus/battery"
	"github.com/lucax88x/mpvtick/internal/modality"
)

// BatteryReader lists the batteries of the machine; battery.GetAll in
// production.
type BatteryReader func() ([]*battery.Battery, error)

type BatteryItem struct {
	logger    *slog.Logger
	batteries BatteryReader
}

func NewBatteryItem(logger *slog.Logger, batteries BatteryReader) BatteryItem {
	if batteries == nil {
		batteries = battery.GetAll
	}
	return BatteryItem{logger, batteries}
}

func (i BatteryItem) Produce(ctx context.Context, _ modality.Config) string {
	batteries, err := i.batteries()

	var found []*battery.Battery
	for _, b := range batteries {
		if b != nil && b.Full > 0 {
			found = append(found, b)
		}
	}

	if len(found) == 0 {
		if err != nil {
			i.logger.WarnContext(ctx, "battery: could not get battery info", slog.Any("error", err))
			return fmt.Sprintf("Battery unavailable: %v", err)
		}
		return "Battery unavailable: has no battery"
	}

	if err != nil {
		i.logger.DebugContext(ctx, "battery: partial battery info", slog.Any("error", err))
	}

	if len(found) > 1 {
		i.logger.DebugContext(
			ctx,
			"battery: does not support multiple batteries",
			slog.Int("batteries", len(found)),
		)
	}

	b := found[0]

	return fmt.Sprintf("Battery %.0f%% (%s)", getBatteryPercentage(b), b.State.String())
}

func getBatteryPercentage(battery *battery.Battery) float64 {
	return (battery.Current / battery.Full) * 100
}

var _ modality.Producer = (*BatteryItem)(nil)
