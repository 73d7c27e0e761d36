package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrescamacho/homestead-go/internal/infrastructure/config"
)

// resolveFarmID resolves the farm from the --farm flag or the user config default.
// Returns an error only if no farm can be identified from either source.
func resolveFarmID() (int, error) {
	if farmFlag > 0 {
		return farmFlag, nil
	}

	userConfigHandler, err := config.NewUserConfigHandler()
	if err != nil {
		return 0, fmt.Errorf("no farm specified and failed to load user config: %w", err)
	}

	userCfg, err := userConfigHandler.Load()
	if err != nil {
		return 0, fmt.Errorf("no farm specified and failed to load user config: %w", err)
	}

	if userCfg.DefaultFarmID != nil {
		return *userCfg.DefaultFarmID, nil
	}

	return 0, fmt.Errorf("no farm specified: use --farm, or set a default with 'homestead config set-farm'")
}

// formatMillis renders an epoch-millisecond timestamp
func formatMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04:05")
}

// formatRemaining renders the time left until ms, or "ready"
func formatRemaining(ms int64, now time.Time) string {
	left := time.UnixMilli(ms).Sub(now)
	if left <= 0 {
		return "ready"
	}
	return left.Round(time.Second).String()
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixedBank(2)
}

// prettyPrint formats JSON for display
func prettyPrint(v interface{}) string {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(bytes)
}
