package models

import (
	"fmt"

	"github.com/dmitrijs2005/toonsync/internal/common"
)

// ConflictStrategy decides which side wins when a record exists in both
// stores with different content.
type ConflictStrategy string

const (
	LatestWins ConflictStrategy = "latest_wins"
	LocalWins  ConflictStrategy = "local_wins"
	CloudWins  ConflictStrategy = "cloud_wins"
)

// ParseConflictStrategy validates s. An empty string yields LatestWins.
func ParseConflictStrategy(s string) (ConflictStrategy, error) {
	switch ConflictStrategy(s) {
	case "":
		return LatestWins, nil
	case LatestWins, LocalWins, CloudWins:
		return ConflictStrategy(s), nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrInvalidStrategy, s)
	}
}
