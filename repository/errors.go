package repository

import (
	"errors"
	"fmt"

	apperrors "github.com/Akashx1550/TrendMart-backend/common/errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

// storeError annotates err with op. Connectivity failures and timeouts are
// reported as ErrStoreUnavailable so they surface as 503.
func storeError(op string, err error) error {
	wrapped := fmt.Errorf("%s: %w", op, err)
	var selErr topology.ServerSelectionError
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.As(err, &selErr) {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, wrapped)
	}
	return wrapped
}
