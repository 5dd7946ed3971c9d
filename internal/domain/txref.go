package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const txRefPrefix = "order"

// NewTransactionRef mints the reference checkout hands to the payment
// gateway: "order_<id>_<random>". The order ID makes it recoverable, the
// random suffix makes it unguessable and unique across retries.
func NewTransactionRef(orderID int64) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return fmt.Sprintf("%s_%d_%s", txRefPrefix, orderID, suffix)
}

// ParseTransactionRef recovers the originating order ID from a reference.
// Anything that does not match the minted shape is rejected.
func ParseTransactionRef(ref string) (int64, error) {
	parts := strings.Split(ref, "_")
	if len(parts) != 3 || parts[0] != txRefPrefix || parts[2] == "" {
		return 0, NewMalformedReferenceError(ref)
	}

	orderID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || orderID <= 0 {
		return 0, NewMalformedReferenceError(ref)
	}

	return orderID, nil
}
