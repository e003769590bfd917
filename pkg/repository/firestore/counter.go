package firestore

import (
	"context"
	"strconv"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// nextID hands out sequential numeric IDs per counter document, matching the
// numeric brief IDs buyers see in URLs.
func nextID(ctx context.Context, client *firestore.Client, prefix collectionPrefix, counter string) (string, error) {
	counterRef := client.Collection(prefix.name(collectionCounters)).Doc(counter)

	var next int64
	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				next = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": next,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		current, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		val, ok := current.(int64)
		if !ok {
			return goerr.New("counter value is not of type int64", goerr.V("value", current))
		}
		next = val + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: next},
		})
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to get next ID", goerr.V("counter", counter))
	}

	return strconv.FormatInt(next, 10), nil
}
