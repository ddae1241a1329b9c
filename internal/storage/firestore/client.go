// Package firestore implements order persistence backed by Google Cloud
// Firestore, authenticated with a JSON service-account credential.
package firestore

import (
	"context"
	"encoding/json"

	firestore "cloud.google.com/go/firestore"
	"github.com/go-faster/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// NewClient constructs a Firestore client from a JSON-encoded service-account
// credential. The target project is read from the credential itself, so the
// one secret is the only configuration the store needs.
func NewClient(ctx context.Context, credentialsJSON []byte) (*firestore.Client, error) {
	var cred struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(credentialsJSON, &cred); err != nil {
		return nil, errors.Wrap(err, "parse service account credential")
	}
	if cred.ProjectID == "" {
		return nil, errors.New("service account credential has no project_id")
	}

	client, err := firestore.NewClient(ctx, cred.ProjectID, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, errors.Wrap(err, "create firestore client")
	}
	return client, nil
}

// Ping verifies the store is reachable with the configured credential by
// listing at most one collection. Used as a readiness check.
func Ping(ctx context.Context, client *firestore.Client) error {
	_, err := client.Collections(ctx).Next()
	if errors.Is(err, iterator.Done) {
		return nil
	}
	return err
}
