package config

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// NewFirebaseApp builds the Admin SDK app. An empty credentials path falls
// back to application-default credentials.
func NewFirebaseApp(ctx context.Context, env Env) (*firebase.App, error) {
	if env.FirebaseProjectID == "" {
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID is required for %s store or %s auth", StoreFirestore, AuthFirebase)
	}
	opts := []option.ClientOption{}
	if env.FirebaseCredentials != "" {
		opts = append(opts, option.WithCredentialsFile(env.FirebaseCredentials))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: env.FirebaseProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}
	return app, nil
}
