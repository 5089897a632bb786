// Command admin manages account roles directly in the database. It is the
// only way to create the first administrator.
//
//	admin promote someone@example.com
//	admin role someone@example.com
package main

import (
	"context" // Request contexts
	"errors"  // Error values
	"fmt"     // Error wrapping
	"os"      // Exit codes
	"time"    // Durations

	"pc_house/internal/config" // Custom package for configuration
	"pc_house/internal/db"     // MongoDB connection
	"pc_house/internal/domain" // Importing domain models
	"pc_house/internal/store"  // Document store

	"github.com/sirupsen/logrus"       // Logging library
	"github.com/spf13/cobra"           // CLI commands
	"go.mongodb.org/mongo-driver/bson" // BSON documents
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "admin",
	Short:         "PC House account administration",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var promoteCmd = &cobra.Command{
	Use:   "promote <email>",
	Short: "Grant the admin role to an existing account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(ctx context.Context, st store.Store) error {
			res, err := promote(ctx, st, args[0])
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{"email": args[0], "modified": res.ModifiedCount}).Info("User promoted to admin")
			return nil
		})
	},
}

var roleCmd = &cobra.Command{
	Use:   "role <email>",
	Short: "Print the role of an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(ctx context.Context, st store.Store) error {
			role, err := lookupRole(ctx, st, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), role)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(promoteCmd)
	rootCmd.AddCommand(roleCmd)
}

// promote sets the admin role on the account registered under email
func promote(ctx context.Context, st store.Store, email string) (store.UpdateResult, error) {
	res, err := st.UpdateOne(ctx, store.Users, bson.M{"email": email}, bson.M{"role": string(domain.RoleAdmin)}, false)
	if err != nil {
		return res, err
	}
	if res.MatchedCount == 0 {
		return res, fmt.Errorf("no account registered for %s", email)
	}
	return res, nil
}

func lookupRole(ctx context.Context, st store.Store, email string) (domain.Role, error) {
	var user domain.User
	err := st.FindOne(ctx, store.Users, bson.M{"email": email}, &user)
	if errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("no account registered for %s", email)
	}
	if err != nil {
		return "", err
	}
	return user.EffectiveRole(), nil
}

// withStore connects to the configured mongo database for the duration of fn
func withStore(ctx context.Context, fn func(context.Context, store.Store) error) error {
	cfg := config.LoadConfig()
	if cfg.MongoURI == "" {
		return errors.New("MONGO_URI or DB_USER/DB_PASS/DB_HOST is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer db.Disconnect(client)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return fn(ctx, store.NewMongoStore(client.Database(cfg.DBName)))
}
