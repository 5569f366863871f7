package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fiplan/internal/config"
	"github.com/rgehrsitz/fiplan/internal/storage"
	"github.com/rgehrsitz/fiplan/internal/storage/file"
	"github.com/rgehrsitz/fiplan/internal/storage/postgres"
)

// postgresEnv names the environment variable holding the default DSN
const postgresEnv = "FIPLAN_POSTGRES_DSN"

// addStoreFlags registers the flags selecting a profile store
func addStoreFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("dir", "", "Profile directory (default: <user config dir>/fiplan/profiles)")
	cmd.PersistentFlags().String("postgres", os.Getenv(postgresEnv), "Postgres DSN; profiles are stored in the database when set")
}

// openStore opens the store selected by the flags. The returned func
// releases it.
func openStore(ctx context.Context, cmd *cobra.Command) (storage.ConfigStore, func(), error) {
	if dsn, _ := cmd.Flags().GetString("postgres"); dsn != "" {
		pool, err := postgres.NewPool(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return postgres.NewConfigStore(pool), pool.Close, nil
	}

	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, nil, fmt.Errorf("cannot resolve profile directory, use --dir: %w", err)
		}
		dir = filepath.Join(base, "fiplan", "profiles")
	}
	store, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {}, nil
}

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Save and load named configurations",
	}
	addStoreFlags(cmd)

	save := &cobra.Command{
		Use:   "save [name] [input-file]",
		Short: "Store a configuration file under a profile name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(args[1])
			if err != nil {
				return err
			}
			store, closeStore, err := openStore(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			if keep, _ := cmd.Flags().GetBool("no-overwrite"); keep {
				err = store.Create(cmd.Context(), args[0], cfg)
			} else {
				err = store.Save(cmd.Context(), args[0], cfg)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %s saved\n", args[0])
			return nil
		},
	}
	save.Flags().Bool("no-overwrite", false, "Fail when the profile already exists")

	load := &cobra.Command{
		Use:   "load [name]",
		Short: "Print a profile, or write it to --out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openStore(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			cfg, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			writer := config.NewWriter()
			if out, _ := cmd.Flags().GetString("out"); out != "" {
				if err := writer.SaveToFile(cfg, out); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Profile %s written to %s\n", args[0], out)
				return nil
			}
			data, err := writer.Marshal(cfg, config.FormatYAML)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	load.Flags().StringP("out", "o", "", "Write the configuration to this file")

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openStore(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			profiles, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No profiles stored")
				return nil
			}
			for _, p := range profiles {
				fmt.Fprintf(cmd.OutOrStdout(), "%-32s %s\n", p.Name, p.UpdatedAt.Local().Format(time.DateTime))
			}
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a stored profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openStore(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %s deleted\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(save, load, list, del)
	return cmd
}
