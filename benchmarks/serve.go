package benchmarks

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/rlbook/tabular-rl/server"
	"github.com/rlbook/tabular-rl/store"
	"github.com/rlbook/tabular-rl/types"
)

func ServeCommand() *cobra.Command {
	var port int
	var redisAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve saved result tables over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(); err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			tables, err := store.NewFileStore(saveFile)
			if err != nil {
				return err
			}

			if redisAddr != "" {
				if err := mirrorToRedis(ctx, tables, redisAddr); err != nil {
					return err
				}
			}

			srv := server.NewResultServer(ctx, port, tables)
			srv.Start()
			fmt.Printf("serving %s on localhost:%d\n", saveFile, port)

			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Also mirror the tables into this redis instance")
	return cmd
}

// mirrorToRedis copies every saved table into a redis hash, so other tooling
// can read results without reaching the result directory
func mirrorToRedis(ctx context.Context, tables *store.FileStore, addr string) error {
	rs := store.NewRedisStore(addr, "tabular-rl")
	if err := rs.Ping(ctx); err != nil {
		return fmt.Errorf("redis at %s: %w", addr, err)
	}
	defer rs.Close()

	names, err := tables.List(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		table := types.NewValueTable()
		if err := tables.Load(ctx, name, table); err != nil {
			// not a flat value table, mirror the raw document instead
			bs, rawErr := tables.Raw(name)
			if rawErr != nil {
				return rawErr
			}
			if err := rs.Save(ctx, name, rawTable(bs)); err != nil {
				return err
			}
			continue
		}
		if err := rs.Save(ctx, name, table); err != nil {
			return err
		}
	}
	fmt.Printf("mirrored %d tables to %s\n", len(names), addr)
	return nil
}

// rawTable lets already-serialized bytes pass through the store interface
type rawTable []byte

func (r rawTable) MarshalJSON() ([]byte, error) {
	return []byte(r), nil
}
