package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Listen holds one pooled connection for LISTEN and blocks until ctx ends or
// the connection breaks. The connection is released with UNLISTEN on return.
func (p *Pool) Listen(ctx context.Context, channel string, fn func(payload string)) error {
	if p == nil || p.pool == nil {
		return errNilDB
	}

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listen conn: %w", err)
	}
	defer conn.Release()

	ident := pgx.Identifier{channel}.Sanitize()
	if _, err := conn.Exec(ctx, "LISTEN "+ident); err != nil {
		return fmt.Errorf("listen %s: %w", channel, err)
	}
	defer func() {
		uctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_, _ = conn.Exec(uctx, "UNLISTEN "+ident)
	}()

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		if n == nil || n.Channel != channel {
			continue
		}
		fn(n.Payload)
	}
}
