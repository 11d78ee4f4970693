package server

import (
	"github.com/tabkv-incubator/tabkv/kv/client"
	"github.com/tabkv-incubator/tabkv/proto/pkg/txnpb"
)

// TabletContext is the participant.Context of a served tablet: it
// carries the tablet's identity and resolves status tablet clients
// through a shared connection pool.
type TabletContext struct {
	tabletID string
	pool     *client.Pool
}

func NewTabletContext(tabletID string, pool *client.Pool) *TabletContext {
	return &TabletContext{tabletID: tabletID, pool: pool}
}

func (c *TabletContext) TabletID() string {
	return c.tabletID
}

func (c *TabletContext) StatusTabletClient(statusTablet string) (txnpb.StatusTabletClient, error) {
	return c.pool.StatusTabletClient(statusTablet)
}
