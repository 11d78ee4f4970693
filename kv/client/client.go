package client

import (
	"sync"

	"github.com/ngaut/log"
	"github.com/pingcap/errors"
	"google.golang.org/grpc"

	"github.com/tabkv-incubator/tabkv/proto/pkg/txnpb"
)

// Pool hands out status tablet clients, dialling lazily and caching one
// connection per address. Dialling is non-blocking; RPCs issued on a
// connection that is still establishing respect their own deadlines.
type Pool struct {
	mu    sync.Mutex
	conns map[string]*grpc.ClientConn
}

func NewPool() *Pool {
	return &Pool{conns: make(map[string]*grpc.ClientConn)}
}

func (p *Pool) StatusTabletClient(addr string) (txnpb.StatusTabletClient, error) {
	conn, err := p.conn(addr)
	if err != nil {
		return nil, err
	}
	return txnpb.NewStatusTabletClient(conn), nil
}

func (p *Pool) conn(addr string) (*grpc.ClientConn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if conn := p.conns[addr]; conn != nil {
		return conn, nil
	}
	conn, err := grpc.Dial(addr, grpc.WithInsecure())
	if err != nil {
		return nil, errors.WithStack(err)
	}
	p.conns[addr] = conn
	return conn, nil
}

func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for addr, conn := range p.conns {
		if err := conn.Close(); err != nil {
			log.Warnf("failed to close connection to %s: %v", addr, err)
		}
		delete(p.conns, addr)
	}
}
