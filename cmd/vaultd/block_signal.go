package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/lightninglabs/gozmq"
	"go.uber.org/zap"
)

const (
	hashBlockTopic  = "hashblock"
	zmqReadDeadline = 5 * time.Second
)

// startBlockSignal subscribes to bitcoind hashblock notifications and turns
// each one into a wake up for the coordinator. A burst of blocks collapses
// into a single pending signal.
func startBlockSignal(ctx context.Context, addr string, logger *zap.Logger) (<-chan struct{}, error) {
	if addr == "" {
		return nil, nil
	}

	conn, err := gozmq.Subscribe(addr, []string{hashBlockTopic}, zmqReadDeadline)
	if err != nil {
		return nil, fmt.Errorf("subscribe zmq %s: %w", hashBlockTopic, err)
	}

	notify := make(chan struct{}, 1)
	go func() {
		<-ctx.Done()
		if err := conn.Close(); err != nil {
			logger.Warn("close zmq connection", zap.Error(err))
		}
	}()

	go func() {
		for {
			if ctx.Err() != nil {
				return
			}

			bufs, err := conn.Receive(nil)
			if err != nil {
				if errors.Is(err, io.EOF) || ctx.Err() != nil {
					return
				}
				var netErr net.Error
				if errors.As(err, &netErr) && netErr.Timeout() {
					continue
				}
				logger.Warn("zmq recv failed", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}
			if len(bufs) < 2 || string(bufs[0]) != hashBlockTopic {
				logger.Warn("skip malformed zmq message", zap.Int("parts", len(bufs)))
				continue
			}

			select {
			case notify <- struct{}{}:
			default:
			}
		}
	}()

	return notify, nil
}
