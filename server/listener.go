package server

import (
	"net"
	"time"
)

// tcpKeepAliveListener matches the keepalive behavior of
// http.Server.ListenAndServe so idle preview clients don't leak dead
// connections.
type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln *tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}

	tc.SetKeepAlive(true)
	tc.SetKeepAlivePeriod(3 * time.Minute)
	return tc, nil
}
