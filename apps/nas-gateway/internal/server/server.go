package server

import (
	"context"

	"layeh.com/radius"
)

// Server はRADIUS UDPサーバーのラッパー
type Server struct {
	ps *radius.PacketServer
}

// NewServer は新しいServerを生成する
func NewServer(addr string, handler radius.Handler, secretSource radius.SecretSource) *Server {
	return &Server{
		ps: &radius.PacketServer{
			Addr:         addr,
			Network:      "udp",
			SecretSource: secretSource,
			Handler:      handler,
		},
	}
}

// Addr は待ち受けアドレスを返す
func (s *Server) Addr() string {
	return s.ps.Addr
}

// ListenAndServe はUDPサーバーを起動する
func (s *Server) ListenAndServe() error {
	return s.ps.ListenAndServe()
}

// Shutdown はサーバーをグレースフルに停止する
func (s *Server) Shutdown(ctx context.Context) error {
	return s.ps.Shutdown(ctx)
}
