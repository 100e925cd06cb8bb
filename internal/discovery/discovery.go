package discovery

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/Thibault-Renand/OctoPulse/internal/logger"
)

// Keyword is the ping the tablets broadcast when looking for the server.
const Keyword = "poulpe"

// Service answers UDP discovery pings with the server's LAN address so the
// tablets find the backend without manual configuration.
type Service struct {
	port int
	log  *logger.Logger
}

func New(port int, log *logger.Logger) *Service {
	return &Service{
		port: port,
		log:  log.With("service", "discovery"),
	}
}

// Run binds the discovery port and answers pings until the context is
// cancelled.
func (s *Service) Run(ctx context.Context) error {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{Port: s.port})
	if err != nil {
		return fmt.Errorf("failed to listen on discovery port %d: %w", s.port, err)
	}
	return s.Serve(ctx, conn)
}

// Serve answers pings on an already-bound socket and owns closing it.
func (s *Service) Serve(ctx context.Context, conn *net.UDPConn) error {
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	s.log.Info("discovery service started", "addr", conn.LocalAddr().String())

	buf := make([]byte, 1024)
	for {
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.log.Warn("discovery read failed", "error", err)
			continue
		}

		if string(buf[:n]) != Keyword {
			continue
		}

		ip, err := LocalIPv4()
		if err != nil {
			s.log.Warn("could not determine local address", "error", err)
			continue
		}

		if _, err := conn.WriteToUDP([]byte(ip), addr); err != nil {
			s.log.Warn("discovery reply failed", "peer", addr.String(), "error", err)
			continue
		}
		s.log.Debug("answered discovery ping", "peer", addr.String(), "ip", ip)
	}
}

// LocalIPv4 returns the machine's first non-loopback IPv4 address.
func LocalIPv4() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4.String(), nil
		}
	}
	return "", errors.New("no non-loopback IPv4 address found")
}
