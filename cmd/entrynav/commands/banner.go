package commands

import (
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"git.home.luguber.info/inful/entrynav/internal/server"
)

const (
	colorSuccess = lipgloss.Color("#10B981")
	colorMuted   = lipgloss.Color("#6B7280")
)

// entryLinks are the navigation page URLs printed on startup. Network is empty when the
// server is not reachable from other hosts.
type entryLinks struct {
	Local   string
	Network string
}

// entryURLs builds the page URLs for a server bound to addr.
func entryURLs(addr, base string, ifaces []net.Addr) entryLinks {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		host, port = addr, "80"
	}
	entry := server.EntryPath(base) + "/"

	local := host
	network := ""
	ip := net.ParseIP(host)
	switch {
	case host == "" || (ip != nil && ip.IsUnspecified()):
		local = "localhost"
		network = networkIP(ifaces)
	case host == "localhost" || (ip != nil && ip.IsLoopback()):
	default:
		network = host
	}

	links := entryLinks{Local: "http://" + net.JoinHostPort(local, port) + entry}
	if network != "" {
		links.Network = "http://" + net.JoinHostPort(network, port) + entry
	}
	return links
}

// networkIP picks the LAN address to advertise, preferring 192.168.*.
func networkIP(addrs []net.Addr) string {
	first := ""
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok {
			continue
		}
		ip := ipNet.IP.To4()
		if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
			continue
		}
		if strings.HasPrefix(ip.String(), "192.168.") {
			return ip.String()
		}
		if first == "" {
			first = ip.String()
		}
	}
	return first
}

func interfaceAddrs() []net.Addr {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil
	}
	return addrs
}

// printBanner writes the startup lines. Colors follow the capabilities of w.
func printBanner(w io.Writer, links entryLinks) {
	r := lipgloss.NewRenderer(w)
	arrow := r.NewStyle().Foreground(colorSuccess).Render("➜")
	label := r.NewStyle().Bold(true)
	muted := r.NewStyle().Foreground(colorMuted)

	_, _ = fmt.Fprintf(w, "\n  %s  %s   %s\n", arrow, label.Render("Entry:"), colorURL(r, links.Local))
	if links.Network != "" {
		_, _ = fmt.Fprintf(w, "  %s  %s %s\n", arrow, label.Render("Network:"), colorURL(r, links.Network))
	} else {
		_, _ = fmt.Fprintf(w, "  %s  %s %s\n", arrow, label.Render("Network:"), muted.Render("not exposed"))
	}
	_, _ = fmt.Fprintln(w)
}

// colorURL renders u in green with the port in bold.
func colorURL(r *lipgloss.Renderer, u string) string {
	green := r.NewStyle().Foreground(colorSuccess)
	scheme, rest, ok := strings.Cut(u, "://")
	if !ok {
		return green.Render(u)
	}
	hostPort, tail, _ := strings.Cut(rest, "/")
	i := strings.LastIndex(hostPort, ":")
	if i < 0 || strings.HasSuffix(hostPort, "]") {
		return green.Render(u)
	}
	return green.Render(scheme+"://"+hostPort[:i+1]) +
		green.Bold(true).Render(hostPort[i+1:]) +
		green.Render("/"+tail)
}
