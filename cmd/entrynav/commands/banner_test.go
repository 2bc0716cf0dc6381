package commands

import (
	"bytes"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func ipNet(t *testing.T, cidr string) net.Addr {
	t.Helper()
	ip, n, err := net.ParseCIDR(cidr)
	require.NoError(t, err)
	n.IP = ip
	return n
}

func TestEntryURLs(t *testing.T) {
	lan := []net.Addr{ipNet(t, "127.0.0.1/8"), ipNet(t, "10.0.0.2/8"), ipNet(t, "192.168.1.5/24")}

	tests := []struct {
		name    string
		addr    string
		base    string
		local   string
		network string
	}{
		{"all interfaces", "[::]:8090", "/", "http://localhost:8090/__entry/", "http://192.168.1.5:8090/__entry/"},
		{"empty host", ":8090", "/app/", "http://localhost:8090/app/__entry/", "http://192.168.1.5:8090/app/__entry/"},
		{"loopback", "127.0.0.1:3000", "/", "http://127.0.0.1:3000/__entry/", ""},
		{"localhost", "localhost:3000", "/", "http://localhost:3000/__entry/", ""},
		{"specific address", "10.1.2.3:9000", "/", "http://10.1.2.3:9000/__entry/", "http://10.1.2.3:9000/__entry/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links := entryURLs(tt.addr, tt.base, lan)
			require.Equal(t, tt.local, links.Local)
			require.Equal(t, tt.network, links.Network)
		})
	}
}

func TestNetworkIP(t *testing.T) {
	require.Equal(t, "192.168.0.7", networkIP([]net.Addr{ipNet(t, "10.0.0.2/8"), ipNet(t, "192.168.0.7/24")}))
	require.Equal(t, "10.0.0.2", networkIP([]net.Addr{ipNet(t, "127.0.0.1/8"), ipNet(t, "10.0.0.2/8")}))
	require.Empty(t, networkIP([]net.Addr{ipNet(t, "127.0.0.1/8"), ipNet(t, "169.254.1.1/16"), ipNet(t, "fe80::1/64")}))
	require.Empty(t, networkIP(nil))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	printBanner(&buf, entryLinks{Local: "http://localhost:8090/__entry/"})
	require.Contains(t, buf.String(), "Entry:   http://localhost:8090/__entry/")
	require.Contains(t, buf.String(), "Network: not exposed")

	buf.Reset()
	printBanner(&buf, entryLinks{Local: "http://localhost:8090/__entry/", Network: "http://192.168.1.5:8090/__entry/"})
	require.Contains(t, buf.String(), "Network: http://192.168.1.5:8090/__entry/")
}

func TestBrowserCommand(t *testing.T) {
	tests := []struct {
		goos string
		name string
		args []string
	}{
		{"linux", "xdg-open", []string{"http://x/"}},
		{"darwin", "open", []string{"http://x/"}},
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", "http://x/"}},
	}
	for _, tt := range tests {
		name, args := browserCommand(tt.goos, "http://x/")
		require.Equal(t, tt.name, name, tt.goos)
		require.Equal(t, tt.args, args, tt.goos)
	}
}
