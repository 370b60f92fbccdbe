package net

import (
	"fmt"
	"net"
)

// OutgoingIP finds the address other hosts on the LAN are most likely to
// reach us on. No packets are sent.
func OutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return firstIPv4().String()
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// FeedURL is the address observers connect to for a feed bound on port.
func FeedURL(host string, port int) string {
	return fmt.Sprintf("ws://%s%s", net.JoinHostPort(host, fmt.Sprint(port)), FeedPath)
}
