package logic

import (
	"fmt"
	"net"
	"os"
)

// GetLocalIP returns the first non-loopback IPv4 address, or "" if none.
func GetLocalIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, address := range addrs {
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String()
			}
		}
	}
	return ""
}

func GetHostName() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}

	return name
}

// DescribeHost is printed in the startup banner.
func DescribeHost() string {
	ip := GetLocalIP()
	if ip == "" {
		ip = "no external IPv4"
	}

	return fmt.Sprintf("%s (%s)", GetHostName(), ip)
}
