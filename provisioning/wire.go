package provisioning

import (
	"github.com/ardnew/emberhal/pkg"
)

// Security is the WiFi security code used in both scan results and
// credentials.
type Security byte

const (
	SecurityNone    Security = 0
	SecurityWPAPSK  Security = 1
	SecurityWPA2PSK Security = 2
	SecurityWPA3SAE Security = 3
)

// StatusMessageSize is the fixed wire size of a [StatusMessage]: one
// state code byte plus a big-endian IPv4 address.
const StatusMessageSize = 5

// StatusMessage is the wire format reporting the machine's current
// state and negotiated station IP address.
type StatusMessage struct {
	State State
	IP    [4]byte
}

// Encode writes the status message into dst, which must be at least
// [StatusMessageSize] bytes.
func (m StatusMessage) Encode(dst []byte) error {
	if len(dst) < StatusMessageSize {
		return pkg.ErrNoBufferSpace
	}
	dst[0] = m.State.Code()
	copy(dst[1:5], m.IP[:])
	return nil
}

// DecodeStatusMessage parses a [StatusMessage] from src.
func DecodeStatusMessage(src []byte) (StatusMessage, error) {
	var m StatusMessage
	if len(src) < StatusMessageSize {
		return m, pkg.ErrInvalidParameter
	}
	m.State = State(src[0])
	copy(m.IP[:], src[1:5])
	return m, nil
}

// ScanResult is one entry in a WiFi scan.
type ScanResult struct {
	SSID     string
	RSSI     int8
	Security Security
	Channel  byte
}

// MaxScanResultSize is the largest a [ScanResult] can encode to: a
// 32-byte SSID plus the four fixed header/trailer bytes.
const MaxScanResultSize = 1 + 32 + 3

// Encode writes the scan result into dst. It returns
// [pkg.ErrNoBufferSpace] if dst is smaller than len(SSID)+4, and
// [pkg.ErrInvalidParameter] if SSID is empty or longer than 32 bytes.
func (r ScanResult) Encode(dst []byte) (int, error) {
	n := len(r.SSID)
	if n == 0 || n > 32 {
		return 0, pkg.ErrInvalidParameter
	}
	total := n + 4
	if len(dst) < total {
		return 0, pkg.ErrNoBufferSpace
	}

	dst[0] = byte(n)
	copy(dst[1:1+n], r.SSID)
	dst[1+n] = byte(r.RSSI)
	dst[1+n+1] = byte(r.Security)
	dst[1+n+2] = r.Channel
	return total, nil
}

// DecodeScanResult parses a [ScanResult] from src. It returns
// [pkg.ErrInvalidParameter] if the declared SSID length exceeds the
// available bytes.
func DecodeScanResult(src []byte) (ScanResult, error) {
	var r ScanResult
	if len(src) < 1 {
		return r, pkg.ErrInvalidParameter
	}
	n := int(src[0])
	if n < 1 || n > 32 || len(src) < 1+n+3 {
		return r, pkg.ErrInvalidParameter
	}

	r.SSID = string(src[1 : 1+n])
	r.RSSI = int8(src[1+n])
	r.Security = Security(src[1+n+1])
	r.Channel = src[1+n+2]
	return r, nil
}

// Credentials is the provisioning-time SSID/PSK/security triple.
type Credentials struct {
	SSID     string
	PSK      string
	Security Security
}

// MaxCredentialsSize is the largest a [Credentials] can encode to: a
// 32-byte SSID, a 64-byte PSK, and the three fixed length/security
// bytes.
const MaxCredentialsSize = 1 + 32 + 1 + 64 + 1

// Encode writes the credentials into dst per the wire format: SSID
// length + SSID, PSK length + PSK, security code.
func (c Credentials) Encode(dst []byte) (int, error) {
	m := len(c.SSID)
	p := len(c.PSK)
	if m < 1 || m > 32 || p > 64 {
		return 0, pkg.ErrInvalidParameter
	}
	total := 1 + m + 1 + p + 1
	if len(dst) < total {
		return 0, pkg.ErrNoBufferSpace
	}

	dst[0] = byte(m)
	copy(dst[1:1+m], c.SSID)
	dst[1+m] = byte(p)
	copy(dst[1+m+1:1+m+1+p], c.PSK)
	dst[1+m+1+p] = byte(c.Security)
	return total, nil
}

// DecodeCredentials parses [Credentials] from src.
func DecodeCredentials(src []byte) (Credentials, error) {
	var c Credentials
	if len(src) < 1 {
		return c, pkg.ErrInvalidParameter
	}
	m := int(src[0])
	if m < 1 || m > 32 || len(src) < 1+m+1 {
		return c, pkg.ErrInvalidParameter
	}
	c.SSID = string(src[1 : 1+m])

	p := int(src[1+m])
	if p > 64 || len(src) < 1+m+1+p+1 {
		return c, pkg.ErrInvalidParameter
	}
	c.PSK = string(src[1+m+1 : 1+m+1+p])
	c.Security = Security(src[1+m+1+p])
	return c, nil
}
