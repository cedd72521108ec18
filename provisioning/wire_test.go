package provisioning

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestStatusMessage_EncodeDecode(t *testing.T) {
	m := StatusMessage{State: StateConnected, IP: [4]byte{192, 168, 1, 42}}
	buf := make([]byte, StatusMessageSize)
	require.NoError(t, m.Encode(buf))

	assert.Equal(t, StateConnected.Code(), buf[0])
	assert.Equal(t, []byte{192, 168, 1, 42}, buf[1:5])

	decoded, err := DecodeStatusMessage(buf)
	require.NoError(t, err)
	if diff := cmp.Diff(m, decoded); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestScanResult_EncodeDecodeRoundTrip(t *testing.T) {
	r := ScanResult{SSID: "homenet", RSSI: -42, Security: SecurityWPA2PSK, Channel: 6}
	buf := make([]byte, MaxScanResultSize)
	n, err := r.Encode(buf)
	require.NoError(t, err)

	decoded, err := DecodeScanResult(buf[:n])
	require.NoError(t, err)
	if diff := cmp.Diff(r, decoded); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestScanResult_EncodeNoBufferSpace(t *testing.T) {
	r := ScanResult{SSID: "homenet", Security: SecurityNone}
	_, err := r.Encode(make([]byte, 3))
	assert.Error(t, err)
}

func TestScanResult_DecodeLengthExceedsAvailable(t *testing.T) {
	buf := []byte{10, 'a', 'b'}
	_, err := DecodeScanResult(buf)
	assert.Error(t, err)
}

func TestCredentials_EncodeDecodeRoundTrip(t *testing.T) {
	c := Credentials{SSID: "homenet", PSK: "hunter22", Security: SecurityWPA3SAE}
	buf := make([]byte, MaxCredentialsSize)
	n, err := c.Encode(buf)
	require.NoError(t, err)

	decoded, err := DecodeCredentials(buf[:n])
	require.NoError(t, err)
	if diff := cmp.Diff(c, decoded); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

// TestScanResult_RoundTripProperty checks the §8 quantified invariant:
// for every valid scan result, decode(encode(x)) == x.
func TestScanResult_RoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		length := rapid.IntRange(1, 32).Draw(rt, "ssid-len")
		raw := rapid.SliceOfN(rapid.ByteRange('a', 'z'), length, length).Draw(rt, "ssid-bytes")
		r := ScanResult{
			SSID:     string(raw),
			RSSI:     int8(rapid.IntRange(-128, 127).Draw(rt, "rssi")),
			Security: Security(rapid.IntRange(0, 3).Draw(rt, "security")),
			Channel:  byte(rapid.IntRange(0, 255).Draw(rt, "channel")),
		}
		buf := make([]byte, MaxScanResultSize)
		n, err := r.Encode(buf)
		if err != nil {
			rt.Fatalf("encode: %v", err)
		}
		decoded, err := DecodeScanResult(buf[:n])
		if err != nil {
			rt.Fatalf("decode: %v", err)
		}
		if diff := cmp.Diff(r, decoded); diff != "" {
			rt.Fatalf("round-trip mismatch: %s", diff)
		}
	})
}
