package rest

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/flashcards-client/internal/testutil"
)

func writeCACertificate(t *testing.T, certFile string, der []byte) {
	certOut, err := os.Create(certFile)
	require.NoError(t, err)
	defer certOut.Close()

	err = pem.Encode(certOut, &pem.Block{Type: "CERTIFICATE", Bytes: der})
	require.NoError(t, err)
}

func createTestCertificate(t *testing.T) (tls.Certificate, []byte) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			Organization: []string{"Test"},
		},
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(365 * 24 * time.Hour),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses:           []net.IP{net.IPv4(127, 0, 0, 1)},
		IsCA:                  true,
		BasicConstraintsValid: true,
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &privateKey.PublicKey, privateKey)
	require.NoError(t, err)

	return tls.Certificate{Certificate: [][]byte{certDER}, PrivateKey: privateKey}, certDER
}

func TestNewTLSConfig_Empty(t *testing.T) {
	cfg, err := NewTLSConfig("")
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestNewTLSConfig_MissingFile(t *testing.T) {
	_, err := NewTLSConfig(filepath.Join(t.TempDir(), "missing.pem"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read CA file")
}

func TestNewTLSConfig_NoCertificates(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bad.pem")
	require.NoError(t, os.WriteFile(file, []byte("not a certificate"), 0o600))

	_, err := NewTLSConfig(file)
	require.ErrorIs(t, err, ErrNoCertificates)
}

func TestNewTLSConfig_TrustsCustomCA(t *testing.T) {
	cert, der := createTestCertificate(t)
	caFile := filepath.Join(t.TempDir(), "ca.pem")
	writeCACertificate(t, caFile, der)

	server := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	server.TLS = &tls.Config{Certificates: []tls.Certificate{cert}}
	server.StartTLS()
	defer server.Close()

	cfg, err := NewTLSConfig(caFile)
	require.NoError(t, err)
	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)

	hc := NewHTTPClient(5*time.Second, cfg, testutil.MakeNoopLogger())
	resp, err := hc.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	plain := NewHTTPClient(5*time.Second, nil, testutil.MakeNoopLogger())
	_, err = plain.Get(server.URL)
	assert.Error(t, err)
}
