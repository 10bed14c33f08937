package crypto

import (
	"crypto/ecdsa"
	"errors"
	"path/filepath"
	"testing"
)

func TestNewWalletKeyDerivesAddress(t *testing.T) {
	wk, err := NewWalletKey()
	if err != nil {
		t.Fatalf("NewWalletKey() error = %v", err)
	}
	if wk.Address() == "" {
		t.Fatalf("NewWalletKey() address is empty")
	}
	if !IsValidAddress(wk.Address()) {
		t.Fatalf("NewWalletKey() address %q fails IsValidAddress", wk.Address())
	}

	pubKeyBytes := wk.PublicKeyBytes()
	hash, err := HashPublicKey(pubKeyBytes)
	if err != nil {
		t.Fatalf("HashPublicKey() error = %v", err)
	}
	wantAddr, err := EncodeAddress(hash)
	if err != nil {
		t.Fatalf("EncodeAddress() error = %v", err)
	}
	if wk.Address() != wantAddr {
		t.Fatalf("Address() = %q, want %q (derived from PublicKeyBytes)", wk.Address(), wantAddr)
	}
}

func TestWalletKeySignVerifiesWithPublicKey(t *testing.T) {
	wk, err := NewWalletKey()
	if err != nil {
		t.Fatalf("NewWalletKey() error = %v", err)
	}
	digest := []byte("digest-of-an-unsigned-transaction")

	sig, err := wk.Sign(digest)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if !ecdsa.VerifyASN1(wk.PublicKey(), digest, sig) {
		t.Fatal("ecdsa.VerifyASN1() rejected a signature produced by Sign()")
	}

	tampered := append([]byte{}, digest...)
	tampered[0] ^= 0xFF
	if ecdsa.VerifyASN1(wk.PublicKey(), tampered, sig) {
		t.Fatal("ecdsa.VerifyASN1() accepted a signature over a different digest")
	}
}

func TestWalletKeySaveLoadRoundTrip(t *testing.T) {
	wk, err := NewWalletKey()
	if err != nil {
		t.Fatalf("NewWalletKey() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "nested", "wallet.pem")
	if err := wk.Save(path, ""); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadWalletKey(path, "")
	if err != nil {
		t.Fatalf("LoadWalletKey() error = %v", err)
	}
	if loaded.Address() != wk.Address() {
		t.Fatalf("LoadWalletKey() address = %q, want %q", loaded.Address(), wk.Address())
	}
}

func TestLoadWalletKeyMissingFile(t *testing.T) {
	_, err := LoadWalletKey(filepath.Join(t.TempDir(), "absent.pem"), "")
	if !errors.Is(err, ErrWalletKeyNotFound) {
		t.Fatalf("LoadWalletKey() on a missing file error = %v, want ErrWalletKeyNotFound", err)
	}
}
