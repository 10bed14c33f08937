package crypto

import (
	"crypto/ecdsa"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Wallet key management errors.
var (
	ErrWalletKeyInit      = errors.New("wallet key initialization error")
	ErrWalletKeyNotFound  = errors.New("wallet key file not found")
	ErrWalletKeyCorrupted = errors.New("wallet key file corrupted or invalid format")
	ErrWalletKeySave      = errors.New("failed to save wallet key")
	ErrWalletKeyLoad      = errors.New("failed to load wallet key")
)

// WalletKey holds an ECDSA key pair and its derived chain address: the
// signing identity behind a transaction's PublicKey/Signature fields.
type WalletKey struct {
	mu         sync.RWMutex
	privateKey *ecdsa.PrivateKey
	publicKey  *ecdsa.PublicKey
	address    string // checksummed display address, EncodeAddress(HashPublicKey(pubKey))
}

// NewWalletKey generates a fresh ECDSA key pair (P256) and derives its address.
func NewWalletKey() (*WalletKey, error) {
	privKey, err := GenerateECDSAKeyPair()
	if err != nil {
		return nil, fmt.Errorf("%w: generate ECDSA key pair: %v", ErrWalletKeyInit, err)
	}
	return walletFromPrivateKey(privKey)
}

func walletFromPrivateKey(privKey *ecdsa.PrivateKey) (*WalletKey, error) {
	pubKey := &privKey.PublicKey

	pubKeyBytes, err := SerializePublicKeyToBytes(pubKey)
	if err != nil {
		return nil, fmt.Errorf("%w: serialize public key: %v", ErrWalletKeyInit, err)
	}

	pubKeyHash, err := HashPublicKey(pubKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: hash public key: %v", ErrWalletKeyInit, err)
	}
	addr, err := EncodeAddress(pubKeyHash)
	if err != nil {
		return nil, fmt.Errorf("%w: encode address: %v", ErrWalletKeyInit, err)
	}

	return &WalletKey{
		privateKey: privKey,
		publicKey:  pubKey,
		address:    addr,
	}, nil
}

// PrivateKey returns the wallet's ECDSA private key.
func (wk *WalletKey) PrivateKey() *ecdsa.PrivateKey {
	wk.mu.RLock()
	defer wk.mu.RUnlock()
	return wk.privateKey
}

// PublicKey returns the wallet's ECDSA public key.
func (wk *WalletKey) PublicKey() *ecdsa.PublicKey {
	wk.mu.RLock()
	defer wk.mu.RUnlock()
	return wk.publicKey
}

// Address returns the wallet's checksummed display address.
func (wk *WalletKey) Address() string {
	wk.mu.RLock()
	defer wk.mu.RUnlock()
	return wk.address
}

// PublicKeyBytes returns the raw uncompressed public key bytes, the form
// carried in SignedTransaction.PublicKey.
func (wk *WalletKey) PublicKeyBytes() []byte {
	wk.mu.RLock()
	defer wk.mu.RUnlock()
	b, err := SerializePublicKeyToBytes(wk.publicKey)
	if err != nil {
		return nil
	}
	return b
}

// Sign produces an ASN.1 DER ECDSA signature over digest, the hash of a
// transaction's unsigned payload.
func (wk *WalletKey) Sign(digest []byte) ([]byte, error) {
	wk.mu.RLock()
	defer wk.mu.RUnlock()
	sig, err := ecdsa.SignASN1(rand.Reader, wk.privateKey, digest)
	if err != nil {
		return nil, fmt.Errorf("sign digest: %w", err)
	}
	return sig, nil
}

// Save writes the wallet's private key to filePath in PEM format.
// Password-encrypted PEM is not supported; see SerializePrivateKeyToPEM.
func (wk *WalletKey) Save(filePath string, password string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("%w: create directory %s: %v", ErrWalletKeySave, dir, err)
	}

	var pemPassword []byte
	if password != "" {
		pemPassword = []byte(password)
	}

	pemBytes, err := SerializePrivateKeyToPEM(wk.PrivateKey(), pemPassword)
	if err != nil {
		return fmt.Errorf("%w: serialize private key to PEM: %v", ErrWalletKeySave, err)
	}

	if err := os.WriteFile(filePath, pemBytes, 0600); err != nil {
		return fmt.Errorf("%w: write key file %s: %v", ErrWalletKeySave, filePath, err)
	}
	return nil
}

// LoadWalletKey loads a WalletKey from a PEM file written by Save.
func LoadWalletKey(filePath string, password string) (*WalletKey, error) {
	pemBytes, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrWalletKeyNotFound, filePath)
		}
		return nil, fmt.Errorf("%w: read file %s: %v", ErrWalletKeyLoad, filePath, err)
	}

	var pemPassword []byte
	if password != "" {
		pemPassword = []byte(password)
	}

	privKey, err := DeserializePrivateKeyFromPEM(pemBytes, pemPassword)
	if err != nil {
		return nil, fmt.Errorf("%w: deserialize private key from PEM: %v", ErrWalletKeyCorrupted, err)
	}

	return walletFromPrivateKey(privKey)
}
