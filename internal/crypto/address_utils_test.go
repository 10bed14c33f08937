package crypto

import "testing"

func TestAddressEncodeDecodeRoundTrip(t *testing.T) {
	privKey, _ := GenerateECDSAKeyPair()
	pubKeyBytes, err := SerializePublicKeyToBytes(&privKey.PublicKey)
	if err != nil {
		t.Fatalf("SerializePublicKeyToBytes() error = %v", err)
	}

	pubKeyHash, err := HashPublicKey(pubKeyBytes)
	if err != nil {
		t.Fatalf("HashPublicKey() error = %v", err)
	}
	if len(pubKeyHash) != PublicKeyHashLength {
		t.Fatalf("expected %d byte hash, got %d", PublicKeyHashLength, len(pubKeyHash))
	}

	addr, err := EncodeAddress(pubKeyHash)
	if err != nil {
		t.Fatalf("EncodeAddress() error = %v", err)
	}
	if !IsValidAddress(addr) {
		t.Fatalf("encoded address %q did not validate", addr)
	}

	decoded, err := DecodeAddress(addr)
	if err != nil {
		t.Fatalf("DecodeAddress() error = %v", err)
	}
	if string(decoded) != string(pubKeyHash) {
		t.Errorf("decoded public key hash does not match original")
	}
}

func TestDecodeAddressRejectsTamperedChecksum(t *testing.T) {
	pubKeyHash := make([]byte, PublicKeyHashLength)
	addr, err := EncodeAddress(pubKeyHash)
	if err != nil {
		t.Fatalf("EncodeAddress() error = %v", err)
	}

	tampered := addr[:len(addr)-1] + "0"
	if IsValidAddress(tampered) {
		t.Errorf("tampered address unexpectedly validated")
	}
}

func TestDeriveMultiSigAddressDeterministic(t *testing.T) {
	keys := [][]byte{[]byte("key-b"), []byte("key-a"), []byte("key-c")}
	reordered := [][]byte{[]byte("key-a"), []byte("key-c"), []byte("key-b")}

	a, err := DeriveMultiSigAddress(2, keys)
	if err != nil {
		t.Fatalf("DeriveMultiSigAddress() error = %v", err)
	}
	b, err := DeriveMultiSigAddress(2, reordered)
	if err != nil {
		t.Fatalf("DeriveMultiSigAddress() error = %v", err)
	}
	if string(a) != string(b) {
		t.Errorf("expected multi-sig address to be independent of input ordering")
	}

	if _, err := DeriveMultiSigAddress(5, keys); err == nil {
		t.Errorf("expected error when required signatures exceed key count")
	}
}
